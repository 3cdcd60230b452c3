package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/lyftr/webhook-service/internal/model"
)

const topSenders = 10

// Filter narrows a message listing. Empty string fields mean no constraint;
// Limit and Offset are applied as given, clamping is the caller's concern.
type Filter struct {
	From   string
	Since  string
	Q      string
	Limit  int
	Offset int
}

type MessageStore struct {
	db *sqlx.DB
}

// New opens (or creates) the sqlite database at path and ensures the schema.
func New(path string) (*MessageStore, error) {
	db, err := sqlx.Connect("sqlite3", "file:"+path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	datastore := &MessageStore{db}
	if err := datastore.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating tables: %w", err)
	}

	return datastore, nil
}

func (s *MessageStore) Close() error {
	return s.db.Close()
}

func (s *MessageStore) createTables() error {
	_, err := s.db.Exec(`create table if not exists messages(
		message_id  text not null primary key,
		from_msisdn text not null,
		to_msisdn   text not null,
		ts          text not null,
		text        text null,
		created_at  text not null
	)`)
	return err
}

// Insert persists msg keyed by message_id and stamps created_at. It returns
// false when a record with the same message_id already exists; the existing
// record is left untouched. The primary key constraint makes concurrent
// inserts of the same id resolve to exactly one created row.
func (s *MessageStore) Insert(msg *model.Message) (bool, error) {
	createdAt := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(`insert into messages
		(message_id, from_msisdn, to_msisdn, ts, text, created_at)
		values (?, ?, ?, ?, ?, ?)
		on conflict(message_id) do nothing`,
		msg.MessageID, msg.FromMSISDN, msg.ToMSISDN, msg.TS, msg.Text, createdAt)
	if err != nil {
		return false, fmt.Errorf("inserting message: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("reading rows affected: %w", err)
	}
	return affected > 0, nil
}

// Query returns one page of matching messages ordered by (ts, message_id)
// plus the total match count before pagination. Filters combine with AND.
func (s *MessageStore) Query(filter Filter) ([]model.Message, int, error) {
	clauses := []string{}
	args := []interface{}{}

	if filter.From != "" {
		clauses = append(clauses, "from_msisdn = ?")
		args = append(args, filter.From)
	}
	if filter.Since != "" {
		clauses = append(clauses, "ts >= ?")
		args = append(args, filter.Since)
	}
	if filter.Q != "" {
		clauses = append(clauses, "text like ?")
		args = append(args, "%"+filter.Q+"%")
	}

	where := "1=1"
	if len(clauses) > 0 {
		where = strings.Join(clauses, " and ")
	}

	var total int
	if err := s.db.Get(&total, "select count(*) from messages where "+where, args...); err != nil {
		return nil, 0, fmt.Errorf("counting messages: %w", err)
	}

	messages := []model.Message{}
	query := `select message_id, from_msisdn, to_msisdn, ts, text, created_at
		from messages
		where ` + where + `
		order by ts asc, message_id asc
		limit ? offset ?`
	if err := s.db.Select(&messages, query, append(args, filter.Limit, filter.Offset)...); err != nil {
		return nil, 0, fmt.Errorf("listing messages: %w", err)
	}

	return messages, total, nil
}

// Stats aggregates over the whole table. Ties between equally active senders
// break on ascending sender so the top list stays deterministic.
func (s *MessageStore) Stats() (*model.Stats, error) {
	stats := &model.Stats{MessagesPerSender: []model.SenderStats{}}

	if err := s.db.Get(&stats.TotalMessages, "select count(*) from messages"); err != nil {
		return nil, fmt.Errorf("counting messages: %w", err)
	}

	if err := s.db.Get(&stats.SendersCount, "select count(distinct from_msisdn) from messages"); err != nil {
		return nil, fmt.Errorf("counting senders: %w", err)
	}

	if err := s.db.Select(&stats.MessagesPerSender, `select from_msisdn, count(*) as count
		from messages
		group by from_msisdn
		order by count desc, from_msisdn asc
		limit ?`, topSenders); err != nil {
		return nil, fmt.Errorf("ranking senders: %w", err)
	}

	var bounds struct {
		First *string `db:"first"`
		Last  *string `db:"last"`
	}
	if err := s.db.Get(&bounds, "select min(ts) as first, max(ts) as last from messages"); err != nil {
		return nil, fmt.Errorf("reading timestamp bounds: %w", err)
	}
	stats.FirstMessageTS = bounds.First
	stats.LastMessageTS = bounds.Last

	return stats, nil
}

// Ready reports whether the database is reachable and the messages table
// exists. Used by the readiness probe only.
func (s *MessageStore) Ready() bool {
	var name string
	err := s.db.Get(&name, "select name from sqlite_master where type='table' and name='messages'")
	return err == nil
}

package model

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// MaxTextLength is the maximum message body length in characters.
const MaxTextLength = 4096

var msisdnPattern = regexp.MustCompile(`^\+[0-9]+$`)

// FieldError is the first field-level violation found in an inbound payload.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// WebhookMessage is the inbound ingestion payload. The wire names "from" and
// "to" map to the stored from_msisdn/to_msisdn columns.
type WebhookMessage struct {
	MessageID string  `json:"message_id"`
	From      string  `json:"from"`
	To        string  `json:"to"`
	TS        string  `json:"ts"`
	Text      *string `json:"text"`
}

// Validate checks the payload's field constraints and returns the first
// violation. It never touches storage.
func (m *WebhookMessage) Validate() *FieldError {
	if m.MessageID == "" {
		return &FieldError{Field: "message_id", Reason: "must not be empty"}
	}
	if err := validateMSISDN("from", m.From); err != nil {
		return err
	}
	if err := validateMSISDN("to", m.To); err != nil {
		return err
	}
	if err := validateTimestamp(m.TS); err != nil {
		return err
	}
	if m.Text != nil && utf8.RuneCountInString(*m.Text) > MaxTextLength {
		return &FieldError{Field: "text", Reason: fmt.Sprintf("must be at most %d characters", MaxTextLength)}
	}
	return nil
}

func validateMSISDN(field, value string) *FieldError {
	if !msisdnPattern.MatchString(value) {
		return &FieldError{Field: field, Reason: "must be '+' followed by digits only"}
	}
	return nil
}

func validateTimestamp(value string) *FieldError {
	if !strings.HasSuffix(value, "Z") {
		return &FieldError{Field: "ts", Reason: "must be an ISO-8601 UTC timestamp ending in 'Z'"}
	}
	if _, err := time.Parse(time.RFC3339, value); err != nil {
		return &FieldError{Field: "ts", Reason: "must be a valid ISO-8601 timestamp"}
	}
	return nil
}

// Record converts a validated payload into its stored form. CreatedAt is left
// for the store to stamp.
func (m *WebhookMessage) Record() *Message {
	return &Message{
		MessageID:  m.MessageID,
		FromMSISDN: m.From,
		ToMSISDN:   m.To,
		TS:         m.TS,
		Text:       m.Text,
	}
}

// Message is the persisted record. Immutable once inserted.
type Message struct {
	MessageID  string  `json:"message_id" db:"message_id"`
	FromMSISDN string  `json:"from_msisdn" db:"from_msisdn"`
	ToMSISDN   string  `json:"to_msisdn" db:"to_msisdn"`
	TS         string  `json:"ts" db:"ts"`
	Text       *string `json:"text" db:"text"`
	CreatedAt  string  `json:"created_at" db:"created_at"`
}

// MessagesResponse is one page of a filtered listing. Total counts all
// matches before pagination.
type MessagesResponse struct {
	Data   []Message `json:"data"`
	Total  int       `json:"total"`
	Limit  int       `json:"limit"`
	Offset int       `json:"offset"`
}

// SenderStats is one entry of the per-sender ranking; the sender is
// serialized under its wire name "from".
type SenderStats struct {
	FromMSISDN string `json:"from" db:"from_msisdn"`
	Count      int    `json:"count" db:"count"`
}

// Stats is the aggregate view over the whole store. The timestamp bounds are
// null when the store is empty.
type Stats struct {
	TotalMessages     int           `json:"total_messages"`
	SendersCount      int           `json:"senders_count"`
	MessagesPerSender []SenderStats `json:"messages_per_sender"`
	FirstMessageTS    *string       `json:"first_message_ts"`
	LastMessageTS     *string       `json:"last_message_ts"`
}

// ErrorResponse carries a short machine-parseable failure detail.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// ValidationErrorResponse carries per-field diagnostics for a 422.
type ValidationErrorResponse struct {
	Detail []FieldError `json:"detail"`
}

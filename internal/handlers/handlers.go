package handlers

import (
	"github.com/lyftr/webhook-service/internal/model"
	"github.com/lyftr/webhook-service/internal/store"
)

// MessageStore is the persistence surface the handlers need.
type MessageStore interface {
	Insert(msg *model.Message) (bool, error)
	Query(filter store.Filter) ([]model.Message, int, error)
	Stats() (*model.Stats, error)
	Ready() bool
}

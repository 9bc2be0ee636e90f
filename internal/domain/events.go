package domain

import (
	"encoding/json"
	"time"
)

type Collection string

const (
	CollectionProducts  Collection = "products"
	CollectionCustomers Collection = "customers"
	CollectionOrders    Collection = "orders"
)

type Op string

const (
	OpAdd    Op = "add"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// ChangeEvent is published after every store mutation. Entity is the record
// after the change and is empty for deletes.
type ChangeEvent struct {
	EventID    string          `json:"event_id"`
	Collection Collection      `json:"collection"`
	Op         Op              `json:"op"`
	EntityID   int             `json:"entity_id"`
	Entity     json.RawMessage `json:"entity,omitempty"`
	Timestamp  time.Time       `json:"timestamp"`
}

package models

import (
	"encoding/json"
	"time"
)

// Change operations, mirroring the row-level events the change feed carries
const (
	OpInsert = "INSERT"
	OpUpdate = "UPDATE"
	OpDelete = "DELETE"
)

// Watched table names
const (
	TableProducts   = "products"
	TableCategories = "categories"
	TableRecipes    = "recipes"
	TablePedidos    = "pedidos"
	TableSettings   = "settings"
	TableAuditLogs  = "audit_logs"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// EventTypeTableChanged marks a row-level change notification
const EventTypeTableChanged = "TABLE_CHANGED"

// TableChangedEvent is published after every row mutation. New carries the
// row after INSERT/UPDATE; Old carries the row before UPDATE/DELETE.
type TableChangedEvent struct {
	BaseEvent
	Table     string          `json:"table"`
	Operation string          `json:"operation"`
	RecordID  string          `json:"record_id"`
	Old       json.RawMessage `json:"old,omitempty"`
	New       json.RawMessage `json:"new,omitempty"`
}

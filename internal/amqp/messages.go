package amqp

import (
	"encoding/json"
	"time"
)

// Mutation operation names carried in change messages.
const (
	OpAdd        = "add"
	OpEdit       = "edit"
	OpDelete     = "delete"
	OpUndo       = "undo"
	OpCategories = "categories"
)

// LedgerChangedMessage is the lightweight notification published after a
// successful mutation. The ledger is rewritten fully on every change, so
// consumers reload the whole table rather than applying deltas.
type LedgerChangedMessage struct {
	Op        string    `json:"op"`
	Rows      int       `json:"rows"`
	Timestamp time.Time `json:"timestamp"`
}

func NewLedgerChangedMessage(op string, rows int) *LedgerChangedMessage {
	return &LedgerChangedMessage{
		Op:        op,
		Rows:      rows,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *LedgerChangedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// LedgerChangedMessageFromJSON decodes a message from JSON bytes.
func LedgerChangedMessageFromJSON(data []byte) (*LedgerChangedMessage, error) {
	var msg LedgerChangedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

package notify

import (
	"encoding/json"
	"time"
)

// LedgerChangedMessage announces that a write hit the ledger. Consumers
// re-read from storage, so the payload stays minimal.
type LedgerChangedMessage struct {
	ID        int64     `json:"id"`
	Source    string    `json:"source"`
	Timestamp time.Time `json:"timestamp"`
}

// NewLedgerChangedMessage creates a change notice for the given record id.
// Source names the writer (http, cli) for log correlation.
func NewLedgerChangedMessage(id int64, source string) *LedgerChangedMessage {
	return &LedgerChangedMessage{
		ID:        id,
		Source:    source,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *LedgerChangedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// LedgerChangedMessageFromJSON creates a message from JSON bytes
func LedgerChangedMessageFromJSON(data []byte) (*LedgerChangedMessage, error) {
	var msg LedgerChangedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

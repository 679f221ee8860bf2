package amqp

import (
	"testing"
	"time"
)

func TestLedgerChangedMessageJSON(t *testing.T) {
	msg := NewLedgerChangedMessage(OpAdd, 7)
	data, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	back, err := LedgerChangedMessageFromJSON(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Op != OpAdd || back.Rows != 7 {
		t.Fatalf("unexpected message %+v", back)
	}
	if time.Since(back.Timestamp) > time.Minute {
		t.Fatalf("timestamp not set: %v", back.Timestamp)
	}
}

func TestLedgerChangedMessageFromBadJSON(t *testing.T) {
	if _, err := LedgerChangedMessageFromJSON([]byte("{not json")); err == nil {
		t.Fatalf("expected error for invalid JSON")
	}
}

package amqp

import (
	"encoding/json"
	"time"
)

// MirrorOp identifies the remote operation a mirror intent describes.
type MirrorOp string

const (
	OpCreate MirrorOp = "create"
	OpDelete MirrorOp = "delete"
)

// MirrorMessage is a lightweight mirror intent: just the operation plus
// the identifiers. The worker fetches the full transaction from the local
// ledger, so the payload never goes stale in the queue.
type MirrorMessage struct {
	Op            MirrorOp  `json:"op"`
	UserID        string    `json:"userId"`
	TransactionID string    `json:"transactionId"`
	Timestamp     time.Time `json:"timestamp"`
}

// NewCreateMessage builds a mirror intent for a newly recorded transaction.
func NewCreateMessage(userID, txID string) *MirrorMessage {
	return &MirrorMessage{
		Op:            OpCreate,
		UserID:        userID,
		TransactionID: txID,
		Timestamp:     time.Now(),
	}
}

// NewDeleteMessage builds a mirror intent for a removed transaction.
func NewDeleteMessage(userID, txID string) *MirrorMessage {
	return &MirrorMessage{
		Op:            OpDelete,
		UserID:        userID,
		TransactionID: txID,
		Timestamp:     time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *MirrorMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// MirrorMessageFromJSON decodes a message from JSON bytes.
func MirrorMessageFromJSON(data []byte) (*MirrorMessage, error) {
	var msg MirrorMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

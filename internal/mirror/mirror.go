// Package mirror propagates local ledger writes to a remote copy on a
// best-effort basis. The Recorder port returns nothing, so a mirror
// failure cannot fail or roll back the local operation that triggered
// it. Failures reach an injected handler and stop there.
package mirror

import (
	"context"
	"log/slog"

	"tally/internal/amqp"
	"tally/internal/core"
)

// Recorder is the fire-and-forget mirror port. Implementations must not
// block the local write path on remote outcomes.
type Recorder interface {
	// Record mirrors a newly committed transaction.
	Record(ctx context.Context, tx core.Transaction)
	// Remove mirrors a local deletion.
	Remove(ctx context.Context, userID, txID string)
}

// FailureHandler observes a dropped mirror write. There is no retry and
// no queueing behind it; a dropped write is permanently dropped from the
// remote's perspective.
type FailureHandler func(ctx context.Context, op string, userID, txID string, err error)

// LogFailures is the default failure handler.
func LogFailures(ctx context.Context, op string, userID, txID string, err error) {
	slog.WarnContext(ctx, "Mirror write dropped",
		"op", op,
		"user_id", userID,
		"transaction_id", txID,
		"error", err)
}

// HTTPMirror mirrors writes by issuing the equivalent request directly
// against the remote service.
type HTTPMirror struct {
	remote    *RemoteClient
	onFailure FailureHandler
}

func NewHTTPMirror(remote *RemoteClient, onFailure FailureHandler) *HTTPMirror {
	if onFailure == nil {
		onFailure = LogFailures
	}
	return &HTTPMirror{remote: remote, onFailure: onFailure}
}

func (m *HTTPMirror) Record(ctx context.Context, tx core.Transaction) {
	if err := m.remote.CreateTransaction(ctx, tx); err != nil {
		m.onFailure(ctx, "create", tx.UserID, tx.ID, err)
	}
}

func (m *HTTPMirror) Remove(ctx context.Context, userID, txID string) {
	if err := m.remote.DeleteTransaction(ctx, userID, txID); err != nil {
		m.onFailure(ctx, "delete", userID, txID, err)
	}
}

// QueueMirror mirrors writes by publishing intents to AMQP for the mirror
// worker. A failed publish is handled exactly like a failed direct write.
type QueueMirror struct {
	client    *amqp.Client
	onFailure FailureHandler
}

func NewQueueMirror(client *amqp.Client, onFailure FailureHandler) *QueueMirror {
	if onFailure == nil {
		onFailure = LogFailures
	}
	return &QueueMirror{client: client, onFailure: onFailure}
}

func (m *QueueMirror) Record(ctx context.Context, tx core.Transaction) {
	if err := m.client.PublishMirror(ctx, amqp.NewCreateMessage(tx.UserID, tx.ID)); err != nil {
		m.onFailure(ctx, "create", tx.UserID, tx.ID, err)
	}
}

func (m *QueueMirror) Remove(ctx context.Context, userID, txID string) {
	if err := m.client.PublishMirror(ctx, amqp.NewDeleteMessage(userID, txID)); err != nil {
		m.onFailure(ctx, "delete", userID, txID, err)
	}
}

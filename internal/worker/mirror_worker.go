package worker

import (
	"context"
	"fmt"
	"log/slog"

	"tally/internal/amqp"
	"tally/internal/core"
	"tally/internal/ledger"
)

// Remote is the subset of the mirror API the worker replays intents
// against.
type Remote interface {
	CreateTransaction(ctx context.Context, tx core.Transaction) error
	DeleteTransaction(ctx context.Context, userID, txID string) error
}

// Processor replays mirror intents from the queue against the remote
// API. A returned error means the intent is dropped; it is never
// requeued.
type Processor struct {
	ledger *ledger.Store
	remote Remote
	logger *slog.Logger
}

func NewProcessor(l *ledger.Store, remote Remote, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{ledger: l, remote: remote, logger: logger}
}

// HandleMirrorMessage resolves the intent against the local ledger and
// forwards it to the remote. A create whose transaction has since been
// deleted locally is skipped without error.
func (p *Processor) HandleMirrorMessage(ctx context.Context, msg *amqp.MirrorMessage) error {
	switch msg.Op {
	case amqp.OpCreate:
		tx, ok := p.ledger.Get(ctx, msg.UserID, msg.TransactionID)
		if !ok {
			p.logger.Warn("Transaction no longer in ledger, skipping mirror create",
				"user_id", msg.UserID,
				"transaction_id", msg.TransactionID)
			return nil
		}
		if err := p.remote.CreateTransaction(ctx, tx); err != nil {
			return fmt.Errorf("mirror create for transaction %s: %w", msg.TransactionID, err)
		}
	case amqp.OpDelete:
		if err := p.remote.DeleteTransaction(ctx, msg.UserID, msg.TransactionID); err != nil {
			return fmt.Errorf("mirror delete for transaction %s: %w", msg.TransactionID, err)
		}
	default:
		return fmt.Errorf("unknown mirror op %q", msg.Op)
	}

	p.logger.Info("Mirror intent applied",
		"op", string(msg.Op),
		"user_id", msg.UserID,
		"transaction_id", msg.TransactionID)
	return nil
}

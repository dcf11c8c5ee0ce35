package services

import (
	"context"
	"errors"
	"time"

	"tally/internal/core"
	"tally/internal/idgen"
	"tally/internal/ledger"
	"tally/internal/mirror"
)

// ErrTransactionNotFound is returned by Delete when the transaction does
// not exist in the caller's ledger. A transaction owned by another user
// reports the same error so callers cannot probe foreign ledgers.
var ErrTransactionNotFound = errors.New("transaction not found")

// LedgerService owns the write path for a user's ledger. Writes commit
// locally first; the mirror is informed afterwards and its outcome never
// influences the result returned to the caller.
type LedgerService struct {
	ledger *ledger.Store
	mirror mirror.Recorder
	gen    idgen.Generator
}

func NewLedgerService(l *ledger.Store, m mirror.Recorder, gen idgen.Generator) *LedgerService {
	return &LedgerService{ledger: l, mirror: m, gen: gen}
}

// Create validates the transaction, assigns it an ID and creation time,
// and prepends it to the user's ledger. The mirror is notified in the
// background once the local write has succeeded.
func (s *LedgerService) Create(ctx context.Context, tx core.Transaction) (core.Transaction, error) {
	tx.ID = s.gen.Next()
	tx.CreatedAt = time.Now().UTC()

	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}

	if err := s.ledger.Add(ctx, tx.UserID, tx); err != nil {
		return core.Transaction{}, err
	}

	if s.mirror != nil {
		go func(tx core.Transaction) {
			s.mirror.Record(context.WithoutCancel(ctx), tx)
		}(tx)
	}

	return tx, nil
}

// Delete removes the transaction with the given id from the user's
// ledger. Only the owner's ledger is consulted, so a foreign or unknown
// id yields ErrTransactionNotFound either way.
func (s *LedgerService) Delete(ctx context.Context, userID, txID string) error {
	removed, err := s.ledger.Remove(ctx, userID, txID)
	if err != nil {
		return err
	}
	if !removed {
		return ErrTransactionNotFound
	}

	if s.mirror != nil {
		go func() {
			s.mirror.Remove(context.WithoutCancel(ctx), userID, txID)
		}()
	}

	return nil
}

// List returns the user's transactions, newest first.
func (s *LedgerService) List(ctx context.Context, userID string) []core.Transaction {
	return s.ledger.Load(ctx, userID)
}

// Get returns a single transaction from the user's ledger.
func (s *LedgerService) Get(ctx context.Context, userID, txID string) (core.Transaction, bool) {
	return s.ledger.Get(ctx, userID, txID)
}

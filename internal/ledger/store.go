// Package ledger implements the local transaction ledger: one keyed JSON
// blob per user, newest-first, authoritative for everything the UI shows.
package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"tally/internal/core"
	"tally/internal/storage"
)

const keyPrefix = "tally:"

// SessionKey is the fixed key holding the current session's user record.
const SessionKey = keyPrefix + "session"

// UserKey returns the blob key holding userID's full transaction list.
func UserKey(userID string) string {
	return keyPrefix + "ledger:" + userID
}

// Store reads and writes per-user transaction lists through a KV backend.
// The read-modify-write sequence in Add and Remove is not atomic against
// concurrent callers; the last Save wins on the full collection.
type Store struct {
	kv storage.KV
}

func NewStore(kv storage.KV) *Store {
	return &Store{kv: kv}
}

// Load returns the user's transactions in persisted order, newest first.
// A missing, unreadable or corrupt blob yields an empty slice: local reads
// never fail, they degrade to "no data".
func (s *Store) Load(ctx context.Context, userID string) []core.Transaction {
	blob, ok, err := s.kv.Get(ctx, UserKey(userID))
	if err != nil {
		slog.WarnContext(ctx, "Ledger read failed, treating as empty",
			"user_id", userID, "error", err)
		return nil
	}
	if !ok {
		return nil
	}

	var txs []core.Transaction
	if err := json.Unmarshal(blob, &txs); err != nil {
		slog.WarnContext(ctx, "Ledger blob corrupt, treating as empty",
			"user_id", userID, "error", err)
		return nil
	}
	return txs
}

// Save overwrites the user's full persisted collection.
func (s *Store) Save(ctx context.Context, userID string, txs []core.Transaction) error {
	if txs == nil {
		txs = []core.Transaction{}
	}
	blob, err := json.Marshal(txs)
	if err != nil {
		return fmt.Errorf("encode ledger for %s: %w", userID, err)
	}
	if err := s.kv.Put(ctx, UserKey(userID), blob); err != nil {
		return fmt.Errorf("save ledger for %s: %w", userID, err)
	}
	return nil
}

// Add prepends the transaction to the user's collection and persists it.
func (s *Store) Add(ctx context.Context, userID string, tx core.Transaction) error {
	txs := s.Load(ctx, userID)
	txs = append([]core.Transaction{tx}, txs...)
	return s.Save(ctx, userID, txs)
}

// Remove deletes the transaction with the given id from the user's
// collection and persists the remainder. It reports whether a matching
// transaction existed. Scoping by the user's key means a caller can only
// ever remove entries from that user's own ledger.
func (s *Store) Remove(ctx context.Context, userID, txID string) (bool, error) {
	txs := s.Load(ctx, userID)
	kept := txs[:0]
	found := false
	for _, t := range txs {
		if t.ID == txID {
			found = true
			continue
		}
		kept = append(kept, t)
	}
	if !found {
		return false, nil
	}
	if err := s.Save(ctx, userID, kept); err != nil {
		return false, err
	}
	return true, nil
}

// Get returns the transaction with the given id from the user's ledger.
func (s *Store) Get(ctx context.Context, userID, txID string) (core.Transaction, bool) {
	for _, t := range s.Load(ctx, userID) {
		if t.ID == txID {
			return t, true
		}
	}
	return core.Transaction{}, false
}

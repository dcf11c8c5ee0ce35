// Package session holds the current user's identity for a client context.
// The holder is an explicit object injected where needed rather than
// package-level state, and it persists through the same KV medium as the
// ledger so a restarted client resumes its session.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"tally/internal/core"
	"tally/internal/ledger"
	"tally/internal/storage"
)

// Holder is the single logical session for one client context. It assumes
// cooperative single-threaded access; there is no concurrent-writer
// discipline because there is exactly one session per client.
type Holder struct {
	kv      storage.KV
	current *core.User
}

// NewHolder restores any persisted session from the KV store. A corrupt
// session record is discarded silently, leaving the holder logged out.
func NewHolder(ctx context.Context, kv storage.KV) *Holder {
	h := &Holder{kv: kv}

	blob, ok, err := kv.Get(ctx, ledger.SessionKey)
	if err != nil || !ok {
		return h
	}
	var u core.User
	if err := json.Unmarshal(blob, &u); err != nil {
		slog.WarnContext(ctx, "Session record corrupt, starting logged out", "error", err)
		return h
	}
	h.current = &u
	return h
}

// Set makes u the current user and persists the session record.
func (h *Holder) Set(ctx context.Context, u core.User) error {
	blob, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := h.kv.Put(ctx, ledger.SessionKey, blob); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	h.current = &u
	return nil
}

// Current returns the logged-in user, if any.
func (h *Holder) Current() (core.User, bool) {
	if h.current == nil {
		return core.User{}, false
	}
	return *h.current, true
}

// Clear logs out: the in-memory identity and the persisted record are
// both removed.
func (h *Holder) Clear(ctx context.Context) error {
	if err := h.kv.Delete(ctx, ledger.SessionKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	h.current = nil
	return nil
}

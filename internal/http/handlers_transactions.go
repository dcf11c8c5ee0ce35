package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"tally/internal/core"
	"tally/internal/services"
	"tally/internal/store"
)

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		writeMessage(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var tx core.Transaction
	if err := json.NewDecoder(r.Body).Decode(&tx); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if tx.UserID == "" {
		writeMessage(w, http.StatusBadRequest, core.ErrMissingUser.Error())
		return
	}
	if _, err := s.users.Get(tx.UserID); err != nil {
		writeMessage(w, http.StatusNotFound, store.ErrUserNotFound.Error())
		return
	}

	created, err := s.ledger.Create(r.Context(), tx)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrInvalidKind),
			errors.Is(err, core.ErrInvalidAmount),
			errors.Is(err, core.ErrInvalidDate),
			errors.Is(err, core.ErrLongDescription):
			writeMessage(w, http.StatusBadRequest, err.Error())
		default:
			slog.ErrorContext(r.Context(), "Transaction create failed", "error", err, "user_id", tx.UserID)
			writeMessage(w, http.StatusInternalServerError, "could not save transaction")
		}
		return
	}

	s.viewCache.Delete(created.UserID)
	writeJSON(w, http.StatusOK, created)
}

// handleTransactionByPath dispatches /api/transactions/{id}: GET treats
// the segment as a user id and lists that ledger, DELETE treats it as a
// transaction id owned by the user named in the body.
func (s *Server) handleTransactionByPath(w http.ResponseWriter, r *http.Request) {
	id, ok := pathSuffix(r, "/api/transactions/")
	if !ok {
		writeMessage(w, http.StatusNotFound, "not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.listTransactions(w, r, id)
	case http.MethodDelete:
		s.deleteTransaction(w, r, id)
	default:
		w.Header().Set("Allow", "GET, DELETE")
		writeMessage(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) listTransactions(w http.ResponseWriter, r *http.Request, userID string) {
	filter, err := parseFilter(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	txs := filter.Apply(s.ledger.List(r.Context(), userID))
	writeJSON(w, http.StatusOK, txs)
}

func (s *Server) deleteTransaction(w http.ResponseWriter, r *http.Request, txID string) {
	var req struct {
		UserID string `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" {
		writeMessage(w, http.StatusBadRequest, "userId is required")
		return
	}

	if err := s.ledger.Delete(r.Context(), req.UserID, txID); err != nil {
		if errors.Is(err, services.ErrTransactionNotFound) {
			writeMessage(w, http.StatusNotFound, err.Error())
			return
		}
		slog.ErrorContext(r.Context(), "Transaction delete failed", "error", err, "user_id", req.UserID, "transaction_id", txID)
		writeMessage(w, http.StatusInternalServerError, "could not delete transaction")
		return
	}

	s.viewCache.Delete(req.UserID)
	writeMessage(w, http.StatusOK, "transaction deleted")
}

package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  Kind = "income"
	Expense Kind = "expense"
)

// MaxDescriptionLen bounds the free-text description field.
const MaxDescriptionLen = 200

type (
	Kind string

	// User is an account holder. PasswordHash is never serialized.
	User struct {
		ID           string    `json:"id"`
		Name         string    `json:"name"`
		Email        string    `json:"email"`
		PasswordHash []byte    `json:"-"`
		CreatedAt    time.Time `json:"createdAt"`
	}

	// Transaction is a single income or expense entry in a user's ledger.
	// Date is the calendar date the transaction applies to, distinct from
	// CreatedAt which records when it was entered.
	Transaction struct {
		ID          string    `json:"id"`
		UserID      string    `json:"userId"`
		Kind        Kind      `json:"type"`
		Amount      Money     `json:"amount"`
		Description string    `json:"description"`
		Category    string    `json:"category"`
		Date        Date      `json:"date"`
		CreatedAt   time.Time `json:"createdAt"`
	}
)

var (
	ErrInvalidKind     = errors.New("invalid transaction type")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidDate     = errors.New("invalid date")
	ErrMissingUser     = errors.New("missing user id")
	ErrEmptyName       = errors.New("empty name")
	ErrInvalidEmail    = errors.New("invalid email")
	ErrShortPassword   = errors.New("password too short")
	ErrLongDescription = errors.New("description too long")
)

// SuggestedCategories is the vocabulary offered to clients. It is a
// suggestion only; Category remains free text.
var SuggestedCategories = []string{
	"Salary", "Freelance", "Investments",
	"Food", "Housing", "Transport", "Utilities",
	"Health", "Entertainment", "Shopping", "Other",
}

func (k Kind) Valid() bool {
	return k == Income || k == Expense
}

// Validate checks the transaction invariants. The first failing check wins.
func (t Transaction) Validate() error {
	if t.UserID == "" {
		return ErrMissingUser
	}
	if !t.Kind.Valid() {
		return ErrInvalidKind
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if len(t.Description) > MaxDescriptionLen {
		return ErrLongDescription
	}
	return nil
}

// ValidateRegistration checks the fields supplied at registration time.
func ValidateRegistration(name, email, password string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	if !validEmail(email) {
		return ErrInvalidEmail
	}
	if len(password) < 6 {
		return ErrShortPassword
	}
	return nil
}

// validEmail applies a deliberately loose shape check: one @ with
// non-empty local part and a dotted domain.
func validEmail(s string) bool {
	at := strings.IndexByte(s, '@')
	if at <= 0 || at == len(s)-1 {
		return false
	}
	domain := s[at+1:]
	dot := strings.IndexByte(domain, '.')
	if dot <= 0 || dot == len(domain)-1 {
		return false
	}
	return !strings.ContainsAny(s, " \t\r\n")
}

package store

import (
	"errors"
	"testing"

	"tally/internal/core"
	"tally/internal/idgen"
)

func newStore() *UserStore {
	return NewUserStore(idgen.NewSequence(1))
}

func TestRegisterAndAuthenticate(t *testing.T) {
	s := newStore()

	user, err := s.Register("Ada", "ada@example.com", "hunter22")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.ID == "" {
		t.Fatal("expected assigned id")
	}
	if string(user.PasswordHash) == "hunter22" {
		t.Fatal("password stored in clear")
	}

	got, err := s.Authenticate("ada@example.com", "hunter22")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if got.ID != user.ID {
		t.Fatalf("authenticated as %q, want %q", got.ID, user.ID)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	s := newStore()

	if _, err := s.Register("Ada", "ada@example.com", "hunter22"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	_, err := s.Register("Other", "ADA@example.com", "different1")
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("err = %v, want ErrEmailTaken", err)
	}
}

func TestRegisterValidatesInput(t *testing.T) {
	s := newStore()

	cases := []struct {
		name     string
		userName string
		email    string
		password string
		want     error
	}{
		{"empty name", "", "a@example.com", "hunter22", core.ErrEmptyName},
		{"bad email", "Ada", "not-an-email", "hunter22", core.ErrInvalidEmail},
		{"short password", "Ada", "a@example.com", "short", core.ErrShortPassword},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.Register(tc.userName, tc.email, tc.password)
			if !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestAuthenticateFailuresAreUniform(t *testing.T) {
	s := newStore()
	if _, err := s.Register("Ada", "ada@example.com", "hunter22"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, unknownErr := s.Authenticate("nobody@example.com", "hunter22")
	_, wrongErr := s.Authenticate("ada@example.com", "wrong-pass")

	if !errors.Is(unknownErr, ErrBadCredentials) || !errors.Is(wrongErr, ErrBadCredentials) {
		t.Fatalf("unknown = %v, wrong = %v, want ErrBadCredentials for both", unknownErr, wrongErr)
	}
	if unknownErr.Error() != wrongErr.Error() {
		t.Fatal("login failures are distinguishable")
	}
}

func TestGet(t *testing.T) {
	s := newStore()
	user, err := s.Register("Ada", "ada@example.com", "hunter22")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	got, err := s.Get(user.ID)
	if err != nil || got.Email != "ada@example.com" {
		t.Fatalf("Get = %+v, %v", got, err)
	}

	if _, err := s.Get("missing"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("err = %v, want ErrUserNotFound", err)
	}
}

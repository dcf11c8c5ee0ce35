package store

import (
	"errors"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"tally/internal/core"
	"tally/internal/idgen"
)

var (
	// ErrEmailTaken is returned by Register when the email is already in use.
	ErrEmailTaken = errors.New("email already registered")
	// ErrBadCredentials covers both unknown emails and wrong passwords so
	// that login failures do not reveal which accounts exist.
	ErrBadCredentials = errors.New("invalid email or password")
	// ErrUserNotFound is returned by Get for unknown user ids.
	ErrUserNotFound = errors.New("user not found")
)

// UserStore is an in-memory user registry keyed by email. Passwords are
// stored only as bcrypt hashes.
type UserStore struct {
	mu      sync.RWMutex
	byID    map[string]core.User
	byEmail map[string]string
	gen     idgen.Generator
}

func NewUserStore(gen idgen.Generator) *UserStore {
	return &UserStore{
		byID:    make(map[string]core.User),
		byEmail: make(map[string]string),
		gen:     gen,
	}
}

// Register validates the registration fields, hashes the password and
// stores the new user. Emails are matched case-insensitively.
func (s *UserStore) Register(name, email, password string) (core.User, error) {
	if err := core.ValidateRegistration(name, email, password); err != nil {
		return core.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return core.User{}, err
	}

	key := strings.ToLower(email)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[key]; exists {
		return core.User{}, ErrEmailTaken
	}

	user := core.User{
		ID:           s.gen.Next(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	s.byID[user.ID] = user
	s.byEmail[key] = user.ID

	return user, nil
}

// Authenticate checks the email and password pair and returns the
// matching user.
func (s *UserStore) Authenticate(email, password string) (core.User, error) {
	s.mu.RLock()
	id, ok := s.byEmail[strings.ToLower(email)]
	var user core.User
	if ok {
		user = s.byID[id]
	}
	s.mu.RUnlock()

	if !ok {
		return core.User{}, ErrBadCredentials
	}
	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return core.User{}, ErrBadCredentials
	}
	return user, nil
}

// Get returns the user with the given id.
func (s *UserStore) Get(id string) (core.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.byID[id]
	if !ok {
		return core.User{}, ErrUserNotFound
	}
	return user, nil
}

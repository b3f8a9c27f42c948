package auth_test

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/citelab/bibcat/pkg/sanitizer"
	"github.com/citelab/bibcat/pkg/validator"
	"github.com/citelab/bibcat/svc/auth"
)

// memStorage is an in-memory Storage with the same contract as MongoStorage,
// including unique emails and hashing on write.
type memStorage struct {
	mu    sync.Mutex
	users map[uuid.UUID]*auth.User
}

func newMemStorage() *memStorage {
	return &memStorage{users: make(map[uuid.UUID]*auth.User)}
}

func (s *memStorage) normalize(email string) (string, error) {
	email = sanitizer.NormalizeEmail(email)
	if err := validator.Apply(validator.ValidEmail("email", email)); err != nil {
		return "", auth.ErrInvalidEmail
	}
	return email, nil
}

func (s *memStorage) Create(ctx context.Context, email, password string, confirmed bool) (*auth.User, error) {
	email, err := s.normalize(email)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			return nil, auth.ErrEmailAlreadyExists
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	user := &auth.User{
		ID:             uuid.New(),
		Email:          email,
		PasswordHash:   string(hash),
		EmailConfirmed: confirmed,
		Roles:          []string{},
		CreatedAt:      time.Now().UTC(),
	}
	s.users[user.ID] = user

	clone := *user
	return &clone, nil
}

func (s *memStorage) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	email, err := s.normalize(email)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, auth.ErrUserNotFound
}

func (s *memStorage) GetByID(ctx context.Context, id uuid.UUID) (*auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, auth.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (s *memStorage) SetEmailConfirmed(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return auth.ErrUserNotFound
	}
	u.EmailConfirmed = true
	return nil
}

func (s *memStorage) SetPassword(ctx context.Context, id uuid.UUID, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return auth.ErrUserNotFound
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

func (s *memStorage) UpdateEmail(ctx context.Context, id uuid.UUID, email string) error {
	email, err := s.normalize(email)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return auth.ErrUserNotFound
	}

	for _, other := range s.users {
		if other.ID != id && other.Email == email {
			return auth.ErrEmailAlreadyExists
		}
	}

	u.Email = email
	u.EmailConfirmed = false
	return nil
}

// fakeNotifier records dispatched emails and can simulate transport failure.
type fakeNotifier struct {
	mu            sync.Mutex
	failWith      string
	confirmations []sentEmail
	resets        []sentEmail
}

type sentEmail struct {
	recipient string
	url       string
}

func (n *fakeNotifier) SendConfirmationEmail(ctx context.Context, recipient, confirmURL string) (bool, string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.failWith != "" {
		return false, n.failWith
	}
	n.confirmations = append(n.confirmations, sentEmail{recipient: recipient, url: confirmURL})
	return true, ""
}

func (n *fakeNotifier) SendPasswordResetEmail(ctx context.Context, recipient, resetURL string) (bool, string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.failWith != "" {
		return false, n.failWith
	}
	n.resets = append(n.resets, sentEmail{recipient: recipient, url: resetURL})
	return true, ""
}

func (n *fakeNotifier) lastConfirmation() (sentEmail, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.confirmations) == 0 {
		return sentEmail{}, false
	}
	return n.confirmations[len(n.confirmations)-1], true
}

func (n *fakeNotifier) lastReset() (sentEmail, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.resets) == 0 {
		return sentEmail{}, false
	}
	return n.resets[len(n.resets)-1], true
}

var _ auth.Storage = (*memStorage)(nil)
var _ auth.Notifier = (*fakeNotifier)(nil)

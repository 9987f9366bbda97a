package repository

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gitlab.com/yelinaung/expense-ledger/internal/models"
	"gitlab.com/yelinaung/expense-ledger/internal/store"
)

type userRecord struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserRepository manages the global user directory. It stores profile
// fields only; there are no credentials.
type UserRepository struct {
	mu  sync.Mutex
	c   collection[models.User, userRecord]
	now func() time.Time
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(backend store.Backend) *UserRepository {
	return &UserRepository{
		c: collection[models.User, userRecord]{
			backend:    backend,
			kind:       store.KindUsers,
			toRecord:   userToRecord,
			fromRecord: userFromRecord,
		},
		now: time.Now,
	}
}

// Register adds a user to the directory. An empty ID is assigned; the
// email is normalized to lower case and must be unique.
func (r *UserRepository) Register(ctx context.Context, user *models.User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	user.Name = strings.TrimSpace(user.Name)
	if user.Email == "" || !strings.Contains(user.Email, "@") {
		return fmt.Errorf("%w: a valid email is required", models.ErrValidation)
	}
	if user.Name == "" {
		return fmt.Errorf("%w: name is required", models.ErrValidation)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.c.load(ctx, "")
	if err != nil {
		return err
	}

	if user.ID == "" {
		user.ID = "user_" + uuid.NewString()
	}
	for _, u := range users {
		if u.ID == user.ID {
			return fmt.Errorf("%w: user id %q already registered", models.ErrValidation, user.ID)
		}
		if u.Email == user.Email {
			return fmt.Errorf("%w: email %q already registered", models.ErrValidation, user.Email)
		}
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = r.now().UTC()
	}

	if err := r.c.save(ctx, "", append(users, *user)); err != nil {
		return fmt.Errorf("failed to register user: %w", err)
	}
	return nil
}

// List returns every registered user in registration order.
func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	return r.c.load(ctx, "")
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	users, err := r.c.load(ctx, "")
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			return &users[i], nil
		}
	}
	return nil, fmt.Errorf("%w: user %q", models.ErrNotFound, id)
}

// FindByEmail retrieves a user by email, case-insensitively.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	users, err := r.c.load(ctx, "")
	if err != nil {
		return nil, err
	}
	email = strings.ToLower(strings.TrimSpace(email))
	for i := range users {
		if users[i].Email == email {
			return &users[i], nil
		}
	}
	return nil, fmt.Errorf("%w: no user with email %q", models.ErrNotFound, email)
}

func userToRecord(u models.User) userRecord {
	return userRecord{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt.UTC(),
	}
}

func userFromRecord(_ string, rec userRecord) (models.User, string, error) {
	if rec.ID == "" {
		return models.User{}, rec.ID, fmt.Errorf("missing id")
	}
	if rec.Email == "" {
		return models.User{}, rec.ID, fmt.Errorf("user %q has no email", rec.ID)
	}
	return models.User{
		ID:        rec.ID,
		Email:     rec.Email,
		Name:      rec.Name,
		CreatedAt: rec.CreatedAt,
	}, rec.ID, nil
}

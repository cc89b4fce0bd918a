package repository

import (
	"context"
	"strings"

	"github.com/spec-kit/console-service/internal/domain"
)

// UserRepository defines storage access for console operators.
type UserRepository interface {
	Save(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByPhoneNumber(ctx context.Context, phoneNumber string) (*domain.User, error)
	FindAll(ctx context.Context) ([]domain.User, error)
	Delete(ctx context.Context, id string) error
}

type memoryUserRepository struct {
	store *store[domain.User]
}

// NewUserRepository returns the in-memory implementation.
func NewUserRepository() UserRepository {
	return &memoryUserRepository{store: newStore[domain.User]()}
}

func (r *memoryUserRepository) Save(_ context.Context, user *domain.User) error {
	r.store.save(user.ID, *user)
	return nil
}

func (r *memoryUserRepository) Update(_ context.Context, user *domain.User) error {
	r.store.save(user.ID, *user)
	return nil
}

func (r *memoryUserRepository) FindByID(_ context.Context, id string) (*domain.User, error) {
	user, err := r.store.findByID(id)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByPhoneNumber looks up by the natural key, ignoring whitespace so
// "+57 300 123 4567" and "+573001234567" address the same account.
func (r *memoryUserRepository) FindByPhoneNumber(_ context.Context, phoneNumber string) (*domain.User, error) {
	wanted := normalizePhone(phoneNumber)
	matches := r.store.findBy(func(u domain.User) bool {
		return normalizePhone(u.PhoneNumber) == wanted
	})
	if len(matches) == 0 {
		return nil, ErrNotFound
	}
	return &matches[0], nil
}

func (r *memoryUserRepository) FindAll(_ context.Context) ([]domain.User, error) {
	return r.store.findAll(), nil
}

func (r *memoryUserRepository) Delete(_ context.Context, id string) error {
	r.store.delete(id)
	return nil
}

func normalizePhone(phone string) string {
	return strings.ReplaceAll(phone, " ", "")
}

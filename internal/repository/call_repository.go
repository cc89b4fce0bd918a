package repository

import (
	"context"

	"github.com/spec-kit/console-service/internal/domain"
)

// CallRepository encapsulates call storage.
type CallRepository interface {
	Save(ctx context.Context, call *domain.Call) error
	Update(ctx context.Context, call *domain.Call) error
	FindByID(ctx context.Context, id string) (*domain.Call, error)
	FindAll(ctx context.Context) ([]domain.Call, error)
	FindBy(ctx context.Context, predicate func(domain.Call) bool) ([]domain.Call, error)
	FindByStatus(ctx context.Context, status domain.CallStatus) ([]domain.Call, error)
	FindByType(ctx context.Context, callType domain.CallType) ([]domain.Call, error)
	FindUrgent(ctx context.Context) ([]domain.Call, error)
	Delete(ctx context.Context, id string) error
}

type memoryCallRepository struct {
	store *store[domain.Call]
}

// NewCallRepository returns the in-memory implementation.
func NewCallRepository() CallRepository {
	return &memoryCallRepository{store: newStore[domain.Call]()}
}

func (r *memoryCallRepository) Save(_ context.Context, call *domain.Call) error {
	r.store.save(call.ID, *call)
	return nil
}

// Update upserts like Save: last write wins, no optimistic-lock check.
func (r *memoryCallRepository) Update(_ context.Context, call *domain.Call) error {
	r.store.save(call.ID, *call)
	return nil
}

func (r *memoryCallRepository) FindByID(_ context.Context, id string) (*domain.Call, error) {
	call, err := r.store.findByID(id)
	if err != nil {
		return nil, err
	}
	return &call, nil
}

func (r *memoryCallRepository) FindAll(_ context.Context) ([]domain.Call, error) {
	return r.store.findAll(), nil
}

func (r *memoryCallRepository) FindBy(_ context.Context, predicate func(domain.Call) bool) ([]domain.Call, error) {
	return r.store.findBy(predicate), nil
}

func (r *memoryCallRepository) FindByStatus(ctx context.Context, status domain.CallStatus) ([]domain.Call, error) {
	return r.FindBy(ctx, func(c domain.Call) bool { return c.Status == status })
}

func (r *memoryCallRepository) FindByType(ctx context.Context, callType domain.CallType) ([]domain.Call, error) {
	return r.FindBy(ctx, func(c domain.Call) bool { return c.Type == callType })
}

func (r *memoryCallRepository) FindUrgent(ctx context.Context) ([]domain.Call, error) {
	return r.FindBy(ctx, func(c domain.Call) bool { return c.Urgency == domain.CallUrgencyHigh })
}

func (r *memoryCallRepository) Delete(_ context.Context, id string) error {
	r.store.delete(id)
	return nil
}

package repository

import (
	"context"
	"time"

	"github.com/spec-kit/console-service/internal/domain"
)

// TicketRepository encapsulates ticket storage.
type TicketRepository interface {
	Save(ctx context.Context, ticket *domain.Ticket) error
	Update(ctx context.Context, ticket *domain.Ticket) error
	FindByID(ctx context.Context, id string) (*domain.Ticket, error)
	FindAll(ctx context.Context) ([]domain.Ticket, error)
	FindBy(ctx context.Context, predicate func(domain.Ticket) bool) ([]domain.Ticket, error)
	FindByCategory(ctx context.Context, category domain.TicketCategory) ([]domain.Ticket, error)
	FindByStatus(ctx context.Context, status domain.TicketStatus) ([]domain.Ticket, error)
	FindOverdue(ctx context.Context, now time.Time) ([]domain.Ticket, error)
	Delete(ctx context.Context, id string) error
}

type memoryTicketRepository struct {
	store *store[domain.Ticket]
}

// NewTicketRepository returns the in-memory implementation.
func NewTicketRepository() TicketRepository {
	return &memoryTicketRepository{store: newStore[domain.Ticket]()}
}

func (r *memoryTicketRepository) Save(_ context.Context, ticket *domain.Ticket) error {
	r.store.save(ticket.ID, *ticket)
	return nil
}

func (r *memoryTicketRepository) Update(_ context.Context, ticket *domain.Ticket) error {
	r.store.save(ticket.ID, *ticket)
	return nil
}

func (r *memoryTicketRepository) FindByID(_ context.Context, id string) (*domain.Ticket, error) {
	ticket, err := r.store.findByID(id)
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *memoryTicketRepository) FindAll(_ context.Context) ([]domain.Ticket, error) {
	return r.store.findAll(), nil
}

func (r *memoryTicketRepository) FindBy(_ context.Context, predicate func(domain.Ticket) bool) ([]domain.Ticket, error) {
	return r.store.findBy(predicate), nil
}

func (r *memoryTicketRepository) FindByCategory(ctx context.Context, category domain.TicketCategory) ([]domain.Ticket, error) {
	return r.FindBy(ctx, func(t domain.Ticket) bool { return t.Category == category })
}

func (r *memoryTicketRepository) FindByStatus(ctx context.Context, status domain.TicketStatus) ([]domain.Ticket, error) {
	return r.FindBy(ctx, func(t domain.Ticket) bool { return t.Status == status })
}

func (r *memoryTicketRepository) FindOverdue(ctx context.Context, now time.Time) ([]domain.Ticket, error) {
	return r.FindBy(ctx, func(t domain.Ticket) bool { return t.IsOverdue(now) })
}

func (r *memoryTicketRepository) Delete(_ context.Context, id string) error {
	r.store.delete(id)
	return nil
}

package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/console-service/internal/domain"
	"github.com/spec-kit/console-service/internal/events"
	"github.com/spec-kit/console-service/internal/repository"
	apperrors "github.com/spec-kit/console-service/pkg/util/errorutil"
)

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	Category     domain.TicketCategory
	Title        string
	Description  string
	CustomerID   string
	CustomerName string
	SLADeadline  *time.Time
}

// TicketStats aggregates the dashboard counters.
type TicketStats struct {
	Total      int                           `json:"total"`
	ByCategory map[domain.TicketCategory]int `json:"by_category"`
	ByStatus   map[domain.TicketStatus]int   `json:"by_status"`
	Urgent     int                           `json:"urgent"`
}

// TicketService coordinates ticket workflows.
type TicketService struct {
	tickets    repository.TicketRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// TicketDependencies bundles collaborators for ticket service.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// CreateTicket builds a ticket with the category's default priority and a
// seeded creation history entry.
func (s *TicketService) CreateTicket(ctx context.Context, input TicketCreateInput) (*domain.Ticket, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperrors.NewValidationError("title is required", nil)
	}
	switch input.Category {
	case domain.TicketCategorySupport, domain.TicketCategoryComplaints, domain.TicketCategorySales:
	default:
		return nil, apperrors.NewValidationError("unknown ticket category", map[string]any{"category": input.Category})
	}

	ticket := domain.NewTicket(uuid.NewString(), input.Category, title, strings.TrimSpace(input.Description), input.CustomerID, input.CustomerName)
	ticket.SLADeadline = input.SLADeadline

	if err := s.tickets.Save(ctx, ticket); err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	s.publish(ctx, events.Event{
		Type:     events.EventTicketCreated,
		EntityID: ticket.ID,
		Payload:  events.TicketCreatedPayload{Category: ticket.Category, Priority: ticket.Priority, Title: ticket.Title},
	})
	return ticket, nil
}

// ChangeStatus transitions the ticket and appends one audit entry.
func (s *TicketService) ChangeStatus(ctx context.Context, ticketID string, newStatus domain.TicketStatus, actor, note string) error {
	ticket, err := s.tickets.FindByID(ctx, ticketID)
	if err != nil {
		return s.mapNotFound(err)
	}
	if note == "" {
		note = "status changed to " + string(newStatus)
	}

	old := ticket.Status
	ticket.ChangeStatus(newStatus, actor, note)
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return apperrors.NewInternalError(err)
	}

	s.publish(ctx, events.Event{
		Type:     events.EventTicketStatusChanged,
		EntityID: ticket.ID,
		Actor:    actor,
		Payload:  events.TicketStatusChangedPayload{OldStatus: old, NewStatus: newStatus, Note: note},
	})
	return nil
}

// Assign hands the ticket to an agent.
func (s *TicketService) Assign(ctx context.Context, ticketID, agentID, agentName string) error {
	ticket, err := s.tickets.FindByID(ctx, ticketID)
	if err != nil {
		return s.mapNotFound(err)
	}

	ticket.AssignTo(agentID, agentName)
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return apperrors.NewInternalError(err)
	}

	s.publish(ctx, events.Event{
		Type:     events.EventTicketAssigned,
		EntityID: ticket.ID,
		Actor:    agentName,
		Payload:  events.TicketAssignedPayload{AgentID: agentID, AgentName: agentName},
	})
	return nil
}

// Escalate raises priority one saturating step.
func (s *TicketService) Escalate(ctx context.Context, ticketID, actor string) error {
	ticket, err := s.tickets.FindByID(ctx, ticketID)
	if err != nil {
		return s.mapNotFound(err)
	}

	old := ticket.Priority
	ticket.Escalate(actor)
	if ticket.Priority == old {
		// already at urgent, nothing to persist
		return nil
	}
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return apperrors.NewInternalError(err)
	}

	s.publish(ctx, events.Event{
		Type:     events.EventTicketEscalated,
		EntityID: ticket.ID,
		Actor:    actor,
		Payload:  events.TicketEscalatedPayload{OldPriority: old, NewPriority: ticket.Priority},
	})
	return nil
}

// GetTicket fetches one ticket.
func (s *TicketService) GetTicket(ctx context.Context, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.tickets.FindByID(ctx, ticketID)
	if err != nil {
		return nil, s.mapNotFound(err)
	}
	return ticket, nil
}

// ListTickets returns all tickets in insertion order.
func (s *TicketService) ListTickets(ctx context.Context) ([]domain.Ticket, error) {
	return s.tickets.FindAll(ctx)
}

// ListByCategory filters tickets by category.
func (s *TicketService) ListByCategory(ctx context.Context, category domain.TicketCategory) ([]domain.Ticket, error) {
	return s.tickets.FindByCategory(ctx, category)
}

// ListByStatus filters tickets by lifecycle state.
func (s *TicketService) ListByStatus(ctx context.Context, status domain.TicketStatus) ([]domain.Ticket, error) {
	return s.tickets.FindByStatus(ctx, status)
}

// OverdueTickets returns tickets whose SLA deadline has passed.
func (s *TicketService) OverdueTickets(ctx context.Context) ([]domain.Ticket, error) {
	return s.tickets.FindOverdue(ctx, time.Now())
}

// Stats aggregates counts per category, status and urgent priority.
func (s *TicketService) Stats(ctx context.Context) (TicketStats, error) {
	tickets, err := s.tickets.FindAll(ctx)
	if err != nil {
		return TicketStats{}, err
	}

	stats := TicketStats{
		Total:      len(tickets),
		ByCategory: map[domain.TicketCategory]int{domain.TicketCategorySupport: 0, domain.TicketCategoryComplaints: 0, domain.TicketCategorySales: 0},
		ByStatus: map[domain.TicketStatus]int{
			domain.TicketStatusNew: 0, domain.TicketStatusInProgress: 0, domain.TicketStatusPendingUser: 0,
			domain.TicketStatusWaitingThirdParty: 0, domain.TicketStatusResolved: 0, domain.TicketStatusClosed: 0,
		},
		Urgent: 0,
	}
	for _, ticket := range tickets {
		stats.ByCategory[ticket.Category]++
		stats.ByStatus[ticket.Status]++
		if ticket.Priority == domain.TicketPriorityUrgent {
			stats.Urgent++
		}
	}
	return stats, nil
}

// SeedDemoTickets loads the console's demo rows when the store is empty.
func (s *TicketService) SeedDemoTickets(ctx context.Context) error {
	existing, err := s.tickets.FindAll(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	demos := []TicketCreateInput{
		{Category: domain.TicketCategorySupport, Title: "Error en aplicación móvil", Description: "La app se cierra inesperadamente al intentar hacer login", CustomerName: "Juan Pérez"},
		{Category: domain.TicketCategoryComplaints, Title: "Cobro indebido en factura", Description: "Se realizó un cobro duplicado en mi cuenta", CustomerName: "María García"},
		{Category: domain.TicketCategorySales, Title: "Consulta sobre plan premium", Description: "Interesado en upgrade a plan premium", CustomerName: "Carlos López"},
	}
	for _, demo := range demos {
		if _, err := s.CreateTicket(ctx, demo); err != nil {
			return err
		}
	}
	s.logger.Info("demo tickets seeded", zap.Int("count", len(demos)))
	return nil
}

func (s *TicketService) mapNotFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewNotFound("ticket", nil)
	}
	return apperrors.NewInternalError(err)
}

func (s *TicketService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now()
	_ = s.dispatcher.Publish(ctx, event)
}

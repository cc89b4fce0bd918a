package service

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	"github.com/spec-kit/console-service/internal/domain"
	"github.com/spec-kit/console-service/internal/persistence"
	"github.com/spec-kit/console-service/internal/repository"
	apperrors "github.com/spec-kit/console-service/pkg/util/errorutil"
)

// StateService snapshots the in-memory collections to the opaque key/blob
// boundary and restores them on demand. Snapshots are full-collection JSON
// blobs; the store never inspects them.
type StateService struct {
	calls     repository.CallRepository
	tickets   repository.TicketRepository
	users     repository.UserRepository
	snapshots persistence.SnapshotStore
	keyPrefix string
	logger    *zap.Logger
}

// StateDependencies bundles collaborators for state service.
type StateDependencies struct {
	CallRepo   repository.CallRepository
	TicketRepo repository.TicketRepository
	UserRepo   repository.UserRepository
	Snapshots  persistence.SnapshotStore
	KeyPrefix  string
	Logger     *zap.Logger
}

// NewStateService constructs the service.
func NewStateService(deps StateDependencies) *StateService {
	prefix := deps.KeyPrefix
	if prefix == "" {
		prefix = "console:state"
	}
	return &StateService{
		calls:     deps.CallRepo,
		tickets:   deps.TicketRepo,
		users:     deps.UserRepo,
		snapshots: deps.Snapshots,
		keyPrefix: prefix,
		logger:    deps.Logger,
	}
}

// SaveState serializes all three collections to the snapshot store.
func (s *StateService) SaveState(ctx context.Context) error {
	calls, err := s.calls.FindAll(ctx)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	tickets, err := s.tickets.FindAll(ctx)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	users, err := s.users.FindAll(ctx)
	if err != nil {
		return apperrors.NewInternalError(err)
	}

	if err := s.saveBlob(ctx, "calls", calls); err != nil {
		return err
	}
	if err := s.saveBlob(ctx, "tickets", tickets); err != nil {
		return err
	}
	if err := s.saveBlob(ctx, "users", users); err != nil {
		return err
	}

	s.logger.Info("state snapshot saved",
		zap.Int("calls", len(calls)),
		zap.Int("tickets", len(tickets)),
		zap.Int("users", len(users)),
	)
	return nil
}

// LoadState restores collections from the snapshot store. Absent blobs are
// skipped; whatever is present wins over the current in-memory rows.
func (s *StateService) LoadState(ctx context.Context) error {
	var calls []domain.Call
	if ok, err := s.loadBlob(ctx, "calls", &calls); err != nil {
		return err
	} else if ok {
		for i := range calls {
			if err := s.calls.Save(ctx, &calls[i]); err != nil {
				return apperrors.NewInternalError(err)
			}
		}
	}

	var tickets []domain.Ticket
	if ok, err := s.loadBlob(ctx, "tickets", &tickets); err != nil {
		return err
	} else if ok {
		for i := range tickets {
			if err := s.tickets.Save(ctx, &tickets[i]); err != nil {
				return apperrors.NewInternalError(err)
			}
		}
	}

	var users []domain.User
	if ok, err := s.loadBlob(ctx, "users", &users); err != nil {
		return err
	} else if ok {
		for i := range users {
			if err := s.users.Save(ctx, &users[i]); err != nil {
				return apperrors.NewInternalError(err)
			}
		}
	}

	s.logger.Info("state snapshot loaded",
		zap.Int("calls", len(calls)),
		zap.Int("tickets", len(tickets)),
		zap.Int("users", len(users)),
	)
	return nil
}

// ClearState removes all snapshot blobs.
func (s *StateService) ClearState(ctx context.Context) error {
	for _, suffix := range []string{"calls", "tickets", "users"} {
		if err := s.snapshots.Remove(ctx, s.key(suffix)); err != nil {
			return apperrors.NewInternalError(err)
		}
	}
	return nil
}

func (s *StateService) saveBlob(ctx context.Context, suffix string, collection any) error {
	blob, err := json.Marshal(collection)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	if err := s.snapshots.Save(ctx, s.key(suffix), blob); err != nil {
		return apperrors.NewInternalError(err)
	}
	return nil
}

func (s *StateService) loadBlob(ctx context.Context, suffix string, out any) (bool, error) {
	blob, err := s.snapshots.Load(ctx, s.key(suffix))
	if errors.Is(err, persistence.ErrSnapshotAbsent) {
		return false, nil
	}
	if err != nil {
		return false, apperrors.NewInternalError(err)
	}
	if err := json.Unmarshal(blob, out); err != nil {
		return false, apperrors.NewInternalError(err)
	}
	return true, nil
}

func (s *StateService) key(suffix string) string {
	return s.keyPrefix + ":" + suffix
}

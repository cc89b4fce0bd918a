package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/spec-kit/console-service/internal/domain"
)

func TestCallRepositoryRoundTrip(t *testing.T) {
	repo := NewCallRepository()
	ctx := context.Background()

	call := domain.NewCall("call-1", "+573001112222", domain.CallTypeSales, "quiero comprar un plan")
	if err := repo.Save(ctx, call); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := repo.FindByID(ctx, "call-1")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.PhoneNumber != call.PhoneNumber || got.Type != call.Type {
		t.Errorf("stored call does not match: %+v", got)
	}

	// the repository holds a copy, not the caller's pointer
	call.Description = "mutated after save"
	again, err := repo.FindByID(ctx, "call-1")
	if err != nil {
		t.Fatalf("find after mutation: %v", err)
	}
	if again.Description == "mutated after save" {
		t.Error("repository shares state with the caller")
	}
}

func TestCallRepositoryMissingID(t *testing.T) {
	repo := NewCallRepository()
	if _, err := repo.FindByID(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCallRepositoryDeleteAbsentIsNoop(t *testing.T) {
	repo := NewCallRepository()
	if err := repo.Delete(context.Background(), "nope"); err != nil {
		t.Errorf("delete of absent id should not error: %v", err)
	}
}

func TestCallRepositoryInsertionOrder(t *testing.T) {
	repo := NewCallRepository()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		call := domain.NewCall(fmt.Sprintf("call-%d", i), "+573001112222", domain.CallTypeSales, "")
		if err := repo.Save(ctx, call); err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	// updating an existing entry must not move it
	first, err := repo.FindByID(ctx, "call-0")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	first.Description = "updated"
	if err := repo.Update(ctx, first); err != nil {
		t.Fatalf("update: %v", err)
	}

	all, err := repo.FindAll(ctx)
	if err != nil {
		t.Fatalf("findAll: %v", err)
	}
	if len(all) != 5 {
		t.Fatalf("expected 5 calls, got %d", len(all))
	}
	for i, call := range all {
		want := fmt.Sprintf("call-%d", i)
		if call.ID != want {
			t.Errorf("position %d: expected %s, got %s", i, want, call.ID)
		}
	}
}

func TestCallRepositoryFilters(t *testing.T) {
	repo := NewCallRepository()
	ctx := context.Background()

	sales := domain.NewCall("call-1", "+573001112222", domain.CallTypeSales, "")
	complaint := domain.NewCall("call-2", "+573001113333", domain.CallTypeComplaint, "")
	if err := complaint.UpdateDuration(400); err != nil {
		t.Fatalf("update duration: %v", err)
	}
	complaint.ChangeStatus(domain.CallStatusOnHold)

	for _, c := range []*domain.Call{sales, complaint} {
		if err := repo.Save(ctx, c); err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	byType, err := repo.FindByType(ctx, domain.CallTypeSales)
	if err != nil {
		t.Fatalf("findByType: %v", err)
	}
	if len(byType) != 1 || byType[0].ID != "call-1" {
		t.Errorf("unexpected type filter result: %+v", byType)
	}

	byStatus, err := repo.FindByStatus(ctx, domain.CallStatusOnHold)
	if err != nil {
		t.Fatalf("findByStatus: %v", err)
	}
	if len(byStatus) != 1 || byStatus[0].ID != "call-2" {
		t.Errorf("unexpected status filter result: %+v", byStatus)
	}

	urgent, err := repo.FindUrgent(ctx)
	if err != nil {
		t.Fatalf("findUrgent: %v", err)
	}
	if len(urgent) != 1 || urgent[0].ID != "call-2" {
		t.Errorf("unexpected urgent filter result: %+v", urgent)
	}
}

func TestUserRepositoryFindByPhoneNumber(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	user := &domain.User{ID: "u1", PhoneNumber: "+57 300 123 4567", Role: domain.UserRoleAgent}
	if err := repo.Save(ctx, user); err != nil {
		t.Fatalf("save: %v", err)
	}

	tests := []struct {
		name  string
		phone string
		found bool
	}{
		{"exact", "+57 300 123 4567", true},
		{"no spaces", "+573001234567", true},
		{"different spacing", "+5730 0123 4567", true},
		{"other number", "+573009999999", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := repo.FindByPhoneNumber(ctx, tc.phone)
			if tc.found {
				if err != nil {
					t.Fatalf("expected match, got %v", err)
				}
				if got.ID != "u1" {
					t.Errorf("wrong user: %+v", got)
				}
				return
			}
			if !errors.Is(err, ErrNotFound) {
				t.Errorf("expected ErrNotFound, got %v", err)
			}
		})
	}
}

func TestTicketRepositoryOverdue(t *testing.T) {
	repo := NewTicketRepository()
	ctx := context.Background()

	overdue := domain.NewTicket("t1", domain.TicketCategorySupport, "slow internet", "", "", "")
	past := overdue.CreatedAt.Add(-time.Hour)
	overdue.SLADeadline = &past

	fresh := domain.NewTicket("t2", domain.TicketCategorySales, "plan upgrade", "", "", "")
	future := fresh.CreatedAt.Add(time.Hour)
	fresh.SLADeadline = &future

	noDeadline := domain.NewTicket("t3", domain.TicketCategorySupport, "question", "", "", "")

	for _, tk := range []*domain.Ticket{overdue, fresh, noDeadline} {
		if err := repo.Save(ctx, tk); err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	got, err := repo.FindOverdue(ctx, time.Now())
	if err != nil {
		t.Fatalf("findOverdue: %v", err)
	}
	if len(got) != 1 || got[0].ID != "t1" {
		t.Errorf("unexpected overdue result: %+v", got)
	}
}

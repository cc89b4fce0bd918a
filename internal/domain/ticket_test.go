package domain

import (
	"testing"
	"time"
)

func TestNewTicketDefaults(t *testing.T) {
	tests := []struct {
		category TicketCategory
		want     TicketPriority
	}{
		{category: TicketCategorySupport, want: TicketPriorityMedium},
		{category: TicketCategoryComplaints, want: TicketPriorityHigh},
		{category: TicketCategorySales, want: TicketPriorityLow},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			ticket := NewTicket("tkt-1", tt.category, "title", "desc", "", "Juan Pérez")
			if ticket.Priority != tt.want {
				t.Errorf("expected priority %s, got %s", tt.want, ticket.Priority)
			}
			if ticket.Status != TicketStatusNew {
				t.Errorf("expected status new, got %s", ticket.Status)
			}
			if len(ticket.History) != 1 {
				t.Fatalf("expected seeded creation entry, got %d entries", len(ticket.History))
			}
			if ticket.History[0].Action != HistoryActionCreated {
				t.Errorf("expected created action, got %s", ticket.History[0].Action)
			}
			if ticket.UpdatedAt.Before(ticket.CreatedAt) {
				t.Error("updatedAt precedes createdAt")
			}
		})
	}
}

func TestChangeStatusAppendsOneEntry(t *testing.T) {
	ticket := NewTicket("tkt-1", TicketCategorySupport, "title", "desc", "", "")

	before := len(ticket.History)
	ticket.ChangeStatus(TicketStatusInProgress, "agent-7", "picked up")

	if len(ticket.History) != before+1 {
		t.Fatalf("expected %d entries, got %d", before+1, len(ticket.History))
	}

	entry := ticket.History[len(ticket.History)-1]
	if entry.PreviousStatus == nil || *entry.PreviousStatus != TicketStatusNew {
		t.Errorf("previous status should be the pre-call status new, got %v", entry.PreviousStatus)
	}
	if entry.NewStatus == nil || *entry.NewStatus != TicketStatusInProgress {
		t.Errorf("new status should be in_progress, got %v", entry.NewStatus)
	}
	if entry.Actor != "agent-7" {
		t.Errorf("expected actor agent-7, got %s", entry.Actor)
	}
	if ticket.Status != TicketStatusInProgress {
		t.Errorf("expected status in_progress, got %s", ticket.Status)
	}

	// second transition records the genuinely previous status, not itself
	ticket.ChangeStatus(TicketStatusResolved, "agent-7", "fixed")
	entry = ticket.History[len(ticket.History)-1]
	if *entry.PreviousStatus != TicketStatusInProgress {
		t.Errorf("expected previous in_progress, got %s", *entry.PreviousStatus)
	}
	if *entry.NewStatus != TicketStatusResolved {
		t.Errorf("expected new resolved, got %s", *entry.NewStatus)
	}
}

func TestEscalateSaturates(t *testing.T) {
	ticket := NewTicket("tkt-1", TicketCategorySales, "title", "desc", "", "")

	steps := []TicketPriority{TicketPriorityMedium, TicketPriorityHigh, TicketPriorityUrgent}
	for _, want := range steps {
		ticket.Escalate("supervisor")
		if ticket.Priority != want {
			t.Fatalf("expected priority %s, got %s", want, ticket.Priority)
		}
	}

	historyAtCeiling := len(ticket.History)
	ticket.Escalate("supervisor")
	ticket.Escalate("supervisor")

	if ticket.Priority != TicketPriorityUrgent {
		t.Errorf("priority moved past urgent: %s", ticket.Priority)
	}
	if len(ticket.History) != historyAtCeiling {
		t.Errorf("escalate at ceiling appended history: %d entries, expected %d", len(ticket.History), historyAtCeiling)
	}
}

func TestEscalateAppendsAuditEntry(t *testing.T) {
	ticket := NewTicket("tkt-1", TicketCategorySupport, "title", "desc", "", "")
	before := len(ticket.History)

	ticket.Escalate("supervisor")

	if len(ticket.History) != before+1 {
		t.Fatalf("expected one priority_change entry, got %d new", len(ticket.History)-before)
	}
	if ticket.History[len(ticket.History)-1].Action != HistoryActionPriorityChange {
		t.Errorf("expected priority_change action, got %s", ticket.History[len(ticket.History)-1].Action)
	}
}

func TestIsOverdue(t *testing.T) {
	now := time.Now()
	ticket := NewTicket("tkt-1", TicketCategorySupport, "title", "desc", "", "")

	if ticket.IsOverdue(now) {
		t.Error("ticket without deadline reported overdue")
	}

	past := now.Add(-time.Hour)
	ticket.SLADeadline = &past
	if !ticket.IsOverdue(now) {
		t.Error("ticket past deadline not reported overdue")
	}

	future := now.Add(time.Hour)
	ticket.SLADeadline = &future
	if ticket.IsOverdue(now) {
		t.Error("ticket before deadline reported overdue")
	}
}

package booking

import (
	"testing"

	"lokalBack/internal/models"
)

func TestCanTransition(t *testing.T) {
	if !CanTransition(StatusPending, StatusConfirmed) {
		t.Fatal("expected pending -> confirmed to be allowed")
	}
	if !CanTransition(StatusPending, StatusRejected) {
		t.Fatal("expected pending -> rejected to be allowed")
	}
	if !CanTransition(StatusConfirmed, StatusCompleted) {
		t.Fatal("expected confirmed -> completed to be allowed")
	}
	if !CanTransition(StatusRescheduled, StatusRescheduled) {
		t.Fatal("expected rescheduled -> rescheduled to be allowed")
	}
	if !CanTransition(StatusRescheduled, StatusCompleted) {
		t.Fatal("expected rescheduled -> completed to be allowed")
	}
	if CanTransition(StatusPending, StatusCompleted) {
		t.Fatal("unexpected pending -> completed allowed")
	}
	if CanTransition(StatusRejected, StatusConfirmed) {
		t.Fatal("unexpected transition out of rejected")
	}
}

func TestTerminalStatusesNeverChange(t *testing.T) {
	terminals := []string{StatusRejected, StatusCompleted, StatusCancelled}
	all := []string{StatusPending, StatusConfirmed, StatusRejected, StatusRescheduled, StatusCompleted, StatusCancelled}
	for _, from := range terminals {
		if !IsTerminal(from) {
			t.Fatalf("expected %s to be terminal", from)
		}
		for _, to := range all {
			if CanTransition(from, to) {
				t.Fatalf("terminal status %s must not transition to %s", from, to)
			}
		}
	}
	for _, live := range []string{StatusPending, StatusConfirmed, StatusRescheduled} {
		if IsTerminal(live) {
			t.Fatalf("did not expect %s to be terminal", live)
		}
	}
}

func TestIsLive(t *testing.T) {
	for _, s := range []string{StatusPending, StatusConfirmed, StatusRescheduled} {
		if !IsLive(s) {
			t.Fatalf("expected %s to occupy the schedule", s)
		}
	}
	for _, s := range []string{StatusRejected, StatusCompleted, StatusCancelled} {
		if IsLive(s) {
			t.Fatalf("did not expect %s to occupy the schedule", s)
		}
	}
}

func TestActorAllowed(t *testing.T) {
	tests := []struct {
		action string
		role   string
		want   bool
	}{
		{ActionAccept, models.RoleProvider, true},
		{ActionAccept, models.RoleCustomer, false},
		{ActionReject, models.RoleProvider, true},
		{ActionCancel, models.RoleCustomer, true},
		{ActionCancel, models.RoleProvider, false},
		{ActionReschedule, models.RoleProvider, true},
		{ActionReschedule, models.RoleCustomer, false},
		{ActionComplete, models.RoleProvider, true},
		{ActionComplete, models.RoleAdmin, true},
		{"unknown", models.RoleAdmin, false},
	}
	for _, tc := range tests {
		if got := ActorAllowed(tc.action, tc.role); got != tc.want {
			t.Errorf("ActorAllowed(%s, %s) = %v, want %v", tc.action, tc.role, got, tc.want)
		}
	}
}

func TestTargetStatus(t *testing.T) {
	if to, ok := TargetStatus(ActionAccept); !ok || to != StatusConfirmed {
		t.Fatalf("accept should target confirmed, got %s", to)
	}
	if to, ok := TargetStatus(ActionReject); !ok || to != StatusRejected {
		t.Fatalf("reject should target rejected, got %s", to)
	}
	if _, ok := TargetStatus("noop"); ok {
		t.Fatal("unknown action should not resolve")
	}
}

package booking

import (
	"context"
	"database/sql"

	"lokalBack/internal/models"
)

// Status constants used by the booking state machine.
const (
	StatusPending     = "pending"
	StatusConfirmed   = "confirmed"
	StatusRejected    = "rejected"
	StatusRescheduled = "rescheduled"
	StatusCompleted   = "completed"
	StatusCancelled   = "cancelled"
)

// Actions map to the role allowed to trigger them. Admins pass every guard
// at the middleware layer, so they are not listed here.
const (
	ActionAccept     = "accept"
	ActionReject     = "reject"
	ActionCancel     = "cancel"
	ActionReschedule = "reschedule"
	ActionComplete   = "complete"
)

var transitions = map[string]map[string]struct{}{
	StatusPending: {
		StatusConfirmed:   {},
		StatusRejected:    {},
		StatusCancelled:   {},
		StatusRescheduled: {},
	},
	StatusConfirmed: {
		StatusCancelled:   {},
		StatusRescheduled: {},
		StatusCompleted:   {},
	},
	// A rescheduled booking stays actionable: it behaves like a confirmed
	// one for cancel/complete and may be moved again.
	StatusRescheduled: {
		StatusCancelled:   {},
		StatusRescheduled: {},
		StatusCompleted:   {},
	},
	StatusRejected:  {},
	StatusCompleted: {},
	StatusCancelled: {},
}

var actionTargets = map[string]string{
	ActionAccept:     StatusConfirmed,
	ActionReject:     StatusRejected,
	ActionCancel:     StatusCancelled,
	ActionReschedule: StatusRescheduled,
	ActionComplete:   StatusCompleted,
}

var actionRoles = map[string]string{
	ActionAccept:     models.RoleProvider,
	ActionReject:     models.RoleProvider,
	ActionCancel:     models.RoleCustomer,
	ActionReschedule: models.RoleProvider,
	ActionComplete:   models.RoleProvider,
}

// CanTransition reports whether a booking may move from one status to another.
func CanTransition(from, to string) bool {
	allowed, ok := transitions[from]
	if !ok {
		return false
	}
	_, ok = allowed[to]
	return ok
}

// IsTerminal reports whether no further transition is legal from the status.
func IsTerminal(status string) bool {
	return len(transitions[status]) == 0 && status != ""
}

// IsLive reports whether the status occupies the provider's schedule for
// conflict purposes.
func IsLive(status string) bool {
	switch status {
	case StatusPending, StatusConfirmed, StatusRescheduled:
		return true
	}
	return false
}

// TargetStatus resolves an action name to the status it produces.
func TargetStatus(action string) (string, bool) {
	to, ok := actionTargets[action]
	return to, ok
}

// ActorAllowed reports whether the role may trigger the action. Accept,
// reject, reschedule and complete belong to the owning provider; cancel
// belongs to the owning customer.
func ActorAllowed(action, role string) bool {
	want, ok := actionRoles[action]
	if !ok {
		return false
	}
	return role == want || role == models.RoleAdmin
}

// Apply performs the status change with optimistic validation: the UPDATE is
// conditioned on the status read inside the same transaction, so two
// concurrent transitions on one booking cannot both succeed.
func Apply(ctx context.Context, tx *sql.Tx, bookingID int, fromStatus, toStatus string) error {
	if !CanTransition(fromStatus, toStatus) {
		return models.ErrInvalidTransition
	}
	res, err := tx.ExecContext(ctx,
		`UPDATE bookings SET status = $1, updated_at = NOW() WHERE id = $2 AND status = $3`,
		toStatus, bookingID, fromStatus)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		// Status moved under us between read and write.
		return models.ErrInvalidTransition
	}
	return nil
}

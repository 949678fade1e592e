package leave

import (
	"context"
	"time"
)

// LeaveRepository exposes approved leave only; requests in any other status are invisible.
type LeaveRepository interface {
	// ListApproved returns approved intervals of the nurse that overlap [from, to]
	ListApproved(ctx context.Context, nurseID string, from, to time.Time) ([]Interval, error)
}

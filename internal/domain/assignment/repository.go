package assignment

import "context"

// AssignmentRepository is read-only: assignments are owned by assignment management.
type AssignmentRepository interface {
	// GetByID returns ErrAssignmentNotFound when no assignment has this id
	GetByID(ctx context.Context, id string) (Assignment, error)
}

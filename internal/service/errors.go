package service

import (
	"errors"
	"sort"
	"strings"

	"alcyxob/gym-management/internal/concurrency"
	"alcyxob/gym-management/internal/schedule"
)

// --- Error Definitions ---
var (
	ErrNotFound       = errors.New("record not found")
	ErrForbidden      = errors.New("you are not allowed to access this record")
	ErrNotCreator     = errors.New("supervisors can only delete records they created")
	ErrMissingEndTime = errors.New("workout end time is required")
	ErrInvalidUpload  = errors.New("uploaded file does not match the request")
)

// MsgSaveFailed is shown for any failure the user cannot fix by editing.
const MsgSaveFailed = "Unable to save changes. Try again, and if the problem persists see your system administrator."

// ValidationError carries one message per invalid field. The "" key holds
// messages that apply to the whole record.
type ValidationError struct {
	FieldErrors map[string]string
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.FieldErrors))
	for f := range e.FieldErrors {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	msgs := make([]string, 0, len(fields))
	for _, f := range fields {
		if f == "" {
			msgs = append(msgs, e.FieldErrors[f])
			continue
		}
		msgs = append(msgs, f+": "+e.FieldErrors[f])
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Add records msg for field unless the field already has one.
func (e *ValidationError) Add(field, msg string) {
	if e.FieldErrors == nil {
		e.FieldErrors = map[string]string{}
	}
	if _, ok := e.FieldErrors[field]; !ok {
		e.FieldErrors[field] = msg
	}
}

// Err returns e, or nil when nothing was added.
func (e *ValidationError) Err() error {
	if e == nil || len(e.FieldErrors) == 0 {
		return nil
	}
	return e
}

// ScheduleConflictError means the workout would double-book the client or
// the instructor.
type ScheduleConflictError struct {
	Result schedule.ConflictResult
}

func (e *ScheduleConflictError) Error() string { return e.Result.Reason }

// ConcurrencyError means the edit lost a race with another user. Diff lists
// what changed underneath and carries the version to resubmit with.
type ConcurrencyError struct {
	Diff *concurrency.Diff
}

func (e *ConcurrencyError) Error() string { return e.Diff.Notice }

// Deleted reports whether the record is gone rather than changed.
func (e *ConcurrencyError) Deleted() bool { return e.Diff.EntityDeleted }

// ConstraintError is a uniqueness or reference rule the database refused.
// Field is empty when the message is about the record as a whole.
type ConstraintError struct {
	Field   string
	Message string
}

func (e *ConstraintError) Error() string { return e.Message }

var (
	_ error = (*ValidationError)(nil)
	_ error = (*ScheduleConflictError)(nil)
	_ error = (*ConcurrencyError)(nil)
	_ error = (*ConstraintError)(nil)
)

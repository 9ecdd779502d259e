// Package schedule detects double-booked workouts.
package schedule

import (
	"alcyxob/gym-management/internal/domain"
)

// ConflictType describes who is double-booked.
type ConflictType string

const (
	ConflictNone       ConflictType = ""
	ConflictClient     ConflictType = "client"
	ConflictInstructor ConflictType = "instructor"
	ConflictBoth       ConflictType = "both"
)

// ConflictResult is what callers render back to the user. Reason is empty
// when there is no conflict.
type ConflictResult struct {
	IsConflict bool         `json:"isConflict"`
	Type       ConflictType `json:"type,omitempty"`
	Reason     string       `json:"reason,omitempty"`
	// With is the existing workout the candidate collides with.
	With *domain.Workout `json:"-"`
}

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) intersect.
// A workout without an end time never overlaps anything.
func Overlaps(a, b *domain.Workout) bool {
	if a.EndTime == nil || b.EndTime == nil {
		return false
	}
	return a.StartTime.Before(*b.EndTime) && a.EndTime.After(b.StartTime)
}

// CheckConflict looks for the first workout in window that overlaps the
// candidate and shares its client or its instructor. The window is expected
// to hold the workouts starting on the candidate's calendar date; the gym is
// closed overnight so nothing spans midnight. Entries with the candidate's
// ID are skipped so an edited workout never collides with its stored self.
//
// The first match wins; window order is whatever the caller supplies.
func CheckConflict(candidate *domain.Workout, window []domain.Workout) ConflictResult {
	if len(window) == 0 {
		return ConflictResult{}
	}

	for i := range window {
		existing := &window[i]
		if !candidate.ID.IsZero() && existing.ID == candidate.ID {
			continue
		}
		if !Overlaps(candidate, existing) {
			continue
		}

		clientClash := existing.ClientID == candidate.ClientID
		// No conflict for the instructor if none is assigned.
		instructorClash := candidate.SameInstructor(existing)

		var kind ConflictType
		switch {
		case clientClash && instructorClash:
			kind = ConflictBoth
		case clientClash:
			kind = ConflictClient
		case instructorClash:
			kind = ConflictInstructor
		default:
			continue
		}

		return ConflictResult{
			IsConflict: true,
			Type:       kind,
			Reason:     reason(existing, kind),
			With:       existing,
		}
	}

	return ConflictResult{}
}

func reason(existing *domain.Workout, kind ConflictType) string {
	var who string
	switch kind {
	case ConflictBoth:
		who = "for both the client and instructor."
	case ConflictInstructor:
		who = "for the instructor."
	default:
		who = "for the client."
	}
	return "Unable to save changes. This workout overlaps with an existing " +
		existing.DurationSummary() + " workout scheduled to start at " +
		existing.StartDateSummary() + " " + existing.StartTimeSummary() +
		" - This is a conflict " + who
}

package domain

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Workout is a one-on-one session booked for a Client, optionally
// supervised by an Instructor.
type Workout struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	ClientID     primitive.ObjectID   `bson:"clientId" json:"clientId"`
	InstructorID *primitive.ObjectID  `bson:"instructorId,omitempty" json:"instructorId,omitempty"` // No instructor means no instructor conflicts
	StartTime    time.Time            `bson:"startTime" json:"startTime"`
	EndTime      *time.Time           `bson:"endTime,omitempty" json:"endTime,omitempty"`
	Notes        string               `bson:"notes,omitempty" json:"notes,omitempty"`
	ExerciseIDs  []primitive.ObjectID `bson:"exerciseIds,omitempty" json:"exerciseIds,omitempty"`
	CreatedAt    time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// Workout duration choices offered when booking, in minutes.
var WorkoutDurations = []int{10, 20, 30, 40, 50, 60, 70, 80, 90, 120}

// DefaultWorkoutDuration is used when a booking arrives without a duration.
const DefaultWorkoutDuration = 30 * time.Minute

// In returns a copy of w with its times expressed in loc. The store hands
// times back in UTC; display and day boundaries need the gym's wall clock.
func (w Workout) In(loc *time.Location) Workout {
	if loc == nil {
		return w
	}
	w.StartTime = w.StartTime.In(loc)
	if w.EndTime != nil {
		end := w.EndTime.In(loc)
		w.EndTime = &end
	}
	return w
}

// CalendarDay truncates t to midnight in its own location.
func CalendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// HasInstructor reports whether an instructor is assigned.
func (w *Workout) HasInstructor() bool {
	return w.InstructorID != nil && *w.InstructorID != primitive.NilObjectID
}

// SameInstructor reports whether both workouts have the same assigned instructor.
func (w *Workout) SameInstructor(other *Workout) bool {
	return w.HasInstructor() && other.HasInstructor() && *w.InstructorID == *other.InstructorID
}

// Duration is zero when the end time is unknown.
func (w *Workout) Duration() time.Duration {
	if w.EndTime == nil {
		return 0
	}
	return w.EndTime.Sub(w.StartTime)
}

func (w *Workout) StartDateSummary() string {
	return w.StartTime.Format("2006-01-02")
}

func (w *Workout) StartTimeSummary() string {
	return w.StartTime.Format("3:04 PM")
}

// EndTimeSummary shows the end time, noting when it falls on a later day.
func (w *Workout) EndTimeSummary() string {
	if w.EndTime == nil {
		return "Unknown"
	}
	end := w.EndTime.Format("3:04 PM")
	days := int(w.Duration().Hours()) / 24
	if days > 0 {
		return fmt.Sprintf("%s (%d day%s later)", end, days, plural(days))
	}
	return end
}

// DurationSummary renders the workout length as e.g. "1 hr, 20 min".
func (w *Workout) DurationSummary() string {
	if w.EndTime == nil {
		return ""
	}
	return DurationSummary(w.Duration())
}

// DurationSummary renders d as days, hours and minutes, omitting zero parts.
func DurationSummary(d time.Duration) string {
	total := int(d.Minutes())
	days := total / (24 * 60)
	hours := (total / 60) % 24
	minutes := total % 60

	duration := ""
	if minutes > 0 {
		duration = fmt.Sprintf("%d min", minutes)
	}
	if hours > 0 {
		h := fmt.Sprintf("%d hr%s", hours, plural(hours))
		if minutes > 0 {
			h += ", " + duration
		}
		duration = h
	}
	if days > 0 {
		dd := fmt.Sprintf("%d day%s", days, plural(days))
		if hours > 0 || minutes > 0 {
			dd += ", " + duration
		}
		duration = dd
	}
	return duration
}

func plural(n int) string {
	if n > 1 {
		return "s"
	}
	return ""
}

package domain

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DOW is the day of the week a group class runs.
type DOW int

const (
	Sunday DOW = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

var dowNames = [...]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

func (d DOW) String() string {
	if d < Sunday || d > Saturday {
		return "Unknown"
	}
	return dowNames[d]
}

func (d DOW) Valid() bool {
	return d >= Sunday && d <= Saturday
}

// ParseDOW accepts the three letter names used by String.
func ParseDOW(s string) (DOW, bool) {
	for i, name := range dowNames {
		if name == s {
			return DOW(i), true
		}
	}
	return 0, false
}

// GroupClass is a weekly scheduled class. An instructor cannot teach two
// classes on the same day at the same time.
type GroupClass struct {
	ID                primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Description       string               `bson:"description" json:"description"`
	DOW               DOW                  `bson:"dow" json:"dow"`
	FitnessCategoryID primitive.ObjectID   `bson:"fitnessCategoryId" json:"fitnessCategoryId"`
	InstructorID      primitive.ObjectID   `bson:"instructorId" json:"instructorId"`
	ClassTimeID       primitive.ObjectID   `bson:"classTimeId" json:"classTimeId"`
	ClientIDs         []primitive.ObjectID `bson:"clientIds,omitempty" json:"clientIds,omitempty"` // Enrollments

	Audit     `bson:",inline"`
	Versioned `bson:",inline"`
}

// Summary is e.g. "Yoga - Mon 9:00 AM".
func (g *GroupClass) Summary(category, startTime string) string {
	if category == "" || startTime == "" {
		return "Class - " + g.DOW.String()
	}
	return category + " - " + g.DOW.String() + " " + startTime
}

// ShortDescription truncates long descriptions for list views.
func (g *GroupClass) ShortDescription() string {
	r := []rune(g.Description)
	if len(r) > 20 {
		return string(r[:20]) + "..."
	}
	return g.Description
}

// IsEnrolled reports whether the client attends the class.
func (g *GroupClass) IsEnrolled(clientID primitive.ObjectID) bool {
	for _, id := range g.ClientIDs {
		if id == clientID {
			return true
		}
	}
	return false
}

// FitnessCategory groups classes and exercises (Yoga, Cardio, ...).
type FitnessCategory struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Category string             `bson:"category" json:"category"` // Unique

	Audit     `bson:",inline"`
	Versioned `bson:",inline"`
}

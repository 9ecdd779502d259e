package domain

import (
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GymOpened is the earliest hire date an instructor can have.
var GymOpened = time.Date(2018, time.January, 1, 0, 0, 0, 0, time.UTC)

// Instructor leads group classes and supervises workouts.
type Instructor struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FirstName  string             `bson:"firstName" json:"firstName"`
	MiddleName string             `bson:"middleName,omitempty" json:"middleName,omitempty"`
	LastName   string             `bson:"lastName" json:"lastName"`
	HireDate   time.Time          `bson:"hireDate" json:"hireDate"`
	Phone      string             `bson:"phone" json:"phone"`
	Email      string             `bson:"email" json:"email"` // Unique
	IsActive   bool               `bson:"isActive" json:"isActive"`

	Audit     `bson:",inline"`
	Versioned `bson:",inline"`
}

// Summary is "First M. Last".
func (i *Instructor) Summary() string {
	return personName(i.FirstName, i.MiddleName, i.LastName)
}

func (i *Instructor) FormalName() string {
	return formalName(i.FirstName, i.MiddleName, i.LastName)
}

// Seniority is e.g. "4 Yrs.".
func (i *Instructor) Seniority(today time.Time) string {
	return strconv.Itoa(yearsBetween(i.HireDate, today)) + " Yrs."
}

func (i *Instructor) PhoneFormatted() string {
	return FormatPhone(i.Phone)
}

// InstructorDocument is a file kept on record for an instructor
// (certifications, contracts).
type InstructorDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	InstructorID primitive.ObjectID `bson:"instructorId" json:"instructorId"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
	StoredFile   `bson:",inline"`
}

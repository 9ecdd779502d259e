package domain

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MembershipType is a membership plan with its standard fee.
type MembershipType struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Type        string             `bson:"type" json:"type"`
	StandardFee float64            `bson:"standardFee" json:"standardFee"`
}

// ClassTime is one of the fixed start times group classes can use.
type ClassTime struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	StartTime string             `bson:"startTime" json:"startTime"` // e.g. "9:00 AM"
}

// Exercise can be performed during a workout. Names are unique.
type Exercise struct {
	ID                 primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name               string               `bson:"name" json:"name"`
	FitnessCategoryIDs []primitive.ObjectID `bson:"fitnessCategoryIds,omitempty" json:"fitnessCategoryIds,omitempty"`
}

// Summary marks exercises that span several categories.
func (e *Exercise) Summary(categoryName func(primitive.ObjectID) string) string {
	switch len(e.FitnessCategoryIDs) {
	case 0:
		return e.Name
	case 1:
		return fmt.Sprintf("%s (%s)", e.Name, categoryName(e.FitnessCategoryIDs[0]))
	default:
		return e.Name + " (Multiple Categories)"
	}
}

// Summary is e.g. "Gold (Std. Fee: $100.00)".
func (m *MembershipType) Summary() string {
	return m.Type + " (Std. Fee: " + FormatCurrency(m.StandardFee) + ")"
}

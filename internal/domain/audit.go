package domain

import (
	"context"
	"time"
)

// EntityKind names a persisted record type.
type EntityKind string

const (
	KindClient             EntityKind = "Client"
	KindInstructor         EntityKind = "Instructor"
	KindGroupClass         EntityKind = "Group Class"
	KindFitnessCategory    EntityKind = "Fitness Category"
	KindWorkout            EntityKind = "Workout"
	KindInstructorDocument EntityKind = "Instructor Document"
)

// auditedKinds lists the kinds that carry CreatedBy/UpdatedBy columns.
var auditedKinds = map[EntityKind]bool{
	KindClient:          true,
	KindInstructor:      true,
	KindGroupClass:      true,
	KindFitnessCategory: true,
}

// AuditOp is the write being stamped.
type AuditOp int

const (
	AuditCreate AuditOp = iota
	AuditUpdate
)

// SeedActor is recorded when there is no authenticated caller.
const SeedActor = "Seed Data"

// Audit is embedded by audited entities.
type Audit struct {
	CreatedBy string    `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
	CreatedOn time.Time `bson:"createdOn,omitempty" json:"createdOn,omitempty"`
	UpdatedBy string    `bson:"updatedBy,omitempty" json:"updatedBy,omitempty"`
	UpdatedOn time.Time `bson:"updatedOn,omitempty" json:"updatedOn,omitempty"`
}

// IsAudited reports whether records of kind carry audit columns.
func IsAudited(kind EntityKind) bool {
	return auditedKinds[kind]
}

// StampAudit fills the audit columns for a write. It is a no-op for kinds
// that are not audited. Creates stamp both the created and updated pair.
func StampAudit(a *Audit, kind EntityKind, op AuditOp, actor string, at time.Time) {
	if a == nil || !IsAudited(kind) {
		return
	}
	if actor == "" {
		actor = SeedActor
	}
	at = at.UTC()
	if op == AuditCreate {
		a.CreatedBy = actor
		a.CreatedOn = at
	}
	a.UpdatedBy = actor
	a.UpdatedOn = at
}

// AuditActor resolves the name to stamp from the request context.
func AuditActor(ctx context.Context) string {
	if actor, ok := ActorFromContext(ctx); ok {
		return actor.Name()
	}
	return SeedActor
}

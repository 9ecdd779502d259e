package domain

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role type to distinguish between user roles
type Role string

// Define constants for roles
const (
	RoleAdmin      Role = "admin"
	RoleSupervisor Role = "supervisor"
	RoleStaff      Role = "staff"
	RoleClient     Role = "client"
)

// StaffRoles are the roles allowed to manage gym records on behalf of clients.
var StaffRoles = []Role{RoleStaff, RoleSupervisor, RoleAdmin}

// User represents a login account. Client accounts are linked to their
// Client record through the email address.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`    // Should be unique
	PasswordHash string             `bson:"passwordHash" json:"-"` // Never expose this via JSON
	Role         Role               `bson:"role" json:"role"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) IsClient() bool {
	return u.Role == RoleClient
}

// Actor is the authenticated caller of a service operation.
type Actor struct {
	UserID string
	Email  string
	Role   Role
}

// Name is what gets written into CreatedBy/UpdatedBy.
func (a Actor) Name() string {
	if a.Email == "" {
		return "Unknown"
	}
	return a.Email
}

func (a Actor) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if a.Role == r {
			return true
		}
	}
	return false
}

type actorKey struct{}

// ContextWithActor attaches the caller to ctx so the persistence layer can
// stamp audit fields.
func ContextWithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFromContext returns the caller stored on ctx. Background jobs and
// seeding have no caller and are recorded as "Seed Data".
func ActorFromContext(ctx context.Context) (Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(Actor)
	return actor, ok
}

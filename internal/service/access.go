package service

import (
	"context"
	"errors"

	"alcyxob/gym-management/internal/domain"
	"alcyxob/gym-management/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// canDelete applies the ownership rule on top of the route's role gate:
// admins delete anything, supervisors only what they created.
func canDelete(actor domain.Actor, audit domain.Audit) error {
	switch actor.Role {
	case domain.RoleAdmin:
		return nil
	case domain.RoleSupervisor:
		if audit.CreatedBy != actor.Name() {
			return ErrNotCreator
		}
		return nil
	default:
		return ErrForbidden
	}
}

// ownClientID resolves the Client record a client login belongs to.
func ownClientID(ctx context.Context, clients repository.ClientRepository, actor domain.Actor) (primitive.ObjectID, error) {
	client, err := clients.GetByEmail(ctx, actor.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return primitive.NilObjectID, ErrForbidden
		}
		return primitive.NilObjectID, err
	}
	return client.ID, nil
}

// checkClientAccess lets staff through and keeps client logins to their
// own record.
func checkClientAccess(ctx context.Context, clients repository.ClientRepository, actor domain.Actor, clientID primitive.ObjectID) error {
	if actor.Role != domain.RoleClient {
		return nil
	}
	own, err := ownClientID(ctx, clients, actor)
	if err != nil {
		return err
	}
	if own != clientID {
		return ErrForbidden
	}
	return nil
}

// notFound maps the repository sentinel to the service one.
func notFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

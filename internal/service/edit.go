package service

import (
	"context"
	"errors"
	"time"

	"alcyxob/gym-management/internal/concurrency"
	"alcyxob/gym-management/internal/repository"
)

// now is the service clock; tests pin it.
var now = time.Now

// saveEdit writes submitted if the stored row still carries version. A lost
// race comes back as *ConcurrencyError; other errors pass through untouched
// so callers can map constraint violations.
func saveEdit[T any](
	ctx context.Context,
	reconciler *concurrency.Reconciler[T],
	submitted *T,
	version string,
	update func(ctx context.Context, entity *T, expectedVersion string) error,
	load func(ctx context.Context, entity *T) (*T, error),
) (*T, error) {
	store := concurrency.StoreFuncs[T]{
		Save: func(ctx context.Context, entity *T, expectedVersion string) (*T, error) {
			if err := update(ctx, entity, expectedVersion); err != nil {
				return nil, err
			}
			return entity, nil
		},
		Load: load,
	}

	outcome, err := reconciler.Reconcile(ctx, submitted, version, store)
	if err != nil {
		return nil, err
	}
	if outcome.Conflicted() {
		return nil, &ConcurrencyError{Diff: outcome.Diff}
	}
	return outcome.Saved, nil
}

// constraint turns a duplicate key or a refused delete into the message the
// user sees. Anything else is returned unchanged.
func constraint(err error, field, duplicateMsg, referencedMsg string) error {
	switch {
	case errors.Is(err, repository.ErrDuplicateKey) && duplicateMsg != "":
		return &ConstraintError{Field: field, Message: duplicateMsg}
	case errors.Is(err, repository.ErrReferenced) && referencedMsg != "":
		return &ConstraintError{Message: referencedMsg}
	}
	return notFound(err)
}

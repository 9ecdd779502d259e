// Package concurrency reconciles edits that lost an optimistic-lock race.
package concurrency

import (
	"context"
	"errors"
	"time"

	"alcyxob/gym-management/internal/domain"
	"alcyxob/gym-management/internal/repository"
)

// Store is the persistence side of a versioned entity.
type Store[T any] interface {
	// SaveIfVersion writes entity only if the stored version token equals
	// expectedVersion. It must return repository.ErrVersionMismatch when
	// the row exists with another token and repository.ErrNotFound when the
	// row is gone, and must not apply any part of the write in either case.
	SaveIfVersion(ctx context.Context, entity *T, expectedVersion string) (*T, error)
	// LoadCurrent reads the row as it is now in the database.
	LoadCurrent(ctx context.Context, entity *T) (*T, error)
}

// StoreFuncs adapts a pair of functions to Store.
type StoreFuncs[T any] struct {
	Save func(ctx context.Context, entity *T, expectedVersion string) (*T, error)
	Load func(ctx context.Context, entity *T) (*T, error)
}

func (s StoreFuncs[T]) SaveIfVersion(ctx context.Context, entity *T, expectedVersion string) (*T, error) {
	return s.Save(ctx, entity, expectedVersion)
}

func (s StoreFuncs[T]) LoadCurrent(ctx context.Context, entity *T) (*T, error) {
	return s.Load(ctx, entity)
}

// Field is one user-editable attribute that is compared on conflict.
type Field[T any] struct {
	Name    string
	Equal   func(submitted, current *T) bool
	Display func(ctx context.Context, current *T) string
}

// FieldDiff is a field the user changed to something other than what is in
// the database now.
type FieldDiff struct {
	Field        string `json:"field"`
	CurrentValue string `json:"currentValue"`
}

// Diff describes a lost edit. It is built per request and never stored.
type Diff struct {
	Entity        string      `json:"entity"`
	EntityDeleted bool        `json:"entityDeleted"`
	Fields        []FieldDiff `json:"fields,omitempty"`
	Notice        string      `json:"notice"`
	// CurrentVersion is the token to resubmit with. Empty when deleted.
	CurrentVersion string `json:"currentVersion,omitempty"`
}

// Has reports whether field is part of the diff.
func (d *Diff) Has(field string) bool {
	for _, f := range d.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// FieldErrors renders the diff the way forms show it: one message per field.
func (d *Diff) FieldErrors() map[string]string {
	if len(d.Fields) == 0 {
		return nil
	}
	out := make(map[string]string, len(d.Fields))
	for _, f := range d.Fields {
		out[f.Field] = "Current value: " + f.CurrentValue
	}
	return out
}

// Outcome of a reconciled save: exactly one of Saved and Diff is set.
type Outcome[T any] struct {
	Saved *T
	Diff  *Diff
}

func (o *Outcome[T]) Conflicted() bool {
	return o != nil && o.Diff != nil
}

// Reconciler knows the tracked fields of one entity kind.
type Reconciler[T any] struct {
	Entity domain.EntityKind
	Fields []Field[T]
}

// Reconcile saves submitted with originalVersion as the precondition. A
// version mismatch is not an error: the outcome carries a diff of every
// tracked field whose submitted value differs from the value in the
// database now, plus the refreshed version token for a retry. Errors are
// returned only for unexpected store failures, constraint violations
// included.
func (r *Reconciler[T]) Reconcile(ctx context.Context, submitted *T, originalVersion string, store Store[T]) (*Outcome[T], error) {
	saved, err := store.SaveIfVersion(ctx, submitted, originalVersion)
	switch {
	case err == nil:
		return &Outcome[T]{Saved: saved}, nil
	case errors.Is(err, repository.ErrNotFound):
		return &Outcome[T]{Diff: r.Deleted()}, nil
	case !errors.Is(err, repository.ErrVersionMismatch):
		return nil, err
	}

	current, err := store.LoadCurrent(ctx, submitted)
	if errors.Is(err, repository.ErrNotFound) {
		return &Outcome[T]{Diff: r.Deleted()}, nil
	}
	if err != nil {
		return nil, err
	}

	return &Outcome[T]{Diff: r.Compare(ctx, submitted, current)}, nil
}

// Compare builds the diff between what the user submitted and the current
// database row.
func (r *Reconciler[T]) Compare(ctx context.Context, submitted, current *T) *Diff {
	diff := &Diff{
		Entity:         string(r.Entity),
		Notice:         modifiedNotice(r.Entity),
		CurrentVersion: versionOf(current),
	}
	for _, f := range r.Fields {
		if f.Equal(submitted, current) {
			continue
		}
		diff.Fields = append(diff.Fields, FieldDiff{Field: f.Name, CurrentValue: f.Display(ctx, current)})
	}
	return diff
}

// Deleted is the diff for an edit whose record no longer exists.
func (r *Reconciler[T]) Deleted() *Diff {
	return &Diff{
		Entity:        string(r.Entity),
		EntityDeleted: true,
		Notice:        "Unable to save changes. The " + string(r.Entity) + " was deleted by another user.",
	}
}

func modifiedNotice(kind domain.EntityKind) string {
	return "The record you attempted to edit was modified by another user after you " +
		"received your values. The edit operation was canceled and the current values " +
		"in the database have been displayed. If you still want to save your version of " +
		"this record, submit it again with the current row version. Otherwise go back to the " +
		string(kind) + " list."
}

func versionOf(entity any) string {
	if v, ok := entity.(interface{ GetRowVersion() string }); ok {
		return v.GetRowVersion()
	}
	return ""
}

// --- Field constructors ---

// Value tracks a comparable field shown with format.
func Value[T any, V comparable](name string, get func(*T) V, format func(V) string) Field[T] {
	return Field[T]{
		Name:  name,
		Equal: func(s, c *T) bool { return get(s) == get(c) },
		Display: func(_ context.Context, c *T) string {
			return format(get(c))
		},
	}
}

// Text tracks a string field shown as-is.
func Text[T any](name string, get func(*T) string) Field[T] {
	return Value(name, get, func(s string) string { return s })
}

// Currency tracks a money field shown as "$1,234.50".
func Currency[T any](name string, get func(*T) float64) Field[T] {
	return Value(name, get, domain.FormatCurrency)
}

// Flag tracks a boolean shown as Yes/No.
func Flag[T any](name string, get func(*T) bool) Field[T] {
	return Value(name, get, domain.FormatBool)
}

// Date tracks a date field shown as a short date. Instants are compared
// with time.Time.Equal so differing locations do not count as a change.
func Date[T any](name string, get func(*T) time.Time) Field[T] {
	return Field[T]{
		Name:  name,
		Equal: func(s, c *T) bool { return get(s).Equal(get(c)) },
		Display: func(_ context.Context, c *T) string {
			return domain.FormatShortDate(get(c))
		},
	}
}

// Reference tracks a foreign key; resolve turns the current key into the
// referenced record's summary, going back to the store if it has to.
func Reference[T any, K comparable](name string, get func(*T) K, resolve func(ctx context.Context, key K) string) Field[T] {
	return Field[T]{
		Name:  name,
		Equal: func(s, c *T) bool { return get(s) == get(c) },
		Display: func(ctx context.Context, c *T) string {
			return resolve(ctx, get(c))
		},
	}
}

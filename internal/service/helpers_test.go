package service

import (
	"testing"

	"alcyxob/gym-management/internal/domain"
	"alcyxob/gym-management/internal/repository"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestPartitionSelection(t *testing.T) {
	a := domain.Option{ID: primitive.NewObjectID(), Text: "Zumba"}
	b := domain.Option{ID: primitive.NewObjectID(), Text: "Aerobics"}
	c := domain.Option{ID: primitive.NewObjectID(), Text: "Boxing"}

	t.Run("splits and sorts", func(t *testing.T) {
		selected, available := PartitionSelection([]domain.Option{a, b, c}, []primitive.ObjectID{a.ID, c.ID})
		assert.Equal(t, []domain.Option{c, a}, selected)
		assert.Equal(t, []domain.Option{b}, available)
	})

	t.Run("unknown ids are ignored", func(t *testing.T) {
		selected, available := PartitionSelection([]domain.Option{a}, []primitive.ObjectID{primitive.NewObjectID()})
		assert.Empty(t, selected)
		assert.NotNil(t, selected)
		assert.Equal(t, []domain.Option{a}, available)
	})

	t.Run("nothing to choose from", func(t *testing.T) {
		selected, available := PartitionSelection(nil, nil)
		assert.Empty(t, selected)
		assert.Empty(t, available)
	})
}

func TestUniqueIDs(t *testing.T) {
	x, y := primitive.NewObjectID(), primitive.NewObjectID()
	assert.Equal(t, []primitive.ObjectID{x, y}, uniqueIDs([]primitive.ObjectID{x, primitive.NilObjectID, y, x}))
}

func TestNewPaged(t *testing.T) {
	tests := []struct {
		name  string
		total int64
		page  repository.Page
		want  int
	}{
		{"exact fit", 20, repository.Page{Page: 1, Size: 10}, 2},
		{"partial last page", 21, repository.Page{Page: 3, Size: 10}, 3},
		{"empty", 0, repository.Page{Page: 1, Size: 10}, 0},
		{"unpaged", 7, repository.Page{}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPaged[int](nil, tt.total, tt.page)
			assert.Equal(t, tt.want, p.TotalPages)
			assert.NotNil(t, p.Items)
		})
	}
}

func TestValidationError(t *testing.T) {
	verr := &ValidationError{}
	assert.NoError(t, verr.Err())

	verr.Add("Phone", "first")
	verr.Add("Phone", "second")
	verr.Add("", "whole record")
	verr.Add("Email", "bad email")

	assert.Equal(t, "first", verr.FieldErrors["Phone"])
	assert.Equal(t, "validation failed: whole record; Email: bad email; Phone: first", verr.Error())
	assert.Error(t, verr.Err())
}

func TestCanDelete(t *testing.T) {
	audit := domain.Audit{CreatedBy: supervisor.Email}
	assert.NoError(t, canDelete(admin, domain.Audit{CreatedBy: "someone"}))
	assert.NoError(t, canDelete(supervisor, audit))
	assert.ErrorIs(t, canDelete(supervisor, domain.Audit{CreatedBy: domain.SeedActor}), ErrNotCreator)
	assert.ErrorIs(t, canDelete(staff, audit), ErrForbidden)
	assert.ErrorIs(t, canDelete(domain.Actor{Role: domain.RoleClient}, audit), ErrForbidden)
}

func TestNormalizePostalCode(t *testing.T) {
	assert.Equal(t, "L3C 7T1", normalizePostalCode("l3c7t1"))
	assert.Equal(t, "L3C 7T1", normalizePostalCode(" L3C-7T1 "))
	assert.Equal(t, "12", normalizePostalCode("12"))
}

func TestConstraint(t *testing.T) {
	err := constraint(repository.ErrDuplicateKey, "Category", "dup", "ref")
	assert.Equal(t, &ConstraintError{Field: "Category", Message: "dup"}, err)

	err = constraint(repository.ErrReferenced, "Category", "dup", "ref")
	assert.Equal(t, &ConstraintError{Message: "ref"}, err)

	assert.ErrorIs(t, constraint(repository.ErrNotFound, "", "dup", "ref"), ErrNotFound)
	assert.Nil(t, constraint(nil, "", "dup", "ref"))
}

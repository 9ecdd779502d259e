package service

import (
	"context"
	"testing"

	"alcyxob/gym-management/internal/domain"
	"alcyxob/gym-management/internal/repository"
	"alcyxob/gym-management/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type groupClassFixture struct {
	classes     *mocks.GroupClassRepository
	categories  *mocks.FitnessCategoryRepository
	instructors *mocks.InstructorRepository
	clients     *mocks.ClientRepository
	lookups     *mocks.LookupRepository
	svc         GroupClassService

	categoryID, instructorID, classTimeID primitive.ObjectID
}

func newGroupClassFixture() *groupClassFixture {
	f := &groupClassFixture{
		classes:      new(mocks.GroupClassRepository),
		categories:   new(mocks.FitnessCategoryRepository),
		instructors:  new(mocks.InstructorRepository),
		clients:      new(mocks.ClientRepository),
		lookups:      new(mocks.LookupRepository),
		categoryID:   primitive.NewObjectID(),
		instructorID: primitive.NewObjectID(),
		classTimeID:  primitive.NewObjectID(),
	}
	f.svc = NewGroupClassService(f.classes, f.categories, f.instructors, f.clients, f.lookups)

	f.categories.On("GetByID", mock.Anything, f.categoryID).Return(&domain.FitnessCategory{ID: f.categoryID, Category: "Yoga"}, nil).Maybe()
	f.instructors.On("GetByID", mock.Anything, f.instructorID).Return(&domain.Instructor{ID: f.instructorID, FirstName: "Jamie", LastName: "Lee"}, nil).Maybe()
	f.lookups.On("ClassTime", mock.Anything, f.classTimeID).Return(&domain.ClassTime{ID: f.classTimeID, StartTime: "9:00 AM"}, nil).Maybe()
	return f
}

func (f *groupClassFixture) input(description string, dow domain.DOW, version string) GroupClassInput {
	return GroupClassInput{
		Description:       description,
		DOW:               &dow,
		FitnessCategoryID: f.categoryID,
		InstructorID:      f.instructorID,
		ClassTimeID:       f.classTimeID,
		RowVersion:        version,
	}
}

func (f *groupClassFixture) stored(id primitive.ObjectID, description string, dow domain.DOW, version string) *domain.GroupClass {
	return &domain.GroupClass{
		ID:                id,
		Description:       description,
		DOW:               dow,
		FitnessCategoryID: f.categoryID,
		InstructorID:      f.instructorID,
		ClassTimeID:       f.classTimeID,
		Versioned:         domain.Versioned{RowVersion: version},
	}
}

func TestGroupClassService_UpdateSaves(t *testing.T) {
	f := newGroupClassFixture()
	id := primitive.NewObjectID()
	f.classes.On("GetByID", mock.Anything, id).Return(f.stored(id, "Morning stretch", domain.Monday, "v1"), nil)
	f.classes.On("UpdateIfVersion", mock.Anything, mock.Anything, "v1").Return(nil)

	saved, err := f.svc.Update(context.Background(), staff, id, f.input("Morning stretch and breathing", domain.Monday, "v1"))
	require.NoError(t, err)
	assert.Equal(t, "Morning stretch and breathing", saved.Description)
	f.classes.AssertExpectations(t)
}

func TestGroupClassService_UpdateLostRace(t *testing.T) {
	f := newGroupClassFixture()
	id := primitive.NewObjectID()

	// First read is what the handler edits; the second is the reload after
	// the version check failed, showing the other user's description.
	f.classes.On("GetByID", mock.Anything, id).Return(f.stored(id, "Morning stretch", domain.Monday, "v2"), nil).Once()
	f.classes.On("UpdateIfVersion", mock.Anything, mock.Anything, "v1").Return(repository.ErrVersionMismatch)
	f.classes.On("GetByID", mock.Anything, id).Return(f.stored(id, "Sunrise yoga flow", domain.Monday, "v3"), nil).Once()

	_, err := f.svc.Update(context.Background(), staff, id, f.input("Morning stretch, all levels", domain.Monday, "v1"))

	var cerr *ConcurrencyError
	require.ErrorAs(t, err, &cerr)
	assert.False(t, cerr.Deleted())
	assert.Equal(t, "v3", cerr.Diff.CurrentVersion)
	require.Len(t, cerr.Diff.Fields, 1)
	assert.Equal(t, "Description", cerr.Diff.Fields[0].Field)
	assert.Equal(t, "Sunrise yoga flow", cerr.Diff.Fields[0].CurrentValue)
	f.classes.AssertExpectations(t)
}

func TestGroupClassService_UpdateDeletedRecord(t *testing.T) {
	f := newGroupClassFixture()
	id := primitive.NewObjectID()
	f.classes.On("GetByID", mock.Anything, id).Return(nil, repository.ErrNotFound)

	_, err := f.svc.Update(context.Background(), staff, id, f.input("Morning stretch", domain.Monday, "v1"))

	var cerr *ConcurrencyError
	require.ErrorAs(t, err, &cerr)
	assert.True(t, cerr.Deleted())
	assert.Equal(t, "Unable to save changes. The Group Class was deleted by another user.", cerr.Error())
}

func TestGroupClassService_CreateDoubleBooked(t *testing.T) {
	f := newGroupClassFixture()
	f.classes.On("Create", mock.Anything, mock.Anything).Return(primitive.NilObjectID, repository.ErrDuplicateKey)

	_, err := f.svc.Create(context.Background(), staff, f.input("Evening spin class", domain.Friday, ""))

	var cerr *ConstraintError
	require.ErrorAs(t, err, &cerr)
	assert.Empty(t, cerr.Field)
	assert.Equal(t, msgInstructorDoubleBooked, cerr.Message)
}

func TestGroupClassService_CreateValidation(t *testing.T) {
	f := newGroupClassFixture()
	in := f.input("Short", domain.Monday, "")
	in.DOW = nil
	in.ClassTimeID = primitive.NilObjectID

	_, err := f.svc.Create(context.Background(), staff, in)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, map[string]string{
		"Description": "The description must be at least 10 characters long.",
		"DOW":         "You must select Day of Week for this scheduled class!",
		"ClassTimeID": "You must select the time the scheduled class starts.",
	}, verr.FieldErrors)
	f.classes.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGroupClassService_Delete(t *testing.T) {
	id := primitive.NewObjectID()
	created := func(by string) *domain.GroupClass {
		return &domain.GroupClass{ID: id, Audit: domain.Audit{CreatedBy: by}}
	}

	tests := []struct {
		name    string
		actor   domain.Actor
		owner   string
		wantErr error
		deletes bool
	}{
		{name: "admin deletes anything", actor: admin, owner: "someone@gym.com", deletes: true},
		{name: "supervisor deletes own", actor: supervisor, owner: supervisor.Email, deletes: true},
		{name: "supervisor blocked on others", actor: supervisor, owner: "someone@gym.com", wantErr: ErrNotCreator},
		{name: "staff blocked", actor: staff, owner: staff.Email, wantErr: ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newGroupClassFixture()
			f.classes.On("GetByID", mock.Anything, id).Return(created(tt.owner), nil)
			if tt.deletes {
				f.classes.On("Delete", mock.Anything, id).Return(nil)
			}

			err := f.svc.Delete(context.Background(), tt.actor, id)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				f.classes.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			f.classes.AssertExpectations(t)
		})
	}
}

func TestGroupClassService_EnrollmentChoices(t *testing.T) {
	f := newGroupClassFixture()
	id := primitive.NewObjectID()
	fred := domain.Client{ID: primitive.NewObjectID(), FirstName: "Fred", LastName: "Flintstone"}
	wilma := domain.Client{ID: primitive.NewObjectID(), FirstName: "Wilma", LastName: "Flintstone"}
	barney := domain.Client{ID: primitive.NewObjectID(), FirstName: "Barney", LastName: "Rubble"}

	class := f.stored(id, "Morning stretch", domain.Monday, "v1")
	class.ClientIDs = []primitive.ObjectID{wilma.ID}
	f.classes.On("GetByID", mock.Anything, id).Return(class, nil)
	f.clients.On("List", mock.Anything, repository.ClientFilter{}, repository.Page{}).
		Return([]domain.Client{wilma, barney, fred}, int64(3), nil)

	selected, available, err := f.svc.EnrollmentChoices(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, []domain.Option{{ID: wilma.ID, Text: "Flintstone, Wilma"}}, selected)
	assert.Equal(t, []domain.Option{
		{ID: fred.ID, Text: "Flintstone, Fred"},
		{ID: barney.ID, Text: "Rubble, Barney"},
	}, available)
}

func TestGroupClassService_List(t *testing.T) {
	f := newGroupClassFixture()
	page := repository.Page{Page: 2, Size: 1}
	class := f.stored(primitive.NewObjectID(), "A long relaxing yoga session", domain.Wednesday, "v1")

	f.classes.On("List", mock.Anything, repository.GroupClassFilter{}, page).Return([]domain.GroupClass{*class}, int64(3), nil)
	f.categories.On("List", mock.Anything).Return([]domain.FitnessCategory{{ID: f.categoryID, Category: "Yoga"}}, nil)
	f.lookups.On("ClassTimes", mock.Anything).Return([]domain.ClassTime{{ID: f.classTimeID, StartTime: "9:00 AM"}}, nil)

	paged, err := f.svc.List(context.Background(), repository.GroupClassFilter{}, page)
	require.NoError(t, err)
	require.Len(t, paged.Items, 1)
	d := paged.Items[0]
	assert.Equal(t, "Yoga - Wed 9:00 AM", d.Summary)
	assert.Equal(t, "A long relaxing yoga...", d.ShortDescription)
	assert.Equal(t, "Jamie Lee", d.Instructor)
	assert.Equal(t, 3, paged.TotalPages)
	assert.Equal(t, 2, paged.Page)
}

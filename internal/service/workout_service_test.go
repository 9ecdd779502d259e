package service

import (
	"context"
	"testing"
	"time"

	"alcyxob/gym-management/internal/domain"
	"alcyxob/gym-management/internal/repository"
	"alcyxob/gym-management/internal/repository/mocks"
	"alcyxob/gym-management/internal/schedule"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	staff      = domain.Actor{UserID: "u-staff", Email: "staff@gym.com", Role: domain.RoleStaff}
	supervisor = domain.Actor{UserID: "u-super", Email: "super@gym.com", Role: domain.RoleSupervisor}
	admin      = domain.Actor{UserID: "u-admin", Email: "admin@gym.com", Role: domain.RoleAdmin}
)

type workoutFixture struct {
	workouts    *mocks.WorkoutRepository
	clients     *mocks.ClientRepository
	instructors *mocks.InstructorRepository
	categories  *mocks.FitnessCategoryRepository
	lookups     *mocks.LookupRepository
	svc         WorkoutService
}

func newWorkoutFixture() *workoutFixture {
	f := &workoutFixture{
		workouts:    new(mocks.WorkoutRepository),
		clients:     new(mocks.ClientRepository),
		instructors: new(mocks.InstructorRepository),
		categories:  new(mocks.FitnessCategoryRepository),
		lookups:     new(mocks.LookupRepository),
	}
	f.svc = NewWorkoutService(f.workouts, f.clients, f.instructors, f.categories, f.lookups, ScheduleOptions{})
	return f
}

func at(hour, minute int) time.Time {
	return time.Date(2025, time.March, 10, hour, minute, 0, 0, time.UTC)
}

func TestWorkoutService_CreateDefaultsEndTime(t *testing.T) {
	f := newWorkoutFixture()
	ctx := context.Background()
	clientID := primitive.NewObjectID()
	newID := primitive.NewObjectID()
	start := at(9, 0)

	f.clients.On("GetByID", mock.Anything, clientID).Return(&domain.Client{ID: clientID}, nil)
	f.workouts.On("GetByDate", mock.Anything, start, primitive.NilObjectID).Return([]domain.Workout{}, nil)
	f.workouts.On("Create", mock.Anything, mock.MatchedBy(func(w *domain.Workout) bool {
		return w.EndTime != nil && w.EndTime.Equal(at(9, 30))
	})).Return(newID, nil)

	w, err := f.svc.Create(ctx, staff, WorkoutInput{ClientID: clientID, StartTime: start})
	require.NoError(t, err)
	assert.Equal(t, newID, w.ID)
	assert.Equal(t, "30 min", w.DurationSummary())
	f.workouts.AssertExpectations(t)
}

func TestWorkoutService_CreateUsesDuration(t *testing.T) {
	f := newWorkoutFixture()
	clientID := primitive.NewObjectID()
	start := at(9, 0)

	f.clients.On("GetByID", mock.Anything, clientID).Return(&domain.Client{ID: clientID}, nil)
	f.workouts.On("GetByDate", mock.Anything, start, primitive.NilObjectID).Return([]domain.Workout{}, nil)
	f.workouts.On("Create", mock.Anything, mock.Anything).Return(primitive.NewObjectID(), nil)

	w, err := f.svc.Create(context.Background(), staff, WorkoutInput{ClientID: clientID, StartTime: start, DurationMinutes: 90})
	require.NoError(t, err)
	assert.Equal(t, "1 hr, 30 min", w.DurationSummary())
}

func TestWorkoutService_CreateRejectsOverlap(t *testing.T) {
	f := newWorkoutFixture()
	clientID := primitive.NewObjectID()
	end := at(10, 0)
	existing := domain.Workout{ID: primitive.NewObjectID(), ClientID: clientID, StartTime: at(9, 0), EndTime: &end}

	f.clients.On("GetByID", mock.Anything, clientID).Return(&domain.Client{ID: clientID}, nil)
	f.workouts.On("GetByDate", mock.Anything, at(9, 30), primitive.NilObjectID).Return([]domain.Workout{existing}, nil)

	_, err := f.svc.Create(context.Background(), staff, WorkoutInput{ClientID: clientID, StartTime: at(9, 30), DurationMinutes: 60})

	var conflict *ScheduleConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, schedule.ConflictClient, conflict.Result.Type)
	assert.Contains(t, conflict.Error(), "This is a conflict for the client.")
	f.workouts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestWorkoutService_WindowFollowsGymClock(t *testing.T) {
	est := time.FixedZone("EST", -5*60*60)
	f := newWorkoutFixture()
	f.svc = NewWorkoutService(f.workouts, f.clients, f.instructors, f.categories, f.lookups, ScheduleOptions{Location: est})

	clientID := primitive.NewObjectID()
	// 6:50 PM to 7:40 PM Eastern on the 10th, decoded from the store as UTC.
	existingStart := time.Date(2024, time.January, 10, 23, 50, 0, 0, time.UTC)
	existingEnd := existingStart.Add(50 * time.Minute)
	existing := domain.Workout{ID: primitive.NewObjectID(), ClientID: clientID, StartTime: existingStart, EndTime: &existingEnd}
	// 7:10 PM Eastern, sent by a browser in UTC: already the 11th there.
	start := time.Date(2024, time.January, 11, 0, 10, 0, 0, time.UTC)

	f.clients.On("GetByID", mock.Anything, clientID).Return(&domain.Client{ID: clientID}, nil)
	f.workouts.On("GetByDate", mock.Anything, mock.MatchedBy(func(day time.Time) bool {
		y, m, d := day.Date()
		return day.Location() == est && y == 2024 && m == time.January && d == 10
	}), primitive.NilObjectID).Return([]domain.Workout{existing}, nil)

	_, err := f.svc.Create(context.Background(), staff, WorkoutInput{ClientID: clientID, StartTime: start, DurationMinutes: 30})

	var conflict *ScheduleConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, schedule.ConflictClient, conflict.Result.Type)
	assert.Contains(t, conflict.Result.Reason, "existing 50 min workout scheduled to start at 2024-01-10 6:50 PM")
	f.workouts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestWorkoutService_GetShowsGymClock(t *testing.T) {
	est := time.FixedZone("EST", -5*60*60)
	f := newWorkoutFixture()
	f.svc = NewWorkoutService(f.workouts, f.clients, f.instructors, f.categories, f.lookups, ScheduleOptions{Location: est})

	id := primitive.NewObjectID()
	clientID := primitive.NewObjectID()
	start := time.Date(2024, time.January, 11, 1, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	f.workouts.On("GetByID", mock.Anything, id).Return(&domain.Workout{ID: id, ClientID: clientID, StartTime: start, EndTime: &end}, nil)
	f.clients.On("GetByID", mock.Anything, clientID).Return(&domain.Client{ID: clientID, FirstName: "Fred", LastName: "Flintstone"}, nil)

	d, err := f.svc.Get(context.Background(), staff, id)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-10", d.StartDate)
	assert.Equal(t, "8:00 PM", d.Start)
	assert.Equal(t, "9:00 PM", d.End)
	assert.True(t, d.StartTime.Equal(start))
}

func TestWorkoutService_CreateValidation(t *testing.T) {
	f := newWorkoutFixture()
	clientID := primitive.NewObjectID()
	end := at(8, 0)

	f.clients.On("GetByID", mock.Anything, clientID).Return(&domain.Client{ID: clientID}, nil)

	tests := []struct {
		name  string
		input WorkoutInput
		field string
		msg   string
	}{
		{
			name:  "end before start",
			input: WorkoutInput{ClientID: clientID, StartTime: at(9, 0), EndTime: &end},
			field: "EndTime",
			msg:   "Workout cannot end before it starts.",
		},
		{
			name:  "missing start",
			input: WorkoutInput{ClientID: clientID},
			field: "StartTime",
			msg:   "You must enter a start date and time for the workout.",
		},
		{
			name:  "duration not offered",
			input: WorkoutInput{ClientID: clientID, StartTime: at(9, 0), DurationMinutes: 45},
			field: "DurationMinutes",
			msg:   "Select one of the offered workout durations.",
		},
		{
			name:  "no client",
			input: WorkoutInput{StartTime: at(9, 0)},
			field: "ClientID",
			msg:   "You must select the Client.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Create(context.Background(), staff, tt.input)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.msg, verr.FieldErrors[tt.field])
		})
	}
	f.workouts.AssertNotCalled(t, "GetByDate", mock.Anything, mock.Anything, mock.Anything)
}

func TestWorkoutService_UpdateExcludesItself(t *testing.T) {
	f := newWorkoutFixture()
	clientID := primitive.NewObjectID()
	id := primitive.NewObjectID()
	end := at(10, 0)
	stored := &domain.Workout{ID: id, ClientID: clientID, StartTime: at(9, 0), EndTime: &end}

	f.workouts.On("GetByID", mock.Anything, id).Return(stored, nil)
	f.clients.On("GetByID", mock.Anything, clientID).Return(&domain.Client{ID: clientID}, nil)
	// The repository leaves the stored copy out of the window.
	f.workouts.On("GetByDate", mock.Anything, at(9, 15), id).Return([]domain.Workout{}, nil)
	f.workouts.On("Update", mock.Anything, mock.Anything).Return(nil)

	w, err := f.svc.Update(context.Background(), staff, id, WorkoutInput{StartTime: at(9, 15), DurationMinutes: 30})
	require.NoError(t, err)
	assert.Equal(t, clientID, w.ClientID)
	assert.True(t, w.EndTime.Equal(at(9, 45)))
	f.workouts.AssertExpectations(t)
}

func TestWorkoutService_ClientSeesOnlyOwnWorkouts(t *testing.T) {
	f := newWorkoutFixture()
	own := primitive.NewObjectID()
	other := primitive.NewObjectID()
	id := primitive.NewObjectID()
	actor := domain.Actor{Email: "fred@rocks.com", Role: domain.RoleClient}

	f.clients.On("GetByEmail", mock.Anything, "fred@rocks.com").Return(&domain.Client{ID: own}, nil)
	f.workouts.On("GetByID", mock.Anything, id).Return(&domain.Workout{ID: id, ClientID: other, StartTime: at(9, 0)}, nil)

	_, err := f.svc.Get(context.Background(), actor, id)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestWorkoutService_ListForClientScopesClientLogin(t *testing.T) {
	f := newWorkoutFixture()
	own := primitive.NewObjectID()
	instructorID := primitive.NewObjectID()
	end := at(10, 0)
	actor := domain.Actor{Email: "fred@rocks.com", Role: domain.RoleClient}
	page := repository.Page{Page: 1, Size: 10}

	f.clients.On("GetByEmail", mock.Anything, "fred@rocks.com").Return(&domain.Client{ID: own}, nil)
	f.clients.On("GetByID", mock.Anything, own).Return(&domain.Client{ID: own, FirstName: "Fred", LastName: "Flintstone"}, nil)
	f.workouts.On("List", mock.Anything, repository.WorkoutFilter{ClientID: own}, page).
		Return([]domain.Workout{
			{ClientID: own, InstructorID: &instructorID, StartTime: at(9, 0), EndTime: &end},
			{ClientID: own, InstructorID: &instructorID, StartTime: at(11, 0)},
		}, int64(2), nil)
	f.instructors.On("GetByID", mock.Anything, instructorID).
		Return(&domain.Instructor{FirstName: "Jamie", LastName: "Lee"}, nil).Once()

	// Asking for someone else's list still returns the caller's own.
	paged, err := f.svc.ListForClient(context.Background(), actor, primitive.NewObjectID(), repository.WorkoutFilter{}, page)
	require.NoError(t, err)
	require.Len(t, paged.Items, 2)
	assert.Equal(t, "Fred Flintstone", paged.Items[0].Client)
	assert.Equal(t, "Jamie Lee", paged.Items[1].Instructor)
	assert.Equal(t, "1 hr", paged.Items[0].Duration)
	assert.Equal(t, 1, paged.TotalPages)
	f.instructors.AssertExpectations(t)
}

func TestWorkoutService_DeleteRequiresSupervisor(t *testing.T) {
	f := newWorkoutFixture()
	id := primitive.NewObjectID()

	assert.ErrorIs(t, f.svc.Delete(context.Background(), staff, id), ErrForbidden)

	f.workouts.On("Delete", mock.Anything, id).Return(repository.ErrNotFound)
	assert.ErrorIs(t, f.svc.Delete(context.Background(), supervisor, id), ErrNotFound)
}

func TestWorkoutService_ExerciseChoices(t *testing.T) {
	f := newWorkoutFixture()
	id := primitive.NewObjectID()
	cardio := primitive.NewObjectID()
	yoga := primitive.NewObjectID()
	run := domain.Exercise{ID: primitive.NewObjectID(), Name: "Run", FitnessCategoryIDs: []primitive.ObjectID{cardio}}
	plank := domain.Exercise{ID: primitive.NewObjectID(), Name: "Plank", FitnessCategoryIDs: []primitive.ObjectID{cardio, yoga}}
	stretch := domain.Exercise{ID: primitive.NewObjectID(), Name: "Stretch"}

	f.workouts.On("GetByID", mock.Anything, id).Return(&domain.Workout{ID: id, ExerciseIDs: []primitive.ObjectID{run.ID}}, nil)
	f.lookups.On("Exercises", mock.Anything).Return([]domain.Exercise{stretch, run, plank}, nil)
	f.categories.On("List", mock.Anything).Return([]domain.FitnessCategory{{ID: cardio, Category: "Cardio"}, {ID: yoga, Category: "Yoga"}}, nil)

	selected, available, err := f.svc.ExerciseChoices(context.Background(), staff, id)
	require.NoError(t, err)
	assert.Equal(t, []domain.Option{{ID: run.ID, Text: "Run (Cardio)"}}, selected)
	assert.Equal(t, []domain.Option{
		{ID: plank.ID, Text: "Plank (Multiple Categories)"},
		{ID: stretch.ID, Text: "Stretch"},
	}, available)
}

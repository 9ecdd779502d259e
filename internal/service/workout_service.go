package service

import (
	"alcyxob/gym-management/internal/domain"
	"alcyxob/gym-management/internal/repository"
	"alcyxob/gym-management/internal/schedule"
	"context"
	"errors"
	"slices"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutInput is what staff (or the client themselves) submit when booking.
// EndTime wins over DurationMinutes; with neither the configured default
// duration is used.
type WorkoutInput struct {
	ClientID        primitive.ObjectID
	InstructorID    *primitive.ObjectID
	StartTime       time.Time
	EndTime         *time.Time
	DurationMinutes int
	Notes           string
	ExerciseIDs     []primitive.ObjectID
}

// WorkoutDetails adds the display fields list views show.
type WorkoutDetails struct {
	domain.Workout
	Client     string `json:"client"`
	Instructor string `json:"instructor,omitempty"`
	StartDate  string `json:"startDate"`
	Start      string `json:"start"`
	End        string `json:"end"`
	Duration   string `json:"duration"`
}

type WorkoutService interface {
	ListForClient(ctx context.Context, actor domain.Actor, clientID primitive.ObjectID, filter repository.WorkoutFilter, page repository.Page) (Paged[WorkoutDetails], error)
	Get(ctx context.Context, actor domain.Actor, id primitive.ObjectID) (*WorkoutDetails, error)
	Create(ctx context.Context, actor domain.Actor, input WorkoutInput) (*domain.Workout, error)
	Update(ctx context.Context, actor domain.Actor, id primitive.ObjectID, input WorkoutInput) (*domain.Workout, error)
	Delete(ctx context.Context, actor domain.Actor, id primitive.ObjectID) error
	// ExerciseChoices splits the exercise list into the ones the workout
	// has and the ones it could add.
	ExerciseChoices(ctx context.Context, actor domain.Actor, id primitive.ObjectID) (selected, available []domain.Option, err error)
}

// ScheduleOptions configures booking. Location is the gym's time zone:
// a workout's day runs midnight to midnight there, and times are shown on
// its clock. A nil Location means UTC.
type ScheduleOptions struct {
	DefaultDuration time.Duration
	Location        *time.Location
}

// workoutService implements the WorkoutService interface.
type workoutService struct {
	workoutRepo     repository.WorkoutRepository
	clientRepo      repository.ClientRepository
	instructorRepo  repository.InstructorRepository
	categoryRepo    repository.FitnessCategoryRepository
	lookupRepo      repository.LookupRepository
	defaultDuration time.Duration
	loc             *time.Location
}

// NewWorkoutService creates a new instance of workoutService.
func NewWorkoutService(
	workoutRepo repository.WorkoutRepository,
	clientRepo repository.ClientRepository,
	instructorRepo repository.InstructorRepository,
	categoryRepo repository.FitnessCategoryRepository,
	lookupRepo repository.LookupRepository,
	opts ScheduleOptions,
) WorkoutService {
	if opts.DefaultDuration <= 0 {
		opts.DefaultDuration = domain.DefaultWorkoutDuration
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	return &workoutService{
		workoutRepo:     workoutRepo,
		clientRepo:      clientRepo,
		instructorRepo:  instructorRepo,
		categoryRepo:    categoryRepo,
		lookupRepo:      lookupRepo,
		defaultDuration: opts.DefaultDuration,
		loc:             opts.Location,
	}
}

func (s *workoutService) ListForClient(ctx context.Context, actor domain.Actor, clientID primitive.ObjectID, filter repository.WorkoutFilter, page repository.Page) (Paged[WorkoutDetails], error) {
	if actor.Role == domain.RoleClient {
		own, err := ownClientID(ctx, s.clientRepo, actor)
		if err != nil {
			return Paged[WorkoutDetails]{}, err
		}
		clientID = own
	}
	client, err := s.clientRepo.GetByID(ctx, clientID)
	if err != nil {
		return Paged[WorkoutDetails]{}, notFound(err)
	}

	filter.ClientID = clientID
	workouts, total, err := s.workoutRepo.List(ctx, filter, page)
	if err != nil {
		return Paged[WorkoutDetails]{}, err
	}

	names := map[primitive.ObjectID]string{}
	items := make([]WorkoutDetails, 0, len(workouts))
	for _, w := range workouts {
		items = append(items, s.details(ctx, w, client, names))
	}
	return NewPaged(items, total, page), nil
}

func (s *workoutService) Get(ctx context.Context, actor domain.Actor, id primitive.ObjectID) (*WorkoutDetails, error) {
	workout, err := s.workoutRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	if err := checkClientAccess(ctx, s.clientRepo, actor, workout.ClientID); err != nil {
		return nil, err
	}
	client, err := s.clientRepo.GetByID(ctx, workout.ClientID)
	if err != nil {
		return nil, notFound(err)
	}
	d := s.details(ctx, *workout, client, map[primitive.ObjectID]string{})
	return &d, nil
}

// Create books a workout after checking it against the same day's schedule.
func (s *workoutService) Create(ctx context.Context, actor domain.Actor, input WorkoutInput) (*domain.Workout, error) {
	if err := checkClientAccess(ctx, s.clientRepo, actor, input.ClientID); err != nil {
		return nil, err
	}

	workout := &domain.Workout{ClientID: input.ClientID}
	if err := s.apply(ctx, workout, input); err != nil {
		return nil, err
	}
	if err := s.checkSchedule(ctx, workout); err != nil {
		return nil, err
	}

	id, err := s.workoutRepo.Create(ctx, workout)
	if err != nil {
		return nil, err
	}
	workout.ID = id
	return workout, nil
}

// Update reschedules a workout. The stored copy of the workout is left out
// of the conflict window so moving it within its own slot is fine.
func (s *workoutService) Update(ctx context.Context, actor domain.Actor, id primitive.ObjectID, input WorkoutInput) (*domain.Workout, error) {
	workout, err := s.workoutRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	if err := checkClientAccess(ctx, s.clientRepo, actor, workout.ClientID); err != nil {
		return nil, err
	}

	// The client of a workout is fixed once booked.
	input.ClientID = workout.ClientID
	if err := s.apply(ctx, workout, input); err != nil {
		return nil, err
	}
	if err := s.checkSchedule(ctx, workout); err != nil {
		return nil, err
	}

	if err := s.workoutRepo.Update(ctx, workout); err != nil {
		return nil, notFound(err)
	}
	return workout, nil
}

func (s *workoutService) Delete(ctx context.Context, actor domain.Actor, id primitive.ObjectID) error {
	if !actor.HasRole(domain.RoleSupervisor, domain.RoleAdmin) {
		return ErrForbidden
	}
	return notFound(s.workoutRepo.Delete(ctx, id))
}

func (s *workoutService) ExerciseChoices(ctx context.Context, actor domain.Actor, id primitive.ObjectID) ([]domain.Option, []domain.Option, error) {
	var chosen []primitive.ObjectID
	if !id.IsZero() {
		workout, err := s.workoutRepo.GetByID(ctx, id)
		if err != nil {
			return nil, nil, notFound(err)
		}
		if err := checkClientAccess(ctx, s.clientRepo, actor, workout.ClientID); err != nil {
			return nil, nil, err
		}
		chosen = workout.ExerciseIDs
	}

	exercises, err := s.lookupRepo.Exercises(ctx)
	if err != nil {
		return nil, nil, err
	}
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	categoryNames := make(map[primitive.ObjectID]string, len(categories))
	for _, c := range categories {
		categoryNames[c.ID] = c.Category
	}
	categoryName := func(id primitive.ObjectID) string { return categoryNames[id] }

	options := make([]domain.Option, 0, len(exercises))
	for i := range exercises {
		options = append(options, domain.Option{ID: exercises[i].ID, Text: exercises[i].Summary(categoryName)})
	}
	selected, available := PartitionSelection(options, chosen)
	return selected, available, nil
}

// apply validates input and copies it onto workout.
func (s *workoutService) apply(ctx context.Context, workout *domain.Workout, input WorkoutInput) error {
	verr := &ValidationError{}

	if input.ClientID.IsZero() {
		verr.Add("ClientID", "You must select the Client.")
	} else if _, err := s.clientRepo.GetByID(ctx, input.ClientID); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		verr.Add("ClientID", "You must select the Client.")
	}

	var instructorID *primitive.ObjectID
	if input.InstructorID != nil && !input.InstructorID.IsZero() {
		if _, err := s.instructorRepo.GetByID(ctx, *input.InstructorID); err != nil {
			if !errors.Is(err, repository.ErrNotFound) {
				return err
			}
			verr.Add("InstructorID", "The selected Instructor does not exist.")
		}
		id := *input.InstructorID
		instructorID = &id
	}

	if input.StartTime.IsZero() {
		verr.Add("StartTime", "You must enter a start date and time for the workout.")
	}

	end := input.EndTime
	if end == nil {
		duration := s.defaultDuration
		if input.DurationMinutes != 0 {
			if !slices.Contains(domain.WorkoutDurations, input.DurationMinutes) {
				verr.Add("DurationMinutes", "Select one of the offered workout durations.")
			}
			duration = time.Duration(input.DurationMinutes) * time.Minute
		}
		if !input.StartTime.IsZero() {
			t := input.StartTime.Add(duration)
			end = &t
		}
	}
	if end == nil && !input.StartTime.IsZero() {
		verr.Add("EndTime", ErrMissingEndTime.Error())
	}
	if end != nil && end.Before(input.StartTime) {
		verr.Add("EndTime", "Workout cannot end before it starts.")
	}
	if len([]rune(input.Notes)) > 2000 {
		verr.Add("Notes", "Only 2000 characters for notes.")
	}

	if err := verr.Err(); err != nil {
		return err
	}

	workout.ClientID = input.ClientID
	workout.InstructorID = instructorID
	workout.StartTime = input.StartTime
	workout.EndTime = end
	workout.Notes = input.Notes
	workout.ExerciseIDs = uniqueIDs(input.ExerciseIDs)
	return nil
}

// checkSchedule compares workout with the others starting on the same gym
// day. Submitted times carry whatever offset the caller used, so the day is
// taken on the gym's clock.
func (s *workoutService) checkSchedule(ctx context.Context, workout *domain.Workout) error {
	window, err := s.workoutRepo.GetByDate(ctx, workout.StartTime.In(s.loc), workout.ID)
	if err != nil {
		return err
	}
	for i := range window {
		window[i] = window[i].In(s.loc)
	}
	if result := schedule.CheckConflict(workout, window); result.IsConflict {
		return &ScheduleConflictError{Result: result}
	}
	return nil
}

// details renders w for display; names caches instructor lookups across a page.
func (s *workoutService) details(ctx context.Context, w domain.Workout, client *domain.Client, names map[primitive.ObjectID]string) WorkoutDetails {
	w = w.In(s.loc)
	d := WorkoutDetails{
		Workout:   w,
		Client:    client.FullName(),
		StartDate: w.StartDateSummary(),
		Start:     w.StartTimeSummary(),
		End:       w.EndTimeSummary(),
		Duration:  w.DurationSummary(),
	}
	if w.HasInstructor() {
		id := *w.InstructorID
		name, ok := names[id]
		if !ok {
			if instructor, err := s.instructorRepo.GetByID(ctx, id); err == nil {
				name = instructor.Summary()
			}
			names[id] = name
		}
		d.Instructor = name
	}
	return d
}

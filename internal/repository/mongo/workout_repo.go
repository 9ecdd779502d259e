// internal/repository/mongo/workout_repo.go
package mongo

import (
	"alcyxob/gym-management/internal/domain"
	"alcyxob/gym-management/internal/repository"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const workoutCollectionName = "workouts"

var workoutSortFields = map[string]string{
	"startTime":  "startTime",
	"instructor": "instructorId",
}

// mongoWorkoutRepository implements repository.WorkoutRepository
type mongoWorkoutRepository struct {
	collection *mongo.Collection
}

// NewMongoWorkoutRepository creates a new Workout repository.
func NewMongoWorkoutRepository(db *mongo.Database) repository.WorkoutRepository {
	return &mongoWorkoutRepository{
		collection: db.Collection(workoutCollectionName),
	}
}

// Create inserts a new workout.
func (r *mongoWorkoutRepository) Create(ctx context.Context, workout *domain.Workout) (primitive.ObjectID, error) {
	if workout.ClientID == primitive.NilObjectID || workout.StartTime.IsZero() {
		return primitive.NilObjectID, errors.New("workout requires clientId and startTime")
	}
	workout.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	workout.CreatedAt = now
	workout.UpdatedAt = now

	return insertOne(ctx, r.collection, workout)
}

// GetByID retrieves a single workout by its ID.
func (r *mongoWorkoutRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error) {
	return findOne[domain.Workout](ctx, r.collection, bson.M{"_id": id})
}

// GetByDate returns the workouts starting on day's calendar date, in the
// location of day, ordered by start time.
func (r *mongoWorkoutRepository) GetByDate(ctx context.Context, day time.Time, excludeID primitive.ObjectID) ([]domain.Workout, error) {
	from := domain.CalendarDay(day)
	to := from.AddDate(0, 0, 1)

	filter := bson.M{"startTime": bson.M{"$gte": from, "$lt": to}}
	if excludeID != primitive.NilObjectID {
		filter["_id"] = bson.M{"$ne": excludeID}
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "startTime", Value: 1}})
	return findAll[domain.Workout](ctx, r.collection, filter, findOptions)
}

// List returns a page of one client's workouts, newest first by default.
func (r *mongoWorkoutRepository) List(ctx context.Context, filter repository.WorkoutFilter, page repository.Page) ([]domain.Workout, int64, error) {
	query := bson.M{"clientId": filter.ClientID}
	if filter.InstructorID != nil {
		query["instructorId"] = *filter.InstructorID
	}
	if filter.Search != "" {
		query["notes"] = containsFold(filter.Search)
	}
	return listPage[domain.Workout](ctx, r.collection, query, page, workoutSortFields,
		bson.D{{Key: "startTime", Value: -1}})
}

// Update rewrites the schedule, instructor, notes and exercises of a workout.
// The client of a workout never changes.
func (r *mongoWorkoutRepository) Update(ctx context.Context, workout *domain.Workout) error {
	if workout.ID == primitive.NilObjectID {
		return errors.New("workout ID is required for update")
	}

	workout.UpdatedAt = time.Now().UTC()
	set := bson.M{
		"startTime":   workout.StartTime,
		"endTime":     workout.EndTime,
		"notes":       workout.Notes,
		"exerciseIds": workout.ExerciseIDs,
		"updatedAt":   workout.UpdatedAt,
	}
	update := bson.M{"$set": set}
	if workout.HasInstructor() {
		set["instructorId"] = workout.InstructorID
	} else {
		update["$unset"] = bson.M{"instructorId": ""}
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": workout.ID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound // Workout with that ID didn't exist
	}
	return nil
}

func (r *mongoWorkoutRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func ensureWorkoutIndexes(ctx context.Context, db *mongo.Database) error {
	return createIndexes(ctx, db.Collection(workoutCollectionName), []mongo.IndexModel{
		{
			// Same-day window for conflict checks
			Keys:    bson.D{{Key: "startTime", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "clientId", Value: 1}, {Key: "startTime", Value: -1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "instructorId", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
	})
}

package mongo

import (
	"alcyxob/gym-management/internal/domain"
	"alcyxob/gym-management/internal/repository"
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const instructorCollectionName = "instructors"

var instructorSortFields = map[string]string{
	"name":     "lastName",
	"hireDate": "hireDate",
	"email":    "email",
	"isActive": "isActive",
}

// mongoInstructorRepository implements repository.InstructorRepository
type mongoInstructorRepository struct {
	collection   *mongo.Collection
	groupClasses *mongo.Collection
	workouts     *mongo.Collection
}

// NewMongoInstructorRepository creates a new Instructor repository backed by MongoDB.
func NewMongoInstructorRepository(db *mongo.Database) repository.InstructorRepository {
	return &mongoInstructorRepository{
		collection:   db.Collection(instructorCollectionName),
		groupClasses: db.Collection(groupClassCollectionName),
		workouts:     db.Collection(workoutCollectionName),
	}
}

// Create inserts a new instructor. A taken email is reported as
// repository.ErrDuplicateKey.
func (r *mongoInstructorRepository) Create(ctx context.Context, instructor *domain.Instructor) (primitive.ObjectID, error) {
	instructor.ID = primitive.NewObjectID()
	instructor.Email = strings.ToLower(instructor.Email)
	instructor.RowVersion = newRowVersion()
	domain.StampAudit(&instructor.Audit, domain.KindInstructor, domain.AuditCreate, domain.AuditActor(ctx), time.Now())

	return insertOne(ctx, r.collection, instructor)
}

// GetByID retrieves an instructor by ID.
func (r *mongoInstructorRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Instructor, error) {
	return findOne[domain.Instructor](ctx, r.collection, bson.M{"_id": id})
}

// List returns a filtered, sorted page of instructors.
func (r *mongoInstructorRepository) List(ctx context.Context, filter repository.InstructorFilter, page repository.Page) ([]domain.Instructor, int64, error) {
	query := bson.M{}
	if filter.Search != "" {
		query["$or"] = anyFieldContains(filter.Search, "firstName", "lastName")
	}
	if filter.Phone != "" {
		query["phone"] = containsFold(filter.Phone)
	}
	if filter.IsActive != nil {
		query["isActive"] = *filter.IsActive
	}
	return listPage[domain.Instructor](ctx, r.collection, query, page, instructorSortFields,
		bson.D{{Key: "lastName", Value: 1}, {Key: "firstName", Value: 1}})
}

// UpdateIfVersion writes the editable fields when the stored rowVersion
// still equals expectedVersion.
func (r *mongoInstructorRepository) UpdateIfVersion(ctx context.Context, instructor *domain.Instructor, expectedVersion string) error {
	domain.StampAudit(&instructor.Audit, domain.KindInstructor, domain.AuditUpdate, domain.AuditActor(ctx), time.Now())
	instructor.Email = strings.ToLower(instructor.Email)

	set := bson.M{
		"firstName":  instructor.FirstName,
		"middleName": instructor.MiddleName,
		"lastName":   instructor.LastName,
		"hireDate":   instructor.HireDate,
		"phone":      instructor.Phone,
		"email":      instructor.Email,
		"isActive":   instructor.IsActive,
		"updatedBy":  instructor.UpdatedBy,
		"updatedOn":  instructor.UpdatedOn,
	}
	next, err := updateIfVersion(ctx, r.collection, instructor.ID, expectedVersion, set)
	if err != nil {
		return err
	}
	instructor.RowVersion = next
	return nil
}

// Delete removes an instructor who no longer teaches any group class.
// Workouts they supervised lose their instructor.
func (r *mongoInstructorRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	teaching, err := exists(ctx, r.groupClasses, bson.M{"instructorId": id})
	if err != nil {
		return err
	}
	if teaching {
		return repository.ErrReferenced
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}

	_, err = r.workouts.UpdateMany(ctx,
		bson.M{"instructorId": id},
		bson.M{"$unset": bson.M{"instructorId": ""}, "$set": bson.M{"updatedAt": time.Now().UTC()}})
	return err
}

func ensureInstructorIndexes(ctx context.Context, db *mongo.Database) error {
	return createIndexes(ctx, db.Collection(instructorCollectionName), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("instructor_email"),
		},
		{
			Keys:    bson.D{{Key: "lastName", Value: 1}, {Key: "firstName", Value: 1}},
			Options: options.Index(),
		},
	})
}

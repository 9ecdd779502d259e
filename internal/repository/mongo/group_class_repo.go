package mongo

import (
	"alcyxob/gym-management/internal/domain"
	"alcyxob/gym-management/internal/repository"
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const groupClassCollectionName = "groupClasses"

// groupClassScheduleIndex enforces one class per instructor per slot.
const groupClassScheduleIndex = "group_class_instructor_slot"

var groupClassSortFields = map[string]string{
	"description":     "description",
	"dow":             "dow",
	"classTime":       "classTimeId",
	"fitnessCategory": "fitnessCategoryId",
	"instructor":      "instructorId",
}

// mongoGroupClassRepository implements repository.GroupClassRepository
type mongoGroupClassRepository struct {
	collection *mongo.Collection
}

// NewMongoGroupClassRepository creates a new GroupClass repository backed by MongoDB.
func NewMongoGroupClassRepository(db *mongo.Database) repository.GroupClassRepository {
	return &mongoGroupClassRepository{
		collection: db.Collection(groupClassCollectionName),
	}
}

// Create inserts a new group class. An instructor already teaching in the
// same day and time slot is reported as repository.ErrDuplicateKey.
func (r *mongoGroupClassRepository) Create(ctx context.Context, class *domain.GroupClass) (primitive.ObjectID, error) {
	class.ID = primitive.NewObjectID()
	class.RowVersion = newRowVersion()
	domain.StampAudit(&class.Audit, domain.KindGroupClass, domain.AuditCreate, domain.AuditActor(ctx), time.Now())

	return insertOne(ctx, r.collection, class)
}

// GetByID retrieves a group class by ID.
func (r *mongoGroupClassRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.GroupClass, error) {
	return findOne[domain.GroupClass](ctx, r.collection, bson.M{"_id": id})
}

// List returns a filtered, sorted page of group classes.
func (r *mongoGroupClassRepository) List(ctx context.Context, filter repository.GroupClassFilter, page repository.Page) ([]domain.GroupClass, int64, error) {
	query := bson.M{}
	if filter.Search != "" {
		query["description"] = containsFold(filter.Search)
	}
	if filter.ClassTimeID != nil {
		query["classTimeId"] = *filter.ClassTimeID
	}
	if filter.DOW != nil {
		query["dow"] = *filter.DOW
	}
	if filter.FitnessCategoryID != nil {
		query["fitnessCategoryId"] = *filter.FitnessCategoryID
	}
	if filter.InstructorID != nil {
		query["instructorId"] = *filter.InstructorID
	}
	if filter.ClientID != nil {
		query["clientIds"] = *filter.ClientID
	}
	return listPage[domain.GroupClass](ctx, r.collection, query, page, groupClassSortFields,
		bson.D{{Key: "dow", Value: 1}, {Key: "classTimeId", Value: 1}})
}

// UpdateIfVersion writes the editable fields and the enrollment list when
// the stored rowVersion still equals expectedVersion.
func (r *mongoGroupClassRepository) UpdateIfVersion(ctx context.Context, class *domain.GroupClass, expectedVersion string) error {
	domain.StampAudit(&class.Audit, domain.KindGroupClass, domain.AuditUpdate, domain.AuditActor(ctx), time.Now())

	clientIDs := class.ClientIDs
	if clientIDs == nil {
		clientIDs = []primitive.ObjectID{}
	}
	set := bson.M{
		"description":       class.Description,
		"dow":               class.DOW,
		"fitnessCategoryId": class.FitnessCategoryID,
		"instructorId":      class.InstructorID,
		"classTimeId":       class.ClassTimeID,
		"clientIds":         clientIDs,
		"updatedBy":         class.UpdatedBy,
		"updatedOn":         class.UpdatedOn,
	}
	next, err := updateIfVersion(ctx, r.collection, class.ID, expectedVersion, set)
	if err != nil {
		return err
	}
	class.RowVersion = next
	return nil
}

// Delete removes a group class together with its enrollments.
func (r *mongoGroupClassRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func ensureGroupClassIndexes(ctx context.Context, db *mongo.Database) error {
	return createIndexes(ctx, db.Collection(groupClassCollectionName), []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "instructorId", Value: 1},
				{Key: "dow", Value: 1},
				{Key: "classTimeId", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName(groupClassScheduleIndex),
		},
		{
			Keys:    bson.D{{Key: "fitnessCategoryId", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "clientIds", Value: 1}},
			Options: options.Index(),
		},
	})
}

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

const fitnessCategoryCollectionName = "fitnessCategories"

// mongoFitnessCategoryRepository implements repository.FitnessCategoryRepository
type mongoFitnessCategoryRepository struct {
	collection   *mongo.Collection
	groupClasses *mongo.Collection
	exercises    *mongo.Collection
}

// NewMongoFitnessCategoryRepository creates a new FitnessCategory repository backed by MongoDB.
func NewMongoFitnessCategoryRepository(db *mongo.Database) repository.FitnessCategoryRepository {
	return &mongoFitnessCategoryRepository{
		collection:   db.Collection(fitnessCategoryCollectionName),
		groupClasses: db.Collection(groupClassCollectionName),
		exercises:    db.Collection(exerciseCollectionName),
	}
}

func (r *mongoFitnessCategoryRepository) Create(ctx context.Context, category *domain.FitnessCategory) (primitive.ObjectID, error) {
	category.ID = primitive.NewObjectID()
	category.RowVersion = newRowVersion()
	domain.StampAudit(&category.Audit, domain.KindFitnessCategory, domain.AuditCreate, domain.AuditActor(ctx), time.Now())

	return insertOne(ctx, r.collection, category)
}

func (r *mongoFitnessCategoryRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.FitnessCategory, error) {
	return findOne[domain.FitnessCategory](ctx, r.collection, bson.M{"_id": id})
}

// List returns every category ordered by name.
func (r *mongoFitnessCategoryRepository) List(ctx context.Context) ([]domain.FitnessCategory, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "category", Value: 1}})
	return findAll[domain.FitnessCategory](ctx, r.collection, bson.M{}, findOptions)
}

func (r *mongoFitnessCategoryRepository) UpdateIfVersion(ctx context.Context, category *domain.FitnessCategory, expectedVersion string) error {
	domain.StampAudit(&category.Audit, domain.KindFitnessCategory, domain.AuditUpdate, domain.AuditActor(ctx), time.Now())

	set := bson.M{
		"category":  category.Category,
		"updatedBy": category.UpdatedBy,
		"updatedOn": category.UpdatedOn,
	}
	next, err := updateIfVersion(ctx, r.collection, category.ID, expectedVersion, set)
	if err != nil {
		return err
	}
	category.RowVersion = next
	return nil
}

func (r *mongoFitnessCategoryRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	refs := []struct {
		coll *mongo.Collection
		key  string
	}{
		{r.groupClasses, "fitnessCategoryId"},
		{r.exercises, "fitnessCategoryIds"},
	}
	for _, ref := range refs {
		used, err := exists(ctx, ref.coll, bson.M{ref.key: id})
		if err != nil {
			return err
		}
		if used {
			return repository.ErrReferenced
		}
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func ensureFitnessCategoryIndexes(ctx context.Context, db *mongo.Database) error {
	return createIndexes(ctx, db.Collection(fitnessCategoryCollectionName), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "category", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("fitness_category_name"),
		},
	})
}

package mongo

import (
	"alcyxob/gym-management/internal/domain"
	"alcyxob/gym-management/internal/repository"
	"context"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	membershipTypeCollectionName = "membershipTypes"
	classTimeCollectionName      = "classTimes"
	exerciseCollectionName       = "exercises"
)

// mongoLookupRepository implements repository.LookupRepository over the
// reference collections. Apart from the startup seed, this service only
// reads them.
type mongoLookupRepository struct {
	membershipTypes *mongo.Collection
	classTimes      *mongo.Collection
	exercises       *mongo.Collection
}

// NewMongoLookupRepository creates a new Lookup repository backed by MongoDB.
func NewMongoLookupRepository(db *mongo.Database) repository.LookupRepository {
	return &mongoLookupRepository{
		membershipTypes: db.Collection(membershipTypeCollectionName),
		classTimes:      db.Collection(classTimeCollectionName),
		exercises:       db.Collection(exerciseCollectionName),
	}
}

func (r *mongoLookupRepository) MembershipTypes(ctx context.Context) ([]domain.MembershipType, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "type", Value: 1}})
	return findAll[domain.MembershipType](ctx, r.membershipTypes, bson.M{}, findOptions)
}

func (r *mongoLookupRepository) MembershipType(ctx context.Context, id primitive.ObjectID) (*domain.MembershipType, error) {
	return findOne[domain.MembershipType](ctx, r.membershipTypes, bson.M{"_id": id})
}

// ClassTimes are returned in insertion order, which is chronological.
func (r *mongoLookupRepository) ClassTimes(ctx context.Context) ([]domain.ClassTime, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	return findAll[domain.ClassTime](ctx, r.classTimes, bson.M{}, findOptions)
}

func (r *mongoLookupRepository) ClassTime(ctx context.Context, id primitive.ObjectID) (*domain.ClassTime, error) {
	return findOne[domain.ClassTime](ctx, r.classTimes, bson.M{"_id": id})
}

func (r *mongoLookupRepository) Exercises(ctx context.Context) ([]domain.Exercise, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	return findAll[domain.Exercise](ctx, r.exercises, bson.M{}, findOptions)
}

// SeedLookups fills the membership type and class time collections when
// they are empty. Existing rows are never touched.
func SeedLookups(ctx context.Context, db *mongo.Database) error {
	seeds := []struct {
		coll *mongo.Collection
		docs []interface{}
	}{
		{db.Collection(membershipTypeCollectionName), []interface{}{
			domain.MembershipType{Type: "Basic", StandardFee: 100},
			domain.MembershipType{Type: "Premium", StandardFee: 175},
			domain.MembershipType{Type: "VIP", StandardFee: 300},
		}},
		{db.Collection(classTimeCollectionName), []interface{}{
			domain.ClassTime{StartTime: "10:00 AM"},
			domain.ClassTime{StartTime: "2:00 PM"},
			domain.ClassTime{StartTime: "7:00 PM"},
		}},
	}
	for _, seed := range seeds {
		count, err := seed.coll.EstimatedDocumentCount(ctx)
		if err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		// Ordered inserts keep the class times in chronological _id order.
		if _, err := seed.coll.InsertMany(ctx, seed.docs, options.InsertMany().SetOrdered(true)); err != nil {
			return err
		}
		log.Printf("INFO: seeded %d documents into %s", len(seed.docs), seed.coll.Name())
	}
	return nil
}

func ensureLookupIndexes(ctx context.Context, db *mongo.Database) error {
	if err := createIndexes(ctx, db.Collection(membershipTypeCollectionName), []mongo.IndexModel{
		{Keys: bson.D{{Key: "type", Value: 1}}, Options: options.Index().SetUnique(true)},
	}); err != nil {
		return err
	}
	return createIndexes(ctx, db.Collection(exerciseCollectionName), []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "fitnessCategoryIds", Value: 1}}, Options: options.Index()},
	})
}

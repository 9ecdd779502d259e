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

const instructorDocumentCollectionName = "instructorDocuments"

var instructorDocumentSortFields = map[string]string{
	"fileName":   "fileName",
	"uploadedAt": "uploadedAt",
	"instructor": "instructorId",
}

// mongoInstructorDocumentRepository implements repository.InstructorDocumentRepository
type mongoInstructorDocumentRepository struct {
	collection *mongo.Collection
}

// NewMongoInstructorDocumentRepository creates a new document metadata repository backed by MongoDB.
func NewMongoInstructorDocumentRepository(db *mongo.Database) repository.InstructorDocumentRepository {
	return &mongoInstructorDocumentRepository{
		collection: db.Collection(instructorDocumentCollectionName),
	}
}

// Create inserts document metadata once the object is in storage.
func (r *mongoInstructorDocumentRepository) Create(ctx context.Context, doc *domain.InstructorDocument) (primitive.ObjectID, error) {
	if doc.InstructorID == primitive.NilObjectID || doc.ObjectKey == "" {
		return primitive.NilObjectID, errors.New("document requires instructorId and objectKey")
	}

	doc.ID = primitive.NewObjectID()
	if doc.UploadedAt.IsZero() {
		doc.UploadedAt = time.Now().UTC() // Set the upload timestamp
	}
	return insertOne(ctx, r.collection, doc)
}

func (r *mongoInstructorDocumentRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.InstructorDocument, error) {
	return findOne[domain.InstructorDocument](ctx, r.collection, bson.M{"_id": id})
}

// List returns a page of documents, optionally for one instructor or
// matching part of a file name.
func (r *mongoInstructorDocumentRepository) List(ctx context.Context, filter repository.InstructorDocumentFilter, page repository.Page) ([]domain.InstructorDocument, int64, error) {
	query := bson.M{}
	if filter.InstructorID != nil {
		query["instructorId"] = *filter.InstructorID
	}
	if filter.FileName != "" {
		query["fileName"] = containsFold(filter.FileName)
	}
	return listPage[domain.InstructorDocument](ctx, r.collection, query, page, instructorDocumentSortFields,
		bson.D{{Key: "fileName", Value: 1}})
}

func (r *mongoInstructorDocumentRepository) UpdateDescription(ctx context.Context, id primitive.ObjectID, description string) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"description": description}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *mongoInstructorDocumentRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// DeleteByInstructor drops every document row of an instructor. Removing
// the stored objects is the caller's job.
func (r *mongoInstructorDocumentRepository) DeleteByInstructor(ctx context.Context, instructorID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"instructorId": instructorID})
	return err
}

func ensureInstructorDocumentIndexes(ctx context.Context, db *mongo.Database) error {
	return createIndexes(ctx, db.Collection(instructorDocumentCollectionName), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "instructorId", Value: 1}, {Key: "fileName", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "objectKey", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
}

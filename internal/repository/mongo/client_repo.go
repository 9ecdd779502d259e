package mongo

import (
	"alcyxob/gym-management/internal/domain"
	"alcyxob/gym-management/internal/repository"
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const clientCollectionName = "clients"

// clientSortFields maps list sort names to document keys.
var clientSortFields = map[string]string{
	"name":                "lastName",
	"membershipNumber":    "membershipNumber",
	"dob":                 "dob",
	"membershipEndDate":   "membershipEndDate",
	"membershipStartDate": "membershipStartDate",
	"membershipFee":       "membershipFee",
	"membershipType":      "membershipTypeId",
}

// mongoClientRepository implements repository.ClientRepository
type mongoClientRepository struct {
	collection   *mongo.Collection
	groupClasses *mongo.Collection
	workouts     *mongo.Collection
}

// NewMongoClientRepository creates a new Client repository backed by MongoDB.
func NewMongoClientRepository(db *mongo.Database) repository.ClientRepository {
	return &mongoClientRepository{
		collection:   db.Collection(clientCollectionName),
		groupClasses: db.Collection(groupClassCollectionName),
		workouts:     db.Collection(workoutCollectionName),
	}
}

// Create inserts a new client. A taken membership number is reported as
// repository.ErrDuplicateKey.
func (r *mongoClientRepository) Create(ctx context.Context, client *domain.Client) (primitive.ObjectID, error) {
	client.ID = primitive.NewObjectID()
	client.RowVersion = newRowVersion()
	domain.StampAudit(&client.Audit, domain.KindClient, domain.AuditCreate, domain.AuditActor(ctx), time.Now())

	return insertOne(ctx, r.collection, client)
}

// GetByID retrieves a client by ID.
func (r *mongoClientRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Client, error) {
	return findOne[domain.Client](ctx, r.collection, bson.M{"_id": id})
}

// GetByEmail finds the client record a client login belongs to.
func (r *mongoClientRepository) GetByEmail(ctx context.Context, email string) (*domain.Client, error) {
	return findOne[domain.Client](ctx, r.collection, bson.M{"email": equalFold(email)})
}

// GetByIDs loads several clients at once, e.g. a group class roster.
func (r *mongoClientRepository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Client, error) {
	if len(ids) == 0 {
		return []domain.Client{}, nil
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "lastName", Value: 1}, {Key: "firstName", Value: 1}})
	return findAll[domain.Client](ctx, r.collection, bson.M{"_id": bson.M{"$in": ids}}, findOptions)
}

// List returns a filtered, sorted page of clients and the total match count.
func (r *mongoClientRepository) List(ctx context.Context, filter repository.ClientFilter, page repository.Page) ([]domain.Client, int64, error) {
	query := bson.M{}
	if filter.Search != "" {
		query["$or"] = anyFieldContains(filter.Search, "firstName", "lastName")
	}
	if filter.MembershipTypeID != nil {
		query["membershipTypeId"] = *filter.MembershipTypeID
	}
	if filter.Email != "" {
		query["email"] = equalFold(filter.Email)
	}
	return listPage[domain.Client](ctx, r.collection, query, page, clientSortFields,
		bson.D{{Key: "lastName", Value: 1}, {Key: "firstName", Value: 1}})
}

// UpdateIfVersion writes the editable fields when the stored rowVersion
// still equals expectedVersion. On success client.RowVersion holds the new token.
func (r *mongoClientRepository) UpdateIfVersion(ctx context.Context, client *domain.Client, expectedVersion string) error {
	domain.StampAudit(&client.Audit, domain.KindClient, domain.AuditUpdate, domain.AuditActor(ctx), time.Now())

	set := bson.M{
		"membershipNumber":    client.MembershipNumber,
		"firstName":           client.FirstName,
		"middleName":          client.MiddleName,
		"lastName":            client.LastName,
		"phone":               client.Phone,
		"email":               client.Email,
		"dob":                 client.DOB,
		"postalCode":          client.PostalCode,
		"healthCondition":     client.HealthCondition,
		"notes":               client.Notes,
		"membershipStartDate": client.MembershipStartDate,
		"membershipEndDate":   client.MembershipEndDate,
		"membershipFee":       client.MembershipFee,
		"feePaid":             client.FeePaid,
		"membershipTypeId":    client.MembershipTypeID,
		"updatedBy":           client.UpdatedBy,
		"updatedOn":           client.UpdatedOn,
	}
	next, err := updateIfVersion(ctx, r.collection, client.ID, expectedVersion, set)
	if err != nil {
		return err
	}
	client.RowVersion = next
	return nil
}

// SetPhoto replaces or clears the photo metadata.
func (r *mongoClientRepository) SetPhoto(ctx context.Context, id primitive.ObjectID, photo *domain.StoredFile) error {
	update := bson.M{"$unset": bson.M{"photo": ""}}
	if photo != nil {
		update = bson.M{"$set": bson.M{"photo": photo}}
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a client and their workouts. Enrolled clients are refused.
func (r *mongoClientRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	enrolled, err := exists(ctx, r.groupClasses, bson.M{"clientIds": id})
	if err != nil {
		return err
	}
	if enrolled {
		return repository.ErrReferenced
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}

	if _, err := r.workouts.DeleteMany(ctx, bson.M{"clientId": id}); err != nil {
		return err
	}
	return nil
}

func ensureClientIndexes(ctx context.Context, db *mongo.Database) error {
	return createIndexes(ctx, db.Collection(clientCollectionName), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "membershipNumber", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("client_membership_number"),
		},
		{
			Keys:    bson.D{{Key: "lastName", Value: 1}, {Key: "firstName", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "membershipTypeId", Value: 1}},
			Options: options.Index(),
		},
	})
}

// equalFold matches the whole value, ignoring case.
func equalFold(s string) bson.M {
	return bson.M{"$regex": "^" + regexp.QuoteMeta(s) + "$", "$options": "i"}
}

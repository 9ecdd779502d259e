package mongo

import (
	"alcyxob/gym-management/internal/repository"
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// newRowVersion issues the token stored in every versioned document.
func newRowVersion() string {
	return uuid.NewString()
}

// insertOne inserts doc and maps unique index violations.
func insertOne(ctx context.Context, coll *mongo.Collection, doc interface{}) (primitive.ObjectID, error) {
	result, err := coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrDuplicateKey
		}
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// updateIfVersion applies set to the document only while its rowVersion is
// still expected. The filter and the new token go out in one UpdateOne so
// the check and the write are atomic. Returns the new token.
func updateIfVersion(ctx context.Context, coll *mongo.Collection, id primitive.ObjectID, expected string, set bson.M) (string, error) {
	next := newRowVersion()
	set["rowVersion"] = next

	filter := bson.M{"_id": id, "rowVersion": expected}
	result, err := coll.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", repository.ErrDuplicateKey
		}
		return "", err
	}
	if result.MatchedCount == 0 {
		// Tell a stale token apart from a deleted row.
		found, err := exists(ctx, coll, bson.M{"_id": id})
		if err != nil {
			return "", err
		}
		if !found {
			return "", repository.ErrNotFound
		}
		return "", repository.ErrVersionMismatch
	}
	return next, nil
}

func exists(ctx context.Context, coll *mongo.Collection, filter bson.M) (bool, error) {
	n, err := coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func findOne[T any](ctx context.Context, coll *mongo.Collection, filter bson.M) (*T, error) {
	var out T
	err := coll.FindOne(ctx, filter).Decode(&out)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &out, nil
}

func findAll[T any](ctx context.Context, coll *mongo.Collection, filter bson.M, opts ...*options.FindOptions) ([]T, error) {
	cursor, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	out := []T{}
	if err = cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// listPage counts the filtered documents and returns the requested page.
// sortable maps API sort field names to document keys; unknown names fall
// back to defaultSort.
func listPage[T any](ctx context.Context, coll *mongo.Collection, filter bson.M, page repository.Page, sortable map[string]string, defaultSort bson.D) ([]T, int64, error) {
	total, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	findOptions := options.Find().SetSort(sortFor(page, sortable, defaultSort))
	if page.Size > 0 {
		findOptions.SetSkip(page.Skip()).SetLimit(int64(page.Size))
	}

	items, err := findAll[T](ctx, coll, filter, findOptions)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func sortFor(page repository.Page, sortable map[string]string, defaultSort bson.D) bson.D {
	key, ok := sortable[page.SortField]
	if !ok {
		if page.SortDir != repository.SortDesc {
			return defaultSort
		}
		desc := make(bson.D, len(defaultSort))
		for i, e := range defaultSort {
			dir, _ := e.Value.(int)
			desc[i] = bson.E{Key: e.Key, Value: -dir}
		}
		return desc
	}
	dir := 1
	if page.SortDir == repository.SortDesc {
		dir = -1
	}
	// _id keeps paging stable when the sort key has ties.
	return bson.D{{Key: key, Value: dir}, {Key: "_id", Value: 1}}
}

// containsFold matches documents whose field contains s, ignoring case.
func containsFold(s string) bson.M {
	return bson.M{"$regex": regexp.QuoteMeta(strings.TrimSpace(s)), "$options": "i"}
}

// anyFieldContains builds an $or over fields for a free-text search.
func anyFieldContains(s string, fields ...string) bson.A {
	clauses := bson.A{}
	for _, f := range fields {
		clauses = append(clauses, bson.M{f: containsFold(s)})
	}
	return clauses
}

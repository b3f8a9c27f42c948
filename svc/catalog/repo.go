package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	mongodb "github.com/citelab/bibcat/pkg/mongo"
)

// Repo is a MongoDB-backed store for one catalog record type.
type Repo[T Entity] struct {
	col *mongo.Collection
}

// NewRepo binds a repository to the named collection.
func NewRepo[T Entity](db *mongo.Database, collection string) *Repo[T] {
	return &Repo[T]{col: db.Collection(collection)}
}

// Create inserts a new record. An ID collision returns ErrAlreadyExists.
func (r *Repo[T]) Create(ctx context.Context, e T) error {
	if _, err := r.col.InsertOne(ctx, e); err != nil {
		if mongodb.IsDuplicateKeyError(err) {
			return ErrAlreadyExists
		}
		return fmt.Errorf("failed to insert record: %w", err)
	}
	return nil
}

// GetByID fetches a record, returning ErrNotFound when absent.
func (r *Repo[T]) GetByID(ctx context.Context, id uuid.UUID) (T, error) {
	var e T
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&e); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return e, ErrNotFound
		}
		return e, fmt.Errorf("failed to get record: %w", err)
	}
	return e, nil
}

// List returns all records of the collection.
func (r *Repo[T]) List(ctx context.Context) ([]T, error) {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	defer cur.Close(ctx)

	var out []T
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode records: %w", err)
	}
	return out, nil
}

// Find returns records matching the filter.
func (r *Repo[T]) Find(ctx context.Context, filter bson.M) ([]T, error) {
	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer cur.Close(ctx)

	var out []T
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode records: %w", err)
	}
	return out, nil
}

// Update replaces a record in full, returning ErrNotFound when absent.
func (r *Repo[T]) Update(ctx context.Context, e T) error {
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": e.EntityID()}, e)
	if err != nil {
		return fmt.Errorf("failed to update record: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a record, returning ErrNotFound when absent.
func (r *Repo[T]) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

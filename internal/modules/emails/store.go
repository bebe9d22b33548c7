package emails

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/clippy-app/core/internal/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionName is the document-store collection holding captured emails.
const CollectionName = "emails"

// ErrStoreUnavailable wraps any document-store failure.
var ErrStoreUnavailable = errors.New("email store unavailable")

// Store is the read/write surface over the emails collection.
//
// ListAll materializes the full collection ordered newest-first; there is
// no pagination, an accepted scale limit. Count is an independent
// round-trip and is not transactionally consistent with ListAll.
type Store interface {
	Insert(ctx context.Context, email string) error
	ListAll(ctx context.Context) ([]models.EmailRecord, error)
	Count(ctx context.Context) (int64, error)
}

// MongoStore implements Store over a MongoDB collection.
type MongoStore struct {
	col *mongo.Collection
}

// NewMongoStore binds the store to the emails collection of db.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{col: db.Collection(CollectionName)}
}

// Insert appends one record with status=active and a store-assigned
// timestamp. Records are append-only; nothing ever mutates or deletes them.
func (s *MongoStore) Insert(ctx context.Context, email string) error {
	rec := models.EmailRecord{
		ID:        uuid.New().String(),
		Email:     email,
		Timestamp: time.Now().UTC(),
		Status:    models.StatusActive,
	}
	if _, err := s.col.InsertOne(ctx, rec); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// ListAll returns every record ordered by timestamp descending.
func (s *MongoStore) ListAll(ctx context.Context) ([]models.EmailRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	cur, err := s.col.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	defer cur.Close(ctx)

	records := make([]models.EmailRecord, 0)
	if err := cur.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return records, nil
}

// Count returns the total number of records in its own round-trip.
func (s *MongoStore) Count(ctx context.Context) (int64, error) {
	n, err := s.col.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return n, nil
}

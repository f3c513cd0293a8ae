package mongo

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/furniture-store/storefront/internal/core/domain"
	"github.com/furniture-store/storefront/internal/core/ports"
)

const DefaultCollection = "documents"

type documentRecord struct {
	Path      string    `bson:"_id"`
	Content   []byte    `bson:"content"`
	Version   int64     `bson:"version"`
	Message   string    `bson:"message"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// DocumentStore keeps every collection file as one document keyed by its
// path. Versions are counters bumped on each write.
type DocumentStore struct {
	client *mongo.Client
	col    *mongo.Collection
}

func NewDocumentStore(db *mongo.Database, collection string) *DocumentStore {
	if collection == "" {
		collection = DefaultCollection
	}
	return &DocumentStore{client: db.Client(), col: db.Collection(collection)}
}

func (s *DocumentStore) Read(ctx context.Context, path string) (*ports.Document, error) {
	var rec documentRecord
	err := s.col.FindOne(ctx, bson.M{"_id": path}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%s: %w", path, domain.ErrDocumentNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", domain.ErrRemoteUnavailable, path, err)
	}
	return &ports.Document{Content: rec.Content, Version: strconv.FormatInt(rec.Version, 10)}, nil
}

// Write inserts the document when version is empty and otherwise replaces it
// only if the stored counter still equals version.
func (s *DocumentStore) Write(ctx context.Context, path string, content []byte, message, version string) (string, error) {
	now := time.Now().UTC()

	if version == "" {
		_, err := s.col.InsertOne(ctx, documentRecord{Path: path, Content: content, Version: 1, Message: message, UpdatedAt: now})
		if mongo.IsDuplicateKeyError(err) {
			return "", &domain.ConflictError{Path: path}
		}
		if err != nil {
			return "", fmt.Errorf("%w: insert %s: %v", domain.ErrRemoteUnavailable, path, err)
		}
		return "1", nil
	}

	current, err := strconv.ParseInt(version, 10, 64)
	if err != nil {
		return "", &domain.ConflictError{Path: path, ExpectedVersion: version}
	}

	res, err := s.col.UpdateOne(ctx,
		bson.M{"_id": path, "version": current},
		bson.M{
			"$set": bson.M{"content": content, "message": message, "updatedAt": now},
			"$inc": bson.M{"version": 1},
		},
	)
	if err != nil {
		return "", fmt.Errorf("%w: update %s: %v", domain.ErrRemoteUnavailable, path, err)
	}
	if res.MatchedCount == 0 {
		return "", &domain.ConflictError{Path: path, ExpectedVersion: version}
	}
	return strconv.FormatInt(current+1, 10), nil
}

func (s *DocumentStore) Delete(ctx context.Context, path, _, version string) error {
	filter := bson.M{"_id": path}
	if version != "" {
		current, err := strconv.ParseInt(version, 10, 64)
		if err != nil {
			return &domain.ConflictError{Path: path, ExpectedVersion: version}
		}
		filter["version"] = current
	}

	res, err := s.col.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("%w: delete %s: %v", domain.ErrRemoteUnavailable, path, err)
	}
	if res.DeletedCount > 0 {
		return nil
	}

	n, err := s.col.CountDocuments(ctx, bson.M{"_id": path})
	if err != nil {
		return fmt.Errorf("%w: delete %s: %v", domain.ErrRemoteUnavailable, path, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", path, domain.ErrDocumentNotFound)
	}
	return &domain.ConflictError{Path: path, ExpectedVersion: version}
}

func (s *DocumentStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrRemoteUnavailable, err)
	}
	return nil
}

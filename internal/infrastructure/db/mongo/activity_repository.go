package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/adsc/report-system/internal/core/domain"
	"github.com/adsc/report-system/internal/core/ports"
)

const activityCollection = "activity_logs"

// ActivityRepository implements ports.ActivityRepository using MongoDB.
type ActivityRepository struct {
	db *mongo.Database
}

// NewActivityRepository creates a new ActivityRepository.
func NewActivityRepository(db *mongo.Database) *ActivityRepository {
	return &ActivityRepository{db: db}
}

var _ ports.ActivityRepository = (*ActivityRepository)(nil)

type mongoActivity struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	UserID       string             `bson:"user_id"`
	Username     string             `bson:"username"`
	Action       string             `bson:"action"`
	ResourceType string             `bson:"resource_type,omitempty"`
	ResourceID   string             `bson:"resource_id,omitempty"`
	Metadata     map[string]string  `bson:"metadata,omitempty"`
	IPAddress    string             `bson:"ip_address,omitempty"`
	UserAgent    string             `bson:"user_agent,omitempty"`
	Timestamp    time.Time          `bson:"timestamp"`
}

func (r *ActivityRepository) coll() *mongo.Collection {
	return r.db.Collection(activityCollection)
}

// Insert appends an entry to the activity_logs collection.
func (r *ActivityRepository) Insert(ctx context.Context, entry *domain.ActivityLog) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoActivity{
		ID:           primitive.NewObjectID(),
		UserID:       entry.UserID,
		Username:     entry.Username,
		Action:       string(entry.Action),
		ResourceType: entry.ResourceType,
		ResourceID:   entry.ResourceID,
		Metadata:     entry.Metadata,
		IPAddress:    entry.IPAddress,
		UserAgent:    entry.UserAgent,
		Timestamp:    entry.Timestamp.UTC(),
	}
	if _, err := r.coll().InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	entry.ID = doc.ID.Hex()
	return nil
}

// List returns the newest entries first, optionally for one user.
func (r *ActivityRepository) List(ctx context.Context, filter domain.ActivityFilter) ([]domain.ActivityLog, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	q := bson.M{}
	if filter.UserID != "" {
		q["user_id"] = filter.UserID
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(int64(filter.Limit))

	cur, err := r.coll().Find(ctx, q, opts)
	if err != nil {
		return nil, fmt.Errorf("find activity: %w", err)
	}
	var docs []mongoActivity
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode activity: %w", err)
	}

	out := make([]domain.ActivityLog, 0, len(docs))
	for _, d := range docs {
		out = append(out, domain.ActivityLog{
			ID:           d.ID.Hex(),
			UserID:       d.UserID,
			Username:     d.Username,
			Action:       domain.ActivityAction(d.Action),
			ResourceType: d.ResourceType,
			ResourceID:   d.ResourceID,
			Metadata:     d.Metadata,
			IPAddress:    d.IPAddress,
			UserAgent:    d.UserAgent,
			Timestamp:    d.Timestamp.UTC(),
		})
	}
	return out, nil
}

// EnsureIndexes creates necessary indexes on the activity_logs collection.
func (r *ActivityRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "timestamp", Value: -1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "timestamp", Value: -1}}},
	}
	_, err := r.coll().Indexes().CreateMany(ctx, indexes)
	return err
}

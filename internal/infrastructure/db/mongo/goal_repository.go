package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/adsc/report-system/internal/core/domain"
)

const goalsCollection = "goals"

type GoalRepository struct {
	col *mongo.Collection
}

func NewGoalRepository(db *mongo.Database) *GoalRepository {
	return &GoalRepository{col: db.Collection(goalsCollection)}
}

type mongoGoal struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Type      string             `bson:"type"`
	Target    int64              `bson:"target"`
	CreatedBy string             `bson:"created_by"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (m mongoGoal) toDomain() domain.Goal {
	return domain.Goal{
		ID:        m.ID.Hex(),
		Name:      m.Name,
		Type:      domain.GoalType(m.Type),
		Target:    domain.Money(m.Target),
		CreatedBy: m.CreatedBy,
		CreatedAt: m.CreatedAt.UTC(),
	}
}

func (r *GoalRepository) Create(ctx context.Context, goal *domain.Goal) (*domain.Goal, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoGoal{
		ID:        primitive.NewObjectID(),
		Name:      goal.Name,
		Type:      string(goal.Type),
		Target:    int64(goal.Target),
		CreatedBy: goal.CreatedBy,
		CreatedAt: goal.CreatedAt.UTC(),
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert goal: %w", err)
	}
	out := doc.toDomain()
	return &out, nil
}

func (r *GoalRepository) FindByID(ctx context.Context, id string) (*domain.Goal, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrGoalNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoGoal
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrGoalNotFound
		}
		return nil, err
	}
	out := doc.toDomain()
	return &out, nil
}

func (r *GoalRepository) ListByOwner(ctx context.Context, userID string) ([]domain.Goal, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"created_by": userID}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find goals: %w", err)
	}
	var docs []mongoGoal
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode goals: %w", err)
	}

	out := make([]domain.Goal, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *GoalRepository) Delete(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return domain.ErrGoalNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrGoalNotFound
	}
	return nil
}

// EnsureIndexes creates necessary indexes on the goals collection.
func (r *GoalRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: bson.D{{Key: "created_by", Value: 1}}})
	return err
}

package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/arthsaathi/finlit-engine/internal/core/domain"
)

const collectionRoadmaps = "roadmaps"

type RoadmapRepository struct {
	col *mongo.Collection
	now func() time.Time
}

func NewRoadmapRepository(db *mongo.Database) *RoadmapRepository {
	return &RoadmapRepository{
		col: db.Collection(collectionRoadmaps),
		now: func() time.Time { return time.Now().UTC() },
	}
}

func (r *RoadmapRepository) GetRoadmap(ctx context.Context, userID string) (*domain.Roadmap, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var rm domain.Roadmap
	err := r.col.FindOne(ctx, bson.M{"user_id": userID}).Decode(&rm)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRoadmapNotFound
		}
		return nil, err
	}
	return &rm, nil
}

// SaveRoadmap replaces the user's roadmap document, inserting it if absent.
func (r *RoadmapRepository) SaveRoadmap(ctx context.Context, rm *domain.Roadmap) (*domain.Roadmap, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := rm.Clone()
	if doc.UpdatedAt.IsZero() {
		doc.UpdatedAt = r.now()
	}

	_, err := r.col.ReplaceOne(ctx,
		bson.M{"user_id": doc.UserID},
		doc,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// EnsureIndexes makes user_id unique so upserts cannot race into duplicates.
func (r *RoadmapRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

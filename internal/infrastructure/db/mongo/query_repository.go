package mongo

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/arthsaathi/finlit-engine/internal/core/domain"
)

const (
	collectionQueries = "queries"

	// DefaultQueryLimit caps GetUserQueries when no limit is configured.
	DefaultQueryLimit = 20
)

type QueryRepository struct {
	col   *mongo.Collection
	limit int64
	log   zerolog.Logger
	now   func() time.Time
}

// NewQueryRepository returns a QueryRepository. limit <= 0 uses DefaultQueryLimit.
func NewQueryRepository(db *mongo.Database, limit int, log zerolog.Logger) *QueryRepository {
	if limit <= 0 {
		limit = DefaultQueryLimit
	}
	return &QueryRepository{
		col:   db.Collection(collectionQueries),
		limit: int64(limit),
		log:   log,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// SaveQuery assigns an id and creation time and inserts the query.
func (r *QueryRepository) SaveQuery(ctx context.Context, q *domain.Query) (*domain.Query, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := *q
	doc.ID = uuid.NewString()
	doc.CreatedAt = r.now()

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// GetUserQueries returns the newest queries first. If the server-side sort
// fails the documents are sorted here instead; if that also fails the history
// is reported empty.
func (r *QueryRepository) GetUserQueries(ctx context.Context, userID string) ([]domain.Query, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"user_id": userID}

	sorted := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(r.limit)
	queries, err := r.find(ctx, filter, sorted)
	if err == nil {
		return queries, nil
	}
	r.log.Warn().Err(err).Str("user_id", userID).Msg("sorted query lookup failed, sorting in memory")

	queries, err = r.find(ctx, filter, options.Find())
	if err != nil {
		r.log.Error().Err(err).Str("user_id", userID).Msg("query lookup failed, returning empty history")
		return []domain.Query{}, nil
	}
	return newestFirst(queries, int(r.limit)), nil
}

func (r *QueryRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]domain.Query, error) {
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	queries := []domain.Query{}
	if err := cur.All(ctx, &queries); err != nil {
		return nil, err
	}
	return queries, nil
}

// EnsureIndexes creates the history lookup index.
func (r *QueryRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	return err
}

func newestFirst(queries []domain.Query, limit int) []domain.Query {
	sort.SliceStable(queries, func(i, j int) bool {
		return queries[i].CreatedAt.After(queries[j].CreatedAt)
	})
	if limit > 0 && len(queries) > limit {
		queries = queries[:limit]
	}
	return queries
}

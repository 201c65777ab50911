package mongo

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Store bundles the repositories into a single ports.Storage.
type Store struct {
	*UserRepository
	*QueryRepository
	*RoadmapRepository

	client *mongo.Client
}

// NewStore wires the repositories over db.
func NewStore(client *mongo.Client, db *mongo.Database, queryLimit int, log zerolog.Logger) *Store {
	return &Store{
		UserRepository:    NewUserRepository(db),
		QueryRepository:   NewQueryRepository(db, queryLimit, log),
		RoadmapRepository: NewRoadmapRepository(db),
		client:            client,
	}
}

// Ping checks the primary is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// EnsureIndexes creates the indexes every collection relies on.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	if err := s.QueryRepository.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("queries indexes: %w", err)
	}
	if err := s.RoadmapRepository.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("roadmaps indexes: %w", err)
	}
	return nil
}

// Close disconnects the underlying client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

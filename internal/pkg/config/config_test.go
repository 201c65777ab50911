package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{}))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StorageMemory, cfg.StorageBackend)
	assert.Equal(t, 20, cfg.Query.HistoryLimit)
	assert.Equal(t, 10*time.Minute, cfg.Query.DedupTTL)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Empty(t, cfg.Redis.Addr)
	assert.False(t, cfg.AuthEnabled())
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"ENV":                 "production",
		"JWT_SECRET":          "s3cret",
		"STORAGE_BACKEND":     "mongo",
		"MONGO_DB":            "finlit_test",
		"REDIS_ADDR":          "localhost:6380",
		"QUERY_HISTORY_LIMIT": "50",
		"QUERY_DEDUP_TTL":     "30s",
	}))
	require.NoError(t, err)

	assert.Equal(t, StorageMongo, cfg.StorageBackend)
	assert.Equal(t, "finlit_test", cfg.Mongo.Database)
	assert.Equal(t, "localhost:6380", cfg.Redis.Addr)
	assert.Equal(t, 50, cfg.Query.HistoryLimit)
	assert.Equal(t, 30*time.Second, cfg.Query.DedupTTL)
	assert.True(t, cfg.AuthEnabled())
	assert.False(t, cfg.IsDevelopment())
}

func TestLoadFrom_Invalid(t *testing.T) {
	cases := map[string]map[string]string{
		"unknown backend": {"STORAGE_BACKEND": "firestore"},
		"zero limit":      {"QUERY_HISTORY_LIMIT": "0"},
		"bad duration":    {"REQUEST_TIMEOUT": "soon"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadFrom(context.Background(), envconfig.MapLookuper(env))
			assert.Error(t, err)
		})
	}
}

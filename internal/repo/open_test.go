package repo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/core/config"
	"taskboard/internal/repo"
)

func TestOpen_Memory(t *testing.T) {
	cfg := &config.Config{Store: config.Store{Backend: "memory"}}

	s, err := repo.Open(context.Background(), cfg, nil)
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, repo.BackendMemory, s.Backend)
	assert.IsType(t, &repo.MemoryUsers{}, s.Users)
	assert.IsType(t, &repo.MemoryTasks{}, s.Tasks)
	assert.NoError(t, s.Ping(context.Background()))
}

func TestOpen_UnknownBackend(t *testing.T) {
	cfg := &config.Config{Store: config.Store{Backend: "cassandra"}}

	_, err := repo.Open(context.Background(), cfg, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cassandra")
}

package main

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_InvalidConfig(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("JWT_SECRET", "")

	err := run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load config")
}

func TestRun_UnreachableDatabase(t *testing.T) {
	t.Setenv("ENV", "development")
	t.Setenv("DB_HOST", "127.0.0.1")
	t.Setenv("DB_PORT", "1")

	err := run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connect to database")
}

func TestPick(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	items := []string{"EU", "NA", "SA"}
	for i := 0; i < 20; i++ {
		assert.Contains(t, items, pick(rng, items))
	}
}

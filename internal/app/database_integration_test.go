//go:build integration

package app

import (
	"context"
	"testing"

	"github.com/guttosm/combination-service/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeDatabase_Integration(t *testing.T) {
	ctx := context.Background()
	cfg := integrationConfig(t).Database

	t.Run("seeds defaults into an empty database", func(t *testing.T) {
		enumerator := service.NewEnumeratorService()
		components := InitializeDatabase(cfg, []int{1, 5}, enumerator)
		require.NotNil(t, components)
		defer func() { require.NoError(t, components.Close(ctx)) }()

		active, err := components.DenominationSets.GetActive(ctx)
		require.NoError(t, err)
		require.NotNil(t, active)
		assert.Equal(t, []int{1, 5}, active.Denominations)
		assert.Equal(t, 1, active.Version)
		assert.Equal(t, []int{1, 5}, enumerator.Denominations())

		assert.NoError(t, components.DB.HealthCheck(ctx))
		assert.Equal(t, denominationSetsBreaker, components.DenominationSetsBreaker.Name())
		assert.Equal(t, logsBreaker, components.LogsBreaker.Name())
	})

	t.Run("stored set wins over defaults", func(t *testing.T) {
		enumerator := service.NewEnumeratorService()
		components := InitializeDatabase(cfg, []int{2, 3}, enumerator)
		require.NotNil(t, components)
		defer func() { require.NoError(t, components.Close(ctx)) }()

		assert.Equal(t, []int{1, 5}, enumerator.Denominations())
	})
}

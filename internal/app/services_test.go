//go:build !integration

package app

import (
	"context"
	"testing"
	"time"

	"github.com/guttosm/combination-service/config"
	"github.com/guttosm/combination-service/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeServices(t *testing.T) {
	tests := []struct {
		name         string
		cfg          config.Config
		expectedDens []int
		target       int
		expectErr    error
	}{
		{
			name:         "configured denominations and limits",
			cfg:          config.Config{Enumeration: config.EnumerationConfig{Denominations: []int{5, 10}, MaxTarget: 50}},
			expectedDens: []int{5, 10},
			target:       20,
		},
		{
			name:         "empty list keeps compiled default",
			cfg:          config.Config{},
			expectedDens: config.DefaultDenominations,
			target:       4,
		},
		{
			name:         "max target enforced",
			cfg:          config.Config{Enumeration: config.EnumerationConfig{MaxTarget: 10}},
			expectedDens: config.DefaultDenominations,
			target:       11,
			expectErr:    service.ErrTargetTooLarge,
		},
		{
			name: "with cache",
			cfg: config.Config{
				Cache: config.CacheConfig{Size: 10, TTL: time.Minute, Shards: 2},
			},
			expectedDens: config.DefaultDenominations,
			target:       4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			components := InitializeServices(tt.cfg)
			defer components.Enumerator.Stop()

			assert.Equal(t, tt.expectedDens, components.Enumerator.Denominations())

			_, err := components.Enumerator.Enumerate(context.Background(), nil, tt.target, 0)
			if tt.expectErr != nil {
				assert.ErrorIs(t, err, tt.expectErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestInitializeServices_MaxElements(t *testing.T) {
	cfg := config.Config{Enumeration: config.EnumerationConfig{MaxElements: 4}}
	components := InitializeServices(cfg)
	defer components.Enumerator.Stop()

	result, err := components.Enumerator.Enumerate(context.Background(), []int{1, 2}, 4, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Count)
	assert.True(t, result.Truncated)
}

//go:build !integration

package app

import (
	"testing"
	"time"

	"github.com/guttosm/combination-service/config"
	"github.com/guttosm/combination-service/internal/service"
	"github.com/stretchr/testify/assert"
)

func TestInitializeRouter(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.Config
		validate func(*testing.T, *RouterComponents)
	}{
		{
			name: "without database",
			cfg:  testConfig(),
			validate: func(t *testing.T, components *RouterComponents) {
				assert.NotNil(t, components.Handler)
				assert.NotNil(t, components.HealthHandler)
				assert.Nil(t, components.AsyncLogger)
				assert.Nil(t, components.Config.LogSink)
				assert.Nil(t, components.Config.DenominationSets)
				assert.Nil(t, components.Config.Logs)
				assert.NotNil(t, components.Config.Idempotency)
			},
		},
		{
			name: "rate limiting and auth from config",
			cfg: func() config.Config {
				cfg := testConfig()
				cfg.Server.RateLimit = 5
				cfg.Server.RateWindow = time.Second
				cfg.Server.RequestTimeout = 3 * time.Second
				cfg.Auth = config.AuthConfig{Enabled: true, APIKeys: map[string]bool{"k": true}}
				return cfg
			}(),
			validate: func(t *testing.T, components *RouterComponents) {
				assert.NotNil(t, components.RateLimiter)
				assert.Same(t, components.RateLimiter, components.Config.RateLimiter)
				assert.True(t, components.Config.EnableAuth)
				assert.Equal(t, map[string]bool{"k": true}, components.Config.APIKeys)
				assert.Equal(t, 3*time.Second, components.Config.RequestTimeout)
			},
		},
		{
			name: "rate limiting disabled",
			cfg:  testConfig(),
			validate: func(t *testing.T, components *RouterComponents) {
				assert.Nil(t, components.RateLimiter)
				assert.Nil(t, components.Config.RateLimiter)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enumerator := service.NewEnumeratorService()
			components := InitializeRouter(enumerator, nil, tt.cfg)
			defer components.Stop()

			tt.validate(t, components)
		})
	}
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("GO_ENV", "production")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DATABASE_DRIVER", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Contains(t, cfg.DBUrl, "postgres://")
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 4, cfg.Dispatch.Workers)
	assert.Equal(t, 30*time.Second, cfg.Dispatch.ActTimeout)
	assert.Equal(t, "noop", cfg.Mail.Provider)
}

func TestLoad_ParsesListsAndDurations(t *testing.T) {
	t.Setenv("GO_ENV", "production")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("EVENT_MEAL_TYPES", " Desayuno, ,Almuerzo ")
	t.Setenv("DISPATCH_WORKERS", "0")
	t.Setenv("DISPATCH_ACT_TIMEOUT", "5s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"Desayuno", "Almuerzo"}, cfg.Event.MealTypes)
	assert.Equal(t, 1, cfg.Dispatch.Workers)
	assert.Equal(t, 5*time.Second, cfg.Dispatch.ActTimeout)
	assert.Contains(t, cfg.DBUrl, "file:")
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown driver", map[string]string{"GO_ENV": "production", "JWT_SECRET": "x", "DATABASE_DRIVER": "mysql"}},
		{"missing secret in production", map[string]string{"GO_ENV": "production", "JWT_SECRET": "", "DATABASE_DRIVER": "postgres"}},
		{"bad duration", map[string]string{"GO_ENV": "production", "JWT_SECRET": "x", "DISPATCH_ACT_TIMEOUT": "soon"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
		})
	}
}

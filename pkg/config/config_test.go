package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestViper(values map[string]interface{}) *viper.Viper {
	v := viper.New()
	setDefaults(v)
	for k, val := range values {
		v.Set(k, val)
	}
	return v
}

func TestFromViperDefaults(t *testing.T) {
	cfg := fromViper(newTestViper(nil))

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, 8*time.Second, cfg.AI.Timeout)
	assert.False(t, cfg.AIEnabled())
	assert.ErrorIs(t, cfg.Validate(), ErrMissingStoreURL)
}

func TestFromViperFallsBackToDatabaseURL(t *testing.T) {
	cfg := fromViper(newTestViper(map[string]interface{}{
		"DATABASE_URL":       "postgres://localhost/feedback",
		"AI_SERVICE_URL":     "http://ai.local:5001/",
		"AI_SERVICE_TIMEOUT": "nonsense",
		"ALLOWED_ORIGINS":    "http://a.test, ,http://b.test",
	}))

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "postgres://localhost/feedback", cfg.Database.URL)
	assert.Equal(t, "http://ai.local:5001", cfg.AI.BaseURL)
	assert.True(t, cfg.AIEnabled())
	assert.Equal(t, 8*time.Second, cfg.AI.Timeout)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
}

func TestFromViperPrefersSupabaseURL(t *testing.T) {
	cfg := fromViper(newTestViper(map[string]interface{}{
		"SUPABASE_DB_URL": "postgres://supabase/db",
		"DATABASE_URL":    "postgres://other/db",
		"ENV":             EnvProduction,
	}))

	assert.Equal(t, "postgres://supabase/db", cfg.Database.URL)
	assert.False(t, cfg.Docs.Enabled)
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"signa-dashboard/internal/signa"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "SIGNA_BASE_URL", "SIGNA_TIMEOUT", "SIGNA_UPLOAD_TIMEOUT",
		"SIGNA_RESPONSE_SHAPE", "SESSION_STORE", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "RPPG_MAX_UPLOAD_MB", "CORS_ORIGINS", "SESSION_KEY", "HOST", "GATEWAY_SECRET", "GATEWAY_TOKEN_TTL", "COOKIE_SECURE"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "127.0.0.1", cfg.Host)
	assert.Equal(t, "127.0.0.1:8080", cfg.Addr())
	assert.Len(t, cfg.TokenSecret, 32)
	assert.Equal(t, 12*time.Hour, cfg.TokenTTL)
	assert.False(t, cfg.SecureCookie)
	assert.Equal(t, signa.DefaultBaseURL, cfg.Signa.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Signa.Timeout)
	assert.Equal(t, 30*time.Second, cfg.Signa.UploadTimeout)
	assert.Equal(t, signa.ResponseEnvelope, cfg.Signa.Shape)
	assert.Equal(t, StoreFile, cfg.SessionStore)
	assert.Equal(t, ".signa/session", cfg.SessionFile)
	assert.Nil(t, cfg.SessionKey)
	assert.Equal(t, []string{DefaultDashboardOrigin}, cfg.CORSOrigins)
	assert.Equal(t, 5.0, cfg.RateLimitRPS)
	assert.Equal(t, 10, cfg.RateLimitBurst)
	assert.Equal(t, int64(50<<20), cfg.MaxUploadBytes)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SIGNA_BASE_URL", "http://localhost:8000")
	t.Setenv("SIGNA_TIMEOUT", "2s")
	t.Setenv("SIGNA_RESPONSE_SHAPE", "bare")
	t.Setenv("SESSION_STORE", "redis")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("CORS_ORIGINS", "http://localhost:3000, https://signa.example")
	t.Setenv("RPPG_MAX_UPLOAD_MB", "8")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "http://localhost:8000", cfg.Signa.BaseURL)
	assert.Equal(t, 2*time.Second, cfg.Signa.Timeout)
	assert.Equal(t, signa.ResponseBare, cfg.Signa.Shape)
	assert.Equal(t, StoreRedis, cfg.SessionStore)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, []string{"http://localhost:3000", "https://signa.example"}, cfg.CORSOrigins)
	assert.Equal(t, int64(8<<20), cfg.MaxUploadBytes)
}

func TestLoad_InvalidValues(t *testing.T) {
	cases := map[string]string{
		"SIGNA_TIMEOUT":        "ten",
		"SIGNA_UPLOAD_TIMEOUT": "-1s",
		"SIGNA_RESPONSE_SHAPE": "xml",
		"SESSION_STORE":        "etcd",
		"REDIS_DB":             "one",
		"RATE_LIMIT_RPS":       "0",
		"RPPG_MAX_UPLOAD_MB":   "0",
		"SESSION_KEY":          "not-hex",
		"GATEWAY_SECRET":       "short",
		"GATEWAY_TOKEN_TTL":    "forever",
		"COOKIE_SECURE":        "perhaps",
		"CORS_ORIGINS":         " , ",
	}
	for key, val := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, val)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoad_MySQLRequiresDSN(t *testing.T) {
	t.Setenv("SESSION_STORE", "mysql")
	t.Setenv("DB_DSN", "")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("DB_DSN", "user:pass@tcp(localhost:3306)/signa?parseTime=true")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StoreMySQL, cfg.SessionStore)
}

func TestLoad_GatewaySecret(t *testing.T) {
	t.Setenv("GATEWAY_SECRET", "")
	a, err := Load()
	require.NoError(t, err)
	b, err := Load()
	require.NoError(t, err)
	assert.NotEqual(t, a.TokenSecret, b.TokenSecret)

	secret := "0123456789abcdef0123456789abcdef"
	t.Setenv("GATEWAY_SECRET", secret)
	t.Setenv("HOST", "0.0.0.0")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []byte(secret), cfg.TokenSecret)
	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
}

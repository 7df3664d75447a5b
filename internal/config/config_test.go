package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsAndEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "a-very-long-test-secret")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test ,")
	t.Setenv("ALLOWED_EMAIL_DOMAIN", "@Campus.EDU")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	assert.Equal(t, "campus.edu", cfg.AllowedEmailDomain)
	assert.Equal(t, 30*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, "console", cfg.Mail.Backend)
	assert.False(t, cfg.RedisEnabled())
	assert.False(t, cfg.S3Enabled())
}

func TestLoad_RejectsShortSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "short")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate_SMTPRequiresHost(t *testing.T) {
	cfg := &Config{
		DBUrl:           "postgres://x",
		JWTSecret:       "a-very-long-test-secret",
		AccessTokenTTL:  time.Minute,
		RefreshTokenTTL: time.Hour,
		VerifyTokenTTL:  time.Hour,
		Mail:            MailConfig{Backend: "smtp"},
	}
	assert.Error(t, cfg.Validate())

	cfg.Mail.Host = "smtp.campus.test"
	assert.NoError(t, cfg.Validate())
}

package configs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("GATEWAY_TIMEOUT", "")
	t.Setenv("MIDTRANS_IS_PRODUCTION", "")

	cfg := FromEnv()

	assert.Equal(t, 30*time.Second, cfg.GatewayTimeout)
	assert.Equal(t, 10*time.Second, cfg.WebhookTimeout)
	assert.Equal(t, 2*time.Hour, cfg.JWTTTL)
	assert.False(t, cfg.MidtransProduction)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("GATEWAY_TIMEOUT", "15")
	t.Setenv("JWT_TTL", "45m")
	t.Setenv("ALLOWED_ORIGINS", " https://a.example , ,https://b.example")

	cfg := FromEnv()

	assert.True(t, cfg.IsProduction())
	assert.True(t, cfg.MidtransProduction)
	assert.Equal(t, 15*time.Second, cfg.GatewayTimeout)
	assert.Equal(t, 45*time.Minute, cfg.JWTTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
}

func TestConfig_Validate(t *testing.T) {
	err := Config{}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MIDTRANS_SERVER_KEY")
	assert.Contains(t, err.Error(), "MIDTRANS_CLIENT_KEY")
	assert.Contains(t, err.Error(), "JWT_SECRET")

	ok := Config{MidtransServerKey: "s", MidtransClientKey: "c", JWTSecret: "j"}
	assert.NoError(t, ok.Validate())
}

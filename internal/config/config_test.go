package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("SITE_URL", "https://ratemycafe.example/")
	t.Setenv("ADMIN_EMAIL", "  Admin@Example.com ")
	t.Setenv("GALLERY_RECONCILE_INTERVAL", "")

	cfg := Load()

	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "https://ratemycafe.example", cfg.SiteURL)
	assert.Equal(t, "admin@example.com", cfg.AdminEmail)
	assert.Equal(t, time.Duration(0), cfg.GalleryReconcileInterval)
	assert.Equal(t, "https://ratemycafe.example/auth/google/callback", cfg.OAuthCallbackURL("google"))
}

func TestLoad_ParsesTypedValues(t *testing.T) {
	t.Setenv("IMAGE_WEBP_LOGOS", "true")
	t.Setenv("MAGIC_LINK_TTL", "5m")
	t.Setenv("GALLERY_RECONCILE_INTERVAL", "not-a-duration")

	cfg := Load()

	assert.True(t, cfg.WebPLogos)
	assert.Equal(t, 5*time.Minute, cfg.MagicLinkTTL)
	assert.Equal(t, time.Duration(0), cfg.GalleryReconcileInterval)
}

func TestLoad_AllowedOrigins(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")

	cfg := Load()

	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
}

func TestValidate_ProductionRejectsDefaultSecrets(t *testing.T) {
	strong := strings.Repeat("s", 32)

	t.Setenv("APP_ENV", "prod")
	t.Setenv("SESSION_SECRET", "")
	t.Setenv("JWT_SECRET", strong)
	assert.ErrorIs(t, Load().Validate(), ErrWeakSecret)

	t.Setenv("SESSION_SECRET", strong)
	t.Setenv("JWT_SECRET", "changeme")
	err := Load().Validate()
	assert.ErrorIs(t, err, ErrWeakSecret)
	assert.Contains(t, err.Error(), "JWT_SECRET")

	t.Setenv("JWT_SECRET", "short")
	assert.ErrorIs(t, Load().Validate(), ErrWeakSecret)

	t.Setenv("JWT_SECRET", strings.Repeat("j", 32))
	assert.NoError(t, Load().Validate())
}

func TestValidate_DevelopmentKeepsDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	t.Setenv("SESSION_SECRET", "")
	t.Setenv("JWT_SECRET", "")

	assert.NoError(t, Load().Validate())
}

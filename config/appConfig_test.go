package config

import (
	"allegro_sync/config/values"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	path := writeConfig(t, `
margin:
  own-margin-percent: 10
offer:
  tractor-category-id: 4029
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "https://api.allegro.pl", cfg.Allegro.ApiURL)
	assert.Equal(t, 60*time.Second, cfg.Allegro.Timeout)
	assert.Equal(t, 10.0, cfg.Margin.OwnMarginPercent)
	assert.Equal(t, 4029, cfg.Offer.TractorCategoryID)
	assert.Equal(t, "PLN", cfg.Offer.Currency)
	assert.Equal(t, values.LayoutHeader, cfg.Offer.DescriptionLayout)
	assert.Equal(t, ":9100", cfg.Metrics.Address)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
allegro:
  token: from-file
  timeout: 5s
postgres:
  host: db.internal
  dbname: allegro
`)
	t.Setenv("ALLEGRO_TOKEN", "from-env")
	t.Setenv("POSTGRES_HOST", "")
	t.Setenv("POSTGRES_PORT", "6432")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Allegro.Token)
	assert.Equal(t, 5*time.Second, cfg.Allegro.Timeout)
	assert.Equal(t, "db.internal", cfg.Postgres.Host)
	assert.Equal(t, "6432", cfg.Postgres.Port)
	assert.Equal(t, "postgres", cfg.Postgres.User)
	assert.Equal(t,
		"host=db.internal port=6432 user=postgres password=postgres dbname=allegro sslmode=disable",
		cfg.Postgres.GetConnectionString())
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := map[string]string{
		"negative margin":  "margin:\n  add-to-bulky: -1\n",
		"bad layout":       "offer:\n  description-layout: grid\n",
		"too many workers": "allegro:\n  worker_count: 100\n",
		"bad currency":     "offer:\n  currency: ZLOTY\n",
		"zero rate limit":  "allegro:\n  rate_limit: 0\n",
		"malformed yaml":   "allegro: [",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, content))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestExampleConfigIsValid(t *testing.T) {
	cfg, err := LoadConfig("config.example.yaml")
	require.NoError(t, err)
	assert.Equal(t, "Gabaryt", cfg.Offer.Delivery.BulkyShippingRatesName)
	assert.Equal(t, 120.0, cfg.Margin.AddToBulky)
}

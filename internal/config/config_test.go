package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Behyna/paygate/pkg/checkout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
api:
  port: ":9090"
database:
  host: "db"
  name: "payments"
payme:
  key: "file-key"
  price: 4900000
checkout:
  merchant_id: "m1"
  test_mode: false
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte(body), 0o600))
	return dir
}

func TestLoadFrom(t *testing.T) {
	t.Run("File values over defaults", func(t *testing.T) {
		cfg, err := LoadFrom(writeConfig(t, sample))
		require.NoError(t, err)

		assert.Equal(t, ":9090", cfg.API.Port)
		assert.Equal(t, "db", cfg.Database.Host)
		assert.Equal(t, "3306", cfg.Database.Port)
		assert.Equal(t, "Paycom", cfg.Payme.Login)
		assert.Equal(t, 3*time.Second, cfg.Payme.Timeout)
		assert.Equal(t, 12*time.Hour, cfg.Payme.TransactionTimeout)
		assert.Equal(t, int64(4900000), cfg.Payme.Price)
		assert.Equal(t, checkout.DefaultProductionURL, cfg.Checkout.BaseURL())
	})

	t.Run("Environment overrides the file", func(t *testing.T) {
		t.Setenv("PAYGATE_PAYME_KEY", "env-key")
		t.Setenv("PAYGATE_PAYME_TIMEOUT", "5s")

		cfg, err := LoadFrom(writeConfig(t, sample))
		require.NoError(t, err)

		assert.Equal(t, "env-key", cfg.Payme.Key)
		assert.Equal(t, 5*time.Second, cfg.Payme.Timeout)
	})

	t.Run("Missing file falls back to defaults and fails validation without a price", func(t *testing.T) {
		_, err := LoadFrom(t.TempDir())
		assert.ErrorContains(t, err, "invalid config")
	})

	t.Run("Malformed file", func(t *testing.T) {
		_, err := LoadFrom(writeConfig(t, "api: [unterminated"))
		assert.ErrorContains(t, err, "failed to load config")
	})
}

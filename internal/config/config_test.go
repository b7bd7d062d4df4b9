package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "4000", cfg.Server.Port)
	assert.Equal(t, []string{"localhost:3000"}, cfg.Server.AllowedHosts)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 0.70, cfg.Funding.MinWalletPercent)
	assert.Equal(t, 50000.0, cfg.Funding.WaiverRequestFee)
	assert.Equal(t, "NGN", cfg.Currency.Code)
	assert.Equal(t, "merchant.toasts", cfg.Notifications.Topic)
	assert.Equal(t, 50, cfg.Notifications.HistoryLimit)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadFromFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := `
server:
  port: "8080"
funding:
  minwalletpercent: 0.5
currency:
  code: USD
pools:
  adminfile: /data/admin.csv
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))
	t.Setenv("FUNDING_WAIVERREQUESTFEE", "25000")
	t.Setenv("LOGLEVEL", "debug")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 0.5, cfg.Funding.MinWalletPercent)
	assert.Equal(t, 25000.0, cfg.Funding.WaiverRequestFee)
	assert.Equal(t, "USD", cfg.Currency.Code)
	assert.Equal(t, "/data/admin.csv", cfg.Pools.AdminFile)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadRejectsInvalidFunding(t *testing.T) {
	t.Setenv("FUNDING_MINWALLETPERCENT", "1.5")

	_, err := Load(t.TempDir())
	assert.ErrorContains(t, err, "MinWalletPercent")
}

func TestValidate(t *testing.T) {
	cfg := &Config{Server: ServerConfig{Port: "4000"}, Funding: FundingConfig{MinWalletPercent: 0.7}}
	assert.NoError(t, cfg.Validate())

	cfg.Funding.WaiverRequestFee = -1
	assert.ErrorContains(t, cfg.Validate(), "WaiverRequestFee")

	cfg.Funding.WaiverRequestFee = 0
	cfg.Server.Port = ""
	assert.ErrorContains(t, cfg.Validate(), "Server.Port")
}

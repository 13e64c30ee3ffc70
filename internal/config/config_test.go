package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()

	keys := []string{
		"APP_PORT", "LOG_LEVEL",
		"MONGODB_URI", "MONGODB_DB_NAME", "MONGODB_COLLECTION",
		"FETCH_LIMIT", "LOW_STOCK_THRESHOLD", "LOW_STOCK_LIMIT", "TOP_PRODUCTS", "PRICE_BINS",
		"EXPORT_DIR", "EXPORT_FILENAME", "EXPORT_BOM",
		"SNAPSHOT_CRON_SCHEDULE", "TIMEZONE", "ALERT_WEBHOOK_URL",
		"GOOGLE_SHEETS_CREDENTIALS_PATH", "GOOGLE_SHEETS_SPREADSHEET_ID", "GOOGLE_SHEETS_SNAPSHOT_RANGE",
	}
	for _, key := range keys {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoDB.URI)
	assert.Equal(t, "inventory_db", cfg.MongoDB.DBName)
	assert.Equal(t, "products", cfg.MongoDB.Collection)
	assert.Equal(t, int64(2000), cfg.Inventory.FetchLimit)
	assert.Equal(t, 30, cfg.Inventory.LowStockThreshold)
	assert.Equal(t, filepath.Join("exports", "inventory_export.csv"), cfg.Export.Path())
	assert.True(t, cfg.Export.IncludeBOM)
	assert.Equal(t, "UTC", cfg.Snapshot.Timezone)
	assert.Empty(t, cfg.Snapshot.CronSchedule)
	assert.False(t, cfg.Sheets.Enabled())
}

func TestLoad_EnvironmentWins(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_PORT", "9090")
	t.Setenv("FETCH_LIMIT", "500")
	t.Setenv("EXPORT_BOM", "false")
	t.Setenv("MONGODB_COLLECTION", "stock_items")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, int64(500), cfg.Inventory.FetchLimit)
	assert.False(t, cfg.Export.IncludeBOM)
	assert.Equal(t, "stock_items", cfg.MongoDB.Collection)
}

func TestLoad_MalformedNumbersFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("FETCH_LIMIT", "plenty")
	t.Setenv("EXPORT_BOM", "yep")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, int64(2000), cfg.Inventory.FetchLimit)
	assert.True(t, cfg.Export.IncludeBOM)
}

func TestValidate_RejectsNonPositiveKnobs(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	require.NoError(t, err)

	cfg.Inventory.PriceBins = 0
	assert.ErrorContains(t, cfg.Validate(), "PRICE_BINS")

	cfg.Inventory.PriceBins = 10
	cfg.Inventory.FetchLimit = -1
	assert.ErrorContains(t, cfg.Validate(), "FETCH_LIMIT")
}

func TestValidate_SheetsValuesRequiredTogether(t *testing.T) {
	clearEnv(t)
	t.Setenv("GOOGLE_SHEETS_SPREADSHEET_ID", "sheet-id")

	_, err := Load("")
	assert.ErrorContains(t, err, "GOOGLE_SHEETS_CREDENTIALS_PATH")
}

func TestSheetsEnabled_NeedsCredentialsAndSpreadsheet(t *testing.T) {
	assert.False(t, SheetsConfig{SnapshotRange: "Snapshots!A:D"}.Enabled())
	assert.True(t, SheetsConfig{
		CredentialsPath: "creds.json",
		SpreadsheetID:   "sheet-id",
		SnapshotRange:   "Snapshots!A:D",
	}.Enabled())
}

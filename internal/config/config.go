package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server    ServerConfig
	MongoDB   MongoDBConfig
	Inventory InventoryConfig
	Export    ExportConfig
	Snapshot  SnapshotConfig
	Alert     AlertConfig
	Sheets    SheetsConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port     string
	LogLevel string
}

// MongoDBConfig holds settings for the MongoDB document store.
type MongoDBConfig struct {
	URI        string
	DBName     string
	Collection string
}

// InventoryConfig carries the fetch bound and the default aggregation knobs.
// Each knob can still be overridden per request through query parameters.
type InventoryConfig struct {
	FetchLimit        int64
	LowStockThreshold int
	LowStockLimit     int
	TopProducts       int
	PriceBins         int
}

// ExportConfig describes the server-side CSV export target and the default
// byte-order-marker behavior for downloads.
type ExportConfig struct {
	Dir        string
	Filename   string
	IncludeBOM bool
}

// Path returns the full server-side export destination.
func (e ExportConfig) Path() string {
	return filepath.Join(e.Dir, e.Filename)
}

// SnapshotConfig holds the optional scheduled-snapshot settings. An empty
// CronSchedule disables the scheduler entirely.
type SnapshotConfig struct {
	CronSchedule string
	Timezone     string
}

// AlertConfig holds the optional low-stock webhook target. Empty URL disables
// alerting.
type AlertConfig struct {
	WebhookURL string
}

// SheetsConfig holds the optional Google Sheets snapshot mirror settings.
// All three values must be provided together; leaving them empty disables
// the mirror.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
	SnapshotRange   string
}

// Enabled reports whether the sheets mirror is configured. The snapshot range
// always has a default, so only the credential and spreadsheet values count.
func (s SheetsConfig) Enabled() bool {
	return s.CredentialsPath != "" && s.SpreadsheetID != ""
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:     getenvWithDefault("APP_PORT", "8080"),
			LogLevel: getenvWithDefault("LOG_LEVEL", "info"),
		},
		MongoDB: MongoDBConfig{
			URI:        getenvWithDefault("MONGODB_URI", "mongodb://localhost:27017"),
			DBName:     getenvWithDefault("MONGODB_DB_NAME", "inventory_db"),
			Collection: getenvWithDefault("MONGODB_COLLECTION", "products"),
		},
		Inventory: InventoryConfig{
			FetchLimit:        int64(getenvIntWithDefault("FETCH_LIMIT", 2000)),
			LowStockThreshold: getenvIntWithDefault("LOW_STOCK_THRESHOLD", 30),
			LowStockLimit:     getenvIntWithDefault("LOW_STOCK_LIMIT", 20),
			TopProducts:       getenvIntWithDefault("TOP_PRODUCTS", 10),
			PriceBins:         getenvIntWithDefault("PRICE_BINS", 10),
		},
		Export: ExportConfig{
			Dir:        getenvWithDefault("EXPORT_DIR", "exports"),
			Filename:   getenvWithDefault("EXPORT_FILENAME", "inventory_export.csv"),
			IncludeBOM: getenvBoolWithDefault("EXPORT_BOM", true),
		},
		Snapshot: SnapshotConfig{
			CronSchedule: os.Getenv("SNAPSHOT_CRON_SCHEDULE"),
			Timezone:     getenvWithDefault("TIMEZONE", "UTC"),
		},
		Alert: AlertConfig{
			WebhookURL: os.Getenv("ALERT_WEBHOOK_URL"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEETS_SPREADSHEET_ID"),
			SnapshotRange:   getenvWithDefault("GOOGLE_SHEETS_SNAPSHOT_RANGE", "Snapshots!A:D"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated and the
// numeric knobs make sense.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	switch {
	case c.MongoDB.URI == "":
		return errors.New("MONGODB_URI must be provided")
	case c.MongoDB.DBName == "":
		return errors.New("MONGODB_DB_NAME must be provided")
	case c.MongoDB.Collection == "":
		return errors.New("MONGODB_COLLECTION must be provided")
	}

	if c.Inventory.FetchLimit <= 0 {
		return errors.New("FETCH_LIMIT must be positive")
	}
	if c.Inventory.LowStockThreshold < 0 {
		return errors.New("LOW_STOCK_THRESHOLD must not be negative")
	}
	if c.Inventory.LowStockLimit <= 0 {
		return errors.New("LOW_STOCK_LIMIT must be positive")
	}
	if c.Inventory.TopProducts <= 0 {
		return errors.New("TOP_PRODUCTS must be positive")
	}
	if c.Inventory.PriceBins <= 0 {
		return errors.New("PRICE_BINS must be positive")
	}

	if c.Export.Dir == "" {
		return errors.New("EXPORT_DIR must not be empty")
	}
	if c.Export.Filename == "" {
		return errors.New("EXPORT_FILENAME must not be empty")
	}

	if c.Snapshot.CronSchedule != "" && c.Snapshot.Timezone == "" {
		return errors.New("TIMEZONE must be provided when SNAPSHOT_CRON_SCHEDULE is set")
	}

	// The sheets mirror only works with both a credential file and a target
	// spreadsheet; a lone value is a misconfiguration rather than "disabled".
	if c.Sheets.CredentialsPath != "" || c.Sheets.SpreadsheetID != "" {
		if c.Sheets.CredentialsPath == "" {
			return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH must be provided when the sheets mirror is enabled")
		}
		if c.Sheets.SpreadsheetID == "" {
			return errors.New("GOOGLE_SHEETS_SPREADSHEET_ID must be provided when the sheets mirror is enabled")
		}
		if c.Sheets.SnapshotRange == "" {
			return errors.New("GOOGLE_SHEETS_SNAPSHOT_RANGE must not be empty when the sheets mirror is enabled")
		}
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvIntWithDefault(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getenvBoolWithDefault(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

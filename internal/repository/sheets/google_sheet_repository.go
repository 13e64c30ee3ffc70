package sheets

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/mamadbah2/stockdesk/internal/config"
	"github.com/mamadbah2/stockdesk/internal/domain/models"
)

// Mirror defines the snapshot persistence operations supported by the Google
// Sheets adapter.
type Mirror interface {
	AppendSnapshot(ctx context.Context, takenAt time.Time, sum models.Summary) error
}

// GoogleSheetMirror implements the Mirror interface using the official Google
// Sheets API.
type GoogleSheetMirror struct {
	service       *sheetsapi.Service
	spreadsheetID string
	appendRange   string
	logger        *zap.Logger
}

// NewGoogleSheetMirror builds a Google Sheets backed mirror instance.
func NewGoogleSheetMirror(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (Mirror, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &GoogleSheetMirror{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		appendRange:   cfg.SnapshotRange,
		logger:        logger,
	}, nil
}

// AppendSnapshot appends one summary line to the configured range: snapshot
// time, product count, total quantity, total value.
func (m *GoogleSheetMirror) AppendSnapshot(ctx context.Context, takenAt time.Time, sum models.Summary) error {
	if m.appendRange == "" {
		return fmt.Errorf("snapshot range must not be empty")
	}

	payload := &sheetsapi.ValueRange{Values: [][]interface{}{{
		takenAt.UTC().Format("2006-01-02 15:04:05"),
		sum.Products,
		sum.TotalQuantity,
		sum.TotalValue,
	}}}

	call := m.service.Spreadsheets.Values.Append(m.spreadsheetID, m.appendRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append snapshot into range %s: %w", m.appendRange, err)
	}

	m.logger.Debug("snapshot appended to sheet", zap.String("range", m.appendRange))
	return nil
}

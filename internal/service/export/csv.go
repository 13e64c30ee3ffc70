package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"

	"github.com/mamadbah2/stockdesk/internal/domain/models"
)

// Columns is the fixed CSV column order every export uses.
var Columns = []string{
	models.FieldSKU,
	models.FieldName,
	models.FieldCategory,
	models.FieldQuantity,
	models.FieldPrice,
	"value",
	models.FieldSupplier,
	models.FieldLastRestock,
	"days_since_restock",
	models.FieldID,
}

// utf8BOM is the byte-order marker spreadsheet tools use to detect UTF-8.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Service serializes enriched inventory rows into delimited text, either as a
// byte slice for downloads or as a file on the server.
type Service struct {
	logger *zap.Logger
}

// NewService wires a new exporter instance.
func NewService(logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{logger: logger}
}

// Bytes renders rows as CSV with the fixed column order, optionally prefixed
// with a UTF-8 byte-order marker. Empty input yields an empty byte slice, not
// a lone header row; the BOM flag is ignored in that case.
func (s *Service) Bytes(rows []models.Row, includeBOM bool) ([]byte, error) {
	if len(rows) == 0 {
		return []byte{}, nil
	}

	var buf bytes.Buffer
	if includeBOM {
		buf.Write(utf8BOM)
	}

	w := csv.NewWriter(&buf)
	if err := w.Write(Columns); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range rows {
		if err := w.Write(record(row)); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}

	return buf.Bytes(), nil
}

// WriteFile renders the same bytes and writes them to path, creating parent
// directories as needed and overwriting any existing file. It reports whether
// the file exists afterwards. Write failures are surfaced, never retried.
func (s *Service) WriteFile(rows []models.Row, path string, includeBOM bool) (bool, error) {
	data, err := s.Bytes(rows, includeBOM)
	if err != nil {
		return false, err
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return false, fmt.Errorf("create export directory %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return false, fmt.Errorf("write export file %s: %w", path, err)
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("stat export file %s: %w", path, err)
	}

	s.logger.Debug("export written", zap.String("path", path), zap.Int("rows", len(rows)))
	return true, nil
}

// record renders one row in the fixed column order. Numbers use plain
// locale-independent decimal text; an unknown restock date is an empty cell.
func record(row models.Row) []string {
	lastRestock := ""
	if !row.LastRestock.IsZero() {
		lastRestock = row.LastRestock.Format("2006-01-02")
	}

	return []string{
		row.SKU,
		row.Name,
		row.Category,
		strconv.Itoa(row.Quantity),
		strconv.FormatFloat(row.Price, 'f', -1, 64),
		strconv.FormatFloat(row.Value, 'f', -1, 64),
		row.Supplier,
		lastRestock,
		strconv.Itoa(row.DaysSinceRestock),
		row.ID,
	}
}

package handlers

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/stockdesk/internal/config"
	"github.com/mamadbah2/stockdesk/internal/domain/models"
	"github.com/mamadbah2/stockdesk/internal/service/export"
)

func newExportRouter(svc *mockManager, cfg config.ExportConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewExportHandler(svc, export.NewService(nil), cfg, nil)

	r := gin.New()
	r.GET("/api/export.csv", h.Download)
	r.POST("/api/export/server", h.SaveToServer)
	return r
}

func exportCfg(dir string) config.ExportConfig {
	return config.ExportConfig{Dir: dir, Filename: "inventory_export.csv", IncludeBOM: true}
}

func TestDownload_ServesCSVAttachment(t *testing.T) {
	svc := new(mockManager)
	svc.On("List", mock.Anything, "cable").Return([]models.Row{
		{ID: "a1", SKU: "SKU1", Name: "Cable", Quantity: 2, Price: 3, Value: 6, DaysSinceRestock: models.UnknownDays},
	}, nil)

	rec := doRequest(t, newExportRouter(svc, exportCfg(t.TempDir())), http.MethodGet, "/api/export.csv?search=cable", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="inventory_export.csv"`, rec.Header().Get("Content-Disposition"))

	body := rec.Body.Bytes()
	require.True(t, len(body) > 3)
	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, body[:3])
	assert.Contains(t, rec.Body.String(), "Cable")
}

func TestDownload_BOMQueryOverridesDefault(t *testing.T) {
	svc := new(mockManager)
	svc.On("List", mock.Anything, "").Return([]models.Row{
		{ID: "a1", SKU: "SKU1", Name: "Cable", Quantity: 2, Price: 3, Value: 6},
	}, nil)

	rec := doRequest(t, newExportRouter(svc, exportCfg(t.TempDir())), http.MethodGet, "/api/export.csv?bom=false", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEqual(t, []byte{0xEF, 0xBB, 0xBF}, rec.Body.Bytes()[:3])
}

func TestDownload_RejectsNonBooleanBOM(t *testing.T) {
	svc := new(mockManager)

	rec := doRequest(t, newExportRouter(svc, exportCfg(t.TempDir())), http.MethodGet, "/api/export.csv?bom=maybe", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestDownload_EmptyViewIsEmptyBody(t *testing.T) {
	svc := new(mockManager)
	svc.On("List", mock.Anything, "").Return([]models.Row{}, nil)

	rec := doRequest(t, newExportRouter(svc, exportCfg(t.TempDir())), http.MethodGet, "/api/export.csv", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, rec.Body.Len())
}

func TestSaveToServer_WritesFullSnapshot(t *testing.T) {
	dir := t.TempDir()
	svc := new(mockManager)
	svc.On("Snapshot", mock.Anything).Return([]models.Row{
		{ID: "a1", SKU: "SKU1", Name: "Cable", Quantity: 2, Price: 3, Value: 6},
	}, nil)

	rec := doRequest(t, newExportRouter(svc, exportCfg(dir)), http.MethodPost, "/api/export/server", "")

	require.Equal(t, http.StatusOK, rec.Code)
	payload := decodeBody(t, rec)
	assert.Equal(t, filepath.Join(dir, "inventory_export.csv"), payload["path"])
	assert.Equal(t, float64(1), payload["rows"])
	assert.Equal(t, true, payload["saved"])

	data, err := os.ReadFile(filepath.Join(dir, "inventory_export.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Cable")
}

func TestSaveToServer_OverwritesPreviousExport(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "inventory_export.csv")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

	svc := new(mockManager)
	svc.On("Snapshot", mock.Anything).Return([]models.Row{}, nil)

	rec := doRequest(t, newExportRouter(svc, exportCfg(dir)), http.MethodPost, "/api/export/server", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decodeBody(t, rec)["saved"])

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, data, "an empty snapshot replaces the stale export with an empty file")
}

func TestSaveToServer_StoreFailureIsBadGateway(t *testing.T) {
	svc := new(mockManager)
	svc.On("Snapshot", mock.Anything).Return(nil, errors.New("server selection timeout"))

	rec := doRequest(t, newExportRouter(svc, exportCfg(t.TempDir())), http.MethodPost, "/api/export/server", "")

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

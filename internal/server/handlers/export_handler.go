package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockdesk/internal/config"
	"github.com/mamadbah2/stockdesk/internal/service/export"
	"github.com/mamadbah2/stockdesk/internal/service/inventory"
)

// ExportHandler serves CSV downloads and server-side snapshot writes.
type ExportHandler struct {
	svc      inventory.Manager
	exporter *export.Service
	cfg      config.ExportConfig
	logger   *zap.Logger
}

// NewExportHandler constructs the HTTP handler adapter.
func NewExportHandler(svc inventory.Manager, exporter *export.Service, cfg config.ExportConfig, logger *zap.Logger) *ExportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportHandler{svc: svc, exporter: exporter, cfg: cfg, logger: logger}
}

// Download streams the filtered view as a CSV attachment. ?bom= overrides the
// configured byte-order-marker default.
func (h *ExportHandler) Download(c *gin.Context) {
	includeBOM := h.cfg.IncludeBOM
	if raw := c.Query("bom"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bom must be a boolean"})
			return
		}
		includeBOM = parsed
	}

	rows, err := h.svc.List(c.Request.Context(), c.Query("search"))
	if err != nil {
		h.logger.Error("failed fetching rows for export", zap.Error(err))
		c.JSON(statusFor(err), gin.H{"error": "unable to fetch inventory"})
		return
	}

	data, err := h.exporter.Bytes(rows, includeBOM)
	if err != nil {
		h.logger.Error("failed encoding export", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to encode export"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", h.cfg.Filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

// SaveToServer writes a full, unfiltered snapshot to the configured
// server-side path and reports whether the file is in place afterwards.
func (h *ExportHandler) SaveToServer(c *gin.Context) {
	rows, err := h.svc.Snapshot(c.Request.Context())
	if err != nil {
		h.logger.Error("failed fetching rows for server export", zap.Error(err))
		c.JSON(statusFor(err), gin.H{"error": "unable to fetch inventory"})
		return
	}

	saved, err := h.exporter.WriteFile(rows, h.cfg.Path(), h.cfg.IncludeBOM)
	if err != nil {
		h.logger.Error("failed writing server export", zap.String("path", h.cfg.Path()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to write export file"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"path":  h.cfg.Path(),
		"rows":  len(rows),
		"saved": saved,
	})
}

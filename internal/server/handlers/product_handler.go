package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockdesk/internal/domain/models"
	"github.com/mamadbah2/stockdesk/internal/service/inventory"
)

// ProductHandler handles the inventory CRUD endpoints.
type ProductHandler struct {
	svc    inventory.Manager
	logger *zap.Logger
}

// NewProductHandler constructs the HTTP handler adapter.
func NewProductHandler(svc inventory.Manager, logger *zap.Logger) *ProductHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductHandler{svc: svc, logger: logger}
}

// List returns the filtered, enriched inventory view.
func (h *ProductHandler) List(c *gin.Context) {
	rows, err := h.svc.List(c.Request.Context(), c.Query("search"))
	if err != nil {
		h.logger.Error("failed listing products", zap.Error(err))
		c.JSON(statusFor(err), gin.H{"error": "unable to fetch inventory"})
		return
	}

	if rows == nil {
		rows = []models.Row{}
	}
	c.JSON(http.StatusOK, gin.H{"count": len(rows), "products": rows})
}

// Get returns a single stored document exactly as the collection holds it.
func (h *ProductHandler) Get(c *gin.Context) {
	doc, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		status := statusFor(err)
		if clientFault(status) {
			h.logger.Warn("product lookup rejected", zap.String("id", c.Param("id")), zap.Error(err))
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("failed fetching product", zap.Error(err))
		c.JSON(status, gin.H{"error": "unable to fetch product"})
		return
	}

	c.JSON(http.StatusOK, doc)
}

// Create validates and inserts a new product.
func (h *ProductHandler) Create(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		h.logger.Warn("invalid product payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	id, err := h.svc.Add(c.Request.Context(), product)
	if err != nil {
		status := statusFor(err)
		if clientFault(status) {
			h.logger.Warn("product rejected", zap.Error(err))
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("failed adding product", zap.Error(err))
		c.JSON(status, gin.H{"error": "unable to add product"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// Update applies a single-field update to an existing product.
func (h *ProductHandler) Update(c *gin.Context) {
	var req models.UpdateFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid update payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	res, err := h.svc.UpdateField(c.Request.Context(), c.Param("id"), req.Field, req.Value)
	if err != nil {
		status := statusFor(err)
		if clientFault(status) {
			h.logger.Warn("update rejected", zap.String("field", req.Field), zap.Error(err))
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("failed updating product", zap.Error(err))
		c.JSON(status, gin.H{"error": "unable to update product"})
		return
	}

	c.JSON(http.StatusOK, res)
}

// Delete removes a product by id and reports how many documents went away.
func (h *ProductHandler) Delete(c *gin.Context) {
	deleted, err := h.svc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		status := statusFor(err)
		if clientFault(status) {
			h.logger.Warn("delete rejected", zap.String("id", c.Param("id")), zap.Error(err))
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("failed deleting product", zap.Error(err))
		c.JSON(status, gin.H{"error": "unable to delete product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

// Seed bulk-inserts the sample catalog. A populated collection skips the run
// unless ?force=true is set.
func (h *ProductHandler) Seed(c *gin.Context) {
	force := c.Query("force") == "true"

	res, err := h.svc.Seed(c.Request.Context(), force)
	if err != nil {
		h.logger.Error("failed seeding collection", zap.Error(err))
		c.JSON(statusFor(err), gin.H{"error": "unable to seed collection"})
		return
	}

	if res.Skipped {
		c.JSON(http.StatusConflict, gin.H{
			"error":    "collection already holds documents; pass force=true to seed anyway",
			"existing": res.Existing,
		})
		return
	}

	c.JSON(http.StatusCreated, res)
}

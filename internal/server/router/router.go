package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockdesk/internal/server/handlers"
)

const requestIDHeader = "X-Request-ID"

// New wires the Gin engine with required routes and middlewares.
func New(products *handlers.ProductHandler, stats *handlers.StatsHandler, exports *handlers.ExportHandler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestIDMiddleware())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.GET("/products", products.List)
		api.POST("/products", products.Create)
		api.GET("/products/:id", products.Get)
		api.PATCH("/products/:id", products.Update)
		api.DELETE("/products/:id", products.Delete)

		api.POST("/seed", products.Seed)

		api.GET("/export.csv", exports.Download)
		api.POST("/export/server", exports.SaveToServer)

		api.GET("/stats/summary", stats.Summary)
		api.GET("/stats/categories", stats.Categories)
		api.GET("/stats/top-products", stats.TopProducts)
		api.GET("/stats/low-stock", stats.LowStock)
		api.GET("/stats/price-histogram", stats.PriceHistogram)
		api.GET("/stats/restock-timeline", stats.RestockTimeline)
	}

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

// requestIDMiddleware tags every request with an id, honoring one supplied by
// the caller.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Writer.Header().Set(requestIDHeader, id)
		c.Next()
	}
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.String("request_id", c.GetString("request_id")))
	}
}

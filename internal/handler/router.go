package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"restock-sentinel/internal/handler/api"
	"restock-sentinel/internal/handler/middleware"
	"restock-sentinel/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	logger *slog.Logger,
	purchaseHandler *api.PurchaseHandler,
	transactionHandler *api.TransactionHandler,
	dispatchHandler *api.DispatchHandler,
) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, purchaseHandler, transactionHandler, dispatchHandler)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *slog.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(logger))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	purchaseHandler *api.PurchaseHandler,
	transactionHandler *api.TransactionHandler,
	dispatchHandler *api.DispatchHandler,
) {
	engine.GET("/health", healthCheck)

	apiGroup := engine.Group("/api")
	{
		addRoutes(apiGroup, []route{
			{Method: http.MethodPost, Path: "/purchase-jobs", Handler: purchaseHandler.Stage},
			{Method: http.MethodGet, Path: "/transactions/recent", Handler: transactionHandler.Recent},
			{Method: http.MethodGet, Path: "/dispatch/stats", Handler: dispatchHandler.Stats},
		})
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, r.Handler)
		case http.MethodPost:
			g.POST(r.Path, r.Handler)
		case http.MethodPut:
			g.PUT(r.Path, r.Handler)
		case http.MethodPatch:
			g.PATCH(r.Path, r.Handler)
		case http.MethodDelete:
			g.DELETE(r.Path, r.Handler)
		default:
			g.Any(r.Path, r.Handler)
		}
	}
}

package app

import (
	"time"

	"github.com/clippy-app/core/internal/modules/capture"
	"github.com/clippy-app/core/internal/modules/emails"
	"github.com/clippy-app/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

var processStart = time.Now()

func (a *App) registerRoutes() {
	r := a.router

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	api := r.Group("/api/v2")

	api.GET("/health", func(c *gin.Context) {
		response.OK(c, gin.H{
			"status": "ok",
			"uptime": time.Since(processStart).Truncate(time.Second).String(),
		})
	})

	store := emails.NewMongoStore(a.db)

	gateway := capture.NewGateway(a.cfg.Subscribe.Endpoint, a.cfg.GatewayTimeout())
	workflow := capture.NewWorkflow(gateway, store, a.logger)
	capture.NewHandler(workflow).RegisterRoutes(api)

	emails.NewHandler(emails.NewService(store)).RegisterRoutes(api)
}

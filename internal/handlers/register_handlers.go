package handlers

import (
	"github.com/gin-gonic/gin"
	portssvc "github.com/hawwa-platform/ledgercore/internal/core/ports/services"
	"github.com/hawwa-platform/ledgercore/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1")

	registerAccountRoutes(v1, services.Catalog)
	registerJournalRoutes(v1, services.Journal)
	registerRateRoutes(v1, services.Rates)
	registerReportRoutes(v1, cfg, services.Reporting)
	registerAdminRoutes(v1, services.Balance)
	registerEventRoutes(v1, services.Posting)
}

// actorID identifies the caller for audit fields. The platform gateway in
// front of this service sets the header; "system" covers internal callers.
func actorID(c *gin.Context) string {
	if id := c.GetHeader("X-Actor-ID"); id != "" {
		return id
	}
	return "system"
}

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hawwa-platform/ledgercore/internal/apperrors"
	portssvc "github.com/hawwa-platform/ledgercore/internal/core/ports/services"
	"github.com/hawwa-platform/ledgercore/internal/dto"
	"github.com/hawwa-platform/ledgercore/internal/middleware"
)

// adminHandler exposes maintenance operations.
type adminHandler struct {
	balanceService portssvc.BalanceSvcFacade
}

func newAdminHandler(bs portssvc.BalanceSvcFacade) *adminHandler {
	return &adminHandler{balanceService: bs}
}

// registerAdminRoutes registers maintenance routes.
func registerAdminRoutes(rg *gin.RouterGroup, balanceService portssvc.BalanceSvcFacade) {
	h := newAdminHandler(balanceService)

	admin := rg.Group("/admin")
	{
		admin.POST("/rebuild-balances", h.rebuildBalances)
	}
}

// rebuildBalances recomputes materialized balances from journal history.
func (h *adminHandler) rebuildBalances(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RebuildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	report, err := h.balanceService.Rebuild(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Balance rebuild failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to rebuild balances"})
		return
	}
	c.JSON(http.StatusOK, report)
}

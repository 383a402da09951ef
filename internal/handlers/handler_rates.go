package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hawwa-platform/ledgercore/internal/apperrors"
	portssvc "github.com/hawwa-platform/ledgercore/internal/core/ports/services"
	"github.com/hawwa-platform/ledgercore/internal/dto"
	"github.com/hawwa-platform/ledgercore/internal/middleware"
	"github.com/shopspring/decimal"
)

// rateHandler handles HTTP requests for currency rates and conversion.
type rateHandler struct {
	ratesService portssvc.RatesSvcFacade
}

func newRateHandler(rs portssvc.RatesSvcFacade) *rateHandler {
	return &rateHandler{ratesService: rs}
}

// registerRateRoutes registers routes related to currency rates.
func registerRateRoutes(rg *gin.RouterGroup, ratesService portssvc.RatesSvcFacade) {
	h := newRateHandler(ratesService)

	rates := rg.Group("/rates")
	{
		rates.POST("", h.createRate)
		rates.GET("", h.listRates)
		rates.GET("/convert", h.convert)
		rates.POST("/import", h.importRates)
	}
}

func (h *rateHandler) createRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createRate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	rate, err := h.ratesService.CreateRate(c.Request.Context(), req, actorID(c))
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to create rate", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create rate"})
		return
	}

	logger.Info("Currency rate created",
		slog.String("from", rate.FromCurrency),
		slog.String("to", rate.ToCurrency),
		slog.String("rate", rate.Rate.String()),
	)
	c.JSON(http.StatusCreated, rate)
}

func (h *rateHandler) listRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var from, to *string
	if v := c.Query("from"); v != "" {
		from = &v
	}
	if v := c.Query("to"); v != "" {
		to = &v
	}

	rates, err := h.ratesService.ListRates(c.Request.Context(), from, to)
	if err != nil {
		logger.Error("Failed to list rates", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list rates"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"rates": rates})
}

func (h *rateHandler) convert(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	from := c.Query("from")
	to := c.Query("to")
	if from == "" || to == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from and to currencies are required"})
		return
	}

	amount, err := decimal.NewFromString(c.DefaultQuery("amount", "1"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount"})
		return
	}

	dateStr := c.DefaultQuery("date", time.Now().Format("2006-01-02"))
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return
	}

	rate, source, err := h.ratesService.GetRate(c.Request.Context(), from, to, date)
	if err != nil {
		logger.Error("Failed to get rate", slog.String("from", from), slog.String("to", to), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to convert amount"})
		return
	}

	c.JSON(http.StatusOK, dto.ConversionResponse{
		Amount:       amount,
		FromCurrency: from,
		ToCurrency:   to,
		Rate:         rate,
		Converted:    amount.Mul(rate),
		RateSource:   string(source),
	})
}

// importRates bulk-loads rates from a CSV request body. The import defaults
// to a dry-run preview; pass commit=true to persist.
func (h *rateHandler) importRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	commit := c.Query("commit") == "true"

	summary, err := h.ratesService.ImportRatesCSV(c.Request.Context(), c.Request.Body, commit, actorID(c))
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to import rates", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to import rates"})
		return
	}

	logger.Info("Rate import finished",
		slog.Bool("dry_run", summary.DryRun),
		slog.Int("imported", summary.Imported),
		slog.Int("skipped", summary.Skipped),
	)
	c.JSON(http.StatusOK, summary)
}

package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hawwa-platform/ledgercore/internal/apperrors"
	"github.com/hawwa-platform/ledgercore/internal/core/domain"
	portssvc "github.com/hawwa-platform/ledgercore/internal/core/ports/services"
	"github.com/hawwa-platform/ledgercore/internal/dto"
	"github.com/hawwa-platform/ledgercore/internal/middleware"
	"github.com/hawwa-platform/ledgercore/internal/platform/config"
)

// reportingHandler handles HTTP requests for financial reports.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
	baseCurrency     string
}

func newReportingHandler(rs portssvc.ReportingSvcFacade, baseCurrency string) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
		baseCurrency:     baseCurrency,
	}
}

// registerReportRoutes registers routes related to financial reports.
func registerReportRoutes(rg *gin.RouterGroup, cfg *config.Config, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService, cfg.BaseCurrency)

	reports := rg.Group("/reports")
	{
		reports.GET("/trial-balance", h.getTrialBalance)
		reports.GET("/trial-balance/export", h.exportTrialBalance)
		reports.GET("/profit-and-loss", h.getProfitAndLoss)
		reports.GET("/cash-flow", h.getCashFlow)
	}
}

// trialBalanceParams parses filter, sort and pagination query parameters.
func trialBalanceParams(c *gin.Context) (dto.TrialBalanceParams, error) {
	params := dto.TrialBalanceParams{
		SortBy:     c.DefaultQuery("sortBy", dto.TrialBalanceSortCode),
		Descending: c.Query("order") == "desc",
	}
	switch params.SortBy {
	case dto.TrialBalanceSortCode, dto.TrialBalanceSortName, dto.TrialBalanceSortBalance:
	default:
		return params, fmt.Errorf("invalid sortBy %q", params.SortBy)
	}

	if typeStr := c.Query("accountType"); typeStr != "" {
		accountType, err := domain.ParseAccountType(typeStr)
		if err != nil {
			return params, err
		}
		params.AccountType = &accountType
	}

	params.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "0"))
	params.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	return params, nil
}

func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	params, err := trialBalanceParams(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.reportingService.TrialBalance(c.Request.Context(), params)
	if err != nil {
		logger.Error("Failed to generate trial balance", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate trial balance report"})
		return
	}

	if !report.Total.IsZero() {
		logger.Error("Trial balance total is non-zero", slog.String("total", report.Total.String()))
	}
	c.JSON(http.StatusOK, report)
}

// exportTrialBalance streams the full trial balance as CSV. The export is
// always unpaginated; filter and sort parameters still apply.
func (h *reportingHandler) exportTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	params, err := trialBalanceParams(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	params.Limit = 0
	params.Offset = 0

	report, err := h.reportingService.TrialBalance(c.Request.Context(), params)
	if err != nil {
		logger.Error("Failed to generate trial balance for export", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate trial balance report"})
		return
	}

	filename := fmt.Sprintf("trial_balance_%s.csv", time.Now().Format("20060102_150405"))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)

	if err := writeTrialBalanceCSV(c.Writer, report, params, h.baseCurrency); err != nil {
		logger.Error("Failed to write trial balance CSV", slog.String("error", err.Error()))
	}
}

func (h *reportingHandler) getProfitAndLoss(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	start, end, err := dateRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	baseCurrency := c.DefaultQuery("baseCurrency", h.baseCurrency)

	report, err := h.reportingService.ProfitAndLoss(c.Request.Context(), start, end, baseCurrency)
	if err != nil {
		logger.Error("Failed to generate profit and loss", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate profit and loss report"})
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *reportingHandler) getCashFlow(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	start, end, err := dateRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.reportingService.CashFlow(c.Request.Context(), start, end)
	if err != nil {
		logger.Error("Failed to generate cash flow", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate cash flow report"})
		return
	}
	c.JSON(http.StatusOK, report)
}

// dateRange parses fromDate/toDate, defaulting to the current month so far.
func dateRange(c *gin.Context) (time.Time, time.Time, error) {
	now := time.Now()
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	start := firstOfMonth
	if fromStr := c.Query("fromDate"); fromStr != "" {
		parsed, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			return time.Time{}, time.Time{}, errors.New("invalid fromDate format, use YYYY-MM-DD")
		}
		start = parsed
	}

	end := now
	if toStr := c.Query("toDate"); toStr != "" {
		parsed, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			return time.Time{}, time.Time{}, errors.New("invalid toDate format, use YYYY-MM-DD")
		}
		end = parsed
	}

	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: toDate is before fromDate", apperrors.ErrValidation)
	}
	return start, end, nil
}

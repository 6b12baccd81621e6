package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/dto"
	"github.com/SscSPs/finance_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/ulule/limiter/v3"
)

// AdminRateLimit throttles the cache refresh and clear operations per client IP.
const AdminRateLimit = "5-M"

// exchangeRateHandler handles HTTP requests related to exchange rates.
type exchangeRateHandler struct {
	exchangeRateService portssvc.ExchangeRateSvcFacade
	converter           portssvc.ConverterSvc
}

// registerExchangeRateRoutes registers routes related to exchange rates.
func registerExchangeRateRoutes(rg *gin.RouterGroup, exchangeRateService portssvc.ExchangeRateSvcFacade, converter portssvc.ConverterSvc, adminLimiter *limiter.Limiter) {
	h := &exchangeRateHandler{exchangeRateService: exchangeRateService, converter: converter}

	exchangeRates := rg.Group("/exchange-rates")
	{
		exchangeRates.GET("", h.listRates)
		exchangeRates.GET("/convert", h.convert)
		exchangeRates.GET("/history", h.history)
		exchangeRates.GET("/:from/:to", h.getExchangeRate)

		admin := exchangeRates.Group("")
		if adminLimiter != nil {
			admin.Use(middleware.RateLimit(adminLimiter))
		}
		admin.POST("/refresh", h.refresh)
		admin.DELETE("/cache", h.clearCache)
	}
}

// listRates godoc
// @Summary Current base rates
// @Description Resolves base to foreign rates for every configured foreign currency. Currencies whose quote is unavailable are omitted.
// @Tags exchange rates
// @Produce json
// @Success 200 {object} dto.ListExchangeRatesResponse
// @Security BearerAuth
// @Router /exchange-rates [get]
func (h *exchangeRateHandler) listRates(c *gin.Context) {
	rates, err := h.exchangeRateService.GetAllRates(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to retrieve exchange rates")
		return
	}
	c.JSON(http.StatusOK, dto.ListExchangeRatesResponse{Rates: dto.ToListExchangeRateResponse(rates)})
}

// getExchangeRate godoc
// @Summary Get an exchange rate
// @Description Resolves the factor converting one unit of from into to.
// @Tags exchange rates
// @Produce  json
// @Param   from path string true "From Currency Code (3 letters)" MinLength(3) MaxLength(3)
// @Param   to   path string true "To Currency Code (3 letters)" MinLength(3) MaxLength(3)
// @Success 200 {object} dto.RateResponse
// @Failure 400 {object} ErrorResponse "Unsupported currency code"
// @Failure 503 {object} ErrorResponse "Quote source unavailable"
// @Security BearerAuth
// @Router /exchange-rates/{from}/{to} [get]
func (h *exchangeRateHandler) getExchangeRate(c *gin.Context) {
	fromCode := domain.NormalizeCode(c.Param("from"))
	toCode := domain.NormalizeCode(c.Param("to"))

	rate, err := h.exchangeRateService.GetRate(c.Request.Context(), fromCode, toCode)
	if err != nil {
		respondError(c, err, "Failed to retrieve exchange rate")
		return
	}
	c.JSON(http.StatusOK, dto.RateResponse{FromCurrencyCode: fromCode, ToCurrencyCode: toCode, Rate: rate})
}

// convert godoc
// @Summary Convert an amount
// @Tags exchange rates
// @Produce json
// @Param amount query string true "Amount"
// @Param from query string true "From Currency Code"
// @Param to query string true "To Currency Code"
// @Success 200 {object} dto.ConvertResponse
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Security BearerAuth
// @Router /exchange-rates/convert [get]
func (h *exchangeRateHandler) convert(c *gin.Context) {
	var params dto.ConvertParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}
	amount, err := decimal.NewFromString(params.Amount)
	if err != nil {
		bindError(c, err)
		return
	}
	fromCode := domain.NormalizeCode(params.From)
	toCode := domain.NormalizeCode(params.To)

	converted, err := h.converter.Convert(c.Request.Context(), amount, fromCode, toCode)
	if err != nil {
		respondError(c, err, "Failed to convert amount")
		return
	}
	c.JSON(http.StatusOK, dto.ConvertResponse{
		Amount:           amount,
		FromCurrencyCode: fromCode,
		ToCurrencyCode:   toCode,
		ConvertedAmount:  converted,
	})
}

// history godoc
// @Summary Rate snapshot history
// @Description Lists persisted rate snapshots newest first.
// @Tags exchange rates
// @Produce json
// @Param from query string false "From Currency Code"
// @Param to query string false "To Currency Code"
// @Param limit query int false "Max snapshots" default(50)
// @Success 200 {object} dto.ListExchangeRatesResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /exchange-rates/history [get]
func (h *exchangeRateHandler) history(c *gin.Context) {
	var params dto.RateHistoryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}
	rates, err := h.exchangeRateService.ListRateHistory(c.Request.Context(), params.From, params.To, params.Limit)
	if err != nil {
		respondError(c, err, "Failed to list rate history")
		return
	}
	c.JSON(http.StatusOK, dto.ListExchangeRatesResponse{Rates: dto.ToListExchangeRateResponse(rates)})
}

// refresh godoc
// @Summary Refresh rates
// @Description Clears the rate cache, resolves every base/foreign pair in both directions and stores a snapshot of each.
// @Tags exchange rates
// @Produce json
// @Success 200 {object} dto.ListExchangeRatesResponse
// @Failure 429 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Security BearerAuth
// @Router /exchange-rates/refresh [post]
func (h *exchangeRateHandler) refresh(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	rates, err := h.exchangeRateService.RefreshRates(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to refresh exchange rates")
		return
	}
	middleware.GetLoggerFromContext(c).Info("Exchange rates refreshed", slog.Int("count", len(rates)))
	c.JSON(http.StatusOK, dto.ListExchangeRatesResponse{Rates: dto.ToListExchangeRateResponse(rates)})
}

// clearCache godoc
// @Summary Clear the rate cache
// @Tags exchange rates
// @Success 204
// @Failure 429 {object} ErrorResponse
// @Security BearerAuth
// @Router /exchange-rates/cache [delete]
func (h *exchangeRateHandler) clearCache(c *gin.Context) {
	h.exchangeRateService.ClearCache(c.Request.Context())
	c.Status(http.StatusNoContent)
}

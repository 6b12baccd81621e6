package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/dto"
	"github.com/gin-gonic/gin"
)

type recordHandler struct {
	recordService portssvc.RecordSvcFacade
}

func registerRecordRoutes(rg *gin.RouterGroup, recordService portssvc.RecordSvcFacade) {
	h := &recordHandler{recordService: recordService}

	records := rg.Group("/records")
	{
		records.POST("", h.createRecord)
		records.GET("", h.listRecords)
	}
}

// createRecord godoc
// @Summary Record an income or expense
// @Tags records
// @Accept json
// @Produce json
// @Param record body dto.CreateRecordRequest true "Record"
// @Success 201 {object} dto.RecordResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /records [post]
func (h *recordHandler) createRecord(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.CreateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	rec, err := h.recordService.CreateRecord(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to create record")
		return
	}
	c.JSON(http.StatusCreated, dto.ToStoredRecordResponse(rec))
}

// listRecords godoc
// @Summary List records in the display currency
// @Description Pages through the user's records newest first. Each record carries its original and converted amount.
// @Tags records
// @Produce json
// @Param kind query string false "INCOME or EXPENSE"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListRecordsResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /records [get]
func (h *recordHandler) listRecords(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var params dto.ListRecordsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}

	page, err := h.recordService.ListConvertedRecords(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, err, "Failed to list records")
		return
	}
	c.JSON(http.StatusOK, dto.ToListRecordsResponse(page))
}

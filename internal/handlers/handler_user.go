package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/dto"
	"github.com/gin-gonic/gin"
)

type userHandler struct {
	userService portssvc.UserSvcFacade
	baseCode    string
}

func registerUserRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade, baseCurrency string) {
	h := &userHandler{userService: userService, baseCode: baseCurrency}

	users := rg.Group("/users")
	{
		users.GET("/me", h.getMe)
		users.PUT("/me/currency", h.updatePreferredCurrency)
	}
}

// getMe godoc
// @Summary Current user
// @Description Returns the authenticated user and their display currency.
// @Tags users
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/me [get]
func (h *userHandler) getMe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve user")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user, h.baseCode))
}

// updatePreferredCurrency godoc
// @Summary Set preferred currency
// @Description Sets the currency every report is shown in. A null code resets it to the base currency.
// @Tags users
// @Accept json
// @Produce json
// @Param body body dto.UpdatePreferredCurrencyRequest true "Currency"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/me/currency [put]
func (h *userHandler) updatePreferredCurrency(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.UpdatePreferredCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	user, err := h.userService.UpdatePreferredCurrency(c.Request.Context(), userID, req.CurrencyCode)
	if err != nil {
		respondError(c, err, "Failed to update preferred currency")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user, h.baseCode))
}

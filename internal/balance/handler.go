package balance

import (
	"net/http"

	"lokatiket/internal/auth"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// GetMyBalance godoc
// @Summary      Seller balance sheet
// @Description  Returns the authenticated seller's derived balances.
// @Tags         seller
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  Summary
// @Failure      500  {object}  api.ErrorResponse
// @Router       /seller/balance [get]
func (h *Handler) GetMyBalance(c *gin.Context) {
	sellerID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	summary, err := h.service.GetBalances(c.Request.Context(), sellerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute balances"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

package order

import (
	"errors"
	"net/http"
	"strconv"

	"lokatiket/internal/api"
	"lokatiket/internal/auth"
	"lokatiket/internal/ticket"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// PlaceOrder godoc
// @Summary      Place an order
// @Tags         orders
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      PlaceOrderRequest  true  "Ticket lines"
// @Success      201      {object}  OrderWithItems
// @Failure      400      {object}  api.ErrorResponse
// @Failure      409      {object}  api.ErrorResponse
// @Router       /orders [post]
func (h *Handler) PlaceOrder(c *gin.Context) {
	customerID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.RespondBindError(c, err)
		return
	}

	order, err := h.service.PlaceOrder(c.Request.Context(), customerID, req)
	if err != nil {
		switch {
		case errors.Is(err, ticket.ErrTicketNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "ticket not found"})
		case errors.Is(err, ticket.ErrQuotaExceeded):
			c.JSON(http.StatusConflict, gin.H{"error": "not enough ticket quota"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to place order"})
		}
		return
	}

	c.JSON(http.StatusCreated, order)
}

// ConfirmPayment godoc
// @Summary      Payment confirmation webhook
// @Description  Called by the payment gateway once an order is paid. Settles each item into the seller ledger.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        request  body      ConfirmPaymentRequest  true  "Paid order"
// @Success      200      {object}  Order
// @Failure      404      {object}  api.ErrorResponse
// @Failure      409      {object}  api.ErrorResponse
// @Router       /payments/confirm [post]
func (h *Handler) ConfirmPayment(c *gin.Context) {
	var req ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.RespondBindError(c, err)
		return
	}

	order, err := h.service.ConfirmPayment(c.Request.Context(), req.OrderID)
	if err != nil {
		switch {
		case errors.Is(err, ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		case errors.Is(err, ErrAlreadyPaid):
			c.JSON(http.StatusConflict, gin.H{"error": "order is not awaiting payment"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to confirm payment"})
		}
		return
	}

	c.JSON(http.StatusOK, order)
}

// GetOrder godoc
// @Summary      Order detail
// @Tags         orders
// @Security     BearerAuth
// @Produce      json
// @Param        orderID  path      int  true  "Order ID"
// @Success      200      {object}  OrderWithItems
// @Failure      404      {object}  api.ErrorResponse
// @Router       /orders/{orderID} [get]
func (h *Handler) GetOrder(c *gin.Context) {
	customerID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	orderID, err := strconv.Atoi(c.Param("orderID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order ID"})
		return
	}

	order, err := h.service.GetOrder(c.Request.Context(), customerID, orderID)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch order"})
		return
	}

	c.JSON(http.StatusOK, order)
}

// ListMyOrders godoc
// @Summary      List my orders
// @Tags         orders
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   Order
// @Failure      500  {object}  api.ErrorResponse
// @Router       /orders [get]
func (h *Handler) ListMyOrders(c *gin.Context) {
	customerID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	orders, err := h.service.ListMyOrders(c.Request.Context(), customerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch orders"})
		return
	}

	c.JSON(http.StatusOK, orders)
}

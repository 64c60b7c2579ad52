package withdrawal

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"lokatiket/internal/api"
	"lokatiket/internal/auth"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// CreateWithdrawal godoc
// @Summary      Request a withdrawal
// @Description  Creates a pending withdrawal request for the authenticated seller.
// @Tags         seller
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateRequest  true  "Withdrawal details"
// @Success      201      {object}  Request
// @Failure      400      {object}  api.ErrorResponse
// @Failure      409      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /seller/withdrawals [post]
func (h *Handler) CreateWithdrawal(c *gin.Context) {
	sellerID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.RespondBindError(c, err)
		return
	}

	request, err := h.service.Create(c.Request.Context(), sellerID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrBelowMinimum):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, ErrPendingRequestExists):
			c.JSON(http.StatusConflict, gin.H{"error": "you already have a pending withdrawal request"})
		case errors.Is(err, ErrInsufficientBalance):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create withdrawal request"})
		}
		return
	}

	c.JSON(http.StatusCreated, request)
}

// ListMyWithdrawals godoc
// @Summary      Withdrawal history
// @Tags         seller
// @Security     BearerAuth
// @Produce      json
// @Param        limit  query     int  false  "Maximum number of requests (default 50)"
// @Success      200    {array}   Request
// @Failure      500    {object}  api.ErrorResponse
// @Router       /seller/withdrawals [get]
func (h *Handler) ListMyWithdrawals(c *gin.Context) {
	sellerID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	requests, err := h.service.ListBySeller(c.Request.Context(), sellerID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch withdrawals"})
		return
	}

	c.JSON(http.StatusOK, requests)
}

// GetMyWithdrawal godoc
// @Summary      Withdrawal detail
// @Tags         seller
// @Security     BearerAuth
// @Produce      json
// @Param        requestID  path      int  true  "Withdrawal request ID"
// @Success      200        {object}  Request
// @Failure      404        {object}  api.ErrorResponse
// @Router       /seller/withdrawals/{requestID} [get]
func (h *Handler) GetMyWithdrawal(c *gin.Context) {
	sellerID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	requestID, err := strconv.Atoi(c.Param("requestID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request ID"})
		return
	}

	request, err := h.service.GetForSeller(c.Request.Context(), sellerID, requestID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "withdrawal request not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch withdrawal"})
		return
	}

	c.JSON(http.StatusOK, request)
}

// ListWithdrawals godoc
// @Summary      List withdrawal requests
// @Description  Returns withdrawal requests filtered by status. Admin only.
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Param        status  query     string  false  "Status filter (default pending)"
// @Param        limit   query     int     false  "Maximum number of requests"
// @Success      200     {array}   Request
// @Failure      400     {object}  api.ErrorResponse
// @Failure      500     {object}  api.ErrorResponse
// @Router       /admin/withdrawals [get]
func (h *Handler) ListWithdrawals(c *gin.Context) {
	status := Status(c.DefaultQuery("status", string(StatusPending)))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	requests, err := h.service.ListByStatus(c.Request.Context(), status, limit)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch withdrawals"})
		return
	}

	c.JSON(http.StatusOK, requests)
}

// ApproveWithdrawal godoc
// @Summary      Approve a withdrawal request
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        requestID  path      int            true   "Withdrawal request ID"
// @Param        review     body      ReviewRequest  false  "Optional admin notes"
// @Success      200        {object}  Request
// @Failure      404        {object}  api.ErrorResponse
// @Failure      409        {object}  api.ErrorResponse
// @Router       /admin/withdrawals/{requestID}/approve [post]
func (h *Handler) ApproveWithdrawal(c *gin.Context) {
	h.review(c, h.service.Approve)
}

// RejectWithdrawal godoc
// @Summary      Reject a withdrawal request
// @Description  Rejects a pending request. Admin notes are mandatory.
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        requestID  path      int            true  "Withdrawal request ID"
// @Param        review     body      ReviewRequest  true  "Rejection reason"
// @Success      200        {object}  Request
// @Failure      400        {object}  api.ErrorResponse
// @Failure      404        {object}  api.ErrorResponse
// @Failure      409        {object}  api.ErrorResponse
// @Router       /admin/withdrawals/{requestID}/reject [post]
func (h *Handler) RejectWithdrawal(c *gin.Context) {
	h.review(c, h.service.Reject)
}

func (h *Handler) review(c *gin.Context, transition func(ctx context.Context, requestID, adminID int, adminNotes string) (*Request, error)) {
	adminID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	requestID, err := strconv.Atoi(c.Param("requestID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request ID"})
		return
	}

	var review ReviewRequest
	_ = c.ShouldBindJSON(&review)

	request, err := transition(c.Request.Context(), requestID, adminID, review.AdminNotes)
	if err != nil {
		respondTransitionError(c, err)
		return
	}

	c.JSON(http.StatusOK, request)
}

// CompleteWithdrawal godoc
// @Summary      Mark a withdrawal as paid out
// @Description  Records that an approved withdrawal was transferred to the seller's bank.
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Param        requestID  path      int  true  "Withdrawal request ID"
// @Success      200        {object}  Request
// @Failure      404        {object}  api.ErrorResponse
// @Failure      409        {object}  api.ErrorResponse
// @Router       /admin/withdrawals/{requestID}/complete [post]
func (h *Handler) CompleteWithdrawal(c *gin.Context) {
	requestID, err := strconv.Atoi(c.Param("requestID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request ID"})
		return
	}

	request, err := h.service.Complete(c.Request.Context(), requestID)
	if err != nil {
		respondTransitionError(c, err)
		return
	}

	c.JSON(http.StatusOK, request)
}

func respondTransitionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "withdrawal request not found"})
	case errors.Is(err, ErrInvalidStateTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update withdrawal request"})
	}
}

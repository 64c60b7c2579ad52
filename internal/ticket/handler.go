package ticket

import (
	"errors"
	"net/http"
	"strconv"

	"lokatiket/internal/api"
	"lokatiket/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Handler struct {
	repo Repository
}

func NewHandler(db *sqlx.DB) *Handler {
	return &Handler{repo: NewRepository(db)}
}

// CreateTicket godoc
// @Summary      Create a ticket listing
// @Tags         seller
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateTicketRequest  true  "Ticket details"
// @Success      201      {object}  Ticket
// @Failure      400      {object}  api.ErrorResponse
// @Router       /seller/tickets [post]
func (h *Handler) CreateTicket(c *gin.Context) {
	sellerID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.RespondBindError(c, err)
		return
	}

	ticket, err := h.repo.Create(c.Request.Context(), sellerID, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create ticket"})
		return
	}

	c.JSON(http.StatusCreated, ticket)
}

// ListMyTickets godoc
// @Summary      List my ticket listings
// @Tags         seller
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   Ticket
// @Failure      500  {object}  api.ErrorResponse
// @Router       /seller/tickets [get]
func (h *Handler) ListMyTickets(c *gin.Context) {
	sellerID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	tickets, err := h.repo.ListBySeller(c.Request.Context(), sellerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch tickets"})
		return
	}

	c.JSON(http.StatusOK, tickets)
}

// ListTickets godoc
// @Summary      Browse tickets
// @Tags         tickets
// @Security     BearerAuth
// @Produce      json
// @Param        limit  query     int  false  "Maximum number of tickets (default 100)"
// @Success      200    {array}   Ticket
// @Failure      500    {object}  api.ErrorResponse
// @Router       /tickets [get]
func (h *Handler) ListTickets(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	tickets, err := h.repo.ListAll(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch tickets"})
		return
	}

	c.JSON(http.StatusOK, tickets)
}

// GetTicket godoc
// @Summary      Ticket detail
// @Tags         tickets
// @Security     BearerAuth
// @Produce      json
// @Param        ticketID  path      int  true  "Ticket ID"
// @Success      200       {object}  Ticket
// @Failure      404       {object}  api.ErrorResponse
// @Router       /tickets/{ticketID} [get]
func (h *Handler) GetTicket(c *gin.Context) {
	ticketID, err := strconv.Atoi(c.Param("ticketID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ticket ID"})
		return
	}

	ticket, err := h.repo.GetByID(c.Request.Context(), ticketID)
	if err != nil {
		if errors.Is(err, ErrTicketNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "ticket not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch ticket"})
		return
	}

	c.JSON(http.StatusOK, ticket)
}

package ledger

import (
	"errors"
	"net/http"
	"strconv"

	"lokatiket/internal/auth"
	"lokatiket/internal/logger"
	"lokatiket/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Handler struct {
	repo Repository
}

func NewHandler(db *sqlx.DB, feePercent int) *Handler {
	return &Handler{
		repo: NewRepository(db, feePercent),
	}
}

// ListMyEarnings godoc
// @Summary      List recent earnings
// @Description  Returns the authenticated seller's most recent ledger entries.
// @Tags         seller
// @Security     BearerAuth
// @Produce      json
// @Param        limit  query     int  false  "Maximum number of entries (default 50)"
// @Success      200    {array}   Entry
// @Failure      500    {object}  api.ErrorResponse
// @Router       /seller/earnings [get]
func (h *Handler) ListMyEarnings(c *gin.Context) {
	sellerID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	entries, err := h.repo.ListRecent(c.Request.Context(), sellerID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch earnings"})
		return
	}

	c.JSON(http.StatusOK, entries)
}

// ReleaseEntry godoc
// @Summary      Release a ledger entry
// @Description  Moves a pending earning to available. Releasing an entry that is already available is a no-op.
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Param        entryID  path      int  true  "Ledger entry ID"
// @Success      200      {object}  api.MessageResponse
// @Failure      404      {object}  api.ErrorResponse
// @Router       /admin/ledger/entries/{entryID}/release [post]
func (h *Handler) ReleaseEntry(c *gin.Context) {
	entryID, err := strconv.Atoi(c.Param("entryID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entry ID"})
		return
	}

	if err := h.repo.MarkAvailable(c.Request.Context(), entryID); err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "ledger entry not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to release entry"})
		return
	}

	metrics.RecordLedgerRelease()
	logger.Info("ledger entry released", "entry_id", entryID)

	c.JSON(http.StatusOK, gin.H{"message": "entry released"})
}

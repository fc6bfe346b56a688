package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nurpe/dealflow/internal/model"
	"github.com/nurpe/dealflow/internal/service"
)

type offerRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description" binding:"required"`
	ClientID    string  `json:"clientId" binding:"required"`
	SalesRepID  string  `json:"salesRepresentativeId" binding:"required"`
	ValidFrom   string  `json:"validFrom" binding:"required"`
	ValidUntil  string  `json:"validUntil" binding:"required"`
	Amount      float64 `json:"amount"`
	Status      string  `json:"status"`
	Notes       string  `json:"notes"`
}

func (r offerRequest) toInput() (service.OfferInput, error) {
	var in service.OfferInput

	clientID, err := uuid.Parse(strings.TrimSpace(r.ClientID))
	if err != nil {
		return in, fmt.Errorf("%w: invalid clientId", service.ErrInvalidInput)
	}
	salesRepID, err := uuid.Parse(strings.TrimSpace(r.SalesRepID))
	if err != nil {
		return in, fmt.Errorf("%w: invalid salesRepresentativeId", service.ErrInvalidInput)
	}
	validFrom, err := parseDate(r.ValidFrom)
	if err != nil {
		return in, fmt.Errorf("%w: invalid validFrom", service.ErrInvalidInput)
	}
	validUntil, err := parseDate(r.ValidUntil)
	if err != nil {
		return in, fmt.Errorf("%w: invalid validUntil", service.ErrInvalidInput)
	}

	in = service.OfferInput{
		Title:       r.Title,
		Description: r.Description,
		ClientID:    clientID,
		SalesRepID:  salesRepID,
		ValidFrom:   validFrom,
		ValidUntil:  validUntil,
		Amount:      r.Amount,
		Status:      model.OfferStatus(r.Status),
		Notes:       r.Notes,
	}
	return in, nil
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *Handler) listOffers(c *gin.Context) {
	offers, err := h.offers.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, offers)
}

func (h *Handler) getOffer(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	offer, err := h.offers.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, offer)
}

func (h *Handler) createOffer(c *gin.Context) {
	var req offerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	in, err := req.toInput()
	if err != nil {
		h.handleError(c, err)
		return
	}

	offer, err := h.offers.Create(c.Request.Context(), in)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, offer)
}

func (h *Handler) updateOffer(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req offerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	in, err := req.toInput()
	if err != nil {
		h.handleError(c, err)
		return
	}

	offer, err := h.offers.Update(c.Request.Context(), id, in)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, offer)
}

func (h *Handler) updateOfferStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
		return
	}

	offer, err := h.offers.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, offer)
}

func (h *Handler) deleteOffer(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.offers.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Offer deleted successfully"})
}

func (h *Handler) convertOffer(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	contract, offer, err := h.contracts.ConvertOffer(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"contract": contract, "offer": offer})
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (h *Handler) exportOffers(c *gin.Context) {
	result, err := h.offers.ExportRegister(c.Request.Context(), c.Query("status"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, xlsxContentType, result.Content)
}

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

type contractRequest struct {
	Title               string  `json:"title" binding:"required"`
	Description         string  `json:"description" binding:"required"`
	ClientID            string  `json:"clientId" binding:"required"`
	ResponsiblePersonID string  `json:"responsiblePersonId" binding:"required"`
	StartDate           string  `json:"startDate" binding:"required"`
	EndDate             string  `json:"endDate" binding:"required"`
	PaymentTerms        string  `json:"paymentTerms" binding:"required"`
	Amount              float64 `json:"amount"`
	Status              string  `json:"status"`
	Notes               string  `json:"notes"`
}

func (r contractRequest) toInput() (service.ContractInput, error) {
	var in service.ContractInput

	clientID, err := uuid.Parse(strings.TrimSpace(r.ClientID))
	if err != nil {
		return in, fmt.Errorf("%w: invalid clientId", service.ErrInvalidInput)
	}
	responsibleID, err := uuid.Parse(strings.TrimSpace(r.ResponsiblePersonID))
	if err != nil {
		return in, fmt.Errorf("%w: invalid responsiblePersonId", service.ErrInvalidInput)
	}
	startDate, err := parseDate(r.StartDate)
	if err != nil {
		return in, fmt.Errorf("%w: invalid startDate", service.ErrInvalidInput)
	}
	endDate, err := parseDate(r.EndDate)
	if err != nil {
		return in, fmt.Errorf("%w: invalid endDate", service.ErrInvalidInput)
	}

	in = service.ContractInput{
		Title:               r.Title,
		Description:         r.Description,
		ClientID:            clientID,
		ResponsiblePersonID: responsibleID,
		StartDate:           startDate,
		EndDate:             endDate,
		PaymentTerms:        r.PaymentTerms,
		Amount:              r.Amount,
		Status:              model.ContractStatus(r.Status),
		Notes:               r.Notes,
	}
	return in, nil
}

func (h *Handler) listContracts(c *gin.Context) {
	contracts, err := h.contracts.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, contracts)
}

func (h *Handler) getContract(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	contract, err := h.contracts.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, contract)
}

func (h *Handler) createContract(c *gin.Context) {
	var req contractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	in, err := req.toInput()
	if err != nil {
		h.handleError(c, err)
		return
	}

	contract, err := h.contracts.Create(c.Request.Context(), in)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, contract)
}

func (h *Handler) createContractFromOffer(c *gin.Context) {
	offerID, ok := parseID(c, "offerId")
	if !ok {
		return
	}
	var req contractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	in, err := req.toInput()
	if err != nil {
		h.handleError(c, err)
		return
	}

	contract, err := h.contracts.CreateFromOffer(c.Request.Context(), offerID, in)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, contract)
}

func (h *Handler) updateContract(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req contractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	in, err := req.toInput()
	if err != nil {
		h.handleError(c, err)
		return
	}

	contract, err := h.contracts.Update(c.Request.Context(), id, in)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, contract)
}

func (h *Handler) updateContractStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
		return
	}

	contract, err := h.contracts.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, contract)
}

func (h *Handler) closeContract(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	contract, err := h.contracts.Close(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, contract)
}

func (h *Handler) deleteContract(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.contracts.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Contract deleted successfully"})
}

func (h *Handler) exportContracts(c *gin.Context) {
	result, err := h.contracts.ExportRegister(c.Request.Context(), c.Query("status"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, xlsxContentType, result.Content)
}

func (h *Handler) contractDocument(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	result, err := h.contracts.Document(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, "application/pdf", result.Content)
}

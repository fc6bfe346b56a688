package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nurpe/dealflow/internal/service"
)

type clientRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Company string `json:"company"`
}

func (r clientRequest) toInput() service.ClientInput {
	return service.ClientInput{
		Name:    r.Name,
		Email:   r.Email,
		Phone:   r.Phone,
		Address: r.Address,
		Company: r.Company,
	}
}

func (h *Handler) listClients(c *gin.Context) {
	clients, err := h.refs.ListClients(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, clients)
}

func (h *Handler) getClient(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	client, err := h.refs.GetClient(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

func (h *Handler) createClient(c *gin.Context) {
	var req clientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	client, err := h.refs.CreateClient(c.Request.Context(), req.toInput())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, client)
}

func (h *Handler) updateClient(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req clientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	client, err := h.refs.UpdateClient(c.Request.Context(), id, req.toInput())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

func (h *Handler) deleteClient(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.refs.DeleteClient(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Client deleted successfully"})
}

type salesRepRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required"`
}

func (h *Handler) listSalesReps(c *gin.Context) {
	reps, err := h.refs.ListSalesReps(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, reps)
}

func (h *Handler) getSalesRep(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	rep, err := h.refs.GetSalesRep(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, rep)
}

func (h *Handler) createSalesRep(c *gin.Context) {
	var req salesRepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rep, err := h.refs.CreateSalesRep(c.Request.Context(), service.SalesRepInput{Name: req.Name, Email: req.Email})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rep)
}

func (h *Handler) updateSalesRep(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req salesRepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rep, err := h.refs.UpdateSalesRep(c.Request.Context(), id, service.SalesRepInput{Name: req.Name, Email: req.Email})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, rep)
}

func (h *Handler) deleteSalesRep(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.refs.DeleteSalesRep(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Sales representative deleted successfully"})
}

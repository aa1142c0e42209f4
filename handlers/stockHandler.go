package handlers

import (
	"CluCare/middlewares"
	"CluCare/models"
	"CluCare/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

type StockHandler struct {
	service services.StockService
}

func NewStockHandler(service services.StockService) *StockHandler {
	return &StockHandler{service: service}
}

func (h *StockHandler) AddStockItem(c *gin.Context) {
	var item models.StockItem
	if err := c.ShouldBindJSON(&item); err != nil {
		middlewares.HttpError(c, "Invalid request body", http.StatusBadRequest, err)
		return
	}
	if err := h.service.Add(c.Request.Context(), &item); err != nil {
		middlewares.ServiceError(c, err)
		return
	}
	middlewares.RespondJSON(c, item, http.StatusCreated)
}

func (h *StockHandler) GetStock(c *gin.Context) {
	items, err := h.service.List(c.Request.Context())
	if err != nil {
		middlewares.ServiceError(c, err)
		return
	}
	middlewares.RespondJSON(c, items, http.StatusOK)
}

func (h *StockHandler) UpdateStockItem(c *gin.Context) {
	var item models.StockItem
	if err := c.ShouldBindJSON(&item); err != nil {
		middlewares.HttpError(c, "Invalid request body", http.StatusBadRequest, err)
		return
	}
	item.MedicineID = c.Param("medicine_id")
	if err := h.service.Update(c.Request.Context(), &item); err != nil {
		middlewares.ServiceError(c, err)
		return
	}
	middlewares.RespondJSON(c, item, http.StatusOK)
}

func (h *StockHandler) DeleteStockItem(c *gin.Context) {
	if err := h.service.Remove(c.Request.Context(), c.Param("medicine_id")); err != nil {
		middlewares.ServiceError(c, err)
		return
	}
	middlewares.RespondJSON(c, gin.H{"message": "Stock item deleted"}, http.StatusOK)
}

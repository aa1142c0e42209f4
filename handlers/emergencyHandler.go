package handlers

import (
	"CluCare/middlewares"
	"CluCare/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

type EmergencyHandler struct {
	service services.EmergencyService
}

func NewEmergencyHandler(service services.EmergencyService) *EmergencyHandler {
	return &EmergencyHandler{service: service}
}

func (h *EmergencyHandler) CreateEmergencyCase(c *gin.Context) {
	var intake services.EmergencyIntake
	if err := c.ShouldBindJSON(&intake); err != nil {
		middlewares.HttpError(c, "Invalid request body", http.StatusBadRequest, err)
		return
	}
	result, err := h.service.Create(c.Request.Context(), &intake)
	if err != nil {
		middlewares.ServiceError(c, err)
		return
	}
	middlewares.RespondJSON(c, result, http.StatusCreated)
}

func (h *EmergencyHandler) GetEmergencyCases(c *gin.Context) {
	cases, err := h.service.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		middlewares.ServiceError(c, err)
		return
	}
	middlewares.RespondJSON(c, cases, http.StatusOK)
}

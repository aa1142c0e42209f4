package handlers

import (
	"CluCare/middlewares"
	"CluCare/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

type WardHandler struct {
	wards     services.WardService
	dashboard services.DashboardService
}

func NewWardHandler(wards services.WardService, dashboard services.DashboardService) *WardHandler {
	return &WardHandler{wards: wards, dashboard: dashboard}
}

func (h *WardHandler) GetWards(c *gin.Context) {
	wards, err := h.wards.List(c.Request.Context(), c.Query("type"))
	if err != nil {
		middlewares.ServiceError(c, err)
		return
	}
	middlewares.RespondJSON(c, wards, http.StatusOK)
}

func (h *WardHandler) GetOccupancy(c *gin.Context) {
	snapshot, err := h.wards.Occupancy(c.Request.Context())
	if err != nil {
		middlewares.ServiceError(c, err)
		return
	}
	middlewares.RespondJSON(c, snapshot, http.StatusOK)
}

func (h *WardHandler) GetDashboardStats(c *gin.Context) {
	stats, err := h.dashboard.Stats(c.Request.Context())
	if err != nil {
		middlewares.ServiceError(c, err)
		return
	}
	middlewares.RespondJSON(c, stats, http.StatusOK)
}

package handlers

import (
	"CluCare/middlewares"
	"CluCare/models"
	"CluCare/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

type StaffHandler struct {
	service services.StaffService
}

func NewStaffHandler(service services.StaffService) *StaffHandler {
	return &StaffHandler{service: service}
}

func (h *StaffHandler) CreateStaff(c *gin.Context) {
	var staff models.Staff
	if err := c.ShouldBindJSON(&staff); err != nil {
		middlewares.HttpError(c, "Invalid request body", http.StatusBadRequest, err)
		return
	}
	if err := h.service.Create(c.Request.Context(), &staff); err != nil {
		middlewares.ServiceError(c, err)
		return
	}
	middlewares.RespondJSON(c, staff, http.StatusCreated)
}

func (h *StaffHandler) GetStaff(c *gin.Context) {
	staff, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		middlewares.ServiceError(c, err)
		return
	}
	middlewares.RespondJSON(c, staff, http.StatusOK)
}

func (h *StaffHandler) GetAllStaff(c *gin.Context) {
	staff, err := h.service.List(c.Request.Context())
	if err != nil {
		middlewares.ServiceError(c, err)
		return
	}
	middlewares.RespondJSON(c, staff, http.StatusOK)
}

func (h *StaffHandler) GetAvailableDoctors(c *gin.Context) {
	doctors, err := h.service.ListAvailableDoctors(c.Request.Context(), c.Query("specialty"))
	if err != nil {
		middlewares.ServiceError(c, err)
		return
	}
	middlewares.RespondJSON(c, doctors, http.StatusOK)
}

func (h *StaffHandler) UpdateStaff(c *gin.Context) {
	var staff models.Staff
	if err := c.ShouldBindJSON(&staff); err != nil {
		middlewares.HttpError(c, "Invalid request body", http.StatusBadRequest, err)
		return
	}
	staff.ID = c.Param("id")
	if err := h.service.Update(c.Request.Context(), &staff); err != nil {
		middlewares.ServiceError(c, err)
		return
	}
	middlewares.RespondJSON(c, staff, http.StatusOK)
}

func (h *StaffHandler) UpdateStaffStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		middlewares.HttpError(c, "Invalid request body", http.StatusBadRequest, err)
		return
	}
	if err := h.service.SetStatus(c.Request.Context(), c.Param("id"), req.Status); err != nil {
		middlewares.ServiceError(c, err)
		return
	}
	middlewares.RespondJSON(c, gin.H{"id": c.Param("id"), "status": req.Status}, http.StatusOK)
}

func (h *StaffHandler) DeleteStaff(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		middlewares.ServiceError(c, err)
		return
	}
	middlewares.RespondJSON(c, gin.H{"message": "Staff deleted"}, http.StatusOK)
}

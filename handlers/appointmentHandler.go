package handlers

import (
	"CluCare/middlewares"
	"CluCare/models"
	"CluCare/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

type AppointmentHandler struct {
	service services.AppointmentService
}

func NewAppointmentHandler(service services.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{service: service}
}

func (h *AppointmentHandler) BookAppointment(c *gin.Context) {
	var appointment models.Appointment
	if err := c.ShouldBindJSON(&appointment); err != nil {
		middlewares.HttpError(c, "Invalid request body", http.StatusBadRequest, err)
		return
	}
	if err := h.service.Book(c.Request.Context(), &appointment); err != nil {
		middlewares.ServiceError(c, err)
		return
	}
	middlewares.RespondJSON(c, appointment, http.StatusCreated)
}

func (h *AppointmentHandler) GetDoctorAppointments(c *gin.Context) {
	views, err := h.service.ListByDoctor(c.Request.Context(), c.Param("id"))
	if err != nil {
		middlewares.ServiceError(c, err)
		return
	}
	middlewares.RespondJSON(c, views, http.StatusOK)
}

func (h *AppointmentHandler) GetPatientAppointments(c *gin.Context) {
	views, err := h.service.ListByPatient(c.Request.Context(), c.Param("id"))
	if err != nil {
		middlewares.ServiceError(c, err)
		return
	}
	middlewares.RespondJSON(c, views, http.StatusOK)
}

func (h *AppointmentHandler) UpdateAppointmentStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Status == "" {
		middlewares.HttpError(c, "Status is required", http.StatusBadRequest, err)
		return
	}
	appointment, err := h.service.ChangeStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		middlewares.ServiceError(c, err)
		return
	}
	middlewares.RespondJSON(c, appointment, http.StatusOK)
}

package handlers

import (
	"CluCare/middlewares"
	"CluCare/models"
	"CluCare/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

type PatientHandler struct {
	service services.PatientService
}

func NewPatientHandler(service services.PatientService) *PatientHandler {
	return &PatientHandler{service: service}
}

func (h *PatientHandler) RegisterPatient(c *gin.Context) {
	var reg services.PatientRegistration
	if err := c.ShouldBindJSON(&reg); err != nil {
		middlewares.HttpError(c, "Invalid request body", http.StatusBadRequest, err)
		return
	}
	patient, err := h.service.Register(c.Request.Context(), &reg)
	if err != nil {
		middlewares.ServiceError(c, err)
		return
	}
	middlewares.RespondJSON(c, patient, http.StatusCreated)
}

func (h *PatientHandler) GetPatient(c *gin.Context) {
	view, err := h.service.Get(c.Request.Context(), c.Param("patient_id"))
	if err != nil {
		middlewares.ServiceError(c, err)
		return
	}
	middlewares.RespondJSON(c, view, http.StatusOK)
}

func (h *PatientHandler) GetAllPatients(c *gin.Context) {
	patients, err := h.service.List(c.Request.Context())
	if err != nil {
		middlewares.ServiceError(c, err)
		return
	}
	middlewares.RespondJSON(c, patients, http.StatusOK)
}

func (h *PatientHandler) UpdatePatient(c *gin.Context) {
	var patient models.Patient
	if err := c.ShouldBindJSON(&patient); err != nil {
		middlewares.HttpError(c, "Invalid request body", http.StatusBadRequest, err)
		return
	}
	patient.PatientID = c.Param("patient_id")
	if err := h.service.Update(c.Request.Context(), &patient); err != nil {
		middlewares.ServiceError(c, err)
		return
	}
	middlewares.RespondJSON(c, patient, http.StatusOK)
}

func (h *PatientHandler) DeletePatient(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("patient_id")); err != nil {
		middlewares.ServiceError(c, err)
		return
	}
	middlewares.RespondJSON(c, gin.H{"message": "Patient deleted"}, http.StatusOK)
}

func (h *PatientHandler) AdmitPatient(c *gin.Context) {
	var req struct {
		PatientID  string         `json:"patientId"`
		WardNumber models.FlexInt `json:"wardNumber"`
		BedNumber  models.FlexInt `json:"bedNumber"`
		DoctorID   string         `json:"assignedDoctor"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		middlewares.HttpError(c, "Invalid request body", http.StatusBadRequest, err)
		return
	}
	admission, err := h.service.Admit(c.Request.Context(), req.PatientID, req.WardNumber, req.BedNumber, req.DoctorID)
	if err != nil {
		middlewares.ServiceError(c, err)
		return
	}
	middlewares.RespondJSON(c, admission, http.StatusCreated)
}

func (h *PatientHandler) DischargePatient(c *gin.Context) {
	if err := h.service.Discharge(c.Request.Context(), c.Param("patient_id")); err != nil {
		middlewares.ServiceError(c, err)
		return
	}
	middlewares.RespondJSON(c, gin.H{"message": "Patient discharged"}, http.StatusOK)
}

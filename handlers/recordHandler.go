package handlers

import (
	"CluCare/middlewares"
	"CluCare/models"
	"CluCare/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

type RecordHandler struct {
	service services.RecordService
}

func NewRecordHandler(service services.RecordService) *RecordHandler {
	return &RecordHandler{service: service}
}

func (h *RecordHandler) AddPrescription(c *gin.Context) {
	var prescription models.Prescription
	if err := c.ShouldBindJSON(&prescription); err != nil {
		middlewares.HttpError(c, "Invalid request body", http.StatusBadRequest, err)
		return
	}
	prescription.PatientID = c.Param("patient_id")
	if err := h.service.AddPrescription(c.Request.Context(), &prescription); err != nil {
		middlewares.ServiceError(c, err)
		return
	}
	middlewares.RespondJSON(c, prescription, http.StatusCreated)
}

func (h *RecordHandler) GetPrescriptions(c *gin.Context) {
	prescriptions, err := h.service.GetPrescriptions(c.Request.Context(), c.Param("patient_id"))
	if err != nil {
		middlewares.ServiceError(c, err)
		return
	}
	middlewares.RespondJSON(c, prescriptions, http.StatusOK)
}

func (h *RecordHandler) GetBillingView(c *gin.Context) {
	bills, err := h.service.BillingView(c.Request.Context())
	if err != nil {
		middlewares.ServiceError(c, err)
		return
	}
	middlewares.RespondJSON(c, bills, http.StatusOK)
}

// AddLabReport accepts a multipart form: report fields plus an optional
// "file" part. Medicines arrive as regular form fields; the file is stored
// under the upload directory.
func (h *RecordHandler) AddLabReport(c *gin.Context) {
	report := models.LabReport{
		PatientID: c.PostForm("patientId"),
		Date:      c.PostForm("date"),
		TestName:  c.PostForm("testName"),
		Results:   c.PostForm("results"),
	}
	if report.PatientID == "" {
		report.PatientID = c.Param("patient_id")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil && err != http.ErrMissingFile {
		middlewares.HttpError(c, "Invalid file upload", http.StatusBadRequest, err)
		return
	}

	if fileHeader != nil {
		file, err := fileHeader.Open()
		if err != nil {
			middlewares.HttpError(c, "Failed to read upload", http.StatusBadRequest, err)
			return
		}
		defer file.Close()
		err = h.service.AddLabReport(c.Request.Context(), &report, file, fileHeader.Filename)
		if err != nil {
			middlewares.ServiceError(c, err)
			return
		}
	} else {
		if err := h.service.AddLabReport(c.Request.Context(), &report, nil, ""); err != nil {
			middlewares.ServiceError(c, err)
			return
		}
	}
	middlewares.RespondJSON(c, report, http.StatusCreated)
}

func (h *RecordHandler) GetLabReports(c *gin.Context) {
	reports, err := h.service.GetLabReports(c.Request.Context(), c.Param("patient_id"))
	if err != nil {
		middlewares.ServiceError(c, err)
		return
	}
	middlewares.RespondJSON(c, reports, http.StatusOK)
}

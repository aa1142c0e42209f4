package controllers

import (
	"CluCare/handlers"
	"CluCare/middlewares"
	"CluCare/models"
	"CluCare/utils"

	"github.com/gin-gonic/gin"
)

// CareController registers the care record, ward and pharmacy endpoints.
type CareController struct {
	Patients     *handlers.PatientHandler
	Staff        *handlers.StaffHandler
	Appointments *handlers.AppointmentHandler
	Records      *handlers.RecordHandler
	Emergencies  *handlers.EmergencyHandler
	Wards        *handlers.WardHandler
	Stock        *handlers.StockHandler
	Chatbot      *handlers.ChatbotHandler
}

// RegisterRoutes wires the API. Everything except the chatbot sits behind
// token auth; write access to staff and stock is role-gated on top.
func (cc *CareController) RegisterRoutes(router *gin.Engine, issuer *utils.TokenIssuer, accounts middlewares.AccountStore) {
	router.POST("/chatbot", cc.Chatbot.Chat)

	api := router.Group("/").Use(middlewares.TokenAuthMiddleware(issuer, accounts))
	{
		api.GET("/wards", cc.Wards.GetWards)
		api.GET("/wards/occupancy", cc.Wards.GetOccupancy)
		api.GET("/dashboard/stats", cc.Wards.GetDashboardStats)

		api.POST("/patients", cc.Patients.RegisterPatient)
		api.GET("/patients", cc.Patients.GetAllPatients)
		api.GET("/patients/:patient_id", cc.Patients.GetPatient)
		api.PUT("/patients/:patient_id", cc.Patients.UpdatePatient)
		api.DELETE("/patients/:patient_id", cc.Patients.DeletePatient)
		api.POST("/admissions", cc.Patients.AdmitPatient)
		api.PUT("/patients/:patient_id/discharge", cc.Patients.DischargePatient)

		api.GET("/staff", cc.Staff.GetAllStaff)
		api.GET("/staff/available", cc.Staff.GetAvailableDoctors)
		api.GET("/staff/:id", cc.Staff.GetStaff)

		api.POST("/appointments", cc.Appointments.BookAppointment)
		api.GET("/appointments/doctor/:id", cc.Appointments.GetDoctorAppointments)
		api.GET("/appointments/patient/:id", cc.Appointments.GetPatientAppointments)
		api.PUT("/appointments/:id/status", cc.Appointments.UpdateAppointmentStatus)

		api.POST("/patients/:patient_id/prescriptions", cc.Records.AddPrescription)
		api.GET("/patients/:patient_id/prescriptions", cc.Records.GetPrescriptions)
		api.POST("/lab-reports", cc.Records.AddLabReport)
		api.GET("/patients/:patient_id/lab-reports", cc.Records.GetLabReports)

		api.POST("/emergency", cc.Emergencies.CreateEmergencyCase)
		api.GET("/emergency", cc.Emergencies.GetEmergencyCases)

		api.GET("/stock", cc.Stock.GetStock)
	}

	adminOnly := router.Group("/").Use(
		middlewares.TokenAuthMiddleware(issuer, accounts),
		middlewares.RoleAuthMiddleware(models.RoleAdmin),
	)
	{
		adminOnly.POST("/staff", cc.Staff.CreateStaff)
		adminOnly.PUT("/staff/:id", cc.Staff.UpdateStaff)
		adminOnly.PUT("/staff/:id/status", cc.Staff.UpdateStaffStatus)
		adminOnly.DELETE("/staff/:id", cc.Staff.DeleteStaff)
	}

	pharmacy := router.Group("/").Use(
		middlewares.TokenAuthMiddleware(issuer, accounts),
		middlewares.RoleAuthMiddleware(models.RoleAdmin, models.RolePharmacy),
	)
	{
		pharmacy.GET("/prescriptions", cc.Records.GetBillingView)
		pharmacy.POST("/stock", cc.Stock.AddStockItem)
		pharmacy.PUT("/stock/:medicine_id", cc.Stock.UpdateStockItem)
		pharmacy.DELETE("/stock/:medicine_id", cc.Stock.DeleteStockItem)
	}
}

package utils

import (
	"CluCare/models"
	"testing"
)

func TestValidatePatientData(t *testing.T) {
	cases := []struct {
		name    string
		patient models.Patient
		wantErr bool
	}{
		{"valid OPD", models.Patient{Name: "Pat", Age: 30, Type: models.AdmissionOPD}, false},
		{"valid IPD", models.Patient{Name: "Pat", Age: 30, Type: models.AdmissionIPD}, false},
		{"missing name", models.Patient{Age: 30, Type: models.AdmissionOPD}, true},
		{"unknown type", models.Patient{Name: "Pat", Type: "daycare"}, true},
		{"age out of range", models.Patient{Name: "Pat", Age: 200, Type: models.AdmissionOPD}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidatePatientData(tc.patient)
			if (err != nil) != tc.wantErr {
				t.Errorf("err = %v, wantErr = %v", err, tc.wantErr)
			}
		})
	}
}

func TestValidateEmergencyCase(t *testing.T) {
	valid := models.EmergencyCase{
		PatientName: "Jane Roe", Condition: "trauma",
		Priority: models.PriorityHigh, WardNumber: 5, BedNumber: 3,
	}
	if err := ValidateEmergencyCase(valid); err != nil {
		t.Errorf("valid case rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(e *models.EmergencyCase)
	}{
		{"missing name", func(e *models.EmergencyCase) { e.PatientName = "" }},
		{"missing condition", func(e *models.EmergencyCase) { e.Condition = "" }},
		{"unknown priority", func(e *models.EmergencyCase) { e.Priority = "urgent" }},
		{"missing ward", func(e *models.EmergencyCase) { e.WardNumber = 0 }},
		{"missing bed", func(e *models.EmergencyCase) { e.BedNumber = 0 }},
		{"negative ward", func(e *models.EmergencyCase) { e.WardNumber = -1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			emergency := valid
			tc.mutate(&emergency)
			if err := ValidateEmergencyCase(emergency); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}

func TestValidateStockItem(t *testing.T) {
	valid := models.StockItem{Name: "Paracetamol", Quantity: 50, Price: 10}
	if err := ValidateStockItem(valid); err != nil {
		t.Errorf("valid item rejected: %v", err)
	}
	if err := ValidateStockItem(models.StockItem{Quantity: 5}); err == nil {
		t.Error("missing name should fail")
	}
	if err := ValidateStockItem(models.StockItem{Name: "Insulin", Quantity: -1}); err == nil {
		t.Error("negative quantity should fail")
	}
	if err := ValidateStockItem(models.StockItem{Name: "Insulin", Price: -2}); err == nil {
		t.Error("negative price should fail")
	}
}

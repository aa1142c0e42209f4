package services

import (
	"CluCare/models"
	"CluCare/repositories"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// defaultPrices is the fallback price list used by the billing view when a
// medicine has no stock entry.
var defaultPrices = map[string]float64{
	"Paracetamol":  10,
	"Amoxicillin":  15,
	"Cetirizine":   8,
	"Vitamin D3":   12,
	"Ibuprofen":    20,
	"Azithromycin": 25,
	"Loratadine":   10,
	"Calcium":      18,
}

// PrescriptionBill is one flattened row of the all-prescriptions billing view.
type PrescriptionBill struct {
	PatientID          string   `json:"patientId"`
	PatientName        string   `json:"patientName"`
	DoctorName         string   `json:"doctorName"`
	PrescriptionNumber int      `json:"prescriptionNumber"`
	Date               string   `json:"date"`
	Medicines          []string `json:"medicines"`
	TotalPrice         float64  `json:"totalPrice"`
}

type RecordService interface {
	AddPrescription(ctx context.Context, prescription *models.Prescription) error
	GetPrescriptions(ctx context.Context, patientID string) ([]models.Prescription, error)
	BillingView(ctx context.Context) ([]PrescriptionBill, error)
	AddLabReport(ctx context.Context, report *models.LabReport, file io.Reader, filename string) error
	GetLabReports(ctx context.Context, patientID string) ([]models.LabReport, error)
}

type recordService struct {
	records   repositories.RecordRepository
	patients  repositories.PatientRepository
	identity  repositories.IdentityStore
	uploadDir string
}

func NewRecordService(records repositories.RecordRepository, patients repositories.PatientRepository, identity repositories.IdentityStore, uploadDir string) RecordService {
	return &recordService{records: records, patients: patients, identity: identity, uploadDir: uploadDir}
}

func (s *recordService) requirePatient(ctx context.Context, patientID string) error {
	patient, err := s.patients.GetByPatientID(ctx, patientID)
	if err != nil {
		return err
	}
	if patient == nil {
		return fmt.Errorf("patient %s: %w", patientID, models.ErrNotFound)
	}
	return nil
}

// AddPrescription appends an entry to the patient's record. Entries are never
// updated in place.
func (s *recordService) AddPrescription(ctx context.Context, prescription *models.Prescription) error {
	if prescription.PatientID == "" || len(prescription.Medicines) == 0 {
		return fmt.Errorf("patientId and at least one medicine are required: %w", models.ErrValidation)
	}
	if err := s.requirePatient(ctx, prescription.PatientID); err != nil {
		return err
	}
	if prescription.Date == "" {
		prescription.Date = time.Now().Format("2006-01-02")
	}
	return s.records.AppendPrescription(ctx, prescription)
}

func (s *recordService) GetPrescriptions(ctx context.Context, patientID string) ([]models.Prescription, error) {
	if err := s.requirePatient(ctx, patientID); err != nil {
		return nil, err
	}
	return s.records.GetPrescriptions(ctx, patientID)
}

// BillingView flattens every prescription across all patients into priced
// rows for the pharmacy screen.
func (s *recordService) BillingView(ctx context.Context) ([]PrescriptionBill, error) {
	prescriptions, err := s.records.GetAllPrescriptions(ctx)
	if err != nil {
		return nil, err
	}

	patientNames := make(map[string]string)
	doctorNames := make(map[string]string)
	bills := make([]PrescriptionBill, 0, len(prescriptions))

	for _, p := range prescriptions {
		bill := PrescriptionBill{
			PatientID:          p.PatientID,
			PatientName:        "Unknown",
			DoctorName:         "Unknown",
			PrescriptionNumber: p.Seq,
			Date:               p.Date,
			Medicines:          make([]string, 0, len(p.Medicines)),
		}

		if name, ok := patientNames[p.PatientID]; ok {
			bill.PatientName = name
		} else if patient, err := s.patients.GetByPatientID(ctx, p.PatientID); err == nil && patient != nil {
			patientNames[p.PatientID] = patient.Name
			bill.PatientName = patient.Name
		}

		doctorID := p.DoctorID
		if doctorID != "" {
			if name, ok := doctorNames[doctorID]; ok {
				bill.DoctorName = name
			} else if doctor, err := s.identity.FindStaffByID(ctx, doctorID); err == nil && doctor != nil {
				doctorNames[doctorID] = doctor.Name
				bill.DoctorName = doctor.Name
			}
		}

		for _, med := range p.Medicines {
			bill.TotalPrice += defaultPrices[med.Name]
			bill.Medicines = append(bill.Medicines, fmt.Sprintf("%s - %s • %s", med.Name, med.Dosage, med.Time))
		}
		bills = append(bills, bill)
	}
	return bills, nil
}

// AddLabReport stores the uploaded file under the upload directory and
// records the virtual /uploads path on the report.
func (s *recordService) AddLabReport(ctx context.Context, report *models.LabReport, file io.Reader, filename string) error {
	if report.PatientID == "" || report.TestName == "" {
		return fmt.Errorf("patientId and testName are required: %w", models.ErrValidation)
	}
	if err := s.requirePatient(ctx, report.PatientID); err != nil {
		return err
	}
	if report.Date == "" {
		report.Date = time.Now().Format("2006-01-02")
	}

	if file != nil {
		saved, err := s.saveUpload(file, filename)
		if err != nil {
			return err
		}
		report.File = "/uploads/" + saved
	}
	return s.records.AppendLabReport(ctx, report)
}

// saveUpload writes the file with a unique name and returns that name. The
// client filename contributes only its extension.
func (s *recordService) saveUpload(file io.Reader, filename string) (string, error) {
	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to prepare upload directory: %w", err)
	}
	ext := strings.ToLower(filepath.Ext(filename))
	name := uuid.New().String() + ext

	out, err := os.Create(filepath.Join(s.uploadDir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, file); err != nil {
		return "", fmt.Errorf("failed to write upload: %w", err)
	}
	return name, nil
}

func (s *recordService) GetLabReports(ctx context.Context, patientID string) ([]models.LabReport, error) {
	if err := s.requirePatient(ctx, patientID); err != nil {
		return nil, err
	}
	return s.records.GetLabReports(ctx, patientID)
}

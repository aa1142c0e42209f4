package services

import (
	"CluCare/models"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type fakeRecordRepo struct {
	prescriptions []models.Prescription
	labReports    []models.LabReport
}

func (f *fakeRecordRepo) AppendPrescription(_ context.Context, p *models.Prescription) error {
	p.ID = fmt.Sprintf("rx-%d", len(f.prescriptions)+1)
	seq := 0
	for _, existing := range f.prescriptions {
		if existing.PatientID == p.PatientID && existing.Seq > seq {
			seq = existing.Seq
		}
	}
	p.Seq = seq + 1
	f.prescriptions = append(f.prescriptions, *p)
	return nil
}

func (f *fakeRecordRepo) GetPrescriptions(_ context.Context, patientID string) ([]models.Prescription, error) {
	var out []models.Prescription
	for _, p := range f.prescriptions {
		if p.PatientID == patientID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeRecordRepo) GetAllPrescriptions(_ context.Context) ([]models.Prescription, error) {
	return f.prescriptions, nil
}

func (f *fakeRecordRepo) AppendLabReport(_ context.Context, r *models.LabReport) error {
	r.ID = fmt.Sprintf("lab-%d", len(f.labReports)+1)
	r.Seq = len(f.labReports) + 1
	f.labReports = append(f.labReports, *r)
	return nil
}

func (f *fakeRecordRepo) GetLabReports(_ context.Context, patientID string) ([]models.LabReport, error) {
	var out []models.LabReport
	for _, r := range f.labReports {
		if r.PatientID == patientID {
			out = append(out, r)
		}
	}
	return out, nil
}

func newTestRecordService(t *testing.T, repo *fakeRecordRepo) RecordService {
	t.Helper()
	patients := newFakePatientRepo(&models.Patient{PatientID: "P-000001", Name: "Pat"})
	identity := newFakeIdentityStore()
	identity.staff["d1"] = &models.Staff{ID: "d1", Name: "Dr. Rao", Role: models.RoleDoctor}
	return NewRecordService(repo, patients, identity, t.TempDir())
}

func TestAddPrescriptionOrdering(t *testing.T) {
	repo := &fakeRecordRepo{}
	svc := newTestRecordService(t, repo)

	first := &models.Prescription{
		PatientID: "P-000001", DoctorID: "d1",
		Medicines: []models.Medicine{{Name: "Paracetamol", Dosage: "500mg", Time: "morning"}},
	}
	second := &models.Prescription{
		PatientID: "P-000001", DoctorID: "d1",
		Medicines: []models.Medicine{{Name: "Ibuprofen", Dosage: "200mg", Time: "night"}},
	}
	if err := svc.AddPrescription(context.Background(), first); err != nil {
		t.Fatalf("first: %v", err)
	}
	if err := svc.AddPrescription(context.Background(), second); err != nil {
		t.Fatalf("second: %v", err)
	}

	if first.ID == second.ID {
		t.Error("prescriptions share an id")
	}
	if first.Seq >= second.Seq {
		t.Errorf("seq ordering broken: %d then %d", first.Seq, second.Seq)
	}
	if first.Date == "" {
		t.Error("date not defaulted")
	}
}

func TestAddPrescriptionUnknownPatient(t *testing.T) {
	svc := newTestRecordService(t, &fakeRecordRepo{})
	err := svc.AddPrescription(context.Background(), &models.Prescription{
		PatientID: "P-999999",
		Medicines: []models.Medicine{{Name: "Paracetamol"}},
	})
	if !errors.Is(err, models.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestAddPrescriptionRequiresMedicines(t *testing.T) {
	svc := newTestRecordService(t, &fakeRecordRepo{})
	err := svc.AddPrescription(context.Background(), &models.Prescription{PatientID: "P-000001"})
	if !errors.Is(err, models.ErrValidation) {
		t.Errorf("err = %v, want ErrValidation", err)
	}
}

func TestBillingView(t *testing.T) {
	repo := &fakeRecordRepo{}
	svc := newTestRecordService(t, repo)

	err := svc.AddPrescription(context.Background(), &models.Prescription{
		PatientID: "P-000001", DoctorID: "d1", Date: "2026-08-01",
		Medicines: []models.Medicine{
			{Name: "Paracetamol", Dosage: "500mg", Time: "morning"},
			{Name: "Ibuprofen", Dosage: "200mg", Time: "night"},
			{Name: "Unpriced Elixir", Dosage: "5ml", Time: "noon"},
		},
	})
	if err != nil {
		t.Fatalf("AddPrescription: %v", err)
	}

	bills, err := svc.BillingView(context.Background())
	if err != nil {
		t.Fatalf("BillingView: %v", err)
	}
	if len(bills) != 1 {
		t.Fatalf("got %d bills, want 1", len(bills))
	}

	bill := bills[0]
	if bill.PatientName != "Pat" || bill.DoctorName != "Dr. Rao" {
		t.Errorf("resolved names = %q/%q", bill.PatientName, bill.DoctorName)
	}
	// Paracetamol 10 + Ibuprofen 20; unknown medicines price at 0.
	if bill.TotalPrice != 30 {
		t.Errorf("totalPrice = %v, want 30", bill.TotalPrice)
	}
	if len(bill.Medicines) != 3 || !strings.Contains(bill.Medicines[0], "Paracetamol - 500mg") {
		t.Errorf("formatted medicines: %v", bill.Medicines)
	}
}

func TestAddLabReportStoresFile(t *testing.T) {
	repo := &fakeRecordRepo{}
	patients := newFakePatientRepo(&models.Patient{PatientID: "P-000001", Name: "Pat"})
	dir := t.TempDir()
	svc := NewRecordService(repo, patients, newFakeIdentityStore(), dir)

	report := &models.LabReport{PatientID: "P-000001", TestName: "CBC", Results: "normal"}
	err := svc.AddLabReport(context.Background(), report, bytes.NewReader([]byte("pdf bytes")), "scan.pdf")
	if err != nil {
		t.Fatalf("AddLabReport: %v", err)
	}

	if !strings.HasPrefix(report.File, "/uploads/") || !strings.HasSuffix(report.File, ".pdf") {
		t.Errorf("virtual path = %q", report.File)
	}
	stored := filepath.Join(dir, strings.TrimPrefix(report.File, "/uploads/"))
	data, err := os.ReadFile(stored)
	if err != nil {
		t.Fatalf("stored file: %v", err)
	}
	if string(data) != "pdf bytes" {
		t.Errorf("stored content = %q", data)
	}
}

func TestAddLabReportWithoutFile(t *testing.T) {
	repo := &fakeRecordRepo{}
	svc := newTestRecordService(t, repo)

	report := &models.LabReport{PatientID: "P-000001", TestName: "X-Ray"}
	if err := svc.AddLabReport(context.Background(), report, nil, ""); err != nil {
		t.Fatalf("AddLabReport: %v", err)
	}
	if report.File != "" {
		t.Errorf("file path set without upload: %q", report.File)
	}
	if report.Date == "" {
		t.Error("date not defaulted")
	}
}

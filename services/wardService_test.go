package services

import (
	"CluCare/models"
	"CluCare/occupancy"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

type fakeAdmissionRepo struct {
	active []models.Admission
}

func (f *fakeAdmissionRepo) Create(_ context.Context, admission *models.Admission) error {
	for _, a := range f.active {
		if a.WardNumber == admission.WardNumber && a.BedNumber == admission.BedNumber {
			return fmt.Errorf("bed %d in ward %d is already occupied: %w",
				admission.BedNumber, admission.WardNumber, models.ErrConflict)
		}
	}
	admission.Status = models.AdmissionAdmitted
	f.active = append(f.active, *admission)
	return nil
}

func (f *fakeAdmissionRepo) GetActive(_ context.Context) ([]models.Admission, error) {
	return f.active, nil
}

func (f *fakeAdmissionRepo) GetActiveByPatient(_ context.Context, patientID string) (*models.Admission, error) {
	for i := range f.active {
		if f.active[i].PatientID == patientID {
			return &f.active[i], nil
		}
	}
	return nil, nil
}

func (f *fakeAdmissionRepo) Discharge(_ context.Context, patientID string) error {
	for i := range f.active {
		if f.active[i].PatientID == patientID {
			f.active = append(f.active[:i], f.active[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("no active admission for %s: %w", patientID, models.ErrNotFound)
}

func (f *fakeAdmissionRepo) CountOccupied(_ context.Context) (int64, error) {
	return int64(len(f.active)), nil
}

type fakeWardRepo struct {
	wards []models.Ward
}

func (f *fakeWardRepo) GetAll(_ context.Context) ([]models.Ward, error) {
	return f.wards, nil
}

func (f *fakeWardRepo) GetByType(_ context.Context, wardType string) ([]models.Ward, error) {
	var out []models.Ward
	for _, w := range f.wards {
		if w.Type == wardType {
			out = append(out, w)
		}
	}
	return out, nil
}

func fiveWards() *fakeWardRepo {
	wards := make([]models.Ward, 0, 5)
	for i := 1; i <= 5; i++ {
		wardType := "general"
		if i == 5 {
			wardType = "emergency"
		}
		wards = append(wards, models.Ward{ID: i, Name: fmt.Sprintf("Ward %d", i), Specialty: "General", Type: wardType, BedsTotal: 10})
	}
	return &fakeWardRepo{wards: wards}
}

func TestListWardsByType(t *testing.T) {
	svc := newTestWardService(&fakeAdmissionRepo{})

	all, err := svc.List(context.Background(), "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 5 {
		t.Errorf("got %d wards, want 5", len(all))
	}

	emergency, err := svc.List(context.Background(), "emergency")
	if err != nil {
		t.Fatalf("List emergency: %v", err)
	}
	if len(emergency) != 1 || emergency[0].ID != 5 {
		t.Errorf("emergency wards = %+v, want ward 5 only", emergency)
	}
}

func newTestWardService(admissions *fakeAdmissionRepo) WardService {
	patients := newFakePatientRepo(
		&models.Patient{ID: "p1", PatientID: "P-000001", Name: "Pat", Age: 30, Gender: "F", Description: "observation"},
	)
	identity := newFakeIdentityStore()
	identity.staff["d1"] = &models.Staff{ID: "d1", Name: "Dr. Rao", Role: models.RoleDoctor}
	return NewWardService(fiveWards(), admissions, patients, identity)
}

func TestOccupancyGrid(t *testing.T) {
	admissions := &fakeAdmissionRepo{active: []models.Admission{
		{PatientID: "P-000001", WardNumber: 2, BedNumber: 5, AssignedDoctor: "d1", AdmittedAt: time.Now()},
	}}
	svc := newTestWardService(admissions)

	snapshot, err := svc.Occupancy(context.Background())
	if err != nil {
		t.Fatalf("Occupancy: %v", err)
	}

	if len(snapshot.Wards) != 5 {
		t.Fatalf("got %d wards, want 5", len(snapshot.Wards))
	}
	for _, ward := range snapshot.Wards {
		if len(ward.Beds) != 10 {
			t.Errorf("ward %d has %d beds, want 10", ward.WardID, len(ward.Beds))
		}
	}
	if snapshot.TotalBeds != 50 {
		t.Errorf("totalBeds = %d, want 50", snapshot.TotalBeds)
	}
	if snapshot.OccupiedBeds != 1 {
		t.Errorf("occupiedBeds = %d, want 1", snapshot.OccupiedBeds)
	}
	if snapshot.Percent != 2 {
		t.Errorf("percent = %d, want 2", snapshot.Percent)
	}

	bed := snapshot.Wards[1].Beds[4]
	if bed.Status != occupancy.StatusAdmitted {
		t.Fatalf("ward 2 bed 5 status = %q, want Admitted", bed.Status)
	}
	if bed.Patient == nil || bed.Patient.Name != "Pat" {
		t.Errorf("occupant = %+v, want Pat", bed.Patient)
	}
	if bed.Patient.Doctor == nil || *bed.Patient.Doctor != "Dr. Rao" {
		t.Errorf("doctor = %v, want Dr. Rao", bed.Patient.Doctor)
	}
}

func TestOccupancyIdempotent(t *testing.T) {
	admissions := &fakeAdmissionRepo{active: []models.Admission{
		{PatientID: "P-000001", WardNumber: 1, BedNumber: 1, AdmittedAt: time.Unix(1700000000, 0)},
	}}
	svc := newTestWardService(admissions)

	first, err := svc.Occupancy(context.Background())
	if err != nil {
		t.Fatalf("Occupancy: %v", err)
	}
	second, err := svc.Occupancy(context.Background())
	if err != nil {
		t.Fatalf("Occupancy: %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("snapshots differ across identical reads (-first +second):\n%s", diff)
	}
}

type fakeStockRepo struct {
	items []models.StockItem
}

func (f *fakeStockRepo) Create(_ context.Context, item *models.StockItem) error {
	f.items = append(f.items, *item)
	return nil
}

func (f *fakeStockRepo) GetAll(_ context.Context) ([]models.StockItem, error) {
	return f.items, nil
}

func (f *fakeStockRepo) Update(_ context.Context, item *models.StockItem) error {
	for i := range f.items {
		if f.items[i].MedicineID == item.MedicineID {
			f.items[i] = *item
			return nil
		}
	}
	return fmt.Errorf("stock item %s: %w", item.MedicineID, models.ErrNotFound)
}

func (f *fakeStockRepo) Delete(_ context.Context, medicineID string) error {
	for i := range f.items {
		if f.items[i].MedicineID == medicineID {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("stock item %s: %w", medicineID, models.ErrNotFound)
}

func (f *fakeStockRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.items)), nil
}

func (f *fakeStockRepo) CountLowStock(_ context.Context, threshold int) (int64, error) {
	var n int64
	for _, item := range f.items {
		if item.Quantity < threshold {
			n++
		}
	}
	return n, nil
}

type fakeStaffRepo struct {
	staff []models.Staff
}

func (f *fakeStaffRepo) Create(_ context.Context, staff *models.Staff) error {
	f.staff = append(f.staff, *staff)
	return nil
}

func (f *fakeStaffRepo) GetByID(_ context.Context, id string) (*models.Staff, error) {
	for i := range f.staff {
		if f.staff[i].ID == id {
			return &f.staff[i], nil
		}
	}
	return nil, nil
}

func (f *fakeStaffRepo) GetAll(_ context.Context) ([]models.Staff, error) {
	return f.staff, nil
}

func (f *fakeStaffRepo) GetAvailableDoctors(_ context.Context, specialty string) ([]models.Staff, error) {
	var out []models.Staff
	for _, s := range f.staff {
		if s.Role != models.RoleDoctor || s.Status != models.StaffActive {
			continue
		}
		if specialty != "" && s.Department != specialty {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeStaffRepo) Update(_ context.Context, staff *models.Staff) error {
	for i := range f.staff {
		if f.staff[i].ID == staff.ID {
			f.staff[i] = *staff
			return nil
		}
	}
	return fmt.Errorf("staff %s: %w", staff.ID, models.ErrNotFound)
}

func (f *fakeStaffRepo) UpdateStatus(_ context.Context, id, status string) error {
	for i := range f.staff {
		if f.staff[i].ID == id {
			f.staff[i].Status = status
			return nil
		}
	}
	return fmt.Errorf("staff %s: %w", id, models.ErrNotFound)
}

func (f *fakeStaffRepo) Delete(_ context.Context, id string) error {
	for i := range f.staff {
		if f.staff[i].ID == id {
			f.staff = append(f.staff[:i], f.staff[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeStaffRepo) CountByRole(_ context.Context, role string) (int64, error) {
	var n int64
	for _, s := range f.staff {
		if s.Role == role {
			n++
		}
	}
	return n, nil
}

func (f *fakeStaffRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.staff)), nil
}

func TestDashboardStats(t *testing.T) {
	patients := newFakePatientRepo(
		&models.Patient{PatientID: "P-000001", Status: models.PatientAdmitted},
		&models.Patient{PatientID: "P-000002", Status: models.PatientAdmitted},
		&models.Patient{PatientID: "P-000003", Status: models.PatientDischarged},
		&models.Patient{PatientID: "P-000004", Status: models.PatientRegistered},
	)
	staff := &fakeStaffRepo{staff: []models.Staff{
		{ID: "d1", Role: models.RoleDoctor, Status: models.StaffActive},
		{ID: "d2", Role: models.RoleDoctor, Status: models.StaffActive},
		{ID: "n1", Role: models.RoleNurse, Status: models.StaffActive},
	}}
	admissions := &fakeAdmissionRepo{}
	for i := 0; i < 15; i++ {
		adm := models.Admission{
			PatientID:  fmt.Sprintf("P-%06d", i+1),
			WardNumber: i/10 + 1,
			BedNumber:  i%10 + 1,
		}
		if err := admissions.Create(context.Background(), &adm); err != nil {
			t.Fatalf("seed admission %d: %v", i, err)
		}
	}
	stock := &fakeStockRepo{items: []models.StockItem{
		{MedicineID: "m1", Name: "Paracetamol", Quantity: 100},
		{MedicineID: "m2", Name: "Insulin", Quantity: 3},
	}}
	emergencies := &fakeEmergencyRepo{cases: []models.EmergencyCase{
		{ID: "e1", Status: models.EmergencyActive, Priority: models.PriorityHigh},
		{ID: "e2", Status: models.EmergencyActive, Priority: models.PriorityLow},
		{ID: "e3", Status: models.EmergencyClosed, Priority: models.PriorityHigh},
	}}

	svc := NewDashboardService(patients, staff, admissions, fiveWards(), stock, emergencies)
	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}

	want := &DashboardStats{
		Patients:        4,
		Admitted:        2,
		Discharged:      1,
		Staff:           3,
		Doctors:         2,
		Nurses:          1,
		TotalBeds:       50,
		OccupiedBeds:    15,
		BedOccupancyPct: 30,
		InventoryItems:  2,
		LowStock:        1,
		Alerts:          2,
		CriticalAlerts:  1,
	}
	if diff := cmp.Diff(want, stats); diff != "" {
		t.Errorf("stats mismatch (-want +got):\n%s", diff)
	}
}

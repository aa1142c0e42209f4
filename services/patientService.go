package services

import (
	"CluCare/models"
	"CluCare/repositories"
	"CluCare/utils"
	"context"
	"fmt"
	"strings"
	"time"
)

// PatientRegistration is the inbound registration payload. Ward and bed
// arrive as either numbers or numeric strings depending on the client.
type PatientRegistration struct {
	Name             string           `json:"name"`
	Age              int              `json:"age"`
	Gender           string           `json:"gender"`
	BloodGroup       string           `json:"bloodGroup"`
	Type             string           `json:"type"`
	MedicalSpecialty string           `json:"medicalSpecialty"`
	Description      string           `json:"description"`
	Password         string           `json:"password"`
	Contact          models.Contact   `json:"contact"`
	Insurance        models.Insurance `json:"insurance"`
	AssignedDoctor   string           `json:"assignedDoctor"`
	WardNumber       models.FlexInt   `json:"wardNumber"`
	BedNumber        models.FlexInt   `json:"bedNumber"`
}

// PatientView is a patient with its related records resolved for display.
type PatientView struct {
	models.Patient
	DoctorName    string               `json:"doctorName,omitempty"`
	Admission     *models.Admission    `json:"admission,omitempty"`
	Appointments  []models.Appointment `json:"appointments"`
	Prescriptions []models.Prescription `json:"prescriptions"`
	LabReports    []models.LabReport   `json:"labReports"`
}

type PatientService interface {
	Register(ctx context.Context, reg *PatientRegistration) (*models.Patient, error)
	Get(ctx context.Context, patientID string) (*PatientView, error)
	List(ctx context.Context) ([]models.Patient, error)
	Update(ctx context.Context, patient *models.Patient) error
	Delete(ctx context.Context, patientID string) error
	Admit(ctx context.Context, patientID string, wardNumber, bedNumber models.FlexInt, doctorID string) (*models.Admission, error)
	Discharge(ctx context.Context, patientID string) error
}

type patientService struct {
	patients     repositories.PatientRepository
	admissions   repositories.AdmissionRepository
	appointments repositories.AppointmentRepository
	identity     repositories.IdentityStore
}

func NewPatientService(patients repositories.PatientRepository, admissions repositories.AdmissionRepository, appointments repositories.AppointmentRepository, identity repositories.IdentityStore) PatientService {
	return &patientService{
		patients:     patients,
		admissions:   admissions,
		appointments: appointments,
		identity:     identity,
	}
}

// Register creates a patient record. An IPD registration with a ward and bed
// also admits the patient in the same transaction; OPD registrations never
// occupy a slot.
func (s *patientService) Register(ctx context.Context, reg *PatientRegistration) (*models.Patient, error) {
	patient := &models.Patient{
		Name:             strings.TrimSpace(reg.Name),
		Age:              reg.Age,
		Gender:           reg.Gender,
		BloodGroup:       reg.BloodGroup,
		Type:             reg.Type,
		MedicalSpecialty: reg.MedicalSpecialty,
		Description:      reg.Description,
		Password:         reg.Password,
		Contact:          reg.Contact,
		Insurance:        reg.Insurance,
		AssignedDoctor:   reg.AssignedDoctor,
		Status:           models.PatientRegistered,
	}
	if patient.Type == "" {
		patient.Type = models.AdmissionOPD
	}
	if err := utils.ValidatePatientData(*patient); err != nil {
		return nil, fmt.Errorf("%v: %w", err, models.ErrValidation)
	}
	if err := s.checkDoctor(ctx, patient.AssignedDoctor); err != nil {
		return nil, err
	}
	if patient.Password != "" {
		hashed, err := utils.HashPassword(patient.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		patient.Password = hashed
	}

	var admission *models.Admission
	if patient.Type == models.AdmissionIPD {
		ward, bed := reg.WardNumber.Int(), reg.BedNumber.Int()
		if ward <= 0 || bed <= 0 {
			return nil, fmt.Errorf("IPD registration requires a ward and bed: %w", models.ErrValidation)
		}
		admission = &models.Admission{
			WardNumber:     ward,
			BedNumber:      bed,
			Type:           models.AdmissionIPD,
			AssignedDoctor: patient.AssignedDoctor,
		}
		patient.Status = models.PatientAdmitted
	}

	if err := s.patients.Create(ctx, patient, admission); err != nil {
		return nil, err
	}
	return patient, nil
}

// checkDoctor rejects references to staff that do not exist or are not
// doctors. Empty references are allowed.
func (s *patientService) checkDoctor(ctx context.Context, doctorID string) error {
	if doctorID == "" {
		return nil
	}
	staff, err := s.identity.FindStaffByID(ctx, doctorID)
	if err != nil {
		return err
	}
	if staff == nil {
		return fmt.Errorf("assigned doctor %s not found: %w", doctorID, models.ErrValidation)
	}
	if staff.Role != models.RoleDoctor {
		return fmt.Errorf("staff %s is not a doctor: %w", doctorID, models.ErrValidation)
	}
	return nil
}

// Get resolves the patient plus everything a profile page shows. Broken
// doctor references resolve to an empty name rather than an error.
func (s *patientService) Get(ctx context.Context, patientID string) (*PatientView, error) {
	patient, err := s.patients.GetByPatientID(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, fmt.Errorf("patient %s: %w", patientID, models.ErrNotFound)
	}

	view := &PatientView{
		Patient:       *patient,
		Appointments:  []models.Appointment{},
		Prescriptions: patient.Prescriptions,
		LabReports:    patient.LabReports,
	}
	if view.Prescriptions == nil {
		view.Prescriptions = []models.Prescription{}
	}
	if view.LabReports == nil {
		view.LabReports = []models.LabReport{}
	}

	if patient.AssignedDoctor != "" {
		if doctor, err := s.identity.FindStaffByID(ctx, patient.AssignedDoctor); err == nil && doctor != nil {
			view.DoctorName = doctor.Name
		}
	}
	if admission, err := s.admissions.GetActiveByPatient(ctx, patient.PatientID); err == nil && admission != nil {
		view.Admission = admission
	}
	if appts, err := s.appointments.GetByPatient(ctx, patient.PatientID); err == nil && appts != nil {
		view.Appointments = appts
	}
	return view, nil
}

func (s *patientService) List(ctx context.Context) ([]models.Patient, error) {
	return s.patients.GetAll(ctx)
}

func (s *patientService) Update(ctx context.Context, patient *models.Patient) error {
	if patient.PatientID == "" {
		return fmt.Errorf("patient id is required: %w", models.ErrValidation)
	}
	if err := s.checkDoctor(ctx, patient.AssignedDoctor); err != nil {
		return err
	}
	return s.patients.Update(ctx, patient)
}

func (s *patientService) Delete(ctx context.Context, patientID string) error {
	return s.patients.Delete(ctx, patientID)
}

// Admit places an already-registered patient into a ward bed. The insert is
// the conflict check: an occupied slot surfaces as a conflict error.
func (s *patientService) Admit(ctx context.Context, patientID string, wardNumber, bedNumber models.FlexInt, doctorID string) (*models.Admission, error) {
	patient, err := s.patients.GetByPatientID(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, fmt.Errorf("patient %s: %w", patientID, models.ErrNotFound)
	}
	if existing, err := s.admissions.GetActiveByPatient(ctx, patientID); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, fmt.Errorf("patient %s is already admitted: %w", patientID, models.ErrConflict)
	}

	ward, bed := wardNumber.Int(), bedNumber.Int()
	if ward <= 0 || bed <= 0 {
		return nil, fmt.Errorf("admission requires a ward and bed: %w", models.ErrValidation)
	}
	if err := s.checkDoctor(ctx, doctorID); err != nil {
		return nil, err
	}

	admission := &models.Admission{
		PatientID:      patientID,
		WardNumber:     ward,
		BedNumber:      bed,
		Type:           models.AdmissionIPD,
		AssignedDoctor: doctorID,
		AdmittedAt:     time.Now(),
	}
	if err := s.admissions.Create(ctx, admission); err != nil {
		return nil, err
	}
	return admission, nil
}

// Discharge frees the bed and flips the patient status. Linked emergency
// cases close with the admission.
func (s *patientService) Discharge(ctx context.Context, patientID string) error {
	patient, err := s.patients.GetByPatientID(ctx, patientID)
	if err != nil {
		return err
	}
	if patient == nil {
		return fmt.Errorf("patient %s: %w", patientID, models.ErrNotFound)
	}
	return s.admissions.Discharge(ctx, patientID)
}

package services

import (
	"CluCare/models"
	"CluCare/repositories"
	"CluCare/utils"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// EmergencyIntake is the inbound emergency case payload.
type EmergencyIntake struct {
	PatientName    string         `json:"patientName"`
	Age            int            `json:"age"`
	Gender         string         `json:"gender"`
	Condition      string         `json:"condition"`
	Priority       string         `json:"priority"`
	Description    string         `json:"description"`
	WardNumber     models.FlexInt `json:"wardNumber"`
	BedNumber      models.FlexInt `json:"bedNumber"`
	AssignedDoctor string         `json:"assignedDoctor"`
}

// EmergencyResult pairs the created case with its derived patient record.
type EmergencyResult struct {
	Case    *models.EmergencyCase `json:"case"`
	Patient *models.Patient       `json:"patient"`
}

// EmergencyView is a case enriched for the listing: the doctor reference is
// resolved to a name and patientAdmitted reflects whether the derived
// admission is still active.
type EmergencyView struct {
	models.EmergencyCase
	DoctorName      string `json:"doctorName,omitempty"`
	PatientAdmitted bool   `json:"patientAdmitted"`
}

type EmergencyService interface {
	Create(ctx context.Context, intake *EmergencyIntake) (*EmergencyResult, error)
	List(ctx context.Context, status string) ([]EmergencyView, error)
}

type emergencyService struct {
	emergencies repositories.EmergencyRepository
	admissions  repositories.AdmissionRepository
	identity    repositories.IdentityStore
}

func NewEmergencyService(emergencies repositories.EmergencyRepository, admissions repositories.AdmissionRepository, identity repositories.IdentityStore) EmergencyService {
	return &emergencyService{emergencies: emergencies, admissions: admissions, identity: identity}
}

// emergencyPatientID builds the EM-<date>-<code> public identifier for the
// derived patient record.
func emergencyPatientID(now time.Time) string {
	code := strings.ToUpper(uuid.New().String()[:4])
	return fmt.Sprintf("EM-%s-%s", now.Format("20060102"), code)
}

// Create records the case and materializes a patient plus an emergency
// admission in one transaction. The bed slot insert is the conflict check:
// an occupied bed rolls the whole intake back.
func (s *emergencyService) Create(ctx context.Context, intake *EmergencyIntake) (*EmergencyResult, error) {
	priority := intake.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}

	now := time.Now()
	emergency := &models.EmergencyCase{
		ID:             uuid.New().String(),
		PatientName:    strings.TrimSpace(intake.PatientName),
		Age:            intake.Age,
		Gender:         intake.Gender,
		Condition:      strings.TrimSpace(intake.Condition),
		Priority:       priority,
		Description:    intake.Description,
		WardNumber:     intake.WardNumber.Int(),
		BedNumber:      intake.BedNumber.Int(),
		AssignedDoctor: intake.AssignedDoctor,
		Status:         models.EmergencyActive,
	}
	if err := utils.ValidateEmergencyCase(*emergency); err != nil {
		return nil, fmt.Errorf("%v: %w", err, models.ErrValidation)
	}
	ward, bed := emergency.WardNumber, emergency.BedNumber

	if intake.AssignedDoctor != "" {
		doctor, err := s.identity.FindStaffByID(ctx, intake.AssignedDoctor)
		if err != nil {
			return nil, err
		}
		if doctor == nil || doctor.Role != models.RoleDoctor {
			return nil, fmt.Errorf("doctor %s not found: %w", intake.AssignedDoctor, models.ErrValidation)
		}
	}

	patient := &models.Patient{
		ID:             uuid.New().String(),
		PatientID:      emergencyPatientID(now),
		Name:           emergency.PatientName,
		Age:            emergency.Age,
		Gender:         emergency.Gender,
		Type:           models.AdmissionEmergency,
		Description:    emergency.Condition,
		Status:         models.PatientAdmitted,
		AssignedDoctor: emergency.AssignedDoctor,
	}
	admission := &models.Admission{
		PatientID:       patient.PatientID,
		WardNumber:      ward,
		BedNumber:       bed,
		Type:            models.AdmissionEmergency,
		AssignedDoctor:  emergency.AssignedDoctor,
		EmergencyCaseID: emergency.ID,
		AdmittedAt:      now,
	}

	if err := s.emergencies.CreateWithAdmission(ctx, emergency, patient, admission); err != nil {
		return nil, err
	}
	return &EmergencyResult{Case: emergency, Patient: patient}, nil
}

// List joins each case with its derived admission: patientAdmitted is read
// from the live admission row, not from the case status, so a discharge
// elsewhere is reflected immediately. Doctor references resolve best-effort.
func (s *emergencyService) List(ctx context.Context, status string) ([]EmergencyView, error) {
	cases, err := s.emergencies.GetAll(ctx, status)
	if err != nil {
		return nil, err
	}
	active, err := s.admissions.GetActive(ctx)
	if err != nil {
		return nil, err
	}
	admitted := make(map[string]bool, len(active))
	for _, adm := range active {
		if adm.EmergencyCaseID != "" {
			admitted[adm.EmergencyCaseID] = true
		}
	}

	doctorNames := make(map[string]string)
	views := make([]EmergencyView, 0, len(cases))
	for _, emergency := range cases {
		view := EmergencyView{
			EmergencyCase:   emergency,
			PatientAdmitted: admitted[emergency.ID],
		}
		if emergency.AssignedDoctor != "" {
			name, ok := doctorNames[emergency.AssignedDoctor]
			if !ok {
				if doctor, err := s.identity.FindStaffByID(ctx, emergency.AssignedDoctor); err == nil && doctor != nil {
					name = doctor.Name
				}
				doctorNames[emergency.AssignedDoctor] = name
			}
			view.DoctorName = name
		}
		views = append(views, view)
	}
	return views, nil
}

package services

import (
	"CluCare/models"
	"CluCare/repositories"
	"context"
	"fmt"
)

// AppointmentView is an appointment with its weak references resolved.
type AppointmentView struct {
	models.Appointment
	DoctorName  string `json:"doctorName"`
	PatientName string `json:"patientName"`
}

type AppointmentService interface {
	Book(ctx context.Context, appointment *models.Appointment) error
	ListByDoctor(ctx context.Context, doctorID string) ([]AppointmentView, error)
	ListByPatient(ctx context.Context, patientID string) ([]AppointmentView, error)
	ChangeStatus(ctx context.Context, id, to string) (*models.Appointment, error)
}

type appointmentService struct {
	appointments repositories.AppointmentRepository
	patients     repositories.PatientRepository
	identity     repositories.IdentityStore
}

func NewAppointmentService(appointments repositories.AppointmentRepository, patients repositories.PatientRepository, identity repositories.IdentityStore) AppointmentService {
	return &appointmentService{appointments: appointments, patients: patients, identity: identity}
}

// Book creates a pending appointment. Both references must resolve; a
// malformed or unknown doctor id is a validation error, not a lookup failure.
func (s *appointmentService) Book(ctx context.Context, appointment *models.Appointment) error {
	if appointment.PatientID == "" || appointment.DoctorID == "" || appointment.Date == "" {
		return fmt.Errorf("patientId, doctorId and date are required: %w", models.ErrValidation)
	}

	patient, err := s.patients.GetByPatientID(ctx, appointment.PatientID)
	if err != nil {
		return err
	}
	if patient == nil {
		return fmt.Errorf("patient %s: %w", appointment.PatientID, models.ErrNotFound)
	}

	doctor, err := s.identity.FindStaffByID(ctx, appointment.DoctorID)
	if err != nil {
		return err
	}
	if doctor == nil || doctor.Role != models.RoleDoctor {
		return fmt.Errorf("doctor %s not found: %w", appointment.DoctorID, models.ErrValidation)
	}

	appointment.Status = models.AppointmentPending
	return s.appointments.Create(ctx, appointment)
}

func (s *appointmentService) ListByDoctor(ctx context.Context, doctorID string) ([]AppointmentView, error) {
	appointments, err := s.appointments.GetByDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	return s.resolve(ctx, appointments), nil
}

func (s *appointmentService) ListByPatient(ctx context.Context, patientID string) ([]AppointmentView, error) {
	appointments, err := s.appointments.GetByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	return s.resolve(ctx, appointments), nil
}

// resolve fills in names for display. Broken references resolve to "Unknown"
// so one bad row does not sink the listing.
func (s *appointmentService) resolve(ctx context.Context, appointments []models.Appointment) []AppointmentView {
	views := make([]AppointmentView, 0, len(appointments))
	doctorNames := make(map[string]string)
	patientNames := make(map[string]string)

	for _, appt := range appointments {
		view := AppointmentView{Appointment: appt, DoctorName: "Unknown", PatientName: "Unknown"}

		if name, ok := doctorNames[appt.DoctorID]; ok {
			view.DoctorName = name
		} else if doctor, err := s.identity.FindStaffByID(ctx, appt.DoctorID); err == nil && doctor != nil {
			doctorNames[appt.DoctorID] = doctor.Name
			view.DoctorName = doctor.Name
		}

		if name, ok := patientNames[appt.PatientID]; ok {
			view.PatientName = name
		} else if patient, err := s.patients.GetByPatientID(ctx, appt.PatientID); err == nil && patient != nil {
			patientNames[appt.PatientID] = patient.Name
			view.PatientName = patient.Name
		}

		views = append(views, view)
	}
	return views
}

// ChangeStatus moves an appointment along pending -> approved -> completed,
// with cancellation allowed from either non-terminal state. The repository
// update is conditional on the current status, so a concurrent transition
// surfaces as a conflict instead of silently overwriting.
func (s *appointmentService) ChangeStatus(ctx context.Context, id, to string) (*models.Appointment, error) {
	appointment, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, fmt.Errorf("appointment %s: %w", id, models.ErrNotFound)
	}

	if !models.CanTransition(appointment.Status, to) {
		return nil, fmt.Errorf("cannot move appointment from %s to %s: %w",
			appointment.Status, to, models.ErrInvalidTransition)
	}

	if err := s.appointments.UpdateStatus(ctx, id, appointment.Status, to); err != nil {
		return nil, err
	}
	appointment.Status = to
	return appointment, nil
}

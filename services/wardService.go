package services

import (
	"CluCare/models"
	"CluCare/occupancy"
	"CluCare/repositories"
	"context"
)

// OccupancySnapshot is the full grid plus the headline numbers.
type OccupancySnapshot struct {
	Wards        []occupancy.WardView `json:"wards"`
	TotalBeds    int                  `json:"totalBeds"`
	OccupiedBeds int                  `json:"occupiedBeds"`
	Percent      int                  `json:"occupancyPercent"`
}

type WardService interface {
	Occupancy(ctx context.Context) (*OccupancySnapshot, error)
	List(ctx context.Context, wardType string) ([]models.Ward, error)
}

type wardService struct {
	wards      repositories.WardRepository
	admissions repositories.AdmissionRepository
	patients   repositories.PatientRepository
	identity   repositories.IdentityStore
}

func NewWardService(wards repositories.WardRepository, admissions repositories.AdmissionRepository, patients repositories.PatientRepository, identity repositories.IdentityStore) WardService {
	return &wardService{wards: wards, admissions: admissions, patients: patients, identity: identity}
}

func (s *wardService) List(ctx context.Context, wardType string) ([]models.Ward, error) {
	if wardType != "" {
		return s.wards.GetByType(ctx, wardType)
	}
	return s.wards.GetAll(ctx)
}

// Occupancy loads the topology and the active admissions and feeds them
// through the grid engine. The computation is a pure function of that
// snapshot, so two calls against unchanged data return the same grid.
func (s *wardService) Occupancy(ctx context.Context) (*OccupancySnapshot, error) {
	wards, err := s.wards.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	active, err := s.admissions.GetActive(ctx)
	if err != nil {
		return nil, err
	}

	defs := make([]occupancy.WardDef, 0, len(wards))
	for _, w := range wards {
		defs = append(defs, occupancy.WardDef{
			ID:        w.ID,
			Name:      w.Name,
			Specialty: w.Specialty,
			BedsTotal: w.BedsTotal,
		})
	}

	inputs := make([]occupancy.Admission, 0, len(active))
	for _, adm := range active {
		in := occupancy.Admission{
			Ward:       adm.WardNumber,
			Bed:        adm.BedNumber,
			AdmittedAt: adm.AdmittedAt,
			DoctorRef:  adm.AssignedDoctor,
			Patient:    occupancy.Occupant{PatientID: adm.PatientID},
		}
		if patient, err := s.patients.GetByPatientID(ctx, adm.PatientID); err == nil && patient != nil {
			in.Patient.Name = patient.Name
			in.Patient.Age = patient.Age
			in.Patient.Gender = patient.Gender
			in.Patient.Diagnosis = patient.Description
		}
		inputs = append(inputs, in)
	}

	resolver := s.doctorResolver(ctx)
	views := occupancy.ComputeOccupancy(defs, inputs, resolver)
	total := occupancy.TotalBeds(defs)
	occupied := occupancy.CountOccupied(views)

	return &OccupancySnapshot{
		Wards:        views,
		TotalBeds:    total,
		OccupiedBeds: occupied,
		Percent:      occupancy.Percent(occupied, total),
	}, nil
}

// doctorResolver memoizes staff lookups for the duration of one grid build.
func (s *wardService) doctorResolver(ctx context.Context) occupancy.DoctorNameResolver {
	seen := make(map[string]*string)
	return func(ref string) (string, bool) {
		if name, ok := seen[ref]; ok {
			if name == nil {
				return "", false
			}
			return *name, true
		}
		staff, err := s.identity.FindStaffByID(ctx, ref)
		if err != nil || staff == nil {
			seen[ref] = nil
			return "", false
		}
		seen[ref] = &staff.Name
		return staff.Name, true
	}
}

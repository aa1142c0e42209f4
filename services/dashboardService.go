package services

import (
	"CluCare/models"
	"CluCare/occupancy"
	"CluCare/repositories"
	"context"
)

// DashboardStats is the admin landing-page snapshot.
type DashboardStats struct {
	Patients        int64 `json:"patients"`
	Admitted        int64 `json:"admitted"`
	Discharged      int64 `json:"discharged"`
	Staff           int64 `json:"staff"`
	Doctors         int64 `json:"doctors"`
	Nurses          int64 `json:"nurses"`
	TotalBeds       int   `json:"totalBeds"`
	OccupiedBeds    int64 `json:"occupiedBeds"`
	BedOccupancyPct int   `json:"bedOccupancyPercent"`
	InventoryItems  int64 `json:"inventoryItems"`
	LowStock        int64 `json:"lowStock"`
	Alerts          int64 `json:"alerts"`
	CriticalAlerts  int64 `json:"criticalAlerts"`
}

type DashboardService interface {
	Stats(ctx context.Context) (*DashboardStats, error)
}

type dashboardService struct {
	patients    repositories.PatientRepository
	staff       repositories.StaffRepository
	admissions  repositories.AdmissionRepository
	wards       repositories.WardRepository
	stock       repositories.StockRepository
	emergencies repositories.EmergencyRepository
}

func NewDashboardService(patients repositories.PatientRepository, staff repositories.StaffRepository, admissions repositories.AdmissionRepository, wards repositories.WardRepository, stock repositories.StockRepository, emergencies repositories.EmergencyRepository) DashboardService {
	return &dashboardService{
		patients:    patients,
		staff:       staff,
		admissions:  admissions,
		wards:       wards,
		stock:       stock,
		emergencies: emergencies,
	}
}

// Stats aggregates counts across the record sets. Bed occupancy counts
// active admissions against the seeded topology; the percentage truncates.
func (s *dashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}
	var err error

	if stats.Patients, err = s.patients.Count(ctx); err != nil {
		return nil, err
	}
	if stats.Admitted, err = s.patients.CountByStatus(ctx, models.PatientAdmitted); err != nil {
		return nil, err
	}
	if stats.Discharged, err = s.patients.CountByStatus(ctx, models.PatientDischarged); err != nil {
		return nil, err
	}
	if stats.Staff, err = s.staff.Count(ctx); err != nil {
		return nil, err
	}
	if stats.Doctors, err = s.staff.CountByRole(ctx, models.RoleDoctor); err != nil {
		return nil, err
	}
	if stats.Nurses, err = s.staff.CountByRole(ctx, models.RoleNurse); err != nil {
		return nil, err
	}

	wards, err := s.wards.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	defs := make([]occupancy.WardDef, 0, len(wards))
	for _, w := range wards {
		defs = append(defs, occupancy.WardDef{ID: w.ID, BedsTotal: w.BedsTotal})
	}
	stats.TotalBeds = occupancy.TotalBeds(defs)
	if stats.OccupiedBeds, err = s.admissions.CountOccupied(ctx); err != nil {
		return nil, err
	}
	stats.BedOccupancyPct = occupancy.Percent(int(stats.OccupiedBeds), stats.TotalBeds)

	if stats.InventoryItems, err = s.stock.Count(ctx); err != nil {
		return nil, err
	}
	if stats.LowStock, err = s.stock.CountLowStock(ctx, models.LowStockThreshold); err != nil {
		return nil, err
	}
	if stats.Alerts, err = s.emergencies.CountByStatus(ctx, models.EmergencyActive); err != nil {
		return nil, err
	}
	if stats.CriticalAlerts, err = s.emergencies.CountByStatusAndPriority(ctx, models.EmergencyActive, models.PriorityHigh); err != nil {
		return nil, err
	}
	return stats, nil
}

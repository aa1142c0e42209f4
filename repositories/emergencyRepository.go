package repositories

import (
	"CluCare/models"
	"context"
	"fmt"

	"gorm.io/gorm"
)

// EmergencyRepository persists emergency cases and their derived admissions.
type EmergencyRepository interface {
	CreateWithAdmission(ctx context.Context, emergency *models.EmergencyCase, patient *models.Patient, admission *models.Admission) error
	GetAll(ctx context.Context, status string) ([]models.EmergencyCase, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
	CountByStatusAndPriority(ctx context.Context, status, priority string) (int64, error)
}

type emergencyRepository struct {
	db *gorm.DB
}

func NewEmergencyRepository(db *gorm.DB) EmergencyRepository {
	return &emergencyRepository{db: db}
}

// CreateWithAdmission writes the case, the derived patient and its admission
// in one transaction: a failure on any piece rolls back the rest, so the pair
// never ends up half-created. The admission insert doubles as the bed
// conflict check via the active-slot index.
func (r *emergencyRepository) CreateWithAdmission(ctx context.Context, emergency *models.EmergencyCase, patient *models.Patient, admission *models.Admission) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(emergency).Error; err != nil {
			return fmt.Errorf("failed to create emergency case: %w", err)
		}
		if err := tx.Create(patient).Error; err != nil {
			return fmt.Errorf("failed to create emergency patient: %w", err)
		}
		if admission != nil {
			if err := tx.Create(admission).Error; err != nil {
				if isUniqueViolation(err) {
					return fmt.Errorf("bed %d in ward %d is already occupied: %w",
						admission.BedNumber, admission.WardNumber, models.ErrConflict)
				}
				return fmt.Errorf("failed to create emergency admission: %w", err)
			}
		}
		if emergency.AssignedDoctor != "" {
			if err := tx.Model(&models.Staff{}).
				Where("id = ?", emergency.AssignedDoctor).
				Update("status", models.StaffUnavailable).Error; err != nil {
				return fmt.Errorf("failed to mark doctor unavailable: %w", err)
			}
		}
		return nil
	})
}

func (r *emergencyRepository) GetAll(ctx context.Context, status string) ([]models.EmergencyCase, error) {
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var cases []models.EmergencyCase
	if err := query.Find(&cases).Error; err != nil {
		return nil, fmt.Errorf("failed to get emergency cases: %w", err)
	}
	return cases, nil
}

func (r *emergencyRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.EmergencyCase{}).
		Where("status = ?", status).Count(&count).Error
	return count, err
}

func (r *emergencyRepository) CountByStatusAndPriority(ctx context.Context, status, priority string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.EmergencyCase{}).
		Where("status = ? AND priority = ?", status, priority).Count(&count).Error
	return count, err
}

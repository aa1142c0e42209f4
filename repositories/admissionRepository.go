package repositories

import (
	"CluCare/models"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// AdmissionRepository persists admissions. The partial unique index on active
// (ward_number, bed_number) pairs makes Create the occupancy conflict check;
// there is deliberately no separate availability query before the insert.
type AdmissionRepository interface {
	Create(ctx context.Context, admission *models.Admission) error
	GetActive(ctx context.Context) ([]models.Admission, error)
	GetActiveByPatient(ctx context.Context, patientID string) (*models.Admission, error)
	Discharge(ctx context.Context, patientID string) error
	CountOccupied(ctx context.Context) (int64, error)
}

type admissionRepository struct {
	db *gorm.DB
}

func NewAdmissionRepository(db *gorm.DB) AdmissionRepository {
	return &admissionRepository{db: db}
}

func (r *admissionRepository) Create(ctx context.Context, admission *models.Admission) error {
	if admission.Status == "" {
		admission.Status = models.AdmissionAdmitted
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(admission).Error; err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("bed %d in ward %d is already occupied: %w",
					admission.BedNumber, admission.WardNumber, models.ErrConflict)
			}
			return fmt.Errorf("failed to create admission: %w", err)
		}
		if err := tx.Model(&models.Patient{}).
			Where("patient_id = ?", admission.PatientID).
			Update("status", models.PatientAdmitted).Error; err != nil {
			return fmt.Errorf("failed to mark patient admitted: %w", err)
		}
		// No automatic reversal exists once the stay ends; known gap.
		if admission.AssignedDoctor != "" && admission.Type != models.AdmissionOPD {
			if err := tx.Model(&models.Staff{}).
				Where("id = ?", admission.AssignedDoctor).
				Update("status", models.StaffUnavailable).Error; err != nil {
				return fmt.Errorf("failed to mark doctor unavailable: %w", err)
			}
		}
		return nil
	})
	return err
}

func (r *admissionRepository) GetActive(ctx context.Context) ([]models.Admission, error) {
	var admissions []models.Admission
	err := r.db.WithContext(ctx).
		Where("status = ?", models.AdmissionAdmitted).
		Order("ward_number, bed_number").
		Find(&admissions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get active admissions: %w", err)
	}
	return admissions, nil
}

func (r *admissionRepository) GetActiveByPatient(ctx context.Context, patientID string) (*models.Admission, error) {
	var admission models.Admission
	err := r.db.WithContext(ctx).
		Where("patient_id = ? AND status = ?", patientID, models.AdmissionAdmitted).
		First(&admission).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get active admission: %w", err)
	}
	return &admission, nil
}

// Discharge closes the active admission and flips the patient status. Closing
// an emergency admission also closes the linked case.
func (r *admissionRepository) Discharge(ctx context.Context, patientID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var admission models.Admission
		err := tx.Where("patient_id = ? AND status = ?", patientID, models.AdmissionAdmitted).
			First(&admission).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("no active admission for patient %s: %w", patientID, models.ErrNotFound)
			}
			return fmt.Errorf("failed to find active admission: %w", err)
		}

		now := time.Now()
		if err := tx.Model(&admission).Updates(map[string]interface{}{
			"status":        models.AdmissionDischarged,
			"discharged_at": &now,
		}).Error; err != nil {
			return fmt.Errorf("failed to discharge admission: %w", err)
		}
		if err := tx.Model(&models.Patient{}).
			Where("patient_id = ?", patientID).
			Update("status", models.PatientDischarged).Error; err != nil {
			return fmt.Errorf("failed to mark patient discharged: %w", err)
		}
		if admission.EmergencyCaseID != "" {
			if err := tx.Model(&models.EmergencyCase{}).
				Where("id = ?", admission.EmergencyCaseID).
				Update("status", models.EmergencyClosed).Error; err != nil {
				return fmt.Errorf("failed to close emergency case: %w", err)
			}
		}
		return nil
	})
}

// CountOccupied counts active admissions holding a ward assignment.
func (r *admissionRepository) CountOccupied(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Admission{}).
		Where("status = ? AND ward_number <> 0", models.AdmissionAdmitted).
		Count(&count).Error
	return count, err
}

// isUniqueViolation reports whether the error is a Postgres unique-constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

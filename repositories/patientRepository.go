package repositories

import (
	"CluCare/cache"
	"CluCare/database"
	"CluCare/models"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PatientCacheExpiry = 24 * time.Hour
	patientsCacheKey   = "patients_cache"
)

// PatientRepository persists patient records and their admission side.
type PatientRepository interface {
	Create(ctx context.Context, patient *models.Patient, admission *models.Admission) error
	GetByPatientID(ctx context.Context, patientID string) (*models.Patient, error)
	GetAll(ctx context.Context) ([]models.Patient, error)
	Update(ctx context.Context, patient *models.Patient) error
	Delete(ctx context.Context, patientID string) error
	CountByStatus(ctx context.Context, status string) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type patientRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewPatientRepository(db *gorm.DB, cache *cache.Cache) PatientRepository {
	return &patientRepository{db: db, cache: cache}
}

// Create assigns the next public patient identifier and inserts the record.
// When an admission is given (IPD registration) it is written in the same
// transaction; the partial unique index on active (ward, bed) slots turns a
// double-booking into models.ErrConflict. An assigned doctor on an IPD
// admission is marked unavailable.
func (r *patientRepository) Create(ctx context.Context, patient *models.Patient, admission *models.Admission) error {
	lockKey := fmt.Sprintf("patient_lock:%s", patient.Contact.Email+patient.Name)
	lockValue := uuid.New().String()
	locked, err := database.NewLock(ctx, lockKey, lockValue, 10*time.Second)
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !locked {
		return errors.New("failed to acquire lock")
	}
	defer func() {
		if err := database.ReleaseLock(ctx, lockKey, lockValue); err != nil {
			log.Printf("Failed to release lock: %v", err)
		}
	}()

	var nextID string
	if err := r.db.WithContext(ctx).
		Raw("SELECT 'P-' || LPAD(nextval('patient_id_seq')::TEXT, 6, '0')").
		Scan(&nextID).Error; err != nil {
		return fmt.Errorf("failed to obtain next patient identifier: %w", err)
	}
	patient.ID = uuid.New().String()
	patient.PatientID = nextID

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(patient).Error; err != nil {
			return fmt.Errorf("failed to create patient: %w", err)
		}
		if admission != nil {
			admission.PatientID = patient.PatientID
			if err := tx.Create(admission).Error; err != nil {
				if isUniqueViolation(err) {
					return fmt.Errorf("bed %d in ward %d is already occupied: %w",
						admission.BedNumber, admission.WardNumber, models.ErrConflict)
				}
				return fmt.Errorf("failed to create admission: %w", err)
			}
			if admission.AssignedDoctor != "" {
				if err := tx.Model(&models.Staff{}).
					Where("id = ?", admission.AssignedDoctor).
					Update("status", models.StaffUnavailable).Error; err != nil {
					return fmt.Errorf("failed to mark doctor unavailable: %w", err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	return r.invalidate(ctx, patient.PatientID)
}

func (r *patientRepository) GetByPatientID(ctx context.Context, patientID string) (*models.Patient, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := patientCacheKey(patientID)
	cached, err := r.cache.Get(ctx, cacheKey)
	if err == nil {
		var patient models.Patient
		if err := json.Unmarshal([]byte(cached), &patient); err == nil {
			return &patient, nil
		}
	} else if err != redis.Nil {
		log.Printf("Failed to get patient from cache: %v", err)
	}

	var patient models.Patient
	err = r.db.WithContext(ctx).
		Preload("Prescriptions", func(db *gorm.DB) *gorm.DB { return db.Order("seq ASC") }).
		Preload("LabReports", func(db *gorm.DB) *gorm.DB { return db.Order("seq ASC") }).
		First(&patient, "patient_id = ?", patientID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}

	patientJSON, err := json.Marshal(patient)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal patient: %w", err)
	}
	if err := r.cache.Set(ctx, cacheKey, patientJSON, PatientCacheExpiry); err != nil {
		log.Printf("Failed to set patient in cache: %v", err)
	}

	return &patient, nil
}

func (r *patientRepository) GetAll(ctx context.Context) ([]models.Patient, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cached, err := r.cache.Get(ctx, patientsCacheKey)
	if err == nil {
		var patients []models.Patient
		if err := json.Unmarshal([]byte(cached), &patients); err == nil {
			return patients, nil
		}
	} else if err != redis.Nil {
		log.Printf("Failed to get patients from cache: %v", err)
	}

	var patients []models.Patient
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&patients).Error; err != nil {
		return nil, fmt.Errorf("failed to get all patients: %w", err)
	}

	patientsJSON, err := json.Marshal(patients)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal patients: %w", err)
	}
	if err := r.cache.Set(ctx, patientsCacheKey, patientsJSON, PatientCacheExpiry); err != nil {
		log.Printf("Failed to set patients in cache: %v", err)
	}

	return patients, nil
}

func (r *patientRepository) Update(ctx context.Context, patient *models.Patient) error {
	lockKey := fmt.Sprintf("patient_lock:%s", patient.PatientID)
	lockValue := uuid.New().String()
	locked, err := database.NewLock(ctx, lockKey, lockValue, 10*time.Second)
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !locked {
		return errors.New("failed to acquire lock")
	}
	defer func() {
		if err := database.ReleaseLock(ctx, lockKey, lockValue); err != nil {
			log.Printf("Failed to release lock: %v", err)
		}
	}()

	result := r.db.WithContext(ctx).Model(&models.Patient{}).
		Where("patient_id = ?", patient.PatientID).
		Select("name", "age", "gender", "blood_group", "type", "medical_specialty",
			"description", "status", "assigned_doctor",
			"contact_email", "contact_phone", "contact_address",
			"insurance_provider", "insurance_policy_number").
		Updates(patient)
	if result.Error != nil {
		return fmt.Errorf("failed to update patient: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("patient %s: %w", patient.PatientID, models.ErrNotFound)
	}

	return r.invalidate(ctx, patient.PatientID)
}

func (r *patientRepository) Delete(ctx context.Context, patientID string) error {
	result := r.db.WithContext(ctx).Delete(&models.Patient{}, "patient_id = ?", patientID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete patient: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("patient %s: %w", patientID, models.ErrNotFound)
	}
	return r.invalidate(ctx, patientID)
}

func (r *patientRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Patient{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

func (r *patientRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Patient{}).Count(&count).Error
	return count, err
}

func (r *patientRepository) invalidate(ctx context.Context, patientID string) error {
	if err := r.cache.Delete(ctx, patientCacheKey(patientID)); err != nil {
		return fmt.Errorf("failed to delete patient cache: %w", err)
	}
	return r.cache.DeleteAll(ctx, patientsCacheKey)
}

func patientCacheKey(patientID string) string {
	return fmt.Sprintf("patient_cache:%s", patientID)
}

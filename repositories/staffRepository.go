package repositories

import (
	"CluCare/cache"
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
	StaffCacheExpiry = 24 * time.Hour
	staffAllCacheKey = "staff_cache:all"
)

// StaffRepository persists staff (doctor and nurse) records.
type StaffRepository interface {
	Create(ctx context.Context, staff *models.Staff) error
	GetByID(ctx context.Context, id string) (*models.Staff, error)
	GetAll(ctx context.Context) ([]models.Staff, error)
	GetAvailableDoctors(ctx context.Context, specialty string) ([]models.Staff, error)
	Update(ctx context.Context, staff *models.Staff) error
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
	CountByRole(ctx context.Context, role string) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type staffRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewStaffRepository(db *gorm.DB, cache *cache.Cache) StaffRepository {
	return &staffRepository{db: db, cache: cache}
}

func (r *staffRepository) Create(ctx context.Context, staff *models.Staff) error {
	if staff.ID == "" {
		staff.ID = uuid.New().String()
	}
	if staff.Status == "" {
		staff.Status = models.StaffActive
	}
	if err := r.db.WithContext(ctx).Create(staff).Error; err != nil {
		return fmt.Errorf("failed to create staff: %w", err)
	}
	return r.invalidate(ctx, staff.ID)
}

func (r *staffRepository) GetByID(ctx context.Context, id string) (*models.Staff, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := staffCacheKey(id)
	cached, err := r.cache.Get(ctx, cacheKey)
	if err == nil {
		var staff models.Staff
		if err := json.Unmarshal([]byte(cached), &staff); err == nil {
			return &staff, nil
		}
	} else if err != redis.Nil {
		log.Printf("Failed to get staff from cache: %v", err)
	}

	var staff models.Staff
	err = r.db.WithContext(ctx).First(&staff, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get staff: %w", err)
	}

	staffJSON, err := json.Marshal(staff)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal staff: %w", err)
	}
	if err := r.cache.Set(ctx, cacheKey, staffJSON, StaffCacheExpiry); err != nil {
		log.Printf("Failed to set staff in cache: %v", err)
	}

	return &staff, nil
}

func (r *staffRepository) GetAll(ctx context.Context) ([]models.Staff, error) {
	var staff []models.Staff
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&staff).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get all staff: %w", err)
	}
	return staff, nil
}

func (r *staffRepository) GetAvailableDoctors(ctx context.Context, specialty string) ([]models.Staff, error) {
	query := r.db.WithContext(ctx).
		Where("role = ? AND status = ?", models.RoleDoctor, models.StaffActive)
	if specialty != "" {
		query = query.Where("department = ?", specialty)
	}
	var doctors []models.Staff
	if err := query.Find(&doctors).Error; err != nil {
		return nil, fmt.Errorf("failed to get available doctors: %w", err)
	}
	return doctors, nil
}

func (r *staffRepository) Update(ctx context.Context, staff *models.Staff) error {
	result := r.db.WithContext(ctx).Model(&models.Staff{}).
		Where("id = ?", staff.ID).
		Select("staff_id", "name", "role", "department", "specialization",
			"qualifications", "email", "phone", "status").
		Updates(staff)
	if result.Error != nil {
		return fmt.Errorf("failed to update staff: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("staff %s: %w", staff.ID, models.ErrNotFound)
	}
	return r.invalidate(ctx, staff.ID)
}

func (r *staffRepository) UpdateStatus(ctx context.Context, id, status string) error {
	result := r.db.WithContext(ctx).Model(&models.Staff{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update staff status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("staff %s: %w", id, models.ErrNotFound)
	}
	return r.invalidate(ctx, id)
}

func (r *staffRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&models.Staff{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete staff: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("staff %s: %w", id, models.ErrNotFound)
	}
	return r.invalidate(ctx, id)
}

func (r *staffRepository) CountByRole(ctx context.Context, role string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Staff{}).Where("role = ?", role).Count(&count).Error
	return count, err
}

func (r *staffRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Staff{}).Count(&count).Error
	return count, err
}

func (r *staffRepository) invalidate(ctx context.Context, id string) error {
	if err := r.cache.Delete(ctx, staffCacheKey(id)); err != nil {
		return fmt.Errorf("failed to delete staff cache: %w", err)
	}
	return r.cache.Delete(ctx, staffAllCacheKey)
}

func staffCacheKey(id string) string {
	return fmt.Sprintf("staff_cache:%s", id)
}

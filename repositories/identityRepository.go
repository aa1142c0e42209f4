package repositories

import (
	"CluCare/models"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// IdentityStore reads and writes person records across the three
// role-partitioned sets (users, staff, patients). Lookups return (nil, nil)
// when no record matches.
type IdentityStore interface {
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindStaffByEmail(ctx context.Context, email string) (*models.Staff, error)
	FindPatientByEmail(ctx context.Context, email string) (*models.Patient, error)
	FindStaffByID(ctx context.Context, id string) (*models.Staff, error)
	CreateUser(ctx context.Context, user *models.User) error
	EmailExists(ctx context.Context, email string) (bool, error)
	UpdateUserCredential(ctx context.Context, id, hashed string) error
	UpdateStaffCredential(ctx context.Context, id, hashed string) error
	UpdatePatientCredential(ctx context.Context, id, hashed string) error
}

type identityRepository struct {
	db *gorm.DB
}

func NewIdentityRepository(db *gorm.DB) IdentityStore {
	return &identityRepository{db: db}
}

func (r *identityRepository) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	return &user, nil
}

func (r *identityRepository) FindStaffByEmail(ctx context.Context, email string) (*models.Staff, error) {
	var staff models.Staff
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&staff).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up staff: %w", err)
	}
	return &staff, nil
}

// FindPatientByEmail matches the legacy top-level email or the nested contact
// email.
func (r *identityRepository) FindPatientByEmail(ctx context.Context, email string) (*models.Patient, error) {
	var patient models.Patient
	err := r.db.WithContext(ctx).
		Where("email = ? OR contact_email = ?", email, email).
		First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up patient: %w", err)
	}
	return &patient, nil
}

func (r *identityRepository) FindStaffByID(ctx context.Context, id string) (*models.Staff, error) {
	var staff models.Staff
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&staff).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up staff: %w", err)
	}
	return &staff, nil
}

func (r *identityRepository) CreateUser(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *identityRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}
	return count > 0, nil
}

func (r *identityRepository) UpdateUserCredential(ctx context.Context, id, hashed string) error {
	return r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("password", hashed).Error
}

func (r *identityRepository) UpdateStaffCredential(ctx context.Context, id, hashed string) error {
	return r.db.WithContext(ctx).Model(&models.Staff{}).Where("id = ?", id).Update("password", hashed).Error
}

func (r *identityRepository) UpdatePatientCredential(ctx context.Context, id, hashed string) error {
	return r.db.WithContext(ctx).Model(&models.Patient{}).Where("id = ?", id).Update("password", hashed).Error
}

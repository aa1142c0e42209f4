package services

import (
	"CluCare/models"
	"CluCare/repositories"
	"CluCare/utils"
	"context"
	"fmt"
)

type StaffService interface {
	Create(ctx context.Context, staff *models.Staff) error
	Get(ctx context.Context, id string) (*models.Staff, error)
	List(ctx context.Context) ([]models.Staff, error)
	ListAvailableDoctors(ctx context.Context, specialty string) ([]models.Staff, error)
	Update(ctx context.Context, staff *models.Staff) error
	SetStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
}

type staffService struct {
	staff repositories.StaffRepository
}

func NewStaffService(staff repositories.StaffRepository) StaffService {
	return &staffService{staff: staff}
}

func (s *staffService) Create(ctx context.Context, staff *models.Staff) error {
	if err := utils.ValidateStaffData(*staff); err != nil {
		return fmt.Errorf("%v: %w", err, models.ErrValidation)
	}
	if staff.Password != "" {
		hashed, err := utils.HashPassword(staff.Password)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		staff.Password = hashed
	}
	return s.staff.Create(ctx, staff)
}

func (s *staffService) Get(ctx context.Context, id string) (*models.Staff, error) {
	staff, err := s.staff.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if staff == nil {
		return nil, fmt.Errorf("staff %s: %w", id, models.ErrNotFound)
	}
	return staff, nil
}

func (s *staffService) List(ctx context.Context) ([]models.Staff, error) {
	return s.staff.GetAll(ctx)
}

func (s *staffService) ListAvailableDoctors(ctx context.Context, specialty string) ([]models.Staff, error) {
	return s.staff.GetAvailableDoctors(ctx, specialty)
}

func (s *staffService) Update(ctx context.Context, staff *models.Staff) error {
	if staff.ID == "" {
		return fmt.Errorf("staff id is required: %w", models.ErrValidation)
	}
	return s.staff.Update(ctx, staff)
}

// SetStatus toggles availability. Unavailable is reserved for the admission
// flow and cannot be set directly.
func (s *staffService) SetStatus(ctx context.Context, id, status string) error {
	if status != models.StaffActive && status != models.StaffInactive {
		return fmt.Errorf("status must be active or inactive: %w", models.ErrValidation)
	}
	return s.staff.UpdateStatus(ctx, id, status)
}

func (s *staffService) Delete(ctx context.Context, id string) error {
	return s.staff.Delete(ctx, id)
}

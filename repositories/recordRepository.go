package repositories

import (
	"CluCare/models"
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RecordRepository persists the append-only per-patient sequences
// (prescriptions and lab reports). Entries get a fresh identifier before
// append and are never mutated afterwards.
type RecordRepository interface {
	AppendPrescription(ctx context.Context, p *models.Prescription) error
	GetPrescriptions(ctx context.Context, patientID string) ([]models.Prescription, error)
	GetAllPrescriptions(ctx context.Context) ([]models.Prescription, error)
	AppendLabReport(ctx context.Context, r *models.LabReport) error
	GetLabReports(ctx context.Context, patientID string) ([]models.LabReport, error)
}

type recordRepository struct {
	db *gorm.DB
}

func NewRecordRepository(db *gorm.DB) RecordRepository {
	return &recordRepository{db: db}
}

func (r *recordRepository) AppendPrescription(ctx context.Context, p *models.Prescription) error {
	p.ID = uuid.New().String()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := nextSeq(tx, "prescription", p.PatientID, &p.Seq); err != nil {
			return err
		}
		if err := tx.Create(p).Error; err != nil {
			return fmt.Errorf("failed to append prescription: %w", err)
		}
		return nil
	})
}

func (r *recordRepository) GetPrescriptions(ctx context.Context, patientID string) ([]models.Prescription, error) {
	var prescriptions []models.Prescription
	err := r.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("seq ASC").
		Find(&prescriptions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get prescriptions: %w", err)
	}
	return prescriptions, nil
}

func (r *recordRepository) GetAllPrescriptions(ctx context.Context) ([]models.Prescription, error) {
	var prescriptions []models.Prescription
	err := r.db.WithContext(ctx).
		Order("patient_id, seq ASC").
		Find(&prescriptions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get all prescriptions: %w", err)
	}
	return prescriptions, nil
}

func (r *recordRepository) AppendLabReport(ctx context.Context, report *models.LabReport) error {
	report.ID = uuid.New().String()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := nextSeq(tx, "lab_report", report.PatientID, &report.Seq); err != nil {
			return err
		}
		if err := tx.Create(report).Error; err != nil {
			return fmt.Errorf("failed to append lab report: %w", err)
		}
		return nil
	})
}

func (r *recordRepository) GetLabReports(ctx context.Context, patientID string) ([]models.LabReport, error) {
	var reports []models.LabReport
	err := r.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("seq ASC").
		Find(&reports).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get lab reports: %w", err)
	}
	return reports, nil
}

// nextSeq assigns the next per-patient sequence number inside the append
// transaction, preserving original order.
func nextSeq(tx *gorm.DB, table, patientID string, seq *int) error {
	err := tx.Raw(
		fmt.Sprintf("SELECT COALESCE(MAX(seq), 0) + 1 FROM %s WHERE patient_id = ?", table),
		patientID,
	).Scan(seq).Error
	if err != nil {
		return fmt.Errorf("failed to compute next sequence: %w", err)
	}
	return nil
}

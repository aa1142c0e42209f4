package repositories

import (
	"CluCare/models"
	"context"
	"fmt"

	"gorm.io/gorm"
)

// StockRepository persists pharmacy inventory.
type StockRepository interface {
	Create(ctx context.Context, item *models.StockItem) error
	GetAll(ctx context.Context) ([]models.StockItem, error)
	Update(ctx context.Context, item *models.StockItem) error
	Delete(ctx context.Context, medicineID string) error
	Count(ctx context.Context) (int64, error)
	CountLowStock(ctx context.Context, threshold int) (int64, error)
}

type stockRepository struct {
	db *gorm.DB
}

func NewStockRepository(db *gorm.DB) StockRepository {
	return &stockRepository{db: db}
}

func (r *stockRepository) Create(ctx context.Context, item *models.StockItem) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("stock item %s already exists: %w", item.MedicineID, models.ErrConflict)
		}
		return fmt.Errorf("failed to create stock item: %w", err)
	}
	return nil
}

func (r *stockRepository) GetAll(ctx context.Context) ([]models.StockItem, error) {
	var items []models.StockItem
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to get stock: %w", err)
	}
	return items, nil
}

func (r *stockRepository) Update(ctx context.Context, item *models.StockItem) error {
	result := r.db.WithContext(ctx).Model(&models.StockItem{}).
		Where("medicine_id = ?", item.MedicineID).
		Select("name", "sku", "type", "manufacturer", "price", "quantity", "expiry_date").
		Updates(item)
	if result.Error != nil {
		return fmt.Errorf("failed to update stock item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("stock item %s: %w", item.MedicineID, models.ErrNotFound)
	}
	return nil
}

func (r *stockRepository) Delete(ctx context.Context, medicineID string) error {
	result := r.db.WithContext(ctx).Delete(&models.StockItem{}, "medicine_id = ?", medicineID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete stock item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("stock item %s: %w", medicineID, models.ErrNotFound)
	}
	return nil
}

func (r *stockRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.StockItem{}).Count(&count).Error
	return count, err
}

func (r *stockRepository) CountLowStock(ctx context.Context, threshold int) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.StockItem{}).
		Where("quantity < ?", threshold).Count(&count).Error
	return count, err
}

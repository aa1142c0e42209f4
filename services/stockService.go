package services

import (
	"CluCare/models"
	"CluCare/repositories"
	"CluCare/utils"
	"context"
	"fmt"
	"strings"
)

type StockService interface {
	Add(ctx context.Context, item *models.StockItem) error
	List(ctx context.Context) ([]models.StockItem, error)
	Update(ctx context.Context, item *models.StockItem) error
	Remove(ctx context.Context, medicineID string) error
}

type stockService struct {
	stock repositories.StockRepository
}

func NewStockService(stock repositories.StockRepository) StockService {
	return &stockService{stock: stock}
}

func validateStockItem(item *models.StockItem) error {
	item.Name = strings.TrimSpace(item.Name)
	if err := utils.ValidateStockItem(*item); err != nil {
		return fmt.Errorf("%v: %w", err, models.ErrValidation)
	}
	return nil
}

func (s *stockService) Add(ctx context.Context, item *models.StockItem) error {
	if err := validateStockItem(item); err != nil {
		return err
	}
	return s.stock.Create(ctx, item)
}

func (s *stockService) List(ctx context.Context) ([]models.StockItem, error) {
	return s.stock.GetAll(ctx)
}

func (s *stockService) Update(ctx context.Context, item *models.StockItem) error {
	if item.MedicineID == "" {
		return fmt.Errorf("medicineId is required: %w", models.ErrValidation)
	}
	if err := validateStockItem(item); err != nil {
		return err
	}
	return s.stock.Update(ctx, item)
}

func (s *stockService) Remove(ctx context.Context, medicineID string) error {
	return s.stock.Delete(ctx, medicineID)
}

package repositories

import (
	"CluCare/cache"
	"CluCare/models"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

const (
	WardCacheExpiry = 12 * time.Hour
	wardsCacheKey   = "wards_cache"
)

// WardRepository reads the ward topology. Wards change rarely, so reads are
// cache-aside.
type WardRepository interface {
	GetAll(ctx context.Context) ([]models.Ward, error)
	GetByType(ctx context.Context, wardType string) ([]models.Ward, error)
}

type wardRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewWardRepository(db *gorm.DB, cache *cache.Cache) WardRepository {
	return &wardRepository{db: db, cache: cache}
}

func (r *wardRepository) GetAll(ctx context.Context) ([]models.Ward, error) {
	cached, err := r.cache.Get(ctx, wardsCacheKey)
	if err == nil {
		var wards []models.Ward
		if err := json.Unmarshal([]byte(cached), &wards); err == nil {
			return wards, nil
		}
	} else if err != redis.Nil {
		log.Printf("Failed to get wards from cache: %v", err)
	}

	var wards []models.Ward
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&wards).Error; err != nil {
		return nil, fmt.Errorf("failed to get wards: %w", err)
	}

	wardsJSON, err := json.Marshal(wards)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal wards: %w", err)
	}
	if err := r.cache.Set(ctx, wardsCacheKey, wardsJSON, WardCacheExpiry); err != nil {
		log.Printf("Failed to set wards in cache: %v", err)
	}

	return wards, nil
}

func (r *wardRepository) GetByType(ctx context.Context, wardType string) ([]models.Ward, error) {
	var wards []models.Ward
	err := r.db.WithContext(ctx).
		Where("type = ?", wardType).
		Order("id ASC").
		Find(&wards).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get wards by type: %w", err)
	}
	return wards, nil
}

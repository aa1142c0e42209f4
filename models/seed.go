package models

import (
	"gorm.io/gorm"
)

// SeedWards inserts the baseline ward topology: five wards of ten beds each.
func SeedWards(db *gorm.DB) error {
	initialWards := []Ward{
		{ID: 1, Name: "Ward 1", Specialty: "General Medicine", Type: "general", BedsTotal: 10},
		{ID: 2, Name: "Ward 2", Specialty: "Cardiology", Type: "general", BedsTotal: 10},
		{ID: 3, Name: "Ward 3", Specialty: "Orthopedics", Type: "general", BedsTotal: 10},
		{ID: 4, Name: "Ward 4", Specialty: "Pediatrics", Type: "general", BedsTotal: 10},
		{ID: 5, Name: "Ward 5", Specialty: "Emergency", Type: "emergency", BedsTotal: 10},
	}
	return db.Transaction(func(tx *gorm.DB) error {
		for _, ward := range initialWards {
			if err := tx.FirstOrCreate(&ward, Ward{ID: ward.ID}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

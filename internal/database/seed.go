package database

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/lenarsag/foodgram/backend/internal/logging"
	"github.com/lenarsag/foodgram/backend/internal/models"
)

// ReferenceData is the tag and ingredient catalogue loaded by the seed command.
type ReferenceData struct {
	Tags []struct {
		Name string `yaml:"name"`
		Slug string `yaml:"slug"`
	} `yaml:"tags"`
	Ingredients []struct {
		Name string `yaml:"name"`
		Unit string `yaml:"measurement_unit"`
	} `yaml:"ingredients"`
}

// LoadReferenceData reads a YAML catalogue from path.
func LoadReferenceData(path string) (*ReferenceData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var data ReferenceData
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &data, nil
}

// SeedReference inserts the catalogue in batches. Rows that already exist
// are left untouched, so seeding twice is harmless. It returns the number
// of tags and ingredients actually inserted.
func SeedReference(ctx context.Context, db *gorm.DB, data *ReferenceData) (tags, ingredients int64, err error) {
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(data.Tags) > 0 {
			rows := make([]models.Tag, len(data.Tags))
			for i, t := range data.Tags {
				rows[i] = models.Tag{Name: t.Name, Slug: t.Slug}
			}
			res := tx.Clauses(clause.OnConflict{DoNothing: true}).CreateInBatches(&rows, 500)
			if res.Error != nil {
				return fmt.Errorf("failed to seed tags: %w", res.Error)
			}
			tags = res.RowsAffected
		}
		if len(data.Ingredients) > 0 {
			rows := make([]models.Ingredient, len(data.Ingredients))
			for i, ing := range data.Ingredients {
				rows[i] = models.Ingredient{Name: ing.Name, MeasurementUnit: ing.Unit}
			}
			res := tx.Clauses(clause.OnConflict{DoNothing: true}).CreateInBatches(&rows, 500)
			if res.Error != nil {
				return fmt.Errorf("failed to seed ingredients: %w", res.Error)
			}
			ingredients = res.RowsAffected
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	logging.Info().Int64("tags", tags).Int64("ingredients", ingredients).Msg("reference data seeded")
	return tags, ingredients, nil
}

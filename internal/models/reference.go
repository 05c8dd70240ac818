package models

// Tag and Ingredient are reference data. Recipes link to them but never create them.

type Tag struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:200;not null;uniqueIndex:uix_tags_name_slug" json:"name"`
	Slug string `gorm:"size:200;not null;uniqueIndex;uniqueIndex:uix_tags_name_slug" json:"slug"`
}

type Ingredient struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	Name            string `gorm:"size:200;not null;uniqueIndex:uix_ingredients_name_unit" json:"name"`
	MeasurementUnit string `gorm:"size:200;not null;uniqueIndex:uix_ingredients_name_unit" json:"measurement_unit"`
}

package entities

import "github.com/google/uuid"

type Tag struct {
	ID    uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name  string    `gorm:"uniqueIndex;size:200;not null" json:"name"`
	Color string    `gorm:"uniqueIndex;size:7;not null" json:"color"`
	Slug  string    `gorm:"uniqueIndex;size:200;not null" json:"slug"`
}

type Ingredient struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name            string    `gorm:"index;size:200;not null" json:"name"`
	MeasurementUnit string    `gorm:"size:200;not null" json:"measurement_unit"`
}

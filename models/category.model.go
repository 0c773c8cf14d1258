package models

import "gorm.io/gorm"

type Category struct {
	gorm.Model
	Name      string `gorm:"unique;not null" json:"name"`
	Slug      string `gorm:"unique;not null" json:"slug"`
	SortOrder int    `gorm:"default:0" json:"sort_order"`
}

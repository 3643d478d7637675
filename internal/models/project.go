package models

import "github.com/lib/pq"

type Project struct {
	Meta

	Title       string         `gorm:"column:title;type:text" json:"title"`
	Description string         `gorm:"column:description;type:text" json:"description"`
	ImageURL    string         `gorm:"column:image_url;type:text" json:"image_url"`
	Tags        pq.StringArray `gorm:"column:tags;type:text[]" json:"tags"`
	Link        string         `gorm:"column:link;type:text" json:"link"`

	// Featured projects are a filtered view over this flag, never a
	// separate list.
	IsFeatured bool `gorm:"column:is_featured" json:"is_featured"`
}

func (Project) TableName() string { return "projects" }

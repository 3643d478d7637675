package models

import "github.com/lib/pq"

type Experience struct {
	Meta

	Role    string `gorm:"column:role;type:text" json:"role"`
	Company string `gorm:"column:company;type:text" json:"company"`

	// free-text range, ex: "2021 - Present"
	Period       string         `gorm:"column:period;type:text" json:"period"`
	Description  string         `gorm:"column:description;type:text" json:"description"`
	Technologies pq.StringArray `gorm:"column:technologies;type:text[]" json:"technologies"`
}

func (Experience) TableName() string { return "experiences" }

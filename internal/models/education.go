package models

type Education struct {
	Meta

	Degree      string `gorm:"column:degree;type:text" json:"degree"`
	Institution string `gorm:"column:institution;type:text" json:"institution"`
	Period      string `gorm:"column:period;type:text" json:"period"`
	Description string `gorm:"column:description;type:text" json:"description"`
}

func (Education) TableName() string { return "educations" }

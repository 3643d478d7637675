package models

import "github.com/lib/pq"

// Skill icon keys are a closed, presentational set; anything outside it
// is rejected before the row is written.
var SkillIcons = []string{
	"code", "server", "database", "cloud", "mobile", "design", "terminal", "globe",
}

func ValidSkillIcon(key string) bool {
	for _, k := range SkillIcons {
		if k == key {
			return true
		}
	}
	return false
}

type Skill struct {
	Meta

	Title        string         `gorm:"column:title;type:text" json:"title"`
	Description  string         `gorm:"column:description;type:text" json:"description"`
	Icon         string         `gorm:"column:icon;type:text" json:"icon"`
	Technologies pq.StringArray `gorm:"column:technologies;type:text[]" json:"technologies"`
	Years        int            `gorm:"column:years" json:"years"`

	// 0..100
	Proficiency int `gorm:"column:proficiency" json:"proficiency"`
}

func (Skill) TableName() string { return "skills" }

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// PersonalInfo is a singleton per owner: at most one active row, and
// updates are an upsert keyed on owner_id rather than on the row id.
type PersonalInfo struct {
	ID      string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	OwnerID string `gorm:"column:owner_id;type:uuid;uniqueIndex" json:"owner_id"`

	Name        string `gorm:"column:name;type:text" json:"name"`
	Title       string `gorm:"column:title;type:text" json:"title"`
	Description string `gorm:"column:description;type:text" json:"description"`
	Email       string `gorm:"column:email;type:text" json:"email"`
	Phone       string `gorm:"column:phone;type:text" json:"phone"`
	Whatsapp    string `gorm:"column:whatsapp;type:text" json:"whatsapp"`
	Location    string `gorm:"column:location;type:text" json:"location"`
	AvatarURL   string `gorm:"column:avatar_url;type:text" json:"avatar_url"`
	ResumeURL   string `gorm:"column:resume_url;type:text" json:"resume_url"`

	// social name -> URL, ex: {"github": "...", "linkedin": "..."}
	SocialLinks datatypes.JSONMap `gorm:"column:social_links;type:jsonb" json:"social_links"`

	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz" json:"updated_at"`
}

func (PersonalInfo) TableName() string { return "personal_infos" }

func (p *PersonalInfo) Stamp(ownerID string) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.OwnerID == "" {
		p.OwnerID = ownerID
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
}

func (p *PersonalInfo) RecordID() string { return p.ID }

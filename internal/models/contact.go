package models

// ContactMessage is write-only from the public site and read/delete-only
// from the dashboard; there is no update path.
type ContactMessage struct {
	Meta

	Name    string `gorm:"column:name;type:text" json:"name"`
	Email   string `gorm:"column:email;type:text" json:"email"`
	Phone   string `gorm:"column:phone;type:text" json:"phone"`
	Subject string `gorm:"column:subject;type:text" json:"subject"`
	Message string `gorm:"column:message;type:text" json:"message"`
}

func (ContactMessage) TableName() string { return "contact_messages" }

package models

type Stat struct {
	Meta

	Title string `gorm:"column:title;type:text" json:"title"`

	// non-negative; the public site animates it on display
	Value  int    `gorm:"column:value" json:"value"`
	Suffix string `gorm:"column:suffix;type:text" json:"suffix"`
	Icon   string `gorm:"column:icon;type:text" json:"icon"`
}

func (Stat) TableName() string { return "stats" }

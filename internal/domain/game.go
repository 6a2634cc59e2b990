// Package domain defines the persistent entities of the game catalog.
package domain

import "time"

// Game is one catalog entry. Only the title is mandatory; every other
// descriptive field is optional and stored as NULL when unknown, so the
// API can distinguish "not provided" from a zero value.
type Game struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Platform    *string   `gorm:"type:varchar(100)" json:"platform"`
	Genre       *string   `gorm:"type:varchar(100)" json:"genre"`
	ReleaseYear *int      `json:"release_year"`
	Price       *float64  `json:"price"`
	Region      *string   `gorm:"type:varchar(50)" json:"region"`
	Publisher   *string   `gorm:"type:varchar(255)" json:"publisher"`
	Opened      bool      `gorm:"default:false" json:"opened"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName keeps the singular table name of the existing schema.
func (Game) TableName() string {
	return "game"
}

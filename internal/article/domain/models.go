package domain

import "time"

// Article is a single classifieds listing.
//
// Timestamps are managed by the service layer: created_at is fixed at
// insertion and updated_at stays null until the first update.
type Article struct {
	ID           int64      `gorm:"primaryKey" json:"id"`
	Title        string     `gorm:"size:255;not null;index" json:"title"`
	Description  *string    `gorm:"type:text" json:"description"`
	Price        float64    `gorm:"not null" json:"price"`
	Category     *string    `gorm:"size:100;index" json:"category"`
	Location     *string    `gorm:"size:255" json:"location"`
	ContactEmail *string    `gorm:"size:255" json:"contact_email"`
	CreatedAt    time.Time  `gorm:"not null;index;autoCreateTime:false" json:"created_at"`
	UpdatedAt    *time.Time `gorm:"autoUpdateTime:false" json:"updated_at"`
}

func (Article) TableName() string {
	return "articles"
}

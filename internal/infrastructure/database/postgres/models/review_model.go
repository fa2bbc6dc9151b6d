package models

import (
	"time"

	"github.com/google/uuid"
)

// ReviewModel represents the database model for Reviews
type ReviewModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	BookingID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null"`
	WorkerID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Rating     int       `gorm:"type:integer;not null;check:rating >= 1 AND rating <= 5"`
	Comment    string    `gorm:"type:text;not null;default:''"`
	CreatedAt  time.Time `gorm:"not null;index"`
}

func (ReviewModel) TableName() string {
	return "reviews"
}

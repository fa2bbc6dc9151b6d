package models

import (
	"time"

	domainUser "skillconnect/internal/domain/user"

	"github.com/google/uuid"
)

// BookingModel represents the database model for Bookings
type BookingModel struct {
	ID            uuid.UUID           `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CustomerID    uuid.UUID           `gorm:"type:uuid;not null;index"`
	WorkerID      uuid.UUID           `gorm:"type:uuid;not null;index"`
	Category      string              `gorm:"type:varchar(50);not null"`
	Title         string              `gorm:"type:varchar(255);not null"`
	Description   string              `gorm:"type:text;not null"`
	ScheduledDate time.Time           `gorm:"type:timestamptz;not null"`
	ScheduledTime string              `gorm:"type:varchar(50);not null"`
	Location      domainUser.Location `gorm:"type:jsonb;serializer:json;not null"`
	Status        string              `gorm:"type:varchar(20);not null;default:'pending';index"`
	Price         *float64            `gorm:"type:decimal(12,2)"`
	Images        []string            `gorm:"type:jsonb;serializer:json"`
	Reason        *string             `gorm:"type:text"`
	CreatedAt     time.Time           `gorm:"not null;index"`
	UpdatedAt     time.Time           `gorm:"not null"`
	CompletedAt   *time.Time          `gorm:"type:timestamptz"`
}

func (BookingModel) TableName() string {
	return "bookings"
}

package models

import (
	"time"

	domainUser "skillconnect/internal/domain/user"

	"github.com/google/uuid"
)

// UserModel represents the database model for User. Worker columns are
// nullable and only populated for type = 'worker'.
type UserModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name         string    `gorm:"type:varchar(255);not null;default:''"`
	Email        string    `gorm:"type:varchar(255);not null;default:''"`
	Phone        string    `gorm:"type:varchar(20);not null;uniqueIndex"`
	Type         string    `gorm:"type:varchar(20);not null;default:'customer';index"`
	IsVerified   bool      `gorm:"default:false;not null"`
	ProfileImage *string   `gorm:"type:text"`

	Category       *string                    `gorm:"type:varchar(50);index"`
	Skills         []string                   `gorm:"type:jsonb;serializer:json"`
	Experience     int                        `gorm:"type:integer;default:0;not null"`
	HourlyRate     float64                    `gorm:"type:decimal(12,2);default:0;not null"`
	Location       *domainUser.Location       `gorm:"type:jsonb;serializer:json"`
	Availability   *string                    `gorm:"type:varchar(20);index"`
	Rating         float64                    `gorm:"type:decimal(3,2);default:0;not null;index"`
	ReviewCount    int                        `gorm:"type:integer;default:0;not null"`
	Portfolio      []domainUser.PortfolioItem `gorm:"type:jsonb;serializer:json"`
	Certifications []string                   `gorm:"type:jsonb;serializer:json"`
	Guarantor      *domainUser.Guarantor      `gorm:"type:jsonb;serializer:json"`
	IDVerification *domainUser.IDVerification `gorm:"type:jsonb;serializer:json"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (UserModel) TableName() string {
	return "users"
}

// CategoryCountRow is the scan target for per-category aggregates
type CategoryCountRow struct {
	Category string
	Count    int
}

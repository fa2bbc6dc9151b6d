package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	domainBooking "skillconnect/internal/domain/booking"
	domainUser "skillconnect/internal/domain/user"
	"skillconnect/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingRepository struct {
	db *DB
}

func NewBookingRepository(db *DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Create(ctx context.Context, b *domainBooking.Booking) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	now := time.Now()
	b.CreatedAt = now
	b.UpdatedAt = now
	if b.Status == "" {
		b.Status = domainBooking.StatusPending
	}

	dbModel := toBookingModel(b)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	b.ID = dbModel.ID
	b.CreatedAt = dbModel.CreatedAt
	b.UpdatedAt = dbModel.UpdatedAt

	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, bookingID uuid.UUID) (*domainBooking.Booking, error) {
	var dbModel models.BookingModel
	err := r.db.DB.WithContext(ctx).Where("id = ?", bookingID).First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainBooking.ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	return toBookingEntity(&dbModel), nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, bookingID uuid.UUID, update *domainBooking.StatusUpdate) (*domainBooking.Booking, error) {
	fields := map[string]interface{}{
		"status":     string(update.Status),
		"updated_at": time.Now(),
	}
	if update.Reason != nil {
		fields["reason"] = *update.Reason
	}
	if update.Price != nil {
		fields["price"] = *update.Price
	}
	if update.CompletedAt != nil {
		fields["completed_at"] = *update.CompletedAt
	}

	var updated *domainBooking.Booking
	err := r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.BookingModel{}).
			Where("id = ? AND status = ?", bookingID, string(update.From)).
			Updates(fields)
		if result.Error != nil {
			return fmt.Errorf("failed to update booking status: %w", result.Error)
		}

		var dbModel models.BookingModel
		err := tx.Where("id = ?", bookingID).First(&dbModel).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domainBooking.ErrBookingNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to reload booking: %w", err)
		}
		if result.RowsAffected == 0 {
			return domainBooking.ErrStatusChanged
		}

		updated = toBookingEntity(&dbModel)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (r *BookingRepository) List(ctx context.Context, filter *domainBooking.Filter) ([]*domainBooking.Booking, error) {
	db := r.db.DB.WithContext(ctx).Model(&models.BookingModel{})

	if filter != nil {
		if filter.CustomerID != nil {
			db = db.Where("customer_id = ?", *filter.CustomerID)
		}
		if filter.WorkerID != nil {
			db = db.Where("worker_id = ?", *filter.WorkerID)
		}
		if filter.Status != nil {
			db = db.Where("status = ?", string(*filter.Status))
		}
	}

	var dbModels []models.BookingModel
	if err := db.Order("created_at DESC").Find(&dbModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	bookings := make([]*domainBooking.Booking, len(dbModels))
	for i := range dbModels {
		bookings[i] = toBookingEntity(&dbModels[i])
	}
	return bookings, nil
}

func toBookingModel(b *domainBooking.Booking) *models.BookingModel {
	return &models.BookingModel{
		ID:            b.ID,
		CustomerID:    b.CustomerID,
		WorkerID:      b.WorkerID,
		Category:      string(b.Category),
		Title:         b.Title,
		Description:   b.Description,
		ScheduledDate: b.ScheduledDate,
		ScheduledTime: b.ScheduledTime,
		Location:      b.Location,
		Status:        string(b.Status),
		Price:         b.Price,
		Images:        b.Images,
		Reason:        b.Reason,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
		CompletedAt:   b.CompletedAt,
	}
}

func toBookingEntity(m *models.BookingModel) *domainBooking.Booking {
	return &domainBooking.Booking{
		ID:            m.ID,
		CustomerID:    m.CustomerID,
		WorkerID:      m.WorkerID,
		Category:      domainUser.Category(m.Category),
		Title:         m.Title,
		Description:   m.Description,
		ScheduledDate: m.ScheduledDate,
		ScheduledTime: m.ScheduledTime,
		Location:      m.Location,
		Status:        domainBooking.Status(m.Status),
		Price:         m.Price,
		Images:        m.Images,
		Reason:        m.Reason,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
		CompletedAt:   m.CompletedAt,
	}
}

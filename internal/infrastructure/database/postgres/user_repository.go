package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	domainUser "skillconnect/internal/domain/user"
	"skillconnect/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRepository implements domainUser.Repository on gorm
type UserRepository struct {
	db *DB
}

func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *domainUser.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
	if u.Type == "" {
		u.Type = domainUser.TypeCustomer
	}

	dbModel := toUserModel(u)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		if isUniqueViolation(err) {
			return domainUser.ErrUserAlreadyExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	u.ID = dbModel.ID
	u.CreatedAt = dbModel.CreatedAt
	u.UpdatedAt = dbModel.UpdatedAt

	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, userID uuid.UUID) (*domainUser.User, error) {
	var dbModel models.UserModel
	err := r.db.DB.WithContext(ctx).First(&dbModel, "id = ?", userID).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainUser.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return toUserEntity(&dbModel), nil
}

func (r *UserRepository) GetByIDs(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID]*domainUser.User, error) {
	result := make(map[uuid.UUID]*domainUser.User, len(userIDs))
	if len(userIDs) == 0 {
		return result, nil
	}

	var dbModels []models.UserModel
	if err := r.db.DB.WithContext(ctx).Where("id IN ?", userIDs).Find(&dbModels).Error; err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}

	for i := range dbModels {
		result[dbModels[i].ID] = toUserEntity(&dbModels[i])
	}
	return result, nil
}

func (r *UserRepository) GetByPhone(ctx context.Context, phone string) (*domainUser.User, error) {
	var dbModel models.UserModel
	err := r.db.DB.WithContext(ctx).Where("phone = ?", phone).First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainUser.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return toUserEntity(&dbModel), nil
}

func (r *UserRepository) Update(ctx context.Context, u *domainUser.User) error {
	u.UpdatedAt = time.Now()
	m := toUserModel(u)

	result := r.db.DB.WithContext(ctx).
		Model(&models.UserModel{}).
		Where("id = ?", u.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(m)

	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return domainUser.ErrUserAlreadyExists
		}
		return fmt.Errorf("failed to update user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainUser.ErrUserNotFound
	}

	return nil
}

func (r *UserRepository) UpdateAvailability(ctx context.Context, userID uuid.UUID, availability domainUser.Availability) error {
	result := r.db.DB.WithContext(ctx).
		Model(&models.UserModel{}).
		Where("id = ? AND type = ?", userID, string(domainUser.TypeWorker)).
		Updates(map[string]interface{}{
			"availability": string(availability),
			"updated_at":   time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update availability: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainUser.ErrUserNotFound
	}

	return nil
}

func (r *UserRepository) ListWorkers(ctx context.Context, filter *domainUser.WorkerFilter) ([]*domainUser.User, error) {
	db := r.db.DB.WithContext(ctx).
		Model(&models.UserModel{}).
		Where("type = ?", string(domainUser.TypeWorker))

	if filter != nil {
		if filter.Category != nil {
			db = db.Where("category = ?", string(*filter.Category))
		}
		if filter.Availability != nil {
			db = db.Where("availability = ?", string(*filter.Availability))
		}
		if filter.MinRating != nil {
			db = db.Where("rating >= ?", *filter.MinRating)
		}
		if filter.VerifiedOnly {
			db = db.Where("is_verified = ?", true)
		}
		if filter.OrderByRating {
			db = db.Order("rating DESC").Order("review_count DESC")
		}
		if filter.Limit > 0 {
			db = db.Limit(filter.Limit)
		}
	}

	var dbModels []models.UserModel
	if err := db.Find(&dbModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list workers: %w", err)
	}

	workers := make([]*domainUser.User, len(dbModels))
	for i := range dbModels {
		workers[i] = toUserEntity(&dbModels[i])
	}
	return workers, nil
}

func (r *UserRepository) CountAvailableByCategory(ctx context.Context) ([]domainUser.CategoryCount, error) {
	var rows []models.CategoryCountRow
	err := r.db.DB.WithContext(ctx).
		Model(&models.UserModel{}).
		Select("category, COUNT(*) AS count").
		Where("type = ? AND availability = ? AND category IS NOT NULL AND category <> ''",
			string(domainUser.TypeWorker), string(domainUser.AvailabilityAvailable)).
		Group("category").
		Order("category").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count workers by category: %w", err)
	}

	counts := make([]domainUser.CategoryCount, len(rows))
	for i, row := range rows {
		counts[i] = domainUser.CategoryCount{
			Category: domainUser.Category(row.Category),
			Count:    row.Count,
		}
	}
	return counts, nil
}

// Helper functions to convert between domain entities and database models

func toUserModel(u *domainUser.User) *models.UserModel {
	m := &models.UserModel{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Phone:        u.Phone,
		Type:         string(u.Type),
		IsVerified:   u.IsVerified,
		ProfileImage: u.ProfileImage,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}

	if w := u.Worker; w != nil {
		category := string(w.Category)
		availability := string(w.Availability)
		m.Category = &category
		m.Availability = &availability
		m.Skills = w.Skills
		m.Experience = w.Experience
		m.HourlyRate = w.HourlyRate
		m.Location = w.Location
		m.Rating = w.Rating
		m.ReviewCount = w.ReviewCount
		m.Portfolio = w.Portfolio
		m.Certifications = w.Certifications
		m.Guarantor = w.Guarantor
		m.IDVerification = w.IDVerification
	}

	return m
}

func toUserEntity(m *models.UserModel) *domainUser.User {
	u := &domainUser.User{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		Phone:        m.Phone,
		Type:         domainUser.Type(m.Type),
		IsVerified:   m.IsVerified,
		ProfileImage: m.ProfileImage,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}

	if u.Type == domainUser.TypeWorker {
		w := &domainUser.WorkerProfile{
			Skills:         m.Skills,
			Experience:     m.Experience,
			HourlyRate:     m.HourlyRate,
			Location:       m.Location,
			Rating:         m.Rating,
			ReviewCount:    m.ReviewCount,
			Portfolio:      m.Portfolio,
			Certifications: m.Certifications,
			Guarantor:      m.Guarantor,
			IDVerification: m.IDVerification,
		}
		if m.Category != nil {
			w.Category = domainUser.Category(*m.Category)
		}
		if m.Availability != nil {
			w.Availability = domainUser.Availability(*m.Availability)
		}
		u.Worker = w
	}

	return u
}

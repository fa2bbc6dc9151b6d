package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"skillconnect/internal/config"
	domainUser "skillconnect/internal/domain/user"
	"skillconnect/internal/infrastructure/otpstore"
	"skillconnect/internal/logger"
	"skillconnect/internal/sms"
	userUsecase "skillconnect/internal/usecase/user"
	"skillconnect/internal/validator"
	appErrors "skillconnect/pkg/errors"
	"skillconnect/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OTPStore holds pending codes keyed by normalised phone number
type OTPStore interface {
	Save(phone, hash string, ttl time.Duration) otpstore.Record
	Get(phone string) (rec otpstore.Record, expired bool, ok bool)
	Consume(phone, hash string) bool
}

// Service implements phone login and profile registration
type Service struct {
	userRepo domainUser.Repository
	otps     OTPStore
	sender   sms.Sender
	config   *config.Config

	generateCode func(length int) (string, error)
}

func NewService(
	userRepo domainUser.Repository,
	otps OTPStore,
	sender sms.Sender,
	cfg *config.Config,
) *Service {
	return &Service{
		userRepo:     userRepo,
		otps:         otps,
		sender:       sender,
		config:       cfg,
		generateCode: utils.GenerateNumericCode,
	}
}

func (s *Service) SendOTP(ctx context.Context, req *SendOTPRequest) (*SendOTPResponse, error) {
	if err := validator.ValidateStruct(req); err != nil {
		return nil, err
	}
	phone := utils.NormalizePhone(req.Phone)

	code, err := s.generateCode(s.config.OTP.Length)
	if err != nil {
		return nil, fmt.Errorf("failed to generate otp: %w", err)
	}
	hash, err := utils.HashCode(code)
	if err != nil {
		return nil, fmt.Errorf("failed to hash otp: %w", err)
	}

	s.otps.Save(phone, hash, s.config.OTP.TTL)

	body := fmt.Sprintf("Your SkillConnect verification code is: %s", code)
	if err := s.sender.Send(ctx, phone, body); err != nil {
		return nil, fmt.Errorf("failed to send otp: %w", err)
	}

	logger.Info("OTP sent",
		zap.String("phone", phone),
		zap.Duration("ttl", s.config.OTP.TTL),
		zap.String("event", "otp_sent"),
	)

	resp := &SendOTPResponse{ExpiresIn: int(s.config.OTP.TTL / time.Second)}
	if s.config.OTP.ExposeInDemo && !s.config.Server.IsProduction() {
		resp.Code = code
	}
	return resp, nil
}

func (s *Service) VerifyOTP(ctx context.Context, req *VerifyOTPRequest) (*VerifyOTPResponse, error) {
	if err := validator.ValidateStruct(req); err != nil {
		return nil, err
	}
	if n := s.config.OTP.Length; n > 0 && len(req.OTP) != n {
		return nil, appErrors.NewValidationError("Validation failed", appErrors.FieldError{
			Field:   "otp",
			Message: fmt.Sprintf("must be %d digits", n),
		})
	}
	phone := utils.NormalizePhone(req.Phone)

	rec, expired, ok := s.otps.Get(phone)
	if !ok {
		return nil, appErrors.NewNotFoundError("OTP not found or expired", nil)
	}
	if expired {
		logger.Warn("Expired OTP presented",
			zap.String("phone", phone),
			zap.String("event", "otp_expired"),
		)
		return nil, appErrors.NewAppError(appErrors.CodeOTPExpired, "OTP has expired", nil)
	}
	if !utils.CheckCode(rec.Hash, req.OTP) {
		logger.Warn("Invalid OTP presented",
			zap.String("phone", phone),
			zap.String("event", "otp_invalid"),
		)
		return nil, appErrors.NewAppError(appErrors.CodeOTPInvalid, "Invalid OTP", nil)
	}
	// A concurrent verify or resend got there first
	if !s.otps.Consume(phone, rec.Hash) {
		return nil, appErrors.NewNotFoundError("OTP not found or expired", nil)
	}

	user, isNew, err := s.findOrCreate(ctx, phone)
	if err != nil {
		return nil, err
	}

	token, err := s.issueToken(user.ID, user.Phone, user.Type)
	if err != nil {
		return nil, err
	}

	logger.Info("OTP verified",
		zap.String("user_id", user.ID.String()),
		zap.Bool("new_user", isNew),
		zap.String("event", "otp_verified"),
	)

	return &VerifyOTPResponse{
		AuthResponse: AuthResponse{
			User:      userUsecase.ToUserResponse(user),
			Token:     token.Token,
			ExpiresAt: token.ExpiresAt,
		},
		IsNewUser: isNew,
	}, nil
}

func (s *Service) findOrCreate(ctx context.Context, phone string) (*domainUser.User, bool, error) {
	user, err := s.userRepo.GetByPhone(ctx, phone)
	if err == nil {
		return user, false, nil
	}
	if !errors.Is(err, domainUser.ErrUserNotFound) {
		return nil, false, fmt.Errorf("failed to look up user: %w", err)
	}

	user = &domainUser.User{
		Phone:      phone,
		Type:       domainUser.TypeCustomer,
		IsVerified: true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domainUser.ErrUserAlreadyExists) {
			existing, getErr := s.userRepo.GetByPhone(ctx, phone)
			if getErr != nil {
				return nil, false, fmt.Errorf("failed to look up user: %w", getErr)
			}
			return existing, false, nil
		}
		return nil, false, fmt.Errorf("failed to create user: %w", err)
	}

	logger.Info("User created",
		zap.String("user_id", user.ID.String()),
		zap.String("event", "user_created"),
	)
	return user, true, nil
}

// Register completes the profile of a user who has already verified their phone
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	if err := validator.ValidateStruct(req); err != nil {
		return nil, err
	}
	phone := utils.NormalizePhone(req.Phone)

	user, err := s.userRepo.GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			return nil, appErrors.NewNotFoundError("User not found. Please verify your phone number first.", err)
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	user.Name = utils.SanitizeString(req.Name)
	user.Email = utils.SanitizeEmail(req.Email)
	user.Type = req.UserType()
	if req.ProfileImage != nil {
		img := *req.ProfileImage
		user.ProfileImage = &img
	}

	if user.Type == domainUser.TypeWorker {
		user.Worker = buildWorkerProfile(req, user.Worker)
	} else {
		user.Worker = nil
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	token, err := s.issueToken(user.ID, user.Phone, user.Type)
	if err != nil {
		return nil, err
	}

	logger.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("type", string(user.Type)),
		zap.String("event", "user_registered"),
	)

	return &AuthResponse{
		User:      userUsecase.ToUserResponse(user),
		Token:     token.Token,
		ExpiresAt: token.ExpiresAt,
	}, nil
}

// buildWorkerProfile seeds a new profile as available with no rating. An
// existing profile keeps its rating, review count and availability.
func buildWorkerProfile(req *RegisterRequest, existing *domainUser.WorkerProfile) *domainUser.WorkerProfile {
	w := &domainUser.WorkerProfile{
		Category:       domainUser.Category(req.Category),
		Skills:         sanitizeAll(req.Skills),
		Experience:     req.Experience,
		HourlyRate:     req.HourlyRate,
		Availability:   domainUser.AvailabilityAvailable,
		Certifications: sanitizeAll(req.Certifications),
	}
	if existing != nil {
		w.Availability = existing.Availability
		w.Rating = existing.Rating
		w.ReviewCount = existing.ReviewCount
	}
	if req.Location != nil {
		loc := req.Location.ToDomain()
		w.Location = &loc
	}
	for _, item := range req.Portfolio {
		p := domainUser.PortfolioItem{
			ID:          uuid.NewString(),
			Title:       utils.SanitizeString(item.Title),
			Description: utils.SanitizeText(item.Description),
			ImageURL:    item.ImageURL,
		}
		if item.CompletedAt != "" {
			if at, err := validator.ParseISODate(item.CompletedAt); err == nil {
				p.CompletedAt = &at
			}
		}
		w.Portfolio = append(w.Portfolio, p)
	}
	if g := req.Guarantor; g != nil {
		w.Guarantor = &domainUser.Guarantor{
			Name:         utils.SanitizeString(g.Name),
			Phone:        utils.NormalizePhone(g.Phone),
			Relationship: utils.SanitizeString(g.Relationship),
			IDNumber:     g.IDNumber,
		}
	}
	if v := req.IDVerification; v != nil {
		w.IDVerification = &domainUser.IDVerification{
			IDType:     v.IDType,
			IDNumber:   v.IDNumber,
			IDImageURL: v.IDImageURL,
			Status:     "pending",
		}
	}
	return w
}

func sanitizeAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, utils.SanitizeString(s))
	}
	return out
}

// RefreshToken exchanges a valid token for a fresh one with the same claims
func (s *Service) RefreshToken(_ context.Context, req *RefreshTokenRequest) (*RefreshTokenResponse, error) {
	if err := validator.ValidateStruct(req); err != nil {
		return nil, appErrors.NewUnauthorizedError("No token provided", err)
	}

	claims, err := utils.ValidateToken(req.Token, s.config.JWT.Secret)
	if err != nil {
		logger.Warn("Refresh with invalid token",
			zap.Error(err),
			zap.String("event", "token_refresh_failed"),
		)
		return nil, appErrors.NewUnauthorizedError("Invalid token", appErrors.ErrInvalidToken)
	}

	token, err := s.issueToken(claims.UserID, claims.Phone, domainUser.Type(claims.Type))
	if err != nil {
		return nil, err
	}

	logger.Debug("Token refreshed",
		zap.String("user_id", claims.UserID.String()),
		zap.String("event", "token_refreshed"),
	)

	return &RefreshTokenResponse{Token: token.Token, ExpiresAt: token.ExpiresAt}, nil
}

func (s *Service) issueToken(userID uuid.UUID, phone string, userType domainUser.Type) (*utils.TokenResult, error) {
	if userType == "" {
		userType = domainUser.TypeCustomer
	}
	token, err := utils.GenerateToken(userID, phone, string(userType), s.config.JWT.Secret, s.config.JWT.ExpiryHours)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}

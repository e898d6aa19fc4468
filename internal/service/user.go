package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/htmw/2025Su-ByteSquad/internal/auth"
	"github.com/htmw/2025Su-ByteSquad/internal/domain"
	"github.com/htmw/2025Su-ByteSquad/internal/event"
	"github.com/htmw/2025Su-ByteSquad/internal/repository"
	apperrors "github.com/htmw/2025Su-ByteSquad/pkg/errors"
)

// bcryptCost is the work factor for password hashing.
const bcryptCost = 12

// RegisterInput holds the parameters for creating a new account.
type RegisterInput struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
}

// LoginInput holds the credentials for signing in.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileInput holds the mutable fitness-profile fields. Nil pointers
// leave the stored value unchanged.
type UpdateProfileInput struct {
	FirstName   *string  `json:"first_name,omitempty"`
	LastName    *string  `json:"last_name,omitempty"`
	HeightCm    *float64 `json:"height_cm,omitempty" validate:"omitempty,gt=0"`
	WeightKg    *float64 `json:"weight_kg,omitempty" validate:"omitempty,gt=0"`
	FitnessGoal *string  `json:"fitness_goal,omitempty" validate:"omitempty,oneof='weight loss' 'muscle gain' maintenance"`
	Age         *int     `json:"age,omitempty" validate:"omitempty,gt=0,lt=120"`
}

// ChangePasswordInput holds the current and replacement passwords.
type ChangePasswordInput struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// AuthResult is returned from Register and Login.
type AuthResult struct {
	User        *domain.User `json:"user"`
	AccessToken string       `json:"access_token"`
}

// UserService implements account registration, authentication, and profile
// management.
type UserService struct {
	repo     repository.UserRepository
	jwt      *auth.JWTManager
	producer *event.Producer
	logger   *slog.Logger
}

// NewUserService creates a new user service.
func NewUserService(repo repository.UserRepository, jwt *auth.JWTManager, producer *event.Producer, logger *slog.Logger) *UserService {
	return &UserService{
		repo:     repo,
		jwt:      jwt,
		producer: producer,
		logger:   logger,
	}
}

// Register creates an account, hashes the password, and returns the new user
// with a signed access token. A duplicate email is reported as AlreadyExists.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	email := normalizeEmail(input.Email)
	if email == "" {
		return nil, apperrors.InvalidInput("email is required")
	}
	if len(input.Password) < 8 {
		return nil, apperrors.InvalidInput("password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	if err := s.producer.PublishUserRegistered(ctx, user.ID, user.Email); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish user.registered event",
			slog.String("user_id", user.ID),
			slog.String("error", err.Error()),
		)
	}

	token, err := s.jwt.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	s.logger.InfoContext(ctx, "user registered",
		slog.String("user_id", user.ID),
	)

	return &AuthResult{User: user, AccessToken: token}, nil
}

// Login verifies the credentials and returns the user with a fresh access
// token. Unknown email and wrong password both map to the same Unauthorized
// error so the response does not leak which one was wrong.
func (s *UserService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	email := normalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return nil, apperrors.InvalidInput("email and password are required")
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Unauthorized("invalid email or password")
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, apperrors.Unauthorized("invalid email or password")
	}

	token, err := s.jwt.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	s.logger.InfoContext(ctx, "user logged in",
		slog.String("user_id", user.ID),
	)

	return &AuthResult{User: user, AccessToken: token}, nil
}

// GetProfile returns the user's profile.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	return user, nil
}

// UpdateProfile applies the provided fields to the user's fitness profile.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*domain.User, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}
	if input.FitnessGoal != nil {
		switch *input.FitnessGoal {
		case domain.GoalWeightLoss, domain.GoalMuscleGain, domain.GoalMaintenance:
		default:
			return nil, apperrors.InvalidInput("fitness goal must be one of: weight loss, muscle gain, maintenance")
		}
	}
	if input.HeightCm != nil && *input.HeightCm <= 0 {
		return nil, apperrors.InvalidInput("height must be positive")
	}
	if input.WeightKg != nil && *input.WeightKg <= 0 {
		return nil, apperrors.InvalidInput("weight must be positive")
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user for update: %w", err)
	}

	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.HeightCm != nil {
		user.HeightCm = *input.HeightCm
	}
	if input.WeightKg != nil {
		user.WeightKg = *input.WeightKg
	}
	if input.FitnessGoal != nil {
		user.FitnessGoal = *input.FitnessGoal
	}
	if input.Age != nil {
		user.Age = *input.Age
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	s.logger.InfoContext(ctx, "profile updated",
		slog.String("user_id", userID),
	)

	return user, nil
}

// ChangePassword verifies the current password and stores a hash of the new one.
func (s *UserService) ChangePassword(ctx context.Context, userID string, input ChangePasswordInput) error {
	if userID == "" {
		return apperrors.InvalidInput("user id is required")
	}
	if len(input.NewPassword) < 8 {
		return apperrors.InvalidInput("new password must be at least 8 characters")
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("get user for password change: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.CurrentPassword)); err != nil {
		return apperrors.Unauthorized("current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash new password: %w", err)
	}
	user.PasswordHash = string(hash)

	if err := s.repo.Update(ctx, user); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	s.logger.InfoContext(ctx, "password changed",
		slog.String("user_id", userID),
	)

	return nil
}

// DeleteAccount removes the user.
func (s *UserService) DeleteAccount(ctx context.Context, userID string) error {
	if userID == "" {
		return apperrors.InvalidInput("user id is required")
	}

	if err := s.repo.Delete(ctx, userID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	s.logger.InfoContext(ctx, "account deleted",
		slog.String("user_id", userID),
	)

	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

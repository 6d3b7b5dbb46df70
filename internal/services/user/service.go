// Package user handles registration and profile management.
package user

import (
	"context"
	"errors"
	"fmt"
	"log"

	"tutorlink/internal/models"
	"tutorlink/internal/repositories"
	"tutorlink/internal/services/referral"
	"tutorlink/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken  = errors.New("email is already registered")
	ErrInvalidRole = errors.New("role must be student or tutor")
)

// RegisterInput is the registration request shape.
type RegisterInput struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	ReferralCode string `json:"referral_code"`
}

type Service interface {
	Register(ctx context.Context, input RegisterInput) (*models.User, error)
	GetUser(ctx context.Context, id uint) (*models.User, error)
}

type service struct {
	userRepo  repositories.UserRepository
	referrals referral.Service
}

// NewService creates the user service. The referral service is optional;
// when present, registrations carrying a referral code are tracked.
func NewService(userRepo repositories.UserRepository, referrals referral.Service) Service {
	return &service{
		userRepo:  userRepo,
		referrals: referrals,
	}
}

func (s *service) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	v := validation.New()
	v.Check(validation.ValidEmail(input.Email), "email", "must be a valid email address")
	v.Check(validation.ValidPassword(input.Password), "password", "must be at least 8 characters")
	v.Check(input.Name != "", "name", "is required")
	if !v.Valid() {
		return nil, errors.New(v.First())
	}

	if input.Role == "" {
		input.Role = models.RoleStudent
	}
	if input.Role != models.RoleStudent && input.Role != models.RoleTutor {
		return nil, ErrInvalidRole
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &models.User{
		Email:    input.Email,
		Password: string(hashed),
		Name:     input.Name,
		Role:     input.Role,
	}
	if err := s.userRepo.Create(ctx, u); err != nil {
		if errors.Is(err, repositories.ErrDuplicateRecord) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	// Referral tracking is best-effort: a bad code must not block signup.
	if input.ReferralCode != "" && s.referrals != nil {
		if _, err := s.referrals.TrackReferral(ctx, input.ReferralCode, u.ID); err != nil {
			log.Printf("referral not tracked for user %d: %v", u.ID, err)
		}
	}

	return u, nil
}

func (s *service) GetUser(ctx context.Context, id uint) (*models.User, error) {
	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

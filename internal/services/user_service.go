package services

import (
	"context"
	"fmt"

	"wardrobe-backend/internal/auth"
	"wardrobe-backend/internal/models"
)

// UserStore is the persistence surface the account flows need.
// Implemented by repositories.UserRepository; GetByEmail and GetByPhone
// return (nil, nil) when no row matches.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	Get(ctx context.Context, id int) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByPhone(ctx context.Context, countryCode, phone string) (*models.User, error)
	UpdatePassword(ctx context.Context, id int, passwordHash string) error
	MarkPhoneVerified(ctx context.Context, id int) error
}

type UserService struct {
	UserRepo   UserStore
	JWTManager *auth.JWTManager
}

func NewUserService(userRepo UserStore, jwtManager *auth.JWTManager) *UserService {
	return &UserService{
		UserRepo:   userRepo,
		JWTManager: jwtManager,
	}
}

// Signup creates an account and returns a signed token
func (s *UserService) Signup(ctx context.Context, req *models.SignupRequest) (*models.AuthResponse, error) {
	existing, err := s.UserRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("an account with this email already exists")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		CountryCode:  req.CountryCode,
		PasswordHash: hash,
		IsActive:     true,
	}

	if err := s.UserRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.JWTManager.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &models.AuthResponse{Success: true, Token: token, User: user}, nil
}

// Login authenticates email/password credentials. Failures use a generic
// message so the response doesn't reveal whether the email exists.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	user, err := s.UserRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil || !auth.VerifyPassword(user.PasswordHash, password) {
		return nil, fmt.Errorf("invalid email or password")
	}

	token, err := s.JWTManager.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &models.AuthResponse{Success: true, Token: token, User: user}, nil
}

// LoginByPhone issues a token after a successful OTP validation. The
// caller is responsible for having validated the OTP first.
func (s *UserService) LoginByPhone(ctx context.Context, countryCode, phone string) (*models.AuthResponse, error) {
	user, err := s.UserRepo.GetByPhone(ctx, countryCode, phone)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("no account found for this phone number")
	}

	if !user.PhoneVerified {
		if err := s.UserRepo.MarkPhoneVerified(ctx, user.ID); err != nil {
			return nil, fmt.Errorf("failed to mark phone verified: %w", err)
		}
		user.PhoneVerified = true
	}

	token, err := s.JWTManager.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &models.AuthResponse{Success: true, Token: token, User: user}, nil
}

// ChangePassword verifies the current password before setting a new one
func (s *UserService) ChangePassword(ctx context.Context, userID int, currentPassword, newPassword string) error {
	user, err := s.UserRepo.Get(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}

	if !auth.VerifyPassword(user.PasswordHash, currentPassword) {
		return fmt.Errorf("current password is incorrect")
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.UserRepo.UpdatePassword(ctx, userID, hash)
}

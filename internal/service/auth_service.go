package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"codemingle/internal/auth"
	"codemingle/internal/dto"
	apperrors "codemingle/internal/errors"
	"codemingle/internal/model"
	"codemingle/internal/repository"
)

// demoAccounts maps a demo account type onto the seeded username.
var demoAccounts = map[string]string{
	"admin": "admin",
	"user":  "demo",
}

// AuthService handles authentication operations.
type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error)
	DemoLogin(ctx context.Context, accountType string) (*dto.AuthResponse, error)
	// Refresh rotates the refresh token: the presented one is revoked and a
	// new access/refresh pair is issued.
	Refresh(ctx context.Context, refreshToken string) (*dto.AuthResponse, error)
	// Logout revokes the access token described by claims and, when given,
	// the refresh token.
	Logout(ctx context.Context, claims *auth.Claims, refreshToken string) error
	IsRevoked(ctx context.Context, tokenID string) bool
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
	now        func() time.Time
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService, tokenStore auth.TokenStoreInterface) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		tokenStore: tokenStore,
		now:        time.Now,
	}
}

// Register creates a USER account and signs it in.
func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)
	if username == "" || email == "" || req.Password == "" {
		return nil, apperrors.ErrMissingRegistrationField
	}

	user := &model.User{
		Username:  username,
		Email:     email,
		Role:      model.RoleUser,
		CreatedAt: s.now(),
	}
	if err := createUser(ctx, s.userRepo, user, req.Password); err != nil {
		return nil, err
	}
	return s.issueTokens(ctx, user, "Registration successful")
}

// Login authenticates by username and password.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	return s.issueTokens(ctx, user, "Login successful")
}

// DemoLogin signs in one of the seeded demo accounts without a password.
func (s *authService) DemoLogin(ctx context.Context, accountType string) (*dto.AuthResponse, error) {
	username, ok := demoAccounts[strings.ToLower(strings.TrimSpace(accountType))]
	if !ok {
		return nil, apperrors.ErrInvalidDemoAccount
	}
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrDemoAccountNotFound
		}
		return nil, fmt.Errorf("find demo account %q: %w", username, err)
	}
	return s.issueTokens(ctx, user, "Demo login successful")
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.AuthResponse, error) {
	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperrors.ErrInvalidRefreshToken
	}
	storedUserID, err := s.tokenStore.GetRefreshToken(ctx, claims.ID)
	if err != nil || storedUserID != claims.UserID {
		return nil, apperrors.ErrInvalidRefreshToken
	}
	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidRefreshToken
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if err := s.tokenStore.DeleteRefreshToken(ctx, claims.ID); err != nil {
		return nil, fmt.Errorf("revoke refresh token: %w", err)
	}
	return s.issueTokens(ctx, user, "Token refreshed")
}

func (s *authService) Logout(ctx context.Context, claims *auth.Claims, refreshToken string) error {
	if refreshToken != "" {
		refreshClaims, err := s.jwtService.ValidateRefreshToken(refreshToken)
		if err != nil || refreshClaims.UserID != claims.UserID {
			return apperrors.ErrInvalidRefreshToken
		}
		if err := s.tokenStore.DeleteRefreshToken(ctx, refreshClaims.ID); err != nil {
			return fmt.Errorf("revoke refresh token: %w", err)
		}
	}
	if err := s.tokenStore.BlacklistAccessToken(ctx, claims.ID, s.jwtService.RemainingTTL(claims)); err != nil {
		return fmt.Errorf("revoke access token: %w", err)
	}
	return nil
}

func (s *authService) IsRevoked(ctx context.Context, tokenID string) bool {
	revoked, _ := s.tokenStore.IsAccessTokenBlacklisted(ctx, tokenID)
	return revoked
}

func (s *authService) issueTokens(ctx context.Context, user *model.User, message string) (*dto.AuthResponse, error) {
	sub := auth.Subject{UserID: user.ID, Username: user.Username, Role: user.Role}

	_, accessToken, err := s.jwtService.GenerateAccessToken(sub)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}
	tokenID, refreshToken, err := s.jwtService.GenerateRefreshToken(sub)
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}
	if err := s.tokenStore.StoreRefreshToken(ctx, tokenID, user.ID, auth.RefreshTokenExpiry); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &dto.AuthResponse{
		Token:        accessToken,
		RefreshToken: refreshToken,
		Username:     user.Username,
		Role:         user.Role,
		Email:        user.Email,
		Message:      message,
	}, nil
}

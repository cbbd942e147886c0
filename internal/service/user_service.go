package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"codemingle/internal/cache"
	"codemingle/internal/dto"
	apperrors "codemingle/internal/errors"
	"codemingle/internal/model"
	"codemingle/internal/repository"
)

const (
	userCacheTTL = 5 * time.Minute
	bcryptCost   = 10
)

// UserService exposes domain operations.
type UserService interface {
	List(ctx context.Context) ([]dto.UserDTO, error)
	Get(ctx context.Context, id uint) (*dto.UserDTO, error)
	GetByUsername(ctx context.Context, username string) (*dto.UserDTO, error)
	Create(ctx context.Context, req dto.UserRequest) (*dto.UserDTO, error)
	Update(ctx context.Context, id uint, req dto.UserRequest) (*dto.UserDTO, error)
	Delete(ctx context.Context, id uint) error
	IncrementViews(ctx context.Context, id uint) (*dto.UserDTO, error)
	// RecalculateRating recomputes and stores the rating from the user's
	// current enrollment and comment counts.
	RecalculateRating(ctx context.Context, id uint) (*dto.UserDTO, error)
}

type userService struct {
	repo  repository.UserRepository
	cache *cache.Client
	now   func() time.Time
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(repo repository.UserRepository, cache *cache.Client) UserService {
	return &userService{repo: repo, cache: cache, now: time.Now}
}

func (s *userService) cacheKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

func (s *userService) List(ctx context.Context) ([]dto.UserDTO, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return dto.Map(users, dto.FromUser), nil
}

func (s *userService) Get(ctx context.Context, id uint) (*dto.UserDTO, error) {
	var cached dto.UserDTO
	if s.cache.GetJSON(ctx, s.cacheKey(id), &cached) {
		return &cached, nil
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, apperrors.ErrUserNotFound)
	}
	out := dto.FromUser(user)
	_ = s.cache.SetJSON(ctx, s.cacheKey(id), out, userCacheTTL)
	return &out, nil
}

func (s *userService) GetByUsername(ctx context.Context, username string) (*dto.UserDTO, error) {
	user, err := s.repo.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, notFound(err, apperrors.ErrUserNotFound)
	}
	out := dto.FromUser(user)
	return &out, nil
}

func (s *userService) Create(ctx context.Context, req dto.UserRequest) (*dto.UserDTO, error) {
	username := optionalString(req.Username)
	email := optionalString(req.Email)
	if username == "" || email == "" || req.Password == nil || *req.Password == "" {
		return nil, apperrors.ErrMissingRegistrationField
	}
	user := &model.User{
		Username:  username,
		Email:     email,
		Role:      model.RoleUser,
		CreatedAt: createdAtOrNow(req.CreatedAt, s.now()),
	}
	if err := applyRole(&user.Role, req.Role); err != nil {
		return nil, err
	}
	if err := createUser(ctx, s.repo, user, *req.Password); err != nil {
		return nil, err
	}
	out := dto.FromUser(user)
	return &out, nil
}

func (s *userService) Update(ctx context.Context, id uint, req dto.UserRequest) (*dto.UserDTO, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, apperrors.ErrUserNotFound)
	}
	applyString(&user.Username, req.Username)
	applyString(&user.Email, req.Email)
	if err := applyRole(&user.Role, req.Role); err != nil {
		return nil, err
	}
	if req.Password != nil && *req.Password != "" {
		if user.PasswordHash, err = hashPassword(*req.Password); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, translateUserErr(ctx, s.repo, user, "update user", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	out := dto.FromUser(user)
	return &out, nil
}

func (s *userService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFound(err, apperrors.ErrUserNotFound)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return nil
}

func (s *userService) IncrementViews(ctx context.Context, id uint) (*dto.UserDTO, error) {
	if err := s.repo.IncrementViews(ctx, id); err != nil {
		return nil, notFound(err, apperrors.ErrUserNotFound)
	}
	return s.reload(ctx, id)
}

func (s *userService) RecalculateRating(ctx context.Context, id uint) (*dto.UserDTO, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, notFound(err, apperrors.ErrUserNotFound)
	}
	enrollments, comments, err := s.repo.CountActivity(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("count activity: %w", err)
	}
	if err := s.repo.UpdateRating(ctx, id, CalculateRating(enrollments, comments)); err != nil {
		return nil, fmt.Errorf("update rating: %w", err)
	}
	return s.reload(ctx, id)
}

// reload drops the cached projection and reads the user back.
func (s *userService) reload(ctx context.Context, id uint) (*dto.UserDTO, error) {
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return s.Get(ctx, id)
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// createUser hashes the password and inserts the user, translating a
// unique-index violation into the matching ValidationConflict.
func createUser(ctx context.Context, repo repository.UserRepository, user *model.User, password string) error {
	hashed, err := hashPassword(password)
	if err != nil {
		return err
	}
	user.PasswordHash = hashed
	if err := repo.Create(ctx, user); err != nil {
		return translateUserErr(ctx, repo, user, "create user", err)
	}
	return nil
}

// translateUserErr runs after the write has already failed, so the lookup
// only decides which conflict to report.
func translateUserErr(ctx context.Context, repo repository.UserRepository, user *model.User, op string, err error) error {
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%s: %w", op, err)
	}
	existing, lookupErr := repo.FindByUsername(ctx, user.Username)
	if lookupErr == nil && existing.ID != user.ID {
		return apperrors.ErrUsernameTaken
	}
	if lookupErr != nil && !errors.Is(lookupErr, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", op, lookupErr)
	}
	return apperrors.ErrEmailTaken
}

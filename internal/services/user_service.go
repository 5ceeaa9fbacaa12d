package services

import (
	"errors"
	"fmt"

	"github.com/taskhub/task-tracker-api/internal/constants"
	"github.com/taskhub/task-tracker-api/internal/models"
	"github.com/taskhub/task-tracker-api/internal/repository"
	"github.com/taskhub/task-tracker-api/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrUserIDTaken          = errors.New("user id already exists")
	ErrEmailTaken           = errors.New("email already exists")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// UserService handles user business logic
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// CreateUserInput represents the required information to create a user
type CreateUserInput struct {
	ID       string
	Name     string
	Email    string
	Password string
}

// List returns users, optionally filtered by a case-insensitive name
// substring.
func (s *UserService) List(nameContains string, params utils.PaginationParams) ([]models.User, int64, error) {
	users, total, err := s.userRepo.Search(repository.UserFilter{
		NameContains: nameContains,
		Page:         params.Page,
		PageSize:     params.Limit,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}

// Create validates input, checks id and email uniqueness, and stores the
// user with a bcrypt-hashed password. The plaintext is never persisted.
func (s *UserService) Create(input CreateUserInput) (*models.User, error) {
	if len(input.ID) < constants.MinIDLength {
		return nil, newValidationError("id must be at least %d characters", constants.MinIDLength)
	}
	if len(input.Name) < constants.MinNameLength {
		return nil, newValidationError("name must be at least %d characters", constants.MinNameLength)
	}
	if len(input.Email) < constants.MinEmailLength {
		return nil, newValidationError("email must be at least %d characters", constants.MinEmailLength)
	}
	if err := validatePassword(input.Password); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.FindByID(input.ID); err == nil {
		return nil, ErrUserIDTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check user id: %w", err)
	}

	if _, err := s.userRepo.FindByEmail(input.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		ID:       input.ID,
		Name:     input.Name,
		Email:    input.Email,
		Password: string(hashedPassword),
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Delete removes a user. Assignment rows referencing the user are left in
// place; the aggregated view skips them when the reference no longer
// resolves.
func (s *UserService) Delete(id string) error {
	if _, err := s.userRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	if err := s.userRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return nil
}

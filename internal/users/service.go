package users

import (
	"context"
	"errors"
	"strings"

	"cryptopulse-backend/internal/constants"
	"cryptopulse-backend/internal/domain"
	"cryptopulse-backend/internal/pkg/validation"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidEmail      = errors.New("Invalid email format")
	ErrInvalidPassword   = errors.New("Invalid password format")
	ErrInvalidRole       = errors.New("Invalid role")
	ErrAlreadyRegistered = errors.New("Email already registered")
)

// Service handles admin user provisioning.
type Service struct {
	DB *gorm.DB
}

// CreateUserInput for admin create-user ({email, password, role}).
type CreateUserInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// CreateUser provisions an account with an explicit role. Role defaults to
// "user" when empty. Caller never sees the password hash.
func (s *Service) CreateUser(ctx context.Context, in CreateUserInput) (*domain.User, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if email == "" || !validation.IsValidEmail(email) {
		return nil, ErrInvalidEmail
	}
	if !validation.IsValidPassword(in.Password) {
		return nil, ErrInvalidPassword
	}
	role := in.Role
	if role == "" {
		role = constants.RoleUser
	}
	if !constants.IsValidRole(role) {
		return nil, ErrInvalidRole
	}

	var existing domain.User
	if err := s.DB.WithContext(ctx).Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, ErrAlreadyRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), 10)
	if err != nil {
		return nil, err
	}

	u := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.DB.WithContext(ctx).Create(u).Error; err != nil {
		return nil, err
	}
	return u, nil
}

// List returns all users, oldest first.
func (s *Service) List(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	err := s.DB.WithContext(ctx).Order("created_at ASC").Find(&users).Error
	return users, err
}

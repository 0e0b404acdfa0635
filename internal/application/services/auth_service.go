package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/clinicore/clinic-backend/internal/domain/entities"
	"github.com/clinicore/clinic-backend/internal/domain/repositories"
	"github.com/clinicore/clinic-backend/internal/infrastructure/auth"
	apperrors "github.com/clinicore/clinic-backend/pkg/errors"
)

// AuthService handles registration and login
type AuthService struct {
	users     repositories.UserRepository
	jwtSecret string
	tokenTTL  time.Duration
}

// NewAuthService creates a new auth service
func NewAuthService(users repositories.UserRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		users:     users,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
	}
}

// RegisterInput carries a self-service registration
type RegisterInput struct {
	Email          string `json:"email"`
	Password       string `json:"password"`
	Name           string `json:"name"`
	Role           string `json:"role"`
	Specialization string `json:"specialization,omitempty"`
	Phone          string `json:"phone,omitempty"`
}

// Register creates a new patient or doctor account. Doctors start pending
// and cannot sign in until an admin approves them, so no token is issued
// for them here.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*entities.User, string, error) {
	role := entities.UserRole(input.Role)
	if role != entities.RolePatient && role != entities.RoleDoctor {
		return nil, "", apperrors.NewValidationError("role must be patient or doctor")
	}
	if input.Email == "" || input.Password == "" || input.Name == "" {
		return nil, "", apperrors.NewValidationError("email, password and name are required")
	}

	if existing, err := s.users.GetByEmail(ctx, input.Email); err == nil && existing != nil {
		return nil, "", apperrors.NewConflictError("user already exists")
	} else if err != nil && !apperrors.IsNotFound(err) {
		return nil, "", err
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, "", apperrors.NewInternalError("failed to hash password", err)
	}

	now := time.Now()
	user := &entities.User{
		ID:             uuid.New().String(),
		Email:          input.Email,
		PasswordHash:   hash,
		Name:           input.Name,
		Role:           role,
		Specialization: input.Specialization,
		Phone:          input.Phone,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if role == entities.RoleDoctor {
		user.DoctorStatus = entities.DoctorStatusPending
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token := ""
	if role == entities.RolePatient {
		token, err = auth.MakeToken(user.ID, user.Role, s.jwtSecret, s.tokenTTL)
		if err != nil {
			return nil, "", apperrors.NewInternalError("failed to issue token", err)
		}
	}

	return user.Sanitized(), token, nil
}

// Login authenticates a user. A wrong password, an unknown email and an
// unapproved doctor all yield a nil user with no error; callers cannot
// distinguish the three.
func (s *AuthService) Login(ctx context.Context, email, password string) (*entities.User, string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, "", nil
		}
		return nil, "", err
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, "", nil
	}

	if user.Role == entities.RoleDoctor && user.DoctorStatus != entities.DoctorStatusApproved {
		return nil, "", nil
	}

	token, err := auth.MakeToken(user.ID, user.Role, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return nil, "", apperrors.NewInternalError("failed to issue token", err)
	}

	return user.Sanitized(), token, nil
}

// ParseToken validates a bearer token and returns its claims
func (s *AuthService) ParseToken(raw string) (*auth.Claims, error) {
	claims, err := auth.ParseToken(raw, s.jwtSecret)
	if err != nil {
		return nil, apperrors.NewUnauthorizedError("invalid token")
	}
	return claims, nil
}

package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/edu-portal-api/internal/models"
	appErrors "github.com/noah-isme/edu-portal-api/pkg/errors"
	"github.com/noah-isme/edu-portal-api/pkg/validation"
)

type userRepository interface {
	List(ctx context.Context) ([]models.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	Create(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) error
}

// CreateUserRequest captures fields for creating an account.
type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=8"`
	IsAdmin  bool   `json:"isAdmin"`
}

// UserService administers accounts. Every operation requires an administrator.
type UserService struct {
	repo      userRepository
	auth      authorizer
	audit     auditRecorder
	validator *validator.Validate
	logger    *zap.Logger
}

// NewUserService creates a new user service.
func NewUserService(repo userRepository, auth authorizer, audit auditRecorder, validate *validator.Validate, logger *zap.Logger) *UserService {
	if validate == nil {
		validate = validation.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{repo: repo, auth: auth, audit: audit, validator: validate, logger: logger}
}

func (s *UserService) authorize(ctx context.Context, session models.Session) (*models.JWTClaims, error) {
	if session.Anonymous() || s.auth == nil {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "missing bearer token")
	}
	return s.auth.Authorize(ctx, session)
}

// List returns every account.
func (s *UserService) List(ctx context.Context, session models.Session) ([]models.User, error) {
	if _, err := s.authorize(ctx, session); err != nil {
		return nil, err
	}
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Unavailable(err, "failed to list users")
	}
	return users, nil
}

// Create adds an account with a bcrypt-hashed password.
func (s *UserService) Create(ctx context.Context, session models.Session, req CreateUserRequest) (*models.User, error) {
	claims, err := s.authorize(ctx, session)
	if err != nil {
		return nil, err
	}
	req.Username = strings.TrimSpace(req.Username)
	if err := validation.Struct(s.validator, req, "invalid user payload"); err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, appErrors.Unavailable(err, "failed to check username")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "username already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	user := &models.User{Username: req.Username, PasswordHash: string(hash), IsAdmin: req.IsAdmin}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, appErrors.Unavailable(err, "failed to create user")
	}

	if s.audit != nil {
		s.audit.Record(ctx, auditEntry(claims, session, models.AuditActionUserCreate, "users", user.ID, user.Info()))
	}
	s.logger.Info("user created", zap.String("user_id", user.ID), zap.String("actor_id", claims.UserID))
	return user, nil
}

// Delete removes an account. Administrators cannot delete themselves.
func (s *UserService) Delete(ctx context.Context, session models.Session, id string) error {
	claims, err := s.authorize(ctx, session)
	if err != nil {
		return err
	}
	if claims.UserID == id {
		return appErrors.Clone(appErrors.ErrForbidden, "cannot delete your own account")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return appErrors.Unavailable(err, "failed to delete user")
	}

	if s.audit != nil {
		s.audit.Record(ctx, auditEntry(claims, session, models.AuditActionUserDelete, "users", id, nil))
	}
	s.logger.Info("user deleted", zap.String("user_id", id), zap.String("actor_id", claims.UserID))
	return nil
}

package auth

import (
	"context"
	"errors"
	"time"

	autherrors "hr-erp/internal/auth/errors"
	"hr-erp/internal/config"
	"hr-erp/internal/employee"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (token string, err error)
	Login(ctx context.Context, email, password string) (token string, err error)
	ResolveIdentity(ctx context.Context, employeeID string) (id, role string, err error)
}

type service struct {
	repo   employee.Repository
	cfg    *config.Config
	logger *zap.Logger
}

func NewService(repo employee.Repository, cfg *config.Config, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{repo: repo, cfg: cfg, logger: l}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (string, error) {
	s.logger.Debug("register requested", zap.String("email", req.Email))

	// Pre-check keeps the common case friendly; the unique index is the
	// actual guarantee, so the violation is also mapped below.
	if _, err := s.repo.GetByEmail(ctx, req.Email); err == nil {
		s.logger.Warn("register duplicate email", zap.String("email", req.Email))
		return "", autherrors.ErrEmailAlreadyRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("register email lookup failed", zap.Error(err))
		return "", err
	}

	// Hash first, then store. The credential never reaches the store in
	// plain text.
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	role := req.Role
	if role == "" {
		role = employee.RoleEmployee
	}

	e := &employee.Employee{
		ID:         uuid.New(),
		Name:       req.Name,
		Email:      req.Email,
		Password:   string(hashed),
		Role:       role,
		Department: req.Department,
	}

	if err := s.repo.Create(ctx, e); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return "", autherrors.ErrEmailAlreadyRegistered
		}
		s.logger.Error("register persist failed", zap.Error(err))
		return "", err
	}

	token, err := s.generateToken(e.ID.String())
	if err != nil {
		s.logger.Error("register token issue failed", zap.Error(err))
		return "", autherrors.ErrTokenGenerationFailed
	}

	s.logger.Info("register success",
		zap.String("employee_id", e.ID.String()),
		zap.String("role", e.Role),
	)
	return token, nil
}

func (s *service) Login(ctx context.Context, email, password string) (string, error) {
	e, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return "", autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(e.Password), []byte(password)); err != nil {
		s.logger.Warn("login password mismatch", zap.String("email", email))
		return "", autherrors.ErrInvalidCredentials
	}

	token, err := s.generateToken(e.ID.String())
	if err != nil {
		return "", autherrors.ErrTokenGenerationFailed
	}

	s.logger.Info("login success", zap.String("employee_id", e.ID.String()))
	return token, nil
}

func (s *service) ResolveIdentity(ctx context.Context, employeeID string) (string, string, error) {
	e, err := s.repo.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", autherrors.ErrEmployeeGone
		}
		return "", "", err
	}
	return e.ID.String(), e.Role, nil
}

func (s *service) generateToken(employeeID string) (string, error) {
	claims := jwt.MapClaims{
		"employee_id": employeeID,
		"exp":         time.Now().Add(s.cfg.JWTExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

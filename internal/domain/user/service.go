package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"babyjournal/internal/domain/apperr"
	"babyjournal/internal/utils/clock"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"
)

type Servicer interface {
	Register(ctx context.Context, req RegisterRequest) (User, error)
	Authenticate(ctx context.Context, email, password string) (User, error)
	Get(ctx context.Context, id int64) (User, error)
	CreateAdmin(ctx context.Context, req RegisterRequest) (User, error)
}

type Service struct {
	repo      Repository
	gate      RegistrationGate
	validator Validator
	clock     clock.Clock
	log       *slog.Logger
}

func NewService(repo Repository, gate RegistrationGate, validator Validator, clk clock.Clock, log *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		gate:      gate,
		validator: validator,
		clock:     clk,
		log:       log.With(slog.String("component", "user_service")),
	}
}

// Register создает обычного пользователя, если регистрация открыта
func (s *Service) Register(ctx context.Context, req RegisterRequest) (User, error) {
	open, err := s.gate.RegistrationsOpen(ctx)
	if err != nil {
		return User{}, fmt.Errorf("site config: %w", err)
	}
	if !open {
		return User{}, ErrRegistrationDisabled
	}

	return s.create(ctx, req, RoleUser)
}

// CreateAdmin создает администратора в обход настройки регистрации
func (s *Service) CreateAdmin(ctx context.Context, req RegisterRequest) (User, error) {
	return s.create(ctx, req, RoleAdmin)
}

func (s *Service) create(ctx context.Context, req RegisterRequest, role Role) (User, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = normalizeEmail(req.Email)

	if err := s.validator.ValidateRegister(req); err != nil {
		s.log.Debug("validation failed", "email", req.Email, "error", err)
		return User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, fmt.Errorf("Хэш пароля: %w", err)
	}

	u := User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    s.clock.Now(),
	}

	u.ID, err = s.repo.Create(ctx, u)
	if err != nil {
		return User{}, err
	}

	s.log.Info("user registered", slog.Int64("user_id", u.ID), slog.String("role", string(role)))
	return u, nil
}

func (s *Service) Authenticate(ctx context.Context, email, password string) (User, error) {
	u, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			s.log.Warn("stored hash is unusable", slog.Int64("user_id", u.ID), slog.String("error", err.Error()))
		}
		return User{}, ErrInvalidCredentials
	}

	return u, nil
}

func (s *Service) Get(ctx context.Context, id int64) (User, error) {
	return s.repo.FindByID(ctx, id)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

package settings

import (
	"context"
	"fmt"
	"strings"

	"babyjournal/internal/domain/validation"

	"golang.org/x/exp/slog"
)

type Servicer interface {
	Visual(ctx context.Context, userID int64) (VisualConfig, error)
	SaveVisual(ctx context.Context, userID int64, in VisualInput) (VisualConfig, error)
	Site(ctx context.Context, requesterID int64) (SiteConfig, error)
	UpdateSite(ctx context.Context, requesterID int64, in SiteInput) (SiteConfig, error)
	RegistrationsOpen(ctx context.Context) (bool, error)
}

type Service struct {
	repo  Repository
	users UserGetter
	log   *slog.Logger
}

func NewService(repo Repository, users UserGetter, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		users: users,
		log:   log.With(slog.String("component", "settings_service")),
	}
}

// Visual возвращает пустую конфигурацию, если пользователь ее не сохранял
func (s *Service) Visual(ctx context.Context, userID int64) (VisualConfig, error) {
	c, found, err := s.repo.Visual(ctx, userID)
	if err != nil {
		return VisualConfig{}, fmt.Errorf("visual config: %w", err)
	}
	if !found {
		return VisualConfig{UserID: userID}, nil
	}
	return c, nil
}

// SaveVisual перезаписывает все поля темы
func (s *Service) SaveVisual(ctx context.Context, userID int64, in VisualInput) (VisualConfig, error) {
	if err := validation.Struct(in); err != nil {
		return VisualConfig{}, err
	}

	c := VisualConfig{
		UserID:          userID,
		PrimaryColor:    strings.TrimSpace(in.PrimaryColor),
		SecondaryColor:  strings.TrimSpace(in.SecondaryColor),
		AccentColor:     strings.TrimSpace(in.AccentColor),
		BackgroundColor: strings.TrimSpace(in.BackgroundColor),
		CardColor:       strings.TrimSpace(in.CardColor),
		TextColor:       strings.TrimSpace(in.TextColor),
		LightTextColor:  strings.TrimSpace(in.LightTextColor),
		BorderColor:     strings.TrimSpace(in.BorderColor),
		MainFont:        strings.TrimSpace(in.MainFont),
		FontSize:        strings.TrimSpace(in.FontSize),
	}
	if err := s.repo.UpsertVisual(ctx, c); err != nil {
		return VisualConfig{}, fmt.Errorf("save visual config: %w", err)
	}
	return c, nil
}

func (s *Service) Site(ctx context.Context, requesterID int64) (SiteConfig, error) {
	if err := s.requireAdmin(ctx, requesterID); err != nil {
		return SiteConfig{}, err
	}
	return s.repo.Site(ctx)
}

func (s *Service) UpdateSite(ctx context.Context, requesterID int64, in SiteInput) (SiteConfig, error) {
	if err := s.requireAdmin(ctx, requesterID); err != nil {
		return SiteConfig{}, err
	}
	return s.ApplySite(ctx, in)
}

// ApplySite меняет настройки сайта без проверки роли (для CLI администратора)
func (s *Service) ApplySite(ctx context.Context, in SiteInput) (SiteConfig, error) {
	in.SiteName = strings.TrimSpace(in.SiteName)
	if err := validation.Struct(in); err != nil {
		return SiteConfig{}, err
	}

	c := SiteConfig{SiteName: in.SiteName, AllowNewRegistrations: *in.AllowNewRegistrations}
	if err := s.repo.UpdateSite(ctx, c); err != nil {
		return SiteConfig{}, fmt.Errorf("update site config: %w", err)
	}

	s.log.Info("site settings updated",
		slog.String("site_name", c.SiteName),
		slog.Bool("allow_new_registrations", c.AllowNewRegistrations))
	return c, nil
}

// CurrentSite - настройки сайта без проверки роли
func (s *Service) CurrentSite(ctx context.Context) (SiteConfig, error) {
	return s.repo.Site(ctx)
}

// RegistrationsOpen реализует user.RegistrationGate
func (s *Service) RegistrationsOpen(ctx context.Context) (bool, error) {
	c, err := s.repo.Site(ctx)
	if err != nil {
		return false, err
	}
	return c.AllowNewRegistrations, nil
}

func (s *Service) requireAdmin(ctx context.Context, userID int64) error {
	u, err := s.users.Get(ctx, userID)
	if err != nil {
		return err
	}
	if !u.IsAdmin() {
		return ErrAdminOnly
	}
	return nil
}

package sqlstore

import (
	"context"
	"errors"
	"fmt"

	"babyjournal/internal/domain/settings"
	"babyjournal/internal/infrastructure/storage"

	sq "github.com/Masterminds/squirrel"
	"golang.org/x/exp/slog"
)

const (
	tableVisual = "user_visual_config"
	tableSite   = "site_config"
	siteRowID   = 1
)

var visualColumns = []string{
	"user_id", "primary_color", "secondary_color", "accent_color", "background_color",
	"card_color", "text_color", "light_text_color", "border_color", "main_font", "font_size",
}

type SettingsRepository struct {
	gw  *storage.Gateway
	log *slog.Logger
}

func NewSettingsRepository(gw *storage.Gateway, log *slog.Logger) *SettingsRepository {
	return &SettingsRepository{
		gw:  gw,
		log: log.With(slog.String("component", "settings_repository")),
	}
}

func (r *SettingsRepository) Visual(ctx context.Context, userID int64) (settings.VisualConfig, bool, error) {
	q := r.gw.Builder().Select(visualColumns...).From(tableVisual).Where(sq.Eq{"user_id": userID})

	var c settings.VisualConfig
	err := r.gw.GetOne(ctx, q,
		&c.UserID, &c.PrimaryColor, &c.SecondaryColor, &c.AccentColor, &c.BackgroundColor,
		&c.CardColor, &c.TextColor, &c.LightTextColor, &c.BorderColor, &c.MainFont, &c.FontSize)
	if errors.Is(err, storage.ErrNoRows) {
		return settings.VisualConfig{}, false, nil
	}
	if err != nil {
		return settings.VisualConfig{}, false, fmt.Errorf("select visual config: %w", err)
	}
	return c, true, nil
}

func (r *SettingsRepository) UpsertVisual(ctx context.Context, c settings.VisualConfig) error {
	q := r.gw.Builder().Insert(tableVisual).
		Columns(visualColumns...).
		Values(c.UserID, c.PrimaryColor, c.SecondaryColor, c.AccentColor, c.BackgroundColor,
			c.CardColor, c.TextColor, c.LightTextColor, c.BorderColor, c.MainFont, c.FontSize).
		Suffix(`ON CONFLICT (user_id) DO UPDATE SET
			primary_color = excluded.primary_color,
			secondary_color = excluded.secondary_color,
			accent_color = excluded.accent_color,
			background_color = excluded.background_color,
			card_color = excluded.card_color,
			text_color = excluded.text_color,
			light_text_color = excluded.light_text_color,
			border_color = excluded.border_color,
			main_font = excluded.main_font,
			font_size = excluded.font_size`)

	if _, err := r.gw.Run(ctx, q); err != nil {
		return fmt.Errorf("upsert visual config: %w", err)
	}
	return nil
}

func (r *SettingsRepository) Site(ctx context.Context) (settings.SiteConfig, error) {
	q := r.gw.Builder().Select("site_name", "allow_new_registrations").From(tableSite).
		Where(sq.Eq{"id": siteRowID})

	var c settings.SiteConfig
	err := r.gw.GetOne(ctx, q, &c.SiteName, &c.AllowNewRegistrations)
	if errors.Is(err, storage.ErrNoRows) {
		return settings.SiteConfig{}, settings.ErrSiteNotFound
	}
	if err != nil {
		return settings.SiteConfig{}, fmt.Errorf("select site config: %w", err)
	}
	return c, nil
}

func (r *SettingsRepository) UpdateSite(ctx context.Context, c settings.SiteConfig) error {
	q := r.gw.Builder().Update(tableSite).
		Set("site_name", c.SiteName).
		Set("allow_new_registrations", c.AllowNewRegistrations).
		Where(sq.Eq{"id": siteRowID})

	res, err := r.gw.Run(ctx, q)
	if err != nil {
		return fmt.Errorf("update site config: %w", err)
	}
	if res.RowsAffected == 0 {
		return settings.ErrSiteNotFound
	}
	return nil
}

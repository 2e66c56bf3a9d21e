package settings

import (
	"context"

	"babyjournal/internal/domain/user"
)

type Repository interface {
	// Visual возвращает found=false, если пользователь еще ничего не сохранял
	Visual(ctx context.Context, userID int64) (VisualConfig, bool, error)
	UpsertVisual(ctx context.Context, c VisualConfig) error
	Site(ctx context.Context) (SiteConfig, error)
	UpdateSite(ctx context.Context, c SiteConfig) error
}

type UserGetter interface {
	Get(ctx context.Context, id int64) (user.User, error)
}

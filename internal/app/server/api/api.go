// Маршруты API дневника малыша:
//
//	GET  /api/v1/health                              # публичный
//	POST /api/auth/register | login                  # публичные
//	POST /api/auth/logout                            # auth
//	GET  /api/auth/session                           # личность, если есть
//	GET|POST /api/journals                           # auth
//	GET  /api/journals/active                        # auth
//	*    /api/journals/{journalId}/...               # auth + роль в журнале
//	POST /api/backups/{journalId}/export             # auth + роль в журнале
//	GET|PUT /api/settings/user, /api/admin/site-settings  # auth
//	GET  /metrics, /media/*                          # chi напрямую

package api

import (
	"path"
	"reflect"
	"strings"

	"babyjournal/internal/app/server/api/http/backup"
	"babyjournal/internal/app/server/api/http/event"
	healthAPI "babyjournal/internal/app/server/api/http/health"
	"babyjournal/internal/app/server/api/http/httperr"
	journalAPI "babyjournal/internal/app/server/api/http/journal"
	memoryAPI "babyjournal/internal/app/server/api/http/memory"
	"babyjournal/internal/app/server/api/http/middleware"
	accessMW "babyjournal/internal/app/server/api/http/middleware/access"
	"babyjournal/internal/app/server/api/http/middleware/auth"
	"babyjournal/internal/app/server/api/http/middleware/logger"
	"babyjournal/internal/app/server/api/http/middleware/metrics"
	settingsAPI "babyjournal/internal/app/server/api/http/settings"
	userAPI "babyjournal/internal/app/server/api/http/user"
	"babyjournal/internal/app/server/config"
	"babyjournal/internal/domain/access"
	domainBackup "babyjournal/internal/domain/backup"
	domainEvent "babyjournal/internal/domain/event"
	"babyjournal/internal/domain/journal"
	"babyjournal/internal/domain/memory"
	"babyjournal/internal/domain/session"
	"babyjournal/internal/domain/settings"
	"babyjournal/internal/domain/user"
	"babyjournal/internal/infrastructure/media"
	"babyjournal/internal/infrastructure/storage"
	"babyjournal/internal/infrastructure/storage/sqlstore"
	"babyjournal/internal/infrastructure/thumbnail"
	"babyjournal/internal/utils/clock"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/spf13/afero"
	"golang.org/x/exp/slog"
)

// Deps - внешние ресурсы, которыми владеет main
type Deps struct {
	Config  *config.Config
	Gateway *storage.Gateway
	Fs      afero.Fs
	Mirror  domainBackup.Mirror // nil - без зеркала
	Clock   clock.Clock
	IDs     clock.IDGenerator
}

type Handlers struct {
	Health   *healthAPI.Handler
	User     *userAPI.Handler
	Journal  *journalAPI.Handler
	Event    *event.Handler
	Memory   *memoryAPI.Handler
	Backup   *backup.Handler
	Settings *settingsAPI.Handler
}

// Services - доменные сервисы; нужны также CLI
type Services struct {
	Users    *user.Service
	Sessions *session.Service
	Settings *settings.Service
	Journals *journal.Service
	Sharing  *journal.SharingService
	Events   *domainEvent.Service
	Memories *memory.Service
	Backups  *domainBackup.Exporter
	Resolver *access.Resolver
	Media    *media.Store
}

// NewServices собирает доменный слой поверх репозиториев sqlstore
func NewServices(d Deps, log *slog.Logger) *Services {
	gw := d.Gateway
	cfg := d.Config

	users := sqlstore.NewUserRepository(gw, log)
	journals := sqlstore.NewJournalRepository(gw, log)
	policy := access.NewPolicy()
	resolver := access.NewResolver(journals, log)
	files := media.New(d.Fs, cfg.Storage.PublicDir, cfg.Storage.MediaDir, d.IDs, log)

	sessions := session.NewService(sqlstore.NewSessionRepository(gw, log), cfg.Auth.SessionTTL, d.Clock, log)
	siteSettings := settings.NewService(sqlstore.NewSettingsRepository(gw, log), users, log)

	return &Services{
		Users:    user.NewService(users, siteSettings, user.NewPasswordValidator(cfg.Auth.StrictPasswords), d.Clock, log),
		Sessions: sessions,
		Settings: siteSettings,
		Journals: journal.NewService(journal.Deps{
			Repo:     journals,
			Sessions: sessions,
			Files:    files,
			Tx:       gw,
			Resolver: resolver,
			Policy:   policy,
			Clock:    d.Clock,
			IDs:      d.IDs,
		}, log),
		Sharing: journal.NewSharingService(sqlstore.NewShareRepository(gw, log), users, policy, d.Clock, log),
		Events:  domainEvent.NewService(sqlstore.NewEventRepository(gw, log), policy, d.Clock, log),
		Memories: memory.NewService(memory.Deps{
			Repo:     sqlstore.NewMemoryRepository(gw, log),
			Files:    files,
			Thumbs:   thumbnail.New(),
			Tx:       gw,
			Policy:   policy,
			Clock:    d.Clock,
			IDs:      d.IDs,
			MaxBytes: cfg.Upload.MaxBytes,
		}, log),
		Backups: domainBackup.NewExporter(domainBackup.Deps{
			Source:  sqlstore.NewBackupSource(gw, log),
			Tx:      gw,
			Files:   files,
			TempDir: cfg.Storage.TempDir,
			Policy:  policy,
			Mirror:  d.Mirror,
			Clock:   d.Clock,
		}, log),
		Resolver: resolver,
		Media:    files,
	}
}

// New создает *chi.Mux с ВСЕМИ операциями через huma.Register
func New(d Deps, svc *Services, log *slog.Logger) *chi.Mux {
	mux := chi.NewMux()

	conf := huma.DefaultConfig("Baby Journal API", "1.0.0")
	conf.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {Type: "http", Scheme: "bearer"},
	}
	// DTO в разных пакетах называются одинаково (Response, output, ...)
	conf.Components.Schemas = huma.NewMapRegistry(schemaPrefix, schemaName)

	API := humachi.New(mux, conf)

	m := metrics.New()

	h := handlers(API, d, svc, m, log)
	h.Health.SetupRoutes(API)
	h.User.SetupRoutes(API)
	h.Journal.SetupRoutes(API)
	h.Event.SetupRoutes(API)
	h.Memory.SetupRoutes(API)
	h.Backup.SetupRoutes(API)
	h.Settings.SetupRoutes(API)

	mux.Handle("/metrics", m.Handler())
	mux.Handle("/media/*", media.Handler(d.Fs, d.Config.Storage.PublicDir))

	return mux
}

const schemaPrefix = "#/components/schemas/"

// schemaName добавляет к имени схемы имя пакета: journal.Response -> JournalResponse
func schemaName(t reflect.Type, hint string) string {
	for t.Kind() == reflect.Pointer || t.Kind() == reflect.Slice || t.Kind() == reflect.Array || t.Kind() == reflect.Map {
		t = t.Elem()
	}
	name := huma.DefaultSchemaNamer(t, hint)

	pkg := path.Base(t.PkgPath())
	if t.Name() == "" || pkg == "." || pkg == "/" {
		return name
	}
	return strings.ToUpper(pkg[:1]) + pkg[1:] + name
}

func handlers(API huma.API, d Deps, svc *Services, m *metrics.Metrics, log *slog.Logger) *Handlers {
	errs := httperr.New(d.Config.IsProd(), log)
	authMW := auth.New(API, svc.Sessions, log)
	loggerMW := logger.New(log)
	scopeMW := accessMW.New(API, svc.Resolver, errs, log)
	middlewares := middleware.NewContainer()

	public := func() huma.Middlewares {
		return middlewares.Add(m.Middleware(), loggerMW.Middleware()).GetAllAndClear()
	}
	private := func() huma.Middlewares {
		return middlewares.Add(m.Middleware(), authMW.Middleware(), loggerMW.Middleware()).GetAllAndClear()
	}
	scoped := func() huma.Middlewares {
		return middlewares.Add(m.Middleware(), authMW.Middleware(), loggerMW.Middleware(), scopeMW.Middleware()).GetAllAndClear()
	}

	return &Handlers{
		Health: healthAPI.NewHandler(healthAPI.Components{Storage: d.Gateway, Media: svc.Media}, log, public()),
		User: userAPI.NewHandler(svc.Users, svc.Sessions, svc.Journals,
			userAPI.CookieOptions{TTL: d.Config.Auth.SessionTTL, Secure: d.Config.IsProd()},
			errs, log,
			userAPI.Middlewares{
				Public:   public(),
				Private:  private(),
				Optional: middlewares.Add(m.Middleware(), authMW.Optional(), loggerMW.Middleware()).GetAllAndClear(),
			}),
		Journal:  journalAPI.NewHandler(svc.Journals, svc.Sharing, errs, log, private(), scoped()),
		Event:    event.NewHandler(svc.Events, errs, log, scoped()),
		Memory:   memoryAPI.NewHandler(svc.Memories, d.Config.Upload.MaxBytes, errs, log, scoped()),
		Backup:   backup.NewHandler(svc.Backups, errs, log, scoped()),
		Settings: settingsAPI.NewHandler(svc.Settings, errs, log, private()),
	}
}

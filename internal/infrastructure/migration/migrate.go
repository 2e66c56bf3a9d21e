package migration

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"babyjournal/internal/infrastructure/storage"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"golang.org/x/exp/slog"
)

//go:embed files
var migrationFiles embed.FS

// Migrator - интерфейс для самой библиотеки migrate.Migrate
type Migrator interface {
	Up() error
	Version() (version uint, dirty bool, err error)
}

// MigrationEngine - фабрика для создания мигратора (чтобы не лезть в ФС и БД в тестах)
type MigrationEngine func(db *sql.DB, dialect storage.Dialect) (Migrator, error)

type Migration struct {
	gw     *storage.Gateway
	engine MigrationEngine
	log    *slog.Logger
}

func NewMigration(gw *storage.Gateway, engine MigrationEngine, log *slog.Logger) *Migration {
	return &Migration{
		gw:     gw,
		engine: engine,
		log:    log.With(slog.String("component", "migration")),
	}
}

// DefaultEngine - реальная реализация: встроенные SQL-файлы + драйвер по диалекту.
// Мигратор не закрываем: это закрыло бы *sql.DB, которым владеет Gateway.
func DefaultEngine(db *sql.DB, dialect storage.Dialect) (Migrator, error) {
	sourceDriver, err := iofs.New(migrationFiles, "files/"+string(dialect))
	if err != nil {
		return nil, fmt.Errorf("create source driver: %w", err)
	}

	var (
		dbDriver database.Driver
		name     string
	)
	switch dialect {
	case storage.SQLite:
		name = "sqlite3"
		dbDriver, err = sqlite3.WithInstance(db, &sqlite3.Config{})
	case storage.Postgres:
		name = "postgres"
		dbDriver, err = postgres.WithInstance(db, &postgres.Config{})
	default:
		err = fmt.Errorf("unsupported dialect %q", dialect)
	}
	if err != nil {
		sourceDriver.Close()
		return nil, fmt.Errorf("create database driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, name, dbDriver)
	if err != nil {
		sourceDriver.Close()
		return nil, fmt.Errorf("create migrate instance: %w", err)
	}
	return m, nil
}

func (mg *Migration) Up() error {
	m, err := mg.engine(mg.gw.DB(), mg.gw.Dialect())
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			mg.log.Debug("schema is up to date")
			return nil
		}
		return fmt.Errorf("migration up: %w", err)
	}

	if version, _, err := m.Version(); err == nil {
		mg.log.Info("schema migrated", slog.Uint64("version", uint64(version)))
	}
	return nil
}

// Version возвращает текущую версию схемы; 0 - миграции не применялись
func (mg *Migration) Version() (uint, bool, error) {
	m, err := mg.engine(mg.gw.DB(), mg.gw.Dialect())
	if err != nil {
		return 0, false, err
	}

	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return version, dirty, err
}

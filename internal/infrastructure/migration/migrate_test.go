package migration

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"babyjournal/internal/infrastructure/storage"
	"babyjournal/internal/infrastructure/storage/sqlite"

	"github.com/golang-migrate/migrate/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

// MockMigrator - мок для интерфейса Migrator
type MockMigrator struct {
	mock.Mock
}

func (m *MockMigrator) Up() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockMigrator) Version() (uint, bool, error) {
	args := m.Called()
	return args.Get(0).(uint), args.Bool(1), args.Error(2)
}

func newGateway() *storage.Gateway {
	return storage.New(nil, storage.SQLite, slog.Default())
}

func TestMigration_Up_Success(t *testing.T) {
	mockM := new(MockMigrator)

	// Настраиваем поведение
	mockM.On("Up").Return(nil)
	mockM.On("Version").Return(uint(1), false, nil)

	// Инжектим мок через фабрику
	engine := func(_ *sql.DB, dialect storage.Dialect) (Migrator, error) {
		assert.Equal(t, storage.SQLite, dialect)
		return mockM, nil
	}

	mg := NewMigration(newGateway(), engine, slog.Default())
	err := mg.Up()

	assert.NoError(t, err)
	mockM.AssertExpectations(t)
}

func TestMigration_Up_NoChange(t *testing.T) {
	mockM := new(MockMigrator)

	// ErrNoChange не должна считаться ошибкой в методе Up()
	mockM.On("Up").Return(migrate.ErrNoChange)

	engine := func(_ *sql.DB, _ storage.Dialect) (Migrator, error) {
		return mockM, nil
	}

	mg := NewMigration(newGateway(), engine, slog.Default())
	err := mg.Up()

	assert.NoError(t, err)
	mockM.AssertNotCalled(t, "Version")
}

func TestMigration_Up_Failure(t *testing.T) {
	mockM := new(MockMigrator)
	mockM.On("Up").Return(errors.New("syntax error"))

	engine := func(_ *sql.DB, _ storage.Dialect) (Migrator, error) {
		return mockM, nil
	}

	err := NewMigration(newGateway(), engine, slog.Default()).Up()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "syntax error")
}

func TestMigration_Up_EngineError(t *testing.T) {
	// Ошибка на этапе создания мигратора (например, неверный драйвер)
	engine := func(_ *sql.DB, _ storage.Dialect) (Migrator, error) {
		return nil, errors.New("engine crash")
	}

	mg := NewMigration(newGateway(), engine, slog.Default())
	err := mg.Up()

	assert.Error(t, err)
	assert.Equal(t, "engine crash", err.Error())
}

func TestMigration_Version_NilVersion(t *testing.T) {
	mockM := new(MockMigrator)
	mockM.On("Version").Return(uint(0), false, migrate.ErrNilVersion)

	engine := func(_ *sql.DB, _ storage.Dialect) (Migrator, error) {
		return mockM, nil
	}

	version, dirty, err := NewMigration(newGateway(), engine, slog.Default()).Version()

	require.NoError(t, err)
	assert.Zero(t, version)
	assert.False(t, dirty)
}

func TestDefaultEngine_SQLite(t *testing.T) {
	gw, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "journal.db"), slog.Default())
	require.NoError(t, err)
	t.Cleanup(func() { gw.Close() })

	mg := NewMigration(gw, DefaultEngine, slog.Default())
	require.NoError(t, mg.Up())
	// повторный запуск - ErrNoChange, не ошибка
	require.NoError(t, mg.Up())

	version, dirty, err := mg.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)
	assert.False(t, dirty)

	var siteName string
	require.NoError(t, gw.DB().QueryRow(`SELECT site_name FROM site_config WHERE id = 1`).Scan(&siteName))
	assert.Equal(t, "Mi Pequeño Tesoro", siteName)
}

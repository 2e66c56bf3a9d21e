package app

import (
	"context"
	"path/filepath"
	"testing"

	"babyjournal/internal/app/server/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

func TestNewMirror_Disabled(t *testing.T) {
	m, err := NewMirror(context.Background(), config.Backup{})
	require.NoError(t, err)
	assert.Nil(t, m)
}

func TestNewMirror_BadRecipient(t *testing.T) {
	_, err := NewMirror(context.Background(), config.Backup{
		Bucket:       "backups",
		Region:       "us-east-1",
		AccessKey:    "key",
		SecretKey:    "secret",
		AgeRecipient: "not-an-age-key",
	})
	assert.Error(t, err)
}

func TestOpenStorage_SQLite(t *testing.T) {
	cfg := &config.Config{DB: config.DB{
		Driver:      config.DriverSQLite,
		DatabaseURI: filepath.Join(t.TempDir(), "nested", "journal.db"),
	}}

	gw, err := OpenStorage(context.Background(), cfg, slog.Default())
	require.NoError(t, err)
	defer gw.Close()

	assert.NoError(t, gw.Ping(context.Background()))

	var n int
	require.NoError(t, gw.DB().QueryRow(`SELECT COUNT(*) FROM site_config`).Scan(&n))
	assert.Equal(t, 1, n)
}

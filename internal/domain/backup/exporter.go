// Package backup собирает архив журнала: строки в JSON и каталог медиа.
package backup

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"babyjournal/internal/domain/access"
	"babyjournal/internal/domain/apperr"
	"babyjournal/internal/infrastructure/archive"
	"babyjournal/internal/infrastructure/media"
	"babyjournal/internal/utils/clock"

	"github.com/goccy/go-json"
	"github.com/spf13/afero"
	"golang.org/x/exp/slog"
)

type Exporterer interface {
	Export(ctx context.Context, g access.Grant) (*Archive, error)
}

type Exporter struct {
	src     Source
	tx      Transactor
	files   *media.Store
	tempDir string
	policy  access.Authorizer
	mirror  Mirror
	clock   clock.Clock
	log     *slog.Logger
}

type Deps struct {
	Source  Source
	Tx      Transactor
	Files   *media.Store
	TempDir string
	Policy  access.Authorizer
	Mirror  Mirror // nil - без зеркалирования
	Clock   clock.Clock
}

func NewExporter(d Deps, log *slog.Logger) *Exporter {
	return &Exporter{
		src:     d.Source,
		tx:      d.Tx,
		files:   d.Files,
		tempDir: d.TempDir,
		policy:  d.Policy,
		mirror:  d.Mirror,
		clock:   d.Clock,
		log:     log.With(slog.String("component", "backup_exporter")),
	}
}

// FileName - имя архива для скачивания
func FileName(journalID string) string {
	return fmt.Sprintf("journal_backup_%s.zip", journalID)
}

// Export собирает архив. Каталог подготовки удаляется до возврата
// при любом исходе; сам архив удаляет Archive.Close.
func (e *Exporter) Export(ctx context.Context, g access.Grant) (_ *Archive, err error) {
	if err := e.policy.Authorize(g, access.Action{Resource: access.ResourceBackup, Operation: access.OpExport}); err != nil {
		return nil, err
	}

	fsys := e.files.Fs()
	if err := fsys.MkdirAll(e.tempDir, 0o755); err != nil {
		return nil, apperr.Internal("create temp dir", err)
	}

	staging, err := afero.TempDir(fsys, e.tempDir, "backup_"+g.JournalID+"_")
	if err != nil {
		return nil, apperr.Internal("create staging dir", err)
	}
	defer e.remove(staging)

	if err := e.snapshot(ctx, g.JournalID, filepath.Join(staging, "data")); err != nil {
		return nil, err
	}

	if err := e.files.CopyTree(e.files.JournalDir(g.JournalID), filepath.Join(staging, "media")); err != nil {
		return nil, apperr.Internal("copy media", err)
	}

	f, err := afero.TempFile(fsys, e.tempDir, "backup_"+g.JournalID+"_*.zip")
	if err != nil {
		return nil, apperr.Internal("create archive file", err)
	}
	archivePath := f.Name()
	defer func() {
		if err != nil {
			e.remove(archivePath)
		}
	}()

	if err := archive.ZipDir(fsys, staging, f); err != nil {
		f.Close()
		return nil, apperr.Internal("compress backup", err)
	}
	if err := f.Close(); err != nil {
		return nil, apperr.Internal("close archive", err)
	}

	info, err := fsys.Stat(archivePath)
	if err != nil {
		return nil, apperr.Internal("stat archive", err)
	}

	e.mirrorArchive(ctx, g.JournalID, archivePath)

	e.log.Info("backup exported", slog.String("journal_id", g.JournalID), slog.Int64("bytes", info.Size()))
	return &Archive{
		Name: FileName(g.JournalID),
		Path: archivePath,
		Size: info.Size(),
		fs:   fsys,
		log:  e.log,
	}, nil
}

// snapshot пишет строки журнала в dir; чтение идет в одной транзакции
func (e *Exporter) snapshot(ctx context.Context, journalID, dir string) error {
	return e.tx.Transaction(ctx, func(ctx context.Context) error {
		j, err := e.src.Journal(ctx, journalID)
		if err != nil {
			return err
		}
		events, err := e.src.Events(ctx, journalID)
		if err != nil {
			return fmt.Errorf("snapshot events: %w", err)
		}
		memories, err := e.src.Memories(ctx, journalID)
		if err != nil {
			return fmt.Errorf("snapshot memories: %w", err)
		}
		shares, err := e.src.Shares(ctx, journalID)
		if err != nil {
			return fmt.Errorf("snapshot shares: %w", err)
		}

		files := map[string]any{
			"journal.json":  journalSnapshot(j),
			"events.json":   eventsSnapshot(events),
			"memories.json": memoriesSnapshot(memories),
			"shares.json":   sharesSnapshot(journalID, shares),
		}
		for name, v := range files {
			if err := e.writeJSON(filepath.Join(dir, name), v); err != nil {
				return apperr.Internal("write snapshot", err)
			}
		}
		return nil
	})
}

func (e *Exporter) writeJSON(p string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(p), err)
	}
	fsys := e.files.Fs()
	if err := fsys.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	return afero.WriteFile(fsys, p, data, 0o644)
}

// mirrorArchive копирует архив во внешнее хранилище; ошибки только логируются
func (e *Exporter) mirrorArchive(ctx context.Context, journalID, archivePath string) {
	if e.mirror == nil {
		return
	}

	f, err := e.files.Fs().Open(archivePath)
	if err != nil {
		e.log.Warn("backup mirror skipped", slog.String("journal_id", journalID), slog.String("error", err.Error()))
		return
	}
	defer f.Close()

	key := fmt.Sprintf("%s/journal_backup_%s_%s.zip", journalID, journalID, e.clock.Now().Format("20060102T150405Z"))
	if err := e.mirror.Put(ctx, key, f); err != nil {
		e.log.Warn("backup mirror failed", slog.String("journal_id", journalID), slog.String("error", err.Error()))
		return
	}
	e.log.Info("backup mirrored", slog.String("journal_id", journalID), slog.String("key", key))
}

func (e *Exporter) remove(p string) {
	if err := e.files.Fs().RemoveAll(p); err != nil {
		e.log.Warn("backup cleanup failed", slog.String("path", p), slog.String("error", err.Error()))
	}
}

// Archive - готовый архив во временном каталоге.
// Close удаляет файл и должен вызываться на любом пути.
type Archive struct {
	Name string
	Path string
	Size int64
	fs   afero.Fs
	log  *slog.Logger
}

func (a *Archive) WriteTo(w io.Writer) (int64, error) {
	f, err := a.fs.Open(a.Path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return io.Copy(w, f)
}

func (a *Archive) Close() error {
	if err := a.fs.Remove(a.Path); err != nil && !os.IsNotExist(err) {
		a.log.Warn("backup cleanup failed", slog.String("path", a.Path), slog.String("error", err.Error()))
		return err
	}
	return nil
}

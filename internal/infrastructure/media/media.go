// Package media хранит файлы журналов на диске (через afero).
//
// Удаление двухфазное: Stash переносит файлы в корзину внутри каталога
// медиа (rename в пределах одной ФС), Restore возвращает их на место,
// Purge удаляет окончательно. Так удаление файлов можно включить в
// транзакцию БД и откатить вместе с ней.
package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"babyjournal/internal/utils/clock"

	"github.com/spf13/afero"
	"golang.org/x/exp/slog"
)

const (
	trashDir      = ".trash"
	thumbnailsDir = "thumbnails"
)

type Store struct {
	fs        afero.Fs
	publicDir string
	mediaDir  string
	ids       clock.IDGenerator
	log       *slog.Logger
}

func New(fsys afero.Fs, publicDir, mediaDir string, ids clock.IDGenerator, log *slog.Logger) *Store {
	return &Store{
		fs:        fsys,
		publicDir: filepath.Clean(publicDir),
		mediaDir:  filepath.Clean(mediaDir),
		ids:       ids,
		log:       log.With(slog.String("component", "media")),
	}
}

func (s *Store) Fs() afero.Fs {
	return s.fs
}

func (s *Store) JournalDir(journalID string) string {
	return filepath.Join(s.mediaDir, journalID)
}

func (s *Store) ThumbnailDir(journalID string) string {
	return filepath.Join(s.mediaDir, journalID, thumbnailsDir)
}

// EnsureDir создает каталог со всеми родителями
func (s *Store) EnsureDir(dir string) error {
	return s.fs.MkdirAll(dir, 0o755)
}

// Ping проверяет, что каталог медиа существует (создает при первом запуске)
func (s *Store) Ping(context.Context) error {
	if err := s.EnsureDir(s.mediaDir); err != nil {
		return fmt.Errorf("ensure media dir: %w", err)
	}
	info, err := s.fs.Stat(s.mediaDir)
	if err != nil {
		return fmt.Errorf("stat media dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("media dir %q is not a directory", s.mediaDir)
	}
	return nil
}

func (s *Store) Exists(p string) (bool, error) {
	return afero.Exists(s.fs, p)
}

// Save пишет r в файл p и возвращает число записанных байт.
// Если записано больше limit байт, файл удаляется и возвращается ErrTooLarge.
func (s *Store) Save(p string, r io.Reader, limit int64) (int64, error) {
	if err := s.EnsureDir(filepath.Dir(p)); err != nil {
		return 0, fmt.Errorf("ensure dir: %w", err)
	}

	f, err := s.fs.OpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return 0, fmt.Errorf("create file: %w", err)
	}

	src := r
	if limit > 0 {
		src = io.LimitReader(r, limit+1)
	}

	n, err := io.Copy(f, src)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil && limit > 0 && n > limit {
		err = ErrTooLarge
	}
	if err != nil {
		_ = s.fs.Remove(p)
		if errors.Is(err, ErrTooLarge) {
			return n, err
		}
		return n, fmt.Errorf("write file: %w", err)
	}
	return n, nil
}

func (s *Store) Open(p string) (afero.File, error) {
	return s.fs.Open(p)
}

// Remove удаляет файл; отсутствие файла не ошибка
func (s *Store) Remove(p string) error {
	if err := s.fs.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// URLFor переводит путь на диске в публичный URL с прямыми слэшами
func (s *Store) URLFor(p string) (string, error) {
	rel, err := filepath.Rel(s.publicDir, p)
	if err != nil {
		return "", fmt.Errorf("media path %q outside public dir: %w", p, err)
	}
	if strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("media path %q outside public dir", p)
	}
	return "/" + filepath.ToSlash(rel), nil
}

// PathFor - обратное к URLFor; URL вне каталога медиа отвергается
func (s *Store) PathFor(url string) (string, error) {
	clean := path.Clean("/" + strings.TrimPrefix(url, "/"))
	p := filepath.Join(s.publicDir, filepath.FromSlash(strings.TrimPrefix(clean, "/")))

	rel, err := filepath.Rel(s.mediaDir, p)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("url %q is not a media file", url)
	}
	return p, nil
}

// CopyTree рекурсивно копирует src в dst; отсутствующий src пропускается
func (s *Store) CopyTree(src, dst string) error {
	ok, err := afero.DirExists(s.fs, src)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	return afero.Walk(s.fs, src, func(p string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, p)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		if info.IsDir() {
			if info.Name() == trashDir {
				return filepath.SkipDir
			}
			return s.fs.MkdirAll(target, 0o755)
		}
		return s.copyFile(p, target)
	})
}

func (s *Store) copyFile(src, dst string) error {
	in, err := s.fs.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := s.fs.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// StashJournal переносит весь каталог журнала в корзину
func (s *Store) StashJournal(journalID string) (*Stash, error) {
	return s.stash(s.JournalDir(journalID))
}

// StashFiles переносит отдельные файлы в корзину; несуществующие пропускаются
func (s *Store) StashFiles(paths ...string) (*Stash, error) {
	return s.stash(paths...)
}

func (s *Store) stash(paths ...string) (*Stash, error) {
	st := &Stash{fs: s.fs, log: s.log}

	for _, p := range paths {
		if p == "" {
			continue
		}
		ok, err := afero.Exists(s.fs, p)
		if err != nil {
			_ = st.Restore()
			return nil, fmt.Errorf("stat %s: %w", p, err)
		}
		if !ok {
			continue
		}

		dst := filepath.Join(s.mediaDir, trashDir, s.ids.New()+"-"+filepath.Base(p))
		if err := s.fs.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			_ = st.Restore()
			return nil, fmt.Errorf("create trash: %w", err)
		}
		if err := s.fs.Rename(p, dst); err != nil {
			_ = st.Restore()
			return nil, fmt.Errorf("stash %s: %w", p, err)
		}
		st.moves = append(st.moves, move{from: p, to: dst})
	}

	return st, nil
}

type move struct {
	from string
	to   string
}

// Stash - набор файлов, перенесенных в корзину
type Stash struct {
	fs    afero.Fs
	log   *slog.Logger
	moves []move
}

// Len - сколько путей было перенесено
func (st *Stash) Len() int {
	if st == nil {
		return 0
	}
	return len(st.moves)
}

// Restore возвращает файлы на место в обратном порядке
func (st *Stash) Restore() error {
	if st == nil {
		return nil
	}
	var errs []error
	for i := len(st.moves) - 1; i >= 0; i-- {
		m := st.moves[i]
		if err := st.fs.MkdirAll(filepath.Dir(m.from), 0o755); err != nil {
			errs = append(errs, err)
			continue
		}
		if err := st.fs.Rename(m.to, m.from); err != nil {
			errs = append(errs, fmt.Errorf("restore %s: %w", m.from, err))
		}
	}
	st.moves = nil
	return errors.Join(errs...)
}

// Purge окончательно удаляет перенесенные файлы
func (st *Stash) Purge() error {
	if st == nil {
		return nil
	}
	var errs []error
	for _, m := range st.moves {
		if err := st.fs.RemoveAll(m.to); err != nil {
			errs = append(errs, fmt.Errorf("purge %s: %w", m.to, err))
		}
	}
	st.moves = nil
	return errors.Join(errs...)
}

package memory

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"babyjournal/internal/domain/access"
	"babyjournal/internal/domain/apperr"
	"babyjournal/internal/domain/validation"
	"babyjournal/internal/infrastructure/media"
	"babyjournal/internal/utils/clock"

	"github.com/samber/lo"
	"golang.org/x/exp/slog"
)

const (
	DefaultLimit    = 12
	MaxLimit        = 100
	DefaultMaxBytes = 25 << 20
)

// допустимые типы и расширение по умолчанию для каждого
var allowedTypes = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/gif":       ".gif",
	"video/mp4":       ".mp4",
	"video/quicktime": ".mov",
}

var extAliases = map[string][]string{
	"image/jpeg":      {".jpg", ".jpeg"},
	"image/png":       {".png"},
	"image/gif":       {".gif"},
	"video/mp4":       {".mp4", ".m4v"},
	"video/quicktime": {".mov", ".qt"},
}

type Servicer interface {
	Create(ctx context.Context, g access.Grant, up Upload, in Input) (Memory, error)
	Get(ctx context.Context, g access.Grant, id int64) (Memory, error)
	Update(ctx context.Context, g access.Grant, id int64, in Input) (Memory, error)
	Delete(ctx context.Context, g access.Grant, id int64) error
	List(ctx context.Context, g access.Grant, f Filter) (Page, error)
}

type Service struct {
	repo     Repository
	files    *media.Store
	thumbs   Thumbnailer
	tx       Transactor
	policy   access.Authorizer
	clock    clock.Clock
	ids      clock.IDGenerator
	maxBytes int64
	log      *slog.Logger
}

type Deps struct {
	Repo     Repository
	Files    *media.Store
	Thumbs   Thumbnailer
	Tx       Transactor
	Policy   access.Authorizer
	Clock    clock.Clock
	IDs      clock.IDGenerator
	MaxBytes int64
}

func NewService(d Deps, log *slog.Logger) *Service {
	if d.MaxBytes <= 0 {
		d.MaxBytes = DefaultMaxBytes
	}
	return &Service{
		repo:     d.Repo,
		files:    d.Files,
		thumbs:   d.Thumbs,
		tx:       d.Tx,
		policy:   d.Policy,
		clock:    d.Clock,
		ids:      d.IDs,
		maxBytes: d.MaxBytes,
		log:      log.With(slog.String("component", "memory_service")),
	}
}

// Create сохраняет файл, для фото строит превью и записывает строку.
// Если что-то пошло не так после записи файлов, они удаляются.
func (s *Service) Create(ctx context.Context, g access.Grant, up Upload, in Input) (Memory, error) {
	if err := s.authorize(g, access.OpCreate); err != nil {
		return Memory{}, err
	}
	if up.Body == nil {
		return Memory{}, ErrFileRequired
	}

	contentType := mediaType(up.ContentType)
	if _, ok := allowedTypes[contentType]; !ok {
		return Memory{}, ErrUnsupportedType
	}
	if up.Size > s.maxBytes {
		return Memory{}, s.errTooLarge()
	}

	if strings.TrimSpace(in.Date) == "" {
		in.Date = s.clock.Now().Format(time.DateOnly)
	}
	in, err := prepare(in)
	if err != nil {
		return Memory{}, err
	}

	kind := KindVideo
	if strings.HasPrefix(contentType, "image/") {
		kind = KindPhoto
	}

	name := s.ids.New()
	filePath := filepath.Join(s.files.JournalDir(g.JournalID), name+extension(up.Filename, contentType))

	var written []string
	cleanup := func() {
		for _, p := range written {
			if err := s.files.Remove(p); err != nil {
				s.log.Error("remove orphaned file failed", slog.String("path", p), slog.String("error", err.Error()))
			}
		}
	}

	if _, err := s.files.Save(filePath, up.Body, s.maxBytes); err != nil {
		if errors.Is(err, media.ErrTooLarge) {
			return Memory{}, s.errTooLarge()
		}
		return Memory{}, apperr.Internal("store upload", err)
	}
	written = append(written, filePath)

	m := Memory{
		JournalID:   g.JournalID,
		Kind:        kind,
		Date:        in.Date,
		Description: in.Description,
		Favorite:    in.Favorite,
		UploadedAt:  s.clock.Now(),
	}

	if m.FileURL, err = s.files.URLFor(filePath); err != nil {
		cleanup()
		return Memory{}, apperr.Internal("media url", err)
	}

	if kind == KindPhoto {
		thumbPath := filepath.Join(s.files.ThumbnailDir(g.JournalID), "thumb-"+name+s.thumbs.Ext())
		if err := s.writeThumbnail(filePath, thumbPath); err != nil {
			cleanup()
			return Memory{}, err
		}
		written = append(written, thumbPath)

		thumbURL, err := s.files.URLFor(thumbPath)
		if err != nil {
			cleanup()
			return Memory{}, apperr.Internal("thumbnail url", err)
		}
		m.ThumbnailURL = &thumbURL
	}

	if m.ID, err = s.repo.Create(ctx, m); err != nil {
		cleanup()
		return Memory{}, fmt.Errorf("create memory: %w", err)
	}

	s.log.Info("memory uploaded",
		slog.String("journal_id", g.JournalID),
		slog.Int64("memory_id", m.ID),
		slog.String("kind", string(kind)))
	return m, nil
}

func (s *Service) writeThumbnail(src, dst string) error {
	f, err := s.files.Open(src)
	if err != nil {
		return apperr.Internal("open upload", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	if err := s.thumbs.Generate(&buf, f); err != nil {
		s.log.Debug("thumbnail failed", slog.String("path", src), slog.String("error", err.Error()))
		return ErrBadImage
	}
	if _, err := s.files.Save(dst, &buf, 0); err != nil {
		return apperr.Internal("store thumbnail", err)
	}
	return nil
}

func (s *Service) Get(ctx context.Context, g access.Grant, id int64) (Memory, error) {
	if err := s.authorize(g, access.OpRead); err != nil {
		return Memory{}, err
	}
	return s.repo.Get(ctx, g.JournalID, id)
}

// Update меняет только дату, описание и отметку избранного
func (s *Service) Update(ctx context.Context, g access.Grant, id int64, in Input) (Memory, error) {
	if err := s.authorize(g, access.OpUpdate); err != nil {
		return Memory{}, err
	}
	in, err := prepare(in)
	if err != nil {
		return Memory{}, err
	}

	n, err := s.repo.Update(ctx, Memory{
		ID:          id,
		JournalID:   g.JournalID,
		Date:        in.Date,
		Description: in.Description,
		Favorite:    in.Favorite,
	})
	if err != nil {
		return Memory{}, fmt.Errorf("update memory: %w", err)
	}
	if n == 0 {
		return Memory{}, ErrNotFound
	}

	return s.repo.Get(ctx, g.JournalID, id)
}

// Delete удаляет строку вместе с файлом и превью в одной транзакции.
// Отсутствующая строка - ErrNotFound без обращения к файлам.
func (s *Service) Delete(ctx context.Context, g access.Grant, id int64) error {
	if err := s.authorize(g, access.OpDelete); err != nil {
		return err
	}

	var stash *media.Stash
	err := s.tx.Transaction(ctx, func(ctx context.Context) error {
		m, err := s.repo.Get(ctx, g.JournalID, id)
		if err != nil {
			return err
		}

		st, err := s.files.StashFiles(s.pathsOf(m)...)
		if err != nil {
			return apperr.Internal("remove memory files", err)
		}
		stash = st

		n, err := s.repo.Delete(ctx, g.JournalID, id)
		if err != nil {
			return fmt.Errorf("delete memory: %w", err)
		}
		if n == 0 {
			return apperr.Internal("memory row vanished after its files were removed", nil)
		}
		return nil
	})
	if err != nil {
		if rerr := stash.Restore(); rerr != nil {
			s.log.Error("restore memory files failed", slog.Int64("memory_id", id), slog.String("error", rerr.Error()))
		}
		return err
	}

	if perr := stash.Purge(); perr != nil {
		s.log.Warn("purge memory files failed", slog.Int64("memory_id", id), slog.String("error", perr.Error()))
	}
	return nil
}

// pathsOf переводит URL памяти в пути на диске; URL вне каталога медиа пропускаются
func (s *Service) pathsOf(m Memory) []string {
	urls := []string{m.FileURL}
	if m.ThumbnailURL != nil {
		urls = append(urls, *m.ThumbnailURL)
	}

	return lo.FilterMap(urls, func(u string, _ int) (string, bool) {
		p, err := s.files.PathFor(u)
		if err != nil {
			s.log.Warn("skip foreign media url", slog.Int64("memory_id", m.ID), slog.String("url", u))
			return "", false
		}
		return p, true
	})
}

func (s *Service) List(ctx context.Context, g access.Grant, f Filter) (Page, error) {
	if err := s.authorize(g, access.OpRead); err != nil {
		return Page{}, err
	}

	if f.Kind != "" && f.Kind != KindPhoto && f.Kind != KindVideo {
		return Page{}, ErrInvalidKind
	}
	f.Search = strings.TrimSpace(f.Search)
	if f.Limit == 0 {
		f.Limit = DefaultLimit
	}
	if f.Limit > MaxLimit {
		f.Limit = MaxLimit
	}

	items, err := s.repo.List(ctx, g.JournalID, f)
	if err != nil {
		return Page{}, fmt.Errorf("list memories: %w", err)
	}
	total, err := s.repo.Count(ctx, g.JournalID, f)
	if err != nil {
		return Page{}, fmt.Errorf("count memories: %w", err)
	}

	if items == nil {
		items = []Memory{}
	}
	return Page{Items: items, Total: total}, nil
}

func (s *Service) authorize(g access.Grant, op access.Operation) error {
	return s.policy.Authorize(g, access.Action{Resource: access.ResourceMemory, Operation: op})
}

func (s *Service) errTooLarge() error {
	return apperr.Newf(apperr.KindTooLarge, "file exceeds the %d MiB limit", s.maxBytes>>20)
}

func prepare(in Input) (Input, error) {
	in.Date = strings.TrimSpace(in.Date)
	in.Description = strings.TrimSpace(in.Description)
	return in, validation.Struct(in)
}

// mediaType отбрасывает параметры: "image/jpeg; charset=x" -> "image/jpeg"
func mediaType(v string) string {
	mt, _, err := mime.ParseMediaType(v)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(v))
	}
	return mt
}

// extension берет расширение исходного файла, только если оно соответствует типу
func extension(filename, contentType string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if lo.Contains(extAliases[contentType], ext) {
		return ext
	}
	return allowedTypes[contentType]
}

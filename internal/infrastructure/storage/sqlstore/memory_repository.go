package sqlstore

import (
	"context"
	"errors"
	"fmt"

	"babyjournal/internal/domain/memory"
	"babyjournal/internal/infrastructure/storage"

	sq "github.com/Masterminds/squirrel"
	"golang.org/x/exp/slog"
)

const tableMemories = "memories"

var memoryColumns = []string{
	"id", "journal_id", "kind", "file_url", "thumbnail_url", "entry_date",
	"description", "favorite", "uploaded_at",
}

type MemoryRepository struct {
	gw  *storage.Gateway
	log *slog.Logger
}

func NewMemoryRepository(gw *storage.Gateway, log *slog.Logger) *MemoryRepository {
	return &MemoryRepository{
		gw:  gw,
		log: log.With(slog.String("component", "memory_repository")),
	}
}

func (r *MemoryRepository) Create(ctx context.Context, m memory.Memory) (int64, error) {
	q := r.gw.Builder().Insert(tableMemories).
		Columns(memoryColumns[1:]...).
		Values(m.JournalID, string(m.Kind), m.FileURL, m.ThumbnailURL, m.Date, m.Description, m.Favorite, m.UploadedAt)

	id, err := r.gw.InsertReturningID(ctx, q)
	if err != nil {
		return 0, fmt.Errorf("insert memory: %w", err)
	}
	return id, nil
}

func (r *MemoryRepository) Get(ctx context.Context, journalID string, id int64) (memory.Memory, error) {
	q := r.gw.Builder().Select(memoryColumns...).From(tableMemories).
		Where(sq.Eq{"id": id, "journal_id": journalID})

	var m memory.Memory
	err := r.gw.GetOne(ctx, q, memoryDest(&m)...)
	if errors.Is(err, storage.ErrNoRows) {
		return memory.Memory{}, memory.ErrNotFound
	}
	if err != nil {
		return memory.Memory{}, fmt.Errorf("select memory: %w", err)
	}
	return m, nil
}

// Update меняет только метаданные; файлы и тип не трогаются
func (r *MemoryRepository) Update(ctx context.Context, m memory.Memory) (int64, error) {
	q := r.gw.Builder().Update(tableMemories).
		Set("entry_date", m.Date).
		Set("description", m.Description).
		Set("favorite", m.Favorite).
		Where(sq.Eq{"id": m.ID, "journal_id": m.JournalID})

	res, err := r.gw.Run(ctx, q)
	if err != nil {
		return 0, fmt.Errorf("update memory: %w", err)
	}
	return res.RowsAffected, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, journalID string, id int64) (int64, error) {
	q := r.gw.Builder().Delete(tableMemories).Where(sq.Eq{"id": id, "journal_id": journalID})
	res, err := r.gw.Run(ctx, q)
	if err != nil {
		return 0, fmt.Errorf("delete memory: %w", err)
	}
	return res.RowsAffected, nil
}

func (r *MemoryRepository) List(ctx context.Context, journalID string, f memory.Filter) ([]memory.Memory, error) {
	q := r.gw.Builder().Select(memoryColumns...).From(tableMemories).
		Where(memoryWhere(journalID, f)).
		OrderBy("entry_date DESC", "uploaded_at DESC", "id DESC")
	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}
	return r.scanAll(ctx, q)
}

func (r *MemoryRepository) Count(ctx context.Context, journalID string, f memory.Filter) (int64, error) {
	q := r.gw.Builder().Select("COUNT(*)").From(tableMemories).Where(memoryWhere(journalID, f))

	var n int64
	if err := r.gw.GetOne(ctx, q, &n); err != nil {
		return 0, fmt.Errorf("count memories: %w", err)
	}
	return n, nil
}

func (r *MemoryRepository) All(ctx context.Context, journalID string) ([]memory.Memory, error) {
	q := r.gw.Builder().Select(memoryColumns...).From(tableMemories).
		Where(sq.Eq{"journal_id": journalID}).
		OrderBy("id ASC")
	return r.scanAll(ctx, q)
}

func (r *MemoryRepository) scanAll(ctx context.Context, q sq.SelectBuilder) ([]memory.Memory, error) {
	var items []memory.Memory
	err := r.gw.GetMany(ctx, q, func(row storage.Row) error {
		var m memory.Memory
		if err := row.Scan(memoryDest(&m)...); err != nil {
			return err
		}
		items = append(items, m)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list memories: %w", err)
	}
	return items, nil
}

func memoryWhere(journalID string, f memory.Filter) sq.And {
	where := sq.And{sq.Eq{"journal_id": journalID}}
	if f.Kind != "" {
		where = append(where, sq.Eq{"kind": string(f.Kind)})
	}
	if f.FavoriteOnly {
		where = append(where, sq.Eq{"favorite": true})
	}
	if f.Search != "" {
		where = append(where, like("description", f.Search))
	}
	return where
}

func memoryDest(m *memory.Memory) []any {
	return []any{
		&m.ID, &m.JournalID, &m.Kind, &m.FileURL, nullStringDest{&m.ThumbnailURL},
		&m.Date, &m.Description, &m.Favorite, &m.UploadedAt,
	}
}

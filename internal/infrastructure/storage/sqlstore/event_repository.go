package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"babyjournal/internal/domain/event"
	"babyjournal/internal/infrastructure/storage"

	sq "github.com/Masterminds/squirrel"
	"golang.org/x/exp/slog"
)

const tableEvents = "events"

var eventColumns = []string{
	"id", "journal_id", "entry_date", "entry_time", "kind", "description",
	"quantity", "unit", "notes", "favorite", "created_at",
}

type EventRepository struct {
	gw  *storage.Gateway
	log *slog.Logger
}

func NewEventRepository(gw *storage.Gateway, log *slog.Logger) *EventRepository {
	return &EventRepository{
		gw:  gw,
		log: log.With(slog.String("component", "event_repository")),
	}
}

func (r *EventRepository) Create(ctx context.Context, e event.Event) (int64, error) {
	q := r.gw.Builder().Insert(tableEvents).
		Columns(eventColumns[1:]...).
		Values(e.JournalID, e.Date, e.Time, e.Kind, e.Description, e.Quantity, e.Unit, e.Notes, e.Favorite, e.CreatedAt)

	id, err := r.gw.InsertReturningID(ctx, q)
	if err != nil {
		return 0, fmt.Errorf("insert event: %w", err)
	}
	return id, nil
}

func (r *EventRepository) Get(ctx context.Context, journalID string, id int64) (event.Event, error) {
	q := r.gw.Builder().Select(eventColumns...).From(tableEvents).
		Where(sq.Eq{"id": id, "journal_id": journalID})

	var e event.Event
	err := r.gw.GetOne(ctx, q, eventDest(&e)...)
	if errors.Is(err, storage.ErrNoRows) {
		return event.Event{}, event.ErrNotFound
	}
	if err != nil {
		return event.Event{}, fmt.Errorf("select event: %w", err)
	}
	return e, nil
}

func (r *EventRepository) Update(ctx context.Context, e event.Event) (int64, error) {
	q := r.gw.Builder().Update(tableEvents).
		SetMap(map[string]any{
			"entry_date":  e.Date,
			"entry_time":  e.Time,
			"kind":        e.Kind,
			"description": e.Description,
			"quantity":    e.Quantity,
			"unit":        e.Unit,
			"notes":       e.Notes,
			"favorite":    e.Favorite,
		}).
		Where(sq.Eq{"id": e.ID, "journal_id": e.JournalID})

	res, err := r.gw.Run(ctx, q)
	if err != nil {
		return 0, fmt.Errorf("update event: %w", err)
	}
	return res.RowsAffected, nil
}

func (r *EventRepository) Delete(ctx context.Context, journalID string, id int64) (int64, error) {
	q := r.gw.Builder().Delete(tableEvents).Where(sq.Eq{"id": id, "journal_id": journalID})
	res, err := r.gw.Run(ctx, q)
	if err != nil {
		return 0, fmt.Errorf("delete event: %w", err)
	}
	return res.RowsAffected, nil
}

func (r *EventRepository) List(ctx context.Context, journalID string, f event.Filter) ([]event.Event, error) {
	q := r.gw.Builder().Select(eventColumns...).From(tableEvents).
		Where(eventWhere(journalID, f)).
		OrderBy("entry_date DESC", "entry_time DESC", "id DESC")
	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}

	return r.scanAll(ctx, q)
}

// Count считает по тем же условиям, что и List, без Limit/Offset
func (r *EventRepository) Count(ctx context.Context, journalID string, f event.Filter) (int64, error) {
	q := r.gw.Builder().Select("COUNT(*)").From(tableEvents).Where(eventWhere(journalID, f))

	var n int64
	if err := r.gw.GetOne(ctx, q, &n); err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return n, nil
}

// All - все события журнала для резервной копии
func (r *EventRepository) All(ctx context.Context, journalID string) ([]event.Event, error) {
	q := r.gw.Builder().Select(eventColumns...).From(tableEvents).
		Where(sq.Eq{"journal_id": journalID}).
		OrderBy("id ASC")
	return r.scanAll(ctx, q)
}

func (r *EventRepository) scanAll(ctx context.Context, q sq.SelectBuilder) ([]event.Event, error) {
	var items []event.Event
	err := r.gw.GetMany(ctx, q, func(row storage.Row) error {
		var e event.Event
		if err := row.Scan(eventDest(&e)...); err != nil {
			return err
		}
		items = append(items, e)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return items, nil
}

func eventWhere(journalID string, f event.Filter) sq.And {
	where := sq.And{sq.Eq{"journal_id": journalID}}
	if f.Kind != "" {
		where = append(where, sq.Eq{"kind": f.Kind})
	}
	if f.DateFrom != "" {
		where = append(where, sq.GtOrEq{"entry_date": f.DateFrom})
	}
	if f.DateTo != "" {
		where = append(where, sq.LtOrEq{"entry_date": f.DateTo})
	}
	if f.FavoriteOnly {
		where = append(where, sq.Eq{"favorite": true})
	}
	if f.Search != "" {
		where = append(where, sq.Or{like("description", f.Search), like("notes", f.Search)})
	}
	return where
}

// eventDest раскладывает nullable-колонки через промежуточные значения
func eventDest(e *event.Event) []any {
	return []any{
		&e.ID, &e.JournalID, &e.Date, &e.Time, &e.Kind, &e.Description,
		nullFloatDest{&e.Quantity}, &e.Unit, &e.Notes, &e.Favorite, &e.CreatedAt,
	}
}

// nullFloatDest - sql.Scanner, пишущий NULL как nil
type nullFloatDest struct{ dst **float64 }

func (d nullFloatDest) Scan(src any) error {
	var v sql.NullFloat64
	if err := v.Scan(src); err != nil {
		return err
	}
	*d.dst = nullFloat(v)
	return nil
}

package event

import (
	"context"
	"fmt"
	"strings"
	"time"

	"babyjournal/internal/domain/access"
	"babyjournal/internal/domain/validation"
	"babyjournal/internal/utils/clock"

	"golang.org/x/exp/slog"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

type Servicer interface {
	Create(ctx context.Context, g access.Grant, in Input) (Event, error)
	Get(ctx context.Context, g access.Grant, id int64) (Event, error)
	Update(ctx context.Context, g access.Grant, id int64, in Input) (Event, error)
	Delete(ctx context.Context, g access.Grant, id int64) error
	List(ctx context.Context, g access.Grant, f Filter) (Page, error)
}

type Service struct {
	repo   Repository
	policy access.Authorizer
	clock  clock.Clock
	log    *slog.Logger
}

func NewService(repo Repository, policy access.Authorizer, clk clock.Clock, log *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		policy: policy,
		clock:  clk,
		log:    log.With(slog.String("component", "event_service")),
	}
}

func (s *Service) Create(ctx context.Context, g access.Grant, in Input) (Event, error) {
	if err := s.authorize(g, access.OpCreate); err != nil {
		return Event{}, err
	}
	in, err := prepare(in)
	if err != nil {
		return Event{}, err
	}

	e := fromInput(g.JournalID, in)
	e.CreatedAt = s.clock.Now()

	e.ID, err = s.repo.Create(ctx, e)
	if err != nil {
		return Event{}, fmt.Errorf("create event: %w", err)
	}

	s.log.Debug("event created", slog.String("journal_id", g.JournalID), slog.Int64("event_id", e.ID))
	return e, nil
}

func (s *Service) Get(ctx context.Context, g access.Grant, id int64) (Event, error) {
	if err := s.authorize(g, access.OpRead); err != nil {
		return Event{}, err
	}
	return s.repo.Get(ctx, g.JournalID, id)
}

func (s *Service) Update(ctx context.Context, g access.Grant, id int64, in Input) (Event, error) {
	if err := s.authorize(g, access.OpUpdate); err != nil {
		return Event{}, err
	}
	in, err := prepare(in)
	if err != nil {
		return Event{}, err
	}

	e := fromInput(g.JournalID, in)
	e.ID = id

	n, err := s.repo.Update(ctx, e)
	if err != nil {
		return Event{}, fmt.Errorf("update event: %w", err)
	}
	if n == 0 {
		return Event{}, ErrNotFound
	}

	return s.repo.Get(ctx, g.JournalID, id)
}

func (s *Service) Delete(ctx context.Context, g access.Grant, id int64) error {
	if err := s.authorize(g, access.OpDelete); err != nil {
		return err
	}

	n, err := s.repo.Delete(ctx, g.JournalID, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// List возвращает страницу и общее число событий под фильтром
func (s *Service) List(ctx context.Context, g access.Grant, f Filter) (Page, error) {
	if err := s.authorize(g, access.OpRead); err != nil {
		return Page{}, err
	}

	f, err := normalizeFilter(f)
	if err != nil {
		return Page{}, err
	}

	items, err := s.repo.List(ctx, g.JournalID, f)
	if err != nil {
		return Page{}, fmt.Errorf("list events: %w", err)
	}
	total, err := s.repo.Count(ctx, g.JournalID, f)
	if err != nil {
		return Page{}, fmt.Errorf("count events: %w", err)
	}

	if items == nil {
		items = []Event{}
	}
	return Page{Items: items, Total: total}, nil
}

func (s *Service) authorize(g access.Grant, op access.Operation) error {
	return s.policy.Authorize(g, access.Action{Resource: access.ResourceEvent, Operation: op})
}

func prepare(in Input) (Input, error) {
	in.Date = strings.TrimSpace(in.Date)
	in.Time = strings.TrimSpace(in.Time)
	in.Kind = strings.TrimSpace(in.Kind)
	if err := validation.Struct(in); err != nil {
		return in, err
	}
	in.Time = NormalizeTime(in.Time)
	return in, nil
}

func fromInput(journalID string, in Input) Event {
	return Event{
		JournalID:   journalID,
		Date:        in.Date,
		Time:        in.Time,
		Kind:        in.Kind,
		Description: in.Description,
		Quantity:    in.Quantity,
		Unit:        in.Unit,
		Notes:       in.Notes,
		Favorite:    in.Favorite,
	}
}

// NormalizeTime дополняет час нулем: "8:30" -> "08:30".
// Время хранится строкой, и сортировка должна быть лексикографически верной.
func NormalizeTime(v string) string {
	if len(v) == 4 {
		return "0" + v
	}
	return v
}

func normalizeFilter(f Filter) (Filter, error) {
	f.Kind = strings.TrimSpace(f.Kind)
	f.Search = strings.TrimSpace(f.Search)

	for _, d := range []string{f.DateFrom, f.DateTo} {
		if d == "" {
			continue
		}
		if _, err := time.Parse(time.DateOnly, d); err != nil {
			return f, ErrInvalidFilter
		}
	}

	if f.Limit == 0 {
		f.Limit = DefaultLimit
	}
	if f.Limit > MaxLimit {
		f.Limit = MaxLimit
	}
	return f, nil
}

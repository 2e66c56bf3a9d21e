package journal

import (
	"context"
	"fmt"
	"strings"

	"babyjournal/internal/domain/access"
	"babyjournal/internal/domain/apperr"
	"babyjournal/internal/domain/validation"
	"babyjournal/internal/infrastructure/media"
	"babyjournal/internal/utils/clock"

	"golang.org/x/exp/slog"
)

type Servicer interface {
	Create(ctx context.Context, ownerID int64, sessionID string, in Input) (Journal, error)
	Get(ctx context.Context, g access.Grant) (View, error)
	Update(ctx context.Context, g access.Grant, in Input) (View, error)
	Delete(ctx context.Context, g access.Grant) error
	ListMine(ctx context.Context, userID int64) ([]View, error)
	SetActive(ctx context.Context, g access.Grant, sessionID string) error
	Active(ctx context.Context, userID int64, sessionID string) (View, bool, error)
}

type Service struct {
	repo     Repository
	sessions Sessions
	files    Files
	tx       Transactor
	resolver access.Resolverer
	policy   access.Authorizer
	clock    clock.Clock
	ids      clock.IDGenerator
	log      *slog.Logger
}

type Deps struct {
	Repo     Repository
	Sessions Sessions
	Files    Files
	Tx       Transactor
	Resolver access.Resolverer
	Policy   access.Authorizer
	Clock    clock.Clock
	IDs      clock.IDGenerator
}

func NewService(d Deps, log *slog.Logger) *Service {
	return &Service{
		repo:     d.Repo,
		sessions: d.Sessions,
		files:    d.Files,
		tx:       d.Tx,
		resolver: d.Resolver,
		policy:   d.Policy,
		clock:    d.Clock,
		ids:      d.IDs,
		log:      log.With(slog.String("component", "journal_service")),
	}
}

// Create создает журнал и делает его активным в сессии sessionID (если она есть)
func (s *Service) Create(ctx context.Context, ownerID int64, sessionID string, in Input) (Journal, error) {
	in = normalize(in)
	if err := validation.Struct(in); err != nil {
		return Journal{}, err
	}

	j := Journal{
		ID:        s.ids.New(),
		OwnerID:   ownerID,
		Name:      in.Name,
		BirthDate: optional(in.BirthDate),
		Gender:    optional(in.Gender),
		CreatedAt: s.clock.Now(),
	}
	if err := s.repo.Create(ctx, j); err != nil {
		return Journal{}, fmt.Errorf("create journal: %w", err)
	}

	if sessionID != "" {
		if err := s.sessions.SetActiveJournal(ctx, sessionID, j.ID); err != nil {
			// журнал уже создан, отметка активного не критична
			s.log.Warn("set active journal failed", slog.String("journal_id", j.ID), slog.String("error", err.Error()))
		}
	}

	s.log.Info("journal created", slog.String("journal_id", j.ID), slog.Int64("owner_id", ownerID))
	return j, nil
}

func (s *Service) Get(ctx context.Context, g access.Grant) (View, error) {
	if err := s.policy.Authorize(g, access.Action{Resource: access.ResourceJournal, Operation: access.OpRead}); err != nil {
		return View{}, err
	}

	j, err := s.repo.Get(ctx, g.JournalID)
	if err != nil {
		return View{}, err
	}
	return View{Journal: j, Role: g.Role}, nil
}

// Update полностью перезаписывает имя, дату рождения и пол
func (s *Service) Update(ctx context.Context, g access.Grant, in Input) (View, error) {
	if err := s.policy.Authorize(g, access.Action{Resource: access.ResourceJournal, Operation: access.OpUpdate}); err != nil {
		return View{}, err
	}
	in = normalize(in)
	if err := validation.Struct(in); err != nil {
		return View{}, err
	}

	n, err := s.repo.Update(ctx, Journal{
		ID:        g.JournalID,
		Name:      in.Name,
		BirthDate: optional(in.BirthDate),
		Gender:    optional(in.Gender),
	})
	if err != nil {
		return View{}, fmt.Errorf("update journal: %w", err)
	}
	if n == 0 {
		return View{}, ErrNotFound
	}

	return s.Get(ctx, g)
}

// Delete удаляет журнал, его строки (каскадом) и каталог медиа.
// Файлы переносятся в корзину внутри транзакции: при ошибке они
// возвращаются на место, после коммита удаляются окончательно.
func (s *Service) Delete(ctx context.Context, g access.Grant) error {
	if err := s.policy.Authorize(g, access.Action{Resource: access.ResourceJournal, Operation: access.OpDelete}); err != nil {
		return err
	}

	var stash *media.Stash
	err := s.tx.Transaction(ctx, func(ctx context.Context) error {
		if err := s.sessions.ClearActiveJournal(ctx, g.JournalID); err != nil {
			return err
		}

		n, err := s.repo.Delete(ctx, g.JournalID)
		if err != nil {
			return fmt.Errorf("delete journal: %w", err)
		}
		if n == 0 {
			return ErrNotFound
		}

		st, err := s.files.StashJournal(g.JournalID)
		if err != nil {
			return apperr.Internal("remove journal media", err)
		}
		stash = st
		return nil
	})
	if err != nil {
		if rerr := stash.Restore(); rerr != nil {
			s.log.Error("restore journal media failed", slog.String("journal_id", g.JournalID), slog.String("error", rerr.Error()))
		}
		return err
	}

	if perr := stash.Purge(); perr != nil {
		s.log.Warn("purge journal media failed", slog.String("journal_id", g.JournalID), slog.String("error", perr.Error()))
	}

	s.log.Info("journal deleted", slog.String("journal_id", g.JournalID), slog.Int64("user_id", g.UserID))
	return nil
}

func (s *Service) ListMine(ctx context.Context, userID int64) ([]View, error) {
	views, err := s.repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list journals: %w", err)
	}
	return views, nil
}

func (s *Service) SetActive(ctx context.Context, g access.Grant, sessionID string) error {
	if err := s.policy.Authorize(g, access.Action{Resource: access.ResourceJournal, Operation: access.OpActivate}); err != nil {
		return err
	}
	return s.sessions.SetActiveJournal(ctx, sessionID, g.JournalID)
}

// Active возвращает активный журнал сессии, только если доступ к нему еще есть
func (s *Service) Active(ctx context.Context, userID int64, sessionID string) (View, bool, error) {
	journalID, ok, err := s.sessions.ActiveJournal(ctx, sessionID)
	if err != nil || !ok {
		return View{}, false, err
	}

	g, err := s.resolver.Resolve(ctx, userID, journalID)
	if err != nil {
		if apperr.Is(err, apperr.KindForbidden) {
			return View{}, false, nil
		}
		return View{}, false, err
	}

	v, err := s.Get(ctx, g)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return View{}, false, nil
		}
		return View{}, false, err
	}
	return v, true, nil
}

func normalize(in Input) Input {
	in.Name = strings.TrimSpace(in.Name)
	in.BirthDate = strings.TrimSpace(in.BirthDate)
	in.Gender = strings.TrimSpace(in.Gender)
	return in
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"babyjournal/internal/domain/access"
	"babyjournal/internal/domain/journal"
	"babyjournal/internal/infrastructure/storage"

	sq "github.com/Masterminds/squirrel"
	"golang.org/x/exp/slog"
)

const (
	tableJournals = "journals"
	tableShares   = "journal_shares"
)

var journalColumns = []string{"id", "owner_user_id", "name", "birth_date", "gender", "created_at"}

// JournalRepository обслуживает journal.Repository, access.Repository и backup.Source (в части журнала)
type JournalRepository struct {
	gw  *storage.Gateway
	log *slog.Logger
}

func NewJournalRepository(gw *storage.Gateway, log *slog.Logger) *JournalRepository {
	return &JournalRepository{
		gw:  gw,
		log: log.With(slog.String("component", "journal_repository")),
	}
}

func (r *JournalRepository) Create(ctx context.Context, j journal.Journal) error {
	q := r.gw.Builder().Insert(tableJournals).
		Columns(journalColumns...).
		Values(j.ID, j.OwnerID, j.Name, j.BirthDate, j.Gender, j.CreatedAt)

	if _, err := r.gw.Run(ctx, q); err != nil {
		return fmt.Errorf("insert journal: %w", err)
	}
	return nil
}

func (r *JournalRepository) Get(ctx context.Context, id string) (journal.Journal, error) {
	q := r.gw.Builder().Select(journalColumns...).From(tableJournals).Where(sq.Eq{"id": id})

	var (
		j             journal.Journal
		birth, gender sql.NullString
	)
	err := r.gw.GetOne(ctx, q, &j.ID, &j.OwnerID, &j.Name, &birth, &gender, &j.CreatedAt)
	if errors.Is(err, storage.ErrNoRows) {
		return journal.Journal{}, journal.ErrNotFound
	}
	if err != nil {
		return journal.Journal{}, fmt.Errorf("select journal: %w", err)
	}
	j.BirthDate = nullString(birth)
	j.Gender = nullString(gender)
	return j, nil
}

func (r *JournalRepository) Update(ctx context.Context, j journal.Journal) (int64, error) {
	q := r.gw.Builder().Update(tableJournals).
		Set("name", j.Name).
		Set("birth_date", j.BirthDate).
		Set("gender", j.Gender).
		Where(sq.Eq{"id": j.ID})

	res, err := r.gw.Run(ctx, q)
	if err != nil {
		return 0, fmt.Errorf("update journal: %w", err)
	}
	return res.RowsAffected, nil
}

// Delete удаляет журнал; события, воспоминания и доступы удаляются каскадом
func (r *JournalRepository) Delete(ctx context.Context, id string) (int64, error) {
	res, err := r.gw.Run(ctx, r.gw.Builder().Delete(tableJournals).Where(sq.Eq{"id": id}))
	if err != nil {
		return 0, fmt.Errorf("delete journal: %w", err)
	}
	return res.RowsAffected, nil
}

func (r *JournalRepository) ListForUser(ctx context.Context, userID int64) ([]journal.View, error) {
	q := r.gw.Builder().
		Select("j.id", "j.owner_user_id", "j.name", "j.birth_date", "j.gender", "j.created_at", "s.role").
		From(tableJournals+" j").
		LeftJoin(tableShares+" s ON s.journal_id = j.id AND s.user_id = ?", userID).
		Where(sq.Or{sq.Eq{"j.owner_user_id": userID}, sq.Eq{"s.user_id": userID}}).
		OrderBy("j.created_at DESC")

	var views []journal.View
	err := r.gw.GetMany(ctx, q, func(row storage.Row) error {
		var (
			v                   journal.View
			birth, gender, role sql.NullString
		)
		if err := row.Scan(&v.ID, &v.OwnerID, &v.Name, &birth, &gender, &v.CreatedAt, &role); err != nil {
			return err
		}
		v.BirthDate = nullString(birth)
		v.Gender = nullString(gender)
		v.Role = access.RoleOwner
		if v.OwnerID != userID {
			v.Role = access.Role(role.String)
		}
		views = append(views, v)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list journals: %w", err)
	}
	return views, nil
}

// JournalOwner реализует access.Repository
func (r *JournalRepository) JournalOwner(ctx context.Context, journalID string) (int64, bool, error) {
	q := r.gw.Builder().Select("owner_user_id").From(tableJournals).Where(sq.Eq{"id": journalID})

	var owner int64
	err := r.gw.GetOne(ctx, q, &owner)
	if errors.Is(err, storage.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return owner, true, nil
}

// SharedRole реализует access.Repository
func (r *JournalRepository) SharedRole(ctx context.Context, journalID string, userID int64) (access.Role, bool, error) {
	q := r.gw.Builder().Select("role").From(tableShares).
		Where(sq.Eq{"journal_id": journalID, "user_id": userID})

	var role string
	err := r.gw.GetOne(ctx, q, &role)
	if errors.Is(err, storage.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return access.Role(role), true, nil
}

type ShareRepository struct {
	gw  *storage.Gateway
	log *slog.Logger
}

func NewShareRepository(gw *storage.Gateway, log *slog.Logger) *ShareRepository {
	return &ShareRepository{
		gw:  gw,
		log: log.With(slog.String("component", "share_repository")),
	}
}

// Upsert: повторная выдача меняет роль, а не падает на первичном ключе
func (r *ShareRepository) Upsert(ctx context.Context, journalID string, userID int64, role access.Role, at time.Time) error {
	q := r.gw.Builder().Insert(tableShares).
		Columns("journal_id", "user_id", "role", "shared_at").
		Values(journalID, userID, string(role), at).
		Suffix("ON CONFLICT (journal_id, user_id) DO UPDATE SET role = excluded.role, shared_at = excluded.shared_at")

	if _, err := r.gw.Run(ctx, q); err != nil {
		return fmt.Errorf("upsert share: %w", err)
	}
	return nil
}

func (r *ShareRepository) List(ctx context.Context, journalID string) ([]journal.Share, error) {
	q := r.gw.Builder().
		Select("u.id", "u.name", "u.email", "s.role", "s.shared_at").
		From(tableShares+" s").
		Join(tableUsers+" u ON u.id = s.user_id").
		Where(sq.Eq{"s.journal_id": journalID}).
		OrderBy("s.shared_at ASC", "u.id ASC")

	shares := []journal.Share{}
	err := r.gw.GetMany(ctx, q, func(row storage.Row) error {
		var (
			s    journal.Share
			role string
		)
		if err := row.Scan(&s.UserID, &s.Name, &s.Email, &role, &s.SharedAt); err != nil {
			return err
		}
		s.Role = access.Role(role)
		shares = append(shares, s)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list shares: %w", err)
	}
	return shares, nil
}

func (r *ShareRepository) Delete(ctx context.Context, journalID string, userID int64) (int64, error) {
	q := r.gw.Builder().Delete(tableShares).Where(sq.Eq{"journal_id": journalID, "user_id": userID})
	res, err := r.gw.Run(ctx, q)
	if err != nil {
		return 0, fmt.Errorf("delete share: %w", err)
	}
	return res.RowsAffected, nil
}

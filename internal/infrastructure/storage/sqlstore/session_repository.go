package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"babyjournal/internal/domain/session"
	"babyjournal/internal/infrastructure/storage"

	sq "github.com/Masterminds/squirrel"
	"golang.org/x/exp/slog"
)

const tableSessions = "sessions"

type SessionRepository struct {
	gw  *storage.Gateway
	log *slog.Logger
}

func NewSessionRepository(gw *storage.Gateway, log *slog.Logger) *SessionRepository {
	return &SessionRepository{
		gw:  gw,
		log: log.With(slog.String("component", "session_repository")),
	}
}

func (r *SessionRepository) Create(ctx context.Context, s session.Session) error {
	q := r.gw.Builder().Insert(tableSessions).
		Columns("token_hash", "user_id", "active_journal_id", "expires_at", "created_at").
		Values(s.TokenHash, s.UserID, s.ActiveJournalID, s.ExpiresAt, s.CreatedAt)

	if _, err := r.gw.Run(ctx, q); err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (r *SessionRepository) Find(ctx context.Context, tokenHash string, now time.Time) (session.Session, error) {
	q := r.gw.Builder().
		Select("token_hash", "user_id", "active_journal_id", "expires_at", "created_at").
		From(tableSessions).
		Where(sq.Eq{"token_hash": tokenHash}).
		Where(sq.Gt{"expires_at": now})

	var (
		s      session.Session
		active sql.NullString
	)
	err := r.gw.GetOne(ctx, q, &s.TokenHash, &s.UserID, &active, &s.ExpiresAt, &s.CreatedAt)
	if errors.Is(err, storage.ErrNoRows) {
		return session.Session{}, session.ErrNotFound
	}
	if err != nil {
		return session.Session{}, fmt.Errorf("select session: %w", err)
	}
	s.ActiveJournalID = nullString(active)
	return s, nil
}

func (r *SessionRepository) Delete(ctx context.Context, tokenHash string) error {
	q := r.gw.Builder().Delete(tableSessions).Where(sq.Eq{"token_hash": tokenHash})
	if _, err := r.gw.Run(ctx, q); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (r *SessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	q := r.gw.Builder().Delete(tableSessions).Where(sq.LtOrEq{"expires_at": now})
	res, err := r.gw.Run(ctx, q)
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	return res.RowsAffected, nil
}

func (r *SessionRepository) SetActiveJournal(ctx context.Context, tokenHash string, journalID *string) error {
	q := r.gw.Builder().Update(tableSessions).
		Set("active_journal_id", journalID).
		Where(sq.Eq{"token_hash": tokenHash})

	res, err := r.gw.Run(ctx, q)
	if err != nil {
		return fmt.Errorf("set active journal: %w", err)
	}
	if res.RowsAffected == 0 {
		return session.ErrNotFound
	}
	return nil
}

func (r *SessionRepository) ClearActiveJournal(ctx context.Context, journalID string) (int64, error) {
	q := r.gw.Builder().Update(tableSessions).
		Set("active_journal_id", nil).
		Where(sq.Eq{"active_journal_id": journalID})

	res, err := r.gw.Run(ctx, q)
	if err != nil {
		return 0, fmt.Errorf("clear active journal: %w", err)
	}
	return res.RowsAffected, nil
}

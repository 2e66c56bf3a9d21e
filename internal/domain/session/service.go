package session

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"time"

	"babyjournal/internal/domain/apperr"
	"babyjournal/internal/utils/clock"

	"golang.org/x/exp/slog"
)

const DefaultTTL = 24 * time.Hour

type Servicer interface {
	Create(ctx context.Context, userID int64) (string, error)
	Validate(ctx context.Context, token string) (Identity, error)
	Revoke(ctx context.Context, sessionID string) error
	SetActiveJournal(ctx context.Context, sessionID, journalID string) error
	ActiveJournal(ctx context.Context, sessionID string) (string, bool, error)
	ClearActiveJournal(ctx context.Context, journalID string) error
	PurgeExpired(ctx context.Context) (int64, error)
}

type Service struct {
	repo  Repository
	ttl   time.Duration
	clock clock.Clock
	log   *slog.Logger
}

func NewService(repo Repository, ttl time.Duration, clk clock.Clock, log *slog.Logger) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{
		repo:  repo,
		ttl:   ttl,
		clock: clk,
		log:   log.With(slog.String("component", "session_service")),
	}
}

func (s *Service) Create(ctx context.Context, userID int64) (string, error) {
	// Генерация токена
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}

	token := base64.URLEncoding.EncodeToString(tokenBytes)

	now := s.clock.Now()
	err := s.repo.Create(ctx, Session{
		TokenHash: HashToken(token),
		UserID:    userID,
		ExpiresAt: now.Add(s.ttl),
		CreatedAt: now,
	})
	if err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}

	return token, nil
}

func (s *Service) Validate(ctx context.Context, token string) (Identity, error) {
	if token == "" {
		return Identity{}, ErrInvalidSession
	}

	hash := HashToken(token)
	sess, err := s.repo.Find(ctx, hash, s.clock.Now())
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return Identity{}, ErrInvalidSession
		}
		return Identity{}, fmt.Errorf("find session: %w", err)
	}

	return Identity{UserID: sess.UserID, SessionID: hash}, nil
}

func (s *Service) Revoke(ctx context.Context, sessionID string) error {
	return s.repo.Delete(ctx, sessionID)
}

func (s *Service) SetActiveJournal(ctx context.Context, sessionID, journalID string) error {
	return s.repo.SetActiveJournal(ctx, sessionID, &journalID)
}

func (s *Service) ActiveJournal(ctx context.Context, sessionID string) (string, bool, error) {
	sess, err := s.repo.Find(ctx, sessionID, s.clock.Now())
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	if sess.ActiveJournalID == nil {
		return "", false, nil
	}
	return *sess.ActiveJournalID, true, nil
}

// ClearActiveJournal снимает отметку активного журнала во всех сессиях
func (s *Service) ClearActiveJournal(ctx context.Context, journalID string) error {
	n, err := s.repo.ClearActiveJournal(ctx, journalID)
	if err != nil {
		return fmt.Errorf("clear active journal: %w", err)
	}
	if n > 0 {
		s.log.Debug("active journal cleared", slog.String("journal_id", journalID), slog.Int64("sessions", n))
	}
	return nil
}

func (s *Service) PurgeExpired(ctx context.Context) (int64, error) {
	n, err := s.repo.DeleteExpired(ctx, s.clock.Now())
	if err != nil {
		return 0, fmt.Errorf("purge sessions: %w", err)
	}
	if n > 0 {
		s.log.Info("expired sessions purged", slog.Int64("count", n))
	}
	return n, nil
}

// HashToken - в базе хранится только sha256 от токена
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

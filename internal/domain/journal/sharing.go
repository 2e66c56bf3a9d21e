package journal

import (
	"context"
	"fmt"
	"strings"

	"babyjournal/internal/domain/access"
	"babyjournal/internal/domain/apperr"
	"babyjournal/internal/domain/validation"
	"babyjournal/internal/utils/clock"

	"golang.org/x/exp/slog"
)

type SharingServicer interface {
	Share(ctx context.Context, g access.Grant, req ShareRequest) (Share, error)
	List(ctx context.Context, g access.Grant) ([]Share, error)
	Unshare(ctx context.Context, g access.Grant, targetUserID int64) error
}

type SharingService struct {
	shares ShareRepository
	users  UserFinder
	policy access.Authorizer
	clock  clock.Clock
	log    *slog.Logger
}

func NewSharingService(shares ShareRepository, users UserFinder, policy access.Authorizer, clk clock.Clock, log *slog.Logger) *SharingService {
	return &SharingService{
		shares: shares,
		users:  users,
		policy: policy,
		clock:  clk,
		log:    log.With(slog.String("component", "sharing_service")),
	}
}

// Share выдает (или меняет) роль пользователю с указанным email
func (s *SharingService) Share(ctx context.Context, g access.Grant, req ShareRequest) (Share, error) {
	if err := s.policy.Authorize(g, access.Action{Resource: access.ResourceShare, Operation: access.OpCreate}); err != nil {
		return Share{}, err
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := validation.Struct(req); err != nil {
		return Share{}, err
	}

	invitee, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return Share{}, ErrInviteeNotFound
		}
		return Share{}, fmt.Errorf("find invitee: %w", err)
	}
	if invitee.ID == g.UserID {
		return Share{}, ErrShareWithSelf
	}

	now := s.clock.Now()
	if err := s.shares.Upsert(ctx, g.JournalID, invitee.ID, req.Role, now); err != nil {
		return Share{}, fmt.Errorf("share journal: %w", err)
	}

	s.log.Info("journal shared",
		slog.String("journal_id", g.JournalID),
		slog.Int64("user_id", invitee.ID),
		slog.String("role", string(req.Role)))

	return Share{
		UserID:   invitee.ID,
		Name:     invitee.Name,
		Email:    invitee.Email,
		Role:     req.Role,
		SharedAt: now,
	}, nil
}

func (s *SharingService) List(ctx context.Context, g access.Grant) ([]Share, error) {
	if err := s.policy.Authorize(g, access.Action{Resource: access.ResourceShare, Operation: access.OpRead}); err != nil {
		return nil, err
	}

	shares, err := s.shares.List(ctx, g.JournalID)
	if err != nil {
		return nil, fmt.Errorf("list shares: %w", err)
	}
	return shares, nil
}

func (s *SharingService) Unshare(ctx context.Context, g access.Grant, targetUserID int64) error {
	if err := s.policy.Authorize(g, access.Action{Resource: access.ResourceShare, Operation: access.OpDelete}); err != nil {
		return err
	}
	if targetUserID == g.UserID {
		return ErrUnshareSelf
	}

	n, err := s.shares.Delete(ctx, g.JournalID, targetUserID)
	if err != nil {
		return fmt.Errorf("unshare journal: %w", err)
	}
	if n == 0 {
		return ErrShareNotFound
	}

	s.log.Info("journal unshared", slog.String("journal_id", g.JournalID), slog.Int64("user_id", targetUserID))
	return nil
}

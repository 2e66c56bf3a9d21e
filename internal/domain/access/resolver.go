package access

import (
	"context"
	"fmt"

	"golang.org/x/exp/slog"
)

type Resolverer interface {
	Resolve(ctx context.Context, requesterID int64, journalID string) (Grant, error)
}

type Resolver struct {
	repo Repository
	log  *slog.Logger
}

func NewResolver(repo Repository, log *slog.Logger) *Resolver {
	return &Resolver{
		repo: repo,
		log:  log.With(slog.String("component", "access_resolver")),
	}
}

// Resolve вычисляет роль requesterID в журнале journalID.
// Порядок проверок: id журнала, наличие сессии, владение, шаринг.
func (r *Resolver) Resolve(ctx context.Context, requesterID int64, journalID string) (Grant, error) {
	if journalID == "" {
		return Grant{}, ErrMissingJournalID
	}
	if requesterID == 0 {
		return Grant{}, ErrUnauthenticated
	}

	ownerID, found, err := r.repo.JournalOwner(ctx, journalID)
	if err != nil {
		return Grant{}, fmt.Errorf("journal owner: %w", err)
	}
	if found && ownerID == requesterID {
		return Grant{JournalID: journalID, UserID: requesterID, Role: RoleOwner}, nil
	}

	role, found, err := r.repo.SharedRole(ctx, journalID, requesterID)
	if err != nil {
		return Grant{}, fmt.Errorf("shared role: %w", err)
	}
	if found && role.Shareable() {
		return Grant{JournalID: journalID, UserID: requesterID, Role: role}, nil
	}

	r.log.Debug("access denied", slog.String("journal_id", journalID), slog.Int64("user_id", requesterID))
	return Grant{}, ErrAccessDenied
}

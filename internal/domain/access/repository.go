package access

import "context"

type Repository interface {
	// JournalOwner возвращает владельца; found=false, если журнала нет
	JournalOwner(ctx context.Context, journalID string) (ownerID int64, found bool, err error)
	SharedRole(ctx context.Context, journalID string, userID int64) (role Role, found bool, err error)
}

package journal

import (
	"time"

	"babyjournal/internal/domain/access"
)

type Journal struct {
	ID        string
	OwnerID   int64
	Name      string
	BirthDate *string // YYYY-MM-DD
	Gender    *string
	CreatedAt time.Time
}

// View - журнал вместе с ролью того, кто его запросил
type View struct {
	Journal
	Role access.Role
}

// Share - участник журнала (владелец сюда не входит)
type Share struct {
	UserID   int64
	Name     string
	Email    string
	Role     access.Role
	SharedAt time.Time
}

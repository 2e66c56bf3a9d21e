package event

import "time"

type Event struct {
	ID          int64
	JournalID   string
	Date        string // YYYY-MM-DD
	Time        string // HH:MM
	Kind        string
	Description string
	Quantity    *float64
	Unit        string
	Notes       string
	Favorite    bool
	CreatedAt   time.Time
}

// Filter - условия объединяются через AND; пустые поля не фильтруют
type Filter struct {
	Kind         string
	DateFrom     string
	DateTo       string
	FavoriteOnly bool
	Search       string // подстрока в description или notes
	Limit        uint64
	Offset       uint64
}

// Page - страница событий; Total не зависит от Limit/Offset
type Page struct {
	Items []Event
	Total int64
}

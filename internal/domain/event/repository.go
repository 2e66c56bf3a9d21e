package event

import "context"

type Repository interface {
	Create(ctx context.Context, e Event) (int64, error)
	// Get ищет по паре (journalID, id); чужой журнал - ErrNotFound
	Get(ctx context.Context, journalID string, id int64) (Event, error)
	Update(ctx context.Context, e Event) (int64, error)
	Delete(ctx context.Context, journalID string, id int64) (int64, error)
	// List сортирует по дате и времени по убыванию
	List(ctx context.Context, journalID string, f Filter) ([]Event, error)
	Count(ctx context.Context, journalID string, f Filter) (int64, error)
}

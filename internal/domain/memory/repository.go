package memory

import (
	"context"
	"io"
)

type Repository interface {
	Create(ctx context.Context, m Memory) (int64, error)
	Get(ctx context.Context, journalID string, id int64) (Memory, error)
	Update(ctx context.Context, m Memory) (int64, error)
	Delete(ctx context.Context, journalID string, id int64) (int64, error)
	// List сортирует по дате и времени загрузки по убыванию
	List(ctx context.Context, journalID string, f Filter) ([]Memory, error)
	Count(ctx context.Context, journalID string, f Filter) (int64, error)
}

type Thumbnailer interface {
	Generate(dst io.Writer, src io.Reader) error
	Ext() string
}

type Transactor interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

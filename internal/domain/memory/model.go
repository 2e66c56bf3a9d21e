package memory

import (
	"io"
	"time"
)

type Kind string

const (
	KindPhoto Kind = "photo"
	KindVideo Kind = "video"
)

type Memory struct {
	ID           int64
	JournalID    string
	Kind         Kind
	FileURL      string
	ThumbnailURL *string // только у фото
	Date         string
	Description  string
	Favorite     bool
	UploadedAt   time.Time
}

// Upload - загруженный файл; Size может быть 0, если размер заранее неизвестен
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type Filter struct {
	Kind         Kind
	FavoriteOnly bool
	Search       string // подстрока в description
	Limit        uint64
	Offset       uint64
}

type Page struct {
	Items []Memory
	Total int64
}

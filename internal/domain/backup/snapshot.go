package backup

import (
	"time"

	"babyjournal/internal/domain/event"
	"babyjournal/internal/domain/journal"
	"babyjournal/internal/domain/memory"

	"github.com/samber/lo"
)

// Формат файлов data/*.json внутри архива

type journalRecord struct {
	ID        string    `json:"id"`
	OwnerID   int64     `json:"owner_user_id"`
	Name      string    `json:"name"`
	BirthDate *string   `json:"birth_date"`
	Gender    *string   `json:"gender"`
	CreatedAt time.Time `json:"created_at"`
}

type eventRecord struct {
	ID          int64     `json:"id"`
	JournalID   string    `json:"journal_id"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Kind        string    `json:"kind"`
	Description string    `json:"description"`
	Quantity    *float64  `json:"quantity"`
	Unit        string    `json:"unit"`
	Notes       string    `json:"notes"`
	Favorite    bool      `json:"favorite"`
	CreatedAt   time.Time `json:"created_at"`
}

type memoryRecord struct {
	ID           int64     `json:"id"`
	JournalID    string    `json:"journal_id"`
	Kind         string    `json:"kind"`
	FileURL      string    `json:"file_url"`
	ThumbnailURL *string   `json:"thumbnail_url"`
	Date         string    `json:"date"`
	Description  string    `json:"description"`
	Favorite     bool      `json:"favorite"`
	UploadedAt   time.Time `json:"uploaded_at"`
}

type shareRecord struct {
	JournalID string    `json:"journal_id"`
	UserID    int64     `json:"user_id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	SharedAt  time.Time `json:"shared_at"`
}

func journalSnapshot(j journal.Journal) journalRecord {
	return journalRecord{
		ID:        j.ID,
		OwnerID:   j.OwnerID,
		Name:      j.Name,
		BirthDate: j.BirthDate,
		Gender:    j.Gender,
		CreatedAt: j.CreatedAt,
	}
}

func eventsSnapshot(items []event.Event) []eventRecord {
	return lo.Map(items, func(e event.Event, _ int) eventRecord {
		return eventRecord{
			ID:          e.ID,
			JournalID:   e.JournalID,
			Date:        e.Date,
			Time:        e.Time,
			Kind:        e.Kind,
			Description: e.Description,
			Quantity:    e.Quantity,
			Unit:        e.Unit,
			Notes:       e.Notes,
			Favorite:    e.Favorite,
			CreatedAt:   e.CreatedAt,
		}
	})
}

func memoriesSnapshot(items []memory.Memory) []memoryRecord {
	return lo.Map(items, func(m memory.Memory, _ int) memoryRecord {
		return memoryRecord{
			ID:           m.ID,
			JournalID:    m.JournalID,
			Kind:         string(m.Kind),
			FileURL:      m.FileURL,
			ThumbnailURL: m.ThumbnailURL,
			Date:         m.Date,
			Description:  m.Description,
			Favorite:     m.Favorite,
			UploadedAt:   m.UploadedAt,
		}
	})
}

func sharesSnapshot(journalID string, items []journal.Share) []shareRecord {
	return lo.Map(items, func(s journal.Share, _ int) shareRecord {
		return shareRecord{
			JournalID: journalID,
			UserID:    s.UserID,
			Email:     s.Email,
			Role:      string(s.Role),
			SharedAt:  s.SharedAt,
		}
	})
}

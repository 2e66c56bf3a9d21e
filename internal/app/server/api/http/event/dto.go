package event

import (
	"time"

	"babyjournal/internal/domain/event"

	"github.com/samber/lo"
)

type journalPath struct {
	JournalID string `path:"journalId" doc:"Идентификатор журнала"`
}

type itemPath struct {
	journalPath
	ID int64 `path:"id" example:"1" doc:"ID события"`
}

type listInput struct {
	journalPath
	Kind         string `query:"kind" doc:"Тип события"`
	DateFrom     string `query:"date_from" example:"2024-01-01" doc:"Начало периода включительно"`
	DateTo       string `query:"date_to" example:"2024-01-31" doc:"Конец периода включительно"`
	FavoriteOnly bool   `query:"favorite" doc:"Только избранные"`
	Search       string `query:"search" doc:"Подстрока в описании или заметках"`
	Limit        uint64 `query:"limit" default:"10" maximum:"100"`
	Offset       uint64 `query:"offset" default:"0"`
}

func (in listInput) filter() event.Filter {
	return event.Filter{
		Kind:         in.Kind,
		DateFrom:     in.DateFrom,
		DateTo:       in.DateTo,
		FavoriteOnly: in.FavoriteOnly,
		Search:       in.Search,
		Limit:        in.Limit,
		Offset:       in.Offset,
	}
}

type createInput struct {
	journalPath
	Body request
}

type updateInput struct {
	itemPath
	Body request
}

type request struct {
	_           struct{} `json:"-" additionalProperties:"true"`
	Date        string   `json:"date" required:"false" example:"2024-01-15"`
	Time        string   `json:"time" required:"false" example:"08:30" doc:"H:MM или HH:MM"`
	Kind        string   `json:"kind" required:"false" example:"feeding"`
	Description string   `json:"description" required:"false"`
	Quantity    *float64 `json:"quantity" required:"false"`
	Unit        string   `json:"unit" required:"false" example:"ml"`
	Notes       string   `json:"notes" required:"false"`
	Favorite    bool     `json:"favorite" required:"false"`
}

func (r request) toDomain() event.Input {
	return event.Input{
		Date:        r.Date,
		Time:        r.Time,
		Kind:        r.Kind,
		Description: r.Description,
		Quantity:    r.Quantity,
		Unit:        r.Unit,
		Notes:       r.Notes,
		Favorite:    r.Favorite,
	}
}

type output struct {
	Body response
}

type listOutput struct {
	Body pageResponse
}

type pageResponse struct {
	Items []response `json:"items"`
	Total int64      `json:"total" doc:"Число событий под фильтром без учета limit/offset"`
}

type response struct {
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

func toResponse(e event.Event) response {
	return response{
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
}

func toPage(p event.Page) pageResponse {
	return pageResponse{
		Items: lo.Map(p.Items, func(e event.Event, _ int) response { return toResponse(e) }),
		Total: p.Total,
	}
}

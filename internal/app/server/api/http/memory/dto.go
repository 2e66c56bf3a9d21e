package memory

import (
	"mime/multipart"
	"strconv"
	"time"

	"babyjournal/internal/domain/memory"

	"github.com/samber/lo"
)

// FormField - поле multipart-формы с файлом
const FormField = "media"

type journalPath struct {
	JournalID string `path:"journalId" doc:"Идентификатор журнала"`
}

type itemPath struct {
	journalPath
	ID int64 `path:"id" example:"1" doc:"ID воспоминания"`
}

type listInput struct {
	journalPath
	Kind         string `query:"kind" enum:"photo,video" doc:"photo или video"`
	FavoriteOnly bool   `query:"favorite" doc:"Только избранные"`
	Search       string `query:"search" doc:"Подстрока в описании"`
	Limit        uint64 `query:"limit" default:"12" maximum:"100"`
	Offset       uint64 `query:"offset" default:"0"`
}

func (in listInput) filter() memory.Filter {
	return memory.Filter{
		Kind:         memory.Kind(in.Kind),
		FavoriteOnly: in.FavoriteOnly,
		Search:       in.Search,
		Limit:        in.Limit,
		Offset:       in.Offset,
	}
}

// uploadInput - поля date, description, favorite и файл media
type uploadInput struct {
	journalPath
	RawBody multipart.Form
}

func (in *uploadInput) meta() memory.Input {
	favorite, _ := strconv.ParseBool(formValue(&in.RawBody, "favorite"))
	return memory.Input{
		Date:        formValue(&in.RawBody, "date"),
		Description: formValue(&in.RawBody, "description"),
		Favorite:    favorite,
	}
}

func formValue(f *multipart.Form, key string) string {
	if v := f.Value[key]; len(v) > 0 {
		return v[0]
	}
	return ""
}

type updateInput struct {
	itemPath
	Body updateRequest
}

type updateRequest struct {
	_           struct{} `json:"-" additionalProperties:"true"`
	Date        string   `json:"date" required:"false" example:"2024-01-15"`
	Description string   `json:"description" required:"false"`
	Favorite    bool     `json:"favorite" required:"false"`
}

func (r updateRequest) toDomain() memory.Input {
	return memory.Input{Date: r.Date, Description: r.Description, Favorite: r.Favorite}
}

type output struct {
	Body response
}

type listOutput struct {
	Body pageResponse
}

type pageResponse struct {
	Items []response `json:"items"`
	Total int64      `json:"total"`
}

type response struct {
	ID           int64     `json:"id"`
	JournalID    string    `json:"journal_id"`
	Kind         string    `json:"kind" enum:"photo,video"`
	FileURL      string    `json:"file_url"`
	ThumbnailURL *string   `json:"thumbnail_url"`
	Date         string    `json:"date"`
	Description  string    `json:"description"`
	Favorite     bool      `json:"favorite"`
	UploadedAt   time.Time `json:"uploaded_at"`
}

func toResponse(m memory.Memory) response {
	return response{
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
}

func toPage(p memory.Page) pageResponse {
	return pageResponse{
		Items: lo.Map(p.Items, func(m memory.Memory, _ int) response { return toResponse(m) }),
		Total: p.Total,
	}
}

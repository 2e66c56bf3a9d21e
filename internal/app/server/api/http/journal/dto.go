package journal

import (
	"time"

	"babyjournal/internal/domain/access"
	"babyjournal/internal/domain/journal"

	"github.com/samber/lo"
)

type journalPath struct {
	JournalID string `path:"journalId" doc:"Идентификатор журнала"`
}

type createInput struct {
	Body request
}

type updateInput struct {
	journalPath
	Body request
}

type request struct {
	_         struct{} `json:"-" additionalProperties:"true"`
	Name      string   `json:"name" required:"false" doc:"Имя малыша или название журнала"`
	BirthDate string   `json:"birth_date" required:"false" example:"2024-01-15"`
	Gender    string   `json:"gender" required:"false"`
}

func (r request) toDomain() journal.Input {
	return journal.Input{Name: r.Name, BirthDate: r.BirthDate, Gender: r.Gender}
}

type output struct {
	Body Response
}

type listOutput struct {
	Body []Response
}

type activeOutput struct {
	Body activeResponse
}

type activeResponse struct {
	Journal *Response `json:"journal" doc:"null, если активный журнал не выбран"`
}

// Response - журнал вместе с ролью запрашивающего
type Response struct {
	ID        string    `json:"id"`
	OwnerID   int64     `json:"owner_user_id"`
	Name      string    `json:"name"`
	BirthDate *string   `json:"birth_date"`
	Gender    *string   `json:"gender"`
	Role      string    `json:"role" enum:"owner,editor,reader"`
	CreatedAt time.Time `json:"created_at"`
}

func ToResponse(v journal.View) Response {
	return Response{
		ID:        v.ID,
		OwnerID:   v.OwnerID,
		Name:      v.Name,
		BirthDate: v.BirthDate,
		Gender:    v.Gender,
		Role:      string(v.Role),
		CreatedAt: v.CreatedAt,
	}
}

func toResponses(views []journal.View) []Response {
	return lo.Map(views, func(v journal.View, _ int) Response { return ToResponse(v) })
}

type shareInput struct {
	journalPath
	Body shareRequest
}

type shareRequest struct {
	_     struct{} `json:"-" additionalProperties:"true"`
	Email string   `json:"email" required:"false" example:"grandma@example.com"`
	Role  string   `json:"role" required:"false" doc:"editor или reader"`
}

type unshareInput struct {
	journalPath
	UserID int64 `path:"userId" doc:"Пользователь, у которого отзывается доступ"`
}

type shareOutput struct {
	Body shareResponse
}

type sharesOutput struct {
	Body []shareResponse
}

type shareResponse struct {
	UserID   int64     `json:"user_id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Role     string    `json:"role" enum:"editor,reader"`
	SharedAt time.Time `json:"shared_at"`
}

func toShareResponse(s journal.Share) shareResponse {
	return shareResponse{
		UserID:   s.UserID,
		Name:     s.Name,
		Email:    s.Email,
		Role:     string(s.Role),
		SharedAt: s.SharedAt,
	}
}

func (r shareRequest) toDomain() journal.ShareRequest {
	return journal.ShareRequest{Email: r.Email, Role: access.Role(r.Role)}
}

package user

import (
	"net/http"
	"time"

	"babyjournal/internal/app/server/api/http/journal"
	"babyjournal/internal/domain/user"
)

type registerInput struct {
	Body registerRequest
}

type registerRequest struct {
	Name     string `json:"name" required:"false" doc:"Имя"`
	Email    string `json:"email" required:"false" example:"ana@example.com"`
	Password string `json:"password" required:"false" doc:"Не короче 8 символов"`
}

type loginInput struct {
	Body loginRequest
}

type loginRequest struct {
	Email    string `json:"email" required:"false" example:"ana@example.com"`
	Password string `json:"password" required:"false"`
}

// authOutput - ответ регистрации и логина; токен также уходит в cookie
type authOutput struct {
	SetCookie http.Cookie `header:"Set-Cookie"`
	Body      authResponse
}

type authResponse struct {
	User  userResponse `json:"user"`
	Token string       `json:"token" doc:"Bearer-токен сессии"`
}

type logoutOutput struct {
	SetCookie http.Cookie `header:"Set-Cookie"`
}

type sessionOutput struct {
	Body sessionResponse
}

type sessionResponse struct {
	Authenticated bool              `json:"authenticated"`
	User          *userResponse     `json:"user"`
	ActiveJournal *journal.Response `json:"active_journal"`
}

type userResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role" enum:"user,admin"`
	CreatedAt time.Time `json:"created_at"`
}

func toResponse(u user.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

package journal

import "babyjournal/internal/domain/access"

// Input - все три изменяемых поля; пустые дата и пол пишутся как NULL
type Input struct {
	Name      string `json:"name" validate:"required,max=120"`
	BirthDate string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	Gender    string `json:"gender" validate:"omitempty,max=30"`
}

type ShareRequest struct {
	Email string      `json:"email" validate:"required,email"`
	Role  access.Role `json:"role" validate:"required,oneof=editor reader"`
}

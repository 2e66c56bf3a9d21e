package journal

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

var bearer = []map[string][]string{{"bearer": {}}}

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "journal-list",
		Method:      http.MethodGet,
		Path:        "/api/journals",
		Summary:     "Свои и расшаренные журналы",
		Tags:        []string{"journals"},
		Security:    bearer,
		Middlewares: h.authed,
	}
}

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID:   "journal-create",
		Method:        http.MethodPost,
		Path:          "/api/journals",
		Summary:       "Создать журнал",
		Description:   "Создатель становится владельцем; журнал сразу становится активным в сессии.",
		Tags:          []string{"journals"},
		DefaultStatus: http.StatusCreated,
		Security:      bearer,
		Middlewares:   h.authed,
	}
}

func (h *Handler) activeOp() huma.Operation {
	return huma.Operation{
		OperationID: "journal-active",
		Method:      http.MethodGet,
		Path:        "/api/journals/active",
		Summary:     "Активный журнал сессии",
		Tags:        []string{"journals"},
		Security:    bearer,
		Middlewares: h.authed,
	}
}

func (h *Handler) setActiveOp() huma.Operation {
	return huma.Operation{
		OperationID:   "journal-set-active",
		Method:        http.MethodPost,
		Path:          "/api/journals/{journalId}/active",
		Summary:       "Выбрать активный журнал",
		Tags:          []string{"journals"},
		DefaultStatus: http.StatusNoContent,
		Security:      bearer,
		Middlewares:   h.scoped,
	}
}

func (h *Handler) getOp() huma.Operation {
	return huma.Operation{
		OperationID: "journal-get",
		Method:      http.MethodGet,
		Path:        "/api/journals/{journalId}",
		Summary:     "Получить журнал",
		Tags:        []string{"journals"},
		Security:    bearer,
		Middlewares: h.scoped,
	}
}

func (h *Handler) updateOp() huma.Operation {
	return huma.Operation{
		OperationID: "journal-update",
		Method:      http.MethodPut,
		Path:        "/api/journals/{journalId}",
		Summary:     "Обновить журнал",
		Description: "Полная перезапись имени, даты рождения и пола. Владелец или редактор.",
		Tags:        []string{"journals"},
		Security:    bearer,
		Middlewares: h.scoped,
	}
}

func (h *Handler) deleteOp() huma.Operation {
	return huma.Operation{
		OperationID:   "journal-delete",
		Method:        http.MethodDelete,
		Path:          "/api/journals/{journalId}",
		Summary:       "Удалить журнал",
		Description:   "Только владелец. Удаляет события, воспоминания, доступы и медиафайлы.",
		Tags:          []string{"journals"},
		DefaultStatus: http.StatusNoContent,
		Security:      bearer,
		Middlewares:   h.scoped,
	}
}

func (h *Handler) shareOp() huma.Operation {
	return huma.Operation{
		OperationID: "journal-share",
		Method:      http.MethodPost,
		Path:        "/api/journals/{journalId}/shares",
		Summary:     "Выдать доступ по email",
		Tags:        []string{"shares"},
		Security:    bearer,
		Middlewares: h.scoped,
	}
}

func (h *Handler) listSharesOp() huma.Operation {
	return huma.Operation{
		OperationID: "journal-shares",
		Method:      http.MethodGet,
		Path:        "/api/journals/{journalId}/shares",
		Summary:     "Кому выдан доступ",
		Tags:        []string{"shares"},
		Security:    bearer,
		Middlewares: h.scoped,
	}
}

func (h *Handler) unshareOp() huma.Operation {
	return huma.Operation{
		OperationID:   "journal-unshare",
		Method:        http.MethodDelete,
		Path:          "/api/journals/{journalId}/shares/{userId}",
		Summary:       "Отозвать доступ",
		Tags:          []string{"shares"},
		DefaultStatus: http.StatusNoContent,
		Security:      bearer,
		Middlewares:   h.scoped,
	}
}

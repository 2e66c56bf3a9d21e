package event

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

var bearer = []map[string][]string{{"bearer": {}}}

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "event-list",
		Method:      http.MethodGet,
		Path:        "/api/journals/{journalId}/events",
		Summary:     "События журнала",
		Description: "Фильтры объединяются через AND. Сортировка по дате и времени, новые первыми.",
		Tags:        []string{"events"},
		Security:    bearer,
		Middlewares: h.middleware,
	}
}

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID:   "event-create",
		Method:        http.MethodPost,
		Path:          "/api/journals/{journalId}/events",
		Summary:       "Записать событие",
		Tags:          []string{"events"},
		DefaultStatus: http.StatusCreated,
		Security:      bearer,
		Middlewares:   h.middleware,
	}
}

func (h *Handler) getOp() huma.Operation {
	return huma.Operation{
		OperationID: "event-get",
		Method:      http.MethodGet,
		Path:        "/api/journals/{journalId}/events/{id}",
		Summary:     "Получить событие",
		Tags:        []string{"events"},
		Security:    bearer,
		Middlewares: h.middleware,
	}
}

func (h *Handler) updateOp() huma.Operation {
	return huma.Operation{
		OperationID: "event-update",
		Method:      http.MethodPut,
		Path:        "/api/journals/{journalId}/events/{id}",
		Summary:     "Обновить событие",
		Tags:        []string{"events"},
		Security:    bearer,
		Middlewares: h.middleware,
	}
}

func (h *Handler) deleteOp() huma.Operation {
	return huma.Operation{
		OperationID:   "event-delete",
		Method:        http.MethodDelete,
		Path:          "/api/journals/{journalId}/events/{id}",
		Summary:       "Удалить событие",
		Tags:          []string{"events"},
		DefaultStatus: http.StatusNoContent,
		Security:      bearer,
		Middlewares:   h.middleware,
	}
}

package memory

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

var bearer = []map[string][]string{{"bearer": {}}}

// запас на поля формы и заголовки multipart поверх лимита файла
const formOverhead = 1 << 20

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "memory-list",
		Method:      http.MethodGet,
		Path:        "/api/journals/{journalId}/memories",
		Summary:     "Фото и видео журнала",
		Tags:        []string{"memories"},
		Security:    bearer,
		Middlewares: h.middleware,
	}
}

func (h *Handler) uploadOp() huma.Operation {
	return huma.Operation{
		OperationID:   "memory-upload",
		Method:        http.MethodPost,
		Path:          "/api/journals/{journalId}/memories",
		Summary:       "Загрузить фото или видео",
		Description:   "multipart/form-data: файл в поле media, поля date, description, favorite. Для фото создается миниатюра.",
		Tags:          []string{"memories"},
		DefaultStatus: http.StatusCreated,
		MaxBodyBytes:  h.maxBytes + formOverhead,
		Security:      bearer,
		Middlewares:   h.middleware,
	}
}

func (h *Handler) getOp() huma.Operation {
	return huma.Operation{
		OperationID: "memory-get",
		Method:      http.MethodGet,
		Path:        "/api/journals/{journalId}/memories/{id}",
		Summary:     "Получить воспоминание",
		Tags:        []string{"memories"},
		Security:    bearer,
		Middlewares: h.middleware,
	}
}

func (h *Handler) updateOp() huma.Operation {
	return huma.Operation{
		OperationID: "memory-update",
		Method:      http.MethodPut,
		Path:        "/api/journals/{journalId}/memories/{id}",
		Summary:     "Изменить дату, описание или избранное",
		Tags:        []string{"memories"},
		Security:    bearer,
		Middlewares: h.middleware,
	}
}

func (h *Handler) deleteOp() huma.Operation {
	return huma.Operation{
		OperationID:   "memory-delete",
		Method:        http.MethodDelete,
		Path:          "/api/journals/{journalId}/memories/{id}",
		Summary:       "Удалить воспоминание вместе с файлами",
		Tags:          []string{"memories"},
		DefaultStatus: http.StatusNoContent,
		Security:      bearer,
		Middlewares:   h.middleware,
	}
}

package settings

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

var bearer = []map[string][]string{{"bearer": {}}}

func (h *Handler) getVisualOp() huma.Operation {
	return huma.Operation{
		OperationID: "settings-visual-get",
		Method:      http.MethodGet,
		Path:        "/api/settings/user",
		Summary:     "Тема пользователя",
		Tags:        []string{"settings"},
		Security:    bearer,
		Middlewares: h.middleware,
	}
}

func (h *Handler) putVisualOp() huma.Operation {
	return huma.Operation{
		OperationID: "settings-visual-put",
		Method:      http.MethodPut,
		Path:        "/api/settings/user",
		Summary:     "Сохранить тему пользователя",
		Tags:        []string{"settings"},
		Security:    bearer,
		Middlewares: h.middleware,
	}
}

func (h *Handler) getSiteOp() huma.Operation {
	return huma.Operation{
		OperationID: "admin-site-get",
		Method:      http.MethodGet,
		Path:        "/api/admin/site-settings",
		Summary:     "Настройки сайта",
		Description: "Только администратор.",
		Tags:        []string{"admin"},
		Security:    bearer,
		Middlewares: h.middleware,
	}
}

func (h *Handler) putSiteOp() huma.Operation {
	return huma.Operation{
		OperationID: "admin-site-put",
		Method:      http.MethodPut,
		Path:        "/api/admin/site-settings",
		Summary:     "Изменить настройки сайта",
		Description: "Только администратор. Управляет названием сайта и открытой регистрацией.",
		Tags:        []string{"admin"},
		Security:    bearer,
		Middlewares: h.middleware,
	}
}

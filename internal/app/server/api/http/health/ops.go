package health

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) healthCheckOp() huma.Operation {
	return huma.Operation{
		OperationID:   "health-check",
		Method:        http.MethodGet,
		Path:          "/api/v1/health",
		Summary:       "Состояние дневника",
		Description:   "Пингует базу и каталог медиа. Если хотя бы один компонент недоступен - 503 и status=degraded",
		Tags:          []string{"health"},
		DefaultStatus: http.StatusOK,
		Middlewares:   h.middleware,
	}
}

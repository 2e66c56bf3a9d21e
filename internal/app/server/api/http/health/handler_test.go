package health

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

type stubPinger struct {
	err error
}

func (p stubPinger) Ping(context.Context) error {
	return p.err
}

func TestHandler_healthCheck(t *testing.T) {
	down := errors.New("connection refused")

	tests := []struct {
		name       string
		storageErr error
		mediaErr   error
		want       Report
		wantStatus int
	}{
		{
			name:       "all components up",
			want:       Report{Status: "ok", Storage: "up", Media: "up"},
			wantStatus: http.StatusOK,
		},
		{
			name:       "database down",
			storageErr: down,
			want:       Report{Status: "degraded", Storage: "down", Media: "up"},
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name:       "media dir unavailable",
			mediaErr:   errors.New("permission denied"),
			want:       Report{Status: "degraded", Storage: "up", Media: "down"},
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name:       "everything down",
			storageErr: down,
			mediaErr:   down,
			want:       Report{Status: "degraded", Storage: "down", Media: "down"},
			wantStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewHandler(Components{
				Storage: stubPinger{err: tt.storageErr},
				Media:   stubPinger{err: tt.mediaErr},
			}, slog.Default(), huma.Middlewares{})

			output, err := handler.healthCheck(context.Background(), &Input{})

			require.NoError(t, err)
			require.NotNil(t, output)
			assert.Equal(t, tt.wantStatus, output.Status)
			assert.Equal(t, tt.want, output.Body)
		})
	}
}

func TestNewHandler(t *testing.T) {
	handler := NewHandler(Components{Storage: stubPinger{}, Media: stubPinger{}}, slog.Default(), huma.Middlewares{})

	assert.NotNil(t, handler)
	assert.NotNil(t, handler.log)
	assert.NotNil(t, handler.middleware)
}

package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{name: "nil", err: nil, want: ""},
		{name: "plain error", err: errors.New("boom"), want: KindInternal},
		{name: "not found", err: NotFound("journal not found"), want: KindNotFound},
		{name: "wrapped forbidden", err: fmt.Errorf("delete: %w", Forbidden("access denied")), want: KindForbidden},
		{name: "internal with cause", err: Internal("db", errors.New("closed")), want: KindInternal},
		{name: "too large", err: New(KindTooLarge, "file too large"), want: KindTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestDomainError_Is(t *testing.T) {
	sentinel := NotFound("event not found")

	assert.True(t, errors.Is(fmt.Errorf("get: %w", sentinel), sentinel))
	assert.True(t, errors.Is(NotFound("event not found"), sentinel))
	assert.False(t, errors.Is(NotFound("memory not found"), sentinel))
	assert.False(t, errors.Is(BadRequest("event not found"), sentinel))
}

func TestDomainError_Error(t *testing.T) {
	cause := errors.New("disk full")

	assert.Equal(t, "write failed", Wrap(KindInternal, "write failed", cause).Error())
	assert.Equal(t, "disk full", (&DomainError{Err: cause, Code: KindInternal}).Error())
	assert.ErrorIs(t, Internal("write failed", cause), cause)
	assert.True(t, Is(Conflict("email taken"), KindConflict))
	assert.False(t, Is(nil, KindConflict))
}

package access

import (
	"context"
	"errors"
	"testing"

	"babyjournal/internal/domain/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) JournalOwner(ctx context.Context, journalID string) (int64, bool, error) {
	args := m.Called(ctx, journalID)
	return args.Get(0).(int64), args.Bool(1), args.Error(2)
}

func (m *MockRepository) SharedRole(ctx context.Context, journalID string, userID int64) (Role, bool, error) {
	args := m.Called(ctx, journalID, userID)
	return args.Get(0).(Role), args.Bool(1), args.Error(2)
}

func TestResolver_Resolve(t *testing.T) {
	tests := []struct {
		name      string
		requester int64
		journalID string
		setup     func(m *MockRepository)
		wantRole  Role
		wantKind  apperr.Kind
	}{
		{
			name:      "missing journal id checked first",
			requester: 0,
			journalID: "",
			setup:     func(*MockRepository) {},
			wantKind:  apperr.KindBadRequest,
		},
		{
			name:      "no session",
			requester: 0,
			journalID: "j-1",
			setup:     func(*MockRepository) {},
			wantKind:  apperr.KindUnauthenticated,
		},
		{
			name:      "owner",
			requester: 1,
			journalID: "j-1",
			setup: func(m *MockRepository) {
				m.On("JournalOwner", mock.Anything, "j-1").Return(int64(1), true, nil)
			},
			wantRole: RoleOwner,
		},
		{
			name:      "shared editor",
			requester: 2,
			journalID: "j-1",
			setup: func(m *MockRepository) {
				m.On("JournalOwner", mock.Anything, "j-1").Return(int64(1), true, nil)
				m.On("SharedRole", mock.Anything, "j-1", int64(2)).Return(RoleEditor, true, nil)
			},
			wantRole: RoleEditor,
		},
		{
			name:      "shared reader",
			requester: 3,
			journalID: "j-1",
			setup: func(m *MockRepository) {
				m.On("JournalOwner", mock.Anything, "j-1").Return(int64(1), true, nil)
				m.On("SharedRole", mock.Anything, "j-1", int64(3)).Return(RoleReader, true, nil)
			},
			wantRole: RoleReader,
		},
		{
			name:      "stranger",
			requester: 4,
			journalID: "j-1",
			setup: func(m *MockRepository) {
				m.On("JournalOwner", mock.Anything, "j-1").Return(int64(1), true, nil)
				m.On("SharedRole", mock.Anything, "j-1", int64(4)).Return(Role(""), false, nil)
			},
			wantKind: apperr.KindForbidden,
		},
		{
			name:      "unknown journal is denied, not found",
			requester: 4,
			journalID: "ghost",
			setup: func(m *MockRepository) {
				m.On("JournalOwner", mock.Anything, "ghost").Return(int64(0), false, nil)
				m.On("SharedRole", mock.Anything, "ghost", int64(4)).Return(Role(""), false, nil)
			},
			wantKind: apperr.KindForbidden,
		},
		{
			name:      "storage failure",
			requester: 1,
			journalID: "j-1",
			setup: func(m *MockRepository) {
				m.On("JournalOwner", mock.Anything, "j-1").Return(int64(0), false, errors.New("db down"))
			},
			wantKind: apperr.KindInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			tt.setup(repo)
			resolver := NewResolver(repo, slog.Default())

			grant, err := resolver.Resolve(context.Background(), tt.requester, tt.journalID)

			if tt.wantKind != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, apperr.KindOf(err))
				assert.Equal(t, Grant{}, grant)
			} else {
				require.NoError(t, err)
				assert.Equal(t, Grant{JournalID: tt.journalID, UserID: tt.requester, Role: tt.wantRole}, grant)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestGrantContext(t *testing.T) {
	_, ok := GrantFrom(context.Background())
	assert.False(t, ok)

	g := Grant{JournalID: "j-1", UserID: 7, Role: RoleEditor}
	got, ok := GrantFrom(WithGrant(context.Background(), g))
	assert.True(t, ok)
	assert.Equal(t, g, got)
}

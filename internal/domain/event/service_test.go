package event

import (
	"context"
	"errors"
	"testing"

	"babyjournal/internal/domain/access"
	"babyjournal/internal/domain/apperr"
	"babyjournal/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, e Event) (int64, error) {
	args := m.Called(ctx, e)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) Get(ctx context.Context, journalID string, id int64) (Event, error) {
	args := m.Called(ctx, journalID, id)
	return args.Get(0).(Event), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, e Event) (int64, error) {
	args := m.Called(ctx, e)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, journalID string, id int64) (int64, error) {
	args := m.Called(ctx, journalID, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, journalID string, f Filter) ([]Event, error) {
	args := m.Called(ctx, journalID, f)
	return args.Get(0).([]Event), args.Error(1)
}

func (m *MockRepository) Count(ctx context.Context, journalID string, f Filter) (int64, error) {
	args := m.Called(ctx, journalID, f)
	return args.Get(0).(int64), args.Error(1)
}

func newService() (*Service, *MockRepository) {
	repo := new(MockRepository)
	return NewService(repo, access.NewPolicy(), testutil.FixedClock(), slog.Default()), repo
}

func grant(role access.Role) access.Grant {
	return access.Grant{JournalID: "j-1", UserID: 1, Role: role}
}

func validInput() Input {
	return Input{Date: "2024-01-05", Time: "8:30", Kind: "feeding"}
}

func TestService_Create(t *testing.T) {
	svc, repo := newService()
	repo.On("Create", mock.Anything, mock.MatchedBy(func(e Event) bool {
		return e.JournalID == "j-1" && e.Time == "08:30" && e.Kind == "feeding" &&
			e.CreatedAt.Equal(testutil.FixedClock().Now())
	})).Return(int64(42), nil)

	e, err := svc.Create(context.Background(), grant(access.RoleEditor), validInput())
	require.NoError(t, err)
	assert.Equal(t, int64(42), e.ID)
	assert.Equal(t, "08:30", e.Time)
}

func TestService_Create_Rejects(t *testing.T) {
	tests := []struct {
		name     string
		role     access.Role
		mutate   func(*Input)
		wantKind apperr.Kind
	}{
		{name: "reader", role: access.RoleReader, mutate: func(*Input) {}, wantKind: apperr.KindForbidden},
		{name: "bad date", role: access.RoleOwner, mutate: func(in *Input) { in.Date = "2024-13-01" }, wantKind: apperr.KindBadRequest},
		{name: "bad time", role: access.RoleOwner, mutate: func(in *Input) { in.Time = "25:00" }, wantKind: apperr.KindBadRequest},
		{name: "missing kind", role: access.RoleOwner, mutate: func(in *Input) { in.Kind = " " }, wantKind: apperr.KindBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newService()
			in := validInput()
			tt.mutate(&in)

			_, err := svc.Create(context.Background(), grant(tt.role), in)
			assert.Equal(t, tt.wantKind, apperr.KindOf(err))
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestService_GetScopedByJournal(t *testing.T) {
	svc, repo := newService()
	repo.On("Get", mock.Anything, "j-1", int64(9)).Return(Event{}, ErrNotFound)

	_, err := svc.Get(context.Background(), grant(access.RoleReader), 9)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_Update(t *testing.T) {
	svc, repo := newService()
	repo.On("Update", mock.Anything, mock.MatchedBy(func(e Event) bool { return e.ID == 5 })).Return(int64(1), nil).Once()
	repo.On("Get", mock.Anything, "j-1", int64(5)).Return(Event{ID: 5, Kind: "sleep"}, nil)

	e, err := svc.Update(context.Background(), grant(access.RoleOwner), 5, validInput())
	require.NoError(t, err)
	assert.Equal(t, "sleep", e.Kind)

	repo.On("Update", mock.Anything, mock.Anything).Return(int64(0), nil).Once()
	_, err = svc.Update(context.Background(), grant(access.RoleOwner), 6, validInput())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_Delete(t *testing.T) {
	tests := []struct {
		name     string
		role     access.Role
		affected int64
		repoErr  error
		wantKind apperr.Kind
	}{
		{name: "editor deletes", role: access.RoleEditor, affected: 1},
		{name: "reader is forbidden", role: access.RoleReader, wantKind: apperr.KindForbidden},
		{name: "race loser", role: access.RoleOwner, affected: 0, wantKind: apperr.KindNotFound},
		{name: "storage error", role: access.RoleOwner, repoErr: errors.New("disk full"), wantKind: apperr.KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newService()
			repo.On("Delete", mock.Anything, "j-1", int64(3)).Return(tt.affected, tt.repoErr)

			err := svc.Delete(context.Background(), grant(tt.role), 3)
			if tt.wantKind == "" {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.wantKind, apperr.KindOf(err))
		})
	}
}

func TestService_List(t *testing.T) {
	svc, repo := newService()
	want := Filter{Kind: "feeding", Limit: DefaultLimit}
	repo.On("List", mock.Anything, "j-1", want).Return([]Event(nil), nil)
	repo.On("Count", mock.Anything, "j-1", want).Return(int64(0), nil)

	page, err := svc.List(context.Background(), grant(access.RoleReader), Filter{Kind: " feeding "})
	require.NoError(t, err)
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
	assert.Zero(t, page.Total)
}

func TestService_List_ClampsAndValidates(t *testing.T) {
	svc, repo := newService()
	repo.On("List", mock.Anything, "j-1", mock.MatchedBy(func(f Filter) bool { return f.Limit == MaxLimit })).Return([]Event{{ID: 1}}, nil)
	repo.On("Count", mock.Anything, "j-1", mock.Anything).Return(int64(250), nil)

	page, err := svc.List(context.Background(), grant(access.RoleOwner), Filter{Limit: 1000})
	require.NoError(t, err)
	assert.Equal(t, int64(250), page.Total)

	_, err = svc.List(context.Background(), grant(access.RoleOwner), Filter{DateFrom: "yesterday"})
	assert.ErrorIs(t, err, ErrInvalidFilter)
}

func TestNormalizeTime(t *testing.T) {
	assert.Equal(t, "08:30", NormalizeTime("8:30"))
	assert.Equal(t, "23:59", NormalizeTime("23:59"))
}

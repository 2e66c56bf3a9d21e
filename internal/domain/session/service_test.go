package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"babyjournal/internal/domain/apperr"
	"babyjournal/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

// MockRepository is a mock implementation of the Repository interface for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, s Session) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockRepository) Find(ctx context.Context, tokenHash string, now time.Time) (Session, error) {
	args := m.Called(ctx, tokenHash, now)
	return args.Get(0).(Session), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, tokenHash string) error {
	args := m.Called(ctx, tokenHash)
	return args.Error(0)
}

func (m *MockRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) SetActiveJournal(ctx context.Context, tokenHash string, journalID *string) error {
	args := m.Called(ctx, tokenHash, journalID)
	return args.Error(0)
}

func (m *MockRepository) ClearActiveJournal(ctx context.Context, journalID string) (int64, error) {
	args := m.Called(ctx, journalID)
	return args.Get(0).(int64), args.Error(1)
}

func newService(repo Repository) (*Service, *testutil.StubClock) {
	clk := testutil.FixedClock()
	return NewService(repo, 2*time.Hour, clk, slog.Default()), clk
}

func TestService_Create(t *testing.T) {
	mockRepo := new(MockRepository)
	service, clk := newService(mockRepo)

	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(s Session) bool {
		return s.UserID == 123 &&
			len(s.TokenHash) == 64 &&
			s.ExpiresAt.Equal(clk.Now().Add(2*time.Hour)) &&
			s.ActiveJournalID == nil
	})).Return(nil)

	token, err := service.Create(context.Background(), 123)
	assert.NoError(t, err)
	// base64 encoded 32 bytes should be 44 characters
	assert.Len(t, token, 44)

	mockRepo.AssertExpectations(t)
}

func TestService_Create_RepositoryError(t *testing.T) {
	mockRepo := new(MockRepository)
	service, _ := newService(mockRepo)

	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("session.Session")).Return(errors.New("database error"))

	_, err := service.Create(context.Background(), 123)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database error")
}

func TestService_Validate(t *testing.T) {
	mockRepo := new(MockRepository)
	service, clk := newService(mockRepo)

	token := "test_token_123"
	mockRepo.On("Find", mock.Anything, HashToken(token), clk.Now()).Return(Session{UserID: 123}, nil)

	id, err := service.Validate(context.Background(), token)
	assert.NoError(t, err)
	assert.Equal(t, Identity{UserID: 123, SessionID: HashToken(token)}, id)

	mockRepo.AssertExpectations(t)
}

func TestService_Validate_EdgeCases(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		findErr  error
		wantKind apperr.Kind
	}{
		{name: "Empty token", token: "", wantKind: apperr.KindUnauthenticated},
		{name: "Expired or unknown", token: "stale", findErr: ErrNotFound, wantKind: apperr.KindUnauthenticated},
		{name: "Repository error", token: "token", findErr: errors.New("database error"), wantKind: apperr.KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockRepository)
			service, _ := newService(mockRepo)
			if tt.token != "" {
				mockRepo.On("Find", mock.Anything, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).
					Return(Session{}, tt.findErr)
			}

			_, err := service.Validate(context.Background(), tt.token)
			assert.Equal(t, tt.wantKind, apperr.KindOf(err))
		})
	}
}

// Create и Validate работают вместе через один и тот же хэш
func TestService_CreateAndValidate(t *testing.T) {
	mockRepo := new(MockRepository)
	service, _ := newService(mockRepo)

	var stored Session
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("session.Session")).
		Run(func(args mock.Arguments) { stored = args.Get(1).(Session) }).
		Return(nil)

	token, err := service.Create(context.Background(), 7)
	require.NoError(t, err)

	mockRepo.On("Find", mock.Anything, stored.TokenHash, mock.AnythingOfType("time.Time")).Return(stored, nil)

	id, err := service.Validate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), id.UserID)
	assert.Equal(t, stored.TokenHash, id.SessionID)
}

func TestService_ActiveJournal(t *testing.T) {
	journalID := "j-1"

	tests := []struct {
		name    string
		found   Session
		findErr error
		wantID  string
		wantOK  bool
		wantErr bool
	}{
		{name: "active set", found: Session{ActiveJournalID: &journalID}, wantID: "j-1", wantOK: true},
		{name: "none selected", found: Session{}},
		{name: "session gone", findErr: ErrNotFound},
		{name: "storage error", findErr: errors.New("db down"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockRepository)
			service, _ := newService(mockRepo)
			mockRepo.On("Find", mock.Anything, "hash", mock.AnythingOfType("time.Time")).Return(tt.found, tt.findErr)

			id, ok, err := service.ActiveJournal(context.Background(), "hash")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestService_SetActiveJournalAndRevoke(t *testing.T) {
	mockRepo := new(MockRepository)
	service, _ := newService(mockRepo)

	mockRepo.On("SetActiveJournal", mock.Anything, "hash", mock.MatchedBy(func(id *string) bool {
		return id != nil && *id == "j-9"
	})).Return(nil)
	mockRepo.On("Delete", mock.Anything, "hash").Return(nil)

	require.NoError(t, service.SetActiveJournal(context.Background(), "hash", "j-9"))
	require.NoError(t, service.Revoke(context.Background(), "hash"))

	mockRepo.AssertExpectations(t)
}

func TestService_PurgeExpired(t *testing.T) {
	mockRepo := new(MockRepository)
	service, clk := newService(mockRepo)
	mockRepo.On("DeleteExpired", mock.Anything, clk.Now()).Return(int64(3), nil)

	n, err := service.PurgeExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestIdentityContext(t *testing.T) {
	_, ok := IdentityFrom(context.Background())
	assert.False(t, ok)

	ctx := WithIdentity(context.Background(), Identity{UserID: 5, SessionID: "h"})
	id, ok := IdentityFrom(ctx)
	assert.True(t, ok)
	assert.Equal(t, int64(5), id.UserID)
}

func TestService_ClearActiveJournal(t *testing.T) {
	mockRepo := new(MockRepository)
	service, _ := newService(mockRepo)
	mockRepo.On("ClearActiveJournal", mock.Anything, "j-1").Return(int64(2), nil).Once()
	mockRepo.On("ClearActiveJournal", mock.Anything, "j-2").Return(int64(0), errors.New("db down")).Once()

	assert.NoError(t, service.ClearActiveJournal(context.Background(), "j-1"))
	assert.ErrorContains(t, service.ClearActiveJournal(context.Background(), "j-2"), "db down")
}

package journal

import (
	"context"
	"errors"
	"time"

	"babyjournal/internal/domain/access"
	"babyjournal/internal/domain/user"

	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, j Journal) error {
	args := m.Called(ctx, j)
	return args.Error(0)
}

func (m *MockRepository) Get(ctx context.Context, id string) (Journal, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(Journal), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, j Journal) (int64, error) {
	args := m.Called(ctx, j)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, id string) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) ListForUser(ctx context.Context, userID int64) ([]View, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]View), args.Error(1)
}

type MockShareRepository struct {
	mock.Mock
}

func (m *MockShareRepository) Upsert(ctx context.Context, journalID string, userID int64, role access.Role, at time.Time) error {
	args := m.Called(ctx, journalID, userID, role, at)
	return args.Error(0)
}

func (m *MockShareRepository) List(ctx context.Context, journalID string) ([]Share, error) {
	args := m.Called(ctx, journalID)
	return args.Get(0).([]Share), args.Error(1)
}

func (m *MockShareRepository) Delete(ctx context.Context, journalID string, userID int64) (int64, error) {
	args := m.Called(ctx, journalID, userID)
	return args.Get(0).(int64), args.Error(1)
}

type MockUserFinder struct {
	mock.Mock
}

func (m *MockUserFinder) FindByEmail(ctx context.Context, email string) (user.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(user.User), args.Error(1)
}

type MockSessions struct {
	mock.Mock
}

func (m *MockSessions) SetActiveJournal(ctx context.Context, sessionID, journalID string) error {
	args := m.Called(ctx, sessionID, journalID)
	return args.Error(0)
}

func (m *MockSessions) ActiveJournal(ctx context.Context, sessionID string) (string, bool, error) {
	args := m.Called(ctx, sessionID)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockSessions) ClearActiveJournal(ctx context.Context, journalID string) error {
	args := m.Called(ctx, journalID)
	return args.Error(0)
}

type MockResolver struct {
	mock.Mock
}

func (m *MockResolver) Resolve(ctx context.Context, requesterID int64, journalID string) (access.Grant, error) {
	args := m.Called(ctx, requesterID, journalID)
	return args.Get(0).(access.Grant), args.Error(1)
}

// fakeTx выполняет fn без настоящей БД; commitErr имитирует сбой коммита
type fakeTx struct {
	commitErr error
}

func (f fakeTx) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		return err
	}
	return f.commitErr
}

var errCommit = errors.New("commit failed")

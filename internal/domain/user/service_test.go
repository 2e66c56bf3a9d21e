package user

import (
	"context"
	"errors"
	"testing"

	"babyjournal/internal/domain/apperr"
	"babyjournal/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"
)

// MockRepository is a mock implementation of the Repository interface for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, u User) (int64, error) {
	args := m.Called(ctx, u)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) FindByEmail(ctx context.Context, email string) (User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(User), args.Error(1)
}

func (m *MockRepository) FindByID(ctx context.Context, id int64) (User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(User), args.Error(1)
}

type stubGate struct {
	open bool
	err  error
}

func (g stubGate) RegistrationsOpen(context.Context) (bool, error) {
	return g.open, g.err
}

func newService(repo Repository, gate RegistrationGate) *Service {
	return NewService(repo, gate, NewPasswordValidator(false), testutil.FixedClock(), slog.Default())
}

func TestService_Register(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newService(mockRepo, stubGate{open: true})

	req := RegisterRequest{Name: " Ana ", Email: "Ana@Example.com", Password: "testpassword123"}

	// хэш предсказать нельзя, проверяем остальные поля
	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(u User) bool {
		return u.Name == "Ana" &&
			u.Email == "ana@example.com" &&
			u.Role == RoleUser &&
			bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) == nil
	})).Return(int64(123), nil)

	u, err := service.Register(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, int64(123), u.ID)
	assert.Equal(t, testutil.FixedClock().Now(), u.CreatedAt)

	mockRepo.AssertExpectations(t)
}

func TestService_Register_Disabled(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newService(mockRepo, stubGate{open: false})

	_, err := service.Register(context.Background(), RegisterRequest{Name: "Ana", Email: "ana@example.com", Password: "testpassword123"})

	assert.ErrorIs(t, err, ErrRegistrationDisabled)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Register_DuplicateEmail(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newService(mockRepo, stubGate{open: true})

	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("user.User")).Return(int64(0), ErrEmailTaken)

	_, err := service.Register(context.Background(), RegisterRequest{Name: "Ana", Email: "ana@example.com", Password: "testpassword123"})
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestService_Register_EdgeCases(t *testing.T) {
	tests := []struct {
		name     string
		req      RegisterRequest
		wantKind apperr.Kind
	}{
		{name: "Empty name", req: RegisterRequest{Name: "  ", Email: "a@b.io", Password: "password123"}, wantKind: apperr.KindBadRequest},
		{name: "Invalid email", req: RegisterRequest{Name: "Ana", Email: "ana", Password: "password123"}, wantKind: apperr.KindBadRequest},
		{name: "Short password", req: RegisterRequest{Name: "Ana", Email: "a@b.io", Password: "1234567"}, wantKind: apperr.KindBadRequest},
		{name: "Valid credentials", req: RegisterRequest{Name: "Ana", Email: "a@b.io", Password: "password123"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockRepository)
			service := newService(mockRepo, stubGate{open: true})

			if tt.wantKind == "" {
				mockRepo.On("Create", mock.Anything, mock.AnythingOfType("user.User")).Return(int64(1), nil)
			}

			_, err := service.Register(context.Background(), tt.req)
			if tt.wantKind != "" {
				assert.Equal(t, tt.wantKind, apperr.KindOf(err))
				mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
				mockRepo.AssertExpectations(t)
			}
		})
	}
}

func TestService_CreateAdmin_IgnoresGate(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newService(mockRepo, stubGate{open: false})

	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(u User) bool {
		return u.Role == RoleAdmin
	})).Return(int64(1), nil)

	u, err := service.CreateAdmin(context.Background(), RegisterRequest{Name: "Root", Email: "root@example.com", Password: "supersecret"})
	require.NoError(t, err)
	assert.True(t, u.IsAdmin())
}

func TestService_Authenticate_Success(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newService(mockRepo, stubGate{})

	password := "testpassword123"

	// Create a valid hash for the password
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	stored := User{ID: 123, Email: "ana@example.com", PasswordHash: string(hash), Role: RoleUser}
	mockRepo.On("FindByEmail", mock.Anything, "ana@example.com").Return(stored, nil)

	authUser, err := service.Authenticate(context.Background(), " ANA@example.com", password)
	assert.NoError(t, err)
	assert.Equal(t, stored, authUser)

	mockRepo.AssertExpectations(t)
}

func TestService_Authenticate_Failures(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correctpassword"), bcrypt.MinCost)
	require.NoError(t, err)

	tests := []struct {
		name     string
		found    User
		findErr  error
		password string
		wantErr  error
	}{
		{name: "user not found", findErr: ErrNotFound, password: "whatever1", wantErr: ErrInvalidCredentials},
		{name: "wrong password", found: User{ID: 1, PasswordHash: string(hash)}, password: "wrongpassword", wantErr: ErrInvalidCredentials},
		{name: "invalid hash", found: User{ID: 1, PasswordHash: "invalidhash"}, password: "correctpassword", wantErr: ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockRepository)
			service := newService(mockRepo, stubGate{})
			mockRepo.On("FindByEmail", mock.Anything, "ana@example.com").Return(tt.found, tt.findErr)

			_, err := service.Authenticate(context.Background(), "ana@example.com", tt.password)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestService_Authenticate_StorageError(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newService(mockRepo, stubGate{})
	mockRepo.On("FindByEmail", mock.Anything, "ana@example.com").Return(User{}, errors.New("database error"))

	_, err := service.Authenticate(context.Background(), "ana@example.com", "password123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database error")
	assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))
}

package memory

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"babyjournal/internal/domain/access"
	"babyjournal/internal/domain/apperr"
	"babyjournal/internal/infrastructure/media"
	"babyjournal/internal/infrastructure/thumbnail"
	"babyjournal/internal/testutil"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, mem Memory) (int64, error) {
	args := m.Called(ctx, mem)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) Get(ctx context.Context, journalID string, id int64) (Memory, error) {
	args := m.Called(ctx, journalID, id)
	return args.Get(0).(Memory), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, mem Memory) (int64, error) {
	args := m.Called(ctx, mem)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, journalID string, id int64) (int64, error) {
	args := m.Called(ctx, journalID, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, journalID string, f Filter) ([]Memory, error) {
	args := m.Called(ctx, journalID, f)
	return args.Get(0).([]Memory), args.Error(1)
}

func (m *MockRepository) Count(ctx context.Context, journalID string, f Filter) (int64, error) {
	args := m.Called(ctx, journalID, f)
	return args.Get(0).(int64), args.Error(1)
}

type fakeTx struct {
	commitErr error
}

func (f fakeTx) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		return err
	}
	return f.commitErr
}

type fixture struct {
	repo    *MockRepository
	files   *media.Store
	service *Service
}

func newFixture(t *testing.T, tx Transactor, maxBytes int64) *fixture {
	t.Helper()
	public := filepath.Join(t.TempDir(), "public")
	f := &fixture{
		repo:  new(MockRepository),
		files: media.New(afero.NewOsFs(), public, filepath.Join(public, "media", "journals"), testutil.NewStubIDGenerator("trash"), slog.Default()),
	}
	f.service = NewService(Deps{
		Repo:     f.repo,
		Files:    f.files,
		Thumbs:   thumbnail.New(),
		Tx:       tx,
		Policy:   access.NewPolicy(),
		Clock:    testutil.FixedClock(),
		IDs:      testutil.NewStubIDGenerator("file"),
		MaxBytes: maxBytes,
	}, slog.Default())
	return f
}

func grant(role access.Role) access.Grant {
	return access.Grant{JournalID: "j-1", UserID: 1, Role: role}
}

func photo(t *testing.T) io.Reader {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 640, 480))))
	return &buf
}

func (f *fixture) exists(t *testing.T, url string) bool {
	t.Helper()
	p, err := f.files.PathFor(url)
	require.NoError(t, err)
	ok, err := f.files.Exists(p)
	require.NoError(t, err)
	return ok
}

func TestService_Create_Photo(t *testing.T) {
	f := newFixture(t, fakeTx{}, 0)
	f.repo.On("Create", mock.Anything, mock.AnythingOfType("memory.Memory")).Return(int64(11), nil)

	m, err := f.service.Create(context.Background(), grant(access.RoleEditor),
		Upload{Filename: "Beach.PNG", ContentType: "image/png", Body: photo(t)},
		Input{Date: "2024-01-05", Description: "beach"})
	require.NoError(t, err)

	assert.Equal(t, int64(11), m.ID)
	assert.Equal(t, KindPhoto, m.Kind)
	assert.Equal(t, "/media/journals/j-1/file-1.png", m.FileURL)
	require.NotNil(t, m.ThumbnailURL)
	assert.Equal(t, "/media/journals/j-1/thumbnails/thumb-file-1.jpg", *m.ThumbnailURL)
	assert.True(t, f.exists(t, m.FileURL))
	assert.True(t, f.exists(t, *m.ThumbnailURL))
}

func TestService_Create_Video(t *testing.T) {
	f := newFixture(t, fakeTx{}, 0)
	f.repo.On("Create", mock.Anything, mock.AnythingOfType("memory.Memory")).Return(int64(12), nil)

	m, err := f.service.Create(context.Background(), grant(access.RoleOwner),
		Upload{Filename: "clip.exe", ContentType: "video/mp4", Body: strings.NewReader("not really mp4")},
		Input{})
	require.NoError(t, err)

	assert.Equal(t, KindVideo, m.Kind)
	assert.Nil(t, m.ThumbnailURL)
	// расширение берется из типа, а не из имени файла
	assert.Equal(t, "/media/journals/j-1/file-1.mp4", m.FileURL)
	// дата по умолчанию - сегодня
	assert.Equal(t, "2024-01-15", m.Date)
}

func TestService_Create_Rejects(t *testing.T) {
	tests := []struct {
		name     string
		role     access.Role
		up       Upload
		wantKind apperr.Kind
		wantErr  error
	}{
		{name: "reader", role: access.RoleReader, up: Upload{ContentType: "image/png", Body: strings.NewReader("x")}, wantKind: apperr.KindForbidden},
		{name: "no file", role: access.RoleOwner, up: Upload{ContentType: "image/png"}, wantErr: ErrFileRequired},
		{name: "unsupported type", role: access.RoleOwner, up: Upload{ContentType: "application/pdf", Body: strings.NewReader("x")}, wantErr: ErrUnsupportedType},
		{name: "declared too large", role: access.RoleOwner, up: Upload{ContentType: "video/mp4", Size: 11, Body: strings.NewReader("x")}, wantKind: apperr.KindTooLarge},
		{name: "actually too large", role: access.RoleOwner, up: Upload{ContentType: "video/mp4", Body: strings.NewReader(strings.Repeat("x", 11))}, wantKind: apperr.KindTooLarge},
		{name: "broken image", role: access.RoleOwner, up: Upload{ContentType: "image/jpeg", Body: strings.NewReader("garbage")}, wantErr: ErrBadImage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, fakeTx{}, 10)

			_, err := f.service.Create(context.Background(), grant(tt.role), tt.up, Input{Date: "2024-01-05"})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.Equal(t, tt.wantKind, apperr.KindOf(err))
			}

			f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			entries, _ := afero.ReadDir(f.files.Fs(), f.files.JournalDir("j-1"))
			for _, e := range entries {
				assert.True(t, e.IsDir(), "no file may be left behind: %s", e.Name())
			}
		})
	}
}

func TestService_Create_RowFailureRemovesFiles(t *testing.T) {
	f := newFixture(t, fakeTx{}, 0)
	f.repo.On("Create", mock.Anything, mock.Anything).Return(int64(0), errors.New("db down"))

	_, err := f.service.Create(context.Background(), grant(access.RoleOwner),
		Upload{Filename: "a.png", ContentType: "image/png", Body: photo(t)}, Input{Date: "2024-01-05"})
	require.Error(t, err)

	ok, _ := f.files.Exists(filepath.Join(f.files.JournalDir("j-1"), "file-1.png"))
	assert.False(t, ok)
	ok, _ = f.files.Exists(filepath.Join(f.files.ThumbnailDir("j-1"), "thumb-file-1.jpg"))
	assert.False(t, ok)
}

func (f *fixture) stored(t *testing.T) Memory {
	t.Helper()
	f.repo.On("Create", mock.Anything, mock.Anything).Return(int64(1), nil).Once()
	m, err := f.service.Create(context.Background(), grant(access.RoleOwner),
		Upload{Filename: "a.png", ContentType: "image/png", Body: photo(t)}, Input{Date: "2024-01-05"})
	require.NoError(t, err)
	return m
}

func TestService_Delete(t *testing.T) {
	f := newFixture(t, fakeTx{}, 0)
	m := f.stored(t)

	f.repo.On("Get", mock.Anything, "j-1", int64(1)).Return(m, nil)
	f.repo.On("Delete", mock.Anything, "j-1", int64(1)).Return(int64(1), nil)

	require.NoError(t, f.service.Delete(context.Background(), grant(access.RoleEditor), 1))
	assert.False(t, f.exists(t, m.FileURL))
	assert.False(t, f.exists(t, *m.ThumbnailURL))
}

func TestService_Delete_MissingRowTouchesNoFiles(t *testing.T) {
	f := newFixture(t, fakeTx{}, 0)
	m := f.stored(t)

	f.repo.On("Get", mock.Anything, "j-1", int64(99)).Return(Memory{}, ErrNotFound)

	err := f.service.Delete(context.Background(), grant(access.RoleOwner), 99)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.True(t, f.exists(t, m.FileURL))
	f.repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Delete_FailuresRestoreFiles(t *testing.T) {
	tests := []struct {
		name     string
		tx       Transactor
		affected int64
		wantKind apperr.Kind
	}{
		{name: "zero rows after stash", tx: fakeTx{}, affected: 0, wantKind: apperr.KindInternal},
		{name: "commit failure", tx: fakeTx{commitErr: errors.New("commit failed")}, affected: 1, wantKind: apperr.KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.tx, 0)
			m := f.stored(t)
			f.repo.On("Get", mock.Anything, "j-1", int64(1)).Return(m, nil)
			f.repo.On("Delete", mock.Anything, "j-1", int64(1)).Return(tt.affected, nil)

			err := f.service.Delete(context.Background(), grant(access.RoleOwner), 1)
			assert.Equal(t, tt.wantKind, apperr.KindOf(err))
			assert.True(t, f.exists(t, m.FileURL))
			assert.True(t, f.exists(t, *m.ThumbnailURL))
		})
	}
}

func TestService_Update(t *testing.T) {
	f := newFixture(t, fakeTx{}, 0)
	f.repo.On("Update", mock.Anything, Memory{ID: 3, JournalID: "j-1", Date: "2024-02-01", Description: "nuevo", Favorite: true}).
		Return(int64(1), nil).Once()
	f.repo.On("Get", mock.Anything, "j-1", int64(3)).Return(Memory{ID: 3, Description: "nuevo"}, nil)

	m, err := f.service.Update(context.Background(), grant(access.RoleEditor), 3, Input{Date: "2024-02-01", Description: " nuevo ", Favorite: true})
	require.NoError(t, err)
	assert.Equal(t, "nuevo", m.Description)

	f.repo.On("Update", mock.Anything, mock.Anything).Return(int64(0), nil).Once()
	_, err = f.service.Update(context.Background(), grant(access.RoleEditor), 4, Input{Date: "2024-02-01"})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.service.Update(context.Background(), grant(access.RoleReader), 3, Input{Date: "2024-02-01"})
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
}

func TestService_List(t *testing.T) {
	f := newFixture(t, fakeTx{}, 0)
	want := Filter{Kind: KindPhoto, Limit: DefaultLimit}
	f.repo.On("List", mock.Anything, "j-1", want).Return([]Memory{{ID: 1}}, nil)
	f.repo.On("Count", mock.Anything, "j-1", want).Return(int64(30), nil)

	page, err := f.service.List(context.Background(), grant(access.RoleReader), Filter{Kind: KindPhoto})
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
	assert.Equal(t, int64(30), page.Total)

	_, err = f.service.List(context.Background(), grant(access.RoleReader), Filter{Kind: "audio"})
	assert.ErrorIs(t, err, ErrInvalidKind)
}

package sqlstore

import (
	"context"
	"errors"
	"fmt"

	"babyjournal/internal/domain/user"
	"babyjournal/internal/infrastructure/storage"

	sq "github.com/Masterminds/squirrel"
	"golang.org/x/exp/slog"
)

const tableUsers = "users"

var userColumns = []string{"id", "name", "email", "password_hash", "role", "created_at"}

type UserRepository struct {
	gw  *storage.Gateway
	log *slog.Logger
}

func NewUserRepository(gw *storage.Gateway, log *slog.Logger) *UserRepository {
	return &UserRepository{
		gw:  gw,
		log: log.With(slog.String("component", "user_repository")),
	}
}

func (r *UserRepository) Create(ctx context.Context, u user.User) (int64, error) {
	q := r.gw.Builder().Insert(tableUsers).
		Columns("name", "email", "password_hash", "role", "created_at").
		Values(u.Name, u.Email, u.PasswordHash, string(u.Role), u.CreatedAt)

	id, err := r.gw.InsertReturningID(ctx, q)
	if err != nil {
		if storage.IsUniqueViolation(err) {
			return 0, user.ErrEmailTaken
		}
		return 0, fmt.Errorf("insert user: %w", err)
	}
	return id, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (user.User, error) {
	return r.findOne(ctx, sq.Eq{"email": email})
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (user.User, error) {
	return r.findOne(ctx, sq.Eq{"id": id})
}

// Get - то же, что FindByID
func (r *UserRepository) Get(ctx context.Context, id int64) (user.User, error) {
	return r.FindByID(ctx, id)
}

func (r *UserRepository) findOne(ctx context.Context, where sq.Eq) (user.User, error) {
	q := r.gw.Builder().Select(userColumns...).From(tableUsers).Where(where)

	var (
		u    user.User
		role string
	)
	err := r.gw.GetOne(ctx, q, &u.ID, &u.Name, &u.Email, &u.PasswordHash, &role, &u.CreatedAt)
	if errors.Is(err, storage.ErrNoRows) {
		return user.User{}, user.ErrNotFound
	}
	if err != nil {
		return user.User{}, fmt.Errorf("select user: %w", err)
	}
	u.Role = user.Role(role)
	return u, nil
}

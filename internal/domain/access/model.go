package access

import "context"

type Role string

const (
	RoleOwner  Role = "owner"
	RoleEditor Role = "editor"
	RoleReader Role = "reader"
)

// Shareable сообщает, можно ли выдать роль через шаринг (owner выводится из владения)
func (r Role) Shareable() bool {
	return r == RoleEditor || r == RoleReader
}

// Grant - роль пользователя в журнале, вычисленная один раз на запрос
type Grant struct {
	JournalID string
	UserID    int64
	Role      Role
}

type grantKey struct{}

func WithGrant(ctx context.Context, g Grant) context.Context {
	return context.WithValue(ctx, grantKey{}, g)
}

func GrantFrom(ctx context.Context) (Grant, bool) {
	g, ok := ctx.Value(grantKey{}).(Grant)
	return g, ok
}

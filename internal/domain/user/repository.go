package user

import (
	"context"
)

type Repository interface {
	Create(ctx context.Context, u User) (int64, error)
	FindByEmail(ctx context.Context, email string) (User, error)
	FindByID(ctx context.Context, id int64) (User, error)
}

// RegistrationGate - настройка сайта, разрешающая регистрацию
type RegistrationGate interface {
	RegistrationsOpen(ctx context.Context) (bool, error)
}

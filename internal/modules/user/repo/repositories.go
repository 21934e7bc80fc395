package repo

import (
	"context"

	"asset-vault-server/internal/model"
	"asset-vault-server/internal/store"

	"gorm.io/gorm"
)

type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	ListPending(ctx context.Context) ([]model.User, error)
	ListApprovedByRole(ctx context.Context, role string) ([]model.User, error)
	Approve(ctx context.Context, id uint) (int64, error)
}

func NewUserRepository(db *gorm.DB) UserStore {
	s := store.New(db)
	return &UserRepository{users: store.For[model.User](s, "users")}
}

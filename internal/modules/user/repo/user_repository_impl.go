package repo

import (
	"context"

	"asset-vault-server/internal/model"
	"asset-vault-server/internal/store"
)

type UserRepository struct {
	users *store.Collection[model.User]
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	return r.users.Insert(ctx, user)
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	return r.users.First(ctx, store.Query{Filters: []store.Filter{store.Eq("id", id)}})
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.users.First(ctx, store.Query{Filters: []store.Filter{store.Eq("username", username)}})
}

func (r *UserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	return r.users.Exists(ctx, store.Eq("username", username))
}

// ListPending 待审批的创作者与客户，按注册时间先后。
func (r *UserRepository) ListPending(ctx context.Context) ([]model.User, error) {
	return r.users.Find(ctx, store.Query{
		Filters: []store.Filter{store.Eq("approved", false)},
		Order:   "created_at asc, id asc",
	})
}

func (r *UserRepository) ListApprovedByRole(ctx context.Context, role string) ([]model.User, error) {
	return r.users.Find(ctx, store.Query{
		Filters: []store.Filter{store.Eq("role", role), store.Eq("approved", true)},
		Order:   "username asc",
	})
}

func (r *UserRepository) Approve(ctx context.Context, id uint) (int64, error) {
	return r.users.Update(ctx, map[string]interface{}{"approved": true}, store.Eq("id", id))
}

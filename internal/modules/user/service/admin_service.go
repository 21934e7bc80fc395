package service

import (
	"context"

	"asset-vault-server/internal/consts"
	"asset-vault-server/internal/model"
	"asset-vault-server/internal/modules/user/dto"
	platformservice "asset-vault-server/internal/platform/service"
	"asset-vault-server/internal/store"
)

func (s *Service) ListPending(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.userStore.ListPending(ctx)
	if err != nil {
		return nil, platformservice.WrapInternal(err)
	}
	return toResponses(users), nil
}

func (s *Service) Approve(ctx context.Context, id uint) error {
	affected, err := s.userStore.Approve(ctx, id)
	if err != nil {
		return platformservice.WrapInternal(err)
	}
	if affected == 0 {
		if _, err := s.userStore.FindByID(ctx, id); store.IsNotFound(err) {
			return platformservice.NewNotFoundError("用户不存在")
		}
	}
	return nil
}

// ListClients 创作者分配项目时可选的客户。
func (s *Service) ListClients(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.userStore.ListApprovedByRole(ctx, consts.RoleClient)
	if err != nil {
		return nil, platformservice.WrapInternal(err)
	}
	return toResponses(users), nil
}

// FindClient 返回已审批的客户账号，不是客户时返回校验错误。
func (s *Service) FindClient(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.userStore.FindByID(ctx, id)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, platformservice.NewNotFoundError("用户不存在")
		}
		return nil, platformservice.WrapInternal(err)
	}
	if user.Role != consts.RoleClient || !user.Approved {
		return nil, platformservice.NewValidationError("只能分配已审批的客户")
	}
	return user, nil
}

func toResponses(users []model.User) []dto.UserResponse {
	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, ToResponse(&users[i]))
	}
	return out
}

package service

import (
	"context"
	"strings"

	"asset-vault-server/internal/consts"
	"asset-vault-server/internal/graph"
	"asset-vault-server/internal/model"
	"asset-vault-server/internal/modules/project/dto"
	"asset-vault-server/internal/platform/auth"
	platformservice "asset-vault-server/internal/platform/service"
	"asset-vault-server/internal/store"
)

func (s *Service) CreateProject(ctx context.Context, user auth.CurrentUser, req dto.CreateProjectRequest) (*model.Project, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, platformservice.NewFieldError("name", "项目名称不能为空")
	}
	status := req.Status
	if status == "" {
		status = consts.ProjectStatusActive
	}
	if !consts.ValidProjectStatus(status) {
		return nil, platformservice.NewFieldError("status", "无效的项目状态")
	}

	project := &model.Project{
		Name:      name,
		StartDate: req.StartDate,
		Status:    status,
		CreatorID: user.ID,
	}
	if err := s.projectStore.Create(ctx, project); err != nil {
		return nil, platformservice.WrapInternal(err)
	}
	return project, nil
}

// CreatorProjects 创作者的全部项目及其模型树。
func (s *Service) CreatorProjects(ctx context.Context, user auth.CurrentUser) ([]graph.ProjectView, error) {
	projects, err := s.projectStore.ListByCreatorWithModels(ctx, user.ID)
	if err != nil {
		return nil, platformservice.WrapInternal(err)
	}
	rows := make([]graph.ProjectRow, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, graph.RowFromProject(p))
	}
	return graph.AssembleCreatorView(rows), nil
}

// OwnedProject 返回属于该创作者的项目。
func (s *Service) OwnedProject(ctx context.Context, user auth.CurrentUser, id uint) (*model.Project, error) {
	project, err := s.projectStore.FindByID(ctx, id)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, platformservice.NewNotFoundError("项目不存在")
		}
		return nil, platformservice.WrapInternal(err)
	}
	if project.CreatorID != user.ID {
		return nil, platformservice.NewForbiddenError("无权操作该项目")
	}
	return project, nil
}

func (s *Service) UpdateProject(ctx context.Context, user auth.CurrentUser, id uint, req dto.UpdateProjectRequest) error {
	if _, err := s.OwnedProject(ctx, user, id); err != nil {
		return err
	}

	values := map[string]interface{}{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return platformservice.NewFieldError("name", "项目名称不能为空")
		}
		values["name"] = name
	}
	if req.Status != nil {
		if !consts.ValidProjectStatus(*req.Status) {
			return platformservice.NewFieldError("status", "无效的项目状态")
		}
		values["status"] = *req.Status
	}
	if req.ClearStartDate {
		values["start_date"] = nil
	} else if req.StartDate != nil {
		values["start_date"] = *req.StartDate
	}
	if len(values) == 0 {
		return nil
	}

	if err := s.projectStore.Update(ctx, id, values); err != nil {
		return platformservice.WrapInternal(err)
	}
	return nil
}

func (s *Service) DeleteProject(ctx context.Context, user auth.CurrentUser, id uint) error {
	if _, err := s.OwnedProject(ctx, user, id); err != nil {
		return err
	}
	if err := s.projectStore.DeleteCascade(ctx, id); err != nil {
		return platformservice.WrapInternal(err)
	}
	s.InvalidateProject(ctx, id)
	return nil
}

func (s *Service) AssignClient(ctx context.Context, user auth.CurrentUser, projectID, clientID uint) error {
	if _, err := s.OwnedProject(ctx, user, projectID); err != nil {
		return err
	}
	if _, err := s.clients.FindClient(ctx, clientID); err != nil {
		return err
	}
	if _, err := s.projectStore.AssignClient(ctx, projectID, clientID); err != nil {
		return platformservice.WrapInternal(err)
	}
	return nil
}

func (s *Service) UnassignClient(ctx context.Context, user auth.CurrentUser, projectID, clientID uint) error {
	if _, err := s.OwnedProject(ctx, user, projectID); err != nil {
		return err
	}
	affected, err := s.projectStore.UnassignClient(ctx, projectID, clientID)
	if err != nil {
		return platformservice.WrapInternal(err)
	}
	if affected == 0 {
		return platformservice.NewNotFoundError("该客户未分配到此项目")
	}
	return nil
}

func (s *Service) ListClients(ctx context.Context, user auth.CurrentUser, projectID uint) ([]dto.ClientResponse, error) {
	if _, err := s.OwnedProject(ctx, user, projectID); err != nil {
		return nil, err
	}
	rows, err := s.projectStore.ListClients(ctx, projectID)
	if err != nil {
		return nil, platformservice.WrapInternal(err)
	}
	out := make([]dto.ClientResponse, 0, len(rows))
	for _, row := range rows {
		resp := dto.ClientResponse{UserID: row.UserID, AssignedAt: row.CreatedAt}
		if u, ok := store.One[model.User](row.User); ok {
			resp.Username = u.Username
			resp.Email = u.Email
		}
		out = append(out, resp)
	}
	return out, nil
}

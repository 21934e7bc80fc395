package service

import (
	"context"
	"testing"

	"asset-vault-server/internal/model"
	"asset-vault-server/internal/modules/portfolio/repo"
	"asset-vault-server/internal/platform/auth"
	platformservice "asset-vault-server/internal/platform/service"
	"asset-vault-server/internal/testutils"
)

func asUser(u model.User) auth.CurrentUser {
	return auth.CurrentUser{ID: u.ID, Username: u.Username, Role: u.Role}
}

// 测试内容：验证展示页的创建、添加模型（重复添加幂等）、读取与移除。
func TestPortfolioLifecycle(t *testing.T) {
	gdb := testutils.SetupDB(t)
	s := New(repo.NewPortfolioRepository(gdb))
	ctx := context.Background()
	creator := testutils.SeedCreator(t, gdb, "maker")
	p := testutils.SeedProject(t, gdb, creator.ID, "Wedding")
	m := testutils.SeedModel(t, gdb, p.ID, "Mandap", 1, 3)
	me := asUser(creator)

	if _, err := s.CreatePage(ctx, me, "  "); !platformservice.IsCode(err, platformservice.ErrorCodeValidation) {
		t.Fatalf("期望空名称返回校验错误，实际为 %v", err)
	}
	page, err := s.CreatePage(ctx, me, "Best of 2024")
	if err != nil {
		t.Fatalf("创建展示页失败: %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := s.AddModel(ctx, me, page.ID, m.ID); err != nil {
			t.Fatalf("添加模型失败: %v", err)
		}
	}

	got, err := s.GetPage(ctx, page.ID)
	if err != nil {
		t.Fatalf("读取展示页失败: %v", err)
	}
	if len(got.Models) != 1 {
		t.Fatalf("期望 1 个模型，实际为 %d", len(got.Models))
	}
	if got.Models[0].LatestVersion != "3" || got.Models[0].Thumbnail != "/img/Mandap-v3.png" {
		t.Fatalf("非预期模型视图: %+v", got.Models[0])
	}

	list, err := s.ListPages(ctx, me)
	if err != nil || len(list) != 1 {
		t.Fatalf("期望 1 个展示页，实际为 %d, err=%v", len(list), err)
	}

	if err := s.RemoveModel(ctx, me, page.ID, m.ID); err != nil {
		t.Fatalf("移除模型失败: %v", err)
	}
	if err := s.RemoveModel(ctx, me, page.ID, m.ID); !platformservice.IsCode(err, platformservice.ErrorCodeNotFound) {
		t.Fatalf("期望重复移除返回未找到，实际为 %v", err)
	}
}

// 测试内容：验证他人无法修改展示页，也不能添加他人的模型。
func TestPortfolioOwnership(t *testing.T) {
	gdb := testutils.SetupDB(t)
	s := New(repo.NewPortfolioRepository(gdb))
	ctx := context.Background()
	creator := asUser(testutils.SeedCreator(t, gdb, "maker"))
	rival := testutils.SeedCreator(t, gdb, "rival")
	rivalProject := testutils.SeedProject(t, gdb, rival.ID, "Other")
	rivalModel := testutils.SeedModel(t, gdb, rivalProject.ID, "Arch", 1)

	page, err := s.CreatePage(ctx, creator, "Mine")
	if err != nil {
		t.Fatalf("创建展示页失败: %v", err)
	}
	if err := s.AddModel(ctx, creator, page.ID, rivalModel.ID); !platformservice.IsCode(err, platformservice.ErrorCodeForbidden) {
		t.Fatalf("期望添加他人模型返回无权限，实际为 %v", err)
	}
	if err := s.RenamePage(ctx, asUser(rival), page.ID, "Stolen"); !platformservice.IsCode(err, platformservice.ErrorCodeForbidden) {
		t.Fatalf("期望他人重命名返回无权限，实际为 %v", err)
	}
	if err := s.DeletePage(ctx, asUser(rival), page.ID); !platformservice.IsCode(err, platformservice.ErrorCodeForbidden) {
		t.Fatalf("期望他人删除返回无权限，实际为 %v", err)
	}
	if err := s.DeletePage(ctx, creator, page.ID); err != nil {
		t.Fatalf("删除展示页失败: %v", err)
	}
	if _, err := s.GetPage(ctx, page.ID); !platformservice.IsCode(err, platformservice.ErrorCodeNotFound) {
		t.Fatalf("期望删除后返回未找到，实际为 %v", err)
	}
}

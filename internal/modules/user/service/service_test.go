package service

import (
	"context"
	"testing"

	"asset-vault-server/internal/consts"
	"asset-vault-server/internal/modules/user/dto"
	"asset-vault-server/internal/modules/user/repo"
	"asset-vault-server/internal/platform/auth"
	platformservice "asset-vault-server/internal/platform/service"
	"asset-vault-server/internal/testutils"
)

func setupService(t *testing.T) *Service {
	t.Helper()
	return New(repo.NewUserRepository(testutils.SetupDB(t)))
}

// 测试内容：验证注册后未审批不能登录，审批后可登录并得到可解析的令牌。
func TestRegisterApproveLogin(t *testing.T) {
	s := setupService(t)
	ctx := context.Background()

	user, err := s.Register(ctx, dto.RegisterRequest{Username: "client_a", Password: "abc12345", Role: consts.RoleClient})
	if err != nil {
		t.Fatalf("注册失败: %v", err)
	}
	if user.Approved || user.Password == "abc12345" {
		t.Fatalf("期望未审批且密码已加密: %+v", user)
	}

	_, err = s.Login(ctx, dto.LoginRequest{Username: "client_a", Password: "abc12345"})
	if !platformservice.IsCode(err, platformservice.ErrorCodeForbidden) {
		t.Fatalf("期望未审批登录返回 forbidden，实际为 %v", err)
	}

	pending, err := s.ListPending(ctx)
	if err != nil || len(pending) != 1 {
		t.Fatalf("期望 1 个待审批用户，实际为 %v %v", pending, err)
	}
	if err := s.Approve(ctx, user.ID); err != nil {
		t.Fatalf("审批失败: %v", err)
	}

	resp, err := s.Login(ctx, dto.LoginRequest{Username: "client_a", Password: "abc12345"})
	if err != nil {
		t.Fatalf("登录失败: %v", err)
	}
	claims, err := auth.ParseLoginToken(resp.Token)
	if err != nil {
		t.Fatalf("令牌解析失败: %v", err)
	}
	if claims.ID != user.ID || claims.Role != consts.RoleClient {
		t.Fatalf("非预期令牌内容: %+v", claims)
	}

	if _, err := s.Login(ctx, dto.LoginRequest{Username: "client_a", Password: "wrong-pass"}); !platformservice.IsCode(err, platformservice.ErrorCodeUnauthorized) {
		t.Fatalf("期望密码错误返回 unauthorized，实际为 %v", err)
	}
}

// 测试内容：验证注册参数校验与用户名冲突。
func TestRegister_Validation(t *testing.T) {
	s := setupService(t)
	ctx := context.Background()

	cases := []struct {
		req   dto.RegisterRequest
		field string
	}{
		{dto.RegisterRequest{Username: "ab", Password: "abc12345", Role: consts.RoleClient}, "username"},
		{dto.RegisterRequest{Username: "valid_1", Password: "short", Role: consts.RoleClient}, "password"},
		{dto.RegisterRequest{Username: "valid_1", Password: "abc12345", Role: consts.RoleAdmin}, "role"},
	}
	for _, tc := range cases {
		_, err := s.Register(ctx, tc.req)
		se, ok := platformservice.AsServiceError(err)
		if !ok || se.Field != tc.field {
			t.Fatalf("期望字段 %s 校验失败，实际为 %v", tc.field, err)
		}
	}

	if _, err := s.Register(ctx, dto.RegisterRequest{Username: "maker", Password: "abc12345", Role: consts.RoleCreator}); err != nil {
		t.Fatalf("注册失败: %v", err)
	}
	if _, err := s.Register(ctx, dto.RegisterRequest{Username: "maker", Password: "abc12345", Role: consts.RoleCreator}); !platformservice.IsCode(err, platformservice.ErrorCodeConflict) {
		t.Fatalf("期望重名返回 conflict，实际为 %v", err)
	}
}

// 测试内容：验证管理员账号只创建一次，审批不存在的用户返回 not_found。
func TestEnsureAdminAndApproveMissing(t *testing.T) {
	s := setupService(t)
	ctx := context.Background()

	if err := s.EnsureAdmin(ctx, "admin", "admin12345"); err != nil {
		t.Fatalf("创建管理员失败: %v", err)
	}
	if err := s.EnsureAdmin(ctx, "admin", "other12345"); err != nil {
		t.Fatalf("重复调用不应报错: %v", err)
	}
	resp, err := s.Login(ctx, dto.LoginRequest{Username: "admin", Password: "admin12345"})
	if err != nil || resp.User.Role != consts.RoleAdmin {
		t.Fatalf("期望管理员可登录，实际为 %+v %v", resp, err)
	}
	if err := s.Approve(ctx, 999); !platformservice.IsCode(err, platformservice.ErrorCodeNotFound) {
		t.Fatalf("期望 not_found，实际为 %v", err)
	}
	ok, err := s.IsApproved(ctx, 999)
	if err != nil || ok {
		t.Fatalf("期望不存在的用户视为未审批")
	}
}

// 测试内容：验证客户查找只接受已审批的客户。
func TestFindClient(t *testing.T) {
	ctx := context.Background()
	gdb := testutils.SetupDB(t)
	s := New(repo.NewUserRepository(gdb))

	client := testutils.SeedClient(t, gdb, "client_b")
	creator := testutils.SeedCreator(t, gdb, "maker_b")
	pending := testutils.SeedUser(t, gdb, "client_c", consts.RoleClient, false)

	if _, err := s.FindClient(ctx, client.ID); err != nil {
		t.Fatalf("期望找到客户: %v", err)
	}
	if _, err := s.FindClient(ctx, creator.ID); !platformservice.IsCode(err, platformservice.ErrorCodeValidation) {
		t.Fatalf("期望创作者被拒绝，实际为 %v", err)
	}
	if _, err := s.FindClient(ctx, pending.ID); !platformservice.IsCode(err, platformservice.ErrorCodeValidation) {
		t.Fatalf("期望未审批客户被拒绝，实际为 %v", err)
	}
	list, err := s.ListClients(ctx)
	if err != nil || len(list) != 1 || list[0].Username != "client_b" {
		t.Fatalf("期望只列出 client_b，实际为 %+v %v", list, err)
	}
}

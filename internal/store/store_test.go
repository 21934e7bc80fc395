package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"asset-vault-server/internal/model"
	"asset-vault-server/internal/testutils"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(testutils.SetupDB(t))
}

// 测试内容：验证插入、条件查询、计数与删除的基本流程。
func TestCollection_CRUD(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	users := For[model.User](s, "users")

	for _, name := range []string{"alice", "bob", "carol"} {
		u := model.User{Username: name, Password: "x", Role: "client", Approved: name != "carol"}
		if err := users.Insert(ctx, &u); err != nil {
			t.Fatalf("插入用户失败: %v", err)
		}
	}

	approved, err := users.Find(ctx, Query{Filters: []Filter{Eq("approved", true)}, Order: "username asc"})
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if len(approved) != 2 || approved[0].Username != "alice" {
		t.Fatalf("非预期结果: %+v", approved)
	}

	count, err := users.Count(ctx, In("username", []string{"alice", "carol"}))
	if err != nil || count != 2 {
		t.Fatalf("期望计数 2，实际为 %d err=%v", count, err)
	}

	affected, err := users.Update(ctx, map[string]interface{}{"approved": true}, Eq("username", "carol"))
	if err != nil || affected != 1 {
		t.Fatalf("更新失败: affected=%d err=%v", affected, err)
	}

	deleted, err := users.Delete(ctx, Eq("username", "bob"))
	if err != nil || deleted != 1 {
		t.Fatalf("删除失败: deleted=%d err=%v", deleted, err)
	}

	_, err = users.First(ctx, Query{Filters: []Filter{Eq("username", "bob")}})
	if !IsNotFound(err) {
		t.Fatalf("期望 ErrNotFound，实际为 %v", err)
	}
	var storeErr *StoreError
	if !errors.As(err, &storeErr) || storeErr.Collection != "users" || storeErr.Op != "first" {
		t.Fatalf("期望 StoreError 携带集合与操作名，实际为 %v", err)
	}
}

// 测试内容：验证无条件的更新与删除会被拒绝。
func TestCollection_RejectsUnfilteredWrites(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	users := For[model.User](s, "users")

	if _, err := users.Update(ctx, map[string]interface{}{"approved": true}); err == nil {
		t.Fatalf("期望无条件更新返回错误")
	}
	if _, err := users.Delete(ctx); err == nil {
		t.Fatalf("期望无条件删除返回错误")
	}
}

// 测试内容：验证冲突忽略插入对重复键返回成功但不写入。
func TestCollection_InsertIgnoreConflict(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	links := For[model.PortfolioPageModel](s, "portfolio_page_models")

	inserted, err := links.InsertIgnoreConflict(ctx, &model.PortfolioPageModel{PortfolioPageID: 1, ModelID: 2})
	if err != nil || !inserted {
		t.Fatalf("首次插入期望成功，inserted=%v err=%v", inserted, err)
	}
	inserted, err = links.InsertIgnoreConflict(ctx, &model.PortfolioPageModel{PortfolioPageID: 1, ModelID: 2})
	if err != nil {
		t.Fatalf("重复插入不应报错: %v", err)
	}
	if inserted {
		t.Fatalf("重复插入不应写入新记录")
	}
	count, _ := links.Count(ctx)
	if count != 1 {
		t.Fatalf("期望仅一条记录，实际为 %d", count)
	}
}

// 测试内容：验证时间闭区间过滤与嵌套关联加载。
func TestCollection_BetweenAndIncludes(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	creator := model.User{Username: "c1", Password: "x", Role: "creator", Approved: true}
	if err := For[model.User](s, "users").Insert(ctx, &creator); err != nil {
		t.Fatalf("插入用户失败: %v", err)
	}
	base := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	projects := For[model.Project](s, "projects")
	for i := 0; i < 3; i++ {
		p := model.Project{Name: "p", Status: "Active", CreatorID: creator.ID, CreatedAt: base.AddDate(0, 0, i)}
		if err := projects.Insert(ctx, &p); err != nil {
			t.Fatalf("插入项目失败: %v", err)
		}
	}

	from := base.AddDate(0, 0, 1)
	got, err := projects.Find(ctx, Query{
		Filters:  Between("created_at", &from, nil),
		Includes: []Include{With("Creator")},
	})
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("期望 2 个项目，实际为 %d", len(got))
	}
	if got[0].Creator == nil || got[0].Creator.Username != "c1" {
		t.Fatalf("期望加载 Creator 关联")
	}

	to := base
	got, _ = projects.Find(ctx, Query{Filters: Between("created_at", nil, &to)})
	if len(got) != 1 {
		t.Fatalf("期望上界闭区间包含 1 个项目，实际为 %d", len(got))
	}
}

// 测试内容：验证事务内失败会整体回滚。
func TestStore_TransactionRollback(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	err := s.Transaction(ctx, func(tx *Store) error {
		u := model.User{Username: "tx", Password: "x", Role: "client"}
		if err := For[model.User](tx, "users").Insert(ctx, &u); err != nil {
			return err
		}
		return errors.New("boom")
	})
	if err == nil {
		t.Fatalf("期望事务返回错误")
	}
	count, _ := For[model.User](s, "users").Count(ctx)
	if count != 0 {
		t.Fatalf("期望回滚后无记录，实际为 %d", count)
	}
}

// 测试内容：验证时间区间过滤的边界统一转为 UTC，便于与 UTC 存储的时间列比较。
func TestBetween_ConvertsBoundsToUTC(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*3600)
	from := time.Date(2026, 3, 10, 0, 0, 0, 0, loc)
	filters := Between("created_at", &from, nil)
	if len(filters) != 1 {
		t.Fatalf("期望只有下界条件，实际为 %d", len(filters))
	}
	got, ok := filters[0].Value.(time.Time)
	if !ok || got.Location() != time.UTC || !got.Equal(from) {
		t.Fatalf("期望同一时刻的 UTC 时间，实际为 %v", filters[0].Value)
	}
}

// 测试内容：验证同一模型下重复的版本号被识别为唯一约束冲突。
func TestCollection_DuplicateVersionIsConflict(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	versions := For[model.ModelVersion](s, "model_versions")

	if err := versions.Insert(ctx, &model.ModelVersion{ModelID: 1, Version: 1}); err != nil {
		t.Fatalf("首次插入失败: %v", err)
	}
	err := versions.Insert(ctx, &model.ModelVersion{ModelID: 1, Version: 1})
	if !IsConflict(err) {
		t.Fatalf("期望唯一约束冲突，实际为 %v", err)
	}
	if IsConflict(errors.New("boom")) || IsConflict(nil) {
		t.Fatalf("普通错误不应识别为冲突")
	}
}

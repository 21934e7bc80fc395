package graph

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"asset-vault-server/internal/consts"
	"asset-vault-server/internal/model"
	"asset-vault-server/internal/platform/auth"
)

func uintPtr(v uint) *uint { return &v }

func mandap() model.AssetModel {
	return model.AssetModel{
		ID:   1,
		Name: "Mandap",
		Versions: []model.ModelVersion{
			{ID: 10, Version: 1, Images: []model.ModelImage{{ID: 100, Path: "/a.png"}}},
			{ID: 11, Version: 2, CoverImageID: uintPtr(102), Images: []model.ModelImage{
				{ID: 101, Path: "/b.png"},
				{ID: 102, Path: "/c.png"},
			}},
		},
	}
}

// 测试内容：验证创作者视图的版本列表、最新版本、缩略图以及分类状态默认值。
func TestAssembleCreatorView_Mandap(t *testing.T) {
	p := model.Project{ID: 7, Name: "Wedding", Models: []model.AssetModel{mandap()}}
	views := AssembleCreatorView([]ProjectRow{RowFromProject(p)})
	if len(views) != 1 || len(views[0].Models) != 1 {
		t.Fatalf("期望 1 个项目 1 个模型，实际为 %+v", views)
	}
	m := views[0].Models[0]
	if m.LatestVersion != "2" {
		t.Fatalf("期望最新版本 2，实际为 %q", m.LatestVersion)
	}
	if len(m.Versions) != 2 || m.Versions[0] != "2" || m.Versions[1] != "1" {
		t.Fatalf("期望版本列表 [2 1]，实际为 %v", m.Versions)
	}
	if m.Thumbnail != "/c.png" {
		t.Fatalf("期望缩略图为封面 /c.png，实际为 %q", m.Thumbnail)
	}
	if m.Category != consts.DefaultCategoryName || m.Status != consts.DefaultStatusName {
		t.Fatalf("期望默认分类与状态，实际为 %q/%q", m.Category, m.Status)
	}
}

// 测试内容：验证分类 ID 存在但关联记录缺失时仍使用默认分类，存在时使用实际名称。
func TestAssembleModel_CategoryStatusFallback(t *testing.T) {
	m := model.AssetModel{ID: 2, CategoryID: uintPtr(3)}
	view := AssembleModel(&m)
	if view.Category != consts.DefaultCategoryName {
		t.Fatalf("期望关联缺失时使用默认分类，实际为 %q", view.Category)
	}
	if view.Thumbnail != consts.PlaceholderThumbnail || view.LatestVersion != "" {
		t.Fatalf("期望无版本时使用占位图，实际为 %+v", view)
	}

	m.Category = &model.Category{ID: 3, Name: "Furniture"}
	m.StatusID = uintPtr(4)
	m.Status = &model.ModelStatus{ID: 4, Name: "Approved"}
	view = AssembleModel(&m)
	if view.Category != "Furniture" || view.Status != "Approved" {
		t.Fatalf("期望使用实际分类与状态，实际为 %q/%q", view.Category, view.Status)
	}
}

// 测试内容：验证模型关联形态异常时项目仍被组装且模型为空。
func TestAssembleCreatorView_MalformedModels(t *testing.T) {
	rows := []ProjectRow{
		{ID: 1, Name: "broken", Models: "not-an-array"},
		{ID: 2, Name: "nil", Models: nil},
		{ID: 3, Name: "single", Models: mandap()},
	}
	views := AssembleCreatorView(rows)
	if len(views) != 3 {
		t.Fatalf("期望 3 个项目，实际为 %d", len(views))
	}
	if views[0].Models == nil || len(views[0].Models) != 0 {
		t.Fatalf("期望异常形态得到空模型列表，实际为 %#v", views[0].Models)
	}
	if len(views[1].Models) != 0 {
		t.Fatalf("期望 nil 得到空模型列表")
	}
	if len(views[2].Models) != 1 || views[2].Models[0].Name != "Mandap" {
		t.Fatalf("期望单个对象被当作一个模型，实际为 %+v", views[2].Models)
	}
}

type fakeSource struct {
	calls   int32
	release chan struct{}
	err     error
}

func (f *fakeSource) AssignedProjects(_ context.Context, userID uint) ([]model.Project, error) {
	return []model.Project{{ID: 1, Name: "P1", Models: []model.AssetModel{mandap()}}}, nil
}

func (f *fakeSource) ProjectModels(_ context.Context, projectID uint) ([]model.AssetModel, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.release != nil {
		<-f.release
	}
	if f.err != nil {
		return nil, f.err
	}
	return []model.AssetModel{mandap()}, nil
}

// 测试内容：验证客户项目列表不携带模型。
func TestClientViewAssembler_ProjectsWithoutModels(t *testing.T) {
	a := NewClientViewAssembler(&fakeSource{}, time.Minute, nil)
	views, err := a.Projects(context.Background(), auth.CurrentUser{ID: 5, Role: consts.RoleClient})
	if err != nil {
		t.Fatalf("加载项目失败: %v", err)
	}
	if len(views) != 1 || len(views[0].Models) != 0 {
		t.Fatalf("期望 1 个不含模型的项目，实际为 %+v", views)
	}
}

// 测试内容：验证同一项目在首次加载完成前被展开两次只触发一次查询。
func TestClientViewAssembler_ConcurrentExpandFetchesOnce(t *testing.T) {
	src := &fakeSource{release: make(chan struct{})}
	a := NewClientViewAssembler(src, time.Minute, nil)

	var wg sync.WaitGroup
	results := make([][]ModelView, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			views, err := a.Models(context.Background(), 1)
			if err != nil {
				t.Errorf("加载模型失败: %v", err)
			}
			results[i] = views
		}(i)
	}
	for atomic.LoadInt32(&src.calls) == 0 {
		time.Sleep(time.Millisecond)
	}
	time.Sleep(20 * time.Millisecond)
	close(src.release)
	wg.Wait()

	if got := atomic.LoadInt32(&src.calls); got != 1 {
		t.Fatalf("期望只查询 1 次，实际为 %d", got)
	}
	if len(results[0]) != 1 || len(results[1]) != 1 {
		t.Fatalf("期望两次调用都拿到结果，实际为 %+v", results)
	}

	if _, err := a.Models(context.Background(), 1); err != nil {
		t.Fatalf("再次加载失败: %v", err)
	}
	if got := atomic.LoadInt32(&src.calls); got != 1 {
		t.Fatalf("期望已加载项目不再查询，实际为 %d 次", got)
	}
	if !a.Loaded(1) {
		t.Fatalf("期望项目 1 已标记为已加载")
	}
}

// 测试内容：验证失效后重新查询，查询失败不写入缓存。
func TestClientViewAssembler_InvalidateAndErrors(t *testing.T) {
	src := &fakeSource{}
	a := NewClientViewAssembler(src, time.Minute, nil)
	ctx := context.Background()

	if _, err := a.Models(ctx, 2); err != nil {
		t.Fatalf("加载失败: %v", err)
	}
	a.Invalidate(ctx, 2)
	if a.Loaded(2) {
		t.Fatalf("期望失效后未加载")
	}

	src.err = errors.New("db down")
	if _, err := a.Models(ctx, 2); err == nil {
		t.Fatalf("期望返回查询错误")
	}
	if a.Loaded(2) {
		t.Fatalf("期望失败结果不被缓存")
	}
	if got := atomic.LoadInt32(&src.calls); got != 2 {
		t.Fatalf("期望共查询 2 次，实际为 %d", got)
	}
}

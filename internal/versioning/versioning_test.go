package versioning

import (
	"reflect"
	"testing"

	"asset-vault-server/internal/consts"
	"asset-vault-server/internal/model"
)

func uintPtr(v uint) *uint { return &v }

// 测试内容：验证最新版本按数值而非字典序选取。
func TestLatest_NumericOrdering(t *testing.T) {
	versions := []model.ModelVersion{{ID: 1, Version: 2}, {ID: 2, Version: 10}, {ID: 3, Version: 1}}
	latest, ok := Latest(versions)
	if !ok || latest.Version != 10 || latest.ID != 2 {
		t.Fatalf("期望版本 10，实际为 %+v", latest)
	}
	if versions[0].Version != 2 {
		t.Fatalf("Latest 不应修改输入顺序")
	}
}

// 测试内容：验证空版本列表返回 ok=false，缩略图回退到占位图且不 panic。
func TestLatest_EmptyAndPlaceholder(t *testing.T) {
	if v, ok := Latest(nil); ok || v != nil {
		t.Fatalf("空列表期望无最新版本")
	}
	if got := ModelThumbnail(nil); got != consts.PlaceholderThumbnail {
		t.Fatalf("期望占位图，实际为 %q", got)
	}
	if got := ResolveThumbnail(nil); got != consts.PlaceholderThumbnail {
		t.Fatalf("期望占位图，实际为 %q", got)
	}
	if got := ResolveThumbnail(&model.ModelVersion{Version: 1}); got != consts.PlaceholderThumbnail {
		t.Fatalf("无图片版本期望占位图，实际为 %q", got)
	}
}

// 测试内容：验证 Mandap 场景：最新版本 2、封面为 C、版本列表为 ["2","1"]。
func TestMandapScenario(t *testing.T) {
	versions := []model.ModelVersion{
		{ID: 11, Version: 1, Images: []model.ModelImage{{ID: 1, Path: "/a.png"}}},
		{ID: 12, Version: 2, CoverImageID: uintPtr(3), Images: []model.ModelImage{
			{ID: 2, Path: "/b.png"},
			{ID: 3, Path: "/c.png"},
		}},
	}

	latest, ok := Latest(versions)
	if !ok || latest.Version != 2 {
		t.Fatalf("期望最新版本为 2，实际为 %+v", latest)
	}
	if got := ModelThumbnail(versions); got != "/c.png" {
		t.Fatalf("期望缩略图为 C，实际为 %q", got)
	}
	if got := Labels(versions); !reflect.DeepEqual(got, []string{"2", "1"}) {
		t.Fatalf("期望版本列表 [2 1]，实际为 %v", got)
	}
}

// 测试内容：验证封面未指定或指向不存在的图片时回退到第一张。
func TestCoverImage_Fallback(t *testing.T) {
	v := &model.ModelVersion{Images: []model.ModelImage{{ID: 5, Path: "/x.png"}, {ID: 6, Path: "/y.png"}}}
	if got := ResolveThumbnail(v); got != "/x.png" {
		t.Fatalf("未指定封面期望第一张，实际为 %q", got)
	}
	v.CoverImageID = uintPtr(99)
	if got := ResolveThumbnail(v); got != "/x.png" {
		t.Fatalf("封面失效期望第一张，实际为 %q", got)
	}
}

// 测试内容：验证历史排序降序且同号保持原顺序，下一版本号为最大值加一。
func TestHistoryAndNextVersion(t *testing.T) {
	versions := []model.ModelVersion{{ID: 1, Version: 3}, {ID: 2, Version: 7}, {ID: 3, Version: 3}}
	history := History(versions)
	ids := []uint{history[0].ID, history[1].ID, history[2].ID}
	if !reflect.DeepEqual(ids, []uint{2, 1, 3}) {
		t.Fatalf("非预期排序: %v", ids)
	}
	if got := NextVersionNumber(versions); got != 8 {
		t.Fatalf("期望下一版本 8，实际为 %d", got)
	}
	if got := NextVersionNumber(nil); got != 1 {
		t.Fatalf("无版本时期望 1，实际为 %d", got)
	}
	if got := DisplayLabel(12); got != "12.0" {
		t.Fatalf("期望 12.0，实际为 %q", got)
	}
}

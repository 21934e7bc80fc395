package service

import (
	"context"
	"strings"
	"testing"

	"asset-vault-server/internal/blob"
	"asset-vault-server/internal/model"
	"asset-vault-server/internal/modules/asset/dto"
	"asset-vault-server/internal/modules/asset/repo"
	projectrepo "asset-vault-server/internal/modules/project/repo"
	projectservice "asset-vault-server/internal/modules/project/service"
	userrepo "asset-vault-server/internal/modules/user/repo"
	userservice "asset-vault-server/internal/modules/user/service"
	"asset-vault-server/internal/platform/auth"
	platformservice "asset-vault-server/internal/platform/service"
	"asset-vault-server/internal/testutils"

	"gorm.io/gorm"
)

func setupService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	gdb := testutils.SetupDB(t)
	users := userservice.New(userrepo.NewUserRepository(gdb))
	projects := projectservice.New(projectrepo.NewProjectRepository(gdb), users)
	uploader := blob.NewLocalStore(t.TempDir(), "/assets")
	return New(repo.NewAssetRepository(gdb), projects, uploader), gdb
}

func asUser(u model.User) auth.CurrentUser {
	return auth.CurrentUser{ID: u.ID, Username: u.Username, Role: u.Role}
}

func pngFile(name string) blob.File {
	return blob.FromBytes(name, "image/png", testutils.MinimalPNG())
}

func assetFile(name string) *blob.File {
	f := blob.FromBytes(name, "model/gltf-binary", []byte("glTF"))
	return &f
}

// 测试内容：验证新建模型会写入版本 1、图片与封面，模型文件地址位于存储前缀下。
func TestCreateModel(t *testing.T) {
	s, gdb := setupService(t)
	ctx := context.Background()
	creator := testutils.SeedCreator(t, gdb, "maker")
	p := testutils.SeedProject(t, gdb, creator.ID, "Wedding")
	cat := testutils.SeedCategory(t, gdb, "Decor")

	view, err := s.CreateModel(ctx, asUser(creator), dto.CreateModelForm{
		ProjectID:  p.ID,
		Name:       " Mandap ",
		CategoryID: &cat.ID,
		Images:     []blob.File{pngFile("a.png"), pngFile("b.png")},
		CoverIndex: 1,
		Asset:      assetFile("mandap.glb"),
	})
	if err != nil {
		t.Fatalf("新建模型失败: %v", err)
	}
	if view.Name != "Mandap" || view.Category != "Decor" || view.LatestVersion != "1" {
		t.Fatalf("非预期模型视图: %+v", view)
	}

	detail, err := s.ModelDetail(ctx, view.ID)
	if err != nil {
		t.Fatalf("获取模型详情失败: %v", err)
	}
	latest := detail.Latest
	if latest == nil || len(latest.Images) != 2 {
		t.Fatalf("期望最新版本包含 2 张图片，实际为 %+v", latest)
	}
	if latest.CoverImageID == nil || *latest.CoverImageID != latest.Images[1].ID {
		t.Fatalf("期望封面为第二张图片，实际为 %v", latest.CoverImageID)
	}
	if latest.Thumbnail != latest.Images[1].Path {
		t.Fatalf("期望缩略图为封面地址，实际为 %q", latest.Thumbnail)
	}
	if !strings.HasPrefix(latest.FilePath, "/assets/projects/") || !strings.HasSuffix(latest.FilePath, ".glb") {
		t.Fatalf("非预期模型文件地址: %q", latest.FilePath)
	}
}

// 测试内容：验证新建模型的校验：缺少文件、缺少图片、非图片内容与他人项目。
func TestCreateModel_Validation(t *testing.T) {
	s, gdb := setupService(t)
	ctx := context.Background()
	creator := testutils.SeedCreator(t, gdb, "maker")
	other := testutils.SeedCreator(t, gdb, "other")
	p := testutils.SeedProject(t, gdb, creator.ID, "Wedding")
	cat := testutils.SeedCategory(t, gdb, "Decor")

	base := dto.CreateModelForm{ProjectID: p.ID, Name: "Mandap", CategoryID: &cat.ID, Images: []blob.File{pngFile("a.png")}, Asset: assetFile("m.glb")}

	noAsset := base
	noAsset.Asset = nil
	if _, err := s.CreateModel(ctx, asUser(creator), noAsset); !platformservice.IsCode(err, platformservice.ErrorCodeValidation) {
		t.Fatalf("期望缺少模型文件返回校验错误，实际为 %v", err)
	}

	noImages := base
	noImages.Images = nil
	if _, err := s.CreateModel(ctx, asUser(creator), noImages); !platformservice.IsCode(err, platformservice.ErrorCodeValidation) {
		t.Fatalf("期望缺少图片返回校验错误，实际为 %v", err)
	}

	fake := base
	fake.Images = []blob.File{blob.FromBytes("a.png", "image/png", []byte("not an image"))}
	if _, err := s.CreateModel(ctx, asUser(creator), fake); !platformservice.IsCode(err, platformservice.ErrorCodeValidation) {
		t.Fatalf("期望伪造图片返回校验错误，实际为 %v", err)
	}

	if _, err := s.CreateModel(ctx, asUser(other), base); !platformservice.IsCode(err, platformservice.ErrorCodeForbidden) {
		t.Fatalf("期望他人项目返回无权限，实际为 %v", err)
	}

	var count int64
	gdb.Model(&model.AssetModel{}).Count(&count)
	if count != 0 {
		t.Fatalf("期望校验失败不写入模型，实际为 %d", count)
	}
}

// 测试内容：验证上传新版本时版本号为最大值加一，分类缺省沿用模型分类。
func TestUploadVersion_NextNumber(t *testing.T) {
	s, gdb := setupService(t)
	ctx := context.Background()
	creator := testutils.SeedCreator(t, gdb, "maker")
	p := testutils.SeedProject(t, gdb, creator.ID, "Wedding")
	cat := testutils.SeedCategory(t, gdb, "Decor")
	m := testutils.SeedModel(t, gdb, p.ID, "Mandap", 2, 10, 1)
	gdb.Model(&model.AssetModel{}).Where("id = ?", m.ID).Update("category_id", cat.ID)

	v, err := s.UploadVersion(ctx, asUser(creator), m.ID, dto.NewVersionForm{
		Images: []blob.File{pngFile("new.png")},
		Asset:  assetFile("mandap.glb"),
	})
	if err != nil {
		t.Fatalf("上传新版本失败: %v", err)
	}
	if v.Version != 11 || v.Label != "11.0" {
		t.Fatalf("期望版本号 11，实际为 %d", v.Version)
	}

	detail, err := s.ModelDetail(ctx, m.ID)
	if err != nil {
		t.Fatalf("获取模型详情失败: %v", err)
	}
	got := make([]int, 0, len(detail.Versions))
	for _, hv := range detail.Versions {
		got = append(got, hv.Version)
	}
	want := []int{11, 10, 2, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("期望历史顺序 %v，实际为 %v", want, got)
		}
	}
	if detail.Latest.Version != 11 {
		t.Fatalf("期望最新版本为 11，实际为 %d", detail.Latest.Version)
	}
}

// 测试内容：验证编辑版本时删除旧图、追加新图并以新图为封面。
func TestEditVersion_ReplaceCover(t *testing.T) {
	s, gdb := setupService(t)
	ctx := context.Background()
	creator := testutils.SeedCreator(t, gdb, "maker")
	p := testutils.SeedProject(t, gdb, creator.ID, "Wedding")
	cat := testutils.SeedCategory(t, gdb, "Decor")
	m := testutils.SeedModel(t, gdb, p.ID, "Mandap", 1)
	version := m.Versions[0]
	old := version.Images[0]

	coverIdx := 1
	resp, err := s.EditVersion(ctx, asUser(creator), version.ID, dto.EditVersionForm{
		Name:           "Mandap Gold",
		CategoryID:     &cat.ID,
		RemoveImageIDs: []uint{old.ID},
		NewImages:      []blob.File{pngFile("x.png"), pngFile("y.png")},
		CoverNewIndex:  &coverIdx,
	})
	if err != nil {
		t.Fatalf("编辑版本失败: %v", err)
	}
	if len(resp.Images) != 2 {
		t.Fatalf("期望剩余 2 张图片，实际为 %d", len(resp.Images))
	}
	for _, img := range resp.Images {
		if img.ID == old.ID {
			t.Fatalf("期望旧图片已删除")
		}
	}
	if resp.CoverImageID == nil || *resp.CoverImageID != resp.Images[1].ID {
		t.Fatalf("期望封面为第二张新图片，实际为 %v", resp.CoverImageID)
	}
	if resp.FilePath != "/files/Mandap.glb" {
		t.Fatalf("期望未上传文件时保留原文件地址，实际为 %q", resp.FilePath)
	}

	var saved model.AssetModel
	gdb.First(&saved, m.ID)
	if saved.Name != "Mandap Gold" || saved.CategoryID == nil || *saved.CategoryID != cat.ID {
		t.Fatalf("期望模型名称与分类已更新，实际为 %+v", saved)
	}
}

// 测试内容：验证编辑版本时保留已有封面，且不能移除不存在的图片。
func TestEditVersion_KeepExistingCover(t *testing.T) {
	s, gdb := setupService(t)
	ctx := context.Background()
	creator := testutils.SeedCreator(t, gdb, "maker")
	p := testutils.SeedProject(t, gdb, creator.ID, "Wedding")
	cat := testutils.SeedCategory(t, gdb, "Decor")
	m := testutils.SeedModel(t, gdb, p.ID, "Mandap", 1)
	version := m.Versions[0]
	existing := version.Images[0].ID

	resp, err := s.EditVersion(ctx, asUser(creator), version.ID, dto.EditVersionForm{
		Name:         "Mandap",
		CategoryID:   &cat.ID,
		NewImages:    []blob.File{pngFile("x.png")},
		CoverImageID: &existing,
	})
	if err != nil {
		t.Fatalf("编辑版本失败: %v", err)
	}
	if resp.CoverImageID == nil || *resp.CoverImageID != existing {
		t.Fatalf("期望封面保持为已有图片，实际为 %v", resp.CoverImageID)
	}
	if resp.Thumbnail != "/img/Mandap-v1.png" {
		t.Fatalf("非预期缩略图: %q", resp.Thumbnail)
	}

	_, err = s.EditVersion(ctx, asUser(creator), version.ID, dto.EditVersionForm{
		Name:           "Mandap",
		CategoryID:     &cat.ID,
		RemoveImageIDs: []uint{99999},
	})
	if !platformservice.IsCode(err, platformservice.ErrorCodeNotFound) {
		t.Fatalf("期望移除不存在的图片返回未找到，实际为 %v", err)
	}
}

// 测试内容：验证修改状态与删除模型仅限项目所有者。
func TestUpdateStatusAndDelete(t *testing.T) {
	s, gdb := setupService(t)
	ctx := context.Background()
	creator := testutils.SeedCreator(t, gdb, "maker")
	other := testutils.SeedCreator(t, gdb, "other")
	p := testutils.SeedProject(t, gdb, creator.ID, "Wedding")
	m := testutils.SeedModel(t, gdb, p.ID, "Mandap", 1, 2)
	status := model.ModelStatus{Name: "Approved"}
	gdb.Create(&status)

	if err := s.UpdateModelStatus(ctx, asUser(other), m.ID, &status.ID); !platformservice.IsCode(err, platformservice.ErrorCodeForbidden) {
		t.Fatalf("期望他人修改状态返回无权限，实际为 %v", err)
	}
	if err := s.UpdateModelStatus(ctx, asUser(creator), m.ID, &status.ID); err != nil {
		t.Fatalf("修改状态失败: %v", err)
	}
	detail, _ := s.ModelDetail(ctx, m.ID)
	if detail.Status != "Approved" {
		t.Fatalf("期望状态为 Approved，实际为 %q", detail.Status)
	}
	missing := uint(9999)
	if err := s.UpdateModelStatus(ctx, asUser(creator), m.ID, &missing); !platformservice.IsCode(err, platformservice.ErrorCodeValidation) {
		t.Fatalf("期望不存在的状态返回校验错误，实际为 %v", err)
	}

	if err := s.DeleteModel(ctx, asUser(creator), m.ID); err != nil {
		t.Fatalf("删除模型失败: %v", err)
	}
	var versions int64
	gdb.Model(&model.ModelVersion{}).Where("model_id = ?", m.ID).Count(&versions)
	if versions != 0 {
		t.Fatalf("期望版本随模型删除，实际剩余 %d", versions)
	}
	if _, err := s.ModelDetail(ctx, m.ID); !platformservice.IsCode(err, platformservice.ErrorCodeNotFound) {
		t.Fatalf("期望删除后返回未找到，实际为 %v", err)
	}
}

// 测试内容：验证评论的新增、列表与仅作者可删除。
func TestComments(t *testing.T) {
	s, gdb := setupService(t)
	ctx := context.Background()
	creator := testutils.SeedCreator(t, gdb, "maker")
	client := testutils.SeedClient(t, gdb, "buyer")
	p := testutils.SeedProject(t, gdb, creator.ID, "Wedding")
	m := testutils.SeedModel(t, gdb, p.ID, "Mandap", 1)
	versionID := m.Versions[0].ID

	if _, err := s.AddComment(ctx, asUser(client), versionID, "   "); !platformservice.IsCode(err, platformservice.ErrorCodeValidation) {
		t.Fatalf("期望空评论返回校验错误，实际为 %v", err)
	}
	c, err := s.AddComment(ctx, asUser(client), versionID, "Looks great")
	if err != nil {
		t.Fatalf("新增评论失败: %v", err)
	}
	if c.Username != "buyer" {
		t.Fatalf("期望评论用户名为 buyer，实际为 %q", c.Username)
	}

	list, err := s.ListComments(ctx, versionID)
	if err != nil || len(list) != 1 || list[0].Username != "buyer" {
		t.Fatalf("非预期评论列表: %+v, err=%v", list, err)
	}

	if err := s.DeleteComment(ctx, asUser(creator), c.ID); !platformservice.IsCode(err, platformservice.ErrorCodeForbidden) {
		t.Fatalf("期望非作者删除返回无权限，实际为 %v", err)
	}
	if err := s.DeleteComment(ctx, asUser(client), c.ID); err != nil {
		t.Fatalf("删除评论失败: %v", err)
	}
	if _, err := s.AddComment(ctx, asUser(client), 9999, "hi"); !platformservice.IsCode(err, platformservice.ErrorCodeNotFound) {
		t.Fatalf("期望版本不存在返回未找到，实际为 %v", err)
	}
}

// 测试内容：验证同一模型重复的版本号被唯一索引拒绝，并转换为可重试的冲突错误。
func TestCreateVersion_DuplicateNumberIsConflict(t *testing.T) {
	_, gdb := setupService(t)
	ctx := context.Background()
	creator := testutils.SeedCreator(t, gdb, "maker")
	p := testutils.SeedProject(t, gdb, creator.ID, "Wedding")
	m := testutils.SeedModel(t, gdb, p.ID, "Mandap", 1, 2)

	assets := repo.NewAssetRepository(gdb)
	err := assets.CreateVersion(ctx, &model.ModelVersion{ModelID: m.ID, Version: 2, FilePath: "/files/dup.glb"}, nil, []string{"/img/dup.png"}, "")
	if err == nil {
		t.Fatalf("期望重复版本号写入失败")
	}
	if !platformservice.IsCode(versionWriteError(err), platformservice.ErrorCodeConflict) {
		t.Fatalf("期望冲突错误，实际为 %v", versionWriteError(err))
	}
	var images int64
	gdb.Model(&model.ModelImage{}).Where("path = ?", "/img/dup.png").Count(&images)
	if images != 0 {
		t.Fatalf("期望冲突时事务回滚，实际残留 %d 张图片", images)
	}

	other := testutils.SeedModel(t, gdb, p.ID, "Stage", 1)
	if err := assets.CreateVersion(ctx, &model.ModelVersion{ModelID: other.ID, Version: 2, FilePath: "/files/stage.glb"}, nil, nil, ""); err != nil {
		t.Fatalf("不同模型可使用相同版本号: %v", err)
	}
}

package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"asset-vault-server/internal/blob"
	"asset-vault-server/internal/consts"
	"asset-vault-server/internal/graph"
	"asset-vault-server/internal/model"
	"asset-vault-server/internal/modules/asset/dto"
	"asset-vault-server/internal/modules/asset/repo"
	"asset-vault-server/internal/platform/auth"
	platformservice "asset-vault-server/internal/platform/service"
	"asset-vault-server/internal/store"
	"asset-vault-server/internal/upload"
	"asset-vault-server/internal/utils"
	"asset-vault-server/internal/versioning"
)

// saverFunc 让闭包满足 upload.Saver。
type saverFunc func(ctx context.Context, update upload.VersionUpdate) error

func (f saverFunc) SaveVersion(ctx context.Context, update upload.VersionUpdate) error {
	return f(ctx, update)
}

func imagePathHint(modelID uint) string {
	return fmt.Sprintf("models/%d/images", modelID)
}

func assetPathHint(modelID uint) string {
	return fmt.Sprintf("models/%d/files", modelID)
}

// EnsureDefaults 启动时写入默认分类与状态。
func (s *Service) EnsureDefaults(ctx context.Context) error {
	return s.assetStore.EnsureDefaults(ctx,
		[]string{"Architecture", "Furniture", "Decor", "Lighting", "Props"},
		[]string{consts.DefaultStatusName, "In Review", "Approved"},
	)
}

func (s *Service) Categories(ctx context.Context) ([]model.Category, error) {
	list, err := s.assetStore.Categories(ctx)
	if err != nil {
		return nil, platformservice.WrapInternal(err)
	}
	return list, nil
}

func (s *Service) Statuses(ctx context.Context) ([]model.ModelStatus, error) {
	list, err := s.assetStore.Statuses(ctx)
	if err != nil {
		return nil, platformservice.WrapInternal(err)
	}
	return list, nil
}

func (s *Service) checkCategory(ctx context.Context, id *uint) error {
	if id == nil {
		return nil
	}
	ok, err := s.assetStore.CategoryExists(ctx, *id)
	if err != nil {
		return platformservice.WrapInternal(err)
	}
	if !ok {
		return platformservice.NewFieldError("category", "分类不存在")
	}
	return nil
}

func (s *Service) checkStatus(ctx context.Context, id *uint) error {
	if id == nil {
		return nil
	}
	ok, err := s.assetStore.StatusExists(ctx, *id)
	if err != nil {
		return platformservice.WrapInternal(err)
	}
	if !ok {
		return platformservice.NewFieldError("status", "状态不存在")
	}
	return nil
}

func checkAsset(file *blob.File) error {
	if file == nil {
		return nil
	}
	if ok, msg := utils.ValidateAssetFilename(file.Name); !ok {
		return platformservice.NewFieldError("file", msg)
	}
	return nil
}

func checkImages(files []blob.File) error {
	for _, f := range files {
		rc, err := f.Open()
		if err != nil {
			return platformservice.NewFieldError("images", "无法读取图片")
		}
		ok, msg := utils.ValidateImageContent(rc, f.Name)
		_ = rc.Close()
		if !ok {
			return platformservice.NewFieldError("images", msg)
		}
	}
	return nil
}

func (s *Service) uploadAsset(ctx context.Context, pathHint string, file *blob.File) (string, error) {
	if file == nil {
		return "", nil
	}
	url, err := s.uploader.Upload(ctx, pathHint, *file)
	if err != nil {
		return "", platformservice.WrapInternal(err)
	}
	return url, nil
}

// ownedModel 返回属于该创作者的模型（含版本树）。
func (s *Service) ownedModel(ctx context.Context, user auth.CurrentUser, id uint) (*model.AssetModel, error) {
	m, err := s.assetStore.FindModel(ctx, id)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, platformservice.NewNotFoundError("模型不存在")
		}
		return nil, platformservice.WrapInternal(err)
	}
	project, ok := store.One[model.Project](m.Project)
	if !ok || project.CreatorID != user.ID {
		return nil, platformservice.NewForbiddenError("无权操作该模型")
	}
	return m, nil
}

// CreateModel 新建模型并上传第一个版本。
func (s *Service) CreateModel(ctx context.Context, user auth.CurrentUser, form dto.CreateModelForm) (*graph.ModelView, error) {
	if _, err := s.projects.OwnedProject(ctx, user, form.ProjectID); err != nil {
		return nil, err
	}
	if form.Asset == nil {
		return nil, platformservice.NewFieldError("file", "请上传模型文件")
	}
	if err := checkAsset(form.Asset); err != nil {
		return nil, err
	}
	if err := s.checkCategory(ctx, form.CategoryID); err != nil {
		return nil, err
	}
	if err := s.checkStatus(ctx, form.StatusID); err != nil {
		return nil, err
	}
	if len(form.Images) == 0 {
		return nil, platformservice.NewFieldError("images", "至少需要一张图片")
	}
	if err := checkImages(form.Images); err != nil {
		return nil, err
	}

	session := upload.NewSession(0)
	for _, f := range form.Images {
		if _, err := session.AddNew(f); err != nil {
			return nil, err
		}
	}
	if err := session.SetCoverIndex(form.CoverIndex); err != nil {
		return nil, err
	}

	var created *model.AssetModel
	saver := saverFunc(func(ctx context.Context, u upload.VersionUpdate) error {
		fileURL, err := s.uploadAsset(ctx, fmt.Sprintf("projects/%d/files", form.ProjectID), form.Asset)
		if err != nil {
			return err
		}
		m := &model.AssetModel{
			Name:       strings.TrimSpace(u.Name),
			CategoryID: u.CategoryID,
			StatusID:   form.StatusID,
			ProjectID:  form.ProjectID,
		}
		v := &model.ModelVersion{Version: 1, FilePath: fileURL, AllowDownload: form.AllowDownload}
		if err := s.assetStore.CreateModelWithVersion(ctx, m, v, u.NewImageURLs, u.CoverURL); err != nil {
			return versionWriteError(err)
		}
		created = m
		return nil
	})

	form.Name = strings.TrimSpace(form.Name)
	uploadForm := upload.Form{Name: form.Name, CategoryID: form.CategoryID}
	res, err := session.Run(ctx, uploadForm, s.uploader, fmt.Sprintf("projects/%d/images", form.ProjectID), saver)
	if err != nil {
		return nil, err
	}
	logIssues(res)

	s.projects.InvalidateProject(ctx, form.ProjectID)
	return s.modelView(ctx, created.ID)
}

// UploadVersion 为模型上传新版本，版本号为当前最大版本号加一。
func (s *Service) UploadVersion(ctx context.Context, user auth.CurrentUser, modelID uint, form dto.NewVersionForm) (*dto.VersionResponse, error) {
	m, err := s.ownedModel(ctx, user, modelID)
	if err != nil {
		return nil, err
	}
	if form.Asset == nil {
		return nil, platformservice.NewFieldError("file", "请上传模型文件")
	}
	if err := checkAsset(form.Asset); err != nil {
		return nil, err
	}
	categoryID := m.CategoryID
	if form.CategoryID != nil {
		if err := s.checkCategory(ctx, form.CategoryID); err != nil {
			return nil, err
		}
		categoryID = form.CategoryID
	}
	if len(form.Images) == 0 {
		return nil, platformservice.NewFieldError("images", "至少需要一张图片")
	}
	if err := checkImages(form.Images); err != nil {
		return nil, err
	}

	session := upload.NewSession(0)
	for _, f := range form.Images {
		if _, err := session.AddNew(f); err != nil {
			return nil, err
		}
	}
	if err := session.SetCoverIndex(form.CoverIndex); err != nil {
		return nil, err
	}

	var created *model.ModelVersion
	saver := saverFunc(func(ctx context.Context, u upload.VersionUpdate) error {
		fileURL, err := s.uploadAsset(ctx, assetPathHint(m.ID), form.Asset)
		if err != nil {
			return err
		}
		v := &model.ModelVersion{
			ModelID:       m.ID,
			Version:       versioning.NextVersionNumber(m.Versions),
			FilePath:      fileURL,
			AllowDownload: form.AllowDownload,
		}
		var changes map[string]interface{}
		if u.CategoryID != nil && (m.CategoryID == nil || *m.CategoryID != *u.CategoryID) {
			changes = map[string]interface{}{"category_id": *u.CategoryID}
		}
		if err := s.assetStore.CreateVersion(ctx, v, changes, u.NewImageURLs, u.CoverURL); err != nil {
			return versionWriteError(err)
		}
		created = v
		return nil
	})

	res, err := session.Run(ctx, upload.Form{Name: m.Name, CategoryID: categoryID}, s.uploader, imagePathHint(m.ID), saver)
	if err != nil {
		return nil, err
	}
	logIssues(res)

	s.projects.InvalidateProject(ctx, m.ProjectID)
	return s.Version(ctx, created.ID)
}

// EditVersion 编辑版本：重命名模型、调整分类、增删图片、重新选择封面、替换模型文件。
func (s *Service) EditVersion(ctx context.Context, user auth.CurrentUser, versionID uint, form dto.EditVersionForm) (*dto.VersionResponse, error) {
	version, err := s.assetStore.FindVersion(ctx, versionID)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, platformservice.NewNotFoundError("版本不存在")
		}
		return nil, platformservice.WrapInternal(err)
	}
	m, err := s.ownedModel(ctx, user, version.ModelID)
	if err != nil {
		return nil, err
	}
	if err := checkAsset(form.Asset); err != nil {
		return nil, err
	}
	if err := s.checkCategory(ctx, form.CategoryID); err != nil {
		return nil, err
	}
	if err := checkImages(form.NewImages); err != nil {
		return nil, err
	}

	session := upload.NewSession(version.ID)
	if err := session.Stage(version.Images, version.CoverImageID); err != nil {
		return nil, err
	}
	for _, id := range form.RemoveImageIDs {
		if err := session.Remove(upload.ExistingImageID(id)); err != nil {
			return nil, err
		}
	}
	newIDs := make([]string, 0, len(form.NewImages))
	for _, f := range form.NewImages {
		id, err := session.AddNew(f)
		if err != nil {
			return nil, err
		}
		newIDs = append(newIDs, id)
	}
	switch {
	case form.CoverImageID != nil:
		if err := session.SetCover(upload.ExistingImageID(*form.CoverImageID)); err != nil {
			return nil, err
		}
	case form.CoverNewIndex != nil:
		i := *form.CoverNewIndex
		if i < 0 || i >= len(newIDs) {
			return nil, platformservice.NewFieldError("cover", "封面序号超出范围")
		}
		if err := session.SetCover(newIDs[i]); err != nil {
			return nil, err
		}
	}

	categoryID := form.CategoryID
	if categoryID == nil {
		categoryID = m.CategoryID
	}
	saver := saverFunc(func(ctx context.Context, u upload.VersionUpdate) error {
		fileURL, err := s.uploadAsset(ctx, assetPathHint(m.ID), form.Asset)
		if err != nil {
			return err
		}
		if err := s.assetStore.ApplyVersionChanges(ctx, repo.VersionChanges{
			VersionID:      u.VersionID,
			ModelID:        m.ID,
			ModelName:      strings.TrimSpace(u.Name),
			CategoryID:     u.CategoryID,
			CoverURL:       u.CoverURL,
			DeleteImageIDs: u.DeleteImageIDs,
			NewImageURLs:   u.NewImageURLs,
			FilePath:       fileURL,
		}); err != nil {
			return platformservice.WrapInternal(err)
		}
		return nil
	})

	res, err := session.Run(ctx, upload.Form{Name: form.Name, CategoryID: categoryID}, s.uploader, imagePathHint(m.ID), saver)
	if err != nil {
		return nil, err
	}
	logIssues(res)

	s.projects.InvalidateProject(ctx, m.ProjectID)
	return s.Version(ctx, version.ID)
}

func logIssues(res upload.Result) {
	for _, issue := range res.Issues {
		log.Printf("⚠️ 图片上传对应异常 %s: %s", issue.ImageID, issue.Reason)
	}
}

func (s *Service) UpdateModelStatus(ctx context.Context, user auth.CurrentUser, modelID uint, statusID *uint) error {
	m, err := s.ownedModel(ctx, user, modelID)
	if err != nil {
		return err
	}
	if err := s.checkStatus(ctx, statusID); err != nil {
		return err
	}
	var value interface{}
	if statusID != nil {
		value = *statusID
	}
	if err := s.assetStore.UpdateModel(ctx, modelID, map[string]interface{}{"status_id": value}); err != nil {
		return platformservice.WrapInternal(err)
	}
	s.projects.InvalidateProject(ctx, m.ProjectID)
	return nil
}

func (s *Service) DeleteModel(ctx context.Context, user auth.CurrentUser, modelID uint) error {
	m, err := s.ownedModel(ctx, user, modelID)
	if err != nil {
		return err
	}
	if err := s.assetStore.DeleteModel(ctx, modelID); err != nil {
		return platformservice.WrapInternal(err)
	}
	s.projects.InvalidateProject(ctx, m.ProjectID)
	return nil
}

// versionWriteError 同一模型的版本号被并发上传占用时返回冲突，客户端可重试。
func versionWriteError(err error) error {
	if store.IsConflict(err) {
		return platformservice.NewConflictError("版本号冲突，请重试")
	}
	return platformservice.WrapInternal(err)
}

package upload

import (
	"context"
	"fmt"
	"log"

	"asset-vault-server/internal/blob"
	platformservice "asset-vault-server/internal/platform/service"
)

// Result 对应完成后交给保存步骤的数据。
type Result struct {
	FinalCoverURL  string
	NewImageURLs   []string
	KeptImageURLs  []string
	DeleteImageIDs []uint
	Issues         []CorrelationIssue
}

// Upload 先校验，再把所有新图按工作列表顺序一次性提交给上传方。
// 批次失败时会话进入 Error，不做部分对应。
func (s *Session) Upload(ctx context.Context, form Form, uploader blob.Uploader, pathHint string) error {
	if s.state != StateImagesStaged {
		return ErrInvalidState
	}
	if err := s.Validate(form); err != nil {
		return err
	}
	s.state = StateUploading

	s.slots = s.slots[:0]
	files := make([]blob.File, 0, len(s.images))
	for _, img := range s.images {
		if img.Kind != KindNew {
			continue
		}
		s.slots = append(s.slots, slot{ref: img.ID})
		files = append(files, img.File)
	}
	if len(files) == 0 {
		return nil
	}

	res := uploader.UploadBatch(ctx, pathHint, files)
	if !res.Success {
		err := res.Err
		if err == nil {
			err = fmt.Errorf("批量上传失败")
		}
		return s.fail(platformservice.WrapInternal(err))
	}
	for i := range s.slots {
		if i < len(res.URLs) {
			s.slots[i].url = res.URLs[i]
		}
	}
	if len(res.URLs) != len(files) {
		log.Printf("⚠️ 批量上传返回 %d 个地址，提交了 %d 个文件", len(res.URLs), len(files))
	}
	return nil
}

// Reconcile 解析最终封面地址。封面是已有图片时直接使用其地址；是新图时读取其上传槽位。
// 槽位为空时回退到第一个可用地址（先已有图片，后新上传），并记录对应问题。
func (s *Session) Reconcile() (Result, error) {
	if s.state != StateUploading {
		return Result{}, ErrInvalidState
	}

	res := Result{DeleteImageIDs: append([]uint(nil), s.deleted...)}
	for _, img := range s.images {
		if img.Kind == KindExisting {
			res.KeptImageURLs = append(res.KeptImageURLs, img.URL)
		}
	}
	for _, sl := range s.slots {
		if sl.url == "" {
			res.Issues = append(res.Issues, CorrelationIssue{ImageID: sl.ref, Reason: "上传结果缺失"})
			continue
		}
		res.NewImageURLs = append(res.NewImageURLs, sl.url)
	}

	res.FinalCoverURL = s.coverURL()
	if res.FinalCoverURL == "" {
		res.FinalCoverURL = firstAvailable(res.KeptImageURLs, res.NewImageURLs)
		res.Issues = append(res.Issues, CorrelationIssue{ImageID: s.coverID, Reason: "封面未能对应到上传结果，已使用第一个可用地址"})
		log.Printf("⚠️ 封面 %s 未能对应上传结果，回退为 %q", s.coverID, res.FinalCoverURL)
	}

	s.result = res
	s.state = StateReconciled
	return res, nil
}

func (s *Session) coverURL() string {
	idx := s.indexOf(s.coverID)
	if idx < 0 {
		return ""
	}
	cover := s.images[idx]
	if cover.Kind == KindExisting {
		return cover.URL
	}
	for _, sl := range s.slots {
		if sl.ref == cover.ID {
			return sl.url
		}
	}
	return ""
}

func firstAvailable(groups ...[]string) string {
	for _, urls := range groups {
		for _, u := range urls {
			if u != "" {
				return u
			}
		}
	}
	return ""
}

// VersionUpdate 一次保存所需的全部变更。VersionID 为 0 表示新建版本。
type VersionUpdate struct {
	VersionID      uint
	Name           string
	CategoryID     *uint
	CoverURL       string
	DeleteImageIDs []uint
	NewImageURLs   []string
	AssetFiles     []blob.File
}

type Saver interface {
	SaveVersion(ctx context.Context, update VersionUpdate) error
}

// Save 发起唯一一次合并保存。
func (s *Session) Save(ctx context.Context, form Form, saver Saver) error {
	if s.state != StateReconciled {
		return ErrInvalidState
	}
	update := VersionUpdate{
		VersionID:      s.versionID,
		Name:           form.Name,
		CategoryID:     form.CategoryID,
		CoverURL:       s.result.FinalCoverURL,
		DeleteImageIDs: s.result.DeleteImageIDs,
		NewImageURLs:   s.result.NewImageURLs,
		AssetFiles:     form.AssetFiles,
	}
	if err := saver.SaveVersion(ctx, update); err != nil {
		return s.fail(err)
	}
	s.state = StateSaved
	return nil
}

// Run 依次执行上传、对应与保存。
func (s *Session) Run(ctx context.Context, form Form, uploader blob.Uploader, pathHint string, saver Saver) (Result, error) {
	if err := s.Upload(ctx, form, uploader, pathHint); err != nil {
		return Result{}, err
	}
	res, err := s.Reconcile()
	if err != nil {
		return Result{}, err
	}
	if err := s.Save(ctx, form, saver); err != nil {
		return res, err
	}
	return res, nil
}

// Package upload 管理一次版本编辑中的图片上传：暂存新旧图片、选择封面、批量上传，
// 再把上传结果与封面选择对应起来，最后合并成一次保存调用。
package upload

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"asset-vault-server/internal/blob"
	"asset-vault-server/internal/consts"
	"asset-vault-server/internal/model"
	platformservice "asset-vault-server/internal/platform/service"

	"github.com/google/uuid"
)

type State int

const (
	StateIdle State = iota
	StateImagesStaged
	StateUploading
	StateReconciled
	StateSaved
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateImagesStaged:
		return "images_staged"
	case StateUploading:
		return "uploading"
	case StateReconciled:
		return "reconciled"
	case StateSaved:
		return "saved"
	case StateError:
		return "error"
	}
	return "unknown"
}

type ImageKind int

const (
	KindExisting ImageKind = iota
	KindNew
)

// Image 工作列表中的一张图。已存在的图 ID 形如 "existing-12"，新图使用会话内的临时 uuid。
type Image struct {
	ID         string
	Kind       ImageKind
	ExistingID uint
	URL        string
	File       blob.File
}

// slot 一张新图与其上传结果的配对，顺序即上传批次顺序。
type slot struct {
	ref string
	url string
}

// CorrelationIssue 上传结果未能与封面选择对应时的记录，不阻断保存。
type CorrelationIssue struct {
	ImageID string
	Reason  string
}

var ErrInvalidState = errors.New("上传会话状态不允许该操作")

type Session struct {
	versionID uint
	maxImages int
	state     State
	images    []Image
	coverID   string
	deleted   []uint

	slots  []slot
	result Result
	err    error
}

type Option func(*Session)

// WithMaxImages 覆盖单个版本的图片上限。
func WithMaxImages(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.maxImages = n
		}
	}
}

// NewSession versionID 为 0 表示新建版本。
func NewSession(versionID uint, opts ...Option) *Session {
	s := &Session{versionID: versionID, maxImages: consts.MaxImagesPerVersion, state: StateIdle}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) State() State { return s.state }

func (s *Session) CoverID() string { return s.coverID }

func (s *Session) Err() error { return s.err }

func (s *Session) VersionID() uint { return s.versionID }

func (s *Session) DeletedIDs() []uint { return append([]uint(nil), s.deleted...) }

func (s *Session) Images() []Image {
	return append([]Image(nil), s.images...)
}

func ExistingImageID(id uint) string {
	return "existing-" + strconv.FormatUint(uint64(id), 10)
}

// Stage 载入版本已有的图片。coverImageID 未命中时以第一张为封面。
func (s *Session) Stage(existing []model.ModelImage, coverImageID *uint) error {
	if s.state != StateIdle {
		return ErrInvalidState
	}
	if len(existing) > s.maxImages {
		return s.tooManyImages()
	}
	for _, img := range existing {
		id := ExistingImageID(img.ID)
		s.images = append(s.images, Image{ID: id, Kind: KindExisting, ExistingID: img.ID, URL: img.Path})
		if coverImageID != nil && *coverImageID == img.ID {
			s.coverID = id
		}
	}
	if s.coverID == "" && len(s.images) > 0 {
		s.coverID = s.images[0].ID
	}
	s.state = StateImagesStaged
	return nil
}

// AddNew 追加一张新图并返回其临时 ID。列表原本为空时新图成为封面。
func (s *Session) AddNew(file blob.File) (string, error) {
	if err := s.requireStaging(); err != nil {
		return "", err
	}
	if len(s.images) >= s.maxImages {
		return "", s.tooManyImages()
	}
	id := uuid.New().String()
	s.images = append(s.images, Image{ID: id, Kind: KindNew, File: file})
	if s.coverID == "" {
		s.coverID = id
	}
	s.state = StateImagesStaged
	return id, nil
}

// Remove 移除图片；已存在的图记入待删除列表。封面被移除时改为第一张剩余图片。
func (s *Session) Remove(id string) error {
	if err := s.requireStaging(); err != nil {
		return err
	}
	idx := s.indexOf(id)
	if idx < 0 {
		return platformservice.NewNotFoundError("图片不存在")
	}
	removed := s.images[idx]
	s.images = append(s.images[:idx], s.images[idx+1:]...)
	if removed.Kind == KindExisting {
		s.deleted = append(s.deleted, removed.ExistingID)
	}
	if s.coverID == id {
		s.coverID = ""
		if len(s.images) > 0 {
			s.coverID = s.images[0].ID
		}
	}
	return nil
}

func (s *Session) SetCover(id string) error {
	if err := s.requireStaging(); err != nil {
		return err
	}
	if s.indexOf(id) < 0 {
		return platformservice.NewFieldError("cover", "封面图片不存在")
	}
	s.coverID = id
	return nil
}

// SetCoverIndex 按工作列表中的位置选择封面。
func (s *Session) SetCoverIndex(i int) error {
	if err := s.requireStaging(); err != nil {
		return err
	}
	if i < 0 || i >= len(s.images) {
		return platformservice.NewFieldError("cover", "封面序号超出范围")
	}
	s.coverID = s.images[i].ID
	return nil
}

func (s *Session) requireStaging() error {
	if s.state != StateIdle && s.state != StateImagesStaged {
		return ErrInvalidState
	}
	return nil
}

func (s *Session) indexOf(id string) int {
	for i := range s.images {
		if s.images[i].ID == id {
			return i
		}
	}
	return -1
}

// Form 保存时一并提交的版本元数据。
type Form struct {
	Name       string
	CategoryID *uint
	AssetFiles []blob.File
}

// Validate 校验失败时返回带字段名的错误，会话状态保持不变。
func (s *Session) Validate(form Form) error {
	if strings.TrimSpace(form.Name) == "" {
		return platformservice.NewFieldError("name", "名称不能为空")
	}
	if form.CategoryID == nil || *form.CategoryID == 0 {
		return platformservice.NewFieldError("category", "请选择分类")
	}
	if len(s.images) == 0 {
		return platformservice.NewFieldError("images", "至少需要一张图片")
	}
	if len(s.images) > s.maxImages {
		return s.tooManyImages()
	}
	if s.coverID == "" || s.indexOf(s.coverID) < 0 {
		return platformservice.NewFieldError("cover", "请选择封面图片")
	}
	return nil
}

func (s *Session) tooManyImages() error {
	return platformservice.NewFieldError("images", fmt.Sprintf("每个版本最多 %d 张图片", s.maxImages))
}

func (s *Session) fail(err error) error {
	s.state = StateError
	s.err = err
	return err
}

// Package versioning 负责模型版本链的派生语义：最新版本、历史排序、版本标签与缩略图解析。
//
// 版本号按数值比较，10 排在 2 之后；同号版本保持输入中的先后顺序。
package versioning

import (
	"sort"
	"strconv"

	"asset-vault-server/internal/consts"
	"asset-vault-server/internal/model"
)

// History 返回按版本号降序排列的副本，不修改输入。
func History(versions []model.ModelVersion) []model.ModelVersion {
	sorted := make([]model.ModelVersion, len(versions))
	copy(sorted, versions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Version > sorted[j].Version
	})
	return sorted
}

// Latest 返回版本号最大的版本；列表为空时 ok 为 false。
func Latest(versions []model.ModelVersion) (*model.ModelVersion, bool) {
	if len(versions) == 0 {
		return nil, false
	}
	latest := History(versions)[0]
	return &latest, true
}

// Labels 生成全部版本号的字符串列表，降序。
func Labels(versions []model.ModelVersion) []string {
	history := History(versions)
	labels := make([]string, 0, len(history))
	for _, v := range history {
		labels = append(labels, strconv.Itoa(v.Version))
	}
	return labels
}

// DisplayLabel 界面展示用的版本号，如 3 -> "3.0"。
func DisplayLabel(version int) string {
	return strconv.Itoa(version) + ".0"
}

// NextVersionNumber 新上传版本应使用的版本号。
func NextVersionNumber(versions []model.ModelVersion) int {
	latest, ok := Latest(versions)
	if !ok {
		return 1
	}
	return latest.Version + 1
}

// CoverImage 返回版本的封面图：优先使用指定的封面，未指定或已失效时取第一张图。
func CoverImage(version *model.ModelVersion) (*model.ModelImage, bool) {
	if version == nil || len(version.Images) == 0 {
		return nil, false
	}
	if version.CoverImageID != nil {
		for i := range version.Images {
			if version.Images[i].ID == *version.CoverImageID {
				return &version.Images[i], true
			}
		}
	}
	return &version.Images[0], true
}

// ResolveThumbnail 返回版本缩略图地址，没有图片时返回占位图。
func ResolveThumbnail(version *model.ModelVersion) string {
	image, ok := CoverImage(version)
	if !ok || image.Path == "" {
		return consts.PlaceholderThumbnail
	}
	return image.Path
}

// ModelThumbnail 模型缩略图取自最新版本。
func ModelThumbnail(versions []model.ModelVersion) string {
	latest, _ := Latest(versions)
	return ResolveThumbnail(latest)
}

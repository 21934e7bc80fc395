// Package favourites 将按版本存储的收藏记录按模型分组展示。
package favourites

import (
	"log"
	"time"

	"asset-vault-server/internal/model"
	"asset-vault-server/internal/store"
)

type VersionEntry struct {
	VersionID     uint      `json:"version_id"`
	VersionNumber int       `json:"version_number"`
	CreatedAt     time.Time `json:"created_at"`
	// ImagePath 版本的第一张图；没有图片时为 nil，由展示层替换为占位图
	ImagePath *string `json:"image_path"`
}

type ModelGroup struct {
	ModelID   uint           `json:"model_id"`
	ModelName string         `json:"model_name"`
	Versions  []VersionEntry `json:"versions"`
}

// GroupByModel 每个模型一组。组的顺序与组内版本的顺序都保持收藏记录出现的先后，
// 不按版本号重新排序。缺少版本关联的记录会被跳过。
func GroupByModel(favs []model.Favourite) []ModelGroup {
	groups := make([]ModelGroup, 0)
	index := make(map[uint]int)

	for _, fav := range favs {
		version, ok := store.One[model.ModelVersion](fav.Version)
		if !ok {
			log.Printf("⚠️ 收藏 %d 缺少版本信息，已跳过", fav.ID)
			continue
		}

		modelID := version.ModelID
		modelName := ""
		if m, ok := store.One[model.AssetModel](version.Model); ok {
			modelID = m.ID
			modelName = m.Name
		}

		i, seen := index[modelID]
		if !seen {
			groups = append(groups, ModelGroup{ModelID: modelID, ModelName: modelName})
			i = len(groups) - 1
			index[modelID] = i
		}
		groups[i].Versions = append(groups[i].Versions, VersionEntry{
			VersionID:     version.ID,
			VersionNumber: version.Version,
			CreatedAt:     version.CreatedAt,
			ImagePath:     firstImagePath(version.Images),
		})
	}
	return groups
}

func firstImagePath(images []model.ModelImage) *string {
	image, ok := store.FirstOrDefault(images)
	if !ok || image.Path == "" {
		return nil
	}
	path := image.Path
	return &path
}

// Count 各组版本条目总数。
func Count(groups []ModelGroup) int {
	total := 0
	for _, g := range groups {
		total += len(g.Versions)
	}
	return total
}

// Package graph 将扁平的关系查询结果组装成 项目 → 模型 → 版本 的嵌套视图。
package graph

import (
	"log"
	"time"

	"asset-vault-server/internal/consts"
	"asset-vault-server/internal/model"
	"asset-vault-server/internal/store"
	"asset-vault-server/internal/versioning"
)

// ProjectRow 一行项目查询结果。Models 保持存储层返回的原始形态，
// 可能是切片、单个对象或 nil。
type ProjectRow struct {
	ID        uint
	Name      string
	StartDate *time.Time
	Status    string
	CreatorID uint
	CreatedAt time.Time
	Models    interface{}
}

// RowFromProject 由已预加载模型的项目实体构造查询行。
func RowFromProject(p model.Project) ProjectRow {
	return ProjectRow{
		ID:        p.ID,
		Name:      p.Name,
		StartDate: p.StartDate,
		Status:    p.Status,
		CreatorID: p.CreatorID,
		CreatedAt: p.CreatedAt,
		Models:    p.Models,
	}
}

type ProjectView struct {
	ID        uint        `json:"id"`
	Name      string      `json:"name"`
	StartDate *time.Time  `json:"start_date"`
	Status    string      `json:"status"`
	CreatorID uint        `json:"creator_id"`
	CreatedAt time.Time   `json:"created_at"`
	Models    []ModelView `json:"models"`
}

type ModelView struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	ProjectID     uint      `json:"project_id"`
	Category      string    `json:"category"`
	Status        string    `json:"status"`
	Versions      []string  `json:"versions"`
	LatestVersion string    `json:"latest_version"`
	Thumbnail     string    `json:"thumbnail"`
	CreatedAt     time.Time `json:"created_at"`
}

// AssembleCreatorView 纯转换，不访问存储。
func AssembleCreatorView(rows []ProjectRow) []ProjectView {
	views := make([]ProjectView, 0, len(rows))
	for _, row := range rows {
		views = append(views, assembleProject(row))
	}
	return views
}

func assembleProject(row ProjectRow) ProjectView {
	models, ok := store.AsSlice[model.AssetModel](row.Models)
	if !ok {
		log.Printf("⚠️ 项目 %d 的模型关联形态异常，按空集合处理", row.ID)
		models = nil
	}
	return ProjectView{
		ID:        row.ID,
		Name:      row.Name,
		StartDate: row.StartDate,
		Status:    row.Status,
		CreatorID: row.CreatorID,
		CreatedAt: row.CreatedAt,
		Models:    AssembleModels(models),
	}
}

func AssembleModels(models []model.AssetModel) []ModelView {
	views := make([]ModelView, 0, len(models))
	for i := range models {
		views = append(views, AssembleModel(&models[i]))
	}
	return views
}

// AssembleModel 分类与状态缺失时使用默认展示名；缩略图取自最新版本。
func AssembleModel(m *model.AssetModel) ModelView {
	view := ModelView{
		ID:        m.ID,
		Name:      m.Name,
		ProjectID: m.ProjectID,
		Category:  consts.DefaultCategoryName,
		Status:    consts.DefaultStatusName,
		Versions:  versioning.Labels(m.Versions),
		Thumbnail: versioning.ModelThumbnail(m.Versions),
		CreatedAt: m.CreatedAt,
	}
	if m.CategoryID != nil && m.Category != nil && m.Category.Name != "" {
		view.Category = m.Category.Name
	}
	if m.StatusID != nil && m.Status != nil && m.Status.Name != "" {
		view.Status = m.Status.Name
	}
	if len(view.Versions) > 0 {
		view.LatestVersion = view.Versions[0]
	}
	return view
}

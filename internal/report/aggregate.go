// Package report 计算跨实体的统计报表并导出为多工作表的 xlsx 文件。
//
// 三个统计都是对扁平查询结果的纯计算，数据库侧不做 JOIN/GROUP BY。
package report

import (
	"log"
	"sort"
	"time"

	"asset-vault-server/internal/consts"
	"asset-vault-server/internal/model"
	"asset-vault-server/internal/store"
)

// DateRange 闭区间，nil 表示该侧不设限。
type DateRange struct {
	From *time.Time `json:"from"`
	To   *time.Time `json:"to"`
}

func (r DateRange) Contains(t time.Time) bool {
	if r.From != nil && t.Before(*r.From) {
		return false
	}
	if r.To != nil && t.After(*r.To) {
		return false
	}
	return true
}

// Filters 转为存储层过滤条件。
func (r DateRange) Filters(field string) []store.Filter {
	return store.Between(field, r.From, r.To)
}

func (r DateRange) IsZero() bool {
	return r.From == nil && r.To == nil
}

type RollupRow struct {
	ProjectID           uint      `json:"project_id"`
	ProjectName         string    `json:"project_name"`
	Status              string    `json:"status"`
	CreatedAt           time.Time `json:"created_at"`
	CreatorID           uint      `json:"creator_id"`
	CreatorName         string    `json:"creator_name"`
	CreatorProjectCount int       `json:"creator_project_count"`
	ModelCount          int       `json:"model_count"`
}

type RollupSummary struct {
	Creators int `json:"creators"`
	Projects int `json:"projects"`
	Models   int `json:"models"`
}

type RollupReport struct {
	Rows    []RollupRow   `json:"rows"`
	Summary RollupSummary `json:"summary"`
}

// CreatorRollup 每个项目一行，附带其创作者的项目总数与本项目的模型数。
// 同一创作者的多行重复显示创作者项目数。
func CreatorRollup(projects []model.Project, models []model.AssetModel, r DateRange) RollupReport {
	modelCount := make(map[uint]int)
	for _, m := range models {
		modelCount[m.ProjectID]++
	}

	inRange := make([]model.Project, 0, len(projects))
	projectCount := make(map[uint]int)
	for _, p := range projects {
		if !r.Contains(p.CreatedAt) {
			continue
		}
		inRange = append(inRange, p)
		projectCount[p.CreatorID]++
	}

	report := RollupReport{Rows: make([]RollupRow, 0, len(inRange))}
	for _, p := range inRange {
		row := RollupRow{
			ProjectID:           p.ID,
			ProjectName:         p.Name,
			Status:              p.Status,
			CreatedAt:           p.CreatedAt,
			CreatorID:           p.CreatorID,
			CreatorProjectCount: projectCount[p.CreatorID],
			ModelCount:          modelCount[p.ID],
		}
		if creator, ok := store.One[model.User](p.Creator); ok {
			row.CreatorName = creator.Username
		}
		report.Rows = append(report.Rows, row)
		report.Summary.Models += row.ModelCount
	}
	report.Summary.Creators = len(projectCount)
	report.Summary.Projects = len(report.Rows)
	return report
}

type FavouriteRow struct {
	ProjectID   uint   `json:"project_id"`
	ProjectName string `json:"project_name"`
	CreatorName string `json:"creator_name"`
	Favourites  int    `json:"favourites"`
}

type FavouriteSummary struct {
	Projects   int `json:"projects"`
	Favourites int `json:"favourites"`
}

type TopFavouritedReport struct {
	Rows    []FavouriteRow   `json:"rows"`
	Summary FavouriteSummary `json:"summary"`
}

// TopFavourited 按项目统计收藏数并降序排列。收藏数相同的项目保持首次出现的先后。
// 关联链 收藏→版本→模型→项目 不完整的记录不计入。
func TopFavourited(favs []model.Favourite, r DateRange) TopFavouritedReport {
	rows := make([]FavouriteRow, 0)
	index := make(map[uint]int)
	skipped := 0

	for _, fav := range favs {
		if !r.Contains(fav.CreatedAt) {
			continue
		}
		project, ok := favouriteProject(fav)
		if !ok {
			skipped++
			continue
		}
		i, seen := index[project.ID]
		if !seen {
			row := FavouriteRow{ProjectID: project.ID, ProjectName: project.Name}
			if creator, ok := store.One[model.User](project.Creator); ok {
				row.CreatorName = creator.Username
			}
			rows = append(rows, row)
			i = len(rows) - 1
			index[project.ID] = i
		}
		rows[i].Favourites++
	}
	if skipped > 0 {
		log.Printf("⚠️ %d 条收藏缺少项目关联，未计入统计", skipped)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Favourites > rows[j].Favourites
	})

	report := TopFavouritedReport{Rows: rows}
	for _, row := range rows {
		report.Summary.Favourites += row.Favourites
	}
	report.Summary.Projects = len(rows)
	return report
}

func favouriteProject(fav model.Favourite) (model.Project, bool) {
	version, ok := store.One[model.ModelVersion](fav.Version)
	if !ok {
		return model.Project{}, false
	}
	m, ok := store.One[model.AssetModel](version.Model)
	if !ok {
		return model.Project{}, false
	}
	return store.One[model.Project](m.Project)
}

type ClientRow struct {
	UserID           uint      `json:"user_id"`
	Username         string    `json:"username"`
	Email            string    `json:"email"`
	CreatedAt        time.Time `json:"created_at"`
	AssignedProjects int       `json:"assigned_projects"`
}

type ClientSummary struct {
	Clients          int `json:"clients"`
	AssignedProjects int `json:"assigned_projects"`
}

type ActiveClientsReport struct {
	Rows    []ClientRow   `json:"rows"`
	Summary ClientSummary `json:"summary"`
}

// ActiveClients 已审批的客户，每人一行，附带被分配的项目数（没有则为 0）。
func ActiveClients(users []model.User, assignments []model.ProjectClient, r DateRange) ActiveClientsReport {
	assigned := make(map[uint]int)
	for _, a := range assignments {
		assigned[a.UserID]++
	}

	report := ActiveClientsReport{Rows: make([]ClientRow, 0)}
	for _, u := range users {
		if u.Role != consts.RoleClient || !u.Approved || !r.Contains(u.CreatedAt) {
			continue
		}
		row := ClientRow{
			UserID:           u.ID,
			Username:         u.Username,
			Email:            u.Email,
			CreatedAt:        u.CreatedAt,
			AssignedProjects: assigned[u.ID],
		}
		report.Rows = append(report.Rows, row)
		report.Summary.AssignedProjects += row.AssignedProjects
	}
	report.Summary.Clients = len(report.Rows)
	return report
}

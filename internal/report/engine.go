package report

import (
	"context"
	"fmt"
	"time"

	"asset-vault-server/internal/model"

	"golang.org/x/sync/errgroup"
)

type Section string

const (
	SectionCreatorRollup Section = "creator_rollup"
	SectionTopFavourited Section = "top_favourited"
	SectionActiveClients Section = "active_clients"
)

// AllSections 导出时工作表的固定顺序。
var AllSections = []Section{SectionCreatorRollup, SectionTopFavourited, SectionActiveClients}

func ParseSection(s string) (Section, bool) {
	for _, sec := range AllSections {
		if string(sec) == s {
			return sec, true
		}
	}
	return "", false
}

// Source 报表所需的扁平查询。Projects 需带创作者，Favourites 需带 版本→模型→项目→创作者。
type Source interface {
	Projects(ctx context.Context, r DateRange) ([]model.Project, error)
	Models(ctx context.Context) ([]model.AssetModel, error)
	Favourites(ctx context.Context, r DateRange) ([]model.Favourite, error)
	Clients(ctx context.Context, r DateRange) ([]model.User, error)
	ProjectClients(ctx context.Context) ([]model.ProjectClient, error)
}

type Request struct {
	Sections []Section
	Range    DateRange
}

func (r Request) has(sec Section) bool {
	for _, s := range r.Sections {
		if s == sec {
			return true
		}
	}
	return false
}

// Data 各统计结果，未请求的为 nil。
type Data struct {
	GeneratedAt time.Time            `json:"generated_at"`
	Range       DateRange            `json:"range"`
	Rollup      *RollupReport        `json:"creator_rollup,omitempty"`
	Favourites  *TopFavouritedReport `json:"top_favourited,omitempty"`
	Clients     *ActiveClientsReport `json:"active_clients,omitempty"`
}

func (d *Data) Sections() []Section {
	var out []Section
	if d.Rollup != nil {
		out = append(out, SectionCreatorRollup)
	}
	if d.Favourites != nil {
		out = append(out, SectionTopFavourited)
	}
	if d.Clients != nil {
		out = append(out, SectionActiveClients)
	}
	return out
}

type Engine struct {
	source Source
	loc    *time.Location
	now    func() time.Time
}

// NewEngine loc 为空时使用 UTC。
func NewEngine(source Source, loc *time.Location) *Engine {
	if loc == nil {
		loc = time.UTC
	}
	return &Engine{source: source, loc: loc, now: time.Now}
}

// Compute 只查询被请求的统计，多个统计并发执行，全部完成后返回。
func (e *Engine) Compute(ctx context.Context, req Request) (*Data, error) {
	if len(req.Sections) == 0 {
		return nil, fmt.Errorf("至少需要选择一项报表")
	}
	data := &Data{GeneratedAt: e.now().In(e.loc), Range: req.Range}

	g, gctx := errgroup.WithContext(ctx)
	if req.has(SectionCreatorRollup) {
		g.Go(func() error {
			projects, err := e.source.Projects(gctx, req.Range)
			if err != nil {
				return err
			}
			models, err := e.source.Models(gctx)
			if err != nil {
				return err
			}
			r := CreatorRollup(projects, models, req.Range)
			data.Rollup = &r
			return nil
		})
	}
	if req.has(SectionTopFavourited) {
		g.Go(func() error {
			favs, err := e.source.Favourites(gctx, req.Range)
			if err != nil {
				return err
			}
			r := TopFavourited(favs, req.Range)
			data.Favourites = &r
			return nil
		})
	}
	if req.has(SectionActiveClients) {
		g.Go(func() error {
			users, err := e.source.Clients(gctx, req.Range)
			if err != nil {
				return err
			}
			assignments, err := e.source.ProjectClients(gctx)
			if err != nil {
				return err
			}
			r := ActiveClients(users, assignments, req.Range)
			data.Clients = &r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return data, nil
}

// Artifact 导出的报表文件。
type Artifact struct {
	Filename    string
	ContentType string
	Data        []byte
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (e *Engine) Generate(ctx context.Context, req Request) (*Artifact, error) {
	data, err := e.Compute(ctx, req)
	if err != nil {
		return nil, err
	}
	raw, err := WriteWorkbook(data)
	if err != nil {
		return nil, err
	}
	return &Artifact{
		Filename:    "asset-vault-report-" + data.GeneratedAt.Format("20060102-150405") + ".xlsx",
		ContentType: xlsxContentType,
		Data:        raw,
	}, nil
}

package service

import (
	"context"
	"log"
	"strings"
	"time"

	"asset-vault-server/internal/config"
	platformservice "asset-vault-server/internal/platform/service"
	"asset-vault-server/internal/report"
)

const dateLayout = "2006-01-02"

type Service struct {
	source report.Source
}

func New(source report.Source) *Service {
	return &Service{source: source}
}

// Params 导出参数的原始文本形式，sections 逗号分隔，为空表示全部。
type Params struct {
	Sections string
	From     string
	To       string
}

func location() *time.Location {
	name := config.Get().Report.Timezone
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("⚠️ 无法加载报表时区 %s，改用 UTC: %v", name, err)
		return time.UTC
	}
	return loc
}

func parseSections(raw string) ([]report.Section, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return append([]report.Section(nil), report.AllSections...), nil
	}
	seen := make(map[report.Section]bool)
	var out []report.Section
	for _, part := range strings.Split(raw, ",") {
		sec, ok := report.ParseSection(strings.TrimSpace(part))
		if !ok {
			return nil, platformservice.NewFieldError("sections", "未知的报表类型: "+part)
		}
		if !seen[sec] {
			seen[sec] = true
			out = append(out, sec)
		}
	}
	return out, nil
}

// parseRange 日期按报表时区解析，结束日期包含当天。
func parseRange(from, to string, loc *time.Location) (report.DateRange, error) {
	var r report.DateRange
	if from = strings.TrimSpace(from); from != "" {
		t, err := time.ParseInLocation(dateLayout, from, loc)
		if err != nil {
			return r, platformservice.NewFieldError("from", "日期格式应为 YYYY-MM-DD")
		}
		r.From = &t
	}
	if to = strings.TrimSpace(to); to != "" {
		t, err := time.ParseInLocation(dateLayout, to, loc)
		if err != nil {
			return r, platformservice.NewFieldError("to", "日期格式应为 YYYY-MM-DD")
		}
		end := t.AddDate(0, 0, 1).Add(-time.Nanosecond)
		r.To = &end
	}
	if r.From != nil && r.To != nil && r.From.After(*r.To) {
		return r, platformservice.NewFieldError("from", "开始日期不能晚于结束日期")
	}
	return r, nil
}

func (s *Service) request(p Params, loc *time.Location) (report.Request, error) {
	sections, err := parseSections(p.Sections)
	if err != nil {
		return report.Request{}, err
	}
	r, err := parseRange(p.From, p.To, loc)
	if err != nil {
		return report.Request{}, err
	}
	return report.Request{Sections: sections, Range: r}, nil
}

// Preview 返回统计结果本身，供页面展示。
func (s *Service) Preview(ctx context.Context, p Params) (*report.Data, error) {
	loc := location()
	req, err := s.request(p, loc)
	if err != nil {
		return nil, err
	}
	data, err := report.NewEngine(s.source, loc).Compute(ctx, req)
	if err != nil {
		return nil, platformservice.WrapInternal(err)
	}
	return data, nil
}

// Export 生成 xlsx 工作簿。
func (s *Service) Export(ctx context.Context, p Params) (*report.Artifact, error) {
	loc := location()
	req, err := s.request(p, loc)
	if err != nil {
		return nil, err
	}
	artifact, err := report.NewEngine(s.source, loc).Generate(ctx, req)
	if err != nil {
		return nil, platformservice.WrapInternal(err)
	}
	return artifact, nil
}

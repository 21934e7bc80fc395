package report

import (
	"strings"

	"github.com/xuri/excelize/v2"
)

const (
	SheetInfo          = "Report Info"
	SheetCreatorRollup = "Creator Rollup"
	SheetTopFavourited = "Top Favourited"
	SheetActiveClients = "Active Clients"

	reportType = "Asset Vault Activity Report"
	timeLayout = "2006-01-02 15:04:05 MST"
	dateLayout = "2006-01-02"
)

var sectionTitles = map[Section]string{
	SectionCreatorRollup: SheetCreatorRollup,
	SectionTopFavourited: SheetTopFavourited,
	SectionActiveClients: SheetActiveClients,
}

type styles struct {
	header  int
	summary int
}

// WriteWorkbook 生成 xlsx：一个元数据表，加上每个统计一个工作表（表头样式 + 加粗汇总行）。
func WriteWorkbook(data *Data) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetInfo); err != nil {
		return nil, err
	}
	st, err := newStyles(f)
	if err != nil {
		return nil, err
	}
	if err := writeInfo(f, data); err != nil {
		return nil, err
	}

	if data.Rollup != nil {
		rows := make([][]interface{}, 0, len(data.Rollup.Rows))
		for _, r := range data.Rollup.Rows {
			rows = append(rows, []interface{}{r.CreatorID, r.CreatorName, r.CreatorProjectCount, r.ProjectID, r.ProjectName, r.Status, r.CreatedAt.Format(dateLayout), r.ModelCount})
		}
		s := data.Rollup.Summary
		if err := writeTable(f, st, SheetCreatorRollup,
			[]interface{}{"Creator ID", "Creator", "Creator Projects", "Project ID", "Project", "Status", "Created", "Models"},
			rows,
			[]interface{}{"Total", "", s.Creators, "", s.Projects, "", "", s.Models},
		); err != nil {
			return nil, err
		}
	}
	if data.Favourites != nil {
		rows := make([][]interface{}, 0, len(data.Favourites.Rows))
		for _, r := range data.Favourites.Rows {
			rows = append(rows, []interface{}{r.ProjectID, r.ProjectName, r.CreatorName, r.Favourites})
		}
		s := data.Favourites.Summary
		if err := writeTable(f, st, SheetTopFavourited,
			[]interface{}{"Project ID", "Project", "Creator", "Favourites"},
			rows,
			[]interface{}{"Total", s.Projects, "", s.Favourites},
		); err != nil {
			return nil, err
		}
	}
	if data.Clients != nil {
		rows := make([][]interface{}, 0, len(data.Clients.Rows))
		for _, r := range data.Clients.Rows {
			rows = append(rows, []interface{}{r.UserID, r.Username, r.Email, r.CreatedAt.Format(dateLayout), r.AssignedProjects})
		}
		s := data.Clients.Summary
		if err := writeTable(f, st, SheetActiveClients,
			[]interface{}{"User ID", "Username", "Email", "Joined", "Assigned Projects"},
			rows,
			[]interface{}{"Total", s.Clients, "", "", s.AssignedProjects},
		); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func newStyles(f *excelize.File) (styles, error) {
	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return styles{}, err
	}
	summary, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Border: []excelize.Border{{Type: "top", Color: "#000000", Style: 1}},
	})
	if err != nil {
		return styles{}, err
	}
	return styles{header: header, summary: summary}, nil
}

func writeInfo(f *excelize.File, data *Data) error {
	sections := make([]string, 0, 3)
	for _, sec := range data.Sections() {
		sections = append(sections, sectionTitles[sec])
	}
	from, to := "(unbounded)", "(unbounded)"
	if data.Range.From != nil {
		from = data.Range.From.Format(dateLayout)
	}
	if data.Range.To != nil {
		to = data.Range.To.Format(dateLayout)
	}

	rows := [][]interface{}{
		{"Report Type", reportType},
		{"Generated At", data.GeneratedAt.Format(timeLayout)},
		{"Date From", from},
		{"Date To", to},
		{"Sections", strings.Join(sections, ", ")},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetInfo, cell, &row); err != nil {
			return err
		}
	}
	return f.SetColWidth(SheetInfo, "A", "B", 28)
}

func writeTable(f *excelize.File, st styles, sheet string, header []interface{}, rows [][]interface{}, summary []interface{}) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, st.header); err != nil {
		return err
	}

	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return err
		}
	}

	summaryRow := len(rows) + 2
	first, err := excelize.CoordinatesToCellName(1, summaryRow)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, first, &summary); err != nil {
		return err
	}
	end, err := excelize.CoordinatesToCellName(len(summary), summaryRow)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, first, end, st.summary); err != nil {
		return err
	}

	lastCol, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return err
	}
	return f.SetColWidth(sheet, "A", lastCol, 18)
}

package formatter

import (
	"strconv"

	"github.com/oakwood-commons/gridcol/pkg/column"
)

// Report column keys, in display order.
const (
	colName        = "name"
	colField       = "field"
	colDisplayName = "displayName"
	colWidth       = "width"
	colKind        = "kind"
	colMin         = "minWidth"
	colMax         = "maxWidth"
	colSorting     = "enableSorting"
	colFiltering   = "enableFiltering"
	colComparator  = "sortingAlgorithm"
	colCellFilter  = "cellFilter"
	colSort        = "sort"
	colFilter      = "filter"
)

var reportColumns = []string{
	colName, colField, colDisplayName, colWidth, colKind, colMin, colMax,
	colSorting, colFiltering, colComparator, colCellFilter, colSort, colFilter,
}

var reportHints = map[string]ColumnHint{
	colName:        {Priority: 10, DisplayName: "NAME", MinWidth: 6},
	colField:       {Priority: 6, DisplayName: "FIELD"},
	colDisplayName: {Priority: 7, DisplayName: "DISPLAY NAME"},
	colWidth:       {Priority: 9, DisplayName: "WIDTH", Align: AlignRight},
	colKind:        {Priority: 8, DisplayName: "KIND"},
	colMin:         {Priority: 5, DisplayName: "MIN", Align: AlignRight},
	colMax:         {Priority: 5, DisplayName: "MAX", Align: AlignRight},
	colSorting:     {Priority: 4, DisplayName: "SORTABLE"},
	colFiltering:   {Priority: 4, DisplayName: "FILTERABLE"},
	colComparator:  {Priority: 3, DisplayName: "COMPARATOR"},
	colCellFilter:  {Priority: 2, DisplayName: "CELL FILTER", MaxWidth: 24},
	colSort:        {Priority: 1, DisplayName: "SORT", MaxWidth: 40},
	colFilter:      {Priority: 1, DisplayName: "FILTER", MaxWidth: 40},
}

// ReportOptions configures RenderModels.
type ReportOptions struct {
	NoColor        bool
	TotalWidth     int
	RowNumberStyle string
	// Compact hides columns whose cells are empty for every model.
	Compact bool
}

// RenderModels renders resolved column models as a table, one row per model.
func RenderModels(models []*column.Model, opts ReportOptions) string {
	if len(models) == 0 {
		return ""
	}
	rows := make([][]string, len(models))
	for i, m := range models {
		rows[i] = modelRow(m)
	}

	var hidden []string
	if opts.Compact {
		hidden = emptyColumns(reportColumns, rows)
	}

	return RenderColumnarTable(reportColumns, rows, ColumnarOptions{
		NoColor:        opts.NoColor,
		TotalWidth:     opts.TotalWidth,
		RowNumberStyle: opts.RowNumberStyle,
		HiddenColumns:  hidden,
		ColumnHints:    reportHints,
	})
}

func modelRow(m *column.Model) []string {
	comparator := ""
	if m.HasSortingAlgorithm() {
		comparator = "custom"
	}
	return []string{
		m.Name,
		m.Field,
		Stringify(m.DisplayName),
		m.Width.String(),
		m.Width.Kind().String(),
		strconv.Itoa(m.MinWidth),
		strconv.Itoa(m.MaxWidth),
		yesNo(m.EnableSorting),
		yesNo(m.EnableFiltering),
		comparator,
		m.CellFilter,
		stateCell(len(m.Sort) == 0, m.Sort),
		stateCell(len(m.Filter) == 0, m.Filter),
	}
}

func stateCell(empty bool, v any) string {
	if empty {
		return ""
	}
	return Stringify(v)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func emptyColumns(columns []string, rows [][]string) []string {
	var out []string
	for i, col := range columns {
		empty := true
		for _, row := range rows {
			if i < len(row) && row[i] != "" {
				empty = false
				break
			}
		}
		if empty {
			out = append(out, col)
		}
	}
	return out
}

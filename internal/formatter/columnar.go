package formatter

import (
	"fmt"
	"sort"
	"strings"

	"charm.land/lipgloss/v2"
)

// ColumnarOptions configures columnar table rendering.
type ColumnarOptions struct {
	// NoColor disables color output
	NoColor bool

	// TotalWidth is the total available width. If 0, uses terminal width.
	TotalWidth int

	// RowNumberStyle controls how row numbers are displayed:
	//   "numbered" - 1, 2, 3
	//   "index"    - [0], [1], [2]
	//   "bullet"   - •
	//   "none"     - no row number column
	RowNumberStyle string

	// HiddenColumns specifies columns to omit from output.
	HiddenColumns []string

	// ColumnHints provides per-column display hints for width, priority, and alignment.
	// Keys are the column keys passed to RenderColumnarTable.
	ColumnHints map[string]ColumnHint
}

// RenderColumnarTable renders rows under the given column headers. Columns
// are shrunk by hint priority when the table is wider than the available width.
func RenderColumnarTable(columns []string, rows [][]string, opts ColumnarOptions) string {
	if len(columns) == 0 || len(rows) == 0 {
		return ""
	}

	visibleCols, visibleRows := filterColumns(columns, rows, opts.HiddenColumns)
	if len(visibleCols) == 0 {
		return ""
	}

	displayCols := make([]string, len(visibleCols))
	colAligns := make([]string, len(visibleCols))
	for i, col := range visibleCols {
		displayCols[i] = col
		if h, ok := opts.ColumnHints[col]; ok {
			if h.DisplayName != "" {
				displayCols[i] = h.DisplayName
			}
			colAligns[i] = h.Align
		}
	}

	totalWidth := opts.TotalWidth
	if totalWidth <= 0 {
		totalWidth = getTerminalWidth()
	}

	showRowNum := opts.RowNumberStyle != "none"
	rowNumWidth := 0
	if showRowNum {
		rowNumWidth = len(fmt.Sprintf("%d", len(rows))) + 2
		if opts.RowNumberStyle == "bullet" {
			rowNumWidth = 3
		}
	}

	const sepWidth = 2
	availableWidth := totalWidth - rowNumWidth
	if showRowNum {
		availableWidth -= sepWidth
	}
	colWidths := calculateColumnWidths(displayCols, visibleRows, availableWidth, resolveHints(visibleCols, opts))

	var b strings.Builder
	b.WriteString(renderHeader(displayCols, colWidths, sepWidth, rowNumWidth, showRowNum, opts.NoColor) + "\n")

	totalHeaderWidth := rowNumWidth
	if showRowNum {
		totalHeaderWidth += sepWidth
	}
	for i, w := range colWidths {
		totalHeaderWidth += w
		if i < len(colWidths)-1 {
			totalHeaderWidth += sepWidth
		}
	}
	separator := strings.Repeat("─", totalHeaderWidth)
	if !opts.NoColor {
		separator = separatorStyle.Render(separator)
	}
	b.WriteString(separator + "\n")

	for i, row := range visibleRows {
		b.WriteString(renderDataRow(i, row, colWidths, sepWidth, rowNumWidth, opts.RowNumberStyle, opts.NoColor, colAligns) + "\n")
	}

	return b.String()
}

func filterColumns(columns []string, rows [][]string, hidden []string) ([]string, [][]string) {
	if len(hidden) == 0 {
		return columns, rows
	}

	hiddenSet := make(map[string]bool, len(hidden))
	for _, h := range hidden {
		hiddenSet[h] = true
	}

	visibleIndices := make([]int, 0, len(columns))
	visibleCols := make([]string, 0, len(columns))
	for i, col := range columns {
		if !hiddenSet[col] {
			visibleIndices = append(visibleIndices, i)
			visibleCols = append(visibleCols, col)
		}
	}

	visibleRows := make([][]string, len(rows))
	for i, row := range rows {
		newRow := make([]string, len(visibleIndices))
		for j, idx := range visibleIndices {
			if idx < len(row) {
				newRow[j] = row[idx]
			}
		}
		visibleRows[i] = newRow
	}

	return visibleCols, visibleRows
}

func calculateColumnWidths(columns []string, rows [][]string, availableWidth int, hints []ColumnHint) []int {
	numCols := len(columns)
	if numCols == 0 {
		return nil
	}

	const sepWidth = 2
	widths := make([]int, numCols)
	for i, col := range columns {
		widths[i] = lipgloss.Width(col)
	}

	for _, row := range rows {
		for i, val := range row {
			if i < numCols {
				if w := lipgloss.Width(val); w > widths[i] {
					widths[i] = w
				}
			}
		}
	}

	for i := range columns {
		if i < len(hints) && hints[i].MaxWidth > 0 && widths[i] > hints[i].MaxWidth {
			widths[i] = hints[i].MaxWidth
		}
	}

	usableWidth := availableWidth - (numCols-1)*sepWidth
	totalNeeded := 0
	for _, w := range widths {
		totalNeeded += w
	}
	if totalNeeded <= usableWidth || usableWidth <= 0 {
		return widths
	}

	if len(hints) > 0 {
		return shrinkByPriority(widths, usableWidth, hints)
	}

	// Without hints: proportional shrink, then trim the widest column until it fits.
	for i := range widths {
		newWidth := int(float64(widths[i]) / float64(totalNeeded) * float64(usableWidth))
		if newWidth < minColWidth {
			newWidth = minColWidth
		}
		widths[i] = newWidth
	}
	for {
		total := 0
		maxIdx := 0
		for i, w := range widths {
			total += w
			if w > widths[maxIdx] {
				maxIdx = i
			}
		}
		if total <= usableWidth || widths[maxIdx] <= minColWidth {
			break
		}
		widths[maxIdx]--
	}
	return widths
}

func renderHeader(columns []string, widths []int, sepWidth, rowNumWidth int, showRowNum, noColor bool) string {
	sep := strings.Repeat(" ", sepWidth)
	parts := make([]string, 0, len(columns)+1)

	if showRowNum {
		header := padRight("#", rowNumWidth)
		if !noColor {
			header = headerStyle.Render(header)
		}
		parts = append(parts, header)
	}

	for i, col := range columns {
		header := padRight(col, widths[i])
		if !noColor {
			header = headerStyle.Render(header)
		}
		parts = append(parts, header)
	}

	return strings.Join(parts, sep)
}

func renderDataRow(rowIndex int, values []string, widths []int, sepWidth, rowNumWidth int, rowNumStyle string, noColor bool, colAligns []string) string {
	sep := strings.Repeat(" ", sepWidth)
	parts := make([]string, 0, len(values)+1)

	if rowNumStyle != "none" {
		var numStr string
		switch rowNumStyle {
		case "index":
			numStr = fmt.Sprintf("[%d]", rowIndex)
		case "bullet":
			numStr = "•"
		default:
			numStr = fmt.Sprintf("%d", rowIndex+1)
		}
		numStr = padRight(numStr, rowNumWidth)
		if !noColor {
			numStr = keyStyle.Render(numStr)
		}
		parts = append(parts, numStr)
	}

	for i, val := range values {
		if i >= len(widths) {
			break
		}
		w := widths[i]
		var valStr string
		if i < len(colAligns) && colAligns[i] == AlignRight {
			valStr = padLeft(val, w)
		} else {
			valStr = padRight(val, w)
		}
		if !noColor {
			valStr = valueStyle.Render(valStr)
		}
		parts = append(parts, valStr)
	}

	return strings.Join(parts, sep)
}

// resolveHints lines hints up with visibleCols by position.
func resolveHints(visibleCols []string, opts ColumnarOptions) []ColumnHint {
	if len(opts.ColumnHints) == 0 {
		return nil
	}

	result := make([]ColumnHint, len(visibleCols))
	for i, vc := range visibleCols {
		if h, ok := opts.ColumnHints[vc]; ok {
			result[i] = h
		}
	}
	return result
}

// shrinkByPriority reduces column widths to fit within usableWidth by shrinking
// lowest-priority columns first. Higher Priority values mean the column is more
// important and will be shrunk last.
func shrinkByPriority(widths []int, usableWidth int, hints []ColumnHint) []int {
	total := 0
	for _, w := range widths {
		total += w
	}
	excess := total - usableWidth
	if excess <= 0 {
		return widths
	}

	type colPri struct {
		idx      int
		priority int
		floor    int
	}
	cols := make([]colPri, len(widths))
	for i := range widths {
		cp := colPri{idx: i, floor: minColWidth}
		if i < len(hints) {
			cp.priority = hints[i].Priority
			cp.floor = hints[i].floor()
		}
		cols[i] = cp
	}
	sort.SliceStable(cols, func(a, b int) bool {
		return cols[a].priority < cols[b].priority
	})

	for _, cp := range cols {
		if excess <= 0 {
			break
		}
		shrinkable := widths[cp.idx] - cp.floor
		if shrinkable <= 0 {
			continue
		}
		shrink := min(shrinkable, excess)
		widths[cp.idx] -= shrink
		excess -= shrink
	}

	return widths
}

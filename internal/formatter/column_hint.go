package formatter

// Alignment of cell text inside a report column.
const (
	AlignLeft  = "left"
	AlignRight = "right"
)

// minColWidth is the narrowest a column is shrunk to when its hint sets no floor.
const minColWidth = 3

// ColumnHint carries display hints for one report column, keyed by the
// column's raw name in ColumnarOptions.ColumnHints.
type ColumnHint struct {
	// DisplayName replaces the raw column name in the header.
	DisplayName string
	// Align is AlignLeft (default) or AlignRight.
	Align string
	// Priority orders shrinking; lower values give up width first.
	Priority int
	// MinWidth is the shrink floor. 0 means minColWidth.
	MinWidth int
	// MaxWidth caps the natural width. 0 means no cap.
	MaxWidth int
}

func (h ColumnHint) floor() int {
	if h.MinWidth > 0 {
		return h.MinWidth
	}
	return minColWidth
}

package formatter

import (
	"strings"
	"testing"

	runewidth "github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderColumnarTable(t *testing.T) {
	t.Run("basic render", func(t *testing.T) {
		columns := []string{"name", "width"}
		rows := [][]string{
			{"id", "120"},
			{"firstName", "**"},
		}

		result := RenderColumnarTable(columns, rows, ColumnarOptions{
			NoColor:        true,
			TotalWidth:     80,
			RowNumberStyle: "numbered",
		})

		require.NotEmpty(t, result)
		lines := strings.Split(strings.TrimSpace(result), "\n")
		require.Len(t, lines, 4) // header + separator + 2 rows

		assert.Contains(t, lines[0], "#")
		assert.Contains(t, lines[0], "name")
		assert.Contains(t, lines[0], "width")
		assert.True(t, strings.HasPrefix(lines[1], "─"))

		assert.True(t, strings.HasPrefix(lines[2], "1"))
		assert.Contains(t, lines[2], "id")
		assert.Contains(t, lines[2], "120")
		assert.True(t, strings.HasPrefix(lines[3], "2"))
		assert.Contains(t, lines[3], "firstName")
	})

	t.Run("index style", func(t *testing.T) {
		result := RenderColumnarTable([]string{"value"}, [][]string{{"a"}, {"b"}}, ColumnarOptions{
			NoColor:        true,
			TotalWidth:     80,
			RowNumberStyle: "index",
		})

		assert.Contains(t, result, "[0]")
		assert.Contains(t, result, "[1]")
	})

	t.Run("bullet style", func(t *testing.T) {
		result := RenderColumnarTable([]string{"item"}, [][]string{{"first"}, {"second"}}, ColumnarOptions{
			NoColor:        true,
			TotalWidth:     80,
			RowNumberStyle: "bullet",
		})

		assert.Contains(t, result, "•")
	})

	t.Run("no row numbers", func(t *testing.T) {
		result := RenderColumnarTable([]string{"name"}, [][]string{{"id"}}, ColumnarOptions{
			NoColor:        true,
			TotalWidth:     80,
			RowNumberStyle: "none",
		})

		assert.NotContains(t, result, "#")
		assert.True(t, strings.HasPrefix(result, "name"))
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, RenderColumnarTable(nil, [][]string{{"x"}}, ColumnarOptions{}))
		assert.Empty(t, RenderColumnarTable([]string{"a"}, nil, ColumnarOptions{}))
	})

	t.Run("all columns hidden", func(t *testing.T) {
		assert.Empty(t, RenderColumnarTable([]string{"a"}, [][]string{{"x"}}, ColumnarOptions{HiddenColumns: []string{"a"}}))
	})

	t.Run("hidden column and display name", func(t *testing.T) {
		result := RenderColumnarTable(
			[]string{"name", "secret", "minWidth"},
			[][]string{{"id", "s3cr3t", "50"}},
			ColumnarOptions{
				NoColor:        true,
				TotalWidth:     80,
				RowNumberStyle: "none",
				HiddenColumns:  []string{"secret"},
				ColumnHints:    map[string]ColumnHint{"minWidth": {DisplayName: "MIN"}},
			},
		)
		assert.NotContains(t, result, "secret")
		assert.NotContains(t, result, "s3cr3t")
		assert.Contains(t, result, "MIN")
		assert.NotContains(t, result, "minWidth")
	})

	t.Run("right alignment", func(t *testing.T) {
		result := RenderColumnarTable(
			[]string{"width"},
			[][]string{{"9000"}, {"5"}},
			ColumnarOptions{
				NoColor:        true,
				TotalWidth:     80,
				RowNumberStyle: "none",
				ColumnHints:    map[string]ColumnHint{"width": {Align: "right"}},
			},
		)
		lines := strings.Split(strings.TrimRight(result, "\n"), "\n")
		require.Len(t, lines, 4)
		assert.Equal(t, "    5", lines[3])
	})

	t.Run("fits total width", func(t *testing.T) {
		long := strings.Repeat("x", 60)
		result := RenderColumnarTable(
			[]string{"a", "b"},
			[][]string{{long, long}},
			ColumnarOptions{NoColor: true, TotalWidth: 50, RowNumberStyle: "numbered"},
		)
		for _, line := range strings.Split(strings.TrimRight(result, "\n"), "\n") {
			assert.LessOrEqual(t, runewidth.StringWidth(line), 50, line)
		}
		assert.Contains(t, result, "...")
	})
}

func TestCalculateColumnWidths(t *testing.T) {
	t.Run("natural widths when they fit", func(t *testing.T) {
		got := calculateColumnWidths([]string{"name", "w"}, [][]string{{"id", "120"}}, 80, nil)
		assert.Equal(t, []int{4, 3}, got)
	})

	t.Run("max width cap", func(t *testing.T) {
		got := calculateColumnWidths([]string{"sort"}, [][]string{{strings.Repeat("z", 30)}}, 80, []ColumnHint{{MaxWidth: 10}})
		assert.Equal(t, []int{10}, got)
	})

	t.Run("proportional shrink without hints", func(t *testing.T) {
		cols := []string{strings.Repeat("a", 10), strings.Repeat("b", 10)}
		got := calculateColumnWidths(cols, nil, 12, nil)
		assert.Equal(t, []int{5, 5}, got)
	})
}

func TestShrinkByPriority(t *testing.T) {
	hints := []ColumnHint{{Priority: 1}, {Priority: 5}, {Priority: 10}}

	t.Run("lowest priority shrinks first", func(t *testing.T) {
		got := shrinkByPriority([]int{10, 10, 10}, 20, hints)
		assert.Equal(t, []int{3, 7, 10}, got)
	})

	t.Run("no excess", func(t *testing.T) {
		got := shrinkByPriority([]int{5, 5, 5}, 20, hints)
		assert.Equal(t, []int{5, 5, 5}, got)
	})

	t.Run("stops at minimum width", func(t *testing.T) {
		got := shrinkByPriority([]int{4, 4, 4}, 3, hints)
		assert.Equal(t, []int{3, 3, 3}, got)
	})

	t.Run("hint floor is respected", func(t *testing.T) {
		floored := []ColumnHint{{Priority: 1, MinWidth: 8}, {Priority: 5}}
		got := shrinkByPriority([]int{10, 10}, 12, floored)
		assert.Equal(t, []int{8, 4}, got)
	})
}

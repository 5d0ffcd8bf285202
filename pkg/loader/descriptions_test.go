package loader

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/gridcol/pkg/column"
)

func TestLoadDescriptionsShapes(t *testing.T) {
	inputs := map[string]string{
		"yaml list": `- name: id
  width: 120
- name: firstName
  width: "**"`,
		"columns key": `columns:
  - name: id
    width: 120
  - name: firstName
    width: "**"`,
		"json": `[{"name":"id","width":120},{"name":"firstName","width":"**"}]`,
		"ndjson": `{"name":"id","width":120}
{"name":"firstName","width":"**"}`,
		"multi-doc": `name: id
width: 120
---
name: firstName
width: "**"`,
		"toml": `[[columns]]
name = "id"
width = 120

[[columns]]
name = "firstName"
width = "**"`,
	}

	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			descs, err := LoadDescriptions(input, DecodeOptions{})
			require.NoError(t, err)
			require.Len(t, descs, 2)

			require.NotNil(t, descs[0].Name)
			assert.Equal(t, "id", *descs[0].Name)
			assert.Equal(t, "firstName", *descs[1].Name)

			// whatever numeric type the decoder chose, the builder sees a number
			m, err := column.New(descs[0], 0)
			require.NoError(t, err)
			assert.Equal(t, column.Pixels(120), m.Width)

			m, err = column.New(descs[1], 1)
			require.NoError(t, err)
			assert.Equal(t, column.Flexible(2), m.Width)
			assert.Equal(t, "First Name", m.DisplayName)
		})
	}
}

func TestDecodeDescriptionAllFields(t *testing.T) {
	input := `
- name: price
  index: 4
  field: item.price
  displayName: Unit price
  width: 30%
  minWidth: 60
  maxWidth: 200
  cellClass: num
  cellFilter: currency
  headerClass: hdr
  visible: false
  enableSorting: false
  enableFiltering: true
  sortingAlgorithm: "a - b"
  menuItems:
    - title: Hide
      icon: eye
      action: hide
  sort:
    direction: asc
    priority: 1
  filter:
    - term: 10
      condition: gt
`
	var compiled []string
	opts := DecodeOptions{Comparators: func(expr string) (column.Comparator, error) {
		compiled = append(compiled, expr)
		return func(a, b any) int { return 0 }, nil
	}}

	descs, err := LoadDescriptions(input, opts)
	require.NoError(t, err)
	require.Len(t, descs, 1)
	d := descs[0]

	assert.Equal(t, 4, *d.Index)
	assert.Equal(t, "item.price", *d.Field)
	assert.Equal(t, "Unit price", *d.DisplayName)
	assert.Equal(t, "30%", d.Width)
	assert.Equal(t, 60, d.MinWidth)
	assert.Equal(t, 200, d.MaxWidth)
	assert.Equal(t, "num", d.CellClass)
	assert.Equal(t, "currency", d.CellFilter)
	assert.Equal(t, "hdr", d.HeaderClass)
	assert.False(t, *d.Visible)
	assert.False(t, *d.EnableSorting)
	assert.True(t, *d.EnableFiltering)
	assert.NotNil(t, d.SortingAlgorithm)
	assert.Equal(t, []string{"a - b"}, compiled)
	assert.Equal(t, []column.MenuItem{{Title: "Hide", Icon: "eye", Action: "hide"}}, d.MenuItems)
	assert.Equal(t, column.SortState{"direction": "asc", "priority": 1}, d.Sort)
	assert.Equal(t, column.FilterState{{Term: 10, Condition: "gt"}}, d.Filter)
}

func TestDecodeDescriptionAbsentFields(t *testing.T) {
	d, err := DecodeDescription(map[string]interface{}{"name": "id"}, DecodeOptions{})
	require.NoError(t, err)
	assert.Nil(t, d.Index)
	assert.Nil(t, d.Field)
	assert.Nil(t, d.DisplayName)
	assert.Nil(t, d.Width)
	assert.Nil(t, d.Visible)
	assert.Nil(t, d.EnableSorting)
	assert.Nil(t, d.Sort)
	assert.Nil(t, d.Filter)
	assert.Nil(t, d.MenuItems)
}

func TestDecodeDescriptionNullsAreAbsent(t *testing.T) {
	d, err := DecodeDescription(map[string]interface{}{
		"name":  "id",
		"field": nil,
		"sort":  nil,
		"width": nil,
	}, DecodeOptions{})
	require.NoError(t, err)
	assert.Nil(t, d.Field)
	assert.Nil(t, d.Sort)
	assert.Nil(t, d.Width)
}

func TestDecodeDescriptionSingleFilterMapping(t *testing.T) {
	d, err := DecodeDescription(map[string]interface{}{
		"name":   "id",
		"filter": map[string]interface{}{"term": "abc"},
	}, DecodeOptions{})
	require.NoError(t, err)
	assert.Equal(t, column.FilterState{{Term: "abc"}}, d.Filter)
}

func TestDecodeDescriptionMissingNameIsNotALoaderError(t *testing.T) {
	descs, err := LoadDescriptions(`[{"width": "*"}]`, DecodeOptions{})
	require.NoError(t, err)
	require.Len(t, descs, 1)

	_, err = column.New(descs[0], 0)
	assert.ErrorIs(t, err, column.ErrMissingName)
}

func TestDecodeDescriptionTypeErrors(t *testing.T) {
	tests := []struct {
		name    string
		raw     map[string]interface{}
		wantErr string
	}{
		{"name not string", map[string]interface{}{"name": 5}, "name: expected a string"},
		{"visible not bool", map[string]interface{}{"name": "a", "visible": "yes"}, "visible: expected a boolean"},
		{"minWidth not integer", map[string]interface{}{"name": "a", "minWidth": "50"}, "minWidth: expected an integer"},
		{"maxWidth fractional", map[string]interface{}{"name": "a", "maxWidth": 1.5}, "maxWidth: expected an integer"},
		{"index not integer", map[string]interface{}{"name": "a", "index": "one"}, "index: expected an integer"},
		{"sort not mapping", map[string]interface{}{"name": "a", "sort": "asc"}, "sort: expected a mapping"},
		{"filter scalar", map[string]interface{}{"name": "a", "filter": 3}, "filter: expected a list or mapping"},
		{"filter item scalar", map[string]interface{}{"name": "a", "filter": []interface{}{"x"}}, "filter[0]: expected a mapping"},
		{"filter condition", map[string]interface{}{"name": "a", "filter": []interface{}{map[string]interface{}{"condition": 1}}}, "filter[0].condition"},
		{"menu not list", map[string]interface{}{"name": "a", "menuItems": "x"}, "menuItems: expected a list"},
		{"menu title", map[string]interface{}{"name": "a", "menuItems": []interface{}{map[string]interface{}{"title": 1}}}, "menuItems[0].title"},
		{"comparator without compiler", map[string]interface{}{"name": "a", "sortingAlgorithm": "a < b"}, "no comparator compiler"},
		{"comparator not string", map[string]interface{}{"name": "a", "sortingAlgorithm": 1}, "sortingAlgorithm: expected a string"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeDescription(tt.raw, DecodeOptions{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDecodeDescriptionsReportsEveryBadColumn(t *testing.T) {
	descs, err := LoadDescriptions(`[{"name": 1}, {"name": "ok"}, "scalar"]`, DecodeOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "column 0:")
	assert.Contains(t, err.Error(), "column 2:")
	assert.NotContains(t, err.Error(), "column 1:")

	require.Len(t, descs, 1)
	assert.Equal(t, "ok", *descs[0].Name)
}

func TestFalsyBoundsFallBackToDefaults(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty strings", `[{"name":"age","minWidth":"","maxWidth":""}]`},
		{"zeros", `[{"name":"age","minWidth":0,"maxWidth":0}]`},
		{"nulls", `[{"name":"age","minWidth":null,"maxWidth":null}]`},
		{"false", `[{"name":"age","minWidth":false,"maxWidth":false}]`},
		{"yaml empty", "- name: age\n  minWidth: \"\"\n  maxWidth: ''\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			descs, err := LoadDescriptions(tt.input, DecodeOptions{})
			require.NoError(t, err)
			require.Len(t, descs, 1)

			m, err := column.New(descs[0], 0)
			require.NoError(t, err)
			assert.Equal(t, column.DefaultMinWidth, m.MinWidth)
			assert.Equal(t, column.DefaultMaxWidth, m.MaxWidth)
		})
	}
}

func TestEmptyBoundDoesNotDropOtherColumns(t *testing.T) {
	input := "- name: age\n  minWidth: \"\"\n- name: id\n  width: 40\n"
	descs, err := LoadDescriptions(input, DecodeOptions{})
	require.NoError(t, err)
	require.Len(t, descs, 2)
	assert.Equal(t, "id", *descs[1].Name)
}

func TestDecodeDescriptionsRejectsBadDocuments(t *testing.T) {
	_, err := DecodeDescriptions([]interface{}{"just text"}, DecodeOptions{})
	require.Error(t, err)

	_, err = DecodeDescriptions([]interface{}{map[string]interface{}{"columns": "x"}}, DecodeOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "columns: expected a list")
}

func TestComparatorCompileErrorIsWrapped(t *testing.T) {
	boom := errors.New("boom")
	_, err := DecodeDescription(map[string]interface{}{"name": "a", "sortingAlgorithm": "a <"}, DecodeOptions{
		Comparators: func(string) (column.Comparator, error) { return nil, boom },
	})
	require.ErrorIs(t, err, boom)
	assert.True(t, strings.HasPrefix(err.Error(), "sortingAlgorithm:"))
}

func TestLoadDescriptionsReaderAndFile(t *testing.T) {
	descs, err := LoadDescriptionsReader(strings.NewReader("- name: id\n"), DecodeOptions{})
	require.NoError(t, err)
	assert.Len(t, descs, 1)

	_, err = LoadDescriptionsFile("does-not-exist.yaml", DecodeOptions{})
	require.Error(t, err)
}

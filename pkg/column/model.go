package column

import "maps"

// Model is a resolved column. Collections own models and rebuild them in
// place when a column is redefined.
type Model struct {
	Index int    `json:"index" yaml:"index"`
	Name  string `json:"name" yaml:"name"`

	Width    WidthSpec `json:"width" yaml:"width"`
	MinWidth int       `json:"minWidth" yaml:"minWidth"`
	MaxWidth int       `json:"maxWidth" yaml:"maxWidth"`

	Field       string `json:"field" yaml:"field"`
	DisplayName string `json:"displayName" yaml:"displayName"`

	CellClass   string `json:"cellClass,omitempty" yaml:"cellClass,omitempty"`
	CellFilter  string `json:"cellFilter" yaml:"cellFilter"`
	HeaderClass string `json:"headerClass,omitempty" yaml:"headerClass,omitempty"`

	Visible         bool `json:"visible" yaml:"visible"`
	EnableSorting   bool `json:"enableSorting" yaml:"enableSorting"`
	EnableFiltering bool `json:"enableFiltering" yaml:"enableFiltering"`

	SortingAlgorithm Comparator `json:"-" yaml:"-"`
	MenuItems        []MenuItem `json:"menuItems,omitempty" yaml:"menuItems,omitempty"`

	Sort   SortState   `json:"sort" yaml:"sort"`
	Filter FilterState `json:"filter" yaml:"filter"`

	desc *Description
}

// ClearSort removes the column from sorting.
func (m *Model) ClearSort() {
	m.Sort = SortState{}
}

// Description returns the raw description the model was last built from.
func (m *Model) Description() *Description {
	return m.desc
}

// HasSortingAlgorithm reports whether a custom comparator is attached.
func (m *Model) HasSortingAlgorithm() bool {
	return m.SortingAlgorithm != nil
}

// Clone returns a copy whose sort, filter and menu slices are not shared.
func (m *Model) Clone() *Model {
	c := *m
	if m.Sort != nil {
		c.Sort = maps.Clone(m.Sort)
	}
	if m.Filter != nil {
		c.Filter = append(FilterState{}, m.Filter...)
	}
	if m.MenuItems != nil {
		c.MenuItems = append([]MenuItem(nil), m.MenuItems...)
	}
	return &c
}

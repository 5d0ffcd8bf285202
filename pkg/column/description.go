package column

// Comparator orders two cell values: negative when a sorts first, positive
// when b does, zero when equal. The builder only stores it.
type Comparator func(a, b any) int

// SortState is opaque sort configuration, e.g. {"direction": "asc"}.
// A nil SortState means "not supplied".
type SortState map[string]any

// FilterTerm is one filter entry applied to a column.
type FilterTerm struct {
	Term      any    `json:"term" yaml:"term"`
	Condition string `json:"condition,omitempty" yaml:"condition,omitempty"`
}

// FilterState is the list of filters on a column. A nil FilterState means
// "not supplied"; an empty non-nil one is an explicit empty filter.
type FilterState []FilterTerm

// MenuItem is an entry of a column's header menu. Action names a host
// command; the builder never invokes it.
type MenuItem struct {
	Title  string `json:"title" yaml:"title"`
	Icon   string `json:"icon,omitempty" yaml:"icon,omitempty"`
	Action string `json:"action,omitempty" yaml:"action,omitempty"`
}

// Description is the caller-supplied, loosely-typed definition of one column.
// Pointer fields distinguish "absent" from a zero value.
//
// MinWidth and MaxWidth are the exception: zero means absent.
type Description struct {
	Index *int `json:"index,omitempty" yaml:"index,omitempty"`

	Name        *string `json:"name,omitempty" yaml:"name,omitempty"`
	Field       *string `json:"field,omitempty" yaml:"field,omitempty"`
	DisplayName *string `json:"displayName,omitempty" yaml:"displayName,omitempty"`

	// Width is nil, a Go number, or a string such as "120", "30%" or "**".
	Width    any `json:"width,omitempty" yaml:"width,omitempty"`
	MinWidth int `json:"minWidth,omitempty" yaml:"minWidth,omitempty"`
	MaxWidth int `json:"maxWidth,omitempty" yaml:"maxWidth,omitempty"`

	CellClass   string `json:"cellClass,omitempty" yaml:"cellClass,omitempty"`
	CellFilter  string `json:"cellFilter,omitempty" yaml:"cellFilter,omitempty"`
	HeaderClass string `json:"headerClass,omitempty" yaml:"headerClass,omitempty"`

	Visible         *bool `json:"visible,omitempty" yaml:"visible,omitempty"`
	EnableSorting   *bool `json:"enableSorting,omitempty" yaml:"enableSorting,omitempty"`
	EnableFiltering *bool `json:"enableFiltering,omitempty" yaml:"enableFiltering,omitempty"`

	SortingAlgorithm Comparator `json:"-" yaml:"-"`
	MenuItems        []MenuItem `json:"menuItems,omitempty" yaml:"menuItems,omitempty"`

	Sort   SortState   `json:"sort,omitempty" yaml:"sort,omitempty"`
	Filter FilterState `json:"filter,omitempty" yaml:"filter,omitempty"`
}

// Named returns a description with only the name set.
func Named(name string) *Description {
	return &Description{Name: &name}
}

// StringPtr returns a pointer to s, for filling optional string fields.
func StringPtr(s string) *string { return &s }

// BoolPtr returns a pointer to b, for filling optional bool fields.
func BoolPtr(b bool) *bool { return &b }

// IntPtr returns a pointer to i.
func IntPtr(i int) *int { return &i }

package loader

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/oakwood-commons/gridcol/pkg/column"
)

// ComparatorCompiler turns a sortingAlgorithm expression into a comparator.
type ComparatorCompiler func(expr string) (column.Comparator, error)

// DecodeOptions controls how raw documents become column descriptions.
type DecodeOptions struct {
	// Comparators compiles string sortingAlgorithm values. When nil, a
	// description that sets sortingAlgorithm is an error.
	Comparators ComparatorCompiler
}

// LoadDescriptions parses input (any format LoadData accepts) into column
// descriptions.
func LoadDescriptions(input string, opts DecodeOptions) ([]*column.Description, error) {
	docs, err := LoadData(input)
	if err != nil {
		return nil, err
	}
	return DecodeDescriptions(docs, opts)
}

// LoadDescriptionsFile is LoadDescriptions for a file.
func LoadDescriptionsFile(path string, opts DecodeOptions) ([]*column.Description, error) {
	docs, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return DecodeDescriptions(docs, opts)
}

// LoadDescriptionsReader is LoadDescriptions for a reader.
func LoadDescriptionsReader(r io.Reader, opts DecodeOptions) ([]*column.Description, error) {
	docs, err := LoadReader(r)
	if err != nil {
		return nil, err
	}
	return DecodeDescriptions(docs, opts)
}

// DecodeDescriptions converts parsed documents into descriptions. Each
// document may be a list of columns, a mapping with a "columns" list, or a
// single column mapping. Positions in errors count columns across all
// documents.
//
// A column that fails to decode is left out and reported in the joined
// error; the other columns are still returned. A document of the wrong
// shape fails the whole call with nil descriptions.
func DecodeDescriptions(docs []interface{}, opts DecodeOptions) ([]*column.Description, error) {
	var items []interface{}
	for _, doc := range docs {
		switch v := doc.(type) {
		case []interface{}:
			items = append(items, v...)
		case map[string]interface{}:
			if cols, ok := v["columns"]; ok {
				list, ok := cols.([]interface{})
				if !ok {
					return nil, fmt.Errorf("columns: expected a list, got %T", cols)
				}
				items = append(items, list...)
				continue
			}
			items = append(items, v)
		default:
			return nil, fmt.Errorf("expected a column list or mapping, got %T", doc)
		}
	}

	out := make([]*column.Description, 0, len(items))
	var errs []error
	for i, item := range items {
		desc, err := DecodeDescription(item, opts)
		if err != nil {
			errs = append(errs, fmt.Errorf("column %d: %w", i, err))
			continue
		}
		out = append(out, desc)
	}
	return out, errors.Join(errs...)
}

// DecodeDescription converts one loosely-typed mapping into a description.
// Unknown keys are ignored. Width is passed through untouched so that the
// builder classifies it.
func DecodeDescription(raw interface{}, opts DecodeOptions) (*column.Description, error) {
	m, ok := raw.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("expected a mapping, got %T", raw)
	}

	d := &column.Description{}
	var err error

	if d.Index, err = optionalInt(m, "index"); err != nil {
		return nil, err
	}
	if d.Name, err = optionalString(m, "name"); err != nil {
		return nil, err
	}
	if d.Field, err = optionalString(m, "field"); err != nil {
		return nil, err
	}
	if d.DisplayName, err = optionalString(m, "displayName"); err != nil {
		return nil, err
	}

	d.Width = m["width"]

	if d.MinWidth, err = intOrZero(m, "minWidth"); err != nil {
		return nil, err
	}
	if d.MaxWidth, err = intOrZero(m, "maxWidth"); err != nil {
		return nil, err
	}

	for key, dst := range map[string]*string{
		"cellClass":   &d.CellClass,
		"cellFilter":  &d.CellFilter,
		"headerClass": &d.HeaderClass,
	} {
		s, err := optionalString(m, key)
		if err != nil {
			return nil, err
		}
		if s != nil {
			*dst = *s
		}
	}

	if d.Visible, err = optionalBool(m, "visible"); err != nil {
		return nil, err
	}
	if d.EnableSorting, err = optionalBool(m, "enableSorting"); err != nil {
		return nil, err
	}
	if d.EnableFiltering, err = optionalBool(m, "enableFiltering"); err != nil {
		return nil, err
	}

	if expr, err := optionalString(m, "sortingAlgorithm"); err != nil {
		return nil, err
	} else if expr != nil {
		if opts.Comparators == nil {
			return nil, fmt.Errorf("sortingAlgorithm: no comparator compiler configured")
		}
		cmp, err := opts.Comparators(*expr)
		if err != nil {
			return nil, fmt.Errorf("sortingAlgorithm: %w", err)
		}
		d.SortingAlgorithm = cmp
	}

	if d.MenuItems, err = decodeMenuItems(m["menuItems"]); err != nil {
		return nil, err
	}
	if d.Sort, err = decodeSort(m["sort"]); err != nil {
		return nil, err
	}
	if d.Filter, err = decodeFilter(m["filter"]); err != nil {
		return nil, err
	}
	return d, nil
}

func optionalString(m map[string]interface{}, key string) (*string, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return nil, nil
	}
	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("%s: expected a string, got %T", key, v)
	}
	return &s, nil
}

func optionalBool(m map[string]interface{}, key string) (*bool, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return nil, nil
	}
	b, ok := v.(bool)
	if !ok {
		return nil, fmt.Errorf("%s: expected a boolean, got %T", key, v)
	}
	return &b, nil
}

func optionalInt(m map[string]interface{}, key string) (*int, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return nil, nil
	}
	i, ok := toInt(v)
	if !ok {
		return nil, fmt.Errorf("%s: expected an integer, got %v", key, v)
	}
	return &i, nil
}

// intOrZero reads a width bound. Falsy scalars (null, "", false) read as 0,
// which the builder replaces with its default.
func intOrZero(m map[string]interface{}, key string) (int, error) {
	switch m[key] {
	case nil, "", false:
		return 0, nil
	}
	p, err := optionalInt(m, key)
	if err != nil || p == nil {
		return 0, err
	}
	return *p, nil
}

// toInt accepts the integer shapes produced by the JSON, YAML and TOML decoders.
func toInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint64:
		return int(n), true
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}

func decodeMenuItems(v interface{}) ([]column.MenuItem, error) {
	if v == nil {
		return nil, nil
	}
	list, ok := v.([]interface{})
	if !ok {
		return nil, fmt.Errorf("menuItems: expected a list, got %T", v)
	}
	items := make([]column.MenuItem, 0, len(list))
	for i, raw := range list {
		m, ok := raw.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("menuItems[%d]: expected a mapping, got %T", i, raw)
		}
		var item column.MenuItem
		for key, dst := range map[string]*string{"title": &item.Title, "icon": &item.Icon, "action": &item.Action} {
			s, err := optionalString(m, key)
			if err != nil {
				return nil, fmt.Errorf("menuItems[%d].%w", i, err)
			}
			if s != nil {
				*dst = *s
			}
		}
		items = append(items, item)
	}
	return items, nil
}

func decodeSort(v interface{}) (column.SortState, error) {
	if v == nil {
		return nil, nil
	}
	m, ok := v.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("sort: expected a mapping, got %T", v)
	}
	return column.SortState(m), nil
}

// decodeFilter accepts a list of {term, condition} mappings or a single one.
func decodeFilter(v interface{}) (column.FilterState, error) {
	if v == nil {
		return nil, nil
	}
	var list []interface{}
	switch f := v.(type) {
	case []interface{}:
		list = f
	case map[string]interface{}:
		list = []interface{}{f}
	default:
		return nil, fmt.Errorf("filter: expected a list or mapping, got %T", v)
	}

	out := make(column.FilterState, 0, len(list))
	for i, raw := range list {
		m, ok := raw.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("filter[%d]: expected a mapping, got %T", i, raw)
		}
		cond, err := optionalString(m, "condition")
		if err != nil {
			return nil, fmt.Errorf("filter[%d].%w", i, err)
		}
		ft := column.FilterTerm{Term: m["term"]}
		if cond != nil {
			ft.Condition = *cond
		}
		out = append(out, ft)
	}
	return out, nil
}

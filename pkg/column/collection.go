package column

import (
	"errors"
	"fmt"
	"sync"
)

// Collection owns the column models of one table, ordered by index.
// Its methods may be called concurrently and redefinitions are serialized.
// Define rebuilds existing models in place, so a *Model returned by Get, At
// or Models must not be read while another goroutine calls Define, Add,
// Remove or ClearSorts. Use Model.Clone for a stable copy.
type Collection struct {
	mu      sync.RWMutex
	builder *Builder
	models  []*Model
}

// NewCollection returns an empty collection that builds with b, or with
// the default builder when b is nil.
func NewCollection(b *Builder) *Collection {
	if b == nil {
		b = defaultBuilder
	}
	return &Collection{builder: b}
}

// Define applies a full column set. A description whose name matches an
// existing model rebuilds that model in place at its new position, so its
// sort and filter state survive. New names get new models. Models whose
// names are missing from descs are dropped.
//
// A column that fails to resolve is left out (or kept as it was, for an
// existing column); the other columns are still applied. All failures are
// returned joined.
func (c *Collection) Define(descs []*Description) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	byName := make(map[string]*Model, len(c.models))
	for _, m := range c.models {
		byName[m.Name] = m
	}

	var errs []error
	next := make([]*Model, 0, len(descs))
	seen := make(map[string]bool, len(descs))
	for i, desc := range descs {
		pos := len(next)
		if desc == nil {
			desc = &Description{}
		}
		// errors cite i, the position in descs; models get dense indices
		if desc.Name == nil {
			errs = append(errs, &MissingNameError{Index: i})
			continue
		}
		if seen[*desc.Name] {
			errs = append(errs, fmt.Errorf("duplicate column name %q at index %d", *desc.Name, i))
			continue
		}

		var (
			m   *Model
			err error
		)
		if byName[*desc.Name] != nil {
			m = byName[*desc.Name]
			if err = c.builder.RebuildAt(m, desc, pos); err != nil {
				// keep the previous definition in place
				errs = append(errs, err)
				m.Index = pos
			}
		} else {
			m, err = c.builder.Build(desc, pos)
			if err != nil {
				errs = append(errs, err)
				continue
			}
		}
		seen[m.Name] = true
		next = append(next, m)
	}

	c.models = next
	return errors.Join(errs...)
}

// Add builds one more column at the end. Adding a name that already exists
// redefines that column in place instead.
func (c *Collection) Add(desc *Description) (*Model, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if desc != nil && desc.Name != nil {
		for _, m := range c.models {
			if m.Name == *desc.Name {
				if err := c.builder.Rebuild(m, desc); err != nil {
					return nil, err
				}
				return m, nil
			}
		}
	}
	m, err := c.builder.Build(desc, len(c.models))
	if err != nil {
		return nil, err
	}
	c.models = append(c.models, m)
	return m, nil
}

// Get returns the model named name.
func (c *Collection) Get(name string) (*Model, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, m := range c.models {
		if m.Name == name {
			return m, true
		}
	}
	return nil, false
}

// At returns the model at index.
func (c *Collection) At(index int) (*Model, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if index < 0 || index >= len(c.models) {
		return nil, false
	}
	return c.models[index], true
}

// Models returns the models in index order. The slice is a copy; the
// models are shared.
func (c *Collection) Models() []*Model {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]*Model(nil), c.models...)
}

// Len returns the number of columns.
func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.models)
}

// Remove drops the column named name and re-indexes the rest.
func (c *Collection) Remove(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, m := range c.models {
		if m.Name != name {
			continue
		}
		c.models = append(c.models[:i], c.models[i+1:]...)
		for j := i; j < len(c.models); j++ {
			c.models[j].Index = j
		}
		return true
	}
	return false
}

// ClearSorts clears the sort state of every column.
func (c *Collection) ClearSorts() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, m := range c.models {
		m.ClearSort()
	}
}

package column

import "github.com/go-logr/logr"

// Default bounds applied when a description leaves them unset or zero.
const (
	DefaultMinWidth = 50
	DefaultMaxWidth = 9000
)

// NameTransform derives a display label from a column name.
type NameTransform func(name string) string

// Builder resolves descriptions into models. It holds configuration only;
// every call is an independent transformation.
type Builder struct {
	readable NameTransform
	log      logr.Logger
}

// Option configures a Builder.
type Option func(*Builder)

// WithNameTransform replaces ReadableName as the displayName default.
func WithNameTransform(fn NameTransform) Option {
	return func(b *Builder) {
		if fn != nil {
			b.readable = fn
		}
	}
}

// WithLogger sets the logger used for V(1) build traces.
func WithLogger(lgr logr.Logger) Option {
	return func(b *Builder) {
		b.log = lgr
	}
}

// NewBuilder creates a Builder with defaults.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		readable: ReadableName,
		log:      logr.Discard(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

var defaultBuilder = NewBuilder()

// New builds a model for desc at position index using the default builder.
func New(desc *Description, index int) (*Model, error) {
	return defaultBuilder.Build(desc, index)
}

// Build stamps index on desc and resolves it into a new model.
func (b *Builder) Build(desc *Description, index int) (*Model, error) {
	if desc == nil {
		desc = &Description{}
	}
	desc.Index = &index
	m := &Model{}
	if err := b.update(m, desc, nil); err != nil {
		return nil, err
	}
	return m, nil
}

// Rebuild re-resolves m from desc in place, keeping m's index (or the
// description's index when m was never built). On error m is unchanged.
func (b *Builder) Rebuild(m *Model, desc *Description) error {
	return b.update(m, desc, nil)
}

// RebuildAt is Rebuild with an explicit index.
func (b *Builder) RebuildAt(m *Model, desc *Description, index int) error {
	return b.update(m, desc, &index)
}

func (b *Builder) update(m *Model, desc *Description, index *int) error {
	if desc == nil {
		desc = &Description{}
	}

	next := Model{desc: desc}
	next.Index = resolveIndex(m, desc, index)

	if desc.Name == nil {
		return &MissingNameError{Index: next.Index}
	}
	next.Name = *desc.Name

	width, err := ResolveWidth(desc.Width, next.Name)
	if err != nil {
		return err
	}
	next.Width = width

	next.MinWidth = desc.MinWidth
	if next.MinWidth == 0 {
		next.MinWidth = DefaultMinWidth
	}
	next.MaxWidth = desc.MaxWidth
	if next.MaxWidth == 0 {
		next.MaxWidth = DefaultMaxWidth
	}

	next.Field = next.Name
	if desc.Field != nil {
		next.Field = *desc.Field
	}
	if desc.DisplayName != nil {
		next.DisplayName = *desc.DisplayName
	} else {
		next.DisplayName = b.readable(next.Name)
	}

	next.CellClass = desc.CellClass
	next.CellFilter = desc.CellFilter
	next.HeaderClass = desc.HeaderClass

	// Every resolved column is visible; desc.Visible is kept on the
	// description only.
	next.Visible = true

	next.EnableSorting = boolOr(desc.EnableSorting, true)
	next.EnableFiltering = boolOr(desc.EnableFiltering, true)
	next.SortingAlgorithm = desc.SortingAlgorithm
	next.MenuItems = desc.MenuItems

	switch {
	case desc.Sort != nil:
		next.Sort = desc.Sort
	case m.Sort != nil:
		next.Sort = m.Sort
	default:
		next.Sort = SortState{}
	}
	switch {
	case desc.Filter != nil:
		next.Filter = desc.Filter
	case m.Filter != nil:
		next.Filter = m.Filter
	default:
		next.Filter = FilterState{}
	}

	rebuild := m.desc != nil
	*m = next

	b.log.V(1).Info("column resolved",
		"index", m.Index,
		"name", m.Name,
		"width", m.Width.String(),
		"widthKind", m.Width.Kind().String(),
		"rebuild", rebuild,
	)
	return nil
}

func resolveIndex(m *Model, desc *Description, explicit *int) int {
	switch {
	case explicit != nil:
		return *explicit
	case m.desc != nil:
		return m.Index
	case desc.Index != nil:
		return *desc.Index
	default:
		return m.Index
	}
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

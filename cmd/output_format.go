package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/oakwood-commons/gridcol/pkg/settings"
)

// outputFormat is a pflag.Value restricted to the supported formats.
type outputFormat string

var _ pflag.Value = (*outputFormat)(nil)

func (o *outputFormat) String() string { return string(*o) }

func (o *outputFormat) Set(v string) error {
	v = strings.ToLower(strings.TrimSpace(v))
	if !settings.ValidOutputFormat(v) {
		return fmt.Errorf("unsupported output format %q (use %s|%s|%s)", v, settings.OutputTable, settings.OutputYAML, settings.OutputJSON)
	}
	*o = outputFormat(v)
	return nil
}

func (o *outputFormat) Type() string { return "format" }

// rowNumberStyle is a pflag.Value for the table row-number column.
type rowNumberStyle string

var _ pflag.Value = (*rowNumberStyle)(nil)

func (r *rowNumberStyle) String() string { return string(*r) }

func (r *rowNumberStyle) Set(v string) error {
	switch v {
	case "numbered", "index", "bullet", "none":
		*r = rowNumberStyle(v)
		return nil
	}
	return fmt.Errorf("unsupported row number style %q (use numbered|index|bullet|none)", v)
}

func (r *rowNumberStyle) Type() string { return "style" }

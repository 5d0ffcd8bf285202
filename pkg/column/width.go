package column

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// WidthKind identifies which variant a WidthSpec holds.
type WidthKind int

const (
	// WidthFlexible shares leftover space with other flexible columns by weight.
	WidthFlexible WidthKind = iota
	// WidthPixels is a fixed size.
	WidthPixels
	// WidthPercent is a share of the table width.
	WidthPercent
)

// String returns the kind name.
func (k WidthKind) String() string {
	switch k {
	case WidthFlexible:
		return "flexible"
	case WidthPixels:
		return "pixels"
	case WidthPercent:
		return "percent"
	default:
		return fmt.Sprintf("WidthKind(%d)", int(k))
	}
}

// WidthSpec is a resolved column width. The zero value is Flexible(1).
type WidthSpec struct {
	kind    WidthKind
	weight  int
	pixels  int
	percent string
}

// Flexible returns a star-sized width. Weights below 1 are raised to 1.
func Flexible(weight int) WidthSpec {
	if weight < 1 {
		weight = 1
	}
	return WidthSpec{kind: WidthFlexible, weight: weight}
}

// Pixels returns a fixed width.
func Pixels(n int) WidthSpec {
	return WidthSpec{kind: WidthPixels, pixels: n}
}

// Percent returns a percentage width stored in its textual form, e.g. "30%".
func Percent(text string) WidthSpec {
	return WidthSpec{kind: WidthPercent, percent: text}
}

// Kind reports the variant.
func (w WidthSpec) Kind() WidthKind { return w.kind }

// Weight returns the flexible weight, or 0 for other kinds.
func (w WidthSpec) Weight() int {
	if w.kind != WidthFlexible {
		return 0
	}
	if w.weight < 1 {
		return 1
	}
	return w.weight
}

// PixelCount returns the fixed width, or 0 for other kinds.
func (w WidthSpec) PixelCount() int {
	if w.kind != WidthPixels {
		return 0
	}
	return w.pixels
}

// PercentText returns the stored percent string, or "" for other kinds.
func (w WidthSpec) PercentText() string {
	if w.kind != WidthPercent {
		return ""
	}
	return w.percent
}

// PercentValue re-derives the integer percentage from the stored text.
// ok is false for other kinds.
func (w WidthSpec) PercentValue() (int, bool) {
	if w.kind != WidthPercent {
		return 0, false
	}
	p, err := strconv.Atoi(strings.TrimRight(w.percent, "%"))
	if err != nil {
		return 0, false
	}
	return p, true
}

// String renders the width the way it would be written in a description.
func (w WidthSpec) String() string {
	switch w.kind {
	case WidthPixels:
		return strconv.Itoa(w.pixels)
	case WidthPercent:
		return w.percent
	default:
		return strings.Repeat("*", w.Weight())
	}
}

// MarshalJSON writes pixels as a number and the other kinds as strings.
func (w WidthSpec) MarshalJSON() ([]byte, error) {
	if w.kind == WidthPixels {
		return json.Marshal(w.pixels)
	}
	return json.Marshal(w.String())
}

// MarshalYAML mirrors MarshalJSON.
func (w WidthSpec) MarshalYAML() (interface{}, error) {
	if w.kind == WidthPixels {
		return w.pixels, nil
	}
	return w.String(), nil
}

var (
	digitsPattern = regexp.MustCompile(`^\d+$`)
	starsPattern  = regexp.MustCompile(`^\*+$`)
)

// ResolveWidth classifies a raw width value. name is only used in errors.
//
// Rules, first match wins: nil is Flexible(1); any Go number is Pixels
// (floats truncate); a string ending in "%" must be digits before the
// trailing percent signs; a digits-only string is Pixels; an asterisk-only
// string is Flexible with one unit of weight per asterisk. Everything else
// returns a *WidthParseError.
func ResolveWidth(raw any, name string) (WidthSpec, error) {
	if raw == nil {
		return Flexible(1), nil
	}
	if n, ok := numericValue(raw); ok {
		return Pixels(n), nil
	}

	s, ok := raw.(string)
	if !ok {
		return WidthSpec{}, &WidthParseError{Name: name, Value: raw}
	}

	switch {
	case strings.HasSuffix(s, "%"):
		digits := strings.TrimRight(s, "%")
		if !digitsPattern.MatchString(digits) {
			return WidthSpec{}, &WidthParseError{Name: name, Value: raw}
		}
		if _, err := strconv.Atoi(digits); err != nil {
			return WidthSpec{}, &WidthParseError{Name: name, Value: raw}
		}
		return Percent(s), nil
	case digitsPattern.MatchString(s):
		n, err := strconv.Atoi(s)
		if err != nil {
			return WidthSpec{}, &WidthParseError{Name: name, Value: raw}
		}
		return Pixels(n), nil
	case starsPattern.MatchString(s):
		return Flexible(len(s)), nil
	default:
		return WidthSpec{}, &WidthParseError{Name: name, Value: raw}
	}
}

// numericValue accepts Go numeric kinds and json.Number. Strings are never
// numbers here, even when they contain only digits.
func numericValue(raw any) (int, bool) {
	switch v := raw.(type) {
	case int:
		return v, true
	case int8:
		return int(v), true
	case int16:
		return int(v), true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	case uint:
		return int(v), true
	case uint8:
		return int(v), true
	case uint16:
		return int(v), true
	case uint32:
		return int(v), true
	case uint64:
		return int(v), true
	case float32:
		return truncFloat(float64(v))
	case float64:
		return truncFloat(v)
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return int(i), true
		}
		if f, err := v.Float64(); err == nil {
			return truncFloat(f)
		}
		return 0, false
	default:
		return 0, false
	}
}

func truncFloat(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int(f), true
}

package cel

import (
	"fmt"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
	celext "github.com/google/cel-go/ext"

	"github.com/oakwood-commons/gridcol/pkg/column"
)

// Evaluator compiles CEL comparator expressions over two cell values
// bound to the variables "a" and "b".
type Evaluator struct {
	env *cel.Env
}

// NewEvaluator creates an evaluator with the standard extension libraries.
func NewEvaluator() (*Evaluator, error) {
	env, err := newComparatorEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}
	return &Evaluator{env: env}, nil
}

func newComparatorEnv(opts ...cel.EnvOption) (*cel.Env, error) {
	allOpts := make([]cel.EnvOption, 0, 5+len(opts))
	allOpts = append(allOpts,
		cel.Variable("a", cel.DynType),
		cel.Variable("b", cel.DynType),
		celext.Strings(),
		celext.Lists(),
		celext.Math(),
	)
	allOpts = append(allOpts, opts...)
	return cel.NewEnv(allOpts...)
}

// CompileComparator compiles expr into a column.Comparator.
//
// The expression may return a number, whose sign is the ordering
// ("a - b"), or a bool meaning "a sorts before b" ("a < b"). Boolean
// comparators are evaluated a second time with the arguments swapped to
// tell "after" from "equal". Evaluation errors compare as equal.
func (e *Evaluator) CompileComparator(expr string) (column.Comparator, error) {
	ast, issues := e.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compilation error: %w", issues.Err())
	}

	switch ast.OutputType().Kind() {
	case types.IntKind, types.UintKind, types.DoubleKind, types.BoolKind, types.DynKind:
	default:
		return nil, fmt.Errorf("comparator %q must evaluate to a number or bool, got %s", expr, ast.OutputType())
	}

	prg, err := e.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program error: %w", err)
	}

	eval := func(a, b any) ref.Val {
		out, _, err := prg.Eval(map[string]interface{}{"a": a, "b": b})
		if err != nil {
			return nil
		}
		return out
	}

	return func(a, b any) int {
		switch v := eval(a, b).(type) {
		case types.Int:
			return sign(float64(v))
		case types.Uint:
			return sign(float64(v))
		case types.Double:
			return sign(float64(v))
		case types.Bool:
			if v {
				return -1
			}
			if after, ok := eval(b, a).(types.Bool); ok && bool(after) {
				return 1
			}
			return 0
		default:
			return 0
		}
	}, nil
}

func sign(f float64) int {
	switch {
	case f < 0:
		return -1
	case f > 0:
		return 1
	default:
		return 0
	}
}

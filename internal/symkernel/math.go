package symkernel

import (
	"fmt"
)

// elementwiseNames is the registry of elementwise math functions
// accessible by name (§6: "elementwise math (fmin fmax fabs sin cos exp
// log …) accessed by name"). Keeping this as a lookup table rather than a
// switch per call site is the "explicit registry" §9 recommends to keep
// the kernel interface narrow.
var elementwiseNames = map[string]int{ // name -> arity
	"fmin": 2, "fmax": 2, "fabs": 1,
	"sin": 1, "cos": 1, "tan": 1,
	"exp": 1, "log": 1, "sqrt": 1,
}

// ElementwiseMath builds a call node for a registered elementwise math
// function. An unregistered name or a wrong argument count returns a plain
// error; the generator checks IsElementwiseMath first and resolves any
// other operator name as a user function call.
func ElementwiseMath(name string, args ...*Handle) (*Handle, error) {
	arity, ok := elementwiseNames[name]
	if !ok {
		return nil, fmt.Errorf("symkernel: unregistered elementwise function %q", name)
	}
	if len(args) != arity {
		return nil, fmt.Errorf("symkernel: %q expects %d argument(s), got %d", name, arity, len(args))
	}
	rows, cols := args[0].Rows, args[0].Cols
	return &Handle{Op: name, Rows: rows, Cols: cols, Args: args}, nil
}

// IsElementwiseMath reports whether name is a registered elementwise
// function, letting the generator's operator dispatch fall through to it.
func IsElementwiseMath(name string) bool {
	_, ok := elementwiseNames[name]
	return ok
}

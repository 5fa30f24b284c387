package symkernel

import "fmt"

// Function is the symbolic mapping §6 calls "function construction from
// inputs/outputs" — the generator's function-inlining step (§4.E) builds
// one of these per referenced user function class and caches it by name.
type Function struct {
	Name    string
	Inputs  []*Handle
	Outputs []*Handle
}

// NewFunction constructs a named function from symbolic input/output
// handles. Outputs are expressions built in terms of Inputs.
func NewFunction(name string, inputs, outputs []*Handle) *Function {
	return &Function{Name: name, Inputs: inputs, Outputs: outputs}
}

// Call substitutes args for f's Inputs throughout f's Outputs and returns
// the resulting expressions, per §6's "call" primitive.
func (f *Function) Call(args ...*Handle) ([]*Handle, error) {
	if len(args) != len(f.Inputs) {
		return nil, fmt.Errorf("symkernel: %s expects %d argument(s), got %d", f.Name, len(f.Inputs), len(args))
	}
	return Substitute(f.Outputs, f.Inputs, args), nil
}

// MapSerial implements §6's "serial map-over-range": f is called once per
// element of indices (each becoming f's leading argument alongside the
// shared trailing args), and the per-call single-output results are
// stacked with Vertcat; an empty indices slice yields an empty handle.
// The generator's for-equation lowering does not use it: forloop.go
// substitutes each range value into the body residuals instead.
func MapSerial(f *Function, indices []int, trailing ...*Handle) (*Handle, error) {
	if len(indices) == 0 {
		return &Handle{Op: "empty", Rows: 0, Cols: 0}, nil
	}
	rows := make([]*Handle, 0, len(indices))
	for _, idx := range indices {
		args := append([]*Handle{NewConstInt(idx)}, trailing...)
		outs, err := f.Call(args...)
		if err != nil {
			return nil, err
		}
		if len(outs) != 1 {
			return nil, fmt.Errorf("symkernel: MapSerial requires a single-output function, %s has %d", f.Name, len(outs))
		}
		rows = append(rows, outs[0])
	}
	return Vertcat(rows...), nil
}

package generator

import (
	"fmt"

	"github.com/jaeandersson/modc/internal/ast"
	"github.com/jaeandersson/modc/internal/merr"
	"github.com/jaeandersson/modc/internal/symkernel"
)

// forLoopContext is a single for-loop's acquired resources (§5: "a
// for-loop context is pushed on entry and guaranteed popped on exit on
// all control paths, including error"): the integer range, the symbolic
// loop-index placeholder, the table of indexed-symbol placeholders
// registered while walking the body, and the body residuals captured
// during that single symbolic walk (to be concretized once per range
// value on exit).
type forLoopContext struct {
	indexName string
	idxHandle *symkernel.Handle
	rangeVals []int
	indexed   map[string]*symkernel.Handle
	residuals []*symkernel.Handle
}

func (g *Generator) currentForLoop() *forLoopContext {
	if g.forLoops.Empty() {
		return nil
	}
	top, _ := g.forLoops.Peek()
	return top.(*forLoopContext)
}

func (g *Generator) EnterForEquation(fe *ast.ForEquation) {
	if g.failed() {
		return
	}
	if !g.forLoops.Empty() {
		// Nested indexed for-loops are an explicit Non-goal (§1); the
		// context stack makes the hazard structurally impossible to
		// silently miscompute (§9 Open Questions item 2) by failing loudly
		// instead.
		g.fail(merr.UnsupportedConstruct("for", "nested indexed for-loops are not supported"))
		return
	}
	if len(fe.Indices) != 1 {
		g.fail(merr.UnsupportedConstruct("for", "multi-index for-equations are not supported"))
		return
	}

	idx := fe.Indices[0]
	slice, ok := idx.Expression.(*ast.Slice)
	if !ok {
		g.fail(merr.UnsupportedConstruct("for", "loop range must be a slice"))
		return
	}
	rangeVals, err := g.expandSlice(slice)
	if err != nil {
		g.fail(err)
		return
	}

	g.forLoops.Push(&forLoopContext{
		indexName: idx.Name,
		idxHandle: symkernel.NewSymbol(idx.Name, 1, 1),
		rangeVals: rangeVals,
		indexed:   map[string]*symkernel.Handle{},
	})
}

// expandSlice implements §4.E's Slice-to-sequence expansion:
// start, start+step, …, stop (inclusive of stop when aligned).
func (g *Generator) expandSlice(s *ast.Slice) ([]int, error) {
	start, err := g.getInteger(s.Start)
	if err != nil {
		return nil, err
	}
	step, err := g.getInteger(s.Step)
	if err != nil {
		return nil, err
	}
	stop, err := g.getInteger(s.Stop)
	if err != nil {
		return nil, err
	}
	if step == 0 {
		return nil, merr.ShapeError("<for-range>", "step must be nonzero")
	}
	var out []int
	if step > 0 {
		for v := start; v <= stop; v += step {
			out = append(out, v)
		}
	} else {
		for v := start; v >= stop; v += step {
			out = append(out, v)
		}
	}
	return out, nil
}

func (g *Generator) ExitForEquation(fe *ast.ForEquation) {
	// The context is popped before the concretized residuals are emitted:
	// appendEquation captures residuals into the innermost active loop
	// context, so they reach the model only once this loop's context is gone.
	ctx := g.currentForLoop()
	g.forLoops.Pop()
	if g.failed() {
		return
	}

	for _, i := range ctx.rangeVals {
		olds := []*symkernel.Handle{ctx.idxHandle}
		news := []*symkernel.Handle{symkernel.NewConstInt(i)}
		for base, placeholder := range ctx.indexed {
			name := fmt.Sprintf("%s[%d]", base, i)
			olds = append(olds, placeholder)
			news = append(news, g.concreteIndexedSymbol(name))
		}
		for _, residual := range ctx.residuals {
			out := symkernel.Substitute([]*symkernel.Handle{residual}, olds, news)[0]
			g.appendEquation(out)
		}
	}
}

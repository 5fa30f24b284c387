package generator

import (
	"github.com/jaeandersson/modc/internal/ast"
	"github.com/jaeandersson/modc/internal/merr"
	"github.com/jaeandersson/modc/internal/symkernel"
)

// inlineFunctionCall implements §4.E's "user class: resolve operator as a
// function; inline via get_function" branch of the operator table, for
// calls that appear inside an ordinary expression and therefore must
// produce exactly one output.
func (g *Generator) inlineFunctionCall(name string, e *ast.Expression, args []*symkernel.Handle) (*symkernel.Handle, error) {
	fn, err := g.getFunction(name)
	if err != nil {
		return nil, err
	}
	outs, err := fn.Call(args...)
	if err != nil {
		return nil, err
	}
	if len(outs) != 1 {
		return nil, merr.UnsupportedConstruct(name, "multi-output function call used where a single value is required")
	}
	return outs[0], nil
}

// getFunction resolves, builds and caches (by name) the symkernel.Function
// for a referenced Modelica function class, per §4.E's function-inlining
// rule: symbolic inputs/outputs from the class's input/output-prefixed
// symbols, body assignments folded by symbolic substitution over a value
// environment.
func (g *Generator) getFunction(name string) (*symkernel.Function, error) {
	if fn, ok := g.functions[name]; ok {
		return fn, nil
	}

	res, err := g.coll.FindClass(ast.ComponentRefFromString(name), nil, false, false)
	if err != nil {
		return nil, err
	}
	cls := res.Class
	if cls.Type != ast.ClassFunction {
		return nil, merr.UnsupportedConstruct(name, "referenced class is not a function")
	}

	env := map[string]*symkernel.Handle{}
	var inputs, outputs []*symkernel.Handle
	var outputNames []string
	for _, symName := range cls.Symbols.Keys() {
		sym, _ := cls.Symbols.Get(symName)
		rows, cols := functionSymbolShape(sym)
		h := symkernel.NewSymbol(symName, rows, cols)
		env[symName] = h
		switch {
		case sym.HasPrefix("input"):
			inputs = append(inputs, h)
		case sym.HasPrefix("output"):
			outputs = append(outputs, h)
			outputNames = append(outputNames, symName)
		}
	}

	for _, stmt := range cls.Statements {
		as, ok := stmt.(*ast.AssignmentStatement)
		if !ok {
			return nil, merr.UnsupportedConstruct(name, "function bodies support only assignment statements")
		}
		if len(as.Left) != 1 {
			return nil, merr.UnsupportedConstruct(name, "multi-target assignment is not supported")
		}
		rhs, err := g.evalFunctionExpr(as.Right, env)
		if err != nil {
			return nil, err
		}
		env[as.Left[0].Name] = rhs
	}

	finalOutputs := make([]*symkernel.Handle, len(outputs))
	for i, n := range outputNames {
		finalOutputs[i] = env[n]
	}

	fn := symkernel.NewFunction(name, inputs, finalOutputs)
	g.functions[name] = fn
	return fn, nil
}

// functionSymbolShape folds a literal-integer dimension the same way
// literalDimension does in the flattener, scalar otherwise — a function's
// own parameters are out of the caller's declared-symbol scope, so full
// get_integer-style constant folding through cross-references is not
// attempted here (documented simplification, mirrors component.go's
// literalDimension narrowing in the flattener).
func functionSymbolShape(sym *ast.Symbol) (int, int) {
	if len(sym.Dimensions) == 0 {
		return 1, 1
	}
	if p, ok := sym.Dimensions[0].(*ast.Primary); ok {
		if n, ok := ast.IntLiteral(p); ok && n > 0 {
			return n, 1
		}
	}
	return 1, 1
}

// evalFunctionExpr is a small, self-contained evaluator for function-body
// right-hand sides: Primary literals, ComponentRef lookups against env,
// and arithmetic/comparison Expressions. It deliberately does not support
// der/for/if or nested function calls inside a function body — those
// remain UnsupportedConstruct, since §4.E's function-inlining contract
// only requires folding straight-line assignment chains.
func (g *Generator) evalFunctionExpr(e ast.Expr, env map[string]*symkernel.Handle) (*symkernel.Handle, error) {
	switch v := e.(type) {
	case *ast.Primary:
		switch val := v.Value.(type) {
		case int:
			return symkernel.NewConstInt(val), nil
		case float64:
			return symkernel.NewConst(val), nil
		case bool:
			if val {
				return symkernel.NewConstInt(1), nil
			}
			return symkernel.NewConstInt(0), nil
		default:
			return symkernel.NewConstInt(0), nil
		}
	case *ast.ComponentRef:
		h, ok := env[v.Name]
		if !ok {
			return nil, merr.ClassNotFound(v.Name)
		}
		return h, nil
	case *ast.Expression:
		opName := v.OperatorName()
		operands := make([]*symkernel.Handle, len(v.Operands))
		for i, o := range v.Operands {
			h, err := g.evalFunctionExpr(o, env)
			if err != nil {
				return nil, err
			}
			operands[i] = h
		}
		switch opName {
		case "+":
			return foldNAry(symkernel.Add, operands), nil
		case "-":
			if len(operands) == 1 {
				return symkernel.Neg(operands[0]), nil
			}
			return foldNAry(symkernel.Sub, operands), nil
		case "*":
			return symkernel.Mtimes(operands...), nil
		case "/":
			return symkernel.Div(operands[0], operands[1]), nil
		case "^":
			return symkernel.Pow(operands[0], operands[1]), nil
		case "<", ">", "<=", ">=", "==", "!=":
			return symkernel.Compare(opName, operands[0], operands[1]), nil
		default:
			return nil, merr.UnsupportedConstruct(opName, "operator not supported inside a function body")
		}
	default:
		return nil, merr.UnsupportedConstruct("function body", "unsupported expression kind")
	}
}

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/peterh/liner"

	"github.com/jaeandersson/modc/internal/ast"
	"github.com/jaeandersson/modc/internal/diag"
	"github.com/jaeandersson/modc/internal/flatten"
)

// runInspect is an interactive REPL over a loaded Collection, ported from
// the teacher's internal/repl.REPL.Start (liner readline, history,
// completion) but driving find_class/find_symbol/flatten queries instead
// of expression evaluation.
func runInspect(out io.Writer, exampleName string) error {
	coll, target, err := loadExample(exampleName)
	if err != nil {
		return err
	}

	line := liner.NewLiner()
	defer line.Close()
	line.SetCompleter(func(s string) (c []string) {
		for _, cmd := range []string{"find_class", "find_symbol", "flatten", "help", "quit"} {
			if strings.HasPrefix(cmd, s) {
				c = append(c, cmd)
			}
		}
		return
	})

	fmt.Fprintf(out, "%s %s\n", diag.Bold("modc inspect"), exampleName)
	fmt.Fprintln(out, "Type 'help' for commands, 'quit' to exit.")

	for {
		input, err := line.Prompt("modc> ")
		if err != nil { // io.EOF or interrupt
			fmt.Fprintln(out, "Goodbye!")
			return nil
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		fields := strings.Fields(input)
		switch fields[0] {
		case "quit", "exit":
			fmt.Fprintln(out, "Goodbye!")
			return nil
		case "help":
			printInspectHelp(out)
		case "find_class":
			if len(fields) < 2 {
				fmt.Fprintln(out, "usage: find_class <Dotted.Name>")
				continue
			}
			handleFindClass(out, coll, fields[1])
		case "find_symbol":
			if len(fields) < 3 {
				fmt.Fprintln(out, "usage: find_symbol <Class.Name> <symbol>")
				continue
			}
			handleFindSymbol(out, coll, fields[1], fields[2])
		case "flatten":
			name := target.String()
			if len(fields) >= 2 {
				name = fields[1]
			}
			handleFlatten(out, coll, name)
		default:
			fmt.Fprintf(out, "unknown command %q; type 'help'\n", fields[0])
		}
	}
}

func printInspectHelp(out io.Writer) {
	fmt.Fprintln(out, "Commands:")
	fmt.Fprintln(out, "  find_class <Dotted.Name>          resolve a class reference")
	fmt.Fprintln(out, "  find_symbol <Class.Name> <symbol>  resolve a symbol within a class")
	fmt.Fprintln(out, "  flatten [Dotted.Name]              flatten a class (defaults to this example's target)")
	fmt.Fprintln(out, "  quit                                exit")
}

func handleFindClass(out io.Writer, coll *ast.Collection, name string) {
	res, err := coll.FindClass(ast.ComponentRefFromString(name), nil, true, false)
	if err != nil {
		diag.ReportError(out, err)
		return
	}
	diag.OK(out, "found class %s (type=%s, %d symbol(s))", res.Class.Name, res.Class.Type, len(res.Class.Symbols.Keys()))
}

func handleFindSymbol(out io.Writer, coll *ast.Collection, className, symbolName string) {
	res, err := coll.FindClass(ast.ComponentRefFromString(className), nil, true, false)
	if err != nil {
		diag.ReportError(out, err)
		return
	}
	sym, ok := res.Class.Symbols.Get(symbolName)
	if !ok {
		fmt.Fprintf(out, "symbol %q not found in %s\n", symbolName, className)
		return
	}
	diag.OK(out, "%s : %s, prefixes=%v", sym.Name, sym.Type.String(), sym.Prefixes)
}

func handleFlatten(out io.Writer, coll *ast.Collection, name string) {
	flat, err := flatten.Flatten(coll, ast.ComponentRefFromString(name))
	if err != nil {
		diag.ReportError(out, err)
		return
	}
	flatClassName := flat.Files[0].Classes.Keys()[0]
	flatClass, _ := flat.Files[0].Classes.Get(flatClassName)
	diag.OK(out, "flattened %s: %d symbol(s), %d equation(s)", flatClassName, len(flatClass.Symbols.Keys()), len(flatClass.Equations))
}

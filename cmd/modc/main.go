package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/jaeandersson/modc/internal/diag"
)

// Version info, set by ldflags during build, following cmd/ailang's pattern.
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	var (
		versionFlag = flag.Bool("version", false, "Print version information")
		helpFlag    = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *versionFlag {
		printVersion()
		return
	}
	if *helpFlag || flag.NArg() == 0 {
		printHelp()
		return
	}

	command := flag.Arg(0)
	switch command {
	case "generate":
		if flag.NArg() < 2 {
			missingExample("generate")
		}
		if err := runGenerate(os.Stdout, flag.Arg(1)); err != nil {
			diag.ReportError(os.Stderr, err)
			os.Exit(1)
		}

	case "inspect":
		if flag.NArg() < 2 {
			missingExample("inspect")
		}
		if err := runInspect(os.Stdout, flag.Arg(1)); err != nil {
			diag.ReportError(os.Stderr, err)
			os.Exit(1)
		}

	case "list-examples":
		for _, name := range exampleNames {
			fmt.Println(name)
		}

	case "run":
		if flag.NArg() < 2 {
			fmt.Fprintf(os.Stderr, "%s: missing config file\n", color.RedString("Error"))
			fmt.Fprintln(os.Stderr, "Usage: modc run <config.yaml>")
			os.Exit(1)
		}
		if err := runRun(os.Stdout, flag.Arg(1)); err != nil {
			diag.ReportError(os.Stderr, err)
			os.Exit(1)
		}

	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", color.RedString("Error"), command)
		printHelp()
		os.Exit(1)
	}
}

func missingExample(cmd string) {
	fmt.Fprintf(os.Stderr, "%s: missing example name\n", color.RedString("Error"))
	fmt.Fprintf(os.Stderr, "Usage: modc %s <example-name>\n", cmd)
	fmt.Fprintf(os.Stderr, "Known examples: %v\n", exampleNames)
	os.Exit(1)
}

func printVersion() {
	fmt.Printf("modc %s\n", diag.Bold(Version))
	if Commit != "unknown" {
		fmt.Printf("Commit: %s\n", Commit)
	}
}

func printHelp() {
	fmt.Println(diag.Bold("modc - Modelica front-end compiler"))
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  modc <command> [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  generate <example-name>   Flatten and generate a Model, printed as JSON")
	fmt.Println("  inspect <example-name>    Launch an interactive find_class/find_symbol/flatten REPL")
	fmt.Println("  run <config.yaml>         Load a run config and generate its target_class")
	fmt.Println("  list-examples             List the named example Collections")
	fmt.Println()
	fmt.Println("Flags:")
	fmt.Println("  --version   Print version information")
	fmt.Println("  --help      Show this help message")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  modc generate spring-mass")
	fmt.Println("  modc inspect connect-demo")
}

package main

import (
	"fmt"
	"io"

	"github.com/jaeandersson/modc/internal/ast"
	"github.com/jaeandersson/modc/internal/config"
	"github.com/jaeandersson/modc/internal/diag"
	"github.com/jaeandersson/modc/internal/flatten"
	"github.com/jaeandersson/modc/internal/generator"
)

// runRun is the config-driven counterpart to runGenerate: it loads a
// config.Spec, merges every named example in LibraryPaths into a single
// Collection (standing in for loading a library's .mo tree — see
// SPEC_FULL.md's CLI scope decision), then flattens and generates
// TargetClass out of the merged Collection.
func runRun(out io.Writer, configPath string) error {
	spec, err := config.Load(configPath)
	if err != nil {
		return err
	}

	coll := ast.NewCollection()
	for _, name := range spec.LibraryPaths {
		exColl, _, err := loadExample(name)
		if err != nil {
			return fmt.Errorf("library_paths entry %q: %w", name, err)
		}
		coll.Extend(exColl)
	}

	diag.Info(out, "loaded %d librar(y/ies): %v", len(spec.LibraryPaths), spec.LibraryPaths)

	target := ast.ComponentRefFromString(spec.TargetClass)
	diag.Info(out, "flattening %s", target)
	flat, err := flatten.Flatten(coll, target)
	if err != nil {
		return err
	}
	flatClass, _ := flat.Files[0].Classes.Get(flat.Files[0].Classes.Keys()[0])

	diag.Info(out, "generating model")
	model, err := generator.Generate(coll, flatClass)
	if err != nil {
		return err
	}

	diag.OK(out, "generated %d equation(s), %d state(s)", len(model.Equations), len(model.States))
	return writeModelJSON(out, model)
}

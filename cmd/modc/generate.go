package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jaeandersson/modc/internal/dae"
	"github.com/jaeandersson/modc/internal/diag"
	"github.com/jaeandersson/modc/internal/flatten"
	"github.com/jaeandersson/modc/internal/generator"
)

// runGenerate composes the three-step §6 pipeline deferred from
// internal/generator (FindClass is folded into flatten.Flatten itself):
// flatten the named example's Collection down to target, then run the
// generator over the flattened class, then emit the Model as JSON.
func runGenerate(out io.Writer, exampleName string) error {
	coll, target, err := loadExample(exampleName)
	if err != nil {
		return err
	}

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

func writeModelJSON(out io.Writer, model *dae.Model) error {
	b, err := json.MarshalIndent(model, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode model as JSON: %w", err)
	}
	_, err = out.Write(append(b, '\n'))
	return err
}

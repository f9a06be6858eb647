// Command mkbatch generates a synthetic input batch as JSON, suitable
// for piping into POST /batch.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"time"

	"github.com/okian/gavel/internal/batchgen"
	"github.com/okian/gavel/internal/domain/model"
)

// Default configuration constants.
const (
	defaultNumInputs     = 100
	defaultNumSubmitters = 40
	defaultTotalModules  = 100
	defaultScarceModules = 8
	defaultGenTimeout    = 30 * time.Second
)

// batchPayload mirrors the request schema for POST /batch.
type batchPayload struct {
	Inputs []model.RawInput    `json:"inputs"`
	System model.SystemContext `json:"system"`
}

func main() {
	var (
		numInputs     = flag.Int("inputs", defaultNumInputs, "Number of inputs to generate")
		numSubmitters = flag.Int("submitters", defaultNumSubmitters, "Number of distinct submitters")
		totalModules  = flag.Int("modules", defaultTotalModules, "Total modules in the system context")
		scarceModules = flag.Int("scarce", defaultScarceModules, "Modules already in the scarce tier")
		outputFile    = flag.String("output", "", "Output file (default: stdout)")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), defaultGenTimeout)
	defer cancel()

	gen := batchgen.New(
		batchgen.WithNumInputs(*numInputs),
		batchgen.WithNumSubmitters(*numSubmitters),
		batchgen.WithModuleCounts(*totalModules, *scarceModules),
	)

	inputs, sys := gen.Batch(ctx)
	payload := batchPayload{Inputs: inputs, System: sys}

	out := os.Stdout
	if *outputFile != "" {
		f, err := os.Create(*outputFile)
		if err != nil {
			os.Stderr.WriteString("failed to create output file: " + err.Error() + "\n")
			return
		}
		defer f.Close()
		out = f
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		os.Stderr.WriteString("failed to encode batch: " + err.Error() + "\n")
	}
}

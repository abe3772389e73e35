// Package runner wires configuration, document decoding, query selection
// and output rendering into a single run.
package runner

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Yogerlan/json-decoder/internal/config"
	"github.com/Yogerlan/json-decoder/internal/decode"
	"github.com/Yogerlan/json-decoder/internal/document"
	"github.com/Yogerlan/json-decoder/internal/exit"
	"github.com/Yogerlan/json-decoder/internal/output"
	"github.com/Yogerlan/json-decoder/internal/query"
)

// Runner executes one decode run.
type Runner struct {
	config *config.Config
	stderr io.Writer
}

// New creates a new Runner with the provided configuration.
func New(cfg *config.Config) (*Runner, *exit.Result) {
	if cfg == nil {
		return nil, exit.Error("Error creating runner: nil configuration\n")
	}
	return &Runner{
		config: cfg,
		stderr: os.Stderr,
	}, nil
}

// Run decodes the configured input and writes the result. It returns the
// process exit code.
func (r *Runner) Run() int {
	trace := r.newTrace()

	in, closeIn, err := r.openInput()
	if err != nil {
		fmt.Fprintf(r.stderr, "Error: %v\n", err)
		return 1
	}
	defer closeIn()

	start := time.Now()

	table, err := document.Parse(in)
	if err != nil {
		fmt.Fprintf(r.stderr, "Error: %v\n", err)
		return 1
	}
	trace.table(table)

	tree, err := document.DecodeTable(table, decode.Options{
		MaxDepth:       r.config.MaxDepth,
		LiteralNumbers: r.config.LiteralNumbers,
	})
	if err != nil {
		fmt.Fprintf(r.stderr, "Error: %v\n", err)
		return 1
	}
	trace.decoded(time.Since(start))

	value := tree
	if r.config.Query != "" {
		results, err := query.Select(tree, r.config.Query)
		if err != nil {
			fmt.Fprintf(r.stderr, "Error: %v\n", err)
			return 1
		}
		trace.matched(r.config.Query, len(results))
		// A single match prints as the value itself; multiple matches
		// print as an array.
		if len(results) == 1 {
			value = results[0]
		} else {
			value = results
		}
	}

	out, closeOut, err := r.openOutput()
	if err != nil {
		fmt.Fprintf(r.stderr, "Error: %v\n", err)
		return 1
	}
	defer closeOut()

	if err := output.Write(out, value, r.config.Format, r.config.Indent); err != nil {
		fmt.Fprintf(r.stderr, "Error: %v\n", err)
		return 1
	}

	return 0
}

func (r *Runner) openInput() (io.Reader, func(), error) {
	if r.config.InputFile == "" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(r.config.InputFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open input file: %w", err)
	}
	return f, func() { f.Close() }, nil
}

func (r *Runner) openOutput() (io.Writer, func(), error) {
	if r.config.OutputFile == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(r.config.OutputFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, func() { f.Close() }, nil
}

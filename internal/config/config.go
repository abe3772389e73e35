// Package config parses command-line arguments and the optional YAML
// defaults file for the jd tool.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/Yogerlan/json-decoder/internal/decode"
	"github.com/Yogerlan/json-decoder/internal/exit"
	"github.com/Yogerlan/json-decoder/internal/output"
)

var (
	ErrNoArguments    = errors.New("no arguments provided")
	ErrNegativeIndent = errors.New("indent must not be negative")
	ErrInvalidDepth   = errors.New("max depth must be positive")
)

// Config represents the complete configuration for the jd tool.
type Config struct {
	// Input/output
	InputFile  string // empty means stdin
	OutputFile string // empty means stdout
	Format     output.Format
	Indent     int

	// Decoding
	MaxDepth       int
	LiteralNumbers bool

	// Post-decode selection
	Query string

	Debug bool
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	if c.InputFile != "" {
		if _, err := os.Stat(c.InputFile); err != nil {
			return fmt.Errorf("input file %s not found: %w", c.InputFile, err)
		}
	}
	if c.Indent < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeIndent, c.Indent)
	}
	if c.MaxDepth <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidDepth, c.MaxDepth)
	}
	return nil
}

// fileConfig mirrors Config for the YAML defaults file. Pointer fields
// distinguish "not set" from zero values.
type fileConfig struct {
	Input          *string `yaml:"input"`
	Output         *string `yaml:"output"`
	Format         *string `yaml:"format"`
	Indent         *int    `yaml:"indent"`
	MaxDepth       *int    `yaml:"max_depth"`
	LiteralNumbers *bool   `yaml:"literal_numbers"`
	Query          *string `yaml:"query"`
}

// Parse parses command-line arguments and returns a validated Config.
// If parsing fails or help is requested, returns nil config and exit result.
// Values from the -config YAML file apply only to flags not set explicitly.
func Parse(args []string) (*Config, *exit.Result) {
	if len(args) == 0 {
		return nil, exit.Errorf("Error: %v\n\n%s", ErrNoArguments, Usage())
	}

	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)

	// Suppress the default usage and error output since we handle both.
	fs.Usage = func() {}
	fs.SetOutput(io.Discard)

	var (
		inputFile      = fs.String("input", "", "Encoded input file (default: stdin)")
		outputFile     = fs.String("output", "", "Decoded output file (default: stdout)")
		format         = fs.String("format", string(output.FormatJSON), "Output format: json or yaml")
		indent         = fs.Int("indent", output.DefaultIndent, "JSON indent width (0 for compact output)")
		maxDepth       = fs.Int("max-depth", decode.DefaultMaxDepth, "Maximum reference resolution depth")
		literalNumbers = fs.Bool("literal-numbers", false, "Treat numeric fragments as literals instead of table indices")
		queryExpr      = fs.String("query", "", "JSONPath expression selecting values from the decoded document")
		configFile     = fs.String("config", "", "Path to YAML file with default option values")
		debug          = fs.Bool("debug", false, "Enable debug output showing decode details")
	)

	if err := fs.Parse(args[1:]); err != nil {
		if err == flag.ErrHelp {
			return nil, exit.Success(Usage())
		}
		return nil, exit.Errorf("Error: failed to parse arguments: %v\n\n%s", err, Usage())
	}

	if extra := fs.Args(); len(extra) > 0 {
		return nil, exit.Errorf("Error: unexpected arguments: %v\n\n%s", extra, Usage())
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if *configFile != "" {
		defaults, err := loadConfigFile(*configFile)
		if err != nil {
			return nil, exit.Errorf("Error: failed to load config file: %v\n\n%s", err, Usage())
		}
		applyDefault(set["input"], inputFile, defaults.Input)
		applyDefault(set["output"], outputFile, defaults.Output)
		applyDefault(set["format"], format, defaults.Format)
		applyDefault(set["indent"], indent, defaults.Indent)
		applyDefault(set["max-depth"], maxDepth, defaults.MaxDepth)
		applyDefault(set["literal-numbers"], literalNumbers, defaults.LiteralNumbers)
		applyDefault(set["query"], queryExpr, defaults.Query)
	}

	outputFormat, err := output.ParseFormat(*format)
	if err != nil {
		return nil, exit.Errorf("Error: %v\n\n%s", err, Usage())
	}

	config := &Config{
		InputFile:      *inputFile,
		OutputFile:     *outputFile,
		Format:         outputFormat,
		Indent:         *indent,
		MaxDepth:       *maxDepth,
		LiteralNumbers: *literalNumbers,
		Query:          *queryExpr,
		Debug:          *debug,
	}

	if err := config.Validate(); err != nil {
		return nil, exit.Errorf("Error: %v\n\n%s", err, Usage())
	}

	return config, nil
}

// applyDefault overwrites a flag value with the file default when the flag
// was not set on the command line.
func applyDefault[T any](setExplicitly bool, dst *T, fileValue *T) {
	if !setExplicitly && fileValue != nil {
		*dst = *fileValue
	}
}

func loadConfigFile(filename string) (*fileConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var defaults fileConfig
	if err := yaml.Unmarshal(data, &defaults); err != nil {
		return nil, fmt.Errorf("invalid YAML in %s: %w", filename, err)
	}

	return &defaults, nil
}

// Usage returns a usage string for the CLI tool.
func Usage() string {
	return `jd - index-compressed JSON decoder

Usage: jd [options]

Options:
  --input FILE        Encoded input file (default: stdin)
  --output FILE       Decoded output file (default: stdout)
  --format FORMAT     Output format: json or yaml (default: json)
  --indent N          JSON indent width, 0 for compact output (default: 4)
  --max-depth N       Maximum reference resolution depth (default: 256)
  --literal-numbers   Treat numeric fragments as literals instead of table indices
  --query EXPR        JSONPath expression selecting values from the decoded document
  --config FILE       Path to YAML file with default option values
  --debug             Enable debug output showing decode details
  -h, --help          Show this help message

Examples:
  jd --input data.enc                     # Decode file to stdout
  jd < data.enc > data.json               # Decode stdin to stdout
  jd --input data.enc --format yaml       # Decode to YAML
  jd --input data.enc --query '$.users'   # Select part of the decoded document
  jd --config jd.yaml --input data.enc    # Load option defaults from a file`
}

// Package document is the entry point for decoding a whole encoded input:
// the first line holds the base fragment array, later lines hold
// P<index>:<fragment> overrides, and the decoded result is the expansion of
// table slot 0.
package document

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/Yogerlan/json-decoder/internal/decode"
	"github.com/Yogerlan/json-decoder/internal/fragment"
)

var (
	// ErrMalformedBaseArray reports a first line that is not a JSON array.
	ErrMalformedBaseArray = errors.New("malformed base array")
	// ErrMalformedPointerLine reports a line that does not match
	// P<digits>:<json>.
	ErrMalformedPointerLine = errors.New("malformed pointer line")
	// ErrMissingRootFragment reports a table without slot 0.
	ErrMissingRootFragment = errors.New("missing root fragment")
)

// maxLineSize bounds a single input line. Encoded documents are single-line
// JSON, so lines can be large.
const maxLineSize = 16 * 1024 * 1024

var pointerLineRE = regexp.MustCompile(`^P(\d+):(.*)$`)

// Parse reads the encoded input and builds the fragment table. Blank lines
// after the first are ignored; anything else must be a pointer line.
func Parse(r io.Reader) (*fragment.Table, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedBaseArray, err)
		}
		return nil, fmt.Errorf("%w: empty input", ErrMalformedBaseArray)
	}

	base, err := parseBase(sc.Text())
	if err != nil {
		return nil, err
	}

	var overrides []fragment.Override
	lineNo := 1
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		override, err := parsePointerLine(line, lineNo)
		if err != nil {
			return nil, err
		}
		overrides = append(overrides, override)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}

	return fragment.Build(base, overrides), nil
}

func parseBase(line string) ([]any, error) {
	value, err := fragment.Parse([]byte(strings.TrimSpace(line)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedBaseArray, err)
	}
	base, ok := value.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: top-level value is %T, not an array", ErrMalformedBaseArray, value)
	}
	return base, nil
}

func parsePointerLine(line string, lineNo int) (fragment.Override, error) {
	m := pointerLineRE.FindStringSubmatch(line)
	if m == nil {
		return fragment.Override{}, fmt.Errorf("%w: line %d: %q", ErrMalformedPointerLine, lineNo, line)
	}

	index, err := strconv.Atoi(m[1])
	if err != nil {
		return fragment.Override{}, fmt.Errorf("%w: line %d: index %q: %v", ErrMalformedPointerLine, lineNo, m[1], err)
	}

	frag, err := fragment.Parse([]byte(strings.TrimSpace(m[2])))
	if err != nil {
		return fragment.Override{}, fmt.Errorf("%w: line %d: %v", ErrMalformedPointerLine, lineNo, err)
	}

	return fragment.Override{Index: index, Fragment: frag}, nil
}

// DecodeTable expands slot 0 of an already built table.
func DecodeTable(table *fragment.Table, opts decode.Options) (any, error) {
	root, ok := table.Get(0)
	if !ok {
		return nil, ErrMissingRootFragment
	}
	return decode.New(table, opts).Decode(root)
}

// Decode parses the encoded input and returns the fully expanded root value.
func Decode(r io.Reader, opts decode.Options) (any, error) {
	table, err := Parse(r)
	if err != nil {
		return nil, err
	}
	return DecodeTable(table, opts)
}

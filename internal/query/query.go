// Package query selects values from a decoded document using JSONPath.
package query

import (
	"errors"
	"fmt"

	"github.com/theory/jsonpath"

	"github.com/Yogerlan/json-decoder/internal/fragment"
)

var (
	// ErrInvalidQuery is the sentinel error for malformed JSONPath expressions.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrNoMatch reports a query that selected nothing.
	ErrNoMatch = errors.New("query matched no values")
)

// Select supports standard JSONPath syntax (e.g., "$.user.name", "$..items[0]").
// The decoded tree is converted to plain Go JSON types before selection, so
// results contain map[string]any, []any and scalar values.
func Select(tree any, pathExpr string) ([]any, error) {
	if pathExpr == "" {
		return nil, fmt.Errorf("%w: expression is empty", ErrInvalidQuery)
	}

	path, err := jsonpath.Parse(pathExpr)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidQuery, pathExpr, err)
	}

	results := path.Select(fragment.Plain(tree))
	if len(results) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoMatch, pathExpr)
	}

	return results, nil
}

// SelectOne returns the first match for a JSONPath expression.
func SelectOne(tree any, pathExpr string) (any, error) {
	results, err := Select(tree, pathExpr)
	if err != nil {
		return nil, err
	}
	return results[0], nil
}

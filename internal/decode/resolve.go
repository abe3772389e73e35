package decode

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
)

var (
	// ErrIndexOutOfRange reports a resolved index outside [0, table length).
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrNonIntegerIndex reports a numeric fragment with a fractional part
	// used where the encoding requires a whole-number index.
	ErrNonIntegerIndex = errors.New("non-integer index")
)

// Resolve converts a signed index into a concrete table slot. Non-negative
// values are used directly; negative values count back from the end of the
// table, Python-slice style.
func Resolve(raw int64, tableLen int) (int, error) {
	index := raw
	if raw < 0 {
		index = int64(tableLen) + raw
	}
	if index < 0 || index >= int64(tableLen) {
		return 0, fmt.Errorf("%w: index %d, table length %d", ErrIndexOutOfRange, raw, tableLen)
	}
	return int(index), nil
}

// integerIndex extracts a whole-number index from a numeric fragment.
// Values with a fractional part fail with ErrNonIntegerIndex.
func integerIndex(n json.Number) (int64, error) {
	if i, err := strconv.ParseInt(n.String(), 10, 64); err == nil {
		return i, nil
	}

	// Exponent forms like 1e2 are still whole numbers.
	f, err := n.Float64()
	if err != nil || f != math.Trunc(f) || f < math.MinInt64 || f > math.MaxInt64 {
		return 0, fmt.Errorf("%w: %s", ErrNonIntegerIndex, n.String())
	}
	return int64(f), nil
}

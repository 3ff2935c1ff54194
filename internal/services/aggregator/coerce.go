package aggregator

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ternarybob/yangreport/internal/common"
)

// CoerceInt converts a decoded JSON counter to an integer. Integers, floats
// (truncated), booleans and base-10 integer strings are accepted.
func CoerceInt(v any) (int64, error) {
	switch x := v.(type) {
	case int:
		return int64(x), nil
	case int64:
		return x, nil
	case int32:
		return int64(x), nil
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return 0, fmt.Errorf("%v: %w", x, common.ErrMetricCoercion)
		}
		return int64(x), nil
	case bool:
		if x {
			return 1, nil
		}
		return 0, nil
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return n, nil
		}
		return 0, fmt.Errorf("%q: %w", x.String(), common.ErrMetricCoercion)
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(x), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%q: %w", x, common.ErrMetricCoercion)
		}
		return n, nil
	}
	return 0, fmt.Errorf("%T: %w", v, common.ErrMetricCoercion)
}

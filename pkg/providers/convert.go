package providers

import (
	"math"

	"github.com/go-gota/gota/series"
)

// nativeValue turns dataframe values into plain JSON-encodable Go values.
// Elements and numeric wrappers become int/float64, series and slices become
// []any, missing values and non-finite floats become nil, and anything else
// is returned unchanged.
func nativeValue(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case series.Element:
		if x.IsNA() {
			return nil
		}
		return nativeValue(x.Val())
	case series.Series:
		out := make([]any, x.Len())
		for i := range out {
			out[i] = nativeValue(x.Elem(i))
		}
		return out
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil
		}
		return x
	case float32:
		return nativeValue(float64(x))
	case int8:
		return int(x)
	case int16:
		return int(x)
	case int32:
		return int(x)
	case int64:
		return int(x)
	case []float64:
		return sliceValues(x)
	case []int:
		return sliceValues(x)
	case []string:
		return sliceValues(x)
	case []bool:
		return sliceValues(x)
	default:
		return v
	}
}

func sliceValues[T any](in []T) []any {
	out := make([]any, len(in))
	for i, v := range in {
		out[i] = nativeValue(v)
	}
	return out
}

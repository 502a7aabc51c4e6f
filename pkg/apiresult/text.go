package apiresult

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Text renders any value as display text. Scalars print as themselves and
// everything else goes through Normalize, so a structured error object can
// never reach the screen.
func Text(v any, fallback string) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return fmt.Sprint(x)
	case json.Number:
		return x.String()
	default:
		return Normalize(v, fallback)
	}
}

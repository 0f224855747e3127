package client

import (
	"fmt"
	"net/url"
	"strconv"
)

// Params are optional query filters. Only meaningful values are sent:
// booleans when true, strings when non-empty, numbers when non-zero.
type Params map[string]any

func (p Params) Encode() string {
	if len(p) == 0 {
		return ""
	}
	values := url.Values{}
	for key, value := range p {
		if s, ok := queryValue(value); ok {
			values.Set(key, s)
		}
	}
	return values.Encode()
}

func queryValue(v any) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", false
	case bool:
		return "true", x
	case string:
		return x, x != ""
	case int:
		return strconv.Itoa(x), x != 0
	case int32:
		return strconv.FormatInt(int64(x), 10), x != 0
	case int64:
		return strconv.FormatInt(x, 10), x != 0
	case uint:
		return strconv.FormatUint(uint64(x), 10), x != 0
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), x != 0
	case fmt.Stringer:
		s := x.String()
		return s, s != ""
	}
	s := fmt.Sprint(v)
	return s, s != ""
}

package ids

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ID is satisfied by every identifier type that carries an origin tag,
// i.e. types.VertexID and types.EdgeID
type ID interface {
	~string
}

const (
	StringPrefix string = "(str)"
	NumberPrefix string = "(num)"
)

// New encodes a raw identifier as read from the wire. Integral numbers get
// the numeric tag, everything else is treated as a string identifier.
func New[T ID](raw any) T {
	switch v := raw.(type) {
	case T:
		return v
	case string:
		return FromString[T](v)
	case int:
		return FromNumber[T](int64(v))
	case int32:
		return FromNumber[T](int64(v))
	case int64:
		return FromNumber[T](v)
	case float64:
		if v == math.Trunc(v) && v >= math.MinInt64 && v < math.MaxInt64 {
			return FromNumber[T](int64(v))
		}
		return FromString[T](strconv.FormatFloat(v, 'f', -1, 64))
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return FromNumber[T](n)
		}
		if isInteger(v.String()) {
			// keep the exact digits of integers that do not fit in an int64
			return T(NumberPrefix + v.String())
		}
		return FromString[T](v.String())
	default:
		return FromString[T](fmt.Sprintf("%v", v))
	}
}

func FromString[T ID](raw string) T {
	return T(StringPrefix + raw)
}

func FromNumber[T ID](raw int64) T {
	return T(NumberPrefix + strconv.FormatInt(raw, 10))
}

// Decode strips the origin tag and returns a string, an int64 or, for numeric
// identifiers beyond the int64 range, a json.Number with the exact digits.
// Identifiers without a recognized tag are returned unchanged as strings.
func Decode[T ID](id T) any {
	s := string(id)

	if rest, ok := strings.CutPrefix(s, NumberPrefix); ok {
		n, err := strconv.ParseInt(rest, 10, 64)
		if err != nil {
			if isInteger(rest) {
				return json.Number(rest)
			}
			return rest
		}
		return n
	}

	if rest, ok := strings.CutPrefix(s, StringPrefix); ok {
		return rest
	}

	return s
}

// IsNumeric reports if the identifier originated from a numeric value in the database
func IsNumeric[T ID](id T) bool {
	if !strings.HasPrefix(string(id), NumberPrefix) {
		return false
	}
	switch Decode(id).(type) {
	case int64, json.Number:
		return true
	default:
		return false
	}
}

// Raw returns the decoded identifier formatted as a string
func Raw[T ID](id T) string {
	switch v := Decode(id).(type) {
	case int64:
		return strconv.FormatInt(v, 10)
	case json.Number:
		return v.String()
	case string:
		return v
	default:
		return string(id)
	}
}

func isInteger(s string) bool {
	s = strings.TrimPrefix(s, "-")
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

package query

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/diwise/graph-explorer/pkg/graph/types"
)

// Syntax renders the dialect specific parts of a single attribute predicate
type Syntax interface {
	StringLiteral(value string) string
	// NumberLiteral receives a plain decimal, integers with all their digits
	NumberLiteral(value string) string
	DateLiteral(value string) string

	Compare(attribute string, op types.Operator, literal string) string
	Contains(attribute string, value string) string
}

// Criterion renders a single criterion, dispatching on data type and then on operator.
// Unknown operators are treated as eq.
func Criterion(s Syntax, c types.Criterion) string {
	switch c.DataType {
	case types.Number:
		return s.Compare(c.Name, comparisonOperator(c.Operator), s.NumberLiteral(numberText(c.Value)))
	case types.Date:
		return s.Compare(c.Name, comparisonOperator(c.Operator), s.DateLiteral(toDateString(c.Value)))
	default:
		value := toString(c.Value)

		if normalizeOperator(c.Operator) == types.OperatorLike {
			return s.Contains(c.Name, value)
		}

		if n, ok := parseFiniteNumber(value); ok {
			return s.Compare(c.Name, normalizeOperator(c.Operator), s.NumberLiteral(n))
		}

		return s.Compare(c.Name, normalizeOperator(c.Operator), s.StringLiteral(value))
	}
}

// Criteria renders every criterion in order
func Criteria(s Syntax, criteria []types.Criterion) []string {
	rendered := make([]string, 0, len(criteria))
	for _, c := range criteria {
		rendered = append(rendered, Criterion(s, c))
	}
	return rendered
}

// FormatNumber renders a float without exponent and without trailing zeros
func FormatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

func normalizeOperator(op types.Operator) types.Operator {
	switch types.Operator(strings.ToLower(string(op))) {
	case types.OperatorNeq:
		return types.OperatorNeq
	case types.OperatorGt:
		return types.OperatorGt
	case types.OperatorGte:
		return types.OperatorGte
	case types.OperatorLt:
		return types.OperatorLt
	case types.OperatorLte:
		return types.OperatorLte
	case types.OperatorLike:
		return types.OperatorLike
	default:
		return types.OperatorEq
	}
}

// numbers and dates have no substring semantics
func comparisonOperator(op types.Operator) types.Operator {
	op = normalizeOperator(op)
	if op == types.OperatorLike {
		return types.OperatorEq
	}
	return op
}

func parseFiniteNumber(value string) (string, bool) {
	if isIntegerText(value) {
		return value, true
	}

	if value == "" {
		return "", false
	}

	n, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return "", false
	}

	return FormatNumber(n), true
}

// numberText renders a value as a decimal literal. Integers keep every digit,
// anything else is converted through float64.
func numberText(value any) string {
	switch v := value.(type) {
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case json.Number:
		if isIntegerText(v.String()) {
			return v.String()
		}
	case string:
		if s := strings.TrimSpace(v); isIntegerText(s) {
			return s
		}
	}

	return FormatNumber(toNumber(value))
}

// isIntegerText accepts an optional minus sign followed by digits without a leading zero
func isIntegerText(s string) bool {
	s = strings.TrimPrefix(s, "-")
	if s == "" || (len(s) > 1 && s[0] == '0') {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func toNumber(value any) float64 {
	var n float64

	switch v := value.(type) {
	case float64:
		n = v
	case float32:
		n = float64(v)
	case int:
		n = float64(v)
	case int64:
		n = float64(v)
	case json.Number:
		n, _ = v.Float64()
	case string:
		n, _ = strconv.ParseFloat(strings.TrimSpace(v), 64)
	default:
		return 0
	}

	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}

	return n
}

func toDateString(value any) string {
	if t, ok := value.(time.Time); ok {
		return t.UTC().Format(time.RFC3339)
	}
	return toString(value)
}

func toString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return FormatNumber(v)
	case json.Number:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

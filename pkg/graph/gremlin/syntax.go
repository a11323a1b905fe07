package gremlin

import (
	"fmt"
	"strings"

	"github.com/diwise/graph-explorer/pkg/graph/ids"
	"github.com/diwise/graph-explorer/pkg/graph/query"
	"github.com/diwise/graph-explorer/pkg/graph/types"
)

// NumericIDSuffix marks a numeric id literal as a long
const NumericIDSuffix string = "L"

type syntax struct{}

func (syntax) StringLiteral(value string) string { return query.Quote(value) }
func (syntax) NumberLiteral(value string) string { return value }
func (syntax) DateLiteral(value string) string {
	return fmt.Sprintf("datetime(%s)", query.Quote(value))
}

func (syntax) Compare(attribute string, op types.Operator, literal string) string {
	return fmt.Sprintf("has(%s,%s(%s))", query.Quote(attribute), predicate(op), literal)
}

func (syntax) Contains(attribute string, value string) string {
	return fmt.Sprintf("has(%s,containing(%s))", query.Quote(attribute), query.Quote(value))
}

func predicate(op types.Operator) string {
	switch op {
	case types.OperatorNeq:
		return "neq"
	case types.OperatorGt:
		return "gt"
	case types.OperatorGte:
		return "gte"
	case types.OperatorLt:
		return "lt"
	case types.OperatorLte:
		return "lte"
	default:
		return "eq"
	}
}

func idLiteral[T ids.ID](id T) string {
	return query.IDLiteral(id, NumericIDSuffix)
}

func idLiterals[T ids.ID](identifiers []T) string {
	return query.IDLiterals(identifiers, NumericIDSuffix)
}

// hasLabel renders a label filter step, or nothing when no labels are given
func hasLabel(labels []string) string {
	labels = query.SplitTypes(labels)
	if len(labels) == 0 {
		return ""
	}
	return fmt.Sprintf(".hasLabel(%s)", query.QuoteAll(labels))
}

// conjunction renders all predicates as a single step, or nothing when there are none
func conjunction(predicates []string) string {
	switch len(predicates) {
	case 0:
		return ""
	case 1:
		return "." + predicates[0]
	default:
		return fmt.Sprintf(".and(%s)", strings.Join(predicates, ","))
	}
}

func disjunction(predicates []string) string {
	switch len(predicates) {
	case 0:
		return ""
	case 1:
		return "." + predicates[0]
	default:
		return fmt.Sprintf(".or(%s)", strings.Join(predicates, ","))
	}
}

func window(p types.Paging) string {
	start, end, ok := query.Window(p)
	if !ok {
		return ""
	}
	return fmt.Sprintf(".range(%d,%d)", start, end)
}

package opencypher

import (
	"fmt"
	"strings"

	"github.com/diwise/graph-explorer/pkg/graph/ids"
	"github.com/diwise/graph-explorer/pkg/graph/query"
	"github.com/diwise/graph-explorer/pkg/graph/types"
)

// syntax renders predicates on the properties of a single query variable
type syntax struct {
	variable string
}

func (s syntax) StringLiteral(value string) string { return query.Quote(value) }
func (s syntax) NumberLiteral(value string) string { return value }
func (s syntax) DateLiteral(value string) string {
	return fmt.Sprintf("datetime(%s)", query.Quote(value))
}

func (s syntax) Compare(attribute string, op types.Operator, literal string) string {
	return fmt.Sprintf("%s %s %s", s.property(attribute), comparison(op), literal)
}

func (s syntax) Contains(attribute string, value string) string {
	return fmt.Sprintf("%s CONTAINS %s", s.property(attribute), query.Quote(value))
}

func (s syntax) property(attribute string) string {
	return s.variable + "." + identifier(attribute)
}

func comparison(op types.Operator) string {
	switch op {
	case types.OperatorNeq:
		return "<>"
	case types.OperatorGt:
		return ">"
	case types.OperatorGte:
		return ">="
	case types.OperatorLt:
		return "<"
	case types.OperatorLte:
		return "<="
	default:
		return "="
	}
}

// identifier quotes a label, type or property name with backticks
func identifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

func idLiterals[T ids.ID](identifiers []T) string {
	return "[" + query.IDLiterals(identifiers, "") + "]"
}

func idLiteral[T ids.ID](id T) string {
	return query.IDLiteral(id, "")
}

// labelPredicate matches a variable having any of the given labels
func labelPredicate(variable string, labels []string) string {
	labels = query.SplitTypes(labels)
	if len(labels) == 0 {
		return ""
	}

	alternatives := make([]string, 0, len(labels))
	for _, l := range labels {
		alternatives = append(alternatives, variable+":"+identifier(l))
	}

	return "(" + strings.Join(alternatives, " OR ") + ")"
}

// edgeTypePredicate restricts a relationship variable to the given types
func edgeTypePredicate(variable string, edgeTypes []string) string {
	edgeTypes = query.Distinct(edgeTypes)
	if len(edgeTypes) == 0 {
		return ""
	}
	return fmt.Sprintf("type(%s) IN [%s]", variable, query.QuoteAll(edgeTypes))
}

// where joins the non empty predicates with AND, or returns nothing when all are empty
func where(predicates ...string) string {
	kept := make([]string, 0, len(predicates))
	for _, p := range predicates {
		if p != "" {
			kept = append(kept, p)
		}
	}

	if len(kept) == 0 {
		return ""
	}

	return " WHERE " + strings.Join(kept, " AND ")
}

func anyOf(predicates []string) string {
	switch len(predicates) {
	case 0:
		return ""
	case 1:
		return predicates[0]
	default:
		return "(" + strings.Join(predicates, " OR ") + ")"
	}
}

func window(p types.Paging) string {
	start, end, ok := query.Window(p)
	if !ok {
		return ""
	}
	return fmt.Sprintf(" SKIP %d LIMIT %d", start, end-start)
}

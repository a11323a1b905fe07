package gremlin

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/diwise/graph-explorer/pkg/graph/ids"
	"github.com/diwise/graph-explorer/pkg/graph/query"
	"github.com/diwise/graph-explorer/pkg/graph/types"
)

// OneHop returns the neighbors of a vertex together with the edges that connect them
// to it. Each result row is a map with the neighbor under "vertex" and its edges under "edges".
//
//	g.V("124").as("start").both().hasLabel("airport").and(has(...),has(...)).dedup().range(0,10).as("neighbor")
//	  .project("vertex","edges").by().by(select("start").bothE().where(otherV().as("neighbor")).dedup().fold())
func OneHop(req types.NeighborsRequest) string {
	edgeTypes := query.QuoteAll(query.Distinct(req.EdgeTypes))

	var b strings.Builder
	fmt.Fprintf(&b, "g.V(%s).as(\"start\")", idLiteral(req.VertexID))
	fmt.Fprintf(&b, ".both(%s)", edgeTypes)
	b.WriteString(hasLabel(req.VertexTypes))
	b.WriteString(conjunction(query.Criteria(syntax{}, req.FilterCriteria)))
	b.WriteString(".dedup()")
	b.WriteString(window(req.Paging))
	b.WriteString(".as(\"neighbor\")")
	b.WriteString(".project(\"vertex\",\"edges\").by()")
	fmt.Fprintf(&b, ".by(select(\"start\").bothE(%s).where(otherV().as(\"neighbor\")).dedup().fold())", edgeTypes)

	return b.String()
}

// NeighborCounts groups the distinct neighbors of each vertex by their raw label
//
//	g.V(12L).group().by(id).by(both().dedup().groupCount().by(label))
func NeighborCounts(vertexIDs []types.VertexID) string {
	return fmt.Sprintf("g.V(%s).group().by(id).by(both().dedup().groupCount().by(label))", idLiterals(vertexIDs))
}

// KeywordSearch matches the search term against the requested attributes. Attributes
// are combined with or(), the id sentinel matches the vertex id. Without attributes the
// term is matched against every property value, and without a term nothing is filtered.
func KeywordSearch(req types.KeywordSearchRequest) string {
	var b strings.Builder
	b.WriteString("g.V()")
	b.WriteString(hasLabel(req.VertexTypes))

	if req.SearchTerm != "" {
		attributes := query.Distinct(req.Attributes)
		if len(attributes) == 0 {
			b.WriteString(anyPropertyMatch(req.SearchTerm, req.ExactMatch))
		} else {
			predicates := make([]string, 0, len(attributes))
			for _, attr := range attributes {
				predicates = append(predicates, keywordPredicate(attr, req))
			}
			b.WriteString(disjunction(predicates))
		}
	}

	b.WriteString(window(req.Paging))
	return b.String()
}

func keywordPredicate(attribute string, req types.KeywordSearchRequest) string {
	term := req.SearchTerm

	if attribute == types.SearchByID {
		if req.ExactMatch {
			return fmt.Sprintf("hasId(%s)", idCandidates(term))
		}
		attribute = "T.id"
	} else {
		if req.ExactMatch {
			return fmt.Sprintf("has(%s,%s)", query.Quote(attribute), query.Quote(term))
		}
		attribute = query.Quote(attribute)
	}

	if req.CaseInsensitive {
		return fmt.Sprintf("has(%s,regex(%s))", attribute, query.Quote("(?i).*"+query.EscapeRegex(term)+".*"))
	}

	return fmt.Sprintf("has(%s,containing(%s))", attribute, query.Quote(term))
}

// idCandidates renders a term that looks like an integer both as a string and as a numeric id
func idCandidates(term string) string {
	candidates := []string{query.Quote(term)}
	if n, err := strconv.ParseInt(term, 10, 64); err == nil {
		candidates = append(candidates, idLiteral(ids.FromNumber[types.VertexID](n)))
	}
	return strings.Join(candidates, ",")
}

func anyPropertyMatch(term string, exact bool) string {
	if exact {
		return fmt.Sprintf(".where(properties().hasValue(%s))", query.Quote(term))
	}
	return fmt.Sprintf(".where(properties().hasValue(containing(%s)))", query.Quote(term))
}

// FilterAndSort filters vertices by type and criteria and orders them by the requested attributes
//
//	g.V().hasLabel("airport").has("country",eq("SE")).order().by("code",asc).range(0,10)
func FilterAndSort(req types.FilterAndSortRequest) string {
	var b strings.Builder
	b.WriteString("g.V()")
	b.WriteString(hasLabel(req.VertexTypes))
	b.WriteString(conjunction(query.Criteria(syntax{}, req.FilterCriteria)))

	if len(req.Sorting) > 0 {
		b.WriteString(".order()")
		for _, s := range req.Sorting {
			direction := "asc"
			if strings.EqualFold(string(s.Direction), string(types.Descending)) {
				direction = "desc"
			}
			fmt.Fprintf(&b, ".by(%s,%s)", query.Quote(s.Attribute), direction)
		}
	}

	b.WriteString(window(req.Paging))
	return b.String()
}

// VertexLabels counts vertices per raw label
func VertexLabels() string {
	return "g.V().groupCount().by(label)"
}

// EdgeLabels counts edges per label
func EdgeLabels() string {
	return "g.E().groupCount().by(label)"
}

// VertexSamples fetches one vertex of every given raw label. A multi label is matched
// by requiring each of its parts.
func VertexSamples(labels []string) string {
	traversals := make([]string, 0, len(labels))
	for _, label := range labels {
		var b strings.Builder
		b.WriteString("V()")
		for _, part := range types.SplitLabels(label) {
			fmt.Fprintf(&b, ".hasLabel(%s)", query.Quote(part))
		}
		b.WriteString(".limit(1)")
		traversals = append(traversals, b.String())
	}
	return fmt.Sprintf("g.inject(0).union(%s)", strings.Join(traversals, ","))
}

// EdgeSamples fetches one edge of every given label
func EdgeSamples(labels []string) string {
	traversals := make([]string, 0, len(labels))
	for _, label := range labels {
		traversals = append(traversals, fmt.Sprintf("E().hasLabel(%s).limit(1)", query.Quote(label)))
	}
	return fmt.Sprintf("g.inject(0).union(%s)", strings.Join(traversals, ","))
}

// EdgeConnections samples edges of a single type and returns the distinct
// source and target labels they connect
func EdgeConnections(edgeType string, sampleSize int) string {
	return fmt.Sprintf(
		"g.E().hasLabel(%s).limit(%d).project(\"source\",\"target\").by(outV().label()).by(inV().label()).dedup()",
		query.Quote(edgeType), max(sampleSize, 1),
	)
}

func VertexDetails(vertexIDs []types.VertexID) string {
	return fmt.Sprintf("g.V(%s)", idLiterals(vertexIDs))
}

func EdgeDetails(edgeIDs []types.EdgeID) string {
	return fmt.Sprintf("g.E(%s)", idLiterals(edgeIDs))
}

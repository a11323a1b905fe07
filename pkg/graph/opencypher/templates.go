package opencypher

import (
	"fmt"
	"strings"

	"github.com/diwise/graph-explorer/pkg/graph/query"
	"github.com/diwise/graph-explorer/pkg/graph/types"
)

// edgeWithEndpoints returns an edge together with the labels of its endpoints, which
// the relationship record itself does not carry
func edgeWithEndpoints(variable string) string {
	return fmt.Sprintf("{edge: %[1]s, sourceTypes: labels(startNode(%[1]s)), targetTypes: labels(endNode(%[1]s))}", variable)
}

// OneHop returns one row per kept neighbor with the neighbor under "vertex" and the
// edges connecting it to the source vertex under "edges"
func OneHop(req types.NeighborsRequest) string {
	neighbor := syntax{variable: "n"}
	edgeTypes := edgeTypePredicate("e", req.EdgeTypes)

	predicates := []string{
		fmt.Sprintf("ID(v) = %s", idLiteral(req.VertexID)),
		edgeTypes,
		labelPredicate("n", req.VertexTypes),
	}
	predicates = append(predicates, query.Criteria(neighbor, req.FilterCriteria)...)

	var b strings.Builder
	b.WriteString("MATCH (v)-[e]-(n)")
	b.WriteString(where(predicates...))
	b.WriteString(" WITH DISTINCT v, n ORDER BY ID(n)")
	b.WriteString(window(req.Paging))
	b.WriteString(" MATCH (v)-[e]-(n)")
	b.WriteString(where(edgeTypes))
	fmt.Fprintf(&b, " RETURN n AS vertex, collect(DISTINCT %s) AS edges", edgeWithEndpoints("e"))

	return b.String()
}

// NeighborCounts returns one row per vertex and neighbor label set
func NeighborCounts(vertexIDs []types.VertexID) string {
	return fmt.Sprintf(
		"MATCH (v)-[]-(n) WHERE ID(v) IN %s WITH DISTINCT v, n RETURN ID(v) AS vertexId, labels(n) AS labels, count(n) AS count",
		idLiterals(vertexIDs),
	)
}

func KeywordSearch(req types.KeywordSearchRequest) string {
	v := syntax{variable: "v"}

	var match string
	if req.SearchTerm != "" {
		attributes := query.Distinct(req.Attributes)
		predicates := make([]string, 0, len(attributes))
		for _, attr := range attributes {
			predicates = append(predicates, keywordPredicate(v, attr, req))
		}
		if len(attributes) == 0 {
			predicates = append(predicates, anyPropertyMatch(req))
		}
		match = anyOf(predicates)
	}

	var b strings.Builder
	b.WriteString("MATCH (v)")
	b.WriteString(where(labelPredicate("v", req.VertexTypes), match))
	b.WriteString(" RETURN v")
	b.WriteString(window(req.Paging))

	return b.String()
}

func keywordPredicate(v syntax, attribute string, req types.KeywordSearchRequest) string {
	subject := v.property(attribute)
	if attribute == types.SearchByID {
		subject = "toString(ID(v))"
	}
	return textMatch(subject, req)
}

func anyPropertyMatch(req types.KeywordSearchRequest) string {
	return fmt.Sprintf("any(k IN keys(v) WHERE %s)", textMatch("toString(v[k])", req))
}

func textMatch(subject string, req types.KeywordSearchRequest) string {
	switch {
	case req.ExactMatch:
		return fmt.Sprintf("%s = %s", subject, query.Quote(req.SearchTerm))
	case req.CaseInsensitive:
		return fmt.Sprintf("%s =~ %s", subject, query.Quote("(?i).*"+query.EscapeRegex(req.SearchTerm)+".*"))
	default:
		return fmt.Sprintf("%s CONTAINS %s", subject, query.Quote(req.SearchTerm))
	}
}

func FilterAndSort(req types.FilterAndSortRequest) string {
	v := syntax{variable: "v"}

	predicates := []string{labelPredicate("v", req.VertexTypes)}
	predicates = append(predicates, query.Criteria(v, req.FilterCriteria)...)

	var b strings.Builder
	b.WriteString("MATCH (v)")
	b.WriteString(where(predicates...))
	b.WriteString(" RETURN v")

	if len(req.Sorting) > 0 {
		orderBy := make([]string, 0, len(req.Sorting))
		for _, s := range req.Sorting {
			direction := "ASC"
			if strings.EqualFold(string(s.Direction), string(types.Descending)) {
				direction = "DESC"
			}
			orderBy = append(orderBy, v.property(s.Attribute)+" "+direction)
		}
		b.WriteString(" ORDER BY " + strings.Join(orderBy, ", "))
	}

	b.WriteString(window(req.Paging))
	return b.String()
}

// VertexLabels counts vertices per label set
func VertexLabels() string {
	return "MATCH (v) RETURN labels(v) AS labels, count(v) AS count"
}

// EdgeLabels counts edges per type
func EdgeLabels() string {
	return "MATCH ()-[e]->() RETURN type(e) AS label, count(e) AS count"
}

// VertexSamples fetches one vertex for every given raw label, requiring every part
// of a multi label
func VertexSamples(labels []string) string {
	parts := make([]string, 0, len(labels))
	for _, label := range labels {
		var pattern strings.Builder
		pattern.WriteString("v")
		for _, l := range types.SplitLabels(label) {
			pattern.WriteString(":" + identifier(l))
		}
		parts = append(parts, fmt.Sprintf("MATCH (%s) WITH v LIMIT 1 RETURN v", pattern.String()))
	}
	return strings.Join(parts, " UNION ALL ")
}

func EdgeSamples(labels []string) string {
	parts := make([]string, 0, len(labels))
	for _, label := range labels {
		parts = append(parts, fmt.Sprintf("MATCH ()-[e:%s]->() WITH e LIMIT 1 RETURN e", identifier(label)))
	}
	return strings.Join(parts, " UNION ALL ")
}

// EdgeConnections samples edges of a single type and returns the distinct label sets of
// their endpoints
func EdgeConnections(edgeType string, sampleSize int) string {
	return fmt.Sprintf(
		"MATCH (s)-[e:%s]->(t) WITH s, t LIMIT %d RETURN DISTINCT labels(s) AS sourceTypes, labels(t) AS targetTypes",
		identifier(edgeType), max(sampleSize, 1),
	)
}

func VertexDetails(vertexIDs []types.VertexID) string {
	return fmt.Sprintf("MATCH (v) WHERE ID(v) IN %s RETURN v", idLiterals(vertexIDs))
}

func EdgeDetails(edgeIDs []types.EdgeID) string {
	return fmt.Sprintf(
		"MATCH ()-[e]->() WHERE ID(e) IN %s RETURN e AS edge, labels(startNode(e)) AS sourceTypes, labels(endNode(e)) AS targetTypes",
		idLiterals(edgeIDs),
	)
}

package values

import (
	"github.com/diwise/graph-explorer/pkg/graph"
	"github.com/diwise/graph-explorer/pkg/graph/ids"
	"github.com/diwise/graph-explorer/pkg/graph/types"
)

// Map converts decoded values into a normalized result. Vertices and edges are
// deduplicated by id with the last occurrence winning, scalars are kept as is.
func Map(vals ...Value) graph.Result {
	result := graph.NewResult()

	vertexIndex := map[types.VertexID]int{}
	edgeIndex := map[types.EdgeID]int{}

	for _, v := range Flatten(vals...) {
		switch v.kind {
		case KindVertex:
			vertex := MapVertex(*v.vertex)
			if idx, ok := vertexIndex[vertex.ID]; ok {
				result.Vertices[idx] = vertex
				continue
			}
			vertexIndex[vertex.ID] = len(result.Vertices)
			result.Vertices = append(result.Vertices, vertex)
		case KindEdge:
			edge := MapEdge(*v.edge)
			if idx, ok := edgeIndex[edge.ID]; ok {
				result.Edges[idx] = edge
				continue
			}
			edgeIndex[edge.ID] = len(result.Edges)
			result.Edges = append(result.Edges, edge)
		case KindScalar:
			result.Scalars = append(result.Scalars, v.scalar)
		}
	}

	return result
}

func MapVertex(raw RawVertex) types.Vertex {
	labels := types.SplitLabels(raw.Labels...)

	vertex := types.Vertex{
		ID:         ids.New[types.VertexID](raw.ID),
		Types:      labels,
		Attributes: mapAttributes(raw.Properties),
		IsFragment: raw.Properties == nil,
	}

	if len(labels) > 0 {
		vertex.Type = labels[0]
	}

	return vertex
}

func MapEdge(raw RawEdge) types.Edge {
	edge := types.Edge{
		ID:          ids.New[types.EdgeID](raw.ID),
		Type:        raw.Label,
		SourceID:    ids.New[types.VertexID](raw.SourceID),
		SourceTypes: types.SplitLabels(raw.SourceLabels...),
		TargetID:    ids.New[types.VertexID](raw.TargetID),
		TargetTypes: types.SplitLabels(raw.TargetLabels...),
		Attributes:  mapAttributes(raw.Properties),
		IsFragment:  raw.Properties == nil,
	}

	return edge
}

func mapAttributes(properties map[string]any) types.Attributes {
	attributes := make(types.Attributes, len(properties))
	for k, v := range properties {
		if v == nil {
			v = types.Missing
		}
		attributes[k] = v
	}
	return attributes
}

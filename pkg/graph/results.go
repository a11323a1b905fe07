package graph

import (
	"maps"
	"slices"

	"github.com/diwise/graph-explorer/pkg/graph/types"
)

// Result is the normalized outcome of a query. Vertices and edges are unique by id,
// scalars are kept in wire order including repeated values.
type Result struct {
	Vertices []types.Vertex `json:"vertices"`
	Edges    []types.Edge   `json:"edges"`
	Scalars  []any          `json:"scalars,omitempty"`
}

func NewResult() Result {
	return Result{
		Vertices: []types.Vertex{},
		Edges:    []types.Edge{},
	}
}

type NeighborCounts struct {
	VertexID   types.VertexID   `json:"vertexId"`
	TotalCount int64            `json:"totalCount"`
	Counts     map[string]int64 `json:"counts"`
}

type NeighborCountsResponse struct {
	Counts []NeighborCounts `json:"counts"`
}

type AttributeSchema struct {
	Name     string              `json:"name"`
	DataType types.AttributeType `json:"dataType"`
}

type VertexTypeSchema struct {
	Type       string            `json:"type"`
	Total      int64             `json:"total"`
	Attributes []AttributeSchema `json:"attributes"`
}

type EdgeTypeSchema struct {
	Type       string            `json:"type"`
	Total      int64             `json:"total"`
	Attributes []AttributeSchema `json:"attributes"`
}

// Schema is optimistic: attributes are derived from a single sample per type
type Schema struct {
	Vertices   []VertexTypeSchema `json:"vertices"`
	Edges      []EdgeTypeSchema   `json:"edges"`
	TotalCount int64              `json:"totalVertices"`
	EdgeCount  int64              `json:"totalEdges"`
}

type EdgeConnection struct {
	EdgeType   string `json:"edgeType"`
	SourceType string `json:"sourceVertexType"`
	TargetType string `json:"targetVertexType"`
}

// LabelCount is a single bucket of a count grouped by raw wire label
type LabelCount struct {
	Label string
	Count int64
}

// NewNeighborCounts adds the count of every raw label bucket to each of the labels it
// splits into. The total is the sum of the raw buckets so that a neighbor with several
// labels is only counted once.
func NewNeighborCounts(vertexID types.VertexID, buckets []LabelCount) NeighborCounts {
	nc := NeighborCounts{
		VertexID: vertexID,
		Counts:   map[string]int64{},
	}

	for _, bucket := range buckets {
		nc.TotalCount += bucket.Count
		for _, label := range types.SplitLabels(bucket.Label) {
			nc.Counts[label] += bucket.Count
		}
	}

	return nc
}

// AttributesOf infers the attribute schema of a sampled entity, sorted by name
func AttributesOf(attributes types.Attributes) []AttributeSchema {
	schema := make([]AttributeSchema, 0, len(attributes))
	for _, name := range slices.Sorted(maps.Keys(attributes)) {
		schema = append(schema, AttributeSchema{
			Name:     name,
			DataType: types.InferType(attributes[name]),
		})
	}
	return schema
}

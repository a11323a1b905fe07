package graph

import (
	"context"
	"slices"
	"strings"

	"github.com/diwise/graph-explorer/pkg/graph/ids"
	"github.com/diwise/graph-explorer/pkg/graph/query"
	"github.com/diwise/graph-explorer/pkg/graph/types"
)

const (
	// SchemaBatchSize is the max number of labels sampled by a single query
	SchemaBatchSize int = 25
	// DefaultEdgeConnectionSampleSize is the number of edges sampled per edge type
	DefaultEdgeConnectionSampleSize int = 50
	// MaxConcurrentQueries limits the queries a connector runs in parallel for one request
	MaxConcurrentQueries int = 4
)

// SampleFunc fetches one entity for each label in a batch
type SampleFunc func(ctx context.Context, labels []string) (Result, error)

// SampleSchema samples every counted label in batches and assembles the schema
func SampleSchema(ctx context.Context, vertexCounts, edgeCounts []LabelCount, sampleVertices, sampleEdges SampleFunc) (Schema, error) {
	vertexResults, err := FanOut(ctx, query.Batch(LabelsOf(vertexCounts), SchemaBatchSize), MaxConcurrentQueries, sampleVertices)
	if err != nil {
		return NewSchema(nil, nil, nil, nil), err
	}

	edgeResults, err := FanOut(ctx, query.Batch(LabelsOf(edgeCounts), SchemaBatchSize), MaxConcurrentQueries, sampleEdges)
	if err != nil {
		return NewSchema(nil, nil, nil, nil), err
	}

	vertexSamples := map[string]types.Attributes{}
	for _, r := range vertexResults {
		for _, v := range r.Vertices {
			vertexSamples[LabelKey(v.Types...)] = v.Attributes
		}
	}

	edgeSamples := map[string]types.Attributes{}
	for _, r := range edgeResults {
		for _, e := range r.Edges {
			edgeSamples[e.Type] = e.Attributes
		}
	}

	return NewSchema(vertexCounts, edgeCounts, vertexSamples, edgeSamples), nil
}

// NewSchema combines label counts with sampled attributes. Vertex samples are keyed
// by LabelKey so that the order of the parts of a multi label does not matter.
func NewSchema(vertexCounts, edgeCounts []LabelCount, vertexSamples, edgeSamples map[string]types.Attributes) Schema {
	schema := Schema{
		Vertices: make([]VertexTypeSchema, 0, len(vertexCounts)),
		Edges:    make([]EdgeTypeSchema, 0, len(edgeCounts)),
	}

	for _, vc := range vertexCounts {
		schema.TotalCount += vc.Count
		schema.Vertices = append(schema.Vertices, VertexTypeSchema{
			Type:       vc.Label,
			Total:      vc.Count,
			Attributes: AttributesOf(vertexSamples[LabelKey(vc.Label)]),
		})
	}

	for _, ec := range edgeCounts {
		schema.EdgeCount += ec.Count
		schema.Edges = append(schema.Edges, EdgeTypeSchema{
			Type:       ec.Label,
			Total:      ec.Count,
			Attributes: AttributesOf(edgeSamples[ec.Label]),
		})
	}

	return schema
}

// CollectEdgeConnections runs sample once per distinct edge type and merges the
// connections it returns without duplicates.
func CollectEdgeConnections(ctx context.Context, edgeTypes []string, sample func(ctx context.Context, edgeType string) ([]EdgeConnection, error)) ([]EdgeConnection, error) {
	edgeTypes = query.Distinct(edgeTypes)
	if len(edgeTypes) == 0 {
		return []EdgeConnection{}, nil
	}

	perType, err := FanOut(ctx, edgeTypes, MaxConcurrentQueries, sample)
	if err != nil {
		return nil, err
	}

	return DistinctConnections(slices.Concat(perType...)), nil
}

// ConnectionsOf pairs every source label with every target label of a sampled edge
func ConnectionsOf(edgeType string, sourceTypes, targetTypes []string) []EdgeConnection {
	connections := []EdgeConnection{}
	for _, s := range types.SplitLabels(sourceTypes...) {
		for _, t := range types.SplitLabels(targetTypes...) {
			connections = append(connections, EdgeConnection{EdgeType: edgeType, SourceType: s, TargetType: t})
		}
	}
	return connections
}

// DistinctConnections keeps the first occurrence of every connection
func DistinctConnections(connections []EdgeConnection) []EdgeConnection {
	seen := map[EdgeConnection]struct{}{}
	result := []EdgeConnection{}
	for _, ec := range connections {
		if _, ok := seen[ec]; ok {
			continue
		}
		seen[ec] = struct{}{}
		result = append(result, ec)
	}
	return result
}

// Details removes duplicate ids and only calls fetch when there is something to fetch
func Details[ID ids.ID, E any](ctx context.Context, identifiers []ID, fetch func(context.Context, []ID) ([]E, error)) ([]E, error) {
	identifiers = query.DistinctIDs(identifiers)
	if len(identifiers) == 0 {
		return []E{}, nil
	}

	return fetch(ctx, identifiers)
}

func LabelsOf(counts []LabelCount) []string {
	labels := make([]string, 0, len(counts))
	for _, c := range counts {
		labels = append(labels, c.Label)
	}
	return labels
}

// LabelKey identifies a multi label regardless of the order of its parts
func LabelKey(labels ...string) string {
	parts := query.SplitTypes(labels)
	slices.Sort(parts)
	return strings.Join(parts, types.LabelSeparator)
}

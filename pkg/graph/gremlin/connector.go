package gremlin

import (
	"context"

	"github.com/diwise/graph-explorer/pkg/graph"
	"github.com/diwise/graph-explorer/pkg/graph/ids"
	"github.com/diwise/graph-explorer/pkg/graph/query"
	"github.com/diwise/graph-explorer/pkg/graph/types"
	"github.com/diwise/graph-explorer/pkg/graph/values"
)

type Connector struct {
	transport  graph.Transport
	sampleSize int
}

func NewConnector(transport graph.Transport, edgeConnectionSampleSize int) *Connector {
	if edgeConnectionSampleSize <= 0 {
		edgeConnectionSampleSize = graph.DefaultEdgeConnectionSampleSize
	}

	return &Connector{
		transport:  transport,
		sampleSize: edgeConnectionSampleSize,
	}
}

func (c *Connector) Dialect() graph.Dialect {
	return graph.Gremlin
}

func (c *Connector) FetchNeighbors(ctx context.Context, req types.NeighborsRequest) (graph.Result, error) {
	if req.VertexID == "" {
		return graph.NewResult(), nil
	}

	result, err := c.fetch(ctx, OneHop(req))
	if err != nil {
		return graph.Result{}, err
	}

	// the projection keys are not part of the result
	result.Scalars = nil
	return result, nil
}

func (c *Connector) NeighborCounts(ctx context.Context, req types.NeighborCountsRequest) (graph.NeighborCountsResponse, error) {
	response := graph.NeighborCountsResponse{Counts: []graph.NeighborCounts{}}

	vertexIDs := query.DistinctIDs(req.VertexIDs)
	if len(vertexIDs) == 0 {
		return response, nil
	}

	data, err := c.fetchStructured(ctx, NeighborCounts(vertexIDs))
	if err != nil {
		return response, err
	}

	buckets := map[types.VertexID][]graph.LabelCount{}
	for _, row := range rows(data) {
		for _, e := range entries(row) {
			id, ok := e.key.Scalar()
			if !ok {
				continue
			}
			vertexID := ids.New[types.VertexID](id)
			buckets[vertexID] = append(buckets[vertexID], labelCounts(e.value)...)
		}
	}

	for _, id := range vertexIDs {
		response.Counts = append(response.Counts, graph.NewNeighborCounts(id, buckets[id]))
	}

	return response, nil
}

func (c *Connector) KeywordSearch(ctx context.Context, req types.KeywordSearchRequest) (graph.Result, error) {
	return c.fetch(ctx, KeywordSearch(req))
}

func (c *Connector) FilterAndSort(ctx context.Context, req types.FilterAndSortRequest) (graph.Result, error) {
	return c.fetch(ctx, FilterAndSort(req))
}

func (c *Connector) FetchSchema(ctx context.Context) (graph.Schema, error) {
	counts, err := graph.FanOut(ctx, []string{VertexLabels(), EdgeLabels()}, 2, func(ctx context.Context, q string) ([]graph.LabelCount, error) {
		data, err := c.fetchStructured(ctx, q)
		if err != nil {
			return nil, err
		}
		result := []graph.LabelCount{}
		for _, row := range rows(data) {
			result = append(result, labelCounts(row)...)
		}
		return result, nil
	})
	if err != nil {
		return graph.NewSchema(nil, nil, nil, nil), err
	}

	return graph.SampleSchema(ctx, counts[0], counts[1],
		func(ctx context.Context, labels []string) (graph.Result, error) {
			return c.fetch(ctx, VertexSamples(labels))
		},
		func(ctx context.Context, labels []string) (graph.Result, error) {
			return c.fetch(ctx, EdgeSamples(labels))
		},
	)
}

func (c *Connector) EdgeConnections(ctx context.Context, edgeTypes []string) ([]graph.EdgeConnection, error) {
	return graph.CollectEdgeConnections(ctx, edgeTypes, func(ctx context.Context, edgeType string) ([]graph.EdgeConnection, error) {
		data, err := c.fetchStructured(ctx, EdgeConnections(edgeType, c.sampleSize))
		if err != nil {
			return nil, err
		}

		connections := []graph.EdgeConnection{}
		for _, row := range rows(data) {
			var source, target string
			for _, e := range entries(row) {
				key, _ := e.key.Scalar()
				value, _ := e.value.Scalar()
				switch key {
				case "source":
					source, _ = value.(string)
				case "target":
					target, _ = value.(string)
				}
			}
			connections = append(connections, graph.ConnectionsOf(edgeType, []string{source}, []string{target})...)
		}
		return connections, nil
	})
}

func (c *Connector) VertexDetails(ctx context.Context, vertexIDs []types.VertexID) ([]types.Vertex, error) {
	return graph.Details(ctx, vertexIDs, func(ctx context.Context, vertexIDs []types.VertexID) ([]types.Vertex, error) {
		result, err := c.fetch(ctx, VertexDetails(vertexIDs))
		return result.Vertices, err
	})
}

func (c *Connector) EdgeDetails(ctx context.Context, edgeIDs []types.EdgeID) ([]types.Edge, error) {
	return graph.Details(ctx, edgeIDs, func(ctx context.Context, edgeIDs []types.EdgeID) ([]types.Edge, error) {
		result, err := c.fetch(ctx, EdgeDetails(edgeIDs))
		return result.Edges, err
	})
}

func (c *Connector) fetch(ctx context.Context, q string) (graph.Result, error) {
	body, err := c.transport.Execute(ctx, q)
	if err != nil {
		return graph.Result{}, err
	}

	vals, err := Decode(body)
	if err != nil {
		return graph.Result{}, err
	}

	return values.Map(vals...), nil
}

func (c *Connector) fetchStructured(ctx context.Context, q string) (values.Value, error) {
	body, err := c.transport.Execute(ctx, q)
	if err != nil {
		return values.Value{}, err
	}

	return DecodeResult(body)
}

type entry struct {
	key   values.Value
	value values.Value
}

// rows returns the elements of a top level result list
func rows(data values.Value) []values.Value {
	if list, ok := data.List(); ok {
		return list
	}
	return []values.Value{data}
}

// entries reads a decoded g:Map as key value pairs
func entries(m values.Value) []entry {
	list, ok := m.List()
	if !ok {
		return nil
	}

	result := make([]entry, 0, len(list)/2)
	for i := 0; i+1 < len(list); i += 2 {
		result = append(result, entry{key: list[i], value: list[i+1]})
	}

	return result
}

func labelCounts(m values.Value) []graph.LabelCount {
	counts := []graph.LabelCount{}
	for _, e := range entries(m) {
		key, _ := e.key.Scalar()
		value, _ := e.value.Scalar()

		label, ok := key.(string)
		if !ok {
			continue
		}

		counts = append(counts, graph.LabelCount{Label: label, Count: toInt64(value)})
	}
	return counts
}

func toInt64(value any) int64 {
	switch v := value.(type) {
	case int64:
		return v
	case float64:
		return int64(v)
	default:
		return 0
	}
}

var _ graph.Connector = &Connector{}

package opencypher

import (
	"context"
	"encoding/json"
	"strings"

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
	return graph.OpenCypher
}

func (c *Connector) FetchNeighbors(ctx context.Context, req types.NeighborsRequest) (graph.Result, error) {
	if req.VertexID == "" {
		return graph.NewResult(), nil
	}

	return c.fetch(ctx, OneHop(req))
}

type neighborCountRow struct {
	VertexID json.RawMessage `json:"vertexId"`
	Labels   []string        `json:"labels"`
	Count    int64           `json:"count"`
}

func (c *Connector) NeighborCounts(ctx context.Context, req types.NeighborCountsRequest) (graph.NeighborCountsResponse, error) {
	response := graph.NeighborCountsResponse{Counts: []graph.NeighborCounts{}}

	vertexIDs := query.DistinctIDs(req.VertexIDs)
	if len(vertexIDs) == 0 {
		return response, nil
	}

	rows, err := fetchRows[neighborCountRow](ctx, c.transport, NeighborCounts(vertexIDs))
	if err != nil {
		return response, err
	}

	buckets := map[types.VertexID][]graph.LabelCount{}
	for _, row := range rows {
		id, err := decodeID(row.VertexID)
		if err != nil {
			continue
		}
		vertexID := ids.New[types.VertexID](id)
		buckets[vertexID] = append(buckets[vertexID], graph.LabelCount{
			Label: strings.Join(row.Labels, types.LabelSeparator),
			Count: row.Count,
		})
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

type vertexLabelRow struct {
	Labels []string `json:"labels"`
	Count  int64    `json:"count"`
}

type edgeLabelRow struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

func (c *Connector) FetchSchema(ctx context.Context) (graph.Schema, error) {
	vertexRows, err := fetchRows[vertexLabelRow](ctx, c.transport, VertexLabels())
	if err != nil {
		return graph.NewSchema(nil, nil, nil, nil), err
	}

	edgeRows, err := fetchRows[edgeLabelRow](ctx, c.transport, EdgeLabels())
	if err != nil {
		return graph.NewSchema(nil, nil, nil, nil), err
	}

	vertexCounts := make([]graph.LabelCount, 0, len(vertexRows))
	for _, row := range vertexRows {
		vertexCounts = append(vertexCounts, graph.LabelCount{Label: strings.Join(row.Labels, types.LabelSeparator), Count: row.Count})
	}

	edgeCounts := make([]graph.LabelCount, 0, len(edgeRows))
	for _, row := range edgeRows {
		edgeCounts = append(edgeCounts, graph.LabelCount{Label: row.Label, Count: row.Count})
	}

	return graph.SampleSchema(ctx, vertexCounts, edgeCounts,
		func(ctx context.Context, labels []string) (graph.Result, error) {
			return c.fetch(ctx, VertexSamples(labels))
		},
		func(ctx context.Context, labels []string) (graph.Result, error) {
			return c.fetch(ctx, EdgeSamples(labels))
		},
	)
}

type edgeConnectionRow struct {
	SourceTypes []string `json:"sourceTypes"`
	TargetTypes []string `json:"targetTypes"`
}

func (c *Connector) EdgeConnections(ctx context.Context, edgeTypes []string) ([]graph.EdgeConnection, error) {
	return graph.CollectEdgeConnections(ctx, edgeTypes, func(ctx context.Context, edgeType string) ([]graph.EdgeConnection, error) {
		rows, err := fetchRows[edgeConnectionRow](ctx, c.transport, EdgeConnections(edgeType, c.sampleSize))
		if err != nil {
			return nil, err
		}

		connections := []graph.EdgeConnection{}
		for _, row := range rows {
			connections = append(connections, graph.ConnectionsOf(edgeType, row.SourceTypes, row.TargetTypes)...)
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

func fetchRows[T any](ctx context.Context, transport graph.Transport, q string) ([]T, error) {
	body, err := transport.Execute(ctx, q)
	if err != nil {
		return nil, err
	}
	return DecodeRows[T](body)
}

var _ graph.Connector = &Connector{}

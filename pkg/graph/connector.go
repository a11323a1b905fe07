package graph

import (
	"context"
	"encoding/json"

	"github.com/diwise/graph-explorer/pkg/graph/types"
)

type Dialect string

const (
	Gremlin    Dialect = "gremlin"
	OpenCypher Dialect = "openCypher"
)

// Transport delivers a query string to the database and returns the response body
type Transport interface {
	Execute(ctx context.Context, query string) (json.RawMessage, error)
}

// Connector compiles requests into a single dialect, executes them through a transport
// and normalizes the responses.
type Connector interface {
	Dialect() Dialect

	FetchNeighbors(ctx context.Context, req types.NeighborsRequest) (Result, error)
	NeighborCounts(ctx context.Context, req types.NeighborCountsRequest) (NeighborCountsResponse, error)
	KeywordSearch(ctx context.Context, req types.KeywordSearchRequest) (Result, error)
	FilterAndSort(ctx context.Context, req types.FilterAndSortRequest) (Result, error)
	FetchSchema(ctx context.Context) (Schema, error)
	EdgeConnections(ctx context.Context, edgeTypes []string) ([]EdgeConnection, error)

	VertexDetails(ctx context.Context, vertexIDs []types.VertexID) ([]types.Vertex, error)
	EdgeDetails(ctx context.Context, edgeIDs []types.EdgeID) ([]types.Edge, error)
}

// Package details fetches full detail entities in batches, serving whatever it can from a cache.
package details

import (
	"context"
	"fmt"

	"github.com/diwise/graph-explorer/pkg/graph"
	"github.com/diwise/graph-explorer/pkg/graph/ids"
	"github.com/diwise/graph-explorer/pkg/graph/query"
	"github.com/diwise/graph-explorer/pkg/graph/types"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// DefaultBatchSize is the max number of ids in a single detail query
const DefaultBatchSize int = 25

const (
	kindVertex string = "vertex"
	kindEdge   string = "edge"
)

var tracer = otel.Tracer("graph-explorer-details")

// Fetcher is the part of a graph.Connector that the coalescer needs
type Fetcher interface {
	VertexDetails(ctx context.Context, vertexIDs []types.VertexID) ([]types.Vertex, error)
	EdgeDetails(ctx context.Context, edgeIDs []types.EdgeID) ([]types.Edge, error)
}

// Listener is told about entities that were fetched from the database
type Listener interface {
	VerticesFetched(ctx context.Context, vertices []types.Vertex)
	EdgesFetched(ctx context.Context, edges []types.Edge)
}

// Result holds the cached entities followed by the fetched ones, and the ids that
// were neither cached nor returned by the database
type Result[K ids.ID, T any] struct {
	Entities []T `json:"entities"`
	NotFound []K `json:"notFound"`
}

type Coalescer struct {
	fetcher   Fetcher
	vertices  Cache[types.VertexID, types.Vertex]
	edges     Cache[types.EdgeID, types.Edge]
	batchSize int
	metrics   *Metrics
	listener  Listener
}

func WithBatchSize(size int) func(*Coalescer) {
	return func(c *Coalescer) {
		if size > 0 {
			c.batchSize = size
		}
	}
}

func WithMetrics(m *Metrics) func(*Coalescer) {
	return func(c *Coalescer) {
		c.metrics = m
	}
}

func WithListener(l Listener) func(*Coalescer) {
	return func(c *Coalescer) {
		c.listener = l
	}
}

func NewCoalescer(fetcher Fetcher, vertices Cache[types.VertexID, types.Vertex], edges Cache[types.EdgeID, types.Edge], options ...func(*Coalescer)) *Coalescer {
	c := &Coalescer{
		fetcher:   fetcher,
		vertices:  vertices,
		edges:     edges,
		batchSize: DefaultBatchSize,
	}

	for _, option := range options {
		option(c)
	}

	return c
}

func (c *Coalescer) VertexDetails(ctx context.Context, vertexIDs []types.VertexID) (Result[types.VertexID, types.Vertex], error) {
	var err error

	ctx, span := tracer.Start(ctx, "vertex-details", trace.WithAttributes(attribute.Int("requested", len(vertexIDs))))
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	result, fetched, err := coalesce(ctx, c, kindVertex, vertexIDs, c.vertices, c.fetcher.VertexDetails,
		func(v types.Vertex) (types.VertexID, bool) { return v.ID, v.IsFragment },
	)
	if err != nil {
		return result, err
	}

	if c.listener != nil && len(fetched) > 0 {
		c.listener.VerticesFetched(ctx, fetched)
	}

	return result, nil
}

func (c *Coalescer) EdgeDetails(ctx context.Context, edgeIDs []types.EdgeID) (Result[types.EdgeID, types.Edge], error) {
	var err error

	ctx, span := tracer.Start(ctx, "edge-details", trace.WithAttributes(attribute.Int("requested", len(edgeIDs))))
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	result, fetched, err := coalesce(ctx, c, kindEdge, edgeIDs, c.edges, c.fetcher.EdgeDetails,
		func(e types.Edge) (types.EdgeID, bool) { return e.ID, e.IsFragment },
	)
	if err != nil {
		return result, err
	}

	if c.listener != nil && len(fetched) > 0 {
		c.listener.EdgesFetched(ctx, fetched)
	}

	return result, nil
}

// CachedVertex returns the full detail copy of a vertex if the cache holds one
func (c *Coalescer) CachedVertex(id types.VertexID) (types.Vertex, bool) {
	v, ok := c.vertices.Get(id)
	if !ok || v.IsFragment {
		return types.Vertex{}, false
	}
	return v, true
}

// coalesce returns the cached entities followed by the fetched ones. The cache is only
// written once every batch has succeeded, fragments are never written.
func coalesce[K ids.ID, T any](
	ctx context.Context, c *Coalescer, kind string, requested []K, cache Cache[K, T],
	fetch func(context.Context, []K) ([]T, error),
	identify func(T) (K, bool),
) (Result[K, T], []T, error) {

	result := Result[K, T]{Entities: []T{}, NotFound: []K{}}

	requested = query.DistinctIDs(requested)
	if len(requested) == 0 {
		return result, nil, nil
	}

	missing := make([]K, 0, len(requested))
	for _, id := range requested {
		if entity, ok := cache.Get(id); ok {
			if _, isFragment := identify(entity); !isFragment {
				result.Entities = append(result.Entities, entity)
				continue
			}
		}
		missing = append(missing, id)
	}

	if len(missing) == 0 {
		c.metrics.record(kind, len(result.Entities), 0, 0, 0)
		return result, nil, nil
	}

	batches := query.Batch(missing, c.batchSize)

	fetchedBatches, err := graph.FanOut(ctx, batches, 0, fetch)
	if err != nil {
		logging.GetFromContext(ctx).Error("failed to fetch details", "kind", kind, "err", err.Error())
		return Result[K, T]{}, nil, fmt.Errorf("failed to fetch %s details: %w", kind, err)
	}

	fetched := []T{}
	found := make(map[K]struct{}, len(missing))

	for _, batch := range fetchedBatches {
		for _, entity := range batch {
			id, isFragment := identify(entity)
			if _, ok := found[id]; ok {
				continue
			}
			found[id] = struct{}{}

			if !isFragment {
				cache.Set(id, entity)
			}

			fetched = append(fetched, entity)
		}
	}

	result.Entities = append(result.Entities, fetched...)

	for _, id := range missing {
		if _, ok := found[id]; !ok {
			result.NotFound = append(result.NotFound, id)
		}
	}

	c.metrics.record(kind, len(requested)-len(missing), len(missing), len(batches), len(result.NotFound))

	return result, fetched, nil
}

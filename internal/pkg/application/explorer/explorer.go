// Package explorer serves graph exploration requests against a set of configured connections
package explorer

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/diwise/graph-explorer/internal/pkg/application/notifications"
	"github.com/diwise/graph-explorer/internal/pkg/infrastructure/sessions"
	"github.com/diwise/graph-explorer/pkg/graph"
	"github.com/diwise/graph-explorer/pkg/graph/client"
	"github.com/diwise/graph-explorer/pkg/graph/details"
	"github.com/diwise/graph-explorer/pkg/graph/errors"
	"github.com/diwise/graph-explorer/pkg/graph/gremlin"
	"github.com/diwise/graph-explorer/pkg/graph/opencypher"
	"github.com/diwise/graph-explorer/pkg/graph/query"
	"github.com/diwise/graph-explorer/pkg/graph/types"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/singleflight"
)

//go:generate moq -rm -out explorer_mock.go . GraphExplorer

type GraphExplorer interface {
	Connections() []ConnectionInfo

	FetchNeighbors(ctx context.Context, connectionID string, req types.NeighborsRequest) (graph.Result, error)
	NeighborCounts(ctx context.Context, connectionID string, req types.NeighborCountsRequest) (graph.NeighborCountsResponse, error)
	KeywordSearch(ctx context.Context, connectionID string, req types.KeywordSearchRequest) (graph.Result, error)
	FilterAndSort(ctx context.Context, connectionID string, req types.FilterAndSortRequest) (graph.Result, error)

	Schema(ctx context.Context, connectionID string, refresh bool) (graph.Schema, error)
	EdgeConnections(ctx context.Context, connectionID string, edgeTypes []string) ([]graph.EdgeConnection, error)

	VertexDetails(ctx context.Context, connectionID string, vertexIDs []types.VertexID) (VertexDetailsResult, error)
	EdgeDetails(ctx context.Context, connectionID string, edgeIDs []types.EdgeID) (EdgeDetailsResult, error)

	SaveSession(ctx context.Context, connectionID string, s sessions.Session) (sessions.Session, error)
	RestoreSession(ctx context.Context, connectionID, sessionID string) (RestoredSession, error)

	Start() error
	Stop() error
}

type VertexDetailsResult = details.Result[types.VertexID, types.Vertex]
type EdgeDetailsResult = details.Result[types.EdgeID, types.Edge]

type ConnectionInfo struct {
	ID      string        `json:"id"`
	Name    string        `json:"name"`
	Dialect graph.Dialect `json:"dialect"`
}

type RestoredSession struct {
	Session  sessions.Session    `json:"session"`
	Vertices VertexDetailsResult `json:"vertices"`
	Edges    EdgeDetailsResult   `json:"edges"`
}

// ConnectorFactory creates the dialect connector for a configured connection
type ConnectorFactory func(cfg ConnectionConfig) (graph.Connector, error)

type connection struct {
	info      ConnectionInfo
	connector graph.Connector
	coalescer *details.Coalescer

	mu     sync.Mutex
	schema *graph.Schema
	group  singleflight.Group
}

type Option func(*explorerApp)

type explorerApp struct {
	connections map[string]*connection
	order       []string

	notifier notifications.Notifier
	sessions sessions.Repository
	registry prometheus.Registerer
	factory  ConnectorFactory
}

func WithNotifier(n notifications.Notifier) Option {
	return func(app *explorerApp) {
		app.notifier = n
	}
}

func WithSessions(r sessions.Repository) Option {
	return func(app *explorerApp) {
		app.sessions = r
	}
}

func WithMetrics(registry prometheus.Registerer) Option {
	return func(app *explorerApp) {
		app.registry = registry
	}
}

func WithConnectorFactory(f ConnectorFactory) Option {
	return func(app *explorerApp) {
		app.factory = f
	}
}

func New(ctx context.Context, cfg Config, options ...Option) (GraphExplorer, error) {
	app := &explorerApp{
		connections: make(map[string]*connection),
		factory:     NewConnector,
	}

	for _, option := range options {
		option(app)
	}

	metrics, err := details.NewMetrics(app.registry)
	if err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}

	for _, c := range cfg.Connections {
		connector, err := app.factory(c)
		if err != nil {
			return nil, fmt.Errorf("failed to create connector for %s: %w", c.ID, err)
		}

		vertexCache, err := details.NewLRUCache[types.VertexID, types.Vertex](c.CacheSize)
		if err != nil {
			return nil, err
		}

		edgeCache, err := details.NewLRUCache[types.EdgeID, types.Edge](c.CacheSize)
		if err != nil {
			return nil, err
		}

		coalescerOptions := []func(*details.Coalescer){
			details.WithBatchSize(c.BatchSize),
			details.WithMetrics(metrics),
		}

		if app.notifier != nil {
			coalescerOptions = append(coalescerOptions, details.WithListener(&connectionListener{
				connectionID: c.ID,
				notifier:     app.notifier,
			}))
		}

		app.connections[c.ID] = &connection{
			info:      ConnectionInfo{ID: c.ID, Name: c.Name, Dialect: c.Dialect},
			connector: connector,
			coalescer: details.NewCoalescer(connector, vertexCache, edgeCache, coalescerOptions...),
		}
		app.order = append(app.order, c.ID)

		logging.GetFromContext(ctx).Info("connection configured", "connection", c.ID, "dialect", string(c.Dialect))
	}

	return app, nil
}

// NewConnector wires an HTTP transport to the connector of the configured dialect
func NewConnector(cfg ConnectionConfig) (graph.Connector, error) {
	options := []func(*client.Transport){client.Debug(strconv.FormatBool(cfg.Debug))}
	for key, value := range cfg.Headers {
		options = append(options, client.Header(key, value))
	}

	transport := client.NewTransport(cfg.Endpoint, cfg.Dialect, options...)

	switch cfg.Dialect {
	case graph.Gremlin:
		return gremlin.NewConnector(transport, cfg.EdgeConnectionSampleSize), nil
	case graph.OpenCypher:
		return opencypher.NewConnector(transport, cfg.EdgeConnectionSampleSize), nil
	default:
		return nil, fmt.Errorf("unsupported dialect %q", cfg.Dialect)
	}
}

func (app *explorerApp) Connections() []ConnectionInfo {
	result := make([]ConnectionInfo, 0, len(app.order))
	for _, id := range app.order {
		result = append(result, app.connections[id].info)
	}
	return result
}

func (app *explorerApp) connection(connectionID string) (*connection, error) {
	c, ok := app.connections[connectionID]
	if !ok {
		return nil, errors.NewUnknownConnectionError(connectionID)
	}
	return c, nil
}

func (app *explorerApp) FetchNeighbors(ctx context.Context, connectionID string, req types.NeighborsRequest) (graph.Result, error) {
	c, err := app.connection(connectionID)
	if err != nil {
		return graph.Result{}, err
	}

	result, err := c.connector.FetchNeighbors(ctx, req)
	if err != nil {
		return graph.Result{}, err
	}

	return c.resolveFragments(result), nil
}

func (app *explorerApp) NeighborCounts(ctx context.Context, connectionID string, req types.NeighborCountsRequest) (graph.NeighborCountsResponse, error) {
	c, err := app.connection(connectionID)
	if err != nil {
		return graph.NeighborCountsResponse{}, err
	}

	return c.connector.NeighborCounts(ctx, req)
}

func (app *explorerApp) KeywordSearch(ctx context.Context, connectionID string, req types.KeywordSearchRequest) (graph.Result, error) {
	c, err := app.connection(connectionID)
	if err != nil {
		return graph.Result{}, err
	}

	result, err := c.connector.KeywordSearch(ctx, req)
	if err != nil {
		return graph.Result{}, err
	}

	return c.resolveFragments(result), nil
}

func (app *explorerApp) FilterAndSort(ctx context.Context, connectionID string, req types.FilterAndSortRequest) (graph.Result, error) {
	c, err := app.connection(connectionID)
	if err != nil {
		return graph.Result{}, err
	}

	result, err := c.connector.FilterAndSort(ctx, req)
	if err != nil {
		return graph.Result{}, err
	}

	return c.resolveFragments(result), nil
}

func (app *explorerApp) Schema(ctx context.Context, connectionID string, refresh bool) (graph.Schema, error) {
	c, err := app.connection(connectionID)
	if err != nil {
		return graph.Schema{}, err
	}

	return c.fetchSchema(ctx, refresh)
}

func (app *explorerApp) EdgeConnections(ctx context.Context, connectionID string, edgeTypes []string) ([]graph.EdgeConnection, error) {
	c, err := app.connection(connectionID)
	if err != nil {
		return nil, err
	}

	return c.connector.EdgeConnections(ctx, edgeTypes)
}

func (app *explorerApp) VertexDetails(ctx context.Context, connectionID string, vertexIDs []types.VertexID) (VertexDetailsResult, error) {
	c, err := app.connection(connectionID)
	if err != nil {
		return VertexDetailsResult{}, err
	}

	return c.coalescer.VertexDetails(ctx, vertexIDs)
}

func (app *explorerApp) EdgeDetails(ctx context.Context, connectionID string, edgeIDs []types.EdgeID) (EdgeDetailsResult, error) {
	c, err := app.connection(connectionID)
	if err != nil {
		return EdgeDetailsResult{}, err
	}

	return c.coalescer.EdgeDetails(ctx, edgeIDs)
}

func (app *explorerApp) SaveSession(ctx context.Context, connectionID string, s sessions.Session) (sessions.Session, error) {
	if _, err := app.connection(connectionID); err != nil {
		return sessions.Session{}, err
	}

	if app.sessions == nil {
		return sessions.Session{}, errSessionsDisabled()
	}

	s.ConnectionID = connectionID
	s.VertexIDs = query.DistinctIDs(s.VertexIDs)
	s.EdgeIDs = query.DistinctIDs(s.EdgeIDs)

	return app.sessions.Save(ctx, s)
}

// RestoreSession loads a saved session and fetches the details of its entities through
// the coalescer, so that large sessions are fetched in batches
func (app *explorerApp) RestoreSession(ctx context.Context, connectionID, sessionID string) (RestoredSession, error) {
	c, err := app.connection(connectionID)
	if err != nil {
		return RestoredSession{}, err
	}

	if app.sessions == nil {
		return RestoredSession{}, errSessionsDisabled()
	}

	s, err := app.sessions.Get(ctx, connectionID, sessionID)
	if err != nil {
		return RestoredSession{}, err
	}

	vertices, err := c.coalescer.VertexDetails(ctx, s.VertexIDs)
	if err != nil {
		return RestoredSession{}, err
	}

	edges, err := c.coalescer.EdgeDetails(ctx, s.EdgeIDs)
	if err != nil {
		return RestoredSession{}, err
	}

	return RestoredSession{Session: s, Vertices: vertices, Edges: edges}, nil
}

func (app *explorerApp) Start() error {
	if app.notifier != nil {
		return app.notifier.Start()
	}

	return nil
}

func (app *explorerApp) Stop() error {
	if app.notifier != nil {
		return app.notifier.Stop()
	}

	return nil
}

func errSessionsDisabled() error {
	return errors.NewNotFoundError("session storage is not configured")
}

// resolveFragments swaps fragment vertices for a full detail copy when the cache holds one
func (c *connection) resolveFragments(result graph.Result) graph.Result {
	for i, v := range result.Vertices {
		if !v.IsFragment {
			continue
		}

		if cached, ok := c.coalescer.CachedVertex(v.ID); ok {
			result.Vertices[i] = cached
		}
	}

	return result
}

func (c *connection) fetchSchema(ctx context.Context, refresh bool) (graph.Schema, error) {
	if !refresh {
		c.mu.Lock()
		schema := c.schema
		c.mu.Unlock()

		if schema != nil {
			return *schema, nil
		}
	}

	// concurrent callers share a single fetch that outlives any one of them
	ch := c.group.DoChan("schema", func() (any, error) {
		schema, err := c.connector.FetchSchema(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.schema = &schema
		c.mu.Unlock()

		return schema, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return graph.Schema{}, res.Err
		}
		return res.Val.(graph.Schema), nil
	case <-ctx.Done():
		return graph.Schema{}, ctx.Err()
	}
}

type connectionListener struct {
	connectionID string
	notifier     notifications.Notifier
}

func (l *connectionListener) VerticesFetched(ctx context.Context, vertices []types.Vertex) {
	l.notifier.EntitiesAdded(ctx, l.connectionID, vertices, nil)
}

func (l *connectionListener) EdgesFetched(ctx context.Context, edges []types.Edge) {
	l.notifier.EntitiesAdded(ctx, l.connectionID, nil, edges)
}

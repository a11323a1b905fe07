package explorer

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/diwise/graph-explorer/internal/pkg/infrastructure/sessions"
	"github.com/diwise/graph-explorer/pkg/graph"
	graphErrors "github.com/diwise/graph-explorer/pkg/graph/errors"
	"github.com/diwise/graph-explorer/pkg/graph/ids"
	"github.com/diwise/graph-explorer/pkg/graph/types"
	"github.com/matryer/is"
	"github.com/prometheus/client_golang/prometheus"
)

type connectorMock struct {
	mu            sync.Mutex
	schemaCalls   int
	schemaStarted chan struct{}
	schemaGate    chan struct{}
	detailBatches [][]types.VertexID
	neighbors     graph.Result
}

func (c *connectorMock) Dialect() graph.Dialect { return graph.Gremlin }

func (c *connectorMock) FetchNeighbors(ctx context.Context, req types.NeighborsRequest) (graph.Result, error) {
	return c.neighbors, nil
}

func (c *connectorMock) NeighborCounts(ctx context.Context, req types.NeighborCountsRequest) (graph.NeighborCountsResponse, error) {
	return graph.NeighborCountsResponse{}, nil
}

func (c *connectorMock) KeywordSearch(ctx context.Context, req types.KeywordSearchRequest) (graph.Result, error) {
	return graph.NewResult(), nil
}

func (c *connectorMock) FilterAndSort(ctx context.Context, req types.FilterAndSortRequest) (graph.Result, error) {
	return graph.NewResult(), nil
}

func (c *connectorMock) FetchSchema(ctx context.Context) (graph.Schema, error) {
	if c.schemaGate != nil {
		select {
		case c.schemaStarted <- struct{}{}:
		default:
		}
		<-c.schemaGate
		if err := ctx.Err(); err != nil {
			return graph.Schema{}, err
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.schemaCalls++
	return graph.Schema{TotalCount: int64(c.schemaCalls)}, nil
}

func (c *connectorMock) EdgeConnections(ctx context.Context, edgeTypes []string) ([]graph.EdgeConnection, error) {
	return []graph.EdgeConnection{}, nil
}

func (c *connectorMock) VertexDetails(ctx context.Context, vertexIDs []types.VertexID) ([]types.Vertex, error) {
	c.mu.Lock()
	c.detailBatches = append(c.detailBatches, vertexIDs)
	c.mu.Unlock()

	vertices := []types.Vertex{}
	for _, id := range vertexIDs {
		vertices = append(vertices, airport(id))
	}
	return vertices, nil
}

func (c *connectorMock) EdgeDetails(ctx context.Context, edgeIDs []types.EdgeID) ([]types.Edge, error) {
	edges := []types.Edge{}
	for _, id := range edgeIDs {
		edges = append(edges, types.Edge{ID: id, Type: "route", Attributes: types.Attributes{"dist": int64(1)}})
	}
	return edges, nil
}

type sessionRepositoryMock struct {
	saved map[string]sessions.Session
}

func (r *sessionRepositoryMock) Save(ctx context.Context, s sessions.Session) (sessions.Session, error) {
	if s.ID == "" {
		s.ID = "s1"
	}
	r.saved[s.ID] = s
	return s, nil
}

func (r *sessionRepositoryMock) Get(ctx context.Context, connectionID, sessionID string) (sessions.Session, error) {
	s, ok := r.saved[sessionID]
	if !ok || s.ConnectionID != connectionID {
		return sessions.Session{}, graphErrors.NewNotFoundError("no such session")
	}
	return s, nil
}

func (r *sessionRepositoryMock) DeleteOlderThan(ctx context.Context, t time.Time) (int64, error) {
	return 0, nil
}

type notifierMock struct {
	mu       sync.Mutex
	vertices []types.Vertex
	edges    []types.Edge
}

func (n *notifierMock) Start() error { return nil }
func (n *notifierMock) Stop() error  { return nil }

func (n *notifierMock) EntitiesAdded(ctx context.Context, connectionID string, vertices []types.Vertex, edges []types.Edge) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.vertices = append(n.vertices, vertices...)
	n.edges = append(n.edges, edges...)
}

func airport(id types.VertexID) types.Vertex {
	return types.Vertex{
		ID:         id,
		Type:       "airport",
		Types:      []string{"airport"},
		Attributes: types.Attributes{"code": ids.Raw(id)},
	}
}

func vertexIDs(raw ...string) []types.VertexID {
	result := []types.VertexID{}
	for _, r := range raw {
		result = append(result, ids.FromString[types.VertexID](r))
	}
	return result
}

func setupExplorerTest(t *testing.T, options ...Option) (*is.I, GraphExplorer, *connectorMock) {
	is := is.New(t)

	connector := &connectorMock{}

	cfg := Config{
		Connections: []ConnectionConfig{
			{ID: "air-routes", Name: "Air Routes", Dialect: graph.Gremlin, BatchSize: 2},
		},
	}

	options = append(options, WithConnectorFactory(func(ConnectionConfig) (graph.Connector, error) {
		return connector, nil
	}))

	app, err := New(context.Background(), cfg, options...)
	is.NoErr(err)

	return is, app, connector
}

func TestUnknownConnectionIsReported(t *testing.T) {
	is, app, _ := setupExplorerTest(t)

	_, err := app.FetchNeighbors(context.Background(), "nope", types.NeighborsRequest{})
	is.True(errors.Is(err, graphErrors.ErrUnknownConnection))

	_, err = app.VertexDetails(context.Background(), "nope", vertexIDs("JFK"))
	is.True(errors.Is(err, graphErrors.ErrUnknownConnection))
}

func TestConnectionsAreListedInConfigOrder(t *testing.T) {
	is, app, _ := setupExplorerTest(t)

	connections := app.Connections()
	is.Equal(len(connections), 1)
	is.Equal(connections[0].ID, "air-routes")
	is.Equal(connections[0].Dialect, graph.Gremlin)
}

func TestSchemaIsCachedUntilRefreshed(t *testing.T) {
	is, app, connector := setupExplorerTest(t)
	ctx := context.Background()

	first, err := app.Schema(ctx, "air-routes", false)
	is.NoErr(err)

	second, err := app.Schema(ctx, "air-routes", false)
	is.NoErr(err)
	is.Equal(first.TotalCount, second.TotalCount)
	is.Equal(connector.schemaCalls, 1)

	refreshed, err := app.Schema(ctx, "air-routes", true)
	is.NoErr(err)
	is.Equal(refreshed.TotalCount, int64(2))
}

func TestConcurrentSchemaRequestsAreServed(t *testing.T) {
	is, app, connector := setupExplorerTest(t)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := app.Schema(context.Background(), "air-routes", false)
			is.NoErr(err)
		}()
	}
	wg.Wait()

	is.True(connector.schemaCalls >= 1)
	is.True(connector.schemaCalls <= 8)
}

func TestCanceledSchemaRequestDoesNotFailOthers(t *testing.T) {
	is, app, connector := setupExplorerTest(t)

	connector.schemaStarted = make(chan struct{}, 1)
	connector.schemaGate = make(chan struct{})

	ctx, cancel := context.WithCancel(context.Background())
	first := make(chan error, 1)
	go func() {
		_, err := app.Schema(ctx, "air-routes", false)
		first <- err
	}()

	<-connector.schemaStarted

	second := make(chan error, 1)
	go func() {
		_, err := app.Schema(context.Background(), "air-routes", false)
		second <- err
	}()

	cancel()
	is.True(errors.Is(<-first, context.Canceled))

	close(connector.schemaGate)
	is.NoErr(<-second)

	schema, err := app.Schema(context.Background(), "air-routes", false)
	is.NoErr(err)
	is.True(schema.TotalCount >= 1)
}

func TestFragmentNeighborsAreResolvedFromCache(t *testing.T) {
	is, app, connector := setupExplorerTest(t)
	ctx := context.Background()

	jfk := vertexIDs("JFK")[0]
	lax := vertexIDs("LAX")[0]

	connector.neighbors = graph.Result{
		Vertices: []types.Vertex{
			{ID: jfk, Type: "airport", Types: []string{"airport"}, IsFragment: true},
			{ID: lax, Type: "airport", Types: []string{"airport"}, IsFragment: true},
		},
		Edges: []types.Edge{},
	}

	_, err := app.VertexDetails(ctx, "air-routes", []types.VertexID{jfk})
	is.NoErr(err)

	result, err := app.FetchNeighbors(ctx, "air-routes", types.NeighborsRequest{VertexID: lax})
	is.NoErr(err)

	is.True(!result.Vertices[0].IsFragment)
	is.Equal(result.Vertices[0].Attributes["code"], "JFK")
	is.True(result.Vertices[1].IsFragment)
}

func TestSessionIsRestoredInBatches(t *testing.T) {
	repo := &sessionRepositoryMock{saved: map[string]sessions.Session{}}
	is, app, connector := setupExplorerTest(t, WithSessions(repo))
	ctx := context.Background()

	saved, err := app.SaveSession(ctx, "air-routes", sessions.Session{
		Name:      "hubs",
		VertexIDs: vertexIDs("JFK", "LAX", "JFK", "ATL", "ORD", "DFW"),
		EdgeIDs:   []types.EdgeID{ids.FromString[types.EdgeID]("r1")},
	})
	is.NoErr(err)
	is.Equal(saved.ConnectionID, "air-routes")
	is.Equal(len(saved.VertexIDs), 5) // duplicates are dropped

	restored, err := app.RestoreSession(ctx, "air-routes", saved.ID)
	is.NoErr(err)

	is.Equal(len(restored.Vertices.Entities), 5)
	is.Equal(len(restored.Edges.Entities), 1)
	is.Equal(len(connector.detailBatches), 3) // batch size is 2
}

func TestSessionsRequireStorage(t *testing.T) {
	is, app, _ := setupExplorerTest(t)

	_, err := app.RestoreSession(context.Background(), "air-routes", "s1")
	is.True(errors.Is(err, graphErrors.ErrNotFound))
}

func TestFetchedDetailsAreNotified(t *testing.T) {
	notifier := &notifierMock{}
	is, app, _ := setupExplorerTest(t, WithNotifier(notifier))
	ctx := context.Background()

	_, err := app.VertexDetails(ctx, "air-routes", vertexIDs("JFK", "LAX"))
	is.NoErr(err)

	_, err = app.EdgeDetails(ctx, "air-routes", []types.EdgeID{ids.FromString[types.EdgeID]("r1")})
	is.NoErr(err)

	is.Equal(len(notifier.vertices), 2)
	is.Equal(len(notifier.edges), 1)
}

func TestMetricsRegistryIsUsed(t *testing.T) {
	registry := prometheus.NewRegistry()
	is, app, _ := setupExplorerTest(t, WithMetrics(registry))

	_, err := app.VertexDetails(context.Background(), "air-routes", vertexIDs("JFK"))
	is.NoErr(err)

	families, err := registry.Gather()
	is.NoErr(err)
	is.True(len(families) > 0)
}

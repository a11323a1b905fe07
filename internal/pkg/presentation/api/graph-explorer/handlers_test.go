package graphexplorer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/diwise/graph-explorer/internal/pkg/application/explorer"
	"github.com/diwise/graph-explorer/internal/pkg/infrastructure/sessions"
	"github.com/diwise/graph-explorer/pkg/graph"
	graphErrors "github.com/diwise/graph-explorer/pkg/graph/errors"
	"github.com/diwise/graph-explorer/pkg/graph/ids"
	"github.com/diwise/graph-explorer/pkg/graph/types"
	"github.com/go-chi/chi/v5"
	"github.com/matryer/is"
)

func TestFetchNeighbors(t *testing.T) {
	is, ts, app := setupTest(t)
	defer ts.Close()

	resp, body := newTestRequest(is, ts, http.MethodPost, "/api/v1/connections/air-routes/neighbors", strings.NewReader(`{"vertexId":"(num)124","limit":10}`))

	is.Equal(resp.StatusCode, http.StatusOK) // Check status code
	is.True(strings.Contains(body, `"(str)JFK"`))

	calls := app.FetchNeighborsCalls()
	is.Equal(len(calls), 1)
	is.Equal(calls[0].ConnectionID, "air-routes")
	is.Equal(calls[0].Req.VertexID, ids.FromNumber[types.VertexID](124))
	is.Equal(calls[0].Req.Limit, 10)
}

func TestBadPayloadReturnsBadRequest(t *testing.T) {
	is, ts, _ := setupTest(t)
	defer ts.Close()

	resp, body := newTestRequest(is, ts, http.MethodPost, "/api/v1/connections/air-routes/search", strings.NewReader("this is not my json"))

	is.Equal(resp.StatusCode, http.StatusBadRequest) // Check status code
	is.True(strings.Contains(body, "BadRequest"))
}

func TestFilterCriteriaKeepLargeIntegers(t *testing.T) {
	is, ts, app := setupTest(t)
	defer ts.Close()

	app.FilterAndSortFunc = func(ctx context.Context, connectionID string, req types.FilterAndSortRequest) (graph.Result, error) {
		return graph.NewResult(), nil
	}

	resp, _ := newTestRequest(is, ts, http.MethodPost, "/api/v1/connections/air-routes/filter",
		strings.NewReader(`{"filterCriteria":[{"name":"population","operator":"eq","value":9007199254740993,"dataType":"Number"}]}`))

	is.Equal(resp.StatusCode, http.StatusOK) // Check status code

	calls := app.FilterAndSortCalls()
	is.Equal(len(calls), 1)
	is.Equal(calls[0].Req.FilterCriteria[0].Value, any(json.Number("9007199254740993")))
}

func TestUnknownConnectionReturnsNotFound(t *testing.T) {
	is, ts, app := setupTest(t)
	defer ts.Close()

	app.FetchNeighborsFunc = func(ctx context.Context, connectionID string, req types.NeighborsRequest) (graph.Result, error) {
		return graph.Result{}, graphErrors.NewUnknownConnectionError(connectionID)
	}

	resp, _ := newTestRequest(is, ts, http.MethodPost, "/api/v1/connections/nope/neighbors", strings.NewReader(`{}`))

	is.Equal(resp.StatusCode, http.StatusNotFound) // Check status code
}

func TestDialectErrorReturnsBadGateway(t *testing.T) {
	is, ts, app := setupTest(t)
	defer ts.Close()

	app.VertexDetailsFunc = func(ctx context.Context, connectionID string, vertexIDs []types.VertexID) (explorer.VertexDetailsResult, error) {
		return explorer.VertexDetailsResult{}, fmt.Errorf("failed to fetch vertex details: %w", graphErrors.NewDialectError("MalformedQueryException", "Query parsing failed"))
	}

	resp, body := newTestRequest(is, ts, http.MethodPost, "/api/v1/connections/air-routes/vertices/details", strings.NewReader(`{"vertexIds":["(str)JFK"]}`))

	is.Equal(resp.StatusCode, http.StatusBadGateway) // Check status code
	is.True(strings.Contains(body, "Query parsing failed"))
}

func TestVertexDetailsAreReturned(t *testing.T) {
	is, ts, app := setupTest(t)
	defer ts.Close()

	resp, body := newTestRequest(is, ts, http.MethodPost, "/api/v1/connections/air-routes/vertices/details", strings.NewReader(`{"vertexIds":["(str)JFK","(str)XXX"]}`))
	is.Equal(resp.StatusCode, http.StatusOK) // Check status code

	result := explorer.VertexDetailsResult{}
	is.NoErr(json.Unmarshal([]byte(body), &result))
	is.Equal(len(result.Entities), 1)
	is.Equal(result.NotFound, []types.VertexID{ids.FromString[types.VertexID]("XXX")})
	is.Equal(len(app.VertexDetailsCalls()[0].VertexIDs), 2)
}

func TestSchemaRefreshIsPassedOn(t *testing.T) {
	is, ts, app := setupTest(t)
	defer ts.Close()

	resp, _ := newTestRequest(is, ts, http.MethodGet, "/api/v1/connections/air-routes/schema?refresh=true", nil)
	is.Equal(resp.StatusCode, http.StatusOK) // Check status code

	resp, _ = newTestRequest(is, ts, http.MethodGet, "/api/v1/connections/air-routes/schema", nil)
	is.Equal(resp.StatusCode, http.StatusOK) // Check status code

	calls := app.SchemaCalls()
	is.Equal(len(calls), 2)
	is.True(calls[0].Refresh)
	is.True(!calls[1].Refresh)

	resp, _ = newTestRequest(is, ts, http.MethodGet, "/api/v1/connections/air-routes/schema?refresh=maybe", nil)
	is.Equal(resp.StatusCode, http.StatusBadRequest) // Check status code
}

func TestSaveSessionReturnsCreated(t *testing.T) {
	is, ts, app := setupTest(t)
	defer ts.Close()

	resp, body := newTestRequest(is, ts, http.MethodPost, "/api/v1/connections/air-routes/sessions", strings.NewReader(`{"name":"hubs","vertexIds":["(str)JFK"]}`))

	is.Equal(resp.StatusCode, http.StatusCreated) // Check status code
	is.True(strings.Contains(body, `"id":"s1"`))
	is.Equal(app.SaveSessionCalls()[0].S.Name, "hubs")
}

func TestMissingSessionReturnsNotFound(t *testing.T) {
	is, ts, app := setupTest(t)
	defer ts.Close()

	app.RestoreSessionFunc = func(ctx context.Context, connectionID, sessionID string) (explorer.RestoredSession, error) {
		return explorer.RestoredSession{}, graphErrors.NewNotFoundError("no session")
	}

	resp, _ := newTestRequest(is, ts, http.MethodGet, "/api/v1/connections/air-routes/sessions/s2", nil)

	is.Equal(resp.StatusCode, http.StatusNotFound) // Check status code
}

func TestRequestWithoutTokenIsForbidden(t *testing.T) {
	is, ts, app := setupTest(t)
	defer ts.Close()

	req, _ := http.NewRequest(http.MethodPost, ts.URL+"/api/v1/connections/air-routes/neighbors", strings.NewReader(`{}`))
	resp, err := http.DefaultClient.Do(req)
	is.NoErr(err) // http request failed
	defer resp.Body.Close()

	is.Equal(resp.StatusCode, http.StatusForbidden) // Check status code
	is.Equal(len(app.FetchNeighborsCalls()), 0)
}

func TestConnectionsAreListed(t *testing.T) {
	is, ts, _ := setupTest(t)
	defer ts.Close()

	resp, body := newTestRequest(is, ts, http.MethodGet, "/api/v1/connections", nil)

	is.Equal(resp.StatusCode, http.StatusOK) // Check status code
	is.True(strings.Contains(body, `"dialect":"gremlin"`))
}

func newTestRequest(is *is.I, ts *httptest.Server, method, path string, body io.Reader) (*http.Response, string) {
	req, _ := http.NewRequest(method, ts.URL+path, body)
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Authorization", "Bearer s3cr3t")

	resp, err := http.DefaultClient.Do(req)
	is.NoErr(err) // http request failed
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	is.NoErr(err) // failed to read response body

	return resp, string(respBody)
}

func setupTest(t *testing.T) (*is.I, *httptest.Server, *explorer.GraphExplorerMock) {
	is := is.New(t)
	r := chi.NewRouter()
	ts := httptest.NewServer(r)

	jfk := types.Vertex{
		ID:         ids.FromString[types.VertexID]("JFK"),
		Type:       "airport",
		Types:      []string{"airport"},
		Attributes: types.Attributes{"code": "JFK"},
	}

	app := &explorer.GraphExplorerMock{
		ConnectionsFunc: func() []explorer.ConnectionInfo {
			return []explorer.ConnectionInfo{{ID: "air-routes", Name: "Air Routes", Dialect: graph.Gremlin}}
		},
		FetchNeighborsFunc: func(ctx context.Context, connectionID string, req types.NeighborsRequest) (graph.Result, error) {
			result := graph.NewResult()
			result.Vertices = append(result.Vertices, jfk)
			return result, nil
		},
		KeywordSearchFunc: func(ctx context.Context, connectionID string, req types.KeywordSearchRequest) (graph.Result, error) {
			return graph.NewResult(), nil
		},
		SchemaFunc: func(ctx context.Context, connectionID string, refresh bool) (graph.Schema, error) {
			return graph.Schema{}, nil
		},
		VertexDetailsFunc: func(ctx context.Context, connectionID string, vertexIDs []types.VertexID) (explorer.VertexDetailsResult, error) {
			return explorer.VertexDetailsResult{
				Entities: []types.Vertex{jfk},
				NotFound: []types.VertexID{ids.FromString[types.VertexID]("XXX")},
			}, nil
		},
		SaveSessionFunc: func(ctx context.Context, connectionID string, s sessions.Session) (sessions.Session, error) {
			s.ID = "s1"
			s.ConnectionID = connectionID
			return s, nil
		},
	}

	err := RegisterHandlers(context.Background(), r, bytes.NewBufferString(testPolicy), app)
	is.NoErr(err)

	return is, ts, app
}

const testPolicy string = `
package graphexplorer.authz

default allow := false

allow = response {
    input.token == "s3cr3t"
    response := {
        "connection": input.connection
    }
}
`

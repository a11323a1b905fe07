package graph

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/diwise/graph-explorer/pkg/graph/types"
	"github.com/matryer/is"
)

func TestNewSchemaSumsCountsAndMatchesMultiLabelSamples(t *testing.T) {
	is := is.New(t)

	schema := NewSchema(
		[]LabelCount{{Label: "hub::airport", Count: 2}, {Label: "country", Count: 3}},
		[]LabelCount{{Label: "route", Count: 10}},
		map[string]types.Attributes{"airport::hub": {"code": "ATL"}},
		map[string]types.Attributes{"route": {"dist": int64(809)}},
	)

	is.Equal(schema.TotalCount, int64(5))
	is.Equal(schema.EdgeCount, int64(10))
	is.Equal(schema.Vertices[0].Type, "hub::airport")
	is.Equal(schema.Vertices[0].Attributes, []AttributeSchema{{Name: "code", DataType: types.InferType("ATL")}})
	is.Equal(len(schema.Vertices[1].Attributes), 0)
	is.Equal(schema.Edges[0].Attributes[0].Name, "dist")
}

func TestNewSchemaWithoutCountsHasEmptyLists(t *testing.T) {
	is := is.New(t)

	schema := NewSchema(nil, nil, nil, nil)

	is.True(schema.Vertices != nil)
	is.True(schema.Edges != nil)
}

func TestSampleSchemaBatchesLabels(t *testing.T) {
	is := is.New(t)

	vertexCounts := []LabelCount{}
	for i := range SchemaBatchSize + 1 {
		vertexCounts = append(vertexCounts, LabelCount{Label: "type" + string(rune('a'+i)), Count: 1})
	}

	mu := sync.Mutex{}
	batches := [][]string{}

	sampleVertices := func(ctx context.Context, labels []string) (Result, error) {
		mu.Lock()
		defer mu.Unlock()
		batches = append(batches, labels)

		r := NewResult()
		for _, l := range labels {
			r.Vertices = append(r.Vertices, types.Vertex{Type: l, Types: []string{l}, Attributes: types.Attributes{"name": l}})
		}
		return r, nil
	}
	sampleEdges := func(ctx context.Context, labels []string) (Result, error) {
		return NewResult(), nil
	}

	schema, err := SampleSchema(context.Background(), vertexCounts, nil, sampleVertices, sampleEdges)
	is.NoErr(err)

	is.Equal(len(batches), 2)
	is.Equal(len(schema.Vertices), SchemaBatchSize+1)
	is.Equal(schema.Vertices[SchemaBatchSize].Attributes[0].Name, "name")
}

func TestSampleSchemaReturnsSamplingErrors(t *testing.T) {
	is := is.New(t)

	failing := errors.New("unreachable")

	_, err := SampleSchema(context.Background(),
		[]LabelCount{{Label: "airport", Count: 1}}, nil,
		func(ctx context.Context, labels []string) (Result, error) { return Result{}, failing },
		func(ctx context.Context, labels []string) (Result, error) { return NewResult(), nil },
	)

	is.True(errors.Is(err, failing))
}

func TestConnectionsOfPairsEverySplitLabel(t *testing.T) {
	is := is.New(t)

	connections := ConnectionsOf("route", []string{"airport::hub"}, []string{"airport"})

	is.Equal(connections, []EdgeConnection{
		{EdgeType: "route", SourceType: "airport", TargetType: "airport"},
		{EdgeType: "route", SourceType: "hub", TargetType: "airport"},
	})
	is.Equal(len(ConnectionsOf("route", []string{""}, []string{"airport"})), 0)
}

func TestCollectEdgeConnectionsMergesDuplicates(t *testing.T) {
	is := is.New(t)

	calls := 0
	mu := sync.Mutex{}

	connections, err := CollectEdgeConnections(context.Background(), []string{"route", "contains", "route"},
		func(ctx context.Context, edgeType string) ([]EdgeConnection, error) {
			mu.Lock()
			calls++
			mu.Unlock()
			return slicesOf(ConnectionsOf(edgeType, []string{"airport"}, []string{"airport"}), 2), nil
		})
	is.NoErr(err)

	is.Equal(calls, 2)
	is.Equal(connections, []EdgeConnection{
		{EdgeType: "route", SourceType: "airport", TargetType: "airport"},
		{EdgeType: "contains", SourceType: "airport", TargetType: "airport"},
	})
}

func TestCollectEdgeConnectionsWithoutTypesDoesNotQuery(t *testing.T) {
	is := is.New(t)

	connections, err := CollectEdgeConnections(context.Background(), nil,
		func(ctx context.Context, edgeType string) ([]EdgeConnection, error) {
			t.Fatal("no query expected")
			return nil, nil
		})
	is.NoErr(err)

	is.True(connections != nil)
	is.Equal(len(connections), 0)
}

func TestDetailsDeduplicatesAndShortCircuits(t *testing.T) {
	is := is.New(t)

	fetched := [][]types.VertexID{}
	fetch := func(ctx context.Context, ids []types.VertexID) ([]types.Vertex, error) {
		fetched = append(fetched, ids)
		return []types.Vertex{{ID: ids[0]}}, nil
	}

	vertices, err := Details(context.Background(), []types.VertexID{}, fetch)
	is.NoErr(err)
	is.True(vertices != nil)
	is.Equal(len(fetched), 0)

	vertices, err = Details(context.Background(), []types.VertexID{"(str)a", "(str)a"}, fetch)
	is.NoErr(err)
	is.Equal(len(vertices), 1)
	is.Equal(fetched, [][]types.VertexID{{"(str)a"}})
}

func slicesOf[T any](s []T, n int) []T {
	result := []T{}
	for range n {
		result = append(result, s...)
	}
	return result
}

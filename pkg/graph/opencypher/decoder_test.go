package opencypher

import (
	"errors"
	"testing"

	graphErrors "github.com/diwise/graph-explorer/pkg/graph/errors"
	"github.com/diwise/graph-explorer/pkg/graph/ids"
	"github.com/diwise/graph-explorer/pkg/graph/types"
	"github.com/diwise/graph-explorer/pkg/graph/values"
	"github.com/matryer/is"
)

func TestDecodeNodes(t *testing.T) {
	is := is.New(t)

	vals, err := Decode([]byte(`{"results":[
		{"v":{"~id":"1","~entityType":"node","~labels":["airport"],"~properties":{"code":"ATL","runways":5,"elev":1026.5,"closed":null}}},
		{"v":{"~id":"2","~entityType":"node","~labels":["airport"]}},
		{"v":{"~id":"1","~entityType":"node","~labels":["airport"],"~properties":{"code":"ATL","runways":5}}}
	]}`))
	is.NoErr(err)

	result := values.Map(vals...)
	is.Equal(len(result.Vertices), 2)

	atl := result.Vertices[0]
	is.Equal(atl.ID, ids.FromString[types.VertexID]("1"))
	is.Equal(atl.Attributes["runways"], int64(5))
	is.Equal(len(atl.Attributes), 2)
	is.True(!atl.IsFragment)

	is.True(result.Vertices[1].IsFragment)
}

func TestDecodeNeighborRowsWithEdgeEndpoints(t *testing.T) {
	is := is.New(t)

	vals, err := Decode([]byte(`{"results":[{
		"vertex":{"~id":"2","~entityType":"node","~labels":["airport","hub"],"~properties":{}},
		"edges":[{"edge":{"~id":"e1","~entityType":"relationship","~start":"1","~end":"2","~type":"route","~properties":{"dist":809}},
			"sourceTypes":["airport"],"targetTypes":["airport","hub"]}]
	}]}`))
	is.NoErr(err)

	result := values.Map(vals...)
	is.Equal(len(result.Vertices), 1)
	is.Equal(result.Vertices[0].Types, []string{"airport", "hub"})

	is.Equal(len(result.Edges), 1)
	e := result.Edges[0]
	is.Equal(e.Type, "route")
	is.Equal(e.SourceID, ids.FromString[types.VertexID]("1"))
	is.Equal(e.TargetTypes, []string{"airport", "hub"})
	is.Equal(e.Attributes["dist"], int64(809))
	is.Equal(len(result.Scalars), 0)
}

func TestDecodeKeepsRepeatedScalarsInOrder(t *testing.T) {
	is := is.New(t)

	vals, err := Decode([]byte(`{"results":[{"b":2,"a":1},{"b":2,"a":1}]}`))
	is.NoErr(err)

	result := values.Map(vals...)
	is.Equal(result.Scalars, []any{int64(2), int64(1), int64(2), int64(1)})
}

func TestDecodeDropsUnknownEntityTypes(t *testing.T) {
	is := is.New(t)

	vals, err := Decode([]byte(`{"results":[{"p":{"~id":"x","~entityType":"path"}}]}`))
	is.NoErr(err)
	is.Equal(len(values.Map(vals...).Vertices), 0)
}

func TestDecodeNodeWithoutIDIsADecodeError(t *testing.T) {
	is := is.New(t)

	_, err := Decode([]byte(`{"results":[{"v":{"~entityType":"node","~labels":["airport"]}}]}`))
	is.True(errors.Is(err, graphErrors.ErrDecode))
}

func TestDecodeMissingResultsIsADecodeError(t *testing.T) {
	is := is.New(t)

	_, err := Decode([]byte(`{"something":"else"}`))
	is.True(errors.Is(err, graphErrors.ErrDecode))
}

func TestDecodeNeptuneErrorEnvelope(t *testing.T) {
	is := is.New(t)

	_, err := Decode([]byte(`{"requestId":"a1","code":"MalformedQueryException","detailedMessage":"Invalid input 'X'"}`))
	is.True(errors.Is(err, graphErrors.ErrDialect))
	is.Equal(err.Error(), "Invalid input 'X'")
}

func TestDecodeRows(t *testing.T) {
	is := is.New(t)

	rows, err := DecodeRows[edgeLabelRow]([]byte(`{"results":[{"label":"route","count":7}]}`))
	is.NoErr(err)
	is.Equal(rows, []edgeLabelRow{{Label: "route", Count: 7}})

	_, err = DecodeRows[edgeLabelRow]([]byte(`{"results":[{"label":1,"count":"x"}]}`))
	is.True(errors.Is(err, graphErrors.ErrDecode))
}

func TestDecodeNumericNodeIDs(t *testing.T) {
	is := is.New(t)

	vals, err := Decode([]byte(`{"results":[
		{"v":{"~id":12,"~entityType":"node","~labels":["airport"]}},
		{"v":{"~id":99999999999999999999,"~entityType":"node","~labels":["airport"]}}
	]}`))
	is.NoErr(err)

	result := values.Map(vals...)
	is.Equal(len(result.Vertices), 2)
	is.Equal(result.Vertices[0].ID, ids.FromNumber[types.VertexID](12))
	is.Equal(string(result.Vertices[1].ID), "(num)99999999999999999999")
}

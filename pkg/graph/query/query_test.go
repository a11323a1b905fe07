package query

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/diwise/graph-explorer/pkg/graph/ids"
	"github.com/diwise/graph-explorer/pkg/graph/types"
	"github.com/matryer/is"
)

// a minimal syntax that makes the dispatch visible
type testSyntax struct{}

func (testSyntax) StringLiteral(v string) string { return Quote(v) }
func (testSyntax) NumberLiteral(v string) string { return v }
func (testSyntax) DateLiteral(v string) string   { return "date(" + Quote(v) + ")" }
func (testSyntax) Compare(a string, op types.Operator, l string) string {
	return a + " " + string(op) + " " + l
}
func (testSyntax) Contains(a string, v string) string { return a + " contains " + Quote(v) }

func TestEscapeStringNeutralizesQuotesAndBackslashes(t *testing.T) {
	is := is.New(t)

	is.Equal(Quote(`say "hi" \o/`), `"say \"hi\" \\o/"`)
	is.Equal(EscapeString("a\nb"), `a\nb`)
}

func TestEscapeRegex(t *testing.T) {
	is := is.New(t)

	is.Equal(EscapeRegex("a.b*c(d)"), `a\.b\*c\(d\)`)
	is.Equal(EscapeRegex("plain"), "plain")
}

func TestIDLiteralKeepsOrigin(t *testing.T) {
	is := is.New(t)

	is.Equal(IDLiteral(ids.FromNumber[types.VertexID](12), "L"), "12L")
	is.Equal(IDLiteral(ids.FromString[types.VertexID]("12"), "L"), `"12"`)
	is.Equal(IDLiterals([]types.VertexID{ids.FromString[types.VertexID]("a"), ids.FromNumber[types.VertexID](3)}, ""), `"a",3`)
}

func TestWindowOmitsZeroLimit(t *testing.T) {
	is := is.New(t)

	_, _, ok := Window(types.Paging{})
	is.True(!ok)

	_, _, ok = Window(types.Paging{Limit: -1, Offset: 10})
	is.True(!ok)

	start, end, ok := Window(types.Paging{Limit: 10, Offset: 5})
	is.True(ok)
	is.Equal(start, 5)
	is.Equal(end, 15)
}

func TestBatch(t *testing.T) {
	is := is.New(t)

	batches := Batch([]int{1, 2, 3, 4, 5}, 2)
	is.Equal(len(batches), 3)
	is.Equal(batches[2], []int{5})

	is.Equal(len(Batch([]int{}, 2)), 0)
	is.Equal(len(Batch([]int{1, 2}, 0)), 1)
}

func TestSplitTypesRemovesDuplicates(t *testing.T) {
	is := is.New(t)

	is.Equal(SplitTypes([]string{"a::b", "b", "c"}), []string{"a", "b", "c"})
}

func TestNumberCriterion(t *testing.T) {
	is := is.New(t)

	c := types.Criterion{Name: "longest", Operator: types.OperatorGt, Value: "10000", DataType: types.Number}
	is.Equal(Criterion(testSyntax{}, c), "longest gt 10000")
}

func TestIntegerCriteriaKeepEveryDigit(t *testing.T) {
	is := is.New(t)

	c := types.Criterion{Name: "population", Operator: types.OperatorEq, Value: json.Number("9007199254740993"), DataType: types.Number}
	is.Equal(Criterion(testSyntax{}, c), "population eq 9007199254740993")

	c = types.Criterion{Name: "population", Operator: types.OperatorEq, Value: "99999999999999999999"}
	is.Equal(Criterion(testSyntax{}, c), "population eq 99999999999999999999")

	c = types.Criterion{Name: "code", Operator: types.OperatorEq, Value: "007"}
	is.Equal(Criterion(testSyntax{}, c), "code eq 7")
}

func TestNonFiniteNumberDegradesToZero(t *testing.T) {
	is := is.New(t)

	is.Equal(Criterion(testSyntax{}, types.Criterion{Name: "n", Operator: types.OperatorLt, Value: "abc", DataType: types.Number}), "n lt 0")
	is.Equal(Criterion(testSyntax{}, types.Criterion{Name: "n", Operator: types.OperatorLt, Value: math.Inf(1), DataType: types.Number}), "n lt 0")
}

func TestStringCriterionThatIsANumberIsUnquoted(t *testing.T) {
	is := is.New(t)

	is.Equal(Criterion(testSyntax{}, types.Criterion{Name: "runways", Operator: types.OperatorEq, Value: "3"}), "runways eq 3")
	is.Equal(Criterion(testSyntax{}, types.Criterion{Name: "code", Operator: types.OperatorEq, Value: "3a"}), `code eq "3a"`)
	is.Equal(Criterion(testSyntax{}, types.Criterion{Name: "code", Operator: types.OperatorEq, Value: "NaN"}), `code eq "NaN"`)
}

func TestLikeRendersContains(t *testing.T) {
	is := is.New(t)

	is.Equal(Criterion(testSyntax{}, types.Criterion{Name: "country", Operator: types.OperatorLike, Value: "ES"}), `country contains "ES"`)
}

func TestLikeOnNumbersIsEq(t *testing.T) {
	is := is.New(t)

	is.Equal(Criterion(testSyntax{}, types.Criterion{Name: "n", Operator: types.OperatorLike, Value: 3.0, DataType: types.Number}), "n eq 3")
}

func TestDateCriterion(t *testing.T) {
	is := is.New(t)

	c := types.Criterion{Name: "opened", Operator: types.OperatorGte, Value: "2020-01-01T00:00:00Z", DataType: types.Date}
	is.Equal(Criterion(testSyntax{}, c), `opened gte date("2020-01-01T00:00:00Z")`)
}

func TestUnknownOperatorIsEq(t *testing.T) {
	is := is.New(t)

	is.Equal(Criterion(testSyntax{}, types.Criterion{Name: "code", Operator: "between", Value: "x"}), `code eq "x"`)
	is.Equal(Criterion(testSyntax{}, types.Criterion{Name: "code", Operator: "GT", Value: "x"}), `code gt "x"`)
}

func TestIDLiteralRendersIntegersBeyondInt64Unquoted(t *testing.T) {
	is := is.New(t)

	id := ids.New[types.VertexID](json.Number("99999999999999999999"))

	is.Equal(IDLiteral(id, "L"), "99999999999999999999L")
}

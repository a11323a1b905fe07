package graph

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/diwise/graph-explorer/pkg/graph/types"
	"github.com/matryer/is"
)

func TestNeighborCountsSplitCompositeLabels(t *testing.T) {
	is := is.New(t)

	nc := NewNeighborCounts("(num)12", []LabelCount{
		{Label: "airport", Count: 3},
		{Label: "airport::hub", Count: 2},
	})

	is.Equal(nc.TotalCount, int64(5))
	is.Equal(nc.Counts["airport"], int64(5))
	is.Equal(nc.Counts["hub"], int64(2))
}

func TestAttributesOfAreSortedAndTyped(t *testing.T) {
	is := is.New(t)

	schema := AttributesOf(types.Attributes{
		"runways": int64(4),
		"code":    "JFK",
		"opened":  time.Date(1948, 7, 1, 0, 0, 0, 0, time.UTC),
	})

	is.Equal(schema, []AttributeSchema{
		{Name: "code", DataType: types.String},
		{Name: "opened", DataType: types.Date},
		{Name: "runways", DataType: types.Number},
	})
}

func TestFanOutKeepsInputOrder(t *testing.T) {
	is := is.New(t)

	results, err := FanOut(context.Background(), []int{3, 1, 2}, 2, func(ctx context.Context, n int) (int, error) {
		time.Sleep(time.Duration(n) * time.Millisecond)
		return n * 10, nil
	})

	is.NoErr(err)
	is.Equal(results, []int{30, 10, 20})
}

func TestFanOutRespectsLimit(t *testing.T) {
	is := is.New(t)

	var inFlight, maxInFlight atomic.Int32

	_, err := FanOut(context.Background(), make([]int, 10), 3, func(ctx context.Context, _ int) (int, error) {
		n := inFlight.Add(1)
		for {
			m := maxInFlight.Load()
			if n <= m || maxInFlight.CompareAndSwap(m, n) {
				break
			}
		}
		time.Sleep(time.Millisecond)
		inFlight.Add(-1)
		return 0, nil
	})

	is.NoErr(err)
	is.True(maxInFlight.Load() <= 3)
}

func TestFanOutReturnsFirstError(t *testing.T) {
	is := is.New(t)

	boom := errors.New("boom")

	results, err := FanOut(context.Background(), []int{1, 2, 3}, 0, func(ctx context.Context, n int) (int, error) {
		if n == 2 {
			return 0, boom
		}
		return n, nil
	})

	is.True(errors.Is(err, boom))
	is.Equal(results, nil)
}

package metrics

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	reqhttp "github.com/wesleyorama2/reqspec/http"
)

type stubTransport struct {
	err error
}

func (s stubTransport) Exchange(ctx context.Context, req *reqhttp.ResolvedRequest) (*reqhttp.Response, error) {
	if s.err != nil {
		return nil, s.err
	}
	return reqhttp.NewResponse(http.StatusOK, nil, []byte("0123456789")), nil
}

func assertDurationNear(t *testing.T, expected, actual time.Duration) {
	t.Helper()
	assert.InEpsilon(t, float64(expected), float64(actual), 0.01, "expected ~%v, got %v", expected, actual)
}

func TestLatencyRecorder_Summary(t *testing.T) {
	r := NewLatencyRecorder()
	for i := 1; i <= 100; i++ {
		r.Record(time.Duration(i)*time.Millisecond, 1)
	}

	s := r.Summary()
	assert.EqualValues(t, 100, s.Count)
	assert.EqualValues(t, 100, s.Bytes)
	assert.Zero(t, s.Failures)
	assertDurationNear(t, time.Millisecond, s.Min)
	assertDurationNear(t, 100*time.Millisecond, s.Max)
	assertDurationNear(t, 50500*time.Microsecond, s.Mean)
	assertDurationNear(t, 50*time.Millisecond, s.P50)
	assertDurationNear(t, 90*time.Millisecond, s.P90)
	assertDurationNear(t, 99*time.Millisecond, s.P99)
}

func TestLatencyRecorder_EmptyAndReset(t *testing.T) {
	r := NewLatencyRecorder()
	assert.Equal(t, Summary{}, r.Summary())

	r.Record(0, 0)
	r.Record(2*time.Hour, 0)
	assert.EqualValues(t, 2, r.Summary().Count)

	r.Reset()
	assert.Equal(t, Summary{}, r.Summary())
}

func TestLatencyRecorder_AsObserver(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	clock := func() time.Time {
		// Each exchange takes 250ms: start at tick*250ms, end one step later.
		now := base.Add(time.Duration(tick) * 250 * time.Millisecond)
		tick++
		return now
	}

	r := NewLatencyRecorder()
	d := reqhttp.NewDispatcher(
		reqhttp.WithTransport(stubTransport{}),
		reqhttp.WithClock(clock),
		reqhttp.WithObserver(r),
	)

	spec := reqhttp.NewRequestSpecFor("GET", "https://api.example.com/ping")
	req, err := spec.Resolve()
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := d.Dispatch(context.Background(), req)
		require.NoError(t, err)
	}

	failing := reqhttp.NewDispatcher(reqhttp.WithTransport(stubTransport{err: errors.New("down")}), reqhttp.WithObserver(r))
	_, err = failing.Dispatch(context.Background(), req)
	require.Error(t, err)

	s := r.Summary()
	assert.EqualValues(t, 3, s.Count)
	assert.EqualValues(t, 1, s.Failures)
	assert.EqualValues(t, 30, s.Bytes)
	assertDurationNear(t, 250*time.Millisecond, s.P99)
}

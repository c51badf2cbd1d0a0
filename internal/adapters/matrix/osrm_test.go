package matrix

import (
	"context"
	"delivery-itinerary-service/internal/domain"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-polyline"
)

func threeLocations() []domain.Location {
	return []domain.Location{
		{Index: 0, Coord: domain.Coordinates{Lat: 32.7767, Lon: -96.797}},
		{Index: 1, Coord: domain.Coordinates{Lat: 32.9483, Lon: -96.7299}},
		{Index: 2, Coord: domain.Coordinates{Lat: 32.7357, Lon: -97.1081}},
	}
}

const tableBody = `{
  "code": "Ok",
  "durations": [[0, 600, 1200], [660, 0, 900], [1260, 960, 0]],
  "distances": [[0, 10000, 20000], [11000, 0, 15000], [21000, 16000, 0]]
}`

func newTestOSRM(t *testing.T, url string) *OSRM {
	t.Helper()
	o, err := NewOSRM(url, WithRetry(2, time.Millisecond), WithTimeout(2*time.Second))
	require.NoError(t, err)
	return o
}

func TestOSRMBuildParsesTable(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		fmt.Fprint(w, tableBody)
	}))
	defer srv.Close()

	m, err := newTestOSRM(t, srv.URL).Build(context.Background(), threeLocations())
	require.NoError(t, err)

	assert.Equal(t, "/table/v1/car/-96.797,32.7767;-96.7299,32.9483;-97.1081,32.7357", gotPath)
	assert.Contains(t, gotQuery, "annotations=duration,distance")

	tm, _ := m.Time.At(0, 1)
	assert.InDelta(t, 10.0, tm, 1e-9)
	tm, _ = m.Time.At(1, 0)
	assert.InDelta(t, 11.0, tm, 1e-9, "road matrices may be directional")

	d, _ := m.Distance.At(2, 1)
	assert.InDelta(t, 16.0, d, 1e-9)
}

func TestOSRMBuildNonSuccessIsServiceUnavailable(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "bad coordinates", http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := newTestOSRM(t, srv.URL).Build(context.Background(), threeLocations())
	require.ErrorIs(t, err, domain.ErrServiceUnavailable)
	assert.Equal(t, int32(1), calls.Load(), "4xx must not be retried")
}

func TestOSRMBuildRetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, tableBody)
	}))
	defer srv.Close()

	m, err := newTestOSRM(t, srv.URL).Build(context.Background(), threeLocations())
	require.NoError(t, err)
	assert.Equal(t, 3, m.Time.Size())
	assert.Equal(t, int32(3), calls.Load())
}

func TestOSRMBuildGivesUpAfterRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newTestOSRM(t, srv.URL).Build(context.Background(), threeLocations())
	require.ErrorIs(t, err, domain.ErrServiceUnavailable)
	assert.Equal(t, int32(3), calls.Load(), "one attempt plus two retries")
}

func TestOSRMBuildRejectsBadPayloads(t *testing.T) {
	cases := map[string]string{
		"error code": `{"code":"InvalidQuery","message":"nope"}`,
		"null cell":  `{"code":"Ok","durations":[[0,null,1],[1,0,1],[1,1,0]],"distances":[[0,1,1],[1,0,1],[1,1,0]]}`,
		"short row":  `{"code":"Ok","durations":[[0,1],[1,0,1],[1,1,0]],"distances":[[0,1,1],[1,0,1],[1,1,0]]}`,
		"no json":    `<html>`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, body)
			}))
			defer srv.Close()

			_, err := newTestOSRM(t, srv.URL).Build(context.Background(), threeLocations())
			require.ErrorIs(t, err, domain.ErrServiceUnavailable)
		})
	}
}

func TestOSRMBuildCancellationIsNotServiceUnavailable(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := newTestOSRM(t, srv.URL).Build(ctx, threeLocations())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.NotErrorIs(t, err, domain.ErrServiceUnavailable)
}

func TestOSRMBuildSkipsRequestForTrivialSets(t *testing.T) {
	o, err := NewOSRM("http://127.0.0.1:1")
	require.NoError(t, err)

	m, err := o.Build(context.Background(), threeLocations()[:1])
	require.NoError(t, err)
	assert.Equal(t, 1, m.Distance.Size())
}

func TestOSRMRoute(t *testing.T) {
	geometry := string(polyline.EncodeCoords([][]float64{
		{32.7767, -96.797},
		{32.8, -96.77},
		{32.9483, -96.7299},
	}))

	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		fmt.Fprintf(w, `{"code":"Ok","routes":[{"geometry":%q,"distance":20123.4}],
			"waypoints":[{"location":[-96.797,32.7767]},{"location":[-96.7299,32.9483]}]}`, geometry)
	}))
	defer srv.Close()

	from := domain.Coordinates{Lat: 32.7767, Lon: -96.797}
	to := domain.Coordinates{Lat: 32.9483, Lon: -96.7299}

	leg, err := newTestOSRM(t, srv.URL).Route(context.Background(), from, to)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(gotPath, "/route/v1/car/"))
	assert.Equal(t, 20123.4, leg.DistanceMeters)
	assert.Equal(t, from, leg.Start)
	assert.Equal(t, to, leg.End)
	require.Len(t, leg.Path, 3)
	assert.InDelta(t, 32.8, leg.Path[1].Lat, 1e-5)
	assert.InDelta(t, -96.77, leg.Path[1].Lon, 1e-5)
}

func TestOSRMRouteNonSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newTestOSRM(t, srv.URL).Route(context.Background(), domain.Coordinates{}, domain.Coordinates{Lat: 1})
	require.ErrorIs(t, err, domain.ErrServiceUnavailable)
}

package matrix

import (
	"context"
	"delivery-itinerary-service/internal/domain"
	"delivery-itinerary-service/internal/platform/obs"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultOSRMBaseURL = "http://router.project-osrm.org"
	DefaultOSRMProfile = "car"
)

// OSRM builds road-network matrices from an OSRM-compatible table service
// and fetches per-leg geometry from its route service.
//
// One table request is issued per Build call. Failures after retries are
// reported as domain.ErrServiceUnavailable; falling back is left to the caller.
//
// The builder is safe for concurrent use.
type OSRM struct {
	session        *http.Client
	baseURL        string
	profile        string
	maxRetries     int
	initialBackoff time.Duration
}

type OSRMOption func(*OSRM)

// WithHTTPClient overrides the default HTTP client (and its timeout).
func WithHTTPClient(client *http.Client) OSRMOption {
	return func(o *OSRM) {
		if client != nil {
			o.session = client
		}
	}
}

func WithTimeout(d time.Duration) OSRMOption {
	return func(o *OSRM) {
		if d > 0 {
			o.session.Timeout = d
		}
	}
}

func WithProfile(profile string) OSRMOption {
	return func(o *OSRM) {
		if p := strings.TrimSpace(profile); p != "" {
			o.profile = p
		}
	}
}

// WithRetry bounds retries of transient failures; 0 disables retrying.
func WithRetry(maxRetries int, initialBackoff time.Duration) OSRMOption {
	return func(o *OSRM) {
		if maxRetries >= 0 {
			o.maxRetries = maxRetries
		}
		if initialBackoff > 0 {
			o.initialBackoff = initialBackoff
		}
	}
}

func NewOSRM(baseURL string, opts ...OSRMOption) (*OSRM, error) {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		base = DefaultOSRMBaseURL
	}
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("new osrm: base url %q: %w", baseURL, err)
	}

	o := &OSRM{
		session:        &http.Client{Timeout: 10 * time.Second},
		baseURL:        base,
		profile:        DefaultOSRMProfile,
		maxRetries:     3,
		initialBackoff: 200 * time.Millisecond,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}

	return o, nil
}

func (o *OSRM) Name() string {
	return "osrm:" + o.profile
}

type tableResponse struct {
	Code      string       `json:"code"`
	Message   string       `json:"message"`
	Durations [][]*float64 `json:"durations"`
	Distances [][]*float64 `json:"distances"`
}

// Build fetches the full N×N duration and distance tables in one request.
// Durations (seconds) become minutes; distances (metres) become kilometres.
func (o *OSRM) Build(ctx context.Context, locations []domain.Location) (_ domain.Matrices, err error) {
	defer obs.Time(ctx, "osrm.table")(&err)

	n := len(locations)
	if n < 2 {
		return domain.Matrices{Distance: domain.NewMatrix(n), Time: domain.NewMatrix(n)}, nil
	}

	endpoint := fmt.Sprintf("%s/table/v1/%s/%s?annotations=duration,distance",
		o.baseURL, o.profile, coordinatePath(locations))

	resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
		return o.newRequest(ctx, endpoint)
	})
	if err != nil {
		return domain.Matrices{}, o.unavailable(ctx, "table request", err)
	}
	defer resp.Body.Close()

	var tr tableResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return domain.Matrices{}, o.unavailable(ctx, "decode table response", err)
	}

	if tr.Code != "Ok" {
		return domain.Matrices{}, o.unavailable(ctx, "table response",
			fmt.Errorf("code %q: %s", tr.Code, tr.Message))
	}

	durations, err := squareMatrix(tr.Durations, n, 1.0/60)
	if err != nil {
		return domain.Matrices{}, o.unavailable(ctx, "table durations", err)
	}
	distances, err := squareMatrix(tr.Distances, n, 1.0/1000)
	if err != nil {
		return domain.Matrices{}, o.unavailable(ctx, "table distances", err)
	}

	return domain.Matrices{Distance: distances, Time: durations}, nil
}

// unavailable classifies a failure; caller cancellation is passed through
// untouched so fallbacks never mask it.
func (o *OSRM) unavailable(ctx context.Context, op string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
		return fmt.Errorf("osrm %s: %w", op, err)
	}
	return fmt.Errorf("osrm %s: %w: %w", op, domain.ErrServiceUnavailable, err)
}

func coordinatePath(locations []domain.Location) string {
	parts := make([]string, 0, len(locations))
	for _, l := range locations {
		parts = append(parts, l.Coord.LonLat())
	}
	return strings.Join(parts, ";")
}

// squareMatrix validates an n×n table and scales every value.
// A null cell means the service found no route for that pair.
func squareMatrix(rows [][]*float64, n int, scale float64) (domain.Matrix, error) {
	if len(rows) != n {
		return domain.Matrix{}, fmt.Errorf("expected %d rows, got %d", n, len(rows))
	}

	m := domain.NewMatrix(n)
	for i, row := range rows {
		if len(row) != n {
			return domain.Matrix{}, fmt.Errorf("row %d: expected %d columns, got %d", i, n, len(row))
		}
		for j, v := range row {
			if v == nil {
				return domain.Matrix{}, fmt.Errorf("no route from location %d to %d", i, j)
			}
			m.Set(i, j, *v*scale)
		}
	}

	return m, nil
}

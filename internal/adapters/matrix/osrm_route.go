package matrix

import (
	"context"
	"delivery-itinerary-service/internal/domain"
	"delivery-itinerary-service/internal/platform/obs"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/twpayne/go-polyline"
)

type routeResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Geometry string  `json:"geometry"`
		Distance float64 `json:"distance"`
	} `json:"routes"`
	Waypoints []struct {
		Location []float64 `json:"location"`
	} `json:"waypoints"`
}

// Route fetches the road geometry for one leg.
func (o *OSRM) Route(ctx context.Context, from, to domain.Coordinates) (_ *domain.LegRoute, err error) {
	defer obs.Time(ctx, "osrm.route")(&err)

	endpoint := fmt.Sprintf("%s/route/v1/%s/%s;%s?overview=full&geometries=polyline",
		o.baseURL, o.profile, from.LonLat(), to.LonLat())

	resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
		return o.newRequest(ctx, endpoint)
	})
	if err != nil {
		return nil, o.unavailable(ctx, "route request", err)
	}
	defer resp.Body.Close()

	var rr routeResponse
	if err := json.NewDecoder(resp.Body).Decode(&rr); err != nil {
		return nil, o.unavailable(ctx, "decode route response", err)
	}

	if rr.Code != "Ok" || len(rr.Routes) == 0 {
		return nil, o.unavailable(ctx, "route response", fmt.Errorf("code %q with %d routes", rr.Code, len(rr.Routes)))
	}
	if len(rr.Waypoints) < 2 || len(rr.Waypoints[0].Location) != 2 || len(rr.Waypoints[1].Location) != 2 {
		return nil, o.unavailable(ctx, "route response", fmt.Errorf("expected two [lon,lat] waypoints"))
	}

	coords, _, err := polyline.DecodeCoords([]byte(rr.Routes[0].Geometry))
	if err != nil {
		return nil, fmt.Errorf("osrm route: decode geometry: %w", err)
	}

	// Polyline points are [lat, lon]; waypoints are [lon, lat].
	path := make([]domain.Coordinates, 0, len(coords))
	for _, c := range coords {
		path = append(path, domain.Coordinates{Lat: c[0], Lon: c[1]})
	}

	return &domain.LegRoute{
		Path:           path,
		Start:          domain.Coordinates{Lon: rr.Waypoints[0].Location[0], Lat: rr.Waypoints[0].Location[1]},
		End:            domain.Coordinates{Lon: rr.Waypoints[1].Location[0], Lat: rr.Waypoints[1].Location[1]},
		DistanceMeters: rr.Routes[0].Distance,
	}, nil
}

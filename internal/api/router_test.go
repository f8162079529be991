package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"wind-route-service/internal/adapters/cache"
	"wind-route-service/internal/adapters/forecast"
	"wind-route-service/internal/adapters/repositories"
	"wind-route-service/internal/api/dto"
	"wind-route-service/internal/domain"
	"wind-route-service/internal/ports"
	"wind-route-service/internal/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var validAt = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

func testForecast(t *testing.T) *domain.Forecast {
	t.Helper()
	grid := domain.GridMapping{
		Origin:   domain.GeoCoordinate{Lat: 54.0, Lon: 18.0},
		LatStep:  0.1,
		LonStep:  0.1,
		LatCount: 8,
		LonCount: 8,
	}
	// Goal cell (6,6) is enclosed by land.
	var ring []domain.GridPoint
	for x := 5; x <= 7; x++ {
		for y := 5; y <= 7; y++ {
			if x != 6 || y != 6 {
				ring = append(ring, domain.GridPoint{X: x, Y: y})
			}
		}
	}
	mask := domain.AllNavigable(8, 8).WithBlocked(ring...)
	f, err := domain.NewForecast(grid, domain.UniformWindField(8, 8, domain.WindVector{U: 5, V: 3}), mask, validAt, "test")
	require.NoError(t, err)
	return f
}

func newTestRouter(t *testing.T, provider ports.ForecastProvider) http.Handler {
	t.Helper()
	return NewRouter(Dependencies{
		Forecasts: provider,
		Vessels:   repositories.NewMemoryVesselRepository(repositories.BuiltinFleet),
		Routes:    cache.NewMemoryRouteCache(8, time.Hour),
		Search:    services.DefaultSearchSettings(),
	})
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthAndRequestID(t *testing.T) {
	h := newTestRouter(t, forecast.NewStaticProvider(testForecast(t)))

	rec := do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	_, err := uuid.Parse(rec.Header().Get("X-Request-ID"))
	assert.NoError(t, err)

	rec = do(t, h, http.MethodPost, "/health", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, http.MethodGet, rec.Header().Get("Allow"))
}

func TestRequestIDIsPropagated(t *testing.T) {
	h := newTestRouter(t, forecast.NewStaticProvider(testForecast(t)))
	id := uuid.NewString()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", id)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, id, rec.Header().Get("X-Request-ID"))
}

func TestCORSPreflight(t *testing.T) {
	h := newTestRouter(t, forecast.NewStaticProvider(testForecast(t)))

	req := httptest.NewRequest(http.MethodOptions, "/api/solve", nil)
	req.Header.Set("Origin", "http://chart.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Content-Type")
}

func TestListVessels(t *testing.T) {
	h := newTestRouter(t, forecast.NewStaticProvider(testForecast(t)))

	rec := do(t, h, http.MethodGet, "/api/vessels", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var res dto.ListVesselsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Len(t, res.Vessels, len(repositories.BuiltinFleet))
}

func TestForecastMeta(t *testing.T) {
	h := newTestRouter(t, forecast.NewStaticProvider(testForecast(t)))

	rec := do(t, h, http.MethodGet, "/api/forecast/meta?at=2026-05-01T12:30:00Z", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var res dto.ForecastMetaResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, 8, res.LatCount)
	assert.Equal(t, "test", res.Source)
	assert.True(t, res.ValidAt.Equal(validAt))
	assert.InDelta(t, 54.7, res.NorthEast.Lat, 1e-9)

	rec = do(t, h, http.MethodGet, "/api/forecast/meta?at=yesterday", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, newTestRouter(t, forecast.NewStaticProvider(nil)), http.MethodGet, "/api/forecast/meta", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestSolveFound(t *testing.T) {
	h := newTestRouter(t, forecast.NewStaticProvider(testForecast(t)))
	body := `{"origin":{"lat":54.0,"lon":18.0},"goal":{"lat":54.3,"lon":18.4},"vessel":"motor-cruiser","depart_at":"2026-05-01T12:00:00Z"}`

	rec := do(t, h, http.MethodPost, "/api/solve", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res dto.SolveResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "found", res.Status)
	assert.Equal(t, "motor-cruiser", res.Vessel)
	require.NotEmpty(t, res.Path)
	assert.Equal(t, [2]int{0, 0}, res.Path[0])
	assert.Equal(t, [2]int{3, 4}, res.Path[len(res.Path)-1])
	assert.Len(t, res.Waypoints, len(res.Path))
	require.NotNil(t, res.TotalCost)
	assert.Positive(t, *res.TotalCost)
	assert.False(t, res.Cached)

	rec = do(t, h, http.MethodPost, "/api/solve", body)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.True(t, res.Cached)
}

func TestSolveNoRoute(t *testing.T) {
	h := newTestRouter(t, forecast.NewStaticProvider(testForecast(t)))
	body := `{"origin":{"lat":54.0,"lon":18.0},"goal":{"lat":54.6,"lon":18.6}}`

	rec := do(t, h, http.MethodPost, "/api/solve", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res dto.SolveResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "no_route", res.Status)
	assert.Equal(t, domain.DefaultVesselName, res.Vessel)
	assert.Nil(t, res.TotalCost)
	assert.Empty(t, res.Path)
	assert.Contains(t, rec.Body.String(), `"total_cost":null`)
}

func TestSolveErrors(t *testing.T) {
	h := newTestRouter(t, forecast.NewStaticProvider(testForecast(t)))

	cases := []struct {
		name   string
		method string
		body   string
		want   int
	}{
		{"wrong method", http.MethodGet, "", http.StatusMethodNotAllowed},
		{"invalid json", http.MethodPost, `{"origin":`, http.StatusBadRequest},
		{"unknown field", http.MethodPost, `{"origin":{"lat":54,"lon":18},"goal":{"lat":54,"lon":18},"speed":3}`, http.StatusBadRequest},
		{"two objects", http.MethodPost, `{"origin":{"lat":54,"lon":18},"goal":{"lat":54,"lon":18}}{}`, http.StatusBadRequest},
		{"missing lon", http.MethodPost, `{"origin":{"lat":54},"goal":{"lat":54,"lon":18}}`, http.StatusBadRequest},
		{"latitude out of range", http.MethodPost, `{"origin":{"lat":91,"lon":18},"goal":{"lat":54,"lon":18}}`, http.StatusBadRequest},
		{"unknown vessel", http.MethodPost, `{"origin":{"lat":54,"lon":18},"goal":{"lat":54.2,"lon":18.2},"vessel":"ark"}`, http.StatusBadRequest},
		{"outside forecast", http.MethodPost, `{"origin":{"lat":10,"lon":10},"goal":{"lat":54.2,"lon":18.2}}`, http.StatusUnprocessableEntity},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, h, tc.method, "/api/solve", tc.body)
			assert.Equal(t, tc.want, rec.Code, rec.Body.String())
		})
	}
}

func TestSolveForecastUnavailable(t *testing.T) {
	h := newTestRouter(t, forecast.NewStaticProvider(nil))

	rec := do(t, h, http.MethodPost, "/api/solve", `{"origin":{"lat":54,"lon":18},"goal":{"lat":54.2,"lon":18.2}}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

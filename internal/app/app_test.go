package app

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Nazarious-ucu/weather-widget/internal/config"
	metricsSvc "github.com/Nazarious-ucu/weather-widget/internal/services/metrics"
	"github.com/Nazarious-ucu/weather-widget/internal/widget"
)

// fakeProvider answers like weatherapi.com for Paris and 400s for anything else.
func fakeProvider(t *testing.T, calls *atomic.Int32) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/current.json", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.URL.Query().Get("q") != "Paris" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = fmt.Fprint(w, `{"error":{"code":1006,"message":"No matching location found."}}`)
			return
		}
		_, _ = fmt.Fprint(w, `{"location":{"name":"Paris"},"current":{"temp_c":22,"condition":{"text":"Sunny"}}}`)
	})
	mux.HandleFunc("/v1/forecast.json", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = fmt.Fprint(w, `{"forecast":{"forecastday":[
			{"date":"2024-06-01","day":{"avgtemp_c":20.3}},
			{"date":"2024-06-02","day":{"avgtemp_c":18}}]}}`)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(providerURL, apiKey string) config.Config {
	cfg := config.Config{
		WeatherAPIKey: apiKey,
		WeatherAPIURL: providerURL + "/v1",
	}
	cfg.Server.Host = "localhost"
	cfg.Server.Port = "0"
	cfg.Breaker.TimeInterval = 30
	cfg.Breaker.TimeTimeOut = 10
	cfg.Breaker.RepeatNumber = 5
	cfg.RateLimit.RPS = 100
	cfg.RateLimit.Burst = 10
	cfg.Widget.ForecastDays = 7
	cfg.Widget.FetchTimeout = 5
	return cfg
}

func newTestContainer(t *testing.T, cfg config.Config) ServiceContainer {
	t.Helper()

	a := New(cfg, zerolog.Nop(), metricsSvc.NewMetrics("app_test"))
	sc := a.init(zap.NewNop())
	t.Cleanup(sc.Registry.Close)
	return sc
}

func doJSON(t *testing.T, sc ServiceContainer, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	sc.Router.ServeHTTP(rec, req)
	return rec
}

func mountWidget(t *testing.T, sc ServiceContainer) string {
	t.Helper()
	rec := doJSON(t, sc, http.MethodPost, "/api/widgets", "")
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.ID
}

func TestWidgetFlow(t *testing.T) {
	var calls atomic.Int32
	provider := fakeProvider(t, &calls)
	sc := newTestContainer(t, testConfig(provider.URL, "test-key"))

	id := mountWidget(t, sc)

	rec := doJSON(t, sc, http.MethodPost, "/api/widgets/"+id+"/search", `{"location":"Paris"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	ctrl, err := sc.Registry.Get(id)
	require.NoError(t, err)
	ctrl.Wait()

	view := ctrl.Render()
	require.NotNil(t, view.Current)
	assert.Equal(t, "Paris", view.Current.LocationName)
	assert.Len(t, view.Forecast, 2)

	rec = doJSON(t, sc, http.MethodPost, "/api/widgets/"+id+"/search", `{"location":"Atlantis"}`)
	require.Equal(t, http.StatusNotFound, rec.Code)

	var failed widget.View
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &failed))
	assert.Equal(t, widget.MsgCityNotFound, failed.Error)
	assert.Nil(t, failed.Current)

	rec = doJSON(t, sc, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `weather_widget_provider_operations_total{operation="current",result="success"} 1`)
	assert.Contains(t, rec.Body.String(), `weather_widget_provider_operations_total{operation="current",result="not_found"} 1`)
	assert.Contains(t, rec.Body.String(), "app_test_widget_sessions 1")
}

func TestWidgetFlow_MissingAPIKey(t *testing.T) {
	var calls atomic.Int32
	provider := fakeProvider(t, &calls)
	sc := newTestContainer(t, testConfig(provider.URL, ""))

	id := mountWidget(t, sc)

	rec := doJSON(t, sc, http.MethodPost, "/api/widgets/"+id+"/search", `{"location":"Paris"}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, int32(0), calls.Load())
}

func TestWidgetFlow_DefaultLocation(t *testing.T) {
	var calls atomic.Int32
	provider := fakeProvider(t, &calls)
	cfg := testConfig(provider.URL, "test-key")
	cfg.Widget.DefaultLocation = "Paris"
	sc := newTestContainer(t, cfg)

	rec := doJSON(t, sc, http.MethodPost, "/api/widgets", "")
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		View widget.View `json:"view"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.View.Current)
	assert.Equal(t, "Paris", resp.View.Current.LocationName)
}

package http_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	httpadapter "github.com/couchcryptid/office-market-explorer/internal/adapter/http"
	"github.com/couchcryptid/office-market-explorer/internal/adapter/source"
	"github.com/couchcryptid/office-market-explorer/internal/explorer"
	"github.com/couchcryptid/office-market-explorer/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixturePath = filepath.Join("..", "..", "..", "data", "mock", "market_data.json")

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newExplorer(t *testing.T, path string, load bool) *explorer.Explorer {
	t.Helper()
	exp := explorer.New(source.NewFileSource(path), nil, discardLogger(), observability.NewMetricsForTesting(), 16)
	if load {
		require.NoError(t, exp.Load(context.Background()))
	}
	return exp
}

func newTestServer(t *testing.T) *httpadapter.Server {
	t.Helper()
	return httpadapter.NewServer(":0", newExplorer(t, fixturePath, true), discardLogger())
}

func serve(srv *httpadapter.Server, method, target, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(method, target, r))
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestHealthzReturns200(t *testing.T) {
	rec := serve(newTestServer(t), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", decode[map[string]string](t, rec)["status"])
}

func TestReadyzReturns200WhenLoaded(t *testing.T) {
	rec := serve(newTestServer(t), http.MethodGet, "/readyz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ready", decode[map[string]string](t, rec)["status"])
}

func TestReadyzReturns503BeforeLoad(t *testing.T) {
	srv := httpadapter.NewServer(":0", newExplorer(t, fixturePath, false), discardLogger())
	rec := serve(srv, http.MethodGet, "/readyz", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	body := decode[map[string]string](t, rec)
	assert.Equal(t, "not ready", body["status"])
	assert.Equal(t, explorer.ErrNotLoaded.Error(), body["error"])
}

func TestMetricsEndpoint(t *testing.T) {
	rec := serve(newTestServer(t), http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestView_DefaultSelection(t *testing.T) {
	rec := serve(newTestServer(t), http.MethodGet, "/api/view", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	v := decode[explorer.View](t, rec)
	assert.Equal(t, "Czech Republic", v.Selection.Country)
	assert.Equal(t, "Prague", v.Selection.City)
	assert.Equal(t, "Q4 2023", v.Selection.Period)
	assert.Equal(t, "Prague — Q4 2023 — City total", v.Title)
	assert.False(t, v.NoData)
	assert.Equal(t, []string{"Q4 2023", "Q1 2024", "Q2 2024"}, v.Options.Periods)

	values := map[string]string{}
	for _, row := range v.Market {
		values[string(row.Metric)] = row.Value
	}
	assert.Equal(t, "7.90%", values["vacancyRate"])
	assert.Equal(t, "3,800,000", values["totalStock"])
}

func TestView_StaleSelectionIsCorrected(t *testing.T) {
	rec := serve(newTestServer(t), http.MethodGet,
		"/api/view?country=Czech+Republic&city=Brno&period=Q2+2024&submarket=Prague+1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	v := decode[explorer.View](t, rec)
	assert.Equal(t, "Brno", v.Selection.City)
	assert.Equal(t, "Q1 2024", v.Selection.Period)
	assert.Empty(t, v.Selection.Submarket)
}

func TestView_NoData(t *testing.T) {
	rec := serve(newTestServer(t), http.MethodGet, "/api/view?country=Poland&city=Warsaw", "")
	require.Equal(t, http.StatusOK, rec.Code)

	v := decode[explorer.View](t, rec)
	assert.True(t, v.NoData)
	assert.Empty(t, v.Market)
	assert.Empty(t, v.Leasing)
}

func TestView_NotLoaded(t *testing.T) {
	srv := httpadapter.NewServer(":0", newExplorer(t, fixturePath, false), discardLogger())
	rec := serve(srv, http.MethodGet, "/api/view", "")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	body := decode[map[string]string](t, rec)
	assert.Equal(t, explorer.ErrNotLoaded.Error(), body["error"])
}

func TestView_LoadFailed(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.json")
	exp := newExplorer(t, missing, false)
	require.Error(t, exp.Load(context.Background()))

	srv := httpadapter.NewServer(":0", exp, discardLogger())
	rec := serve(srv, http.MethodGet, "/api/view", "")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	body := decode[map[string]string](t, rec)
	assert.Contains(t, body["error"], "missing.json")

	assert.Equal(t, http.StatusServiceUnavailable, serve(srv, http.MethodGet, "/readyz", "").Code)
}

func TestSelect_CountryCascades(t *testing.T) {
	body := `{"state":{"country":"Czech Republic","city":"Prague","period":"Q4 2023","submarket":""},
		"event":{"kind":"select_country","value":"Hungary"}}`
	rec := serve(newTestServer(t), http.MethodPost, "/api/select", body)
	require.Equal(t, http.StatusOK, rec.Code)

	res := decode[explorer.SelectResult](t, rec)
	assert.Equal(t, "Hungary", res.Selection.Country)
	assert.Equal(t, "Budapest", res.Selection.City)
	assert.Equal(t, "Q3 2023", res.Selection.Period)
	assert.Equal(t, []string{"Budapest"}, res.Options.Cities)
}

func TestSelect_UnknownEventKind(t *testing.T) {
	body := `{"state":{},"event":{"kind":"select_galaxy","value":"x"}}`
	rec := serve(newTestServer(t), http.MethodPost, "/api/select", body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode[map[string]string](t, rec)["error"], "select_galaxy")
}

func TestSelect_MalformedBody(t *testing.T) {
	rec := serve(newTestServer(t), http.MethodPost, "/api/select", `{"state":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, decode[map[string]string](t, rec)["error"], "invalid request body")
}

func TestTrend(t *testing.T) {
	rec := serve(newTestServer(t), http.MethodGet,
		"/api/trend?country=Czech+Republic&city=Prague&metric=primeRentEurSqmMonth", "")
	require.Equal(t, http.StatusOK, rec.Code)

	series := decode[explorer.Series](t, rec)
	assert.Equal(t, "Prague", series.Label)
	require.Len(t, series.Points, 3)
	assert.Equal(t, "Q4 2023", series.Points[0].Period)
	assert.Equal(t, "28.00", series.Points[0].Formatted)
	assert.Equal(t, "28.50", series.Points[1].Formatted)
	assert.Equal(t, "29.00", series.Points[2].Formatted)
}

func TestTrend_UnknownMetric(t *testing.T) {
	rec := serve(newTestServer(t), http.MethodGet, "/api/trend?country=Hungary&city=Budapest&metric=weather", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTrend_MissingMetric(t *testing.T) {
	rec := serve(newTestServer(t), http.MethodGet, "/api/trend?country=Hungary&city=Budapest", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCompare(t *testing.T) {
	rec := serve(newTestServer(t), http.MethodGet,
		"/api/compare?country=Czech+Republic&city=Prague&compareCountry=Hungary&compareCity=Budapest&metric=primeRentEurSqmMonth", "")
	require.Equal(t, http.StatusOK, rec.Code)

	cmp := decode[explorer.Comparison](t, rec)
	assert.Equal(t, "Prague", cmp.BaseLabel)
	assert.Equal(t, "Budapest", cmp.ComparisonLabel)
	require.Len(t, cmp.Rows, 4)

	first := cmp.Rows[0]
	assert.Equal(t, "Q3 2023", first.Period)
	assert.Nil(t, first.Base)
	require.NotNil(t, first.Comparison)
	assert.InDelta(t, 25.5, *first.Comparison, 1e-9)
	assert.Equal(t, "–", first.BaseFormatted)

	last := cmp.Rows[3]
	assert.Equal(t, "Q2 2024", last.Period)
	assert.Nil(t, last.Comparison)
}

func TestCompare_DefaultsToBaseCountry(t *testing.T) {
	rec := serve(newTestServer(t), http.MethodGet,
		"/api/compare?country=Czech+Republic&city=Prague&compareCity=Brno&metric=primeRentEurSqmMonth", "")
	require.Equal(t, http.StatusOK, rec.Code)

	cmp := decode[explorer.Comparison](t, rec)
	assert.Equal(t, "Czech Republic", cmp.Comparison.Country)
	assert.Equal(t, "Brno", cmp.ComparisonLabel)
}

func TestChartMetrics(t *testing.T) {
	rec := serve(newTestServer(t), http.MethodGet, "/api/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Metrics []struct {
			Metric  string `json:"metric"`
			Label   string `json:"label"`
			Display string `json:"display"`
		} `json:"metrics"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Metrics, 8)
	assert.Equal(t, "totalStock", body.Metrics[0].Metric)
}

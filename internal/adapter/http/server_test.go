package http_test

import (
	"encoding/json"
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpadapter "github.com/couchcryptid/vancouver-crime-dashboard/internal/adapter/http"
	"github.com/couchcryptid/vancouver-crime-dashboard/internal/dashboard"
	"github.com/couchcryptid/vancouver-crime-dashboard/internal/domain"
	"github.com/couchcryptid/vancouver-crime-dashboard/internal/observability"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testTheft   = "Theft"
	testAssault = "Assault"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func incident(typ string, year, month, day int, lat, lon float64) domain.Incident {
	return domain.Incident{
		Type:      typ,
		Year:      year,
		Month:     month,
		Day:       day,
		Date:      time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC),
		Located:   true,
		Latitude:  lat,
		Longitude: lon,
	}
}

func newTestServer(t *testing.T, incidents ...domain.Incident) *httpadapter.Server {
	t.Helper()
	if incidents == nil {
		incidents = []domain.Incident{
			incident(testTheft, 2018, 1, 5, 49.28, -123.12),
			incident(testAssault, 2018, 3, 14, 49.26, -123.10),
			incident(testTheft, 2019, 7, 1, 49.25, -123.14),
			incident(testTheft, 2019, 12, 31, 49.23, -123.08),
			incident(testAssault, 2019, 2, 28, 49.21, -123.11),
		}
	}
	svc := dashboard.New(domain.NewTable(incidents), domain.MapOptions{},
		clockwork.NewFakeClock(), discardLogger(), observability.NewMetricsForTesting())
	return httpadapter.NewServer(":0", svc, discardLogger())
}

func serve(srv *httpadapter.Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func decodeFigures(t *testing.T, rec *httptest.ResponseRecorder) dashboard.Figures {
	t.Helper()
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var figs dashboard.Figures
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &figs))
	return figs
}

func mapPoints(fig domain.Figure) int {
	n := 0
	for _, tr := range fig.Data {
		n += len(tr.Lat)
	}
	return n
}

func TestPage(t *testing.T) {
	srv := newTestServer(t)

	rec := serve(srv, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	body := rec.Body.String()
	assert.Contains(t, body, "<h1>Vancouver crime dashboard</h1>")
	assert.Contains(t, body, "Please select the crime (or multiple/all crimes)")
	assert.Contains(t, body, `id="type-dropdown" multiple`)
	assert.Contains(t, body, `<option value="Select all" selected>Select all</option>`)
	assert.Contains(t, body, `<option value="Theft">Theft</option>`)
	assert.Contains(t, body, `<option value="Assault">Assault</option>`)
	assert.Contains(t, body, `id="year-histplot"`)
	assert.Contains(t, body, `id="map"`)
	assert.Contains(t, body, "Number of crimes per year")
	assert.Contains(t, body, "open-street-map")
}

func TestPage_UnknownPathIs404(t *testing.T) {
	rec := serve(newTestServer(t), httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPage_DropsStaleResponsesAfterDecode(t *testing.T) {
	body := serve(newTestServer(t), httptest.NewRequest(http.MethodGet, "/", nil)).Body.String()

	decode := strings.Index(body, "const figs = await resp.json();")
	require.NotEqual(t, -1, decode)
	recheck := strings.Index(body[decode:], "if (mine !== seq)")
	draw := strings.Index(body[decode:], "draw(figs, true);")
	require.NotEqual(t, -1, recheck)
	require.NotEqual(t, -1, draw)
	assert.Less(t, recheck, draw, "sequence must be re-checked between decoding and drawing")
}

func TestFiguresPost_SelectAll(t *testing.T) {
	srv := newTestServer(t)
	body := strings.NewReader(`{"types":["Select all"]}`)

	figs := decodeFigures(t, serve(srv, httptest.NewRequest(http.MethodPost, "/api/figures", body)))

	assert.Equal(t, []int{2018, 2019}, figs.Histogram.Data[0].X)
	assert.Equal(t, []int{2, 3}, figs.Histogram.Data[0].Y)
	assert.Equal(t, 5, mapPoints(figs.Map))
}

func TestFiguresPost_SingleType(t *testing.T) {
	srv := newTestServer(t)
	body := strings.NewReader(`{"types":["Theft"]}`)

	figs := decodeFigures(t, serve(srv, httptest.NewRequest(http.MethodPost, "/api/figures", body)))

	assert.Equal(t, []int{2018, 2019}, figs.Histogram.Data[0].X)
	assert.Equal(t, []int{1, 2}, figs.Histogram.Data[0].Y)
	require.Len(t, figs.Map.Data, 1)
	assert.Equal(t, testTheft, figs.Map.Data[0].Name)
}

func TestFiguresPost_EmptySelection(t *testing.T) {
	srv := newTestServer(t)

	for _, payload := range []string{`{"types":[]}`, `{}`} {
		figs := decodeFigures(t, serve(srv, httptest.NewRequest(http.MethodPost, "/api/figures", strings.NewReader(payload))))

		assert.Equal(t, []int{0, 0}, figs.Histogram.Data[0].Y, payload)
		assert.Zero(t, mapPoints(figs.Map), payload)
		require.NotNil(t, figs.Map.Layout.Mapbox)
		assert.Equal(t, domain.MapCenter, figs.Map.Layout.Mapbox.Center)
		assert.InDelta(t, float64(domain.MapZoom), figs.Map.Layout.Mapbox.Zoom, 1e-9)
	}
}

func TestFiguresPost_InvalidBody(t *testing.T) {
	rec := serve(newTestServer(t), httptest.NewRequest(http.MethodPost, "/api/figures", strings.NewReader("{not json")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "invalid request body")
}

func TestFiguresGet(t *testing.T) {
	srv := newTestServer(t)

	figs := decodeFigures(t, serve(srv, httptest.NewRequest(http.MethodGet, "/api/figures?type=Assault", nil)))
	assert.Equal(t, []int{1, 1}, figs.Histogram.Data[0].Y)

	none := decodeFigures(t, serve(srv, httptest.NewRequest(http.MethodGet, "/api/figures", nil)))
	assert.Equal(t, []int{0, 0}, none.Histogram.Data[0].Y)
}

func TestFigures_Idempotent(t *testing.T) {
	srv := newTestServer(t)

	first := serve(srv, httptest.NewRequest(http.MethodGet, "/api/figures?type=Theft&type=Assault", nil))
	second := serve(srv, httptest.NewRequest(http.MethodGet, "/api/figures?type=Theft&type=Assault", nil))

	assert.JSONEq(t, first.Body.String(), second.Body.String())
}

func TestOptions(t *testing.T) {
	rec := serve(newTestServer(t), httptest.NewRequest(http.MethodGet, "/api/options", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Options []string `json:"options"`
		Default []string `json:"default"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []string{"Select all", testTheft, testAssault}, body.Options)
	assert.Equal(t, []string{"Select all"}, body.Default)
}

func TestSummary(t *testing.T) {
	rec := serve(newTestServer(t), httptest.NewRequest(http.MethodGet, "/api/summary", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var sum dashboard.Summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sum))
	assert.Equal(t, 5, sum.Incidents)
	assert.Equal(t, 2018, sum.FirstYear)
	assert.Equal(t, 2019, sum.LastYear)
	require.NotNil(t, sum.Extent)
}

func TestHistogramPNG(t *testing.T) {
	srv := newTestServer(t)

	rec := serve(srv, httptest.NewRequest(http.MethodGet, "/charts/histogram.png?type=Theft&width=600&height=300", nil))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	img, err := png.Decode(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, 600, img.Bounds().Dx())
	assert.Equal(t, 300, img.Bounds().Dy())
}

func TestHistogramPNG_InvalidSize(t *testing.T) {
	rec := serve(newTestServer(t), httptest.NewRequest(http.MethodGet, "/charts/histogram.png?width=huge", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHistogramPNG_EmptyTable(t *testing.T) {
	srv := newTestServer(t, []domain.Incident{}...)

	rec := serve(srv, httptest.NewRequest(http.MethodGet, "/charts/histogram.png", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealthzReturns200(t *testing.T) {
	rec := serve(newTestServer(t), httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadyzReturns200WhenLoaded(t *testing.T) {
	rec := serve(newTestServer(t), httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadyzReturns503WhenNotReady(t *testing.T) {
	svc := dashboard.New(domain.NewTable(nil), domain.MapOptions{}, clockwork.NewFakeClock(),
		discardLogger(), observability.NewMetricsForTesting())
	srv := httpadapter.NewServer(":0", svc, discardLogger())

	rec := serve(srv, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	rec := serve(newTestServer(t), httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestMethodNotAllowed(t *testing.T) {
	rec := serve(newTestServer(t), httptest.NewRequest(http.MethodDelete, "/api/figures", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

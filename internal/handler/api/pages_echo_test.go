package api

import (
	"bytes"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"TradeMind/internal/charting"
	"TradeMind/internal/domain/models"
	"TradeMind/internal/service/ratelimit"
	"TradeMind/internal/services/placeholder"
	"TradeMind/internal/usecase"
	xhttp "TradeMind/pkg/http"
	"TradeMind/pkg/logger"
	"TradeMind/web"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T, limiter *ratelimit.Limiter) (*PagesEchoHandler, *xhttp.Server) {
	t.Helper()
	log := logger.Nop()
	images := placeholder.NewGenerator(nil, nil, log)
	renderer, err := usecase.NewPageRenderer(web.Templates(), charting.NewChartJS(), images, nil, log,
		usecase.PageRendererConfig{Seed: 42, RiskValue: 1})
	require.NoError(t, err)

	h := NewPagesEchoHandler(log, renderer,
		usecase.NewRiskMeter(nil),
		usecase.NewChartExporter(charting.NewRaster(400, 200), 42),
		images, limiter)
	s := xhttp.NewServer(h, xhttp.WithMetrics("/metrics", prometheus.NewRegistry(), 0))
	return h, s
}

func get(s *xhttp.Server, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

type envelope struct {
	Status int             `json:"status"`
	Data   json.RawMessage `json:"data"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}

func TestPages(t *testing.T) {
	_, s := newTestHandler(t, nil)

	rec := get(s, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "data:image/png;base64,")
	assert.NotEmpty(t, rec.Header().Get("X-Render-ID"))
	assert.Equal(t, "42", rec.Header().Get("X-Render-Seed"))

	rec = get(s, "/pages/risk")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `<span id="risk-value" style="color: #4caf50;">1%</span>`)
	assert.Contains(t, body, `data-target="survivalChart"`)

	rec = get(s, "/pages/technical?seed=7")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "7", rec.Header().Get("X-Render-Seed"))
	assert.Equal(t, 2, strings.Count(rec.Body.String(), "chart-annotation"))

	again := get(s, "/pages/technical?seed=7")
	assert.Equal(t, rec.Body.String(), stripRenderID(again.Body.String(), again.Header().Get("X-Render-ID"), rec.Header().Get("X-Render-ID")))

	rec = get(s, "/pages/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func stripRenderID(body, from, to string) string {
	return strings.ReplaceAll(body, from, to)
}

func TestRiskMeterEndpoint(t *testing.T) {
	_, s := newTestHandler(t, nil)

	rec := get(s, "/api/risk-meter?value=3")
	require.Equal(t, http.StatusOK, rec.Code)
	var d models.RiskDisplay
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &d))
	assert.Equal(t, "#ff9800", d.Color)
	assert.Equal(t, "3%", d.Text)
	assert.Equal(t, models.RiskCaution, d.Band)

	rec = get(s, "/api/risk-meter?value=15.5")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "ERR_LTE")
}

func TestRiskMeterRateLimited(t *testing.T) {
	_, s := newTestHandler(t, ratelimit.New(2, 0.001))

	assert.Equal(t, http.StatusOK, get(s, "/api/risk-meter?value=1").Code)
	assert.Equal(t, http.StatusOK, get(s, "/api/risk-meter?value=1").Code)
	rec := get(s, "/api/risk-meter?value=1")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "ERR_TOO_MANY_REQUESTS")
}

func TestChartEndpoint(t *testing.T) {
	_, s := newTestHandler(t, nil)

	rec := get(s, "/api/charts/survival")
	require.Equal(t, http.StatusOK, rec.Code)
	var cfg models.ChartConfig
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &cfg))
	require.Len(t, cfg.Data.Datasets, 3)
	assert.Equal(t, "1% Risk Per Trade", cfg.Data.Datasets[0].Label)

	rec = get(s, "/api/charts/trading?format=png&seed=3")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	img, err := png.Decode(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 400, img.Bounds().Dx())

	rec = get(s, "/api/charts/emotion?format=echarts")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "echarts")

	assert.Equal(t, http.StatusBadRequest, get(s, "/api/charts/pie").Code)
	assert.Equal(t, http.StatusBadRequest, get(s, "/api/charts/emotion?format=svg").Code)
}

func TestPlaceholderEndpoint(t *testing.T) {
	_, s := newTestHandler(t, nil)

	rec := get(s, "/api/placeholders/reality")
	require.Equal(t, http.StatusOK, rec.Code)
	img, err := png.Decode(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, placeholder.DefaultSize, img.Bounds().Dx())

	assert.Equal(t, http.StatusBadRequest, get(s, "/api/placeholders/other").Code)
}

func TestHealth(t *testing.T) {
	h, s := newTestHandler(t, nil)
	h.logger.AddCollector(&logger.CollectionConfig{FlushEvery: time.Hour, MaxDistinct: 10, Retain: 5})
	defer h.logger.RemoveCollector()
	h.logger.Error("chart draw failed")

	rec := get(s, "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	var res healthResponse
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &res))
	assert.Equal(t, "ok", res.Status)
	assert.Equal(t, 1, res.PendingErrors)
}

func TestRiskSocket(t *testing.T) {
	_, s := newTestHandler(t, nil)
	srv := httptest.NewServer(s.Echo())
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/risk"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	exchange := func(msg string) map[string]interface{} {
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(msg)))
		var out map[string]interface{}
		require.NoError(t, conn.ReadJSON(&out))
		return out
	}

	out := exchange(`{"value": 2}`)
	assert.Equal(t, "#4caf50", out["color"])
	assert.Equal(t, "2%", out["text"])

	out = exchange(`{"value": 10}`)
	assert.Equal(t, "#f44336", out["color"])
	assert.Equal(t, "danger", out["band"])

	out = exchange(`{"value": 99}`)
	assert.NotEmpty(t, out["error"])
	assert.Nil(t, out["color"])

	out = exchange(`not json`)
	assert.Contains(t, out["error"], "invalid message")

	out = exchange(`{}`)
	assert.NotEmpty(t, out["error"])
}

func dialRisk(t *testing.T, srv *httptest.Server) (*websocket.Conn, *http.Response, error) {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/risk"
	return websocket.DefaultDialer.Dial(url, nil)
}

func TestRiskSocketDragBurstIsNotLimited(t *testing.T) {
	_, s := newTestHandler(t, ratelimit.New(20, 5))
	srv := httptest.NewServer(s.Echo())
	defer srv.Close()

	conn, _, err := dialRisk(t, srv)
	require.NoError(t, err)
	defer conn.Close()

	// A 0 to 15 drag at step 0.5.
	var last map[string]interface{}
	for i := 0; i <= 30; i++ {
		msg, _ := json.Marshal(map[string]float64{"value": float64(i) / 2})
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, msg))
		last = nil
		require.NoError(t, conn.ReadJSON(&last))
		require.Nil(t, last["error"], "reading %d", i)
	}
	assert.Equal(t, "15%", last["text"])
	assert.Equal(t, "100%", last["left"])
}

func TestRiskSocketHandshakeIsLimited(t *testing.T) {
	_, s := newTestHandler(t, ratelimit.New(1, 0.001))
	srv := httptest.NewServer(s.Echo())
	defer srv.Close()

	conn, _, err := dialRisk(t, srv)
	require.NoError(t, err)
	conn.Close()

	_, res, err := dialRisk(t, srv)
	require.Error(t, err)
	require.NotNil(t, res)
	assert.Equal(t, http.StatusTooManyRequests, res.StatusCode)
}

package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"fn-peaks/src/helpers"
	"fn-peaks/src/interfaces"
	"fn-peaks/src/logger"
	"fn-peaks/src/models"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	mu     sync.Mutex
	ranges []models.MTimeRange
}

func (f *fakeRunner) Run(_ context.Context, r models.MTimeRange) (*models.MPeakReport, error) {
	f.mu.Lock()
	f.ranges = append(f.ranges, r)
	f.mu.Unlock()

	if days := int(r.End.Sub(r.Start) / (24 * time.Hour)); days > 60 {
		return nil, &helpers.RangeTooLargeError{Days: days, MaxDays: 60}
	}
	return &models.MPeakReport{
		Type:     "QUERY",
		Range:    r,
		SpanDays: 1,
		Devices: map[string]models.MMergedDeviceRow{
			"FN1": {DeviceID: "FN1", Name: "Node One", ChannelAPeak: 67.8, ChannelBPeak: -1},
		},
		Rows: []models.MTableRow{{
			DeviceID: "FN1", Name: "Node One",
			ChannelA: models.MPeakCell{Value: 67.8, Display: "67.80 %"},
			ChannelB: models.MPeakCell{Value: -1, Display: "N/A"},
		}},
	}, nil
}

type fakeDB struct {
	runs  []models.MRunRecord
	err   error
	limit int
}

func (d *fakeDB) Initialize() error                          { return nil }
func (d *fakeDB) SaveRun(*models.MPeakReport) (int64, error) { return 0, nil }
func (d *fakeDB) CleanupOldData() error                      { return nil }
func (d *fakeDB) Close() error                               { return nil }
func (d *fakeDB) RecentRuns(limit int) ([]models.MRunRecord, error) {
	d.limit = limit
	return d.runs, d.err
}

func testConfig() *models.MConfig {
	return &models.MConfig{
		Name: "fn-peaks", Host: "127.0.0.1", Port: 8080,
		Aggregation: models.MAggregationConfig{MaxSpanDays: 60, Unit: "%", TimeLayout: "01/02/2006 15:04:05", Timezone: "UTC"},
		Channels: []models.MChannelConfig{
			{Name: "DS_PEAK", Label: "SCQAM Peak", Root: "/data/ds"},
			{Name: "OFDM_PEAK", Label: "OFDM Peak", Root: "/data/ofdm"},
		},
	}
}

func newTestServer(t *testing.T, db interfaces.IDatabase, gatherer prometheus.Gatherer) (*FastAPIServer, *fakeRunner) {
	t.Helper()
	runner := &fakeRunner{}
	log := logger.NewLoggerWithWriter(nil, "Server", &bytes.Buffer{})
	return NewFastAPIServer(testConfig(), runner, db, gatherer, time.UTC, log), runner
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func peaksURL(path, start, end string) string {
	q := url.Values{}
	q.Set("start", start)
	q.Set("end", end)
	return path + "?" + q.Encode()
}

// -----------------------------------------------------------------------------

func TestGetPeaks(t *testing.T) {
	s, runner := newTestServer(t, nil, nil)

	w := get(t, s.Handler(), peaksURL("/api/peaks", "03/01/2024 00:00:00", "03/02/2024 10:00:00"))

	require.Equal(t, http.StatusOK, w.Code)
	var report models.MPeakReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	require.Len(t, report.Rows, 1)
	assert.Equal(t, "N/A", report.Rows[0].ChannelB.Display)

	require.Len(t, runner.ranges, 1)
	assert.Equal(t, time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC), runner.ranges[0].End)
}

func TestGetPeaksResponseEnvelope(t *testing.T) {
	s, _ := newTestServer(t, nil, nil)

	w := get(t, s.Handler(), peaksURL("/api/peaks/response", "03/01/2024 00:00:00", "03/02/2024 00:00:00"))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"Response":{"FN1":{"DsFnName":"Node One","DsFnUtilization":67.8,"OfdmFnUtilization":-1}}}`, w.Body.String())
}

func TestGetPeaksErrors(t *testing.T) {
	s, runner := newTestServer(t, nil, nil)

	w := get(t, s.Handler(), peaksURL("/api/peaks", "yesterday", "03/02/2024 00:00:00"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "yesterday")
	assert.Empty(t, runner.ranges)

	w = get(t, s.Handler(), peaksURL("/api/peaks", "01/01/2024 00:00:00", "03/02/2024 00:00:00"))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "60 days")
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, statusFor(helpers.NewInvalidTimeError("x", errors.New("bad"))))
	assert.Equal(t, http.StatusUnprocessableEntity, statusFor(&helpers.RangeTooLargeError{Days: 61, MaxDays: 60}))
	assert.Equal(t, http.StatusInternalServerError, statusFor(errors.New("boom")))
}

func TestGetColumnsAndConfig(t *testing.T) {
	s, _ := newTestServer(t, nil, nil)

	w := get(t, s.Handler(), "/api/columns")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"columns":["Fiber Node","SCQAM Peak","OFDM Peak"]}`, w.Body.String())

	w = get(t, s.Handler(), "/api/config")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"max_span_days":60`)
}

func TestGetRuns(t *testing.T) {
	db := &fakeDB{runs: []models.MRunRecord{{ID: 2, Devices: 14}, {ID: 1, Devices: 12}}}
	s, _ := newTestServer(t, db, nil)

	w := get(t, s.Handler(), "/api/runs?limit=2")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, db.limit)
	assert.Contains(t, w.Body.String(), `"devices":14`)

	w = get(t, s.Handler(), "/api/runs?limit=zero")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	db.err = errors.New("db down")
	w = get(t, s.Handler(), "/api/runs")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, defaultRunsLimit, db.limit)
}

func TestGetRunsWithoutDatabase(t *testing.T) {
	s, _ := newTestServer(t, nil, nil)

	w := get(t, s.Handler(), "/api/runs")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"runs":[]}`, w.Body.String())
}

func TestHealthAndMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	devices := prometheus.NewGauge(prometheus.GaugeOpts{Name: "fnpeaks_devices", Help: "devices"})
	reg.MustRegister(devices)
	devices.Set(3)
	s, _ := newTestServer(t, nil, reg)

	w := get(t, s.Handler(), "/api/health")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","connections":0,"latest_update":0}`, w.Body.String())

	w = get(t, s.Handler(), "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "fnpeaks_devices 3")
}

func TestWebSocketInitialStateQueryAndBroadcast(t *testing.T) {
	s, _ := newTestServer(t, nil, nil)
	go s.handleWebsockets()
	defer s.Stop()

	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var initial models.MPeakReport
	require.NoError(t, conn.ReadJSON(&initial))
	assert.Equal(t, "INITIAL", initial.Type)
	assert.Equal(t, []string{"Fiber Node", "SCQAM Peak", "OFDM Peak"}, initial.Columns)

	require.NoError(t, conn.WriteJSON(models.MQueryCommand{Command: "query", Start: "03/01/2024 00:00:00", End: "03/02/2024 00:00:00"}))
	var queried models.MPeakReport
	require.NoError(t, conn.ReadJSON(&queried))
	assert.Equal(t, "QUERY", queried.Type)
	require.Len(t, queried.Rows, 1)

	require.NoError(t, conn.WriteJSON(models.MQueryCommand{Command: "query", Start: "bad", End: "03/02/2024 00:00:00"}))
	var failed models.MErrorMessage
	require.NoError(t, conn.ReadJSON(&failed))
	assert.Equal(t, "ERROR", failed.Type)

	s.Broadcast(&models.MPeakReport{Type: "UPDATE", SpanDays: 1, Rows: []models.MTableRow{}})
	var update models.MPeakReport
	require.NoError(t, conn.ReadJSON(&update))
	assert.Equal(t, "UPDATE", update.Type)
	assert.Equal(t, "UPDATE", s.LatestReport().Type)
}

func TestWebSocketCloseLeavesHub(t *testing.T) {
	s, _ := newTestServer(t, nil, nil)
	go s.handleWebsockets()
	defer s.Stop()

	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var initial models.MPeakReport
	require.NoError(t, conn.ReadJSON(&initial))

	clientCount := func() int {
		s.stateMutex.RLock()
		defer s.stateMutex.RUnlock()
		return len(s.clients)
	}
	assert.Equal(t, 1, clientCount())

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return clientCount() == 0 }, 5*time.Second, 10*time.Millisecond)
}

func TestSetLatestReportDoesNotBroadcast(t *testing.T) {
	s, _ := newTestServer(t, nil, nil)

	s.SetLatestReport(&models.MPeakReport{Type: "UPDATE"})
	s.SetLatestReport(nil)

	assert.Equal(t, "UPDATE", s.LatestReport().Type)
	assert.Empty(t, s.broadcast)
}

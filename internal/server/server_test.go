package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psantana5/fieldbench/internal/battery"
	"github.com/psantana5/fieldbench/internal/report"
)

func newTestServer(t *testing.T, session *Session, metrics *report.Metrics) *httptest.Server {
	t.Helper()
	h, err := NewHandler(session, Options{Metrics: metrics, Refresh: 1, Caption: "test host"})
	require.NoError(t, err)
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestSession_Lifecycle(t *testing.T) {
	s := NewSession(100, 3)
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, StatePending, s.Status().State)

	s.Begin()
	assert.Equal(t, StateRunning, s.Status().State)

	m := report.NewMatrix(report.NewRunResult(report.Entry{Name: "a", ElapsedMillis: 1}))
	s.Record(1, report.RunResult{}, m)
	m.Add(report.NewRunResult(report.Entry{Name: "a", ElapsedMillis: 2}))

	assert.Equal(t, 1, s.Matrix().Columns(), "published matrix is a snapshot")
	assert.Equal(t, 1, s.Status().Completed)

	s.Finish(errors.New("workload exploded"))
	st := s.Status()
	assert.Equal(t, StateFailed, st.State)
	assert.Equal(t, "workload exploded", st.Error)
}

func TestHandler_Endpoints(t *testing.T) {
	session := NewSession(10, 2)
	metrics := report.NewMetrics()

	reg := battery.NewRegistry[string]().
		MustRegister("A", func() string { return "a" }).
		MustRegister("B", func() string { return "b" })
	runner := battery.NewRunner(reg, battery.Config{Metrics: metrics})

	session.Begin()
	_, err := runner.RunGroup(context.Background(), 10, 2, report.NewMatrix(), session.Record)
	session.Finish(err)
	require.NoError(t, err)

	srv := newTestServer(t, session, metrics)

	t.Run("page", func(t *testing.T) {
		code, body := get(t, srv.URL+"/")
		assert.Equal(t, http.StatusOK, code)
		assert.Contains(t, body, session.ID)
		assert.Contains(t, body, "<th>A</th>")
		assert.Contains(t, body, "done, 2/2 runs")
		assert.NotContains(t, body, `http-equiv="refresh"`, "finished sessions stop refreshing")
	})

	t.Run("matrix", func(t *testing.T) {
		code, body := get(t, srv.URL+"/api/matrix")
		assert.Equal(t, http.StatusOK, code)

		var doc report.Document
		require.NoError(t, json.Unmarshal([]byte(body), &doc))
		assert.Equal(t, session.ID, doc.Session)
		assert.Equal(t, 2, doc.Runs)
		require.Len(t, doc.Rows, 2)
		assert.Equal(t, "A", doc.Rows[0].Workload)
		assert.Len(t, doc.Rows[0].Cells, 2)
	})

	t.Run("status", func(t *testing.T) {
		code, body := get(t, srv.URL+"/api/status")
		assert.Equal(t, http.StatusOK, code)

		var st Status
		require.NoError(t, json.Unmarshal([]byte(body), &st))
		assert.Equal(t, StateDone, st.State)
		assert.Equal(t, 2, st.Completed)
	})

	t.Run("failures", func(t *testing.T) {
		code, body := get(t, srv.URL+"/api/failures")
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "[]", strings.TrimSpace(body))
	})

	t.Run("metrics", func(t *testing.T) {
		code, body := get(t, srv.URL+"/metrics")
		assert.Equal(t, http.StatusOK, code)
		assert.Contains(t, body, `fieldbench_workload_elapsed_milliseconds{run="2",workload="B"}`)
		assert.Contains(t, body, `fieldbench_batteries_total{outcome="completed"} 2`)
	})

	t.Run("healthz", func(t *testing.T) {
		code, body := get(t, srv.URL+"/healthz")
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "ok", body)
	})

	t.Run("method not allowed", func(t *testing.T) {
		resp, err := http.Post(srv.URL+"/api/status", "application/json", nil)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	})
}

func TestHandler_RunningPageRefreshes(t *testing.T) {
	session := NewSession(10, 5)
	session.Begin()
	srv := newTestServer(t, session, nil)

	_, body := get(t, srv.URL+"/")
	assert.Contains(t, body, `http-equiv="refresh"`)
	assert.Contains(t, body, "running, 0/5 runs")
}

func TestSession_PendingStatusOmitsTimestamps(t *testing.T) {
	s := NewSession(10, 1)

	raw, err := json.Marshal(s.Status())
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "started_at")
	assert.NotContains(t, string(raw), "updated_at")

	s.Begin()
	st := s.Status()
	require.NotNil(t, st.StartedAt)
	require.NotNil(t, st.UpdatedAt)
	assert.False(t, st.StartedAt.IsZero())

	raw, err = json.Marshal(st)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"started_at":`)
}

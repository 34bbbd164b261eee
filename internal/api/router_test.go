package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iac-studio/projects/internal/api/handlers"
	mw "github.com/iac-studio/projects/internal/api/middleware"
	"github.com/iac-studio/projects/internal/models"
	"github.com/iac-studio/projects/internal/services"
	"github.com/iac-studio/projects/pkg/config"
	appErr "github.com/iac-studio/projects/pkg/errors"
	"github.com/iac-studio/projects/pkg/logger"
	"github.com/iac-studio/projects/pkg/metrics"
)

func TestMain(m *testing.M) {
	if _, err := logger.Init("error", "json"); err != nil {
		panic("failed to init logger: " + err.Error())
	}
	os.Exit(m.Run())
}

type stubReader struct {
	items []models.Project
	err   error
}

func (s stubReader) FetchAll(context.Context) ([]models.Project, error) { return s.items, s.err }

func newTestRouter(t *testing.T, reader services.ProjectReader, mode string) (http.Handler, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	svc := services.NewProjectService(reader, 0, metrics.NewReadMetrics(reg))
	return NewRouter(Dependencies{
		Limiter:         mw.NewLimiter(100, 100, nil),
		Gatherer:        reg,
		ProjectsHandler: handlers.NewProjectsHandler(svc, mode),
	}), reg
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	return rr
}

func TestListProjectsScenarios(t *testing.T) {
	id1, id2 := uuid.New(), uuid.New()

	t.Run("two projects", func(t *testing.T) {
		r, _ := newTestRouter(t, stubReader{items: []models.Project{{ID: id1, Name: "a"}, {ID: id2, Name: "b"}}}, config.ResponseModeRaw)
		rr := get(r, "/api/v1/projects")
		require.Equal(t, http.StatusOK, rr.Code)
		require.NotEmpty(t, rr.Header().Get("X-Request-ID"))

		var body []struct {
			ID string `json:"id"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		require.Len(t, body, 2)
		assert.Equal(t, id1.String(), body[0].ID)
		assert.Equal(t, id2.String(), body[1].ID)
	})

	t.Run("empty", func(t *testing.T) {
		r, _ := newTestRouter(t, stubReader{}, config.ResponseModeRaw)
		rr := get(r, "/api/v1/projects/")
		require.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `[]`, rr.Body.String())
	})

	t.Run("read failure", func(t *testing.T) {
		r, _ := newTestRouter(t, stubReader{err: appErr.Wrap(errors.New("dial tcp"), appErr.CodeUnavailable, "project store unavailable")}, config.ResponseModeRaw)
		rr := get(r, "/api/v1/projects")
		require.Equal(t, http.StatusServiceUnavailable, rr.Code)
		assert.JSONEq(t, `{"isSuccess":false,"message":{"kind":"error","text":"project store unavailable"}}`, rr.Body.String())
	})
}

func TestMutationsNotRouted(t *testing.T) {
	r, _ := newTestRouter(t, stubReader{}, config.ResponseModeRaw)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/v1/projects", strings.NewReader(`{}`)))
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	r, _ := newTestRouter(t, stubReader{}, config.ResponseModeRaw)
	get(r, "/api/v1/projects")

	rr := get(r, "/metrics")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `project_reads_total{outcome="success"} 1`)
}

func TestHealthRoutes(t *testing.T) {
	r, _ := newTestRouter(t, stubReader{}, config.ResponseModeRaw)
	assert.Equal(t, http.StatusOK, get(r, "/healthz").Code)
	assert.Equal(t, http.StatusOK, get(r, "/readyz").Code)
}

func TestAuthGate(t *testing.T) {
	svc := services.NewProjectService(stubReader{}, 0, nil)
	r := NewRouter(Dependencies{
		HMACSecret:      []byte("secret"),
		ProjectsHandler: handlers.NewProjectsHandler(svc, config.ResponseModeRaw),
	})
	assert.Equal(t, http.StatusUnauthorized, get(r, "/api/v1/projects").Code)
	assert.Equal(t, http.StatusOK, get(r, "/healthz").Code)
}

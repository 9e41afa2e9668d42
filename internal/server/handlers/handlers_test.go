package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Srinivasc16/tempx/internal/results"
	"github.com/Srinivasc16/tempx/internal/server/handlers"
	"github.com/Srinivasc16/tempx/internal/server/middleware"
	"github.com/Srinivasc16/tempx/internal/server/ratelimit"
	"github.com/Srinivasc16/tempx/internal/server/router"
)

type stubSource struct {
	ds  results.Dataset
	err error
}

func (s stubSource) Snapshot(context.Context) (results.Dataset, error) {
	return s.ds, s.err
}

func fixtureDataset() results.Dataset {
	return results.Dataset{
		Shape: results.ShapeTiered,
		Columns: []results.Column{
			{Top: "Roll No", Tiered: true},
			{Top: "Dept", Tiered: true},
			{Top: "CRT", Tiered: true},
			{Top: "College", Sub: "Test1", Tiered: true},
			{Top: "College", Sub: "Test2", Tiered: true},
		},
		Rows: []results.Row{
			{"A1", "CSE", "Alpha", 80.0, 60.0},
			{"A2", "CSE", "Alpha", 100.0, 40.0},
			{"B1", "ECE", "Beta", 90.0, 90.0},
		},
	}
}

func newTestRouter(source results.Source) http.Handler {
	gin.SetMode(gin.TestMode)
	handler := handlers.New(source, nil, nil, "")
	mw := middleware.NewManager(ratelimit.NewLimiter(), 0, 0)
	return router.New(handler, mw)
}

func perform(t *testing.T, h http.Handler, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	req.RemoteAddr = "10.0.0.1:12345"
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestHomeAndHealth(t *testing.T) {
	h := newTestRouter(stubSource{ds: fixtureDataset()})

	w := perform(t, h, http.MethodGet, "/")
	assert.Equal(t, http.StatusOK, w.Code)

	w = perform(t, h, http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", decode(t, w)["status"])
}

func TestGetAllStudents(t *testing.T) {
	h := newTestRouter(stubSource{ds: fixtureDataset()})

	w := perform(t, h, http.MethodGet, "/api/v1/students")
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, float64(3), body["count"])
	assert.Equal(t, "tiered", body["shape"])
}

func TestGetStudentByRoll(t *testing.T) {
	h := newTestRouter(stubSource{ds: fixtureDataset()})

	w := perform(t, h, http.MethodGet, "/api/v1/students/a1")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "A1", decode(t, w)["RollNo"])

	w = perform(t, h, http.MethodGet, "/api/v1/students/z9")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetStudentsByDept(t *testing.T) {
	h := newTestRouter(stubSource{ds: fixtureDataset()})

	w := perform(t, h, http.MethodGet, "/api/v1/students/dept/cse")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), decode(t, w)["count"])

	w = perform(t, h, http.MethodGet, "/api/v1/students/dept/civil")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetStudentsByCRT(t *testing.T) {
	h := newTestRouter(stubSource{ds: fixtureDataset()})

	w := perform(t, h, http.MethodGet, "/api/v1/students/crt/beta")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decode(t, w)["count"])
}

func TestGetPlatformAverage(t *testing.T) {
	h := newTestRouter(stubSource{ds: fixtureDataset()})

	w := perform(t, h, http.MethodGet, "/api/v1/average/platform/College")
	require.Equal(t, http.StatusOK, w.Code)

	averages := decode(t, w)["averages"].(map[string]any)
	assert.Equal(t, 90.0, averages["College_Test1"])

	w = perform(t, h, http.MethodGet, "/api/v1/average/platform/hackerrank")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetStudentAverage(t *testing.T) {
	h := newTestRouter(stubSource{ds: fixtureDataset()})

	w := perform(t, h, http.MethodGet, "/api/v1/average/student/a2")
	require.Equal(t, http.StatusOK, w.Code)

	averages := decode(t, w)["averages"].(map[string]any)
	assert.Equal(t, 70.0, averages["College"])
}

func TestGetDepartmentAverage(t *testing.T) {
	h := newTestRouter(stubSource{ds: fixtureDataset()})

	w := perform(t, h, http.MethodGet, "/api/v1/average/dept/CSE")
	require.Equal(t, http.StatusOK, w.Code)

	averages := decode(t, w)["averages"].(map[string]any)
	assert.Equal(t, 70.0, averages["College"], "mean of per-test means over CSE")
}

func TestGetOverallAverage(t *testing.T) {
	h := newTestRouter(stubSource{ds: fixtureDataset()})

	w := perform(t, h, http.MethodGet, "/api/v1/average/overall")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 76.67, decode(t, w)["overall_average"])
}

func TestGetPlatformTopper(t *testing.T) {
	h := newTestRouter(stubSource{ds: fixtureDataset()})

	w := perform(t, h, http.MethodGet, "/api/v1/topper/platform/College")
	require.Equal(t, http.StatusOK, w.Code)

	topper := decode(t, w)["topper"].(map[string]any)
	assert.Equal(t, "B1", topper["roll_no"])
	assert.Equal(t, 180.0, topper["total"])
}

func TestMissingRoleColumnIsServerError(t *testing.T) {
	ds := results.Dataset{
		Columns: []results.Column{{Top: "College", Sub: "Test1", Tiered: true}},
		Rows:    []results.Row{{80.0}},
	}
	h := newTestRouter(stubSource{ds: ds})

	w := perform(t, h, http.MethodGet, "/api/v1/students/a1")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestSnapshotFailure(t *testing.T) {
	h := newTestRouter(stubSource{err: assert.AnError})

	w := perform(t, h, http.MethodGet, "/api/v1/students")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestUploadRequiresStore(t *testing.T) {
	h := newTestRouter(stubSource{ds: fixtureDataset()})

	w := perform(t, h, http.MethodPost, "/api/v1/uploads")
	assert.Equal(t, http.StatusNotImplemented, w.Code)

	w = perform(t, h, http.MethodGet, "/api/v1/uploads")
	assert.Equal(t, http.StatusNotImplemented, w.Code)
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := handlers.New(stubSource{ds: fixtureDataset()}, nil, nil, "")
	mw := middleware.NewManager(ratelimit.NewLimiter(), 2, 60)
	h := router.New(handler, mw)

	for i := 0; i < 2; i++ {
		w := perform(t, h, http.MethodGet, "/api/v1/students")
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := perform(t, h, http.MethodGet, "/api/v1/students")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	// Health stays reachable for probes.
	w = perform(t, h, http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
}

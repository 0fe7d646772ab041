package server_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tonality/modulation"
	"github.com/katalvlaran/tonality/server"
	"github.com/katalvlaran/tonality/tonality"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	reg := prometheus.NewRegistry()
	calc := tonality.NewCalculator(tonality.WithRegisterer(reg), tonality.WithLogger(quiet))
	h := server.NewHandlers(calc, modulation.DefaultWeights(), quiet)

	return server.NewRouter(h, reg, reg)
}

func get(t *testing.T, router *gin.Engine, url string, out any) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if out != nil {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
	}

	return w
}

func TestHandleDistance(t *testing.T) {
	router := setupRouter(t)

	var resp server.DistanceResponse
	w := get(t, router, "/v1/distance?from=C&to=a", &resp)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, resp.Distance)
	assert.InDelta(t, 0.7, *resp.Distance, 1e-9)
	assert.True(t, resp.Reachable)
	assert.Equal(t, "C", resp.From)
	assert.Equal(t, "a", resp.To)

	// Per-request override; every detour to a still costs more than 2.
	w = get(t, router, "/v1/distance?from=C&to=a&relative=2", &resp)
	require.Equal(t, http.StatusOK, w.Code)
	assert.InDelta(t, 2.0, *resp.Distance, 1e-9)
}

func TestHandleDistance_Unreachable(t *testing.T) {
	router := setupRouter(t)

	var resp server.DistanceResponse
	w := get(t, router, "/v1/distance?from=C&to=G&disable=neighbor,relative,parallel,enharmonic,dominant", &resp)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, resp.Distance)
	assert.False(t, resp.Reachable)
	assert.Contains(t, w.Body.String(), `"distance":null`)
}

func TestHandleDistance_BadInput(t *testing.T) {
	router := setupRouter(t)

	cases := map[string]string{
		"/v1/distance?from=C":                    server.CodeInvalidRequest,
		"/v1/distance?from=H&to=C":               server.CodeInvalidKey,
		"/v1/distance?from=C%23b&to=C":           server.CodeInvalidKey,
		"/v1/distance?from=C&to=a&parallel=-1":   server.CodeInvalidRequest,
		"/v1/distance?from=C&to=a&parallel=abc":  server.CodeInvalidRequest,
		"/v1/distance?from=C&to=a&disable=blues": server.CodeInvalidWeights,
	}
	for url, code := range cases {
		var resp server.ErrorResponse
		w := get(t, router, url, &resp)
		assert.Equal(t, http.StatusBadRequest, w.Code, url)
		assert.Equal(t, code, resp.Code, url)
		assert.NotEmpty(t, resp.Error, url)
	}
}

func TestHandlePaths(t *testing.T) {
	router := setupRouter(t)

	var resp server.PathsResponse
	w := get(t, router, "/v1/paths?from=C&to=e", &resp)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, resp.Paths, 2)
	require.Len(t, resp.Lines, 2)
	assert.Equal(t, []string{
		"C -> a : Relative minor (distance : 0.7)",
		"a -> e : Neighbor (sharp) (distance : 1)",
	}, resp.Lines[0])
	require.NotNil(t, resp.Distance)
	assert.Equal(t, *resp.Distance, resp.Paths[0].Total)
	assert.Equal(t, *resp.Distance, resp.Paths[1].Total)
	assert.False(t, resp.Truncated)
	assert.Equal(t, "G", resp.Paths[1].Keys[1].String())

	resp = server.PathsResponse{}
	w = get(t, router, "/v1/paths?from=C&to=e&max=1", &resp)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, resp.Paths, 1)
	assert.True(t, resp.Truncated)

	w = get(t, router, "/v1/paths?from=C&to=e&max=-1", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = get(t, router, "/v1/paths?from=C&to=G&neighbor=inf&relative=inf&parallel=inf&dominant=inf", &resp)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, resp.Reachable)
	assert.Empty(t, resp.Paths)
	assert.Contains(t, w.Body.String(), `"paths":[]`)
}

func TestHandleTable(t *testing.T) {
	router := setupRouter(t)

	var resp server.TableResponse
	w := get(t, router, "/v1/table?from=a", &resp)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, resp.Rows, 168)
	assert.Equal(t, "a", resp.From)

	found := false
	for _, r := range resp.Rows {
		if r.Key == "C" {
			found = true
			assert.Equal(t, []string{"a", "C"}, r.Path)
			assert.InDelta(t, 0.7, *r.Distance, 1e-9)
		}
	}
	assert.True(t, found)
}

func TestHandleNeighborhood(t *testing.T) {
	router := setupRouter(t)

	var resp server.NeighborhoodResponse
	w := get(t, router, "/v1/neighborhood?from=C&steps=1", &resp)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, resp.Keys, 8)
	assert.Equal(t, "C", resp.Keys[0].Key)
	assert.Equal(t, []string{"C"}, resp.Keys[0].Via)
	for _, s := range resp.Keys[1:] {
		assert.Equal(t, 1, s.Steps)
	}

	w = get(t, router, "/v1/neighborhood?from=C", &resp)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, resp.Keys, 168)

	w = get(t, router, "/v1/neighborhood?from=C&steps=-1", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleTensorAndKeys(t *testing.T) {
	router := setupRouter(t)

	var tensor server.TensorResponse
	w := get(t, router, "/v1/tensor", &tensor)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, tensor.Values, 7)
	require.Len(t, tensor.Values[0], 12)
	require.Len(t, tensor.Values[0][0], 4)
	assert.Equal(t, 0.0, *tensor.Values[0][0][0])
	assert.InDelta(t, 1.3, *tensor.Values[0][0][1], 1e-9)
	assert.Equal(t, "major→major", tensor.Classes[0])

	var keys server.KeysResponse
	w = get(t, router, "/v1/keys", &keys)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, keys.Keys, 168)
	assert.Equal(t, "A", keys.Keys[0])
}

func TestHealthAndMetrics(t *testing.T) {
	router := setupRouter(t)

	get(t, router, "/v1/distance?from=C&to=a", nil)

	var health server.HealthResponse
	w := get(t, router, "/healthz", &health)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, 1, health.Cached)

	w = get(t, router, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "tonality_tensor_builds_total 1")
	assert.True(t, strings.Contains(body, `tonality_http_requests_total{route="/v1/distance",status="200"} 1`), body)
}

func TestServe_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- server.Serve(ctx, http.NotFoundHandler(), server.Options{
			Addr:            "127.0.0.1:0",
			ShutdownTimeout: time.Second,
		}, quiet)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

func TestServe_BadAddr(t *testing.T) {
	err := server.Serve(context.Background(), http.NotFoundHandler(), server.Options{Addr: "127.0.0.1:-1"}, quiet)
	require.Error(t, err)
}

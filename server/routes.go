package server

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes mounts the query API on a /v1 group.
//
//	GET /v1/distance?from=&to=
//	GET /v1/paths?from=&to=&max=
//	GET /v1/table?from=
//	GET /v1/neighborhood?from=&steps=
//	GET /v1/tensor
//	GET /v1/keys
//
// Every endpoint except keys accepts weight overrides:
// neighbor=, relative=, parallel=, enharmonic=, dominant=, disable=a,b.
func RegisterRoutes(v1 *gin.RouterGroup, h *Handlers) {
	v1.GET("/distance", h.HandleDistance)
	v1.GET("/paths", h.HandlePaths)
	v1.GET("/table", h.HandleTable)
	v1.GET("/neighborhood", h.HandleNeighborhood)
	v1.GET("/tensor", h.HandleTensor)
	v1.GET("/keys", h.HandleKeys)
}

// NewRouter builds the full engine: recovery, request logging and metrics
// middleware, /healthz, /metrics (served from gatherer) and the /v1 group.
// reg receives the HTTP metrics; nil leaves them unregistered.
func NewRouter(h *Handlers, reg prometheus.Registerer, gatherer prometheus.Gatherer) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(h.logger), newHTTPMetrics(reg).middleware())

	router.GET("/healthz", h.HandleHealth)
	if gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}
	RegisterRoutes(router.Group("/v1"), h)

	return router
}

// requestLogger logs one line per request at debug level, warn for 4xx/5xx.
func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		level := slog.LevelDebug
		if status >= 400 {
			level = slog.LevelWarn
		}
		logger.Log(c.Request.Context(), level, "http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds())
	}
}

type httpMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newHTTPMetrics(reg prometheus.Registerer) *httpMetrics {
	f := promauto.With(reg)

	return &httpMetrics{
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "tonality_http_requests_total",
			Help: "Total HTTP requests by route and status",
		}, []string{"route", "status"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tonality_http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
	}
}

func (m *httpMetrics) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.requests.WithLabelValues(route, strconv.Itoa(c.Writer.Status())).Inc()
		m.duration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

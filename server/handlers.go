package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/katalvlaran/tonality/modulation"
	"github.com/katalvlaran/tonality/pitch"
	"github.com/katalvlaran/tonality/tonality"
)

// Error codes returned in ErrorResponse.Code.
const (
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeInvalidKey     = "INVALID_KEY"
	CodeInvalidWeights = "INVALID_WEIGHTS"
	CodeInternal       = "INTERNAL"
)

// Handlers serves the query API over a shared Calculator.
type Handlers struct {
	calc   *tonality.Calculator
	base   modulation.Weights
	logger *slog.Logger
}

// NewHandlers returns handlers answering with base weights unless a request
// overrides them. A nil logger uses slog.Default.
func NewHandlers(calc *tonality.Calculator, base modulation.Weights, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handlers{calc: calc, base: base, logger: logger}
}

// weights applies query overrides to the base weights.
func (h *Handlers) weights(q WeightsQuery) (modulation.Weights, error) {
	w := h.base
	overrides := []struct {
		kind modulation.Kind
		v    *float64
	}{
		{modulation.Neighbor, q.Neighbor},
		{modulation.Relative, q.Relative},
		{modulation.Parallel, q.Parallel},
		{modulation.Enharmonic, q.Enharmonic},
		{modulation.Dominant, q.Dominant},
	}
	for _, o := range overrides {
		if o.v != nil {
			w = w.With(o.kind, *o.v)
		}
	}
	if q.Disable != "" {
		for _, name := range strings.Split(q.Disable, ",") {
			k, err := modulation.ParseKind(name)
			if err != nil {
				return modulation.Weights{}, err
			}
			w = w.Disable(k)
		}
	}

	return w, w.Validate()
}

// fail writes an ErrorResponse with a status derived from err.
func (h *Handlers) fail(c *gin.Context, logger *slog.Logger, err error) {
	status, code := http.StatusInternalServerError, CodeInternal
	switch {
	case errors.Is(err, pitch.ErrInvalidPitchName):
		status, code = http.StatusBadRequest, CodeInvalidKey
	case errors.Is(err, modulation.ErrInvalidWeight), errors.Is(err, modulation.ErrUnknownKind):
		status, code = http.StatusBadRequest, CodeInvalidWeights
	}
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "error", err)
	} else {
		logger.Warn("rejected request", "error", err)
	}
	c.JSON(status, ErrorResponse{Error: err.Error(), Code: code})
}

func (h *Handlers) badRequest(c *gin.Context, logger *slog.Logger, err error) {
	logger.Warn("invalid query", "error", err)
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: CodeInvalidRequest})
}

// parseKeys parses key names in order and stops at the first failure.
func parseKeys(names ...string) ([]pitch.Key, error) {
	keys := make([]pitch.Key, len(names))
	for i, n := range names {
		k, err := pitch.ParseKey(n)
		if err != nil {
			return nil, err
		}
		keys[i] = k
	}

	return keys, nil
}

// HandleDistance handles GET /v1/distance.
//
// Response:
//
//	200 OK: DistanceResponse
//	400 Bad Request: missing or invalid key, invalid weights
func (h *Handlers) HandleDistance(c *gin.Context) {
	logger := h.logger.With("handler", "HandleDistance")

	var req DistanceRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.badRequest(c, logger, err)
		return
	}
	keys, err := parseKeys(req.From, req.To)
	if err != nil {
		h.fail(c, logger, err)
		return
	}
	w, err := h.weights(req.WeightsQuery)
	if err != nil {
		h.fail(c, logger, err)
		return
	}
	d, err := h.calc.Distance(keys[0], keys[1], w)
	if err != nil {
		h.fail(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, NewDistanceResponse(keys[0], keys[1], d, w.String()))
}

// HandlePaths handles GET /v1/paths.
//
// Response:
//
//	200 OK: PathsResponse (empty paths when unreachable)
//	400 Bad Request: missing or invalid key, invalid weights, bad max
func (h *Handlers) HandlePaths(c *gin.Context) {
	logger := h.logger.With("handler", "HandlePaths")

	var req PathsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.badRequest(c, logger, err)
		return
	}
	keys, err := parseKeys(req.From, req.To)
	if err != nil {
		h.fail(c, logger, err)
		return
	}
	w, err := h.weights(req.WeightsQuery)
	if err != nil {
		h.fail(c, logger, err)
		return
	}
	var opts []tonality.PathOption
	if req.Max != nil {
		opts = append(opts, tonality.WithMaxPaths(*req.Max))
	}
	set, err := h.calc.Paths(keys[0], keys[1], w, opts...)
	if err != nil {
		h.fail(c, logger, err)
		return
	}

	resp := NewPathsResponse(keys[0], keys[1], set)
	logger.Debug("paths answered", "from", resp.From, "to", resp.To,
		"count", len(set.Paths), "truncated", set.Truncated)

	c.JSON(http.StatusOK, resp)
}

// HandleTable handles GET /v1/table: distance and one path to every key.
func (h *Handlers) HandleTable(c *gin.Context) {
	logger := h.logger.With("handler", "HandleTable")

	var req TableRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.badRequest(c, logger, err)
		return
	}
	keys, err := parseKeys(req.From)
	if err != nil {
		h.fail(c, logger, err)
		return
	}
	w, err := h.weights(req.WeightsQuery)
	if err != nil {
		h.fail(c, logger, err)
		return
	}
	rows, err := h.calc.Table(keys[0], w)
	if err != nil {
		h.fail(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, NewTableResponse(keys[0], rows))
}

// HandleNeighborhood handles GET /v1/neighborhood: keys within a number of
// modulation steps, ignoring weights except to skip disabled classes.
func (h *Handlers) HandleNeighborhood(c *gin.Context) {
	logger := h.logger.With("handler", "HandleNeighborhood")

	var req NeighborhoodRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.badRequest(c, logger, err)
		return
	}
	keys, err := parseKeys(req.From)
	if err != nil {
		h.fail(c, logger, err)
		return
	}
	w, err := h.weights(req.WeightsQuery)
	if err != nil {
		h.fail(c, logger, err)
		return
	}
	steps, err := h.calc.Neighborhood(c.Request.Context(), keys[0], w, req.Steps)
	if err != nil {
		h.fail(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, NewNeighborhoodResponse(keys[0], steps))
}

// HandleTensor handles GET /v1/tensor.
func (h *Handlers) HandleTensor(c *gin.Context) {
	logger := h.logger.With("handler", "HandleTensor")

	var req TensorRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.badRequest(c, logger, err)
		return
	}
	w, err := h.weights(req.WeightsQuery)
	if err != nil {
		h.fail(c, logger, err)
		return
	}
	t, err := h.calc.Tensor(w)
	if err != nil {
		h.fail(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, NewTensorResponse(t))
}

// HandleKeys handles GET /v1/keys: every key name, plain spellings first.
func (h *Handlers) HandleKeys(c *gin.Context) {
	c.JSON(http.StatusOK, KeysResponse{Keys: pitch.SortedKeyNames()})
}

// HandleHealth handles GET /healthz.
func (h *Handlers) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "healthy", Cached: h.calc.Len()})
}

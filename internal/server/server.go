// Package server exposes the analysis operations over HTTP. Each request
// carries a system description in the same shape as the YAML files read
// by internal/config, encoded as JSON.
package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cwbudde/algo-lti/internal/config"
	"github.com/cwbudde/algo-lti/internal/render"
	"github.com/cwbudde/algo-lti/lti/freq"
	"github.com/cwbudde/algo-lti/lti/sim"
	"github.com/cwbudde/algo-lti/lti/tf"
)

// maxBodyBytes bounds a request body.
const maxBodyBytes = 1 << 20

// Server serves the analysis API.
type Server struct {
	logger   *slog.Logger
	metrics  *Metrics
	gatherer prometheus.Gatherer
}

// New creates a server that logs to logger and records metrics in reg.
func New(logger *slog.Logger, reg *prometheus.Registry) *Server {
	return &Server{
		logger:   logger,
		metrics:  NewMetrics(reg),
		gatherer: reg,
	}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))

	r.Route("/v1", func(r chi.Router) {
		r.Post("/info", s.instrument("info", s.info))
		r.Post("/bode", s.instrument("bode", s.bode))
		r.Post("/response", s.instrument("response", s.response))
	})

	return r
}

// handlerFunc returns the response status, the body to encode and the
// number of computed points.
type handlerFunc func(r *http.Request, cfg *config.Config) (int, any, int)

func (s *Server) instrument(route string, h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		code, body, points := s.serve(w, r, h)
		code, err := writeJSON(w, code, body)
		if err != nil {
			s.logger.ErrorContext(r.Context(), "write response", "route", route, "error", err)
		}

		elapsed := time.Since(start)
		s.metrics.Requests.WithLabelValues(route, strconv.Itoa(code)).Inc()
		s.metrics.Duration.WithLabelValues(route).Observe(elapsed.Seconds())
		s.metrics.Points.WithLabelValues(route).Add(float64(points))

		level := slog.LevelInfo
		if code >= http.StatusBadRequest {
			level = slog.LevelWarn
		}
		s.logger.Log(r.Context(), level, "request",
			"route", route,
			"code", code,
			"points", points,
			"duration", elapsed,
		)
	}
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request, h handlerFunc) (int, any, int) {
	var doc map[string]any
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&doc); err != nil {
		return http.StatusBadRequest, errorBody(err), 0
	}

	cfg, err := config.Decode(doc)
	if err != nil {
		return http.StatusBadRequest, errorBody(err), 0
	}
	if err := cfg.Validate(); err != nil {
		return http.StatusUnprocessableEntity, errorBody(err), 0
	}

	return h(r, cfg)
}

// RootJSON is a complex root.
type RootJSON struct {
	Re float64 `json:"re"`
	Im float64 `json:"im"`
}

// SystemJSON describes one transfer function.
type SystemJSON struct {
	Domain      string     `json:"domain"`
	SampleTime  float64    `json:"sample_time,omitempty"`
	Numerator   []float64  `json:"numerator"`
	Denominator []float64  `json:"denominator"`
	Poles       []RootJSON `json:"poles"`
	Zeroes      []RootJSON `json:"zeroes"`
	Order       int        `json:"order"`
	DCGain      *float64   `json:"dc_gain"`
	Stable      bool       `json:"stable"`
	Text        string     `json:"text"`
}

// InfoResponse is returned by POST /v1/info.
type InfoResponse struct {
	Name       string     `json:"name"`
	Continuous SystemJSON `json:"continuous"`
	Discrete   SystemJSON `json:"discrete"`
}

func describe(t tf.TransferFunction) SystemJSON {
	d := t.Domain()
	return SystemJSON{
		Domain:      d.Kind.String(),
		SampleTime:  d.SampleTime,
		Numerator:   t.Numerator(),
		Denominator: t.Denominator(),
		Poles:       roots(t.Poles()),
		Zeroes:      roots(t.Zeroes()),
		Order:       t.Order(),
		DCGain:      nullable([]float64{t.DCGain()})[0],
		Stable:      t.Stable(),
		Text:        render.Fraction(t.Numerator(), t.Denominator(), render.Variable(t)),
	}
}

func roots(in []complex128) []RootJSON {
	out := make([]RootJSON, len(in))
	for i, r := range in {
		out[i] = RootJSON{Re: real(r), Im: imag(r)}
	}
	return out
}

func (s *Server) info(_ *http.Request, cfg *config.Config) (int, any, int) {
	ct, dt, err := cfg.Build()
	if err != nil {
		return buildStatus(err), errorBody(err), 0
	}

	return http.StatusOK, InfoResponse{
		Name:       cfg.Name,
		Continuous: describe(ct),
		Discrete:   describe(dt),
	}, 0
}

// BodeResponse is returned by POST /v1/bode. Non-finite magnitudes and
// phases (at a pole or zero on the contour) are reported as null.
type BodeResponse struct {
	Omega      []float64  `json:"omega"`
	Continuous BodeSeries `json:"continuous"`
	Discrete   BodeSeries `json:"discrete"`
}

// BodeSeries holds the columns of one Bode plot.
type BodeSeries struct {
	MagDB    []*float64 `json:"mag_db"`
	PhaseRad []*float64 `json:"phase_rad"`
}

func series(points []freq.BodePoint, unwrap bool) BodeSeries {
	phases := freq.Phases(points)
	if unwrap {
		phases = freq.UnwrapPhase(points)
	}
	return BodeSeries{
		MagDB:    nullable(freq.Magnitudes(points)),
		PhaseRad: nullable(phases),
	}
}

func (s *Server) bode(_ *http.Request, cfg *config.Config) (int, any, int) {
	ct, dt, err := cfg.Build()
	if err != nil {
		return buildStatus(err), errorBody(err), 0
	}

	omega := freq.Logspace(cfg.Bode.StartExp, cfg.Bode.StopExp, cfg.Bode.Points)
	return http.StatusOK, BodeResponse{
		Omega:      omega,
		Continuous: series(freq.Bode(ct, omega), cfg.Bode.Unwrap),
		Discrete:   series(freq.Bode(dt, omega), cfg.Bode.Unwrap),
	}, 2 * len(omega)
}

// ResponseResponse is returned by POST /v1/response.
type ResponseResponse struct {
	Type   string     `json:"type"`
	Time   []float64  `json:"time"`
	Output []*float64 `json:"output"`
}

func (s *Server) response(_ *http.Request, cfg *config.Config) (int, any, int) {
	_, dt, err := cfg.Build()
	if err != nil {
		return buildStatus(err), errorBody(err), 0
	}

	rt, err := cfg.ResponseType()
	if err != nil {
		return http.StatusUnprocessableEntity, errorBody(err), 0
	}

	points, err := sim.Simulate(dt, rt, cfg.Response.TEnd)
	if err != nil {
		return http.StatusUnprocessableEntity, errorBody(err), 0
	}

	return http.StatusOK, ResponseResponse{
		Type:   rt.String(),
		Time:   sim.Times(points),
		Output: nullable(sim.Values(points)),
	}, len(points)
}

// buildStatus maps construction failures: a root solver that did not
// converge is a server-side failure, everything else is the caller's.
func buildStatus(err error) int {
	if errors.Is(err, tf.ErrRootsUnavailable) {
		return http.StatusInternalServerError
	}
	return http.StatusUnprocessableEntity
}

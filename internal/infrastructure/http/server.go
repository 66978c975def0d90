package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"pairscan-service/internal/application"
	"pairscan-service/internal/domain"
	"pairscan-service/internal/infrastructure/logx"

	"go.uber.org/zap"
)

const (
	defaultCategory   = domain.CategoryClanker
	defaultAlertLimit = 50
	maxAlertLimit     = 500
)

// Scanner is what the API needs from the scanner service.
type Scanner interface {
	GetScannerData(ctx context.Context, category domain.Category) (domain.Snapshot, error)
	Registry() domain.QuoteRegistry
}

// Metrics observes HTTP traffic and serves the scrape endpoint.
type Metrics interface {
	ObserveHTTP(method, route string, status int, d time.Duration)
	Handler() http.Handler
}

type Server struct {
	scanner Scanner
	alerts  application.AlertReader
	ping    func(ctx context.Context) error
	metrics Metrics
	now     func() time.Time
}

func NewServer(scanner Scanner) *Server {
	return &Server{scanner: scanner, now: time.Now}
}

// SetReadyCheck installs the dependency ping used by /readyz.
func (s *Server) SetReadyCheck(fn func(ctx context.Context) error) { s.ping = fn }

// SetAlertReader enables /api/alerts.
func (s *Server) SetAlertReader(r application.AlertReader) { s.alerts = r }

// SetMetrics enables request metrics and /metrics.
func (s *Server) SetMetrics(m Metrics) { s.metrics = m }

func (s *Server) Ping(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "ts": s.now().UnixMilli()})
}

func (s *Server) Scan(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	category, ok := parseCategory(w, q.Get("quote"))
	if !ok {
		return
	}
	snap, err := s.scanner.GetScannerData(r.Context(), category)
	if err != nil {
		s.scanError(w, r, category, err)
		return
	}
	profile, _ := s.scanner.Registry().Profile(category)
	opts := application.ParseViewOptions(q.Get("sort"), q.Get("window"), q.Get("signalsOnly"))
	view := application.ApplyView(snap, profile, opts, s.now())
	writeJSON(w, http.StatusOK, toScanResponse(view))
}

func (s *Server) Alerts(w http.ResponseWriter, r *http.Request) {
	if s.alerts == nil {
		notFound(w)
		return
	}
	q := r.URL.Query()
	category, ok := parseCategory(w, q.Get("quote"))
	if !ok {
		return
	}
	limit := defaultAlertLimit
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			badRequest(w, "invalid limit")
			return
		}
		limit = min(n, maxAlertLimit)
	}
	alerts, err := s.alerts.Recent(r.Context(), category, limit)
	if err != nil {
		logx.WithFields(r.Context()).Error("alerts.query_failed", zap.Error(err))
		internalError(w)
		return
	}
	writeJSON(w, http.StatusOK, alertsResponse{Quote: string(category), Alerts: toAlertDTOs(alerts)})
}

func parseCategory(w http.ResponseWriter, raw string) (domain.Category, bool) {
	if raw == "" {
		return defaultCategory, true
	}
	c, err := domain.ParseCategory(raw)
	if err != nil {
		badRequest(w, "invalid quote filter")
		return "", false
	}
	return c, true
}

func (s *Server) scanError(w http.ResponseWriter, r *http.Request, category domain.Category, err error) {
	log := logx.WithFields(r.Context()).With(zap.String("category", string(category)))
	var cfgErr *domain.ConfigurationError
	var upErr *domain.UpstreamError
	switch {
	case errors.Is(err, domain.ErrUnknownCategory):
		badRequest(w, "invalid quote filter")
	case errors.As(err, &cfgErr):
		log.Error("scan.misconfigured", zap.String("setting", cfgErr.Setting))
		internalError(w)
	case errors.As(err, &upErr):
		log.Warn("scan.upstream_failed", zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, "scanner unavailable")
	default:
		log.Error("scan.failed", zap.Error(err))
		internalError(w)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Code: status, Message: msg})
}

func badRequest(w http.ResponseWriter, msg string) {
	writeError(w, http.StatusBadRequest, msg)
}

func notFound(w http.ResponseWriter) {
	writeError(w, http.StatusNotFound, http.StatusText(http.StatusNotFound))
}

func internalError(w http.ResponseWriter) {
	writeError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}

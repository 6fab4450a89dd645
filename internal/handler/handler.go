// Package handler exposes the interview modules over HTTP and the message bus.
package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	feat "interview-service/internal/features"
	"interview-service/internal/metrics"
	"interview-service/internal/utils/checker"
	"interview-service/internal/utils/extractor"
	"interview-service/internal/verify"
)

const allowedMethods = "GET,HEAD,PUT,PATCH,POST,DELETE"

// Verifier checks foreign references before a write.
type Verifier interface {
	Ensure(ctx context.Context, refs ...verify.Reference) error
}

type Services struct {
	Configs    *feat.ConfigService
	Interviews *feat.InterviewService
	Results    *feat.ResultService
	Reports    *feat.ReportService
	Questions  *feat.QuestionService
}

type Config struct {
	CORSOrigin  string
	Environment string
}

type Handler struct {
	Services
	verifier  Verifier
	notifier  feat.Notifier
	logger    *zap.Logger
	cfg       Config
	startedAt time.Time
	marshaler runtime.Marshaler
	ext       extractor.Extractor
}

func New(cfg Config, svc Services, verifier Verifier, notifier feat.Notifier, logger *zap.Logger) *Handler {
	if cfg.CORSOrigin == "" {
		cfg.CORSOrigin = "*"
	}
	return &Handler{
		Services:  svc,
		verifier:  verifier,
		notifier:  notifier,
		logger:    logger,
		cfg:       cfg,
		startedAt: time.Now(),
		marshaler: &runtime.JSONBuiltin{},
		ext:       extractor.New(),
	}
}

// route handles one endpoint and returns the status code and body on success.
type route func(r *http.Request, params map[string]string) (int, any, error)

type endpoint struct {
	method  string
	pattern string
	fn      route
}

// HTTPHandler builds the full HTTP surface: every module route plus CORS and
// request id handling.
func (h *Handler) HTTPHandler() (http.Handler, error) {
	mux := runtime.NewServeMux()

	groups := [][]endpoint{
		h.appRoutes(),
		h.configRoutes(),
		h.interviewRoutes(),
		h.resultRoutes(),
		h.reportRoutes(),
		h.questionRoutes(),
	}
	for _, group := range groups {
		for _, e := range group {
			if err := h.handle(mux, e); err != nil {
				return nil, err
			}
		}
	}

	if err := h.registerDocs(mux); err != nil {
		return nil, err
	}

	prom := metricsHandler()
	err := mux.HandlePath(http.MethodGet, "/metrics", func(w http.ResponseWriter, r *http.Request, _ map[string]string) {
		prom.ServeHTTP(w, r)
	})
	if err != nil {
		return nil, err
	}
	return h.middleware(mux), nil
}

func (h *Handler) handle(mux *runtime.ServeMux, e endpoint) error {
	return mux.HandlePath(e.method, e.pattern, func(w http.ResponseWriter, r *http.Request, params map[string]string) {
		start := time.Now()

		code, body, err := e.fn(r, params)
		if err != nil {
			code = runtime.HTTPStatusFromCode(status.Code(err))
			logger := h.requestLogger(r.Context())
			if code >= http.StatusInternalServerError {
				logger.Error("Request failed", zap.String("method", e.method), zap.String("route", e.pattern), zap.Error(err))
			} else {
				logger.Debug("Request rejected", zap.String("method", e.method), zap.String("route", e.pattern), zap.Error(err))
			}
			runtime.HTTPError(r.Context(), mux, &runtime.JSONPb{}, w, r, err)
		} else {
			h.write(w, code, body)
		}

		metrics.HTTPRequests.WithLabelValues(e.method, e.pattern, strconv.Itoa(code)).Inc()
		metrics.HTTPDuration.WithLabelValues(e.method, e.pattern).Observe(time.Since(start).Seconds())
	})
}

// requestLogger tags entries with the request id and the forwarding chain.
func (h *Handler) requestLogger(ctx context.Context) *zap.Logger {
	fields := []zap.Field{zap.String(extractor.RequestID, h.ext.GetRequestID(ctx))}
	if fwd := h.ext.GetXForwardedFor(ctx); fwd != "" {
		fields = append(fields, zap.String(extractor.XForwardedFor, fwd))
	}
	return h.logger.With(fields...)
}

func (h *Handler) write(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", h.marshaler.ContentType(body))
	w.WriteHeader(code)
	if body == nil {
		return
	}
	if err := h.marshaler.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

func (h *Handler) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, requestID := extractor.FromRequest(r.Context(), r)
		w.Header().Set(extractor.RequestID, requestID)

		w.Header().Set("Access-Control-Allow-Origin", h.cfg.CORSOrigin)
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-Id")
		if h.cfg.CORSOrigin != "*" {
			w.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// decode reads a JSON body into v, rejecting unknown fields, and validates it.
func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return status.Errorf(codes.InvalidArgument, "invalid request body: %v", err)
	}
	return checker.Check(v)
}

// notify stamps the payload and hands it to the notifier.
func (h *Handler) notify(pattern string, payload map[string]any) {
	payload["timestamp"] = time.Now().UTC()
	h.notifier.Notify(pattern, payload)
}

func deleted(resource string) map[string]string {
	return map[string]string{"message": resource + " deleted successfully"}
}

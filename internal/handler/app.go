package handler

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	serviceName    = "Interview Service API"
	serviceVersion = "1.0.0"
)

func (h *Handler) appRoutes() []endpoint {
	return []endpoint{
		{http.MethodGet, "/api", h.apiInfo},
		{http.MethodGet, "/api/health", h.health},
	}
}

// metricsHandler is mounted outside the JSON route wrapper.
func metricsHandler() http.Handler {
	return promhttp.Handler()
}

func (h *Handler) apiInfo(_ *http.Request, _ map[string]string) (int, any, error) {
	return http.StatusOK, map[string]any{
		"name":        serviceName,
		"version":     serviceVersion,
		"description": "API for managing technical interviews",
		"status":      "active",
		"environment": h.cfg.Environment,
		"timestamp":   time.Now().UTC().Format(time.RFC3339Nano),
		"endpoints": map[string]string{
			"configs":    "/api/interview-configs",
			"interviews": "/api/interviews",
			"results":    "/api/interview-results",
			"reports":    "/api/interview-reports",
			"questions":  "/api/questions",
		},
	}, nil
}

func (h *Handler) health(_ *http.Request, _ map[string]string) (int, any, error) {
	return http.StatusOK, map[string]any{
		"status":    "ok",
		"uptime":    time.Since(h.startedAt).Seconds(),
		"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
	}, nil
}

// Package api exposes the credential store over a small REST surface:
// credential CRUD under /api/v1/credentials, health and stats endpoints,
// and Prometheus metrics under /metrics. The surrounding portal
// application that collects credentials is not part of this repository;
// the API is the integration point it talks to.
package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter builds the chi router serving the credential API.
func NewRouter(server *Server, metrics *Metrics, apiKey string) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(requestIDMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{requestIDHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Prometheus metrics endpoint (unprotected for scraping)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(apiKeyMiddleware(apiKey, metrics))

		r.Get("/health", metrics.InstrumentHandler("GET", "/api/v1/health", server.handleHealth))
		r.Get("/stats", metrics.InstrumentHandler("GET", "/api/v1/stats", server.handleStats))

		r.Get("/credentials", metrics.InstrumentHandler("GET", "/api/v1/credentials", server.handleList))
		r.Get("/credentials/{ssid}", metrics.InstrumentHandler("GET", "/api/v1/credentials/{ssid}", server.handleGet))
		r.Put("/credentials/{ssid}", metrics.InstrumentHandler("PUT", "/api/v1/credentials/{ssid}", server.handlePut))
		r.Delete("/credentials/{ssid}", metrics.InstrumentHandler("DELETE", "/api/v1/credentials/{ssid}", server.handleDelete))
	})

	return r
}

// StartServer starts the HTTP server with all routes configured. It blocks
// until the listener fails.
func StartServer(credStore CredentialStore, config ServerConfig) error {
	metrics := NewMetrics(prometheus.DefaultRegisterer)
	server := NewServer(credStore, config, metrics)
	router := NewRouter(server, metrics, config.APIKey)

	addr := fmt.Sprintf("%s:%d", config.Bind, config.Port)
	return http.ListenAndServe(addr, router)
}

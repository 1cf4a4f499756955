package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes wires the generation endpoints, health and metrics. The CORS
// handler wraps the router so preflight requests never reach it.
func SetupRoutes(genHandler *GenerateHandler, registry *prometheus.Registry, allowedOrigins []string) http.Handler {
	r := mux.NewRouter()

	r.Use(LoggingMiddleware)
	r.Use(RecoveryMiddleware)

	r.HandleFunc("/api/v1/generate", genHandler.Generate).Methods("POST")
	// Path served by the first version of the service.
	r.HandleFunc("/generate_synthetic_data", genHandler.Generate).Methods("POST")

	r.HandleFunc("/healthz", Health).Methods("GET")
	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{})).Methods("GET")

	return CORSMiddleware(allowedOrigins).Handler(r)
}

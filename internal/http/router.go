package http

import (
	"net/http"

	"quotation-backend/internal/handlers"
	"quotation-backend/internal/middleware"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires the store API
func NewRouter(
	quotationHandler *handlers.QuotationHandler,
	healthHandler *handlers.HealthHandler,
) *mux.Router {
	r := mux.NewRouter()

	// Route templates are only known inside the router
	r.Use(middleware.MetricsMiddleware)

	// Quotation store API
	r.HandleFunc("/quotations", quotationHandler.ListQuotations).Methods("GET")
	r.HandleFunc("/items/{quotation_number}", quotationHandler.GetItems).Methods("GET")
	r.HandleFunc("/items/{quotation_number}/pdf", quotationHandler.ExportPDF).Methods("GET")
	r.HandleFunc("/items/{quotation_number}/{item_code}/{tier}", quotationHandler.UpdateTier).Methods("PUT")

	// Health endpoints (for Kubernetes health checks)
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")

	// Metrics endpoint (Prometheus format)
	r.Handle("/metrics", promhttp.Handler())

	return r
}

// Wrap applies the outer middleware chain shared by every server
func Wrap(router http.Handler, cors func(http.Handler) http.Handler) http.Handler {
	return middleware.PanicRecovery(middleware.RequestLogging(cors(router)))
}

package http

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"studio-backend/internal/handlers"
	"studio-backend/internal/middleware"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	entryHandler *handlers.EntryHandler,
	paymentHandler *handlers.PaymentHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	// Public API routes - Authentication
	r.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Protected API routes - Service entry forms
	formsAPI := r.PathPrefix("/forms").Subrouter()
	formsAPI.Use(authMiddleware.Authenticate)
	formsAPI.HandleFunc("", entryHandler.ListEntries).Methods("GET")
	formsAPI.HandleFunc("", entryHandler.CreateEntry).Methods("POST")
	formsAPI.HandleFunc("/channel-summary", entryHandler.ChannelSummary).Methods("GET")
	formsAPI.HandleFunc("/{id}", entryHandler.GetEntry).Methods("GET")
	formsAPI.HandleFunc("/{id}", entryHandler.UpdateEntry).Methods("PUT")
	formsAPI.HandleFunc("/{id}", entryHandler.DeleteEntry).Methods("DELETE")

	// Protected API routes - Payments
	paymentAPI := r.PathPrefix("/payment").Subrouter()
	paymentAPI.Use(authMiddleware.Authenticate)
	paymentAPI.HandleFunc("/pay", paymentHandler.Pay).Methods("POST")
	paymentAPI.HandleFunc("/pay-all", paymentHandler.PayAll).Methods("POST")
	paymentAPI.HandleFunc("/history", paymentHandler.History).Methods("GET")
	paymentAPI.HandleFunc("/receipt/{id}", paymentHandler.Receipt).Methods("GET")

	// Health endpoint (no auth required - for probes)
	r.HandleFunc("/health", healthHandler.Health).Methods("GET")

	// Metrics endpoint (Prometheus format)
	r.Handle("/metrics", promhttp.Handler())

	return r
}

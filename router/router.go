// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/enquete/cliparse"
	"github.com/danielhkuo/enquete/handlers"
	"github.com/danielhkuo/enquete/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	surveyHandler := handlers.NewSurveyHandler(db, cfg)
	responseHandler := handlers.NewResponseHandler(db, cfg)
	exportHandler := handlers.NewExportHandler(db, cfg)
	accountHandler := handlers.NewAccountHandler(db, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Survey management (admin operations)
	mux.HandleFunc("POST /surveys", middleware.WithLogging(surveyHandler.CreateSurvey))
	mux.HandleFunc("GET /surveys/{id}/admin", middleware.WithLogging(surveyHandler.GetSurveyAdmin))
	mux.HandleFunc("POST /surveys/{id}/questions", middleware.WithLogging(surveyHandler.AddQuestion))
	mux.HandleFunc("POST /surveys/{id}/publish", middleware.WithLogging(surveyHandler.PublishSurvey))
	mux.HandleFunc("POST /surveys/{id}/close", middleware.WithLogging(surveyHandler.CloseSurvey))

	// Response export (admin, plan-gated)
	mux.HandleFunc("GET /surveys/{id}/export", middleware.WithLogging(exportHandler.ExportSurvey))

	// Response collection (public)
	mux.HandleFunc("POST /surveys/{slug}/claim-token", middleware.WithLogging(responseHandler.ClaimToken))
	mux.HandleFunc("POST /surveys/{slug}/responses", middleware.WithLogging(responseHandler.SubmitResponse))
	mux.HandleFunc("GET /surveys/{slug}/my-response", middleware.WithLogging(responseHandler.GetMyResponse))

	// Survey retrieval (public)
	mux.HandleFunc("GET /surveys/{slug}", middleware.WithLogging(responseHandler.GetSurvey))
	mux.HandleFunc("GET /surveys/{slug}/response-count", middleware.WithLogging(responseHandler.GetResponseCount))
	mux.HandleFunc("GET /surveys/{slug}/preview", middleware.WithLogging(responseHandler.GetPreview))

	// Account management
	mux.HandleFunc("POST /accounts/register", middleware.WithLogging(accountHandler.Register))
	mux.HandleFunc("GET /accounts/me", middleware.WithLogging(accountHandler.GetMe))
	mux.HandleFunc("GET /accounts/my-surveys", middleware.WithLogging(accountHandler.GetMySurveys))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("enquete API v1"))
	})

	return mux
}

package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Zcross091/torncity-bank-bot/core/log"
)

// SetupHealthEndpoint registers the liveness probe used by the hosting platform
func SetupHealthEndpoint(router *mux.Router) {
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(`{"status":"ok"}`)); err != nil {
			log.Error("❌ Failed to write health check response: %v", err)
		}
	}).Methods("GET", "HEAD")
}

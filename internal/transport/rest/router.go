package rest

import (
	"net/http"

	"github.com/gorilla/mux"

	"diagbot/internal/bot"
)

// Container holds the router dependencies
type Container struct {
	Flow          *bot.Flow
	WebhookSecret string
}

// NewRouter creates the HTTP router: the Telegram webhook plus a health
// check.
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	webhookHandler := NewWebhookHandler(c.Flow, c.WebhookSecret)
	r.HandleFunc("/webhook", webhookHandler.Handle).Methods("POST")
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	return r
}

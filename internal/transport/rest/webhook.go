package rest

import (
	"encoding/json"
	"log"
	"net/http"

	"diagbot/internal/bot"
	"diagbot/internal/telegram"
)

// secretTokenHeader is the header Telegram echoes the configured secret in.
const secretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"

// WebhookHandler receives Telegram updates and feeds them to the flow.
type WebhookHandler struct {
	flow   *bot.Flow
	secret string
}

// NewWebhookHandler creates the webhook handler. With an empty secret the
// header check is skipped.
func NewWebhookHandler(flow *bot.Flow, secret string) *WebhookHandler {
	return &WebhookHandler{flow: flow, secret: secret}
}

// Handle processes POST /webhook. Malformed payloads are rejected before
// reaching the state machine.
func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if h.secret != "" && r.Header.Get(secretTokenHeader) != h.secret {
		writeError(w, http.StatusForbidden, "invalid secret")
		return
	}

	var upd telegram.Update
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	// Processing failures are answered with 200 anyway: Telegram retries
	// non-2xx responses and would redeliver the same failing update.
	if err := h.flow.HandleUpdate(r.Context(), &upd); err != nil {
		log.Printf("failed to process update %d: %v", upd.UpdateID, err)
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

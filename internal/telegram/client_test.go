package telegram

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient points a client at a stub Bot API server.
func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient("test-token")
	c.baseURL = srv.URL
	return c
}

func TestSendMessageParsesResult(t *testing.T) {
	var gotPath string
	var gotBody sendMessageRequest

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"ok":true,"result":{"message_id":77,"chat":{"id":42}}}`))
	})

	msg, err := client.SendMessage(context.Background(), 42, "привет", nil)
	require.NoError(t, err)
	assert.Equal(t, 77, msg.MessageID)

	assert.Equal(t, "/bottest-token/sendMessage", gotPath)
	assert.Equal(t, int64(42), gotBody.ChatID)
	assert.Equal(t, "привет", gotBody.Text)
	assert.Equal(t, ParseModeMarkdown, gotBody.ParseMode)
}

func TestSendMessageAPIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":false,"description":"Bad Request: chat not found"}`))
	})

	_, err := client.SendMessage(context.Background(), 42, "привет", nil)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "sendMessage", apiErr.Method)
	assert.Contains(t, apiErr.Description, "chat not found")
}

func TestEditMessageNotModifiedIsSuccess(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":false,"description":"Bad Request: message is not modified"}`))
	})

	err := client.EditMessageText(context.Background(), 42, 7, "текст", nil)
	assert.NoError(t, err)
}

func TestEditMessageOtherErrorsPropagate(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":false,"description":"Bad Request: message to edit not found"}`))
	})

	err := client.EditMessageText(context.Background(), 42, 7, "текст", nil)
	require.Error(t, err)
	assert.False(t, IsNotModified(err))
}

func TestIsNotModified(t *testing.T) {
	assert.True(t, IsNotModified(&APIError{Method: "editMessageText", Description: "Bad Request: message is not modified"}))
	assert.False(t, IsNotModified(&APIError{Method: "editMessageText", Description: "Bad Request: message to edit not found"}))
	assert.False(t, IsNotModified(errors.New("message is not modified")))
	assert.False(t, IsNotModified(nil))
}

func TestSendDocumentMultipart(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "42", r.FormValue("chat_id"))
		assert.Equal(t, "отчёт готов", r.FormValue("caption"))

		file, header, err := r.FormFile("document")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "report.pdf", header.Filename)

		w.Write([]byte(`{"ok":true,"result":{}}`))
	})

	err := client.SendDocument(context.Background(), 42, "report.pdf", strings.NewReader("%PDF-1.4"), "отчёт готов")
	assert.NoError(t, err)
}

func TestSetWebhook(t *testing.T) {
	var gotBody setWebhookRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"ok":true,"result":true}`))
	})

	err := client.SetWebhook(context.Background(), "https://example.com/webhook", "secret")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/webhook", gotBody.URL)
	assert.Equal(t, "secret", gotBody.SecretToken)
}

func TestDecodeResponseMalformedJSON(t *testing.T) {
	err := decodeResponse(strings.NewReader("{not json"), "sendMessage", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sendMessage")
}

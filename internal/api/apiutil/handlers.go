// internal/api/apiutil/handlers.go
package apiutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/a-h/templ"
	"github.com/rs/zerolog/log"
)

func WriteJSON(w http.ResponseWriter, status int, payload any) error {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	if err := encoder.Encode(payload); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err := w.Write(buf.Bytes())
	return err
}

// WriteJSONError writes a JSON error body with the given status.
func WriteJSONError(w http.ResponseWriter, status int, message string) {
	_ = WriteJSON(w, status, map[string]string{"error": message})
}

// RenderHTMLComponent renders a templ component, logging and returning a 500
// on failure. Returns false when rendering failed and a response was sent.
func RenderHTMLComponent(ctx context.Context, w http.ResponseWriter, component templ.Component, logMsg, userMsg string) bool {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := component.Render(ctx, w); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg(logMsg)
		http.Error(w, userMsg, http.StatusInternalServerError)
		return false
	}
	return true
}

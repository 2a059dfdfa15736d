package slackhook

import (
	"bytes"
	"io"
	"net/http"

	"github.com/slack-go/slack"
)

// handleInteraction classifies interactive callbacks. No subtype has an
// implemented action yet; a recognized callback gets a server error with a
// diagnostic naming the subtype, so operators can tell "missing feature"
// apart from the 401 an attacker would see.
func (s *Server) handleInteraction(w http.ResponseWriter, r *http.Request, body []byte) {
	s.noteInteraction()
	r.Body = io.NopCloser(bytes.NewReader(body))
	cb, err := slack.InteractionCallbackParse(r)
	if err != nil {
		s.log.Error("interaction payload did not parse", "error", err)
		http.Error(w, "invalid interaction payload", http.StatusInternalServerError)
		return
	}
	s.log.Error("interaction subtype not implemented", "interaction_type", string(cb.Type))
	http.Error(w, "interaction not implemented", http.StatusInternalServerError)
}

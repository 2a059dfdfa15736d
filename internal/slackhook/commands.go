package slackhook

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/slack-go/slack"

	"github.com/tunerelay/tunerelay/internal/compose"
	"github.com/tunerelay/tunerelay/internal/extract"
)

// handleCommands acks the slash command with an empty 200 before any
// network work; resolved results reach the invoking user as a DM from the
// detached pipeline.
func (s *Server) handleCommands(w http.ResponseWriter, r *http.Request, body []byte) {
	s.noteCommand()
	r.Body = io.NopCloser(bytes.NewReader(body))
	cmd, err := slack.SlashCommandParse(r)
	if err != nil {
		http.Error(w, "invalid slash command", http.StatusBadRequest)
		return
	}

	urls := extract.PlainTokens(cmd.Text)
	if len(urls) == 0 {
		s.log.Debug("no urls in slash command")
	} else {
		userID := cmd.UserID
		s.spawnPipeline("slash_command", s.songwhip, urls, func(ctx context.Context, msg compose.Message) error {
			return s.poster.PostDM(ctx, userID, msg)
		})
	}
	w.WriteHeader(http.StatusOK)
}

package slackhook

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/tunerelay/tunerelay/internal/compose"
	"github.com/tunerelay/tunerelay/internal/extract"
)

// eventEnvelope is the outer Events API payload. The inner event stays raw
// until classified; Slack's schemas drift and an unknown shape must degrade
// to an acknowledged no-op, not a decode failure.
type eventEnvelope struct {
	Type      string          `json:"type"`
	Challenge string          `json:"challenge"`
	EventID   string          `json:"event_id"`
	Event     json.RawMessage `json:"event"`
}

type linkSharedEvent struct {
	Channel         string `json:"channel"`
	MessageTS       string `json:"message_ts"`
	IsBotUserMember bool   `json:"is_bot_user_member"`
	Links           []struct {
		URL    string `json:"url"`
		Domain string `json:"domain"`
	} `json:"links"`
}

func (s *Server) handleEvents(w http.ResponseWriter, _ *http.Request, body []byte) {
	s.noteEvent()
	var envelope eventEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	switch envelope.Type {
	case "url_verification":
		// One-shot handshake: echo the challenge back.
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"challenge": envelope.Challenge})
	case "app_rate_limited":
		s.log.Warn("slack reports app rate limited")
		w.WriteHeader(http.StatusOK)
	case "event_callback":
		s.dispatchCallback(envelope)
		w.WriteHeader(http.StatusOK)
	default:
		s.log.Info("unsupported events payload", "type", envelope.Type)
		w.WriteHeader(http.StatusOK)
	}
}

// dispatchCallback classifies the inner event and hands real work to a
// detached pipeline. It never blocks on the network; the caller acks the
// webhook immediately after it returns.
func (s *Server) dispatchCallback(envelope eventEnvelope) {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(envelope.Event, &probe); err != nil {
		s.log.Info("event callback without a readable inner event", "event_id", envelope.EventID)
		return
	}

	switch probe.Type {
	case "link_shared":
		var ev linkSharedEvent
		if err := json.Unmarshal(envelope.Event, &ev); err != nil {
			s.log.Info("malformed link_shared event", "event_id", envelope.EventID, "error", err)
			return
		}
		if !ev.IsBotUserMember {
			return
		}
		urls := make([]string, 0, len(ev.Links))
		for _, link := range ev.Links {
			urls = append(urls, link.URL)
		}
		s.spawnThreadReply("link_shared", urls, ev.Channel, ev.MessageTS)
	case "message":
		var ev messageEvent
		if err := json.Unmarshal(envelope.Event, &ev); err != nil {
			s.log.Info("malformed message event", "event_id", envelope.EventID, "error", err)
			return
		}
		// The bot must not reply to its own echoes, to tombstones, or
		// inside threads it would then re-trigger on.
		if ev.isBotMessage() || ev.isHidden() || ev.isThreaded() {
			return
		}
		s.spawnThreadReply("message", extract.SlackFormatted(ev.Text), ev.Channel, ev.TS)
	default:
		s.log.Info("unhandled event subtype", "type", probe.Type, "event_id", envelope.EventID)
	}
}

func (s *Server) spawnThreadReply(task string, urls []string, channelID, threadTS string) {
	s.spawnPipeline(task, s.songlink, urls, func(ctx context.Context, msg compose.Message) error {
		return s.poster.PostChannel(ctx, channelID, threadTS, msg)
	})
}

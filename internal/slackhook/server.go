// Package slackhook serves the signed Slack webhook surface and drives the
// link-resolution pipeline.
package slackhook

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/tunerelay/tunerelay/internal/compose"
	"github.com/tunerelay/tunerelay/internal/deliver"
	"github.com/tunerelay/tunerelay/internal/resolve"
)

// Slack retries webhook deliveries unless told not to; all real work here
// runs detached after the ack, so a retry would duplicate replies.
const noRetryHeader = "X-Slack-No-Retry"

// Server holds the webhook routes and their collaborators. All fields are
// read-only after construction except the metrics counters.
type Server struct {
	log      *slog.Logger
	verifier *Verifier
	poster   deliver.Poster
	songlink resolve.Service
	songwhip resolve.Service

	metricsState
}

// Options configures a Server.
type Options struct {
	Logger   *slog.Logger
	Verifier *Verifier
	Poster   deliver.Poster
	Songlink resolve.Service
	Songwhip resolve.Service
}

// NewServer builds a Server from its collaborators.
func NewServer(opts Options) *Server {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	s := &Server{
		log:      log,
		verifier: opts.Verifier,
		poster:   opts.Poster,
		songlink: opts.Songlink,
		songwhip: opts.Songwhip,
	}
	s.metrics.StartedAt = time.Now().UTC()
	return s
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleRoot)
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.HandleFunc("/status", s.handleStatus)
	mux.HandleFunc("/slack/events", s.signed(s.handleEvents))
	mux.HandleFunc("/slack/commands", s.signed(s.handleCommands))
	mux.HandleFunc("/slack/interaction", s.signed(s.handleInteraction))
	return mux
}

// signed gates a route behind signature verification. Rejected requests
// terminate here and run none of the downstream pipeline.
func (s *Server) signed(next func(http.ResponseWriter, *http.Request, []byte)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(noRetryHeader, "1")
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "bad body", http.StatusBadRequest)
			return
		}
		if err := s.verifier.Verify(r.Header, body); err != nil {
			s.noteAuthRejected()
			s.log.Warn("rejected request", "path", r.URL.Path, "error", err)
			http.Error(w, "invalid slack signature", http.StatusUnauthorized)
			return
		}
		next(w, r, body)
	}
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	fmt.Fprint(w, "tunerelay")
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprint(w, `{"ok":true}`)
}

// spawnPipeline runs resolution and delivery for one inbound event as a
// detached background task. The HTTP ack never waits on it and nothing
// observes its completion; failures are logged and counted only. There is
// deliberately no cancellation path.
func (s *Server) spawnPipeline(task string, svc resolve.Service, urls []string, post func(context.Context, compose.Message) error) {
	if len(urls) == 0 {
		return
	}
	log := s.log.With("task", task, "trace_id", uuid.NewString())
	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error("background task panicked", "panic", rec)
			}
		}()
		ctx := context.Background()

		results := resolve.All(ctx, svc, urls)
		for _, res := range results {
			if res.Err != nil {
				s.noteResolveError(res.Err)
				log.Error("link resolution failed", "service", svc.Name(), "url", res.URL, "error", res.Err)
			}
		}
		metas := resolve.Found(results)
		s.noteResolved(len(metas))

		msg, ok := compose.Build(metas)
		if !ok {
			log.Debug("no resolvable links, skipping reply")
			return
		}
		if err := post(ctx, msg); err != nil {
			s.noteDeliveryError(err)
			log.Error("reply delivery failed", "error", err)
			return
		}
		s.notePosted()
	}()
}

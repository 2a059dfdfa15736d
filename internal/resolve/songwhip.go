package resolve

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"
)

// DefaultSongwhipBase is the public Songwhip endpoint.
const DefaultSongwhipBase = "https://songwhip.com"

// Songwhip resolves music URLs via Songwhip's create-page endpoint.
type Songwhip struct {
	base    string
	timeout time.Duration

	clientOnce sync.Once
	client     *http.Client
}

// NewSongwhip returns a Songwhip service with a lazily built, process-wide
// HTTP client.
func NewSongwhip(base string, timeout time.Duration) *Songwhip {
	if strings.TrimSpace(base) == "" {
		base = DefaultSongwhipBase
	}
	return &Songwhip{base: strings.TrimRight(base, "/"), timeout: timeout}
}

func (s *Songwhip) Name() string { return "songwhip" }

func (s *Songwhip) httpClient() *http.Client {
	s.clientOnce.Do(func() {
		s.client = &http.Client{Timeout: s.timeout}
	})
	return s.client
}

type songwhipResponse struct {
	Name    string           `json:"name"`
	URL     string           `json:"url"`
	Image   *string          `json:"image"`
	Artists []songwhipArtist `json:"artists"`
}

type songwhipArtist struct {
	Name string `json:"name"`
}

// Lookup posts the URL to Songwhip. A 400 means no match and yields
// (nil, nil).
func (s *Songwhip) Lookup(ctx context.Context, rawURL string) (*Metadata, error) {
	payload, err := json.Marshal(map[string]string{"url": rawURL})
	if err != nil {
		return nil, fmt.Errorf("songwhip request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.base+"/", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("songwhip request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("songwhip lookup: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusBadRequest {
		slog.Debug("songwhip found no match for a url")
		io.Copy(io.Discard, resp.Body)
		return nil, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("songwhip status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var body songwhipResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("songwhip decode: %w", err)
	}
	meta := &Metadata{
		Title:   body.Name,
		PageURL: body.URL,
	}
	if body.Image != nil {
		meta.ThumbnailURL = *body.Image
	}
	for _, a := range body.Artists {
		meta.Artists = append(meta.Artists, a.Name)
	}
	return meta, nil
}

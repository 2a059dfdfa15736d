package resolve

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// DefaultSonglinkBase is the public Songlink/Odesli API host.
const DefaultSonglinkBase = "https://api.song.link"

const songlinkPath = "/v1-alpha.1/links"

// Songlink resolves music URLs via the Songlink/Odesli links API.
type Songlink struct {
	base    string
	timeout time.Duration

	clientOnce sync.Once
	client     *http.Client
}

// NewSonglink returns a Songlink service. The HTTP client is created on
// first lookup and reused for the life of the process.
func NewSonglink(base string, timeout time.Duration) *Songlink {
	if strings.TrimSpace(base) == "" {
		base = DefaultSonglinkBase
	}
	return &Songlink{base: strings.TrimRight(base, "/"), timeout: timeout}
}

func (s *Songlink) Name() string { return "songlink" }

func (s *Songlink) httpClient() *http.Client {
	s.clientOnce.Do(func() {
		s.client = &http.Client{Timeout: s.timeout}
	})
	return s.client
}

type songlinkResponse struct {
	PageURL            string                      `json:"pageUrl"`
	EntityUniqueID     string                      `json:"entityUniqueId"`
	EntitiesByUniqueID map[string]songlinkEntity   `json:"entitiesByUniqueId"`
	LinksByPlatform    map[string]songlinkPlatform `json:"linksByPlatform"`
}

type songlinkEntity struct {
	Title        string `json:"title"`
	ArtistName   string `json:"artistName"`
	ThumbnailURL string `json:"thumbnailUrl"`
}

type songlinkPlatform struct {
	URL string `json:"url"`
}

// Lookup queries the links API for one URL. A 400 means the service has no
// match for that input and yields (nil, nil).
func (s *Songlink) Lookup(ctx context.Context, rawURL string) (*Metadata, error) {
	q := url.Values{"url": []string{rawURL}}
	endpoint := s.base + songlinkPath + "?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("songlink request: %w", err)
	}
	resp, err := s.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("songlink lookup: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusBadRequest {
		// Candidate URLs can carry user-identifying paths; keep them out of
		// the log for non-matches.
		slog.Debug("songlink found no match for a url")
		io.Copy(io.Discard, resp.Body)
		return nil, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("songlink status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var body songlinkResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("songlink decode: %w", err)
	}
	return body.metadata(), nil
}

func (r *songlinkResponse) metadata() *Metadata {
	entity, ok := r.EntitiesByUniqueID[r.EntityUniqueID]
	if !ok {
		for _, e := range r.EntitiesByUniqueID {
			entity = e
			break
		}
	}
	meta := &Metadata{
		Title:        entity.Title,
		PageURL:      r.PageURL,
		ThumbnailURL: entity.ThumbnailURL,
	}
	if entity.ArtistName != "" {
		meta.Artists = []string{entity.ArtistName}
	}
	if len(r.LinksByPlatform) > 0 {
		meta.Platforms = make(map[string]string, len(r.LinksByPlatform))
		for platform, link := range r.LinksByPlatform {
			meta.Platforms[platform] = link.URL
		}
	}
	return meta
}

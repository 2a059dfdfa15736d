// Package compose turns resolved link metadata into the structured reply.
package compose

import (
	"sort"
	"strings"

	"github.com/tunerelay/tunerelay/internal/resolve"
)

// platformLabels holds the approved display label per platform key.
// Platforms without an entry are hidden from the reply rather than shown
// with a raw key.
var platformLabels = map[string]string{
	"appleMusic":   ":apple-inc: _*Apple Music*_",
	"spotify":      ":spotify: _*Spotify*_",
	"deezer":       ":deezer: _*Deezer*_",
	"youtube":      ":youtube: _*Youtube*_",
	"youtubeMusic": ":youtube-music: _*YT Music*_",
}

// PlatformLink is one labeled deep link inside a reply section.
type PlatformLink struct {
	Key   string
	Label string
	URL   string
}

// Section is the reply content for one resolved link: a clickable
// title/artist line, an optional thumbnail, and labeled deep links.
type Section struct {
	Title        string
	ArtistLine   string
	PageURL      string
	ThumbnailURL string
	Links        []PlatformLink
}

// Message is the full structured reply, one section per resolved link in
// the order the URLs appeared in the source text.
type Message struct {
	Sections []Section
}

// Build composes a Message from resolved metadata. The second return value
// is false when there is nothing to send, in which case the caller must
// skip the outbound post entirely.
func Build(records []*resolve.Metadata) (Message, bool) {
	if len(records) == 0 {
		return Message{}, false
	}
	msg := Message{Sections: make([]Section, 0, len(records))}
	for _, rec := range records {
		msg.Sections = append(msg.Sections, sectionFor(rec))
	}
	return msg, true
}

func sectionFor(rec *resolve.Metadata) Section {
	sec := Section{
		Title:        rec.Title,
		ArtistLine:   strings.Join(rec.Artists, ", "),
		PageURL:      rec.PageURL,
		ThumbnailURL: rec.ThumbnailURL,
	}

	keys := make([]string, 0, len(rec.Platforms))
	for key := range rec.Platforms {
		if _, ok := platformLabels[key]; ok {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	for _, key := range keys {
		sec.Links = append(sec.Links, PlatformLink{
			Key:   key,
			Label: platformLabels[key],
			URL:   rec.Platforms[key],
		})
	}
	return sec
}

package compose

import (
	"testing"

	"github.com/tunerelay/tunerelay/internal/resolve"
)

func TestBuildNothingToSend(t *testing.T) {
	if _, ok := Build(nil); ok {
		t.Fatal("empty input must signal nothing to send")
	}
	if _, ok := Build([]*resolve.Metadata{}); ok {
		t.Fatal("empty slice must signal nothing to send")
	}
}

func TestBuildSkipsUnlabeledPlatforms(t *testing.T) {
	msg, ok := Build([]*resolve.Metadata{{
		Title:   "What We Worked For",
		Artists: []string{"Against Me!"},
		PageURL: "https://song.link/us/i/44733632",
		Platforms: map[string]string{
			"spotify": "https://open.spotify.com/track/12Pg",
			"napster": "https://play.napster.com/track/tra.7345970",
		},
	}})
	if !ok {
		t.Fatal("expected a message")
	}
	if len(msg.Sections) != 1 {
		t.Fatalf("sections=%d", len(msg.Sections))
	}
	links := msg.Sections[0].Links
	if len(links) != 1 {
		t.Fatalf("expected exactly one labeled link, got %v", links)
	}
	if links[0].Key != "spotify" || links[0].URL != "https://open.spotify.com/track/12Pg" {
		t.Fatalf("link=%+v", links[0])
	}
	if links[0].Label == "" || links[0].Label == "spotify" {
		t.Fatalf("raw key leaked as label: %q", links[0].Label)
	}
}

func TestBuildSortsLinksByPlatformKey(t *testing.T) {
	msg, _ := Build([]*resolve.Metadata{{
		Title: "T",
		Platforms: map[string]string{
			"youtube":      "https://youtube.example",
			"appleMusic":   "https://apple.example",
			"spotify":      "https://spotify.example",
			"deezer":       "https://deezer.example",
			"youtubeMusic": "https://ytm.example",
		},
	}})
	got := make([]string, 0, 5)
	for _, l := range msg.Sections[0].Links {
		got = append(got, l.Key)
	}
	want := []string{"appleMusic", "deezer", "spotify", "youtube", "youtubeMusic"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order=%v, want %v", got, want)
		}
	}
}

func TestBuildJoinsArtistsWithCommaSpace(t *testing.T) {
	msg, _ := Build([]*resolve.Metadata{{
		Title:   "Duet",
		Artists: []string{"First Artist", "Second Artist"},
	}})
	if msg.Sections[0].ArtistLine != "First Artist, Second Artist" {
		t.Fatalf("artist line=%q", msg.Sections[0].ArtistLine)
	}
}

func TestBuildPreservesSectionOrder(t *testing.T) {
	msg, _ := Build([]*resolve.Metadata{
		{Title: "first"},
		{Title: "second"},
		{Title: "third"},
	})
	if len(msg.Sections) != 3 || msg.Sections[0].Title != "first" || msg.Sections[2].Title != "third" {
		t.Fatalf("sections out of order: %+v", msg.Sections)
	}
}

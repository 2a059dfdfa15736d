package extract

import (
	"reflect"
	"testing"
)

func TestSlackFormattedExtractsInOrder(t *testing.T) {
	got := SlackFormatted("<https://a.example|A> and <https://b.example>")
	want := []string{"https://a.example", "https://b.example"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestSlackFormattedKeepsDuplicates(t *testing.T) {
	got := SlackFormatted("<https://a.example> then <https://a.example|again>")
	if len(got) != 2 || got[0] != got[1] {
		t.Fatalf("expected duplicate preserved, got %v", got)
	}
}

func TestSlackFormattedNoLinks(t *testing.T) {
	if got := SlackFormatted("plain text, nothing wrapped"); len(got) != 0 {
		t.Fatalf("expected no urls, got %v", got)
	}
}

func TestPlainTokensPrefixesScheme(t *testing.T) {
	got := PlainTokens("check out example.com/x and not-a-url!!")
	want := []string{"https://example.com/x"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestPlainTokensKeepsExplicitScheme(t *testing.T) {
	got := PlainTokens("https://open.spotify.com/track/x1 music.apple.com/album/y2")
	want := []string{"https://open.spotify.com/track/x1", "https://music.apple.com/album/y2"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestPlainTokensEmptyText(t *testing.T) {
	if got := PlainTokens("   "); len(got) != 0 {
		t.Fatalf("expected no urls, got %v", got)
	}
}

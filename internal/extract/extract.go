// Package extract pulls candidate URLs out of Slack message text.
package extract

import (
	"net/url"
	"regexp"
	"strings"
)

// Slack wraps links in angle brackets, optionally with a |label suffix.
var slackLinkPattern = regexp.MustCompile(`<(?P<url>.*?)[|>]`)

// SlackFormatted extracts the URL portion of every <url> or <url|label>
// token in a Slack-formatted message, in source order. Duplicates are kept.
func SlackFormatted(message string) []string {
	var urls []string
	for _, m := range slackLinkPattern.FindAllStringSubmatch(message, -1) {
		urls = append(urls, m[1])
	}
	return urls
}

// PlainTokens splits free-form slash-command text on whitespace and keeps
// every token that parses as an absolute URL. A token without a scheme gets
// one retry with an https:// prefix; tokens that still fail are dropped.
// Slash-command text is free-form, so dropped tokens are not an error.
func PlainTokens(raw string) []string {
	var urls []string
	for _, word := range strings.Fields(raw) {
		if u, err := url.Parse(word); err == nil && u.Scheme != "" && hostLike(u.Host) {
			urls = append(urls, word)
			continue
		}
		withScheme := "https://" + word
		if u, err := url.Parse(withScheme); err == nil && hostLike(u.Host) {
			urls = append(urls, withScheme)
		}
	}
	return urls
}

// hostLike filters out the bare words that net/url happily accepts as a
// host ("check", "not-a-url!!"): a candidate host needs a dot-separated
// domain built from hostname characters.
func hostLike(host string) bool {
	host = strings.TrimSuffix(host, ".")
	if !strings.Contains(host, ".") {
		return false
	}
	for _, r := range host {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '.' || r == '-' || r == ':':
		default:
			return false
		}
	}
	return true
}

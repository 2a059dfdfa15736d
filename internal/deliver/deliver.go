// Package deliver posts composed replies back into Slack.
package deliver

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/slack-go/slack"

	"github.com/tunerelay/tunerelay/internal/compose"
)

// Poster delivers a composed message to a reply target. Implementations do
// not retry; a delivery error is terminal for the caller.
type Poster interface {
	// PostChannel posts into a channel, threaded under threadTS when set.
	PostChannel(ctx context.Context, channelID, threadTS string, msg compose.Message) error
	// PostDM opens a direct conversation with the user and posts into it.
	PostDM(ctx context.Context, userID string, msg compose.Message) error
}

// SlackPoster posts via the Slack Web API with one shared client.
type SlackPoster struct {
	api *slack.Client
}

// NewSlackPoster builds the process-wide Slack client. apiBase overrides
// the Web API endpoint for tests.
func NewSlackPoster(botToken, apiBase string, client *http.Client) *SlackPoster {
	opts := []slack.Option{}
	if client != nil {
		opts = append(opts, slack.OptionHTTPClient(client))
	}
	if base := strings.TrimSpace(apiBase); base != "" {
		opts = append(opts, slack.OptionAPIURL(strings.TrimRight(base, "/")+"/"))
	}
	return &SlackPoster{api: slack.New(botToken, opts...)}
}

func (p *SlackPoster) PostChannel(ctx context.Context, channelID, threadTS string, msg compose.Message) error {
	opts := []slack.MsgOption{
		slack.MsgOptionBlocks(Blocks(msg)...),
		slack.MsgOptionDisableLinkUnfurl(),
		slack.MsgOptionDisableMediaUnfurl(),
	}
	if ts := strings.TrimSpace(threadTS); ts != "" {
		opts = append(opts, slack.MsgOptionTS(ts))
	}
	if _, _, err := p.api.PostMessageContext(ctx, channelID, opts...); err != nil {
		return fmt.Errorf("post to channel %s: %w", channelID, err)
	}
	return nil
}

func (p *SlackPoster) PostDM(ctx context.Context, userID string, msg compose.Message) error {
	channel, _, _, err := p.api.OpenConversationContext(ctx, &slack.OpenConversationParameters{
		Users: []string{userID},
	})
	if err != nil {
		return fmt.Errorf("open conversation with %s: %w", userID, err)
	}
	if err := p.PostChannel(ctx, channel.ID, "", msg); err != nil {
		return fmt.Errorf("dm user %s: %w", userID, err)
	}
	return nil
}

// Blocks renders a composed message as Block Kit sections: per link one
// title/artist section (with the thumbnail as accessory when present) and,
// when any platform survived label filtering, one fields section of deep
// links.
func Blocks(msg compose.Message) []slack.Block {
	var blocks []slack.Block
	for _, sec := range msg.Sections {
		blocks = append(blocks, mainBlock(sec))
		if len(sec.Links) > 0 {
			blocks = append(blocks, linksBlock(sec))
		}
	}
	return blocks
}

func mainBlock(sec compose.Section) slack.Block {
	line := fmt.Sprintf("<%s|_*%s*_> \n by %s", sec.PageURL, sec.Title, sec.ArtistLine)
	text := slack.NewTextBlockObject(slack.MarkdownType, line, false, false)
	var accessory *slack.Accessory
	if sec.ThumbnailURL != "" {
		accessory = slack.NewAccessory(slack.NewImageBlockElement(sec.ThumbnailURL, "song artwork"))
	}
	return slack.NewSectionBlock(text, nil, accessory)
}

func linksBlock(sec compose.Section) slack.Block {
	fields := make([]*slack.TextBlockObject, 0, len(sec.Links))
	for _, link := range sec.Links {
		field := fmt.Sprintf("<%s|%s>", link.URL, link.Label)
		fields = append(fields, slack.NewTextBlockObject(slack.MarkdownType, field, false, false))
	}
	return slack.NewSectionBlock(nil, fields, nil)
}

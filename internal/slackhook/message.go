package slackhook

// messageEvent is the subset of Slack's message event the relay inspects.
type messageEvent struct {
	Subtype  string `json:"subtype"`
	BotID    string `json:"bot_id"`
	Hidden   bool   `json:"hidden"`
	ThreadTS string `json:"thread_ts"`
	Channel  string `json:"channel"`
	User     string `json:"user"`
	Text     string `json:"text"`
	TS       string `json:"ts"`
}

func (e messageEvent) isBotMessage() bool {
	return e.Subtype == "bot_message" || e.BotID != ""
}

func (e messageEvent) isThreaded() bool {
	return e.ThreadTS != ""
}

func (e messageEvent) isHidden() bool {
	return e.Hidden
}

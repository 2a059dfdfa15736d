// Package config provides configuration types and loading for tunerelay.
package config

import "time"

// Config is the root configuration struct, read once from the environment
// at startup and immutable afterwards.
type Config struct {
	Server    ServerConfig
	Slack     SlackConfig
	Resolvers ResolversConfig
}

// ServerConfig groups the HTTP listener settings.
type ServerConfig struct {
	ListenAddr      string        `envconfig:"LISTEN_ADDR" default:":3000"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// SlackConfig carries the two credentials the relay consumes. Both are
// opaque values owned by the surrounding deployment.
type SlackConfig struct {
	SigningSecret string `envconfig:"SIGNING_SECRET"`
	BotToken      string `envconfig:"BOT_TOKEN"`
	APIBase       string `envconfig:"API_BASE" default:"https://slack.com/api"`
}

// ResolversConfig configures the external lookup services.
type ResolversConfig struct {
	SonglinkBase string        `envconfig:"SONGLINK_BASE" default:"https://api.song.link"`
	SongwhipBase string        `envconfig:"SONGWHIP_BASE" default:"https://songwhip.com"`
	HTTPTimeout  time.Duration `envconfig:"HTTP_TIMEOUT" default:"20s"`
}

package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TUNERELAY_SLACK_SIGNING_SECRET", "sekrit")
	t.Setenv("TUNERELAY_SLACK_BOT_TOKEN", "xoxb-token")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.ListenAddr != ":3000" {
		t.Fatalf("listen addr=%q", cfg.Server.ListenAddr)
	}
	if cfg.Resolvers.SonglinkBase != "https://api.song.link" {
		t.Fatalf("songlink base=%q", cfg.Resolvers.SonglinkBase)
	}
	if cfg.Resolvers.HTTPTimeout != 20*time.Second {
		t.Fatalf("timeout=%v", cfg.Resolvers.HTTPTimeout)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("TUNERELAY_SLACK_SIGNING_SECRET", "sekrit")
	t.Setenv("TUNERELAY_SLACK_BOT_TOKEN", "xoxb-token")
	t.Setenv("TUNERELAY_SERVER_LISTEN_ADDR", "127.0.0.1:9000")
	t.Setenv("TUNERELAY_RESOLVERS_SONGWHIP_BASE", "http://localhost:8081")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.ListenAddr != "127.0.0.1:9000" {
		t.Fatalf("listen addr=%q", cfg.Server.ListenAddr)
	}
	if cfg.Resolvers.SongwhipBase != "http://localhost:8081" {
		t.Fatalf("songwhip base=%q", cfg.Resolvers.SongwhipBase)
	}
}

func TestLoadMissingCredentials(t *testing.T) {
	t.Setenv("TUNERELAY_SLACK_SIGNING_SECRET", "")
	t.Setenv("TUNERELAY_SLACK_BOT_TOKEN", "")

	_, err := Load()
	if err == nil {
		t.Fatal("expected an error for missing credentials")
	}
	if !strings.Contains(err.Error(), "TUNERELAY_SLACK_SIGNING_SECRET") || !strings.Contains(err.Error(), "TUNERELAY_SLACK_BOT_TOKEN") {
		t.Fatalf("error should name the missing vars: %v", err)
	}
}

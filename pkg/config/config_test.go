package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const sampleConfig = `
environment: test
server:
  port: 8080
feed:
  source: websocket
  websocket_url: wss://example.test/ws
  symbols: [LSKUSDT]
`

func writeConfig(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(p, []byte(sampleConfig), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return p
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Analysis.HistoryWindow != 120 {
		t.Fatalf("history window = %d, want default 120", cfg.Analysis.HistoryWindow)
	}
	if cfg.Analysis.CacheTTL.OnChain != time.Minute {
		t.Fatalf("onchain ttl = %v, want default 1m", cfg.Analysis.CacheTTL.OnChain)
	}
	if cfg.Redis.Prefix != "liskpredict" {
		t.Fatalf("redis prefix = %q, want default", cfg.Redis.Prefix)
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9091")
	t.Setenv("SYMBOLS", "BINANCE:LSKUSDT,BINANCE:BTCUSDT")

	cfg, err := LoadWithEnv(writeConfig(t))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != 9091 {
		t.Fatalf("port = %d, want env override 9091", cfg.Server.Port)
	}
	if len(cfg.Feed.Symbols) != 2 {
		t.Fatalf("symbols = %v, want 2 from env", cfg.Feed.Symbols)
	}
}

func TestLoadWithEnvInvalidPortKeepsFileValue(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-port")

	cfg, err := LoadWithEnv(writeConfig(t))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Fatalf("port = %d, want file value 8080", cfg.Server.Port)
	}
}

func TestValidateRejectsShortHistoryWindow(t *testing.T) {
	cfg, err := Load(writeConfig(t))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg.Analysis.HistoryWindow = 10
	if err := cfg.Validate(); err == nil {
		t.Fatal("history window below the indicator minimum should fail validation")
	}
}

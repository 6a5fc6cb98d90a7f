package config

import (
	"sync"
	"testing"
)

func resetGlobal() {
	SetConfig(nil)
	initOnce = sync.Once{}
}

func TestInitialize(t *testing.T) {
	resetGlobal()
	t.Cleanup(resetGlobal)

	path := writeConfig(t, "parser:\n  split_mode: naive\n")
	if err := Initialize(path); err != nil {
		t.Fatalf("failed to initialize config: %v", err)
	}

	cfg := GetConfig()
	if cfg == nil {
		t.Fatal("expected non-nil config after initialization")
	}
	if cfg.Parser.SplitMode != "naive" {
		t.Errorf("expected split mode %q, got %q", "naive", cfg.Parser.SplitMode)
	}
}

func TestInitialize_MultipleCallsIgnored(t *testing.T) {
	resetGlobal()
	t.Cleanup(resetGlobal)

	first := writeConfig(t, "parser:\n  max_depth: 10\n")
	second := writeConfig(t, "parser:\n  max_depth: 20\n")

	if err := Initialize(first); err != nil {
		t.Fatalf("first initialize failed: %v", err)
	}
	if err := Initialize(second); err != nil {
		t.Fatalf("second initialize failed: %v", err)
	}

	if got := GetConfig().Parser.MaxDepth; got != 10 {
		t.Errorf("expected first config to win, got max depth %d", got)
	}
}

func TestReloadConfig(t *testing.T) {
	resetGlobal()
	t.Cleanup(resetGlobal)

	path := writeConfig(t, "parser:\n  max_depth: 10\n")
	if err := Initialize(path); err != nil {
		t.Fatalf("initialize failed: %v", err)
	}

	bad := writeConfig(t, "parser:\n  split_mode: loose\n")
	if err := ReloadConfig(bad); err == nil {
		t.Fatal("expected reload error")
	}
	if got := GetConfig().Parser.MaxDepth; got != 10 {
		t.Errorf("expected config unchanged after failed reload, got %d", got)
	}

	good := writeConfig(t, "parser:\n  max_depth: 30\n")
	if err := ReloadConfig(good); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if got := GetConfig().Parser.MaxDepth; got != 30 {
		t.Errorf("expected reloaded max depth 30, got %d", got)
	}
}

func TestGetOrDefault(t *testing.T) {
	resetGlobal()
	t.Cleanup(resetGlobal)

	if cfg := GetOrDefault(); cfg.Parser.MaxDepth != DefaultMaxDepth {
		t.Errorf("expected defaults, got max depth %d", cfg.Parser.MaxDepth)
	}

	SetConfig(NewTestConfig().WithMaxDepth(5).Build())
	if cfg := GetOrDefault(); cfg.Parser.MaxDepth != 5 {
		t.Errorf("expected global config, got max depth %d", cfg.Parser.MaxDepth)
	}
}

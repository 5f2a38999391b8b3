package app

import (
	"path/filepath"
	"testing"
)

func TestLoadConfigFile_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, `
root: /exports/archive
owner: John Doe
excludeGroupChats: false
exhaustiveLists: true
minMessages: 50
`)
	fc, err := LoadConfigFile(path)
	if err != nil {
		t.Fatal(err)
	}
	cfg := DefaultConfig()
	fc.Apply(&cfg)
	if cfg.RootPath != "/exports/archive" || cfg.OwnerName != "John Doe" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.ExcludeGroupChats {
		t.Fatal("explicit false not applied")
	}
	if !cfg.ExhaustiveLists || cfg.MinMessagesPerConversation != 50 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	// Fields absent from the file keep their defaults.
	if !cfg.IgnorePlaceholderSender {
		t.Fatal("absent field overrode the default")
	}
}

func TestLoadConfigFile_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	writeFile(t, path, `{"owner": "Jane", "verbose": true}`)
	fc, err := LoadConfigFile(path)
	if err != nil {
		t.Fatal(err)
	}
	cfg := DefaultConfig()
	fc.Apply(&cfg)
	if cfg.OwnerName != "Jane" || !cfg.Verbose {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("MESSENGER_STATS_ROOT", "/from/env")
	t.Setenv("MESSENGER_STATS_OWNER", "Env Owner")
	cfg := DefaultConfig()
	ApplyEnv(&cfg)
	if cfg.RootPath != "/from/env" || cfg.OwnerName != "Env Owner" {
		t.Fatalf("env not applied: %+v", cfg)
	}
}

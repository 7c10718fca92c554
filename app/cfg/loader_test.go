package cfg

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetVersion(t *testing.T) {
	// Test default version
	if GetVersion() == "" {
		t.Error("GetVersion should never return empty string")
	}

	// Test that version is at least "dev" or "unknown"
	version := GetVersion()
	if version != "dev" && version != "unknown" {
		// This is fine, version could be set at build time
		t.Logf("Version: %s", version)
	}
}

func TestResolveAppliesDefaults(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), "data")

	cfg, err := resolve(&rawCfg{
		Store:             "json",
		DataDir:           dataDir,
		CacheFile:         filepath.Join(t.TempDir(), "last_query.json"),
		ConfigFile:        "./sources.yml",
		SchedulerInterval: 0,
		UserAgent:         "Test Agent",
		Timezone:          "UTC",
	})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := os.Stat(dataDir); err != nil {
		t.Errorf("Expected data dir to be created, got %v", err)
	}
	if cfg.ReportsDir != filepath.Join(dataDir, "reports") {
		t.Errorf("Expected reports dir under data dir, got '%s'", cfg.ReportsDir)
	}
	if cfg.SchedulerInterval != 3600 {
		t.Errorf("Expected scheduler interval 3600, got %d", cfg.SchedulerInterval)
	}
	if cfg.UserAgent != "Test Agent" {
		t.Errorf("Expected user agent 'Test Agent', got '%s'", cfg.UserAgent)
	}
	if cfg.Version == "" {
		t.Error("Expected version to be set")
	}
}

func TestParserPublishesConfigBeforeCommand(t *testing.T) {
	dataDir := t.TempDir()
	cacheFile := filepath.Join(t.TempDir(), "cache.json")

	parser := NewParser()
	cmd := &recordingCommand{}
	if _, err := parser.AddCommand("inspect", "inspect", "inspect", cmd); err != nil {
		t.Fatal(err)
	}

	_, err := parser.ParseArgs([]string{"--data-dir", dataDir, "--cache-file", cacheFile, "--store", "sqlite", "inspect", "extra"})
	if err != nil {
		t.Fatal(err)
	}

	if !cmd.called {
		t.Fatal("Expected command to be executed")
	}
	if cmd.store != "sqlite" {
		t.Errorf("Expected store 'sqlite' visible to command, got '%s'", cmd.store)
	}
	if len(cmd.args) != 1 || cmd.args[0] != "extra" {
		t.Errorf("Expected args [extra], got %v", cmd.args)
	}
	if Get().CacheFile != cacheFile {
		t.Errorf("Expected cache file '%s', got '%s'", cacheFile, Get().CacheFile)
	}
}

type recordingCommand struct {
	called bool
	store  string
	args   []string
}

func (c *recordingCommand) Execute(args []string) error {
	c.called = true
	c.store = Get().Store
	c.args = args
	return nil
}

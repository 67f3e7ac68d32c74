package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_UsesDefaults(t *testing.T) {
	t.Setenv("BITEMAP_API_KEY", "anon-key")
	t.Setenv("BITEMAP_API_BASE_URL", "")
	t.Setenv("BITEMAP_DB_PATH", "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.APIBaseURL != defaultAPIBaseURL {
		t.Fatalf("unexpected API base URL: %s", cfg.APIBaseURL)
	}
	if cfg.DBPath != defaultDBPath {
		t.Fatalf("unexpected DB path: %s", cfg.DBPath)
	}
	if cfg.FeedLimit != defaultFeedLimit {
		t.Fatalf("unexpected feed limit: %d", cfg.FeedLimit)
	}
	if cfg.Profile.DisplayName == "" {
		t.Fatal("expected a default profile display name")
	}
}

func TestLoad_MissingAPIKey(t *testing.T) {
	t.Setenv("BITEMAP_API_KEY", "")

	if _, err := Load(""); err == nil {
		t.Fatal("expected error for missing API key")
	}
}

func TestLoad_YAMLFileWithEnvExpansion(t *testing.T) {
	t.Setenv("BITEMAP_API_KEY", "")
	t.Setenv("TEST_BITEMAP_KEY", "from-env")

	path := filepath.Join(t.TempDir(), "bitemap.yaml")
	data := []byte("api_key: ${TEST_BITEMAP_KEY}\napi_base_url: https://staging.bitemap.app/v1\nfeed_limit: 10\nprofile:\n  display_name: Tester\n  handle: \"@tester\"\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIKey != "from-env" {
		t.Fatalf("expected expanded API key, got %s", cfg.APIKey)
	}
	if cfg.APIBaseURL != "https://staging.bitemap.app/v1" {
		t.Fatalf("unexpected base URL: %s", cfg.APIBaseURL)
	}
	if cfg.FeedLimit != 10 {
		t.Fatalf("unexpected feed limit: %d", cfg.FeedLimit)
	}
	if cfg.Profile.Handle != "@tester" {
		t.Fatalf("unexpected handle: %s", cfg.Profile.Handle)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("BITEMAP_API_KEY", "env-key")
	t.Setenv("BITEMAP_FEED_LIMIT", "7")

	path := filepath.Join(t.TempDir(), "bitemap.yaml")
	if err := os.WriteFile(path, []byte("api_key: file-key\nfeed_limit: 99\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIKey != "env-key" {
		t.Fatalf("environment must override file, got %s", cfg.APIKey)
	}
	if cfg.FeedLimit != 7 {
		t.Fatalf("environment must override file, got %d", cfg.FeedLimit)
	}
}

func TestValidate_BaseURLTrailingSlash(t *testing.T) {
	cfg := Config{
		APIKey:     "anon-key",
		APIBaseURL: "https://api.bitemap.app/v1/",
		DBPath:     "bitemap.db",
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestLoad_MissingFileIsIgnored(t *testing.T) {
	t.Setenv("BITEMAP_API_KEY", "anon-key")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("missing file should be ignored, got %v", err)
	}
	if cfg.APIBaseURL != defaultAPIBaseURL {
		t.Fatalf("unexpected base URL: %s", cfg.APIBaseURL)
	}
}

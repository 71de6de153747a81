package cfg

import (
	"os"
	"testing"
)

func TestGetVersion(t *testing.T) {
	// Test default version
	if GetVersion() == "" {
		t.Error("GetVersion should never return empty string")
	}

	version := GetVersion()
	if version != "dev" && version != "unknown" {
		// This is fine, version could be set at build time
		t.Logf("Version: %s", version)
	}
}

func TestConfigFields(t *testing.T) {
	cfg := &Cfg{
		DBPath:             "./data/test.db",
		UploadsDir:         "./public/uploads",
		Port:               "8080",
		BaseUrl:            "https://news.example.com",
		AdminEmail:         "admin@geek.news",
		SessionTTLHours:    24,
		MailWorkerCount:    10,
		MailSendTimeoutSec: 30,
		MailFrom:           "no-reply@geek.news",
		UserAgent:          "Test Agent",
		Timezone:           "UTC",
		Debug:              true,
		Version:            "test-version",
	}

	if cfg.DBPath != "./data/test.db" {
		t.Errorf("Expected db path './data/test.db', got '%s'", cfg.DBPath)
	}
	if cfg.Port != "8080" {
		t.Errorf("Expected port '8080', got '%s'", cfg.Port)
	}
	if cfg.BaseUrl != "https://news.example.com" {
		t.Errorf("Expected base URL 'https://news.example.com', got '%s'", cfg.BaseUrl)
	}
	if cfg.SessionTTLHours != 24 {
		t.Errorf("Expected session TTL 24, got %d", cfg.SessionTTLHours)
	}
	if cfg.MailWorkerCount != 10 {
		t.Errorf("Expected mail worker count 10, got %d", cfg.MailWorkerCount)
	}
	if !cfg.Debug {
		t.Error("Expected debug to be true")
	}
}

func TestLoadDefaults(t *testing.T) {
	oldArgs := os.Args
	os.Args = []string{"test"}
	defer func() { os.Args = oldArgs }()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if cfg == nil {
		t.Fatal("Expected a config, got nil")
	}

	if cfg.AdminEmail == "" {
		t.Error("Expected a default admin email")
	}
	if cfg.SessionTTLHours <= 0 {
		t.Error("Expected a positive default session TTL")
	}
	if cfg.MailWorkerCount <= 0 {
		t.Error("Expected a positive default mail worker count")
	}

	// The singleton is available after Load
	if Get() != cfg {
		t.Error("Expected Get to return the loaded config")
	}
}

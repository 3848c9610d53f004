package config

import (
	"os"
	"testing"
)

func TestLoad(t *testing.T) {
	// Create a temporary config file
	configContent := `
server:
  port: 9090
minio:
  endpoint: "localhost:9000"
  access_key: "minioadmin"
  secret_key: "minioadmin"
  bucket: "test-bucket"
  use_ssl: false
  expire_days: 14
genai:
  base_url: "https://llm.test"
  api_key: "test-key"
  model: "test-model"
  timeout_seconds: 30
extractor:
  api_url: "https://extract.test"
  api_token: "extract-token"
render:
  api_url: "https://render.test"
auth:
  jwt_secret: "test-secret"
  token_expire_hours: 48
log:
  level: "debug"
  format: "json"
store:
  max_sessions: 50
users:
  - username: "testuser"
    password: "testpass"
    tenant: "testtenant"
`
	tmpFile, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.WriteString(configContent); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	tmpFile.Close()

	cfg, err := Load(tmpFile.Name())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Minio.Bucket != "test-bucket" {
		t.Errorf("Expected bucket test-bucket, got %s", cfg.Minio.Bucket)
	}
	if cfg.GenAI.Model != "test-model" {
		t.Errorf("Expected model test-model, got %s", cfg.GenAI.Model)
	}
	if cfg.GenAI.TimeoutSeconds != 30 {
		t.Errorf("Expected timeout 30, got %d", cfg.GenAI.TimeoutSeconds)
	}
	if cfg.Auth.TokenExpireHours != 48 {
		t.Errorf("Expected token expiry 48, got %d", cfg.Auth.TokenExpireHours)
	}
	if cfg.Store.MaxSessions != 50 {
		t.Errorf("Expected max sessions 50, got %d", cfg.Store.MaxSessions)
	}
	if len(cfg.Users) != 1 || cfg.Users[0].Tenant != "testtenant" {
		t.Errorf("Unexpected users: %+v", cfg.Users)
	}
}

func TestLoadDefaults(t *testing.T) {
	configContent := `
auth:
  jwt_secret: "s"
`
	tmpFile, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.WriteString(configContent); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	tmpFile.Close()

	cfg, err := Load(tmpFile.Name())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Auth.TokenExpireHours != 24 {
		t.Errorf("Expected default token expiry 24, got %d", cfg.Auth.TokenExpireHours)
	}
	if cfg.GenAI.MaxTokens != 4096 {
		t.Errorf("Expected default max tokens 4096, got %d", cfg.GenAI.MaxTokens)
	}
	if cfg.Store.MaxSessions != 100 {
		t.Errorf("Expected default max sessions 100, got %d", cfg.Store.MaxSessions)
	}
}

func TestFindUser(t *testing.T) {
	cfg := &Config{
		Users: []User{
			{Username: "alice", Password: "pw1", Tenant: "acme-chartering"},
			{Username: "bob", Password: "pw2", Tenant: "owner-corp"},
		},
	}

	user := cfg.FindUser("bob")
	if user == nil || user.Tenant != "owner-corp" {
		t.Errorf("Expected bob from owner-corp, got %+v", user)
	}

	if cfg.FindUser("carol") != nil {
		t.Error("Expected nil for unknown user")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Error("Expected error for missing file")
	}
}

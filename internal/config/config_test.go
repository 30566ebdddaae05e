package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"exlookup/internal/insights"
)

func writeSettings(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("APPINSIGHTS_API_URL", "")
	t.Setenv("APPINSIGHTS_APP_ID", "")
	t.Setenv("APPINSIGHTS_API_KEY", "")
	t.Setenv("LOOKUP_TIMEOUT", "")
	t.Setenv("RATE_LIMIT_MAX", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.APIURL != insights.DefaultURLTemplate {
		t.Errorf("APIURL = %q, want default template", cfg.APIURL)
	}
	if cfg.LookupTimeout != 30*time.Second {
		t.Errorf("LookupTimeout = %v, want 30s", cfg.LookupTimeout)
	}
	if cfg.RateLimitMax != 100 {
		t.Errorf("RateLimitMax = %d, want 100", cfg.RateLimitMax)
	}
	if cfg.Validate() == nil {
		t.Error("Validate() = nil, want error for missing app id and key")
	}
}

func TestLoad_SettingsFileAndEnvOverride(t *testing.T) {
	path := writeSettings(t, `
application_insights:
  api_url: "https://example.test/v1/apps/{0}/{1}/{2}?{3}"
  app_id: file-app
  api_key: file-key
`)
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("APPINSIGHTS_API_URL", "")
	t.Setenv("APPINSIGHTS_APP_ID", "env-app")
	t.Setenv("APPINSIGHTS_API_KEY", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	ep := cfg.Endpoint()
	if ep.AppID != "env-app" {
		t.Errorf("AppID = %q, want env value", ep.AppID)
	}
	if ep.APIKey != "file-key" {
		t.Errorf("APIKey = %q, want file value", ep.APIKey)
	}
	if ep.URLTemplate != "https://example.test/v1/apps/{0}/{1}/{2}?{3}" {
		t.Errorf("URLTemplate = %q", ep.URLTemplate)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestLoad_MalformedSettingsFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", writeSettings(t, "application_insights: [unclosed"))
	if _, err := Load(); err == nil {
		t.Fatal("Load() error = nil, want parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"valid", Config{APIURL: insights.DefaultURLTemplate, AppID: "a", APIKey: "k"}, ""},
		{"missing app id", Config{APIURL: insights.DefaultURLTemplate, APIKey: "k"}, "APPINSIGHTS_APP_ID"},
		{"missing key", Config{APIURL: insights.DefaultURLTemplate, AppID: "a"}, "APPINSIGHTS_API_KEY"},
		{"bad scheme", Config{APIURL: "ftp://x/{0}/{1}/{2}?{3}", AppID: "a", APIKey: "k"}, "APPINSIGHTS_API_URL"},
		{"missing query placeholder", Config{APIURL: "https://x/{0}/{1}/{2}", AppID: "a", APIKey: "k"}, "APPINSIGHTS_API_URL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestIsDev(t *testing.T) {
	for env, want := range map[string]bool{"development": true, "dev": true, "production": false} {
		if got := (&Config{Env: env}).IsDev(); got != want {
			t.Errorf("IsDev() with Env=%q = %v, want %v", env, got, want)
		}
	}
}

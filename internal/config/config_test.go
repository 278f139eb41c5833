package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("OUTREACH_CONFIG", "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Ledger.Path != "export.csv" {
		t.Fatalf("unexpected ledger path: %s", cfg.Ledger.Path)
	}
	if !cfg.Email.Enabled || !cfg.SMS.Enabled {
		t.Fatalf("channels must default to enabled")
	}
	if cfg.Email.Attempts != 3 || cfg.SMS.Attempts != 1 {
		t.Fatalf("unexpected attempt defaults: email=%d sms=%d", cfg.Email.Attempts, cfg.SMS.Attempts)
	}
	if cfg.Dispatch.MinRating != 0 {
		t.Fatalf("rating gate must default to disabled")
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
ledger:
  path: /data/contacts.csv
email:
  enabled: false
sms:
  attempts: 3
dispatch:
  dryRun: true
  minRating: 3
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Ledger.Path != "/data/contacts.csv" {
		t.Fatalf("file value not applied: %s", cfg.Ledger.Path)
	}
	if cfg.Email.Enabled {
		t.Fatalf("explicit enabled: false must win over the default")
	}
	if cfg.SMS.Attempts != 3 {
		t.Fatalf("sms attempts not applied: %d", cfg.SMS.Attempts)
	}
	if !cfg.Dispatch.DryRun || cfg.Dispatch.MinRating != 3 {
		t.Fatalf("dispatch settings not applied: %+v", cfg.Dispatch)
	}
	// Untouched sections keep their defaults.
	if cfg.Email.Endpoint == "" || cfg.Validation.Endpoint == "" {
		t.Fatalf("defaults lost for untouched sections")
	}
}

func TestLoadEnvOverridesCredentials(t *testing.T) {
	t.Setenv("OUTREACH_CONFIG", "")
	t.Setenv("ECANVASSER_API_TOKEN", "token-from-env")
	t.Setenv("SENDGRID_API_KEY", "sg-from-env")
	t.Setenv("TWILIO_ACCOUNT_SID", "sid-from-env")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Source.APIToken != "token-from-env" {
		t.Fatalf("source token not overridden: %q", cfg.Source.APIToken)
	}
	if cfg.Email.APIKey != "sg-from-env" {
		t.Fatalf("email key not overridden: %q", cfg.Email.APIKey)
	}
	if cfg.SMS.AccountSID != "sid-from-env" {
		t.Fatalf("sms sid not overridden: %q", cfg.SMS.AccountSID)
	}
}

func TestLoadFloorsBadAttempts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("email:\n  attempts: -2\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Email.Attempts != 1 {
		t.Fatalf("negative attempts must floor to 1, got %d", cfg.Email.Attempts)
	}
}

func TestLoadMissingExplicitFileFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected error for explicitly named missing config")
	}
}

package config

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv      = "OUTREACH_CONFIG"
	canvassTokenEnv    = "ECANVASSER_API_TOKEN"
	zeroBounceKeyEnv   = "ZEROBOUNCE_API_KEY"
	sendGridKeyEnv     = "SENDGRID_API_KEY"
	twilioSIDEnv       = "TWILIO_ACCOUNT_SID"
	twilioTokenEnv     = "TWILIO_AUTH_TOKEN"
	twilioFromPhoneEnv = "TWILIO_FROM_PHONE"
)

// Config holds all settings required across the application. It is built
// once at startup and passed into components; no package reads the
// environment after Load returns.
type Config struct {
	Ledger     LedgerConfig     `yaml:"ledger"`
	Source     SourceConfig     `yaml:"source"`
	Validation ValidationConfig `yaml:"validation"`
	Email      EmailConfig      `yaml:"email"`
	SMS        SMSConfig        `yaml:"sms"`
	Dispatch   DispatchConfig   `yaml:"dispatch"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// LedgerConfig locates the persisted CSV files.
type LedgerConfig struct {
	Path            string `yaml:"path"`
	PhoneSourcePath string `yaml:"phoneSourcePath"`
}

// SourceConfig describes the upstream interaction API.
type SourceConfig struct {
	BaseURL   string `yaml:"baseUrl"`
	APIToken  string `yaml:"apiToken"`
	PageLimit int    `yaml:"pageLimit"`
}

// ValidationConfig describes the email validation service.
type ValidationConfig struct {
	Endpoint string `yaml:"endpoint"`
	APIKey   string `yaml:"apiKey"`
}

// SenderIdentity is the display name and from-address used when sending on
// behalf of one organizer.
type SenderIdentity struct {
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
}

// EmailConfig describes the email delivery service and send policy. Senders
// maps an organizer first name to the identity mail goes out under; unmapped
// organizers fall back to their own first name and DefaultFromEmail.
type EmailConfig struct {
	Enabled          bool                      `yaml:"enabled"`
	Endpoint         string                    `yaml:"endpoint"`
	APIKey           string                    `yaml:"apiKey"`
	DefaultFromEmail string                    `yaml:"defaultFromEmail"`
	BCC              string                    `yaml:"bcc"`
	Attempts         int                       `yaml:"attempts"`
	Senders          map[string]SenderIdentity `yaml:"senders"`
}

// SMSConfig describes the SMS delivery service and send policy.
type SMSConfig struct {
	Enabled    bool   `yaml:"enabled"`
	BaseURL    string `yaml:"baseUrl"`
	AccountSID string `yaml:"accountSid"`
	AuthToken  string `yaml:"authToken"`
	FromPhone  string `yaml:"fromPhone"`
	Attempts   int    `yaml:"attempts"`
}

// DispatchConfig holds run-level outreach policy. MinRating of zero
// disables the rating gate.
type DispatchConfig struct {
	DryRun    bool   `yaml:"dryRun"`
	MinRating int    `yaml:"minRating"`
	AuditDir  string `yaml:"auditDir"`
}

// LoggingConfig controls console level and the append-only run log file.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Load reads YAML configuration from path (or $OUTREACH_CONFIG when path is
// empty) over built-in defaults, then applies environment overrides for
// credentials. Absent YAML keys keep their defaults; present keys win, so
// explicit `enabled: false` works.
func Load(path string) (Config, error) {
	cfg := defaultConfig()

	if path == "" {
		path = os.Getenv(configPathEnv)
	}
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnvOverrides()
	cfg.applyFloors()

	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(canvassTokenEnv); v != "" {
		c.Source.APIToken = v
	}
	if v := os.Getenv(zeroBounceKeyEnv); v != "" {
		c.Validation.APIKey = v
	}
	if v := os.Getenv(sendGridKeyEnv); v != "" {
		c.Email.APIKey = v
	}
	if v := os.Getenv(twilioSIDEnv); v != "" {
		c.SMS.AccountSID = v
	}
	if v := os.Getenv(twilioTokenEnv); v != "" {
		c.SMS.AuthToken = v
	}
	if v := os.Getenv(twilioFromPhoneEnv); v != "" {
		c.SMS.FromPhone = v
	}
}

// applyFloors keeps misconfigured attempt/page counts from disabling whole
// channels: at least one attempt per channel, at least one row per page.
func (c *Config) applyFloors() {
	if c.Email.Attempts < 1 {
		log.Printf("config: email attempts %d below 1, using 1", c.Email.Attempts)
		c.Email.Attempts = 1
	}
	if c.SMS.Attempts < 1 {
		log.Printf("config: sms attempts %d below 1, using 1", c.SMS.Attempts)
		c.SMS.Attempts = 1
	}
	if c.Source.PageLimit < 1 {
		c.Source.PageLimit = defaultConfig().Source.PageLimit
	}
}

func defaultConfig() Config {
	return Config{
		Ledger: LedgerConfig{
			Path:            "export.csv",
			PhoneSourcePath: "pr.csv",
		},
		Source: SourceConfig{
			BaseURL:   "https://public-api.ecanvasser.com/v3",
			PageLimit: 200,
		},
		Validation: ValidationConfig{
			Endpoint: "https://api.zerobounce.net/v2/validate",
		},
		Email: EmailConfig{
			Enabled:          true,
			Endpoint:         "https://api.sendgrid.com/v3/mail/send",
			DefaultFromEmail: "fxs@bulqit.com",
			BCC:              "sales@bulqit.com",
			Attempts:         3,
			Senders: map[string]SenderIdentity{
				"Keegan": {Name: "Keegan Bonebrake", Email: "kjb@bulqit.com"},
				"Tom":    {Name: "Tom Vranas", Email: "tjv@bulqit.com"},
				"Ferdy":  {Name: "Ferdy Salmons", Email: "fxs@bulqit.com"},
			},
		},
		SMS: SMSConfig{
			Enabled:   true,
			BaseURL:   "https://api.twilio.com",
			FromPhone: "+13103614543",
			Attempts:  1,
		},
		Dispatch: DispatchConfig{
			DryRun:    false,
			MinRating: 0,
			AuditDir:  ".",
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "processing_log.txt",
		},
	}
}

package config

import (
	"strings"
	"testing"
)

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{Port: "8080"},
		WhatsApp: WhatsAppConfig{
			AccessToken:   "token",
			PhoneNumberID: "123",
			VerifyToken:   "verify",
			BaseURL:       "https://graph.facebook.com",
			APIVersion:    "v20.0",
		},
		Sheets:    SheetsConfig{CredentialsPath: "creds.json", SpreadsheetID: "sheet"},
		Storage:   StorageConfig{Backend: BackendSheets},
		Reporting: ReportingConfig{CronSchedule: "0 20 * * *", Timezone: "UTC"},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"missing token", func(c *Config) { c.WhatsApp.AccessToken = "" }, "WHATSAPP_TOKEN"},
		{"missing verify token", func(c *Config) { c.WhatsApp.VerifyToken = "" }, "META_VERIFY_TOKEN"},
		{"sheets without credentials", func(c *Config) { c.Sheets.CredentialsPath = "" }, "GOOGLE_SHEETS_CREDENTIALS_PATH"},
		{"sheets without id", func(c *Config) { c.Sheets.SpreadsheetID = "" }, "GOOGLE_SHEET_DATABASE_ID"},
		{"sqlite needs no sheets", func(c *Config) {
			c.Storage = StorageConfig{Backend: BackendSQLite, SQLitePath: "data/x.db"}
			c.Sheets = SheetsConfig{}
		}, ""},
		{"sqlite without path", func(c *Config) { c.Storage = StorageConfig{Backend: BackendSQLite} }, "SQLITE_PATH"},
		{"memory", func(c *Config) { c.Storage.Backend = BackendMemory; c.Sheets = SheetsConfig{} }, ""},
		{"unknown backend", func(c *Config) { c.Storage.Backend = "csv" }, "STORAGE_BACKEND"},
		{"bad timezone", func(c *Config) { c.Reporting.Timezone = "Mars/Olympus" }, "TIMEZONE"},
		{"empty cron", func(c *Config) { c.Reporting.CronSchedule = "" }, "REPORT_CRON_SCHEDULE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() error = %v, want mention of %s", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("WHATSAPP_TOKEN", "token")
	t.Setenv("WHATSAPP_PHONE_NUMBER_ID", "123")
	t.Setenv("META_VERIFY_TOKEN", "verify")
	t.Setenv("STORAGE_BACKEND", BackendMemory)
	t.Setenv("TIMEZONE", "Europe/Paris")
	t.Setenv("MONGODB_URI", "")

	cfg, err := Load("does-not-exist.env")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Server.Port != "9090" {
		t.Errorf("Port = %s, want 9090", cfg.Server.Port)
	}
	if cfg.Reporting.CronSchedule != "0 20 * * *" {
		t.Errorf("CronSchedule = %q, want default", cfg.Reporting.CronSchedule)
	}
	if cfg.MongoDB.URI != "" {
		t.Errorf("MongoDB.URI = %q, want empty", cfg.MongoDB.URI)
	}
	if cfg.Location().String() != "Europe/Paris" {
		t.Errorf("Location() = %s", cfg.Location())
	}
}

func TestLoadLocalSkipsWhatsApp(t *testing.T) {
	t.Setenv("WHATSAPP_TOKEN", "")
	t.Setenv("STORAGE_BACKEND", "")
	t.Setenv("SQLITE_PATH", "data/test.db")
	t.Setenv("TIMEZONE", "UTC")

	cfg, err := LoadLocal("does-not-exist.env", "")
	if err != nil {
		t.Fatalf("LoadLocal() error: %v", err)
	}
	if cfg.Storage.Backend != BackendSQLite {
		t.Errorf("Backend = %q, want sqlite default", cfg.Storage.Backend)
	}

	cfg, err = LoadLocal("does-not-exist.env", BackendMemory)
	if err != nil {
		t.Fatalf("LoadLocal(memory) error: %v", err)
	}
	if cfg.Storage.Backend != BackendMemory {
		t.Errorf("Backend = %q, want override", cfg.Storage.Backend)
	}
}

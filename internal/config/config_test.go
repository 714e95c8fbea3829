package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_HOST", "DB_NAME", "UPLOAD_BACKEND", "MAX_UPLOAD_SIZE", "SESSION_TTL", "SESSION_COOKIE"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("Expected default port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Upload.Backend != UploadBackendLocal {
		t.Errorf("Expected local upload backend, got %s", cfg.Upload.Backend)
	}
	if cfg.Upload.MaxUploadSize != 5*1024*1024 {
		t.Errorf("Expected 5MB upload limit, got %d", cfg.Upload.MaxUploadSize)
	}
	if cfg.Session.TTL != 24*time.Hour {
		t.Errorf("Expected 24h session TTL, got %s", cfg.Session.TTL)
	}
	if cfg.Session.CookieName != "hub_session" {
		t.Errorf("Expected hub_session cookie, got %s", cfg.Session.CookieName)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("SESSION_SECURE", "true")
	t.Setenv("UPLOAD_BACKEND", "minio")
	t.Setenv("MAX_UPLOAD_SIZE", "1024")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("Expected port 9090, got %s", cfg.Server.Port)
	}
	if cfg.Session.TTL != 2*time.Hour {
		t.Errorf("Expected 2h TTL, got %s", cfg.Session.TTL)
	}
	if !cfg.Session.Secure {
		t.Error("Expected secure cookies")
	}
	if cfg.Upload.Backend != UploadBackendMinIO {
		t.Errorf("Expected minio backend, got %s", cfg.Upload.Backend)
	}
	if cfg.Upload.MaxUploadSize != 1024 {
		t.Errorf("Expected 1024 bytes, got %d", cfg.Upload.MaxUploadSize)
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Database: DatabaseConfig{Host: "localhost", Name: "hub"},
			Session:  SessionConfig{CookieName: "hub_session"},
			Upload:   UploadConfig{Backend: UploadBackendLocal, MaxUploadSize: 1},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "missing host", mutate: func(c *Config) { c.Database.Host = "" }, wantErr: true},
		{name: "missing db name", mutate: func(c *Config) { c.Database.Name = "" }, wantErr: true},
		{name: "unknown backend", mutate: func(c *Config) { c.Upload.Backend = "s3" }, wantErr: true},
		{name: "zero upload size", mutate: func(c *Config) { c.Upload.MaxUploadSize = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGetDSN(t *testing.T) {
	db := DatabaseConfig{Host: "db", Port: "5432", User: "u", Password: "p", Name: "hub", SSLMode: "disable"}
	want := "host=db port=5432 user=u password=p dbname=hub sslmode=disable"
	if got := db.GetDSN(); got != want {
		t.Errorf("GetDSN() = %q, want %q", got, want)
	}
}

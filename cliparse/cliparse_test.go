// cliparse/cliparse_test.go
package cliparse

import (
	"os"
	"testing"
)

func TestParseFlagsFromEnv(t *testing.T) {
	os.Setenv("PORT", "8080")
	os.Setenv("DATABASE_URL", "postgres://localhost/enquete")
	os.Setenv("DATABASE_TYPE", "postgres")
	os.Setenv("ADMIN_KEY_SALT", "env-admin-salt")
	os.Setenv("SURVEY_SLUG_SALT", "env-slug-salt")
	os.Setenv("BASE_URL", "https://surveys.example.com")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatalf("ParseFlags returned error: %v", err)
	}

	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.DatabaseURL != "postgres://localhost/enquete" {
		t.Errorf("DatabaseURL = %q", cfg.DatabaseURL)
	}
	if cfg.DatabaseType != "postgres" {
		t.Errorf("DatabaseType = %q, want postgres", cfg.DatabaseType)
	}
	if cfg.AdminKeySalt != "env-admin-salt" {
		t.Errorf("AdminKeySalt = %q", cfg.AdminKeySalt)
	}
	if cfg.SurveySlugSalt != "env-slug-salt" {
		t.Errorf("SurveySlugSalt = %q", cfg.SurveySlugSalt)
	}
	if cfg.BaseURL != "https://surveys.example.com" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
}

func TestParseFlagsCLIOverridesEnv(t *testing.T) {
	os.Setenv("PORT", "8080")
	os.Setenv("DATABASE_URL", "postgres://localhost/env")
	os.Setenv("ADMIN_KEY_SALT", "env-admin-salt")
	os.Setenv("SURVEY_SLUG_SALT", "env-slug-salt")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{"-p", "9090", "-d", "file:dev.db"})
	if err != nil {
		t.Fatalf("ParseFlags returned error: %v", err)
	}

	if cfg.Port != 9090 {
		t.Errorf("Port = %d, want 9090 (CLI should win over env)", cfg.Port)
	}
	if cfg.DatabaseURL != "file:dev.db" {
		t.Errorf("DatabaseURL = %q, want file:dev.db", cfg.DatabaseURL)
	}
}

func TestParseFlagsDefaults(t *testing.T) {
	os.Setenv("DATABASE_URL", "file:dev.db")
	os.Setenv("ADMIN_KEY_SALT", "salt")
	os.Setenv("SURVEY_SLUG_SALT", "salt")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatalf("ParseFlags returned error: %v", err)
	}

	if cfg.Port != 3418 {
		t.Errorf("Port = %d, want default 3418", cfg.Port)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("DatabaseType = %q, want default sqlite", cfg.DatabaseType)
	}
	if cfg.BaseURL != "https://enquete.app" {
		t.Errorf("BaseURL = %q, want default", cfg.BaseURL)
	}
}

func TestParseFlagsMissingRequirements(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing database url", map[string]string{
			"ADMIN_KEY_SALT": "salt", "SURVEY_SLUG_SALT": "salt",
		}},
		{"missing admin key salt", map[string]string{
			"DATABASE_URL": "file:dev.db", "SURVEY_SLUG_SALT": "salt",
		}},
		{"missing slug salt", map[string]string{
			"DATABASE_URL": "file:dev.db", "ADMIN_KEY_SALT": "salt",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			for k, v := range tt.env {
				os.Setenv(k, v)
			}
			defer os.Clearenv()

			if _, err := ParseFlags([]string{}); err == nil {
				t.Error("ParseFlags succeeded, want error")
			}
		})
	}
}

func TestParseFlagsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"bad port", map[string]string{
			"PORT": "not-a-number", "DATABASE_URL": "file:dev.db",
			"ADMIN_KEY_SALT": "salt", "SURVEY_SLUG_SALT": "salt",
		}},
		{"bad database type", map[string]string{
			"DATABASE_TYPE": "mysql", "DATABASE_URL": "mysql://localhost",
			"ADMIN_KEY_SALT": "salt", "SURVEY_SLUG_SALT": "salt",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			for k, v := range tt.env {
				os.Setenv(k, v)
			}
			defer os.Clearenv()

			if _, err := ParseFlags([]string{}); err == nil {
				t.Error("ParseFlags succeeded, want error")
			}
		})
	}
}

func TestDriverName(t *testing.T) {
	if got := (Config{DatabaseType: "postgres"}).DriverName(); got != "postgres" {
		t.Errorf("DriverName() = %q, want postgres", got)
	}
	if got := (Config{DatabaseType: "sqlite"}).DriverName(); got != "sqlite" {
		t.Errorf("DriverName() = %q, want sqlite", got)
	}
}

package config

import (
	"errors"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func newTestViper(values map[string]any) *viper.Viper {
	v := viper.New()
	setDefaults(v)
	for k, val := range values {
		v.Set(k, val)
	}
	return v
}

func TestFromViper_Defaults(t *testing.T) {
	v := newTestViper(map[string]any{
		"telegram_api_token":            "token",
		"database_url":                  "postgres://localhost/quiz",
		"gsheet_api_key":                "key",
		"sheets.catalog_spreadsheet_id": "sheet",
	})

	cfg, err := fromViper(v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Env != "local" || cfg.IsProduction() {
		t.Errorf("expected local env, got %q", cfg.Env)
	}
	if cfg.DB.MaxConnections != 20 {
		t.Errorf("expected 20 max connections, got %d", cfg.DB.MaxConnections)
	}
	if cfg.DB.MaxConnLifetime != 30*time.Second {
		t.Errorf("expected 30s lifetime, got %v", cfg.DB.MaxConnLifetime)
	}
	if cfg.Redis.CourseTTL != 6*time.Hour {
		t.Errorf("expected 6h course ttl, got %v", cfg.Redis.CourseTTL)
	}
	if cfg.Sheets.CatalogRange != "코드 목록" {
		t.Errorf("unexpected catalog range %q", cfg.Sheets.CatalogRange)
	}
	if cfg.TelegramAPIToken != "token" || cfg.Sheets.APIKey != "key" {
		t.Errorf("secrets not loaded: %+v", cfg)
	}
}

func TestFromViper_MissingSecrets(t *testing.T) {
	cfg, err := fromViper(newTestViper(nil))
	if !errors.Is(err, ErrMissingEnvironmentVariables) {
		t.Fatalf("expected ErrMissingEnvironmentVariables, got %v", err)
	}
	if cfg != nil {
		t.Errorf("expected nil config, got %+v", cfg)
	}
}

// cliparse/cliparse_test.go
package cliparse

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestParseFlags_EnvVars(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_TYPE", "postgres")
	t.Setenv("DATABASE_URL", "postgres://test")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("AI_API_KEY", "key")
	t.Setenv("AI_MODEL", "test/model")
	t.Setenv("AI_TIMEOUT", "5s")
	t.Setenv("AI_RATE_LIMIT_STATUS", "503")

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	want := Config{
		Port:         9000,
		DatabaseType: "postgres",
		DatabaseURL:  "postgres://test",
		JWTSecret:    "test-secret",
		LogFormat:    "json",
		AI: AIConfig{
			APIKey:          "key",
			Model:           "test/model",
			Temperature:     0.3,
			Timeout:         5 * time.Second,
			RateLimitStatus: 503,
			CreditsStatus:   402,
		},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestParseFlags_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 3318 {
		t.Errorf("expected port 3318, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("expected sqlite, got %s", cfg.DatabaseType)
	}
	if cfg.DatabaseURL != DefaultSQLiteURL {
		t.Errorf("expected %s, got %s", DefaultSQLiteURL, cfg.DatabaseURL)
	}
	if cfg.AI.Timeout != 60*time.Second {
		t.Errorf("expected 60s AI timeout, got %v", cfg.AI.Timeout)
	}

	codes := cfg.AI.StatusCodes()
	if codes.RateLimited != 429 || codes.CreditsExhausted != 402 {
		t.Errorf("expected 429/402, got %d/%d", codes.RateLimited, codes.CreditsExhausted)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("JWT_SECRET", "env-secret")

	cfg, err := ParseFlags([]string{"-p", "8080", "-d", "file:test.db", "-jwt-secret", "s1", "-ai-key", "k1"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
	if cfg.JWTSecret != "s1" {
		t.Errorf("CLI should override env: expected s1, got %s", cfg.JWTSecret)
	}
	if cfg.AI.ClientConfig().APIKey != "k1" {
		t.Errorf("expected AI key k1, got %s", cfg.AI.APIKey)
	}
}

func TestParseFlags_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{
			name: "missing jwt secret",
			env:  map[string]string{},
		},
		{
			name: "postgres without url",
			env:  map[string]string{"JWT_SECRET": "s", "DATABASE_TYPE": "postgres"},
		},
		{
			name: "unknown database type",
			env:  map[string]string{"JWT_SECRET": "s"},
			args: []string{"-t", "mysql"},
		},
		{
			name: "invalid port env",
			env:  map[string]string{"JWT_SECRET": "s", "PORT": "abc"},
		},
		{
			name: "port out of range",
			env:  map[string]string{"JWT_SECRET": "s"},
			args: []string{"-p", "70000"},
		},
		{
			name: "unknown flag",
			env:  map[string]string{"JWT_SECRET": "s"},
			args: []string{"--nope"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("JWT_SECRET", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			if _, err := ParseFlags(tt.args); err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}
}

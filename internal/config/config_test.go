package config

import (
	"os"
	"testing"
)

func validConfig() Config {
	return Config{
		HTTP: HTTPConfig{Port: 8080},
		AI:   AIConfig{APIKey: "test-key"},
	}
}

func TestValidate_OK(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_MissingAPIKey(t *testing.T) {
	cfg := validConfig()
	cfg.AI.APIKey = ""

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing api key")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := validConfig()
	cfg.ApplyDefaults()

	if cfg.Catalog.Path != "data/catalog.json" {
		t.Errorf("unexpected catalog path: %q", cfg.Catalog.Path)
	}
	if cfg.Enrichment.MaxImages != 5 {
		t.Errorf("expected 5 max images, got %d", cfg.Enrichment.MaxImages)
	}
	if cfg.Enrichment.Workers != 8 {
		t.Errorf("expected 8 workers, got %d", cfg.Enrichment.Workers)
	}
	if cfg.AI.EmbeddingModel == "" || cfg.AI.CompletionModel == "" {
		t.Error("expected default models to be set")
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("ARBORQ_TEST_KEY", "secret")

	in := []byte("api_key: ${ARBORQ_TEST_KEY}\nbase_url: ${ARBORQ_TEST_URL:-https://api.openai.com/v1}\n")
	out := string(expandEnvVars(in))

	want := "api_key: secret\nbase_url: https://api.openai.com/v1\n"
	if out != want {
		t.Errorf("unexpected expansion:\ngot:  %q\nwant: %q", out, want)
	}
}

func TestGetEnv_Default(t *testing.T) {
	old := os.Getenv("ENV")
	defer os.Setenv("ENV", old)
	os.Unsetenv("ENV")

	if got := GetEnv(); got != "local" {
		t.Errorf("expected local, got %q", got)
	}
}

package config

import "testing"

func TestLoadIncludesInferenceDefaults(t *testing.T) {
	t.Setenv("HF_INFERENCE_BASE_URL", "")
	t.Setenv("HF_TIMEOUT_SECONDS", "")
	t.Setenv("CHUNK_MAX_CHARS", "")
	t.Setenv("MAX_UPLOAD_BYTES", "")

	cfg := Load()
	if cfg.HFInferenceBaseURL != "https://api-inference.huggingface.co/models" {
		t.Fatalf("unexpected inference base url: %q", cfg.HFInferenceBaseURL)
	}
	if cfg.HFTimeoutSeconds != 120 {
		t.Fatalf("expected default inference timeout 120, got %d", cfg.HFTimeoutSeconds)
	}
	if cfg.ChunkMaxChars != 500 {
		t.Fatalf("expected default chunk size 500, got %d", cfg.ChunkMaxChars)
	}
	if cfg.MaxUploadBytes != 10<<20 {
		t.Fatalf("expected default upload cap 10MiB, got %d", cfg.MaxUploadBytes)
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	t.Setenv("CHUNK_MAX_CHARS", "800")
	t.Setenv("HF_TIMEOUT_SECONDS", "45")
	t.Setenv("BREAKER_FAILURE_RATIO", "0.75")
	t.Setenv("BREAKER_ENABLED", "false")
	t.Setenv("API_RATE_LIMIT_RPS", "25")

	cfg := Load()
	if cfg.ChunkMaxChars != 800 {
		t.Fatalf("expected chunk size override 800, got %d", cfg.ChunkMaxChars)
	}
	if cfg.HFTimeoutSeconds != 45 {
		t.Fatalf("expected timeout override 45, got %d", cfg.HFTimeoutSeconds)
	}
	if cfg.BreakerFailureRatio != 0.75 {
		t.Fatalf("expected failure ratio override 0.75, got %v", cfg.BreakerFailureRatio)
	}
	if cfg.BreakerEnabled {
		t.Fatal("expected breaker disabled")
	}
	if cfg.APIRateLimitRPS != 25 {
		t.Fatalf("expected rate limit override 25, got %d", cfg.APIRateLimitRPS)
	}
}

func TestLoadFallsBackOnMalformedNumbers(t *testing.T) {
	t.Setenv("CHUNK_MAX_CHARS", "not-a-number")
	t.Setenv("BREAKER_FAILURE_RATIO", "lots")

	cfg := Load()
	if cfg.ChunkMaxChars != 500 {
		t.Fatalf("malformed int must fall back to default, got %d", cfg.ChunkMaxChars)
	}
	if cfg.BreakerFailureRatio != 0.6 {
		t.Fatalf("malformed float must fall back to default, got %v", cfg.BreakerFailureRatio)
	}
}

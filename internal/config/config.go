package config

import (
	"os"
	"strconv"
)

type Config struct {
	APIPort  string
	LogLevel string

	HFInferenceBaseURL      string
	HFToken                 string
	HFPrimaryModel          string
	HFSentimentModel        string
	HFSummaryModel          string
	HFTimeoutSeconds        int
	SentimentTimeoutSeconds int
	SummaryTimeoutSeconds   int

	SpaceBaseURL        string
	SpaceFn             string
	SpaceTimeoutSeconds int

	AgentAPIBaseURL     string
	AgentAPIKey         string
	AgentIDResearch     string
	AgentIDFaultFind    string
	AgentIDValidate     string
	AgentIDDraft        string
	AgentTimeoutSeconds int

	ChunkMaxChars  int
	MaxUploadBytes int64

	APIRateLimitRPS   int
	APIRateLimitBurst int
	APIMaxConcurrent  int

	BreakerEnabled          bool
	BreakerMinRequests      int
	BreakerFailureRatio     float64
	BreakerOpenTimeoutSecs  int
	BreakerHalfOpenMaxCalls int
}

func Load() Config {
	return Config{
		APIPort:  mustEnv("API_PORT", "8080"),
		LogLevel: mustEnv("LOG_LEVEL", "info"),

		HFInferenceBaseURL: mustEnv("HF_INFERENCE_BASE_URL", "https://api-inference.huggingface.co/models"),
		HFToken:            mustEnv("HF_TOKEN", ""),
		HFPrimaryModel:     mustEnv("HF_PRIMARY_MODEL", "ShivendraNT/ClauseGuard-BERT-Specialist"),
		HFSentimentModel:   mustEnv("HF_SENTIMENT_MODEL", "cardiffnlp/twitter-roberta-base-sentiment-latest"),
		HFSummaryModel:          mustEnv("HF_SUMMARY_MODEL", "facebook/bart-large-cnn"),
		HFTimeoutSeconds:        mustEnvInt("HF_TIMEOUT_SECONDS", 120),
		SentimentTimeoutSeconds: mustEnvInt("SENTIMENT_TIMEOUT_SECONDS", 30),
		SummaryTimeoutSeconds:   mustEnvInt("SUMMARY_TIMEOUT_SECONDS", 60),

		SpaceBaseURL:        mustEnv("SPACE_BASE_URL", ""),
		SpaceFn:             mustEnv("SPACE_FN", "predict"),
		SpaceTimeoutSeconds: mustEnvInt("SPACE_TIMEOUT_SECONDS", 30),

		AgentAPIBaseURL:     mustEnv("AGENT_API_BASE_URL", ""),
		AgentAPIKey:         mustEnv("AGENT_API_KEY", ""),
		AgentIDResearch:     mustEnv("AGENT_ID_RESEARCH", ""),
		AgentIDFaultFind:    mustEnv("AGENT_ID_FAULT", ""),
		AgentIDValidate:     mustEnv("AGENT_ID_VALIDATE", ""),
		AgentIDDraft:        mustEnv("AGENT_ID_DRAFT", ""),
		AgentTimeoutSeconds: mustEnvInt("AGENT_TIMEOUT_SECONDS", 30),

		ChunkMaxChars:  mustEnvInt("CHUNK_MAX_CHARS", 500),
		MaxUploadBytes: mustEnvInt64("MAX_UPLOAD_BYTES", 10<<20),

		APIRateLimitRPS:   mustEnvInt("API_RATE_LIMIT_RPS", 0),
		APIRateLimitBurst: mustEnvInt("API_RATE_LIMIT_BURST", 0),
		APIMaxConcurrent:  mustEnvInt("API_MAX_CONCURRENT", 0),

		BreakerEnabled:          mustEnvBool("BREAKER_ENABLED", true),
		BreakerMinRequests:      mustEnvInt("BREAKER_MIN_REQUESTS", 5),
		BreakerFailureRatio:     mustEnvFloat("BREAKER_FAILURE_RATIO", 0.6),
		BreakerOpenTimeoutSecs:  mustEnvInt("BREAKER_OPEN_TIMEOUT_SECONDS", 30),
		BreakerHalfOpenMaxCalls: mustEnvInt("BREAKER_HALF_OPEN_MAX_CALLS", 1),
	}
}

func mustEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func mustEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func mustEnvInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

func mustEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func mustEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

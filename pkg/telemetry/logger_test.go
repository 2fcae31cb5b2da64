package telemetry

import (
	"context"
	"testing"
)

func TestLoggingConfigValidate(t *testing.T) {
	cfg := DefaultLoggingConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	cfg.Level = "verbose"
	if err := cfg.Validate(); err == nil {
		t.Error("bad level passed validation")
	}

	cfg = DefaultLoggingConfig()
	cfg.Format = "xml"
	if err := cfg.Validate(); err == nil {
		t.Error("bad format passed validation")
	}
}

func TestLoggerContextRoundTrip(t *testing.T) {
	logger, err := NewLogger(LoggingConfig{Level: "info", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("new logger failed: %v", err)
	}

	ctx := logger.WithContext(context.Background())
	if got := FromContext(ctx); got != logger {
		t.Error("context did not return the embedded logger")
	}
}

func TestFromContextFallback(t *testing.T) {
	if got := FromContext(context.Background()); got == nil {
		t.Fatal("empty context returned nil logger")
	}
}

package sentry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestInitialize_EmptyDSN(t *testing.T) {
	if err := Initialize(Config{}); err != nil {
		t.Errorf("Expected nil error for empty DSN, got %v", err)
	}
}

func TestInitialize_InvalidDSN(t *testing.T) {
	if err := Initialize(Config{DSN: "not a dsn"}); err == nil {
		t.Error("Expected error for malformed DSN")
	}
}

func TestInitialize_ValidConfig(t *testing.T) {
	// Sentry keeps global state, so this test is not parallel.
	err := Initialize(Config{
		DSN:         "https://public@o0.ingest.sentry.io/1",
		Environment: "test",
		ServerName:  "bolabot-test",
	})
	if err != nil {
		t.Fatalf("Expected nil error, got %v", err)
	}
	if !IsEnabled() {
		t.Error("Expected IsEnabled() to return true after initialization")
	}

	CaptureExceptionWithContext(context.Background(), errors.New("provider down"), map[string]string{"rule": "generation"})
	CaptureExceptionWithContext(context.Background(), nil, nil)
	Flush(100 * time.Millisecond)
}

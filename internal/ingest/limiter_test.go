package ingest

import (
	"context"
	"testing"
)

func TestLimiter_DefaultBurst(t *testing.T) {
	l := NewLimiter(10, -1)
	if l.defaultBurst != 5 {
		t.Errorf("expected default burst 5 for negative input, got %d", l.defaultBurst)
	}
}

func TestLimiter_Wait(t *testing.T) {
	l := NewLimiter(100, 1)
	ctx := context.Background()

	if err := l.Wait(ctx, "http://example.com/foo"); err != nil {
		t.Errorf("wait failed: %v", err)
	}
	// Other domains have their own token bucket
	if err := l.Wait(ctx, "http://other.example/bar"); err != nil {
		t.Errorf("wait failed: %v", err)
	}
}

func TestLimiter_PerDomainTokens(t *testing.T) {
	l := NewLimiter(0.1, 1)

	if !l.Allow("http://slow.example/a") {
		t.Error("first request should pass")
	}
	if l.Allow("http://slow.example/b") {
		t.Error("second request should be limited")
	}
	if !l.Allow("http://fast.example/c") {
		t.Error("other domain should have its own budget")
	}
}

func TestLimiter_InvalidURL(t *testing.T) {
	l := NewLimiter(10, 1)
	if l.Allow("://broken") {
		t.Error("invalid URL should not be allowed")
	}
}

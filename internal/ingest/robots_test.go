package ingest

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRobotsChecker_AllowAndDeny(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, "User-agent: *\nDisallow: /private\nCrawl-delay: 2\n")
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	checker := NewRobotsChecker("test-agent", 5*time.Second)
	ctx := context.Background()

	allowed, delay, err := checker.CanFetch(ctx, server.URL+"/public/page")
	if err != nil {
		t.Fatalf("CanFetch: %v", err)
	}
	if !allowed {
		t.Error("expected /public/page to be allowed")
	}
	if delay != 2*time.Second {
		t.Errorf("expected 2s crawl delay, got %v", delay)
	}

	allowed, _, err = checker.CanFetch(ctx, server.URL+"/private/page")
	if err != nil {
		t.Fatalf("CanFetch: %v", err)
	}
	if allowed {
		t.Error("expected /private/page to be denied")
	}
}

func TestRobotsChecker_MissingRobotsAllows(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	checker := NewRobotsChecker("test-agent", 5*time.Second)
	allowed, _, err := checker.CanFetch(context.Background(), server.URL+"/anything")
	if err != nil {
		t.Fatalf("CanFetch: %v", err)
	}
	if !allowed {
		t.Error("expected missing robots.txt to allow fetching")
	}
}

func TestRobotsChecker_CachesPerHost(t *testing.T) {
	var hits int
	mux := http.NewServeMux()
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		hits++
		_, _ = fmt.Fprint(w, "User-agent: *\nAllow: /\n")
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	checker := NewRobotsChecker("test-agent", 5*time.Second)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, _, err := checker.CanFetch(ctx, server.URL+"/page"); err != nil {
			t.Fatalf("CanFetch: %v", err)
		}
	}
	if hits != 1 {
		t.Errorf("expected robots.txt fetched once, got %d", hits)
	}
}

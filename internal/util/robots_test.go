package util

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestNormalizeUserAgent(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"tfquiz/0.1 (+https://example.com)", "tfquiz"},
		{"curl", "curl"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeUserAgent(tt.in); got != tt.want {
			t.Errorf("NormalizeUserAgent(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRobotsChecker_CanFetch(t *testing.T) {
	var robotsHits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			robotsHits.Add(1)
			_, _ = fmt.Fprint(w, "User-agent: tfquiz\nDisallow: /private\nCrawl-delay: 60\n")
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	checker := NewRobotsChecker("tfquiz/0.1", 5*time.Second)

	allowed, _, err := checker.CanFetch(context.Background(), server.URL+"/private/doc")
	if err != nil {
		t.Fatalf("CanFetch failed: %v", err)
	}
	if allowed {
		t.Error("Expected /private to be disallowed")
	}

	allowed, delay, err := checker.CanFetch(context.Background(), server.URL+"/notes")
	if err != nil || !allowed {
		t.Fatalf("Expected /notes to be allowed, got %v %v", allowed, err)
	}
	if delay != MaxCrawlDelay {
		t.Errorf("Expected crawl delay capped at %v, got %v", MaxCrawlDelay, delay)
	}

	if robotsHits.Load() != 1 {
		t.Errorf("Expected robots.txt to be fetched once, got %d", robotsHits.Load())
	}
}

func TestRobotsChecker_MissingRobotsAllows(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	checker := NewRobotsChecker("tfquiz", 5*time.Second)
	allowed, _, err := checker.CanFetch(context.Background(), server.URL+"/anything")
	if err != nil || !allowed {
		t.Errorf("Expected fetch to be allowed, got %v %v", allowed, err)
	}
}

func TestRobotsChecker_UnreachableAllows(t *testing.T) {
	checker := NewRobotsChecker("tfquiz", 200*time.Millisecond)
	allowed, _, err := checker.CanFetch(context.Background(), "http://127.0.0.1:1/doc")
	if err != nil || !allowed {
		t.Errorf("Expected unreachable robots.txt to allow, got %v %v", allowed, err)
	}
}

func TestNewProxyFunc_Explicit(t *testing.T) {
	proxy := NewProxyFunc("http://proxy.local:3128", "http://secure.local:3128", "internal.example")

	req, _ := http.NewRequest(http.MethodGet, "https://docs.example/page", nil)
	u, err := proxy(req)
	if err != nil || u == nil || u.Host != "secure.local:3128" {
		t.Errorf("Expected https proxy, got %v %v", u, err)
	}

	req, _ = http.NewRequest(http.MethodGet, "http://docs.example/page", nil)
	u, err = proxy(req)
	if err != nil || u == nil || u.Host != "proxy.local:3128" {
		t.Errorf("Expected http proxy, got %v %v", u, err)
	}

	req, _ = http.NewRequest(http.MethodGet, "http://internal.example/page", nil)
	u, err = proxy(req)
	if err != nil || u != nil {
		t.Errorf("Expected no proxy for excluded host, got %v %v", u, err)
	}
}

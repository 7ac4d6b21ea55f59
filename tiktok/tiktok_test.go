package tiktok

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestContainsLink(t *testing.T) {
	cases := []struct {
		text string
		want bool
	}{
		{"https://vm.tiktok.com/ZSabc123/", true},
		{"глянь https://vm.tiktok.com/ZSabc123 срочно", true},
		{"просто сообщение", false},
		{"https://example.com/video", false},
	}

	for _, tc := range cases {
		if got := ContainsLink(tc.text); got != tc.want {
			t.Errorf("ContainsLink(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}

func TestResolverFollowsRedirectHeader(t *testing.T) {
	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Header().Set("Location", "https://m.tiktok.com/v/6829267836783250694.html")
		w.WriteHeader(http.StatusMovedPermanently)
	}))
	defer server.Close()

	resolver := NewResolver(5*time.Second, time.Hour)
	// Point the share-link regex result at the test server by resolving
	// the URL directly through the client path.
	id, err := resolver.resolveShareURL(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if id != "6829267836783250694" {
		t.Fatalf("unexpected video id: %q", id)
	}

	// Second resolution of the same URL is served from cache.
	if _, err := resolver.resolveShareURL(context.Background(), server.URL); err != nil {
		t.Fatalf("cached resolve: %v", err)
	}
	if hits != 1 {
		t.Fatalf("expected 1 upstream hit, got %d", hits)
	}
}

func TestResolverUnrecognizedLocation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Location", "https://www.tiktok.com/some/other/shape")
		w.WriteHeader(http.StatusMovedPermanently)
	}))
	defer server.Close()

	resolver := NewResolver(5*time.Second, time.Hour)
	id, err := resolver.resolveShareURL(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if id != "" {
		t.Fatalf("expected empty id for unrecognized canonical URL, got %q", id)
	}
}

func TestContentIDNoLink(t *testing.T) {
	resolver := NewResolver(5*time.Second, time.Hour)
	id, err := resolver.ContentID(context.Background(), "сообщение без ссылки")
	if err != nil {
		t.Fatalf("content id: %v", err)
	}
	if id != "" {
		t.Fatalf("expected empty id without a link, got %q", id)
	}
}

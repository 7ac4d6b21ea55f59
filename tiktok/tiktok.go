// Package tiktok resolves shared short links to stable video ids. The
// share link redirects to the canonical video URL; the id in that URL
// identifies the video regardless of who shared it or when.
package tiktok

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"time"
)

var (
	shareURLRe = regexp.MustCompile(`https://vm\.tiktok\.com/[^\s/]+`)
	videoIDRe  = regexp.MustCompile(`https://m\.tiktok\.com/v/(.*)\.html`)
)

// ContainsLink reports whether the text carries a share link.
func ContainsLink(text string) bool {
	return shareURLRe.MatchString(text)
}

// Resolver turns message texts into video ids. It never follows the
// redirect, only reads its Location header.
type Resolver struct {
	client *http.Client
	cache  *resolveCache
}

// NewResolver builds a resolver with the given request timeout and
// cache lifetime.
func NewResolver(timeout, cacheTTL time.Duration) *Resolver {
	return &Resolver{
		client: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		cache: newResolveCache(cacheTTL),
	}
}

// ContentID extracts the share URL from text and resolves it to a video
// id. Returns "" without error when the text has no share link or the
// canonical URL has an unrecognized shape; the caller treats "" as
// unresolvable-hence-novel.
func (r *Resolver) ContentID(ctx context.Context, text string) (string, error) {
	shareURL := shareURLRe.FindString(text)
	if shareURL == "" {
		return "", nil
	}
	return r.resolveShareURL(ctx, shareURL)
}

func (r *Resolver) resolveShareURL(ctx context.Context, shareURL string) (string, error) {
	if id, found := r.cache.get(shareURL); found {
		return id, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, shareURL, nil)
	if err != nil {
		return "", err
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", shareURL, err)
	}
	defer resp.Body.Close()

	location := resp.Header.Get("Location")
	if location == "" {
		return "", fmt.Errorf("resolve %s: no redirect location", shareURL)
	}

	id := ""
	if m := videoIDRe.FindStringSubmatch(location); m != nil {
		id = m[1]
	}

	r.cache.put(shareURL, id)
	return id, nil
}

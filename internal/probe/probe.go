// Package probe checks whether stored cookies are still accepted by their
// originating site by replaying them on an outbound request.
package probe

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/vadimbarashkov/cookie-keeper/pkg/cookieheader"
)

const defaultTimeout = 10 * time.Second

// loginPathMarkers are path fragments that indicate the site redirected the
// request to an authentication page, which means the cookies were rejected.
var loginPathMarkers = []string{"login", "signin", "sign-in", "auth"}

// Checker issues validation requests against target sites.
type Checker struct {
	client    *http.Client
	userAgent string
}

// NewChecker creates a Checker with the given request timeout and User-Agent.
// A non-positive timeout falls back to the default.
func NewChecker(timeout time.Duration, userAgent string) *Checker {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Checker{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// Check sends a GET request to the website carrying the given cookie pairs
// and reports whether the site still accepts them.
//
// The verdict is true when the final response status is in the 2xx/3xx range,
// is not 401 or 403, and the request did not land on a login-looking page.
// Any transport failure yields a false verdict rather than an error: a stale
// cookie and an unreachable endpoint are indistinguishable to the caller.
func (c *Checker) Check(ctx context.Context, website string, pairs []cookieheader.Pair) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, normalizeWebsite(website), nil)
	if err != nil {
		return false
	}

	for _, pair := range pairs {
		req.AddCookie(&http.Cookie{Name: pair.Name, Value: pair.Value})
	}

	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return classify(resp)
}

// normalizeWebsite turns a user-supplied site label into a request target,
// defaulting to https when the label lacks a scheme.
func normalizeWebsite(website string) string {
	if strings.HasPrefix(website, "http://") || strings.HasPrefix(website, "https://") {
		return website
	}

	return "https://" + website
}

func classify(resp *http.Response) bool {
	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return false
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 400 {
		return false
	}

	return !isLoginPage(resp)
}

// isLoginPage reports whether the request ended up on an authentication page
// after redirects.
func isLoginPage(resp *http.Response) bool {
	if resp.Request == nil || resp.Request.URL == nil {
		return false
	}

	path := strings.ToLower(resp.Request.URL.Path)
	for _, marker := range loginPathMarkers {
		if strings.Contains(path, marker) {
			return true
		}
	}

	return false
}

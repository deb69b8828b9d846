package probe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vadimbarashkov/cookie-keeper/pkg/cookieheader"
)

var testPairs = []cookieheader.Pair{
	{Name: "session", Value: "abc123"},
	{Name: "token", Value: "xyz"},
}

func TestChecker_Check(t *testing.T) {
	t.Run("cookies are sent with the request", func(t *testing.T) {
		var gotCookies []*http.Cookie

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotCookies = r.Cookies()
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		checker := NewChecker(time.Second, "test-agent")
		valid := checker.Check(context.TODO(), server.URL, testPairs)

		assert.True(t, valid)
		assert.Len(t, gotCookies, 2)
		assert.Equal(t, "session", gotCookies[0].Name)
		assert.Equal(t, "abc123", gotCookies[0].Value)
	})

	t.Run("success status is valid", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		checker := NewChecker(time.Second, "")

		assert.True(t, checker.Check(context.TODO(), server.URL, testPairs))
	})

	t.Run("unauthorized status is invalid", func(t *testing.T) {
		for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(status)
			}))

			checker := NewChecker(time.Second, "")

			assert.False(t, checker.Check(context.TODO(), server.URL, testPairs))
			server.Close()
		}
	})

	t.Run("client and server errors are invalid", func(t *testing.T) {
		for _, status := range []int{http.StatusNotFound, http.StatusInternalServerError} {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(status)
			}))

			checker := NewChecker(time.Second, "")

			assert.False(t, checker.Check(context.TODO(), server.URL, testPairs))
			server.Close()
		}
	})

	t.Run("redirect to login page is invalid", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/login" {
				w.WriteHeader(http.StatusOK)
				return
			}
			http.Redirect(w, r, "/login", http.StatusFound)
		}))
		defer server.Close()

		checker := NewChecker(time.Second, "")

		assert.False(t, checker.Check(context.TODO(), server.URL, testPairs))
	})

	t.Run("redirect to regular page is valid", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/home" {
				w.WriteHeader(http.StatusOK)
				return
			}
			http.Redirect(w, r, "/home", http.StatusFound)
		}))
		defer server.Close()

		checker := NewChecker(time.Second, "")

		assert.True(t, checker.Check(context.TODO(), server.URL, testPairs))
	})

	t.Run("unreachable server is invalid", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()

		checker := NewChecker(time.Second, "")

		assert.False(t, checker.Check(context.TODO(), server.URL, testPairs))
	})

	t.Run("timeout is invalid", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		checker := NewChecker(50*time.Millisecond, "")

		assert.False(t, checker.Check(context.TODO(), server.URL, testPairs))
	})
}

func TestNormalizeWebsite(t *testing.T) {
	assert.Equal(t, "https://example.com", normalizeWebsite("example.com"))
	assert.Equal(t, "https://example.com", normalizeWebsite("https://example.com"))
	assert.Equal(t, "http://example.com", normalizeWebsite("http://example.com"))
}

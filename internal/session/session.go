package session

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"strings"

	"golang.org/x/net/publicsuffix"
	"gopkg.in/yaml.v2"

	"github.com/p-shah256/jasoseol/pkg/types"
)

const (
	CookieEnv = "JASOSEOL_COOKIE"
	FileEnv   = "JASOSEOL_SESSION_FILE"
)

// Load builds a cookie jar for baseURL from an existing browser session.
// JASOSEOL_COOKIE takes a raw Cookie header; JASOSEOL_SESSION_FILE points at a
// YAML file of cookies. Both may be set. Neither set yields an empty jar.
func Load(baseURL string) (*cookiejar.Jar, error) {
	var cookies []*http.Cookie

	if raw := strings.TrimSpace(os.Getenv(CookieEnv)); raw != "" {
		parsed, err := ParseCookieHeader(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", CookieEnv, err)
		}
		cookies = append(cookies, parsed...)
	}

	if path := os.Getenv(FileEnv); path != "" {
		fromFile, err := ReadFile(path)
		if err != nil {
			return nil, err
		}
		cookies = append(cookies, fromFile...)
	}

	if len(cookies) == 0 {
		slog.Warn("No session cookies configured, requests will be anonymous",
			"env", CookieEnv, "file_env", FileEnv)
	}

	return NewJar(baseURL, cookies)
}

// NewJar returns a jar holding cookies scoped to the host of baseURL.
func NewJar(baseURL string, cookies []*http.Cookie) (*cookiejar.Jar, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid base url %q: missing host", baseURL)
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}
	if len(cookies) > 0 {
		jar.SetCookies(u, cookies)
		slog.Debug("Session cookies loaded", "host", u.Host, "count", len(cookies))
	}
	return jar, nil
}

// ParseCookieHeader splits a browser Cookie header ("a=1; b=2") into cookies.
func ParseCookieHeader(raw string) ([]*http.Cookie, error) {
	raw = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(raw), "Cookie:"))
	cookies, err := http.ParseCookie(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse cookie header: %w", err)
	}
	return cookies, nil
}

func ReadFile(path string) ([]*http.Cookie, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("session file not found at %s: %w", path, err)
	}
	defer file.Close()

	var sf types.SessionFile
	if err := yaml.NewDecoder(file).Decode(&sf); err != nil {
		return nil, fmt.Errorf("failed to parse session file %s: %w", path, err)
	}

	cookies := make([]*http.Cookie, 0, len(sf.Cookies))
	for i, c := range sf.Cookies {
		if c.Name == "" {
			return nil, fmt.Errorf("session file %s: cookie %d has no name", path, i)
		}
		cookies = append(cookies, &http.Cookie{Name: c.Name, Value: c.Value})
	}
	return cookies, nil
}

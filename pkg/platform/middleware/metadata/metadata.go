// Package metadata extracts client IP, User-Agent, and a parsed device summary
// from incoming requests so audit events can record where a change came from.
package metadata

import (
	"net"
	"net/http"
	"strings"

	"github.com/mssola/useragent"

	"pessoas/pkg/requestcontext"
)

// Handler extracts client metadata from the request and adds it to the context
// for use by handlers and services.
func Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r.RemoteAddr)
		rawUA := r.Header.Get("User-Agent")

		ctx := requestcontext.WithClientMetadata(r.Context(), ip, rawUA)
		if summary := DeviceSummary(rawUA); summary != "" {
			ctx = requestcontext.WithDeviceSummary(ctx, summary)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// DeviceSummary condenses a User-Agent string into "browser major / os /
// platform". Returns "" for empty input.
func DeviceSummary(rawUA string) string {
	if rawUA == "" {
		return ""
	}

	ua := useragent.New(rawUA)
	browser, version := ua.Browser()
	browser = strings.ToLower(strings.TrimSpace(browser))
	if browser == "" {
		browser = "unknown"
	}

	major := "unknown"
	if parts := strings.Split(version, "."); len(parts) > 0 && parts[0] != "" {
		major = parts[0]
	}

	os := strings.ToLower(strings.TrimSpace(ua.OS()))
	if os == "" {
		os = "unknown"
	}

	platform := "desktop"
	if ua.Mobile() {
		platform = "mobile"
	} else if ua.Bot() {
		platform = "bot"
	}

	return browser + " " + major + " / " + os + " / " + platform
}

func clientIP(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		// RemoteAddr without a port (some test servers) is used as-is.
		return remoteAddr
	}
	return host
}

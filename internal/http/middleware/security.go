// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file provides SecurityHeaders. The gateway serves a chat widget that
// is embedded cross-origin on the marketing site and normally runs behind a
// reverse proxy, so the middleware sticks to headers that are safe for JSON
// APIs: no CSP (only relevant when serving HTML), HSTS only when the request
// actually arrived over HTTPS, and optional cache suppression for responses
// that may carry contact details.
package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// SecurityOptions configures the headers emitted by SecurityHeaders.
//
// EnableHSTS turns on Strict-Transport-Security for HTTPS requests (never
// for plain HTTP). Only enable it when traffic is HTTPS end-to-end,
// including the hop between the proxy and the gateway.
//
// HSTSMaxAge is the HSTS lifetime; it defaults to 180 days when zero or
// negative.
//
// NoStore adds Cache-Control: no-store (plus legacy Pragma/Expires) so
// transcript and lead responses are never cached by intermediaries.
//
// EnablePolicy sends Permissions-Policy and
// X-Permitted-Cross-Domain-Policies. Browsers honor them; other clients
// ignore them.
type SecurityOptions struct {
	EnableHSTS   bool
	HSTSMaxAge   time.Duration
	NoStore      bool
	EnablePolicy bool
}

// SecurityHeaders returns middleware that attaches a conservative set of
// security headers to every response.
//
// Always set: X-Content-Type-Options: nosniff, X-Frame-Options: DENY,
// Referrer-Policy: no-referrer. The frame denial is deliberate: the widget
// talks to this API with fetch, it is never framed.
//
// When the response already carries an X-Request-ID (set by RequestID), it
// is added to Access-Control-Expose-Headers so the widget can surface the
// id in its error bubbles for support follow-up.
func SecurityHeaders(opt SecurityOptions) gin.HandlerFunc {
	maxAge := int(opt.HSTSMaxAge.Seconds())
	if maxAge <= 0 {
		maxAge = int((180 * 24 * time.Hour).Seconds())
	}
	return func(c *gin.Context) {
		h := c.Writer.Header()

		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")

		if opt.EnablePolicy {
			h.Set("Permissions-Policy", "geolocation=(), microphone=(), camera=(), payment=()")
			h.Set("X-Permitted-Cross-Domain-Policies", "none")
		}

		if opt.NoStore {
			h.Set("Cache-Control", "no-store")
			h.Set("Pragma", "no-cache")
			h.Set("Expires", "0")
		}

		if opt.EnableHSTS && isHTTPS(c.Request) {
			h.Set("Strict-Transport-Security",
				"max-age="+itoa(maxAge)+"; includeSubDomains; preload")
		}

		if rid := h.Get("X-Request-ID"); rid != "" {
			// Append without clobbering exposed headers set by CORS.
			const hdr = "Access-Control-Expose-Headers"
			cur := h.Get(hdr)
			if cur == "" {
				h.Set(hdr, "X-Request-ID")
			} else if !strings.Contains(cur, "X-Request-ID") {
				h.Set(hdr, cur+", X-Request-ID")
			}
		}

		c.Next()
	}
}

// isHTTPS reports whether the request used HTTPS, either directly
// (r.TLS != nil) or via a proxy that set X-Forwarded-Proto: https.
func isHTTPS(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}
	return strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}

// itoa converts an int to decimal without pulling strconv into the hot path.
func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	neg := i < 0
	if neg {
		i = -i
	}
	var b [20]byte
	pos := len(b)
	for i > 0 {
		pos--
		b[pos] = byte('0' + i%10)
		i /= 10
	}
	if neg {
		pos--
		b[pos] = '-'
	}
	return string(b[pos:])
}

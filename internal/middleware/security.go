package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
)

const (
	apiContentSecurityPolicy = "default-src 'self'"
	// Uploaded files are user content: never let one run script or load
	// anything, even if it claims to be HTML or SVG.
	uploadContentSecurityPolicy = "default-src 'none'; img-src 'self'; sandbox"
)

// SecurityHeaders sets hardening headers on every response. Paths under any
// of uploadPrefixes are treated as user-supplied files and get a locked-down
// CSP plus a short private cache instead of no-store.
func SecurityHeaders(uploadPrefixes ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
			h.Set("Permissions-Policy", "geolocation=(), microphone=(), camera=()")

			if isUploadPath(c.Request().URL.Path, uploadPrefixes) {
				h.Set("Content-Security-Policy", uploadContentSecurityPolicy)
				h.Set("Cache-Control", "private, max-age=3600")
				return next(c)
			}

			h.Set("Content-Security-Policy", apiContentSecurityPolicy)
			// Balances and reports must not be cached
			h.Set("Cache-Control", "no-store, no-cache, must-revalidate, private")
			h.Set("Pragma", "no-cache")
			h.Set("Expires", "0")

			return next(c)
		}
	}
}

func isUploadPath(path string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if prefix != "" && strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

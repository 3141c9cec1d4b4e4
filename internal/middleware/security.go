package middleware

import (
	"net/http"

	"github.com/unrolled/secure"
)

// SecureHeaders добавляет security заголовки (X-Frame-Options, nosniff и т.д.)
func SecureHeaders(devMode bool) func(http.Handler) http.Handler {
	sm := secure.New(secure.Options{
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: "default-src 'none'; frame-ancestors 'none'",
		IsDevelopment:         devMode,
	})
	return sm.Handler
}

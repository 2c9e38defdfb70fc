package middleware

import (
	"net/http"
	"strings"

	"dsfs/internal/theme"
)

// PrefersColorSchemeHeader is the client hint carrying the host appearance.
const PrefersColorSchemeHeader = "Sec-CH-Prefers-Color-Scheme"

// AppearanceSetter receives host appearance updates.
type AppearanceSetter interface {
	SetHostAppearance(theme.Scheme)
}

// HostAppearance asks browsers for the color-scheme client hint and forwards
// any value it receives to target. Unknown values are ignored.
func HostAppearance(target AppearanceSetter) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("Accept-CH", PrefersColorSchemeHeader)
			h.Add("Vary", PrefersColorSchemeHeader)
			h.Set("Critical-CH", PrefersColorSchemeHeader)

			if raw := strings.Trim(r.Header.Get(PrefersColorSchemeHeader), `" `); raw != "" {
				if scheme, err := theme.ParseScheme(raw); err == nil {
					target.SetHostAppearance(scheme)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

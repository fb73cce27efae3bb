// Package i18n resolves UI strings for the three supported locales.
package i18n

import (
	"net/http"
	"strings"
	"time"
)

// Locale is a supported UI language.
type Locale string

const (
	EN Locale = "en"
	FR Locale = "fr"
	NL Locale = "nl"
)

// DefaultLocale is used when no valid locale cookie is present.
const DefaultLocale = FR

// Locales lists the supported locales in switcher order.
var Locales = []Locale{NL, FR, EN}

const (
	CookieName   = "locale"
	CookieMaxAge = 365 * 24 * time.Hour
)

// ParseLocale reports whether s names a supported locale.
func ParseLocale(s string) (Locale, bool) {
	switch l := Locale(strings.ToLower(strings.TrimSpace(s))); l {
	case EN, FR, NL:
		return l, true
	}
	return "", false
}

// FromRequest reads the locale cookie, falling back to def.
func FromRequest(r *http.Request, def Locale) Locale {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return def
	}
	if l, ok := ParseLocale(c.Value); ok {
		return l
	}
	return def
}

// SetCookie persists l for a year on the whole site.
func SetCookie(w http.ResponseWriter, l Locale) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    string(l),
		Path:     "/",
		MaxAge:   int(CookieMaxAge / time.Second),
		SameSite: http.SameSiteLaxMode,
	})
}

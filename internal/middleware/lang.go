// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/language"

	"bukhara/internal/menu"
)

const (
	// LangParam is the query parameter used to select a language.
	LangParam = "lang"
	// LangCookieName stores the visitor's language preference.
	LangCookieName = "lang"
)

type langKey struct{}

// langMatcher maps Accept-Language preferences onto the display
// languages. The first tag is the fallback for unmatched preferences.
var langMatcher = language.NewMatcher([]language.Tag{
	language.Uzbek,
	language.Russian,
	language.English,
})

var matchedLangs = []menu.Lang{menu.UZ, menu.RU, menu.EN}

// Language resolves the display language of a request: the lang query
// parameter (remembered in a cookie), then the lang cookie, then
// Accept-Language, then fallback.
func Language(fallback menu.Lang) func(http.Handler) http.Handler {
	fallback = fallback.Normalize()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang, persist := resolveLang(r, fallback)
			if persist {
				setLangCookie(w, lang)
			}
			w.Header().Set("Content-Language", string(lang))
			next.ServeHTTP(w, r.WithContext(WithLang(r.Context(), lang)))
		})
	}
}

func resolveLang(r *http.Request, fallback menu.Lang) (menu.Lang, bool) {
	if v := strings.TrimSpace(r.URL.Query().Get(LangParam)); v != "" {
		if lang, ok := menu.ParseLang(v); ok {
			return lang, true
		}
	}

	if c, err := r.Cookie(LangCookieName); err == nil {
		if lang, ok := menu.ParseLang(c.Value); ok {
			return lang, false
		}
	}

	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil && len(tags) > 0 {
			_, idx, conf := langMatcher.Match(tags...)
			if conf != language.No {
				return matchedLangs[idx], false
			}
		}
	}

	return fallback, false
}

func setLangCookie(w http.ResponseWriter, lang menu.Lang) {
	http.SetCookie(w, &http.Cookie{
		Name:     LangCookieName,
		Value:    string(lang),
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
}

// WithLang stores a display language in ctx.
func WithLang(ctx context.Context, lang menu.Lang) context.Context {
	return context.WithValue(ctx, langKey{}, lang)
}

// LangFromContext returns the display language resolved for the request,
// or the default language outside the Language middleware.
func LangFromContext(ctx context.Context) menu.Lang {
	if lang, ok := ctx.Value(langKey{}).(menu.Lang); ok {
		return lang
	}
	return menu.DefaultLang
}

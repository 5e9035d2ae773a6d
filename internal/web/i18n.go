package web

import (
	"context"
	"net/http"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/trastiendahq/trastienda/internal/platform/i18n"
)

// LangCookieName stores the operator's explicit language choice.
const LangCookieName = "ts_lang"

type localeContextKey struct{}

// locale carries the resolved language for one request.
type locale struct {
	tag     language.Tag
	printer *message.Printer
}

// withLocale resolves the request language and stores it in context.
// An explicit ?lang= choice is persisted in a cookie; otherwise the
// cookie and then the Accept-Language header decide, falling back to
// the base locale.
func withLocale(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tag := resolveTag(w, r)
		loc := locale{tag: tag, printer: i18n.Printer(tag)}
		ctx := context.WithValue(r.Context(), localeContextKey{}, loc)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func resolveTag(w http.ResponseWriter, r *http.Request) language.Tag {
	if value := r.URL.Query().Get("lang"); value != "" {
		if tag, ok := i18n.ParseTag(value); ok {
			http.SetCookie(w, &http.Cookie{
				Name:     LangCookieName,
				Value:    tag.String(),
				Path:     "/",
				SameSite: http.SameSiteLaxMode,
			})
			return tag
		}
	}
	if cookie, err := r.Cookie(LangCookieName); err == nil {
		if tag, ok := i18n.ParseTag(cookie.Value); ok {
			return tag
		}
	}
	if header := r.Header.Get("Accept-Language"); header != "" {
		if tags, _, err := language.ParseAcceptLanguage(header); err == nil {
			return i18n.MatchTags(tags)
		}
	}
	return i18n.DefaultTag()
}

// requestLocale returns the locale resolved by withLocale. Requests that
// bypassed the middleware get the base locale.
func requestLocale(r *http.Request) locale {
	if loc, ok := r.Context().Value(localeContextKey{}).(locale); ok {
		return loc
	}
	tag := i18n.DefaultTag()
	return locale{tag: tag, printer: i18n.Printer(tag)}
}

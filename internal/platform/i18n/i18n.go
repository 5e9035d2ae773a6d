// Package i18n exposes the supported locales and message printers.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	// Registers the embedded message catalogs.
	_ "github.com/trastiendahq/trastienda/internal/platform/i18n/catalog"
)

var supported = []language.Tag{
	language.AmericanEnglish, // en-US (base)
	language.MustParse("es-MX"),
}

var matcher = language.NewMatcher(supported)

// SupportedTags returns the list of supported language tags.
func SupportedTags() []language.Tag {
	out := make([]language.Tag, len(supported))
	copy(out, supported)
	return out
}

// DefaultTag returns the default language tag.
func DefaultTag() language.Tag {
	return supported[0]
}

// ParseTag parses a locale value and matches it against the supported set.
// The bool reports whether the value named a supported language.
func ParseTag(value string) (language.Tag, bool) {
	parsed, err := language.Parse(strings.TrimSpace(value))
	if err != nil {
		return DefaultTag(), false
	}
	tag, _, confidence := matcher.Match(parsed)
	if confidence == language.No {
		return DefaultTag(), false
	}
	return tag, true
}

// MatchTags picks the best supported tag for an ordered preference list.
func MatchTags(tags []language.Tag) language.Tag {
	if len(tags) == 0 {
		return DefaultTag()
	}
	tag, _, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return DefaultTag()
	}
	return tag
}

// Printer returns a message printer for the supplied tag.
func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag)
}

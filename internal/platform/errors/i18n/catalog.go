// Package i18n provides localized user-facing messages for error codes.
package i18n

import (
	"bytes"
	"strings"
	"text/template"
)

// Code is a machine-readable error code (duplicated from the errors package
// to avoid an import cycle).
type Code = string

// Catalog maps error codes to message templates for a specific locale.
type Catalog struct {
	locale   string
	messages map[Code]string
}

// GetCatalog returns the catalog for the given locale.
// Unknown locales fall back to en-US.
func GetCatalog(locale string) *Catalog {
	switch normalizeLocale(locale) {
	case "es":
		return esMXCatalog
	default:
		return enUSCatalog
	}
}

func normalizeLocale(locale string) string {
	trimmed := strings.ToLower(strings.TrimSpace(locale))
	if idx := strings.IndexByte(trimmed, '-'); idx > 0 {
		return trimmed[:idx]
	}
	return trimmed
}

// Locale returns the locale of this catalog.
func (c *Catalog) Locale() string {
	return c.locale
}

// Format renders the message template with the given metadata.
// Falls back to the error code itself if no template is found.
func (c *Catalog) Format(code Code, metadata map[string]string) string {
	tmpl, ok := c.messages[code]
	if !ok {
		return code
	}

	if metadata == nil {
		metadata = map[string]string{}
	}

	t, err := template.New("msg").Parse(tmpl)
	if err != nil {
		return tmpl
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, metadata); err != nil {
		return tmpl
	}
	return buf.String()
}

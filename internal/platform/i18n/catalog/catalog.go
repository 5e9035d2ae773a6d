// Package catalog loads embedded locale message catalogs and registers them
// with x/text/message so printers can resolve localized strings by key.
package catalog

import (
	"embed"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// BaseLocale is the canonical source locale for catalogs.
const BaseLocale = "en-US"

//go:embed locales/*/*.yaml
var embeddedCatalogFS embed.FS

// Bundle contains all locale message maps loaded from catalog files.
type Bundle struct {
	locales map[string]map[string]string
}

var defaultBundle = mustLoadAndRegisterEmbedded()

// Default returns the process-wide embedded catalog bundle.
func Default() *Bundle {
	return defaultBundle
}

func mustLoadAndRegisterEmbedded() *Bundle {
	bundle, err := LoadFromFS(embeddedCatalogFS)
	if err != nil {
		panic(fmt.Sprintf("load embedded catalogs: %v", err))
	}
	if err := bundle.Register(); err != nil {
		panic(fmt.Sprintf("register embedded catalogs: %v", err))
	}
	return bundle
}

// LoadFromFS loads catalog files from the provided filesystem. Files live at
// locales/<locale>/<namespace>.yaml and every key must carry the namespace
// as its first dotted segment.
func LoadFromFS(catalogFS fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(catalogFS, "locales/*/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no catalog files found")
	}
	sort.Strings(paths)

	bundle := &Bundle{locales: map[string]map[string]string{}}
	for _, path := range paths {
		data, err := fs.ReadFile(catalogFS, path)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", path, err)
		}
		locale := filepath.Base(filepath.Dir(path))
		namespace := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		if err := bundle.addFile(path, locale, namespace, data); err != nil {
			return nil, err
		}
	}

	if _, ok := bundle.locales[BaseLocale]; !ok {
		return nil, fmt.Errorf("base locale %s is not defined in catalogs", BaseLocale)
	}
	return bundle, nil
}

func (b *Bundle) addFile(path, locale, namespace string, data []byte) error {
	messages, err := parseCatalogFile(data)
	if err != nil {
		return fmt.Errorf("parse catalog %s: %w", path, err)
	}

	localeMessages, ok := b.locales[locale]
	if !ok {
		localeMessages = map[string]string{}
		b.locales[locale] = localeMessages
	}

	for key, value := range messages {
		if !strings.HasPrefix(key, namespace+".") {
			return fmt.Errorf("catalog %s: key %q must start with namespace %q", path, key, namespace)
		}
		if _, exists := localeMessages[key]; exists {
			return fmt.Errorf("catalog %s: duplicate key %q in locale %q", path, key, locale)
		}
		localeMessages[key] = value
	}
	return nil
}

// parseCatalogFile reads the flat YAML subset used by catalog files:
// comment lines, a "messages:" header, and indented "key: value" pairs
// where values may be double-quoted.
func parseCatalogFile(data []byte) (map[string]string, error) {
	messages := map[string]string{}
	inMessages := false

	for i, rawLine := range strings.Split(string(data), "\n") {
		line := strings.TrimSpace(rawLine)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if line == "messages:" {
			inMessages = true
			continue
		}
		if !inMessages {
			return nil, fmt.Errorf("line %d: unexpected content before messages block", i+1)
		}

		sep := strings.Index(line, ": ")
		if sep <= 0 {
			return nil, fmt.Errorf("line %d: expected \"key: value\"", i+1)
		}
		key := strings.TrimSpace(line[:sep])
		value := strings.TrimSpace(line[sep+2:])
		if strings.HasPrefix(value, `"`) {
			unquoted, err := strconv.Unquote(value)
			if err != nil {
				return nil, fmt.Errorf("line %d: unquote value: %w", i+1, err)
			}
			value = unquoted
		}
		if key == "" || value == "" {
			return nil, fmt.Errorf("line %d: key and value are required", i+1)
		}
		messages[key] = value
	}

	if len(messages) == 0 {
		return nil, fmt.Errorf("messages block is empty")
	}
	return messages, nil
}

// Register registers all catalog messages with x/text/message, under both
// the exact locale tag and its base language.
func (b *Bundle) Register() error {
	if b == nil {
		return nil
	}
	for _, locale := range b.Locales() {
		tag, err := language.Parse(locale)
		if err != nil {
			return fmt.Errorf("parse locale tag %q: %w", locale, err)
		}
		tags := []language.Tag{tag}
		if base, _ := tag.Base(); base.String() != "" && base.String() != "und" {
			baseTag, err := language.Parse(base.String())
			if err == nil && baseTag.String() != tag.String() {
				tags = append(tags, baseTag)
			}
		}

		messages := b.locales[locale]
		keys := make([]string, 0, len(messages))
		for key := range messages {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			for _, registerTag := range tags {
				if err := message.SetString(registerTag, key, messages[key]); err != nil {
					return fmt.Errorf("register %s/%s: %w", locale, key, err)
				}
			}
		}
	}
	return nil
}

// Locales returns all available locale identifiers.
func (b *Bundle) Locales() []string {
	if b == nil {
		return nil
	}
	out := make([]string, 0, len(b.locales))
	for locale := range b.locales {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}

// Messages returns the message map for a locale, falling back to the base
// locale when the requested one is unknown.
func (b *Bundle) Messages(locale string) map[string]string {
	if b == nil {
		return map[string]string{}
	}
	source, ok := b.locales[strings.TrimSpace(locale)]
	if !ok {
		source = b.locales[BaseLocale]
	}
	out := make(map[string]string, len(source))
	for key, value := range source {
		out[key] = value
	}
	return out
}

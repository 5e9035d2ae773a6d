package catalog

import (
	"testing"
	"testing/fstest"
)

func TestLoadFromFSRequiresBaseLocale(t *testing.T) {
	fsys := fstest.MapFS{
		"locales/es-MX/fields.yaml": &fstest.MapFile{Data: []byte("messages:\n  fields.name: \"Nombre\"\n")},
	}
	if _, err := LoadFromFS(fsys); err == nil {
		t.Fatal("expected error when base locale is missing")
	}
}

func TestLoadFromFSRejectsForeignNamespaceKeys(t *testing.T) {
	fsys := fstest.MapFS{
		"locales/en-US/fields.yaml": &fstest.MapFile{Data: []byte("messages:\n  guard.notice: \"nope\"\n")},
	}
	if _, err := LoadFromFS(fsys); err == nil {
		t.Fatal("expected error for key outside its namespace")
	}
}

func TestLoadFromFSParsesQuotedValues(t *testing.T) {
	fsys := fstest.MapFS{
		"locales/en-US/fields.yaml": &fstest.MapFile{Data: []byte("# labels\nmessages:\n  fields.name: \"Name\"\n  fields.phone: Phone\n")},
	}
	bundle, err := LoadFromFS(fsys)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	messages := bundle.Messages("en-US")
	if messages["fields.name"] != "Name" {
		t.Fatalf("fields.name = %q", messages["fields.name"])
	}
	if messages["fields.phone"] != "Phone" {
		t.Fatalf("fields.phone = %q", messages["fields.phone"])
	}
}

func TestMessagesFallsBackToBaseLocale(t *testing.T) {
	bundle := Default()
	got := bundle.Messages("fr-FR")
	if got["changeset.empty"] != "(empty)" {
		t.Fatalf("expected base locale fallback, got %q", got["changeset.empty"])
	}
}

func TestEmbeddedLocalesCoverSameKeys(t *testing.T) {
	bundle := Default()
	english := bundle.Messages("en-US")
	spanish := bundle.Messages("es-MX")
	if len(english) == 0 || len(spanish) == 0 {
		t.Fatal("expected embedded catalogs for both locales")
	}
	for key := range english {
		if _, ok := spanish[key]; !ok {
			t.Fatalf("es-MX catalog is missing key %s", key)
		}
	}
	for key := range spanish {
		if _, ok := english[key]; !ok {
			t.Fatalf("en-US catalog is missing key %s", key)
		}
	}
}

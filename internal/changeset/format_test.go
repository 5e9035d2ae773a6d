package changeset_test

import (
	"testing"
	"time"

	"golang.org/x/text/language"

	"github.com/trastiendahq/trastienda/internal/changeset"
	"github.com/trastiendahq/trastienda/internal/platform/i18n"
)

func TestFormatAbsent(t *testing.T) {
	english := i18n.Printer(language.AmericanEnglish)
	spanish := i18n.Printer(language.MustParse("es-MX"))

	if got := changeset.Format(english, changeset.Absent()); got != "(empty)" {
		t.Fatalf("en absent = %q", got)
	}
	if got := changeset.Format(spanish, changeset.Absent()); got != "(vacío)" {
		t.Fatalf("es absent = %q", got)
	}
	if got := changeset.Format(english, changeset.Text("   ")); got != "(empty)" {
		t.Fatalf("blank text = %q", got)
	}
}

func TestFormatBool(t *testing.T) {
	spanish := i18n.Printer(language.MustParse("es-MX"))
	if got := changeset.Format(spanish, changeset.Bool(true)); got != "Sí" {
		t.Fatalf("es true = %q", got)
	}
	if got := changeset.Format(spanish, changeset.Bool(false)); got != "No" {
		t.Fatalf("es false = %q", got)
	}
}

func TestFormatDateUsesLocaleLayout(t *testing.T) {
	when := time.Date(2026, 3, 14, 23, 30, 0, 0, time.UTC)

	english := i18n.Printer(language.AmericanEnglish)
	if got := changeset.Format(english, changeset.Date(when)); got != "03/14/2026" {
		t.Fatalf("en date = %q", got)
	}

	spanish := i18n.Printer(language.MustParse("es-MX"))
	if got := changeset.Format(spanish, changeset.Date(when)); got != "14/03/2026" {
		t.Fatalf("es date = %q", got)
	}
}

func TestFormatListJoinsAndHandlesEmpty(t *testing.T) {
	english := i18n.Printer(language.AmericanEnglish)
	if got := changeset.Format(english, changeset.Strings([]string{"b", "a"})); got != "a, b" {
		t.Fatalf("list = %q", got)
	}
	if got := changeset.Format(english, changeset.List()); got != "(none)" {
		t.Fatalf("empty list = %q", got)
	}

	spanish := i18n.Printer(language.MustParse("es-MX"))
	if got := changeset.Format(spanish, changeset.List()); got != "(ninguno)" {
		t.Fatalf("es empty list = %q", got)
	}
}

func TestFormatNumberGrouping(t *testing.T) {
	english := i18n.Printer(language.AmericanEnglish)
	if got := changeset.Format(english, changeset.Int(1234567)); got != "1,234,567" {
		t.Fatalf("en number = %q", got)
	}
}

func TestFormatNilPrinterFallsBack(t *testing.T) {
	if got := changeset.Format(nil, changeset.Absent()); got != "(empty)" {
		t.Fatalf("nil printer absent = %q", got)
	}
	if got := changeset.Format(nil, changeset.Int(1000)); got != "1,000" {
		t.Fatalf("nil printer number = %q", got)
	}
}

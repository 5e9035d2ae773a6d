package changeset_test

import (
	"strings"
	"testing"
	"time"

	"golang.org/x/text/language"

	"github.com/trastiendahq/trastienda/internal/changeset"
	"github.com/trastiendahq/trastienda/internal/platform/i18n"
)

func TestComputeIdenticalSnapshots(t *testing.T) {
	snapshot := changeset.Snapshot{
		"name":  changeset.Text("Branch A"),
		"phone": changeset.Text("123"),
	}
	cs := changeset.Compute(snapshot, snapshot)
	if cs.HasChanges() {
		t.Fatal("expected no changes for identical snapshots")
	}
	if len(cs.Changes()) != 0 {
		t.Fatalf("expected empty changes, got %d", len(cs.Changes()))
	}
}

func TestComputeNilInitialReportsNoChanges(t *testing.T) {
	current := changeset.Snapshot{
		"name":  changeset.Text("Branch A"),
		"phone": changeset.Text("456"),
	}
	cs := changeset.Compute(nil, current)
	if cs.HasChanges() {
		t.Fatal("expected no changes when initial snapshot is nil")
	}
	if len(cs.ChangedData()) != 0 {
		t.Fatal("expected empty changed data for create flow")
	}
}

func TestComputeSingleFieldChange(t *testing.T) {
	initial := changeset.Snapshot{
		"name":  changeset.Text("Branch A"),
		"phone": changeset.Text("123"),
	}
	current := changeset.Snapshot{
		"name":  changeset.Text("Branch A"),
		"phone": changeset.Text("456"),
	}

	cs := changeset.Compute(initial, current)
	if !cs.HasChanges() {
		t.Fatal("expected a change")
	}
	changes := cs.Changes()
	if len(changes) != 1 {
		t.Fatalf("expected exactly one change, got %d", len(changes))
	}
	if changes[0].Field != "phone" {
		t.Fatalf("expected phone change, got %q", changes[0].Field)
	}
	if got, _ := changes[0].Old.AsText(); got != "123" {
		t.Fatalf("old value = %q, want 123", got)
	}
	if got, _ := changes[0].New.AsText(); got != "456" {
		t.Fatalf("new value = %q, want 456", got)
	}
	if !cs.Changed("phone") || cs.Changed("name") {
		t.Fatal("Changed predicate mismatch")
	}

	data := cs.ChangedData()
	if len(data) != 1 {
		t.Fatalf("expected one changed field, got %d", len(data))
	}
	if got, _ := data["phone"].AsText(); got != "456" {
		t.Fatalf("changed data phone = %q, want 456", got)
	}
}

func TestSummaryLocalizedLabels(t *testing.T) {
	initial := changeset.Snapshot{"phone": changeset.Text("123")}
	current := changeset.Snapshot{"phone": changeset.Text("456")}

	spanish := i18n.Printer(language.MustParse("es-MX"))
	cs := changeset.Compute(initial, current,
		changeset.WithLabels(map[string]string{"phone": spanish.Sprintf("fields.phone")}))

	got := cs.Summary(spanish)
	if got != "Teléfono: 123 → 456" {
		t.Fatalf("summary = %q", got)
	}
}

func TestSummaryOneLinePerChange(t *testing.T) {
	initial := changeset.Snapshot{
		"name":  changeset.Text("Old"),
		"phone": changeset.Text("1"),
	}
	current := changeset.Snapshot{
		"name":  changeset.Text("New"),
		"phone": changeset.Text("2"),
	}
	cs := changeset.Compute(initial, current)
	lines := strings.Split(cs.Summary(nil), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 summary lines, got %d: %q", len(lines), lines)
	}
}

func TestAbsentEmptyAndMissingAreEqual(t *testing.T) {
	initial := changeset.Snapshot{
		"notes": changeset.Text(""),
		"email": changeset.Absent(),
	}
	current := changeset.Snapshot{
		"notes": changeset.Absent(),
		// email key removed entirely
	}
	cs := changeset.Compute(initial, current)
	if cs.HasChanges() {
		t.Fatalf("expected absent/empty/missing to compare equal, got %v", cs.Fields())
	}
}

func TestStringsTrimmedBeforeComparison(t *testing.T) {
	cs := changeset.Compute(
		changeset.Snapshot{"name": changeset.Text("Branch A")},
		changeset.Snapshot{"name": changeset.Text("  Branch A  ")},
	)
	if cs.HasChanges() {
		t.Fatal("expected trimmed strings to compare equal")
	}
}

func TestDateGranularityIsCalendarDay(t *testing.T) {
	morning := time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2026, 3, 14, 22, 45, 0, 0, time.UTC)
	nextDay := time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC)

	sameDay := changeset.Compute(
		changeset.Snapshot{"hiredOn": changeset.Date(morning)},
		changeset.Snapshot{"hiredOn": changeset.Date(evening)},
	)
	if sameDay.HasChanges() {
		t.Fatal("expected same-day timestamps to compare equal")
	}

	differentDay := changeset.Compute(
		changeset.Snapshot{"hiredOn": changeset.Date(morning)},
		changeset.Snapshot{"hiredOn": changeset.Date(nextDay)},
	)
	if !differentDay.HasChanges() {
		t.Fatal("expected different calendar days to differ")
	}
}

func TestListComparisonIgnoresOrder(t *testing.T) {
	unordered := changeset.Compute(
		changeset.Snapshot{"tags": changeset.Strings([]string{"a", "b"})},
		changeset.Snapshot{"tags": changeset.Strings([]string{"b", "a"})},
	)
	if unordered.HasChanges() {
		t.Fatal("expected reordered lists to compare equal")
	}

	grown := changeset.Compute(
		changeset.Snapshot{"tags": changeset.Strings([]string{"a", "b"})},
		changeset.Snapshot{"tags": changeset.Strings([]string{"a", "b", "c"})},
	)
	if !grown.HasChanges() {
		t.Fatal("expected lists of different lengths to differ")
	}
}

func TestRecordComparisonByExactKeySet(t *testing.T) {
	equal := changeset.Compute(
		changeset.Snapshot{"address": changeset.Record(map[string]changeset.Value{
			"street": changeset.Text("Main"),
			"city":   changeset.Text("Monterrey"),
		})},
		changeset.Snapshot{"address": changeset.Record(map[string]changeset.Value{
			"city":   changeset.Text("Monterrey"),
			"street": changeset.Text("Main"),
		})},
	)
	if equal.HasChanges() {
		t.Fatal("expected records with same keys and values to compare equal")
	}

	extraKey := changeset.Compute(
		changeset.Snapshot{"address": changeset.Record(map[string]changeset.Value{
			"street": changeset.Text("Main"),
		})},
		changeset.Snapshot{"address": changeset.Record(map[string]changeset.Value{
			"street": changeset.Text("Main"),
			"zip":    changeset.Text("64000"),
		})},
	)
	if !extraKey.HasChanges() {
		t.Fatal("expected records with different key sets to differ")
	}
}

func TestEqualIsSymmetric(t *testing.T) {
	values := []changeset.Value{
		changeset.Absent(),
		changeset.Text(""),
		changeset.Text(" padded "),
		changeset.Text("padded"),
		changeset.Int(5),
		changeset.Bool(true),
		changeset.Date(time.Date(2026, 1, 2, 13, 0, 0, 0, time.UTC)),
		changeset.Strings([]string{"x", "y"}),
	}
	for _, a := range values {
		for _, b := range values {
			if changeset.Equal(a, b) != changeset.Equal(b, a) {
				t.Fatalf("equality not symmetric for %v and %v", a, b)
			}
		}
	}
}

func TestConfirmPasswordAlwaysIgnored(t *testing.T) {
	cs := changeset.Compute(
		changeset.Snapshot{"name": changeset.Text("A")},
		changeset.Snapshot{
			"name":            changeset.Text("A"),
			"confirmPassword": changeset.Text("hunter22"),
		},
	)
	if cs.HasChanges() {
		t.Fatalf("expected confirmPassword to be ignored, got %v", cs.Fields())
	}
}

func TestWithIgnoredFields(t *testing.T) {
	cs := changeset.Compute(
		changeset.Snapshot{"name": changeset.Text("A"), "internalRev": changeset.Int(1)},
		changeset.Snapshot{"name": changeset.Text("A"), "internalRev": changeset.Int(2)},
		changeset.WithIgnoredFields("internalRev"),
	)
	if cs.HasChanges() {
		t.Fatalf("expected ignored field to be skipped, got %v", cs.Fields())
	}
}

func TestChangedDataRoundTrip(t *testing.T) {
	initial := changeset.Snapshot{
		"name":  changeset.Text("Branch A"),
		"phone": changeset.Text("123"),
		"tags":  changeset.Strings([]string{"retail"}),
	}
	current := changeset.Snapshot{
		"name":  changeset.Text("Branch B"),
		"phone": changeset.Text("123"),
		"tags":  changeset.Strings([]string{"retail", "wholesale"}),
	}

	cs := changeset.Compute(initial, current)
	merged := changeset.Snapshot{}
	for field, value := range initial {
		merged[field] = value
	}
	for field, value := range cs.ChangedData() {
		merged[field] = value
	}

	for field, want := range current {
		if !changeset.Equal(merged[field], want) {
			t.Fatalf("merged field %q does not match current", field)
		}
	}
	if cs.Changed("phone") {
		t.Fatal("phone did not change and must not appear in the change set")
	}
}

func TestFieldsDeterministicOrder(t *testing.T) {
	initial := changeset.Snapshot{
		"b": changeset.Text("1"),
		"a": changeset.Text("1"),
		"c": changeset.Text("1"),
	}
	current := changeset.Snapshot{
		"b": changeset.Text("2"),
		"a": changeset.Text("2"),
		"c": changeset.Text("2"),
	}
	first := changeset.Compute(initial, current).Fields()
	for i := 0; i < 10; i++ {
		again := changeset.Compute(initial, current).Fields()
		if strings.Join(first, ",") != strings.Join(again, ",") {
			t.Fatalf("field order not deterministic: %v vs %v", first, again)
		}
	}
}

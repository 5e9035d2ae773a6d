package changeset

import (
	"sort"
	"strings"

	"golang.org/x/text/message"
)

// Snapshot is a point-in-time view of an entity's comparable fields.
type Snapshot map[string]Value

// FieldChange is one detected difference between two snapshots.
type FieldChange struct {
	Field string
	Label string
	Old   Value
	New   Value
}

// confirmPasswordField is the shadow-confirmation field that never has a
// stored counterpart and is excluded from every comparison.
const confirmPasswordField = "confirmPassword"

type options struct {
	labels  map[string]string
	ignored map[string]struct{}
}

// Option configures a comparison.
type Option func(*options)

// WithLabels overrides the display labels used for changed fields.
// Fields without an override fall back to the field identifier.
func WithLabels(labels map[string]string) Option {
	return func(o *options) {
		for field, label := range labels {
			o.labels[field] = label
		}
	}
}

// WithIgnoredFields excludes fields from the comparison.
func WithIgnoredFields(fields ...string) Option {
	return func(o *options) {
		for _, field := range fields {
			o.ignored[field] = struct{}{}
		}
	}
}

// ChangeSet is the result of comparing two snapshots. It is computed fresh
// on every call to Compute and holds no reference to external state.
type ChangeSet struct {
	changes []FieldChange
	index   map[string]int
	current Snapshot
}

// Compute compares two snapshots field by field. A nil initial snapshot
// models a create flow and never reports changes.
func Compute(initial, current Snapshot, opts ...Option) *ChangeSet {
	cs := &ChangeSet{index: map[string]int{}, current: current}
	if initial == nil {
		return cs
	}

	opt := options{
		labels:  map[string]string{},
		ignored: map[string]struct{}{confirmPasswordField: {}},
	}
	for _, apply := range opts {
		apply(&opt)
	}

	for _, field := range unionKeys(initial, current) {
		if _, skip := opt.ignored[field]; skip {
			continue
		}
		oldValue := initial[field]
		newValue := current[field]
		if Equal(oldValue, newValue) {
			continue
		}
		label, ok := opt.labels[field]
		if !ok || label == "" {
			label = field
		}
		cs.index[field] = len(cs.changes)
		cs.changes = append(cs.changes, FieldChange{
			Field: field,
			Label: label,
			Old:   oldValue,
			New:   newValue,
		})
	}
	return cs
}

func unionKeys(a, b Snapshot) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	for key := range a {
		seen[key] = struct{}{}
	}
	for key := range b {
		seen[key] = struct{}{}
	}
	keys := make([]string, 0, len(seen))
	for key := range seen {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// HasChanges reports whether any field differs.
func (c *ChangeSet) HasChanges() bool {
	return c != nil && len(c.changes) > 0
}

// Fields returns the changed field identifiers in a deterministic order.
func (c *ChangeSet) Fields() []string {
	if c == nil {
		return nil
	}
	fields := make([]string, len(c.changes))
	for i, change := range c.changes {
		fields[i] = change.Field
	}
	return fields
}

// Changes returns the detected field changes.
func (c *ChangeSet) Changes() []FieldChange {
	if c == nil {
		return nil
	}
	out := make([]FieldChange, len(c.changes))
	copy(out, c.changes)
	return out
}

// Changed reports whether the named field is in the changed set.
func (c *ChangeSet) Changed(field string) bool {
	if c == nil {
		return false
	}
	_, ok := c.index[field]
	return ok
}

// ChangedData returns a partial snapshot containing only the changed
// fields, taken from the current snapshot. Fields removed from the current
// snapshot appear as Absent.
func (c *ChangeSet) ChangedData() Snapshot {
	if c == nil {
		return Snapshot{}
	}
	out := make(Snapshot, len(c.changes))
	for _, change := range c.changes {
		value, ok := c.current[change.Field]
		if !ok {
			value = Absent()
		}
		out[change.Field] = value
	}
	return out
}

// Summary renders a plain-text, one-line-per-change description of the
// change set, formatted "<label>: <old> → <new>".
func (c *ChangeSet) Summary(p *message.Printer) string {
	if c == nil || len(c.changes) == 0 {
		return ""
	}
	lines := make([]string, len(c.changes))
	for i, change := range c.changes {
		lines[i] = change.Label + ": " + Format(p, change.Old) + " → " + Format(p, change.New)
	}
	return strings.Join(lines, "\n")
}

package changeset

import (
	"math"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Format renders a value for display using the printer's locale. A nil
// printer falls back to en-US.
func Format(p *message.Printer, v Value) string {
	if p == nil {
		p = message.NewPrinter(language.AmericanEnglish)
	}

	n := v.normalize()
	switch n.kind {
	case KindAbsent:
		return msg(p, "changeset.empty", "(empty)")
	case KindText:
		return n.text
	case KindBool:
		if n.boolean {
			return msg(p, "changeset.yes", "Yes")
		}
		return msg(p, "changeset.no", "No")
	case KindTime:
		layout := msg(p, "changeset.dateLayout", time.DateOnly)
		return n.when.Format(layout)
	case KindList:
		if len(n.list) == 0 {
			return msg(p, "changeset.none", "(none)")
		}
		parts := make([]string, len(n.list))
		for i, item := range n.list {
			parts[i] = Format(p, item)
		}
		return strings.Join(parts, ", ")
	case KindNumber:
		return formatNumber(p, n.number)
	case KindRecord:
		keys := make([]string, 0, len(n.record))
		for key := range n.record {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, key := range keys {
			parts[i] = key + ": " + Format(p, n.record[key])
		}
		return strings.Join(parts, ", ")
	default:
		return ""
	}
}

// formatNumber renders a number with locale grouping separators.
func formatNumber(p *message.Printer, n float64) string {
	if n == math.Trunc(n) && math.Abs(n) < 1e15 {
		return p.Sprint(number.Decimal(int64(n)))
	}
	return p.Sprint(number.Decimal(n))
}

// msg resolves a catalog key through the printer, falling back when the
// key is not registered for the printer's locale.
func msg(p *message.Printer, key, fallback string) string {
	if s := p.Sprintf(key); s != key {
		return s
	}
	return fallback
}

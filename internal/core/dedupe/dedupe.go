package dedupe

import (
	"strings"
)

// Deduplicator cleans phone book entries before they are counted.
type Deduplicator struct {
	// Normalize strips formatting characters so that "+1 (555) 010-99"
	// and "+155501099" collapse into one phone.
	Normalize bool
}

func NewDeduplicator(normalize bool) *Deduplicator {
	return &Deduplicator{
		Normalize: normalize,
	}
}

var formatting = strings.NewReplacer(" ", "", "-", "", ".", "", "(", "", ")", "", "\t", "")

// Phone returns the canonical form of a phone number.
func (d *Deduplicator) Phone(phone string) string {
	phone = strings.TrimSpace(phone)
	if !d.Normalize {
		return phone
	}
	return formatting.Replace(phone)
}

// Unique returns the canonical phones without repetition, in first-seen
// order. Empty entries are dropped.
func (d *Deduplicator) Unique(phones []string) []string {
	seen := make(map[string]struct{}, len(phones))
	out := make([]string, 0, len(phones))
	for _, p := range phones {
		p = d.Phone(p)
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

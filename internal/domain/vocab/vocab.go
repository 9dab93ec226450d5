// Package vocab holds the fixed canonical vocabularies of the species
// catalog and the synonym normalization over them.
package vocab

import "strings"

// Entry maps one canonical label to its accepted synonyms.
// Synonyms are matched case-insensitively.
type Entry struct {
	Canonical string
	Synonyms  []string
}

// Table is an ordered synonym table. Order matters: scans resolve to the
// first entry whose canonical label or synonym matches.
type Table struct {
	entries []Entry
	index   map[string]string // lowered label/synonym -> canonical
}

// NewTable builds a lookup table from ordered entries.
func NewTable(entries []Entry) Table {
	index := make(map[string]string)
	for _, e := range entries {
		index[strings.ToLower(e.Canonical)] = e.Canonical
		for _, s := range e.Synonyms {
			index[strings.ToLower(strings.TrimSpace(s))] = e.Canonical
		}
	}
	return Table{entries: entries, index: index}
}

// Entries returns the table entries in declaration order.
func (t Table) Entries() []Entry {
	return t.entries
}

// Normalize maps a raw value onto its canonical label. The comparison
// trims and lowers the input; the returned canonical keeps its original
// casing. Unknown values pass through unchanged, so normalization never
// fails.
func (t Table) Normalize(value string) string {
	if canonical, ok := t.index[strings.ToLower(strings.TrimSpace(value))]; ok {
		return canonical
	}
	return value
}

// NormalizePtr is the nil-safe form of Normalize used on extracted
// query fields, where nil means "no constraint".
func (t Table) NormalizePtr(value *string) *string {
	if value == nil {
		return nil
	}
	v := t.Normalize(*value)
	return &v
}

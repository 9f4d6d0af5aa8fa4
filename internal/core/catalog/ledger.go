package catalog

import "sort"

// Ledger counts accesses per record identifier.
//
// Entries are keyed by Key(id) but remember the identifier spelling they were
// first tracked with. The ledger also remembers the order in which entries
// were created; Max and Entries use that order to break ties.
//
// A Ledger is not safe for concurrent use.
type Ledger struct {
	entries map[string]*ledgerEntry
	order   []string // keys in first-access order
}

type ledgerEntry struct {
	id    string
	count int
}

// Entry is a snapshot of one ledger row.
type Entry struct {
	ID    string
	Count int
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{entries: make(map[string]*ledgerEntry)}
}

// Track increments the count for id, creating it at 1 when absent.
// Blank identifiers are ignored. Returns the new count (0 when ignored).
func (l *Ledger) Track(id string) int {
	if IsBlank(id) {
		return 0
	}
	k := Key(id)
	e, ok := l.entries[k]
	if !ok {
		e = &ledgerEntry{id: id}
		l.entries[k] = e
		l.order = append(l.order, k)
	}
	e.count++
	return e.count
}

// Count returns the count for id, or 0 for blank or untracked identifiers.
func (l *Ledger) Count(id string) int {
	if IsBlank(id) {
		return 0
	}
	if e, ok := l.entries[Key(id)]; ok {
		return e.count
	}
	return 0
}

// Len returns the number of tracked identifiers.
func (l *Ledger) Len() int {
	return len(l.entries)
}

// Remove deletes the entry for id. No-op when absent or blank.
func (l *Ledger) Remove(id string) {
	if IsBlank(id) {
		return
	}
	k := Key(id)
	if _, ok := l.entries[k]; !ok {
		return
	}
	delete(l.entries, k)
	for i, key := range l.order {
		if key == k {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
}

// Clear removes every entry.
func (l *Ledger) Clear() {
	l.entries = make(map[string]*ledgerEntry)
	l.order = nil
}

// Snapshot returns a copy of the counts keyed by the tracked identifier.
func (l *Ledger) Snapshot() map[string]int {
	out := make(map[string]int, len(l.entries))
	for _, e := range l.entries {
		out[e.id] = e.count
	}
	return out
}

// Entries returns all entries sorted by count descending.
// Equal counts keep first-access order.
func (l *Ledger) Entries() []Entry {
	out := make([]Entry, 0, len(l.order))
	for _, k := range l.order {
		e := l.entries[k]
		out = append(out, Entry{ID: e.id, Count: e.count})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

// Max returns the identifier with the highest count.
// When several identifiers share the maximum, the one tracked first wins.
// ok is false for an empty ledger.
func (l *Ledger) Max() (id string, count int, ok bool) {
	for _, k := range l.order {
		e := l.entries[k]
		if !ok || e.count > count {
			id, count, ok = e.id, e.count, true
		}
	}
	return id, count, ok
}

package diag

import "sort"

// Bag accumulates diagnostics for one compilation, grounded on
// internal/diag/bag.go (teacher): a capped, sortable collection with
// HasErrors/HasWarnings queries.
type Bag struct {
	items []Diagnostic
	max   int
}

// NewBag creates a Bag that silently drops diagnostics past max (0 means
// unbounded).
func NewBag(max int) *Bag {
	return &Bag{max: max}
}

// Add appends d, respecting the cap. Returns false if d was dropped.
func (b *Bag) Add(d Diagnostic) bool {
	if b.max > 0 && len(b.items) >= b.max {
		return false
	}
	b.items = append(b.items, d)
	return true
}

// HasErrors reports whether any diagnostic is SevError or more severe.
func (b *Bag) HasErrors() bool {
	for _, d := range b.items {
		if d.Severity >= SevError {
			return true
		}
	}
	return false
}

// HasWarnings reports whether any diagnostic is SevWarning or more severe.
func (b *Bag) HasWarnings() bool {
	for _, d := range b.items {
		if d.Severity >= SevWarning {
			return true
		}
	}
	return false
}

// Len returns the number of diagnostics currently held.
func (b *Bag) Len() int { return len(b.items) }

// Items returns a read-only view; callers must not mutate the slice.
func (b *Bag) Items() []Diagnostic { return b.items }

// Sort orders diagnostics deterministically: file, start, end, severity
// (descending), code (ascending), grounded on the teacher's Bag.Sort.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		di, dj := b.items[i], b.items[j]
		if di.Primary.File != dj.Primary.File {
			return di.Primary.File < dj.Primary.File
		}
		if di.Primary.Start != dj.Primary.Start {
			return di.Primary.Start < dj.Primary.Start
		}
		if di.Primary.End != dj.Primary.End {
			return di.Primary.End < dj.Primary.End
		}
		if di.Severity != dj.Severity {
			return di.Severity > dj.Severity
		}
		return di.Code < dj.Code
	})
}

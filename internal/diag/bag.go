package diag

// Bag accumulates diagnostics up to a capacity, mirroring the
// --max-diagnostics guardrail every phase of the pipeline shares.
type Bag struct {
	items []Diagnostic
	max   int
}

// NewBag creates a bag that holds at most max diagnostics. A non-positive
// max is treated as unlimited.
func NewBag(max int) *Bag {
	return &Bag{max: max}
}

// Report appends a diagnostic, dropping it silently once the bag is full.
// Returns false when the diagnostic was dropped.
func (b *Bag) Report(d Diagnostic) bool {
	if b.max > 0 && len(b.items) >= b.max {
		return false
	}
	b.items = append(b.items, d)
	return true
}

// Errorf reports an Error-severity diagnostic with the given code and
// position, formatting message in the manner of fmt.Sprintf.
func (b *Bag) Errorf(code Code, pos Pos, format string, args ...any) {
	b.Report(Diagnostic{Severity: SevError, Code: code, Message: sprintf(format, args...), Pos: pos})
}

// Warnf reports a Warning-severity diagnostic.
func (b *Bag) Warnf(code Code, pos Pos, format string, args ...any) {
	b.Report(Diagnostic{Severity: SevWarning, Code: code, Message: sprintf(format, args...), Pos: pos})
}

// HasErrors reports whether any Error-or-above diagnostic was recorded.
func (b *Bag) HasErrors() bool {
	for _, d := range b.items {
		if d.Severity >= SevError {
			return true
		}
	}
	return false
}

// Len returns the number of recorded diagnostics.
func (b *Bag) Len() int { return len(b.items) }

// Items returns a read-only view of the recorded diagnostics. Callers must
// not mutate the returned slice's backing array.
func (b *Bag) Items() []Diagnostic { return b.items }

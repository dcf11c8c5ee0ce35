package core

// Filter is a set of optional constraints narrowing a transaction view.
// An empty value in any dimension means no constraint on that dimension;
// the zero Filter matches everything.
type Filter struct {
	Kind     Kind
	Category string
	From     Date // inclusive lower bound
	To       Date // inclusive upper bound
}

// IsZero reports whether no dimension is constrained.
func (f Filter) IsZero() bool {
	return f.Kind == "" && f.Category == "" && f.From == "" && f.To == ""
}

// Matches reports whether the transaction satisfies every non-empty
// dimension. Date bounds are inclusive; comparison is lexicographic,
// which is valid for zero-padded ISO dates.
func (f Filter) Matches(t Transaction) bool {
	if f.Kind != "" && t.Kind != f.Kind {
		return false
	}
	if f.Category != "" && t.Category != f.Category {
		return false
	}
	if f.From != "" && t.Date < f.From {
		return false
	}
	if f.To != "" && t.Date > f.To {
		return false
	}
	return true
}

// Apply returns the matching subset in input order. The input slice is
// never mutated, so dropping the filter restores the original view
// without a re-fetch.
func (f Filter) Apply(txs []Transaction) []Transaction {
	if f.IsZero() {
		out := make([]Transaction, len(txs))
		copy(out, txs)
		return out
	}
	out := make([]Transaction, 0, len(txs))
	for _, t := range txs {
		if f.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}

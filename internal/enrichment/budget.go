package enrichment

// Budget enforces the hard ceiling on paid AI calls for one enrichment
// run. It is run-scoped by construction: each orchestrated run builds a
// fresh Budget and threads it through the call chain, so concurrent runs
// can never corrupt each other's count.
type Budget struct {
	allowed int
	used    int
}

// NewBudget returns a budget permitting limit paid calls. A limit of 0
// disables paid enrichment entirely; negative limits are treated as 0.
func NewBudget(limit int) *Budget {
	if limit < 0 {
		limit = 0
	}
	return &Budget{allowed: limit}
}

// TryConsume claims one paid call. It reports false, without consuming
// anything, once the ceiling is reached.
func (b *Budget) TryConsume() bool {
	if b.used >= b.allowed {
		return false
	}
	b.used++
	return true
}

// Remaining returns how many paid calls the run may still make.
func (b *Budget) Remaining() int {
	return b.allowed - b.used
}

// Used returns how many paid calls the run has made.
func (b *Budget) Used() int {
	return b.used
}

// Exhausted reports whether the ceiling has been reached.
func (b *Budget) Exhausted() bool {
	return b.Remaining() == 0
}

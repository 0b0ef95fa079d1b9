package backtrack

// Captures records, for each group number, the byte span bound by that
// group's most recent successful iteration.
//
// A Captures value is never modified in place: Bind returns a new value and
// leaves the receiver untouched. Alternative branches can therefore share
// one value without a failed branch leaking bindings into its sibling.
type Captures struct {
	// slots holds start,end pairs indexed by group number; -1 means unbound.
	slots []int
}

// NewCaptures returns bindings for groups 0..numGroups, all unbound.
func NewCaptures(numGroups int) Captures {
	slots := make([]int, 2*(numGroups+1))
	for i := range slots {
		slots[i] = -1
	}
	return Captures{slots: slots}
}

// Len returns the number of group slots, including group 0.
func (c Captures) Len() int {
	return len(c.slots) / 2
}

// Span returns the bound span of group n.
func (c Captures) Span(n int) (start, end int, ok bool) {
	if n < 0 || 2*n+1 >= len(c.slots) || c.slots[2*n] < 0 {
		return -1, -1, false
	}
	return c.slots[2*n], c.slots[2*n+1], true
}

// Text returns the substring of input bound by group n.
func (c Captures) Text(input string, n int) (string, bool) {
	start, end, ok := c.Span(n)
	if !ok {
		return "", false
	}
	return input[start:end], true
}

// Bind returns a copy of c with group n bound to input[start:end].
func (c Captures) Bind(n, start, end int) Captures {
	slots := make([]int, len(c.slots))
	copy(slots, c.slots)
	slots[2*n] = start
	slots[2*n+1] = end
	return Captures{slots: slots}
}

// Slots returns a copy of the raw start,end pairs, -1 for unbound groups.
// The layout matches the index slices of the standard regexp package.
func (c Captures) Slots() []int {
	out := make([]int, len(c.slots))
	copy(out, c.slots)
	return out
}

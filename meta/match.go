package meta

// Span is one match within a line.
//
// Start is inclusive, End is exclusive; both are byte offsets into the line.
// Text is line[Start:End] and shares the line's memory.
//
// Example:
//
//	spans, _ := engine.FindAll("foo123 bar45", -1)
//	// spans[0] == Span{Start: 3, End: 6, Text: "123"}
type Span struct {
	Start int
	End   int
	Text  string
}

func newSpan(line string, start, end int) Span {
	return Span{Start: start, End: end, Text: line[start:end]}
}

// Len returns the length of the span in bytes.
func (s Span) Len() int {
	return s.End - s.Start
}

// IsEmpty reports whether the span has zero length.
//
// Empty spans occur with patterns like `a*` that match without consuming
// input.
func (s Span) IsEmpty() bool {
	return s.Start == s.End
}

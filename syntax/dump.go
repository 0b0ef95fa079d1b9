package syntax

import (
	"strconv"
	"strings"
)

// Dump returns a compact s-expression form of n, used by tests and debug
// tracing.
//
//	Dump(MustParse(`(a|b)+c`).Root) // (seq (rep 1 inf (group 1 (alt (lit a) (lit b)))) (lit c))
func Dump(n Node) string {
	var b strings.Builder
	dump(&b, n)
	return b.String()
}

func dump(b *strings.Builder, n Node) {
	switch n := n.(type) {
	case *Literal:
		b.WriteString("(lit ")
		b.WriteString(n.Text)
		b.WriteByte(')')
	case *Dot:
		b.WriteString("(dot)")
	case *CharClass:
		b.WriteString("(class ")
		b.WriteString(n.String())
		b.WriteByte(')')
	case *Shorthand:
		b.WriteString("(short ")
		b.WriteString(n.Kind.String())
		b.WriteByte(')')
	case *AnchorStart:
		b.WriteString("(bol)")
	case *AnchorEnd:
		b.WriteString("(eol)")
	case *Group:
		b.WriteString("(group ")
		b.WriteString(strconv.Itoa(n.Number))
		b.WriteByte(' ')
		dump(b, n.Inner)
		b.WriteByte(')')
	case *Backref:
		b.WriteString("(backref ")
		b.WriteString(strconv.Itoa(n.Number))
		b.WriteByte(')')
	case *Alternation:
		b.WriteString("(alt ")
		dump(b, n.Left)
		b.WriteByte(' ')
		dump(b, n.Right)
		b.WriteByte(')')
	case *Sequence:
		b.WriteString("(seq")
		for _, e := range n.Elements {
			b.WriteByte(' ')
			dump(b, e)
		}
		b.WriteByte(')')
	case *Quantifier:
		b.WriteString("(rep ")
		b.WriteString(strconv.Itoa(n.Min))
		b.WriteByte(' ')
		if n.Max == Unbounded {
			b.WriteString("inf")
		} else {
			b.WriteString(strconv.Itoa(n.Max))
		}
		b.WriteByte(' ')
		dump(b, n.Inner)
		b.WriteByte(')')
	default:
		b.WriteString("(?)")
	}
}

package syntax

import (
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
)

// MaxRepeat is the largest bound accepted in {n,m}.
const MaxRepeat = 1000

// repeatBody is the text between '{' and '}': n, n, or n,m.
type repeatBody struct {
	Min  string      `parser:"@Int"`
	Tail *repeatTail `parser:"@@?"`
}

type repeatTail struct {
	Comma bool   `parser:"@','"`
	Max   string `parser:"@Int?"`
}

var repeatParser = participle.MustBuild[repeatBody]()

// parseRepeatBody converts a brace body into quantifier bounds.
// hi is Unbounded for "n,".
func parseRepeatBody(body string) (lo, hi int, err error) {
	if strings.Trim(body, "0123456789,") != "" {
		return 0, 0, ErrInvalidRepeat
	}
	rb, err := repeatParser.ParseString("", body)
	if err != nil {
		return 0, 0, ErrInvalidRepeat
	}

	lo, err = repeatBound(rb.Min)
	if err != nil {
		return 0, 0, err
	}
	switch {
	case rb.Tail == nil:
		hi = lo
	case rb.Tail.Max == "":
		hi = Unbounded
	default:
		if hi, err = repeatBound(rb.Tail.Max); err != nil {
			return 0, 0, err
		}
		if hi < lo {
			return 0, 0, ErrRepeatRange
		}
	}
	return lo, hi, nil
}

func repeatBound(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, ErrInvalidRepeat
	}
	if n > MaxRepeat {
		return 0, ErrRepeatTooLarge
	}
	return n, nil
}

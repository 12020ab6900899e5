package filter

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/KaramelBytes/csvpeek-cli/internal/types"
)

// epsilon is the float64 machine epsilon used for numeric equality.
const epsilon = 2.220446049250313e-16

type node interface {
	eval(row []string) bool
	String() string
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

type orNode struct{ left, right node }

func (n orNode) eval(row []string) bool { return n.left.eval(row) || n.right.eval(row) }
func (n orNode) String() string         { return "(" + n.left.String() + " || " + n.right.String() + ")" }

type andNode struct{ left, right node }

func (n andNode) eval(row []string) bool { return n.left.eval(row) && n.right.eval(row) }
func (n andNode) String() string         { return "(" + n.left.String() + " && " + n.right.String() + ")" }

type notNode struct{ inner node }

func (n notNode) eval(row []string) bool { return !n.inner.eval(row) }
func (n notNode) String() string         { return "!" + n.inner.String() }

// column is a header reference resolved at compile time.
type column struct {
	name  string
	index int
}

type op int

const (
	opEq op = iota
	opNe
	opLe
	opGe
	opLt
	opGt
)

// operators in discovery order; two-byte forms come before their one-byte prefixes.
var operators = []struct {
	text string
	op   op
}{
	{"==", opEq}, {"!=", opNe}, {"<=", opLe}, {">=", opGe}, {"<", opLt}, {">", opGt},
}

func (o op) String() string { return operators[o].text }

// literal is the right-hand side of a comparison.
type literal struct {
	str     string
	num     float64
	numeric bool
}

func (l literal) String() string {
	if l.numeric {
		return strconv.FormatFloat(l.num, 'g', -1, 64)
	}
	return strconv.Quote(l.str)
}

type compareNode struct {
	col column
	op  op
	lit literal
}

func (n compareNode) eval(row []string) bool {
	c := cell(row, n.col.index)
	if n.lit.numeric {
		v, ok := types.ParseNumber(c)
		if !ok {
			return false
		}
		return compareNumbers(v, n.op, n.lit.num)
	}
	return compareStrings(c, n.op, n.lit.str)
}

func (n compareNode) String() string {
	return n.col.name + " " + n.op.String() + " " + n.lit.String()
}

func compareNumbers(a float64, o op, b float64) bool {
	switch o {
	case opEq:
		return math.Abs(a-b) < epsilon
	case opNe:
		return math.Abs(a-b) >= epsilon
	case opLt:
		return a < b
	case opLe:
		return a <= b
	case opGt:
		return a > b
	case opGe:
		return a >= b
	}
	return false
}

func compareStrings(a string, o op, b string) bool {
	switch o {
	case opEq:
		return a == b
	case opNe:
		return a != b
	case opLt:
		return a < b
	case opLe:
		return a <= b
	case opGt:
		return a > b
	case opGe:
		return a >= b
	}
	return false
}

type containsNode struct {
	col    column
	substr string
}

func (n containsNode) eval(row []string) bool {
	return strings.Contains(cell(row, n.col.index), n.substr)
}

func (n containsNode) String() string {
	return "contains(" + n.col.name + ", " + strconv.Quote(n.substr) + ")"
}

type matchesNode struct {
	col column
	re  *regexp.Regexp
}

func (n matchesNode) eval(row []string) bool { return n.re.MatchString(cell(row, n.col.index)) }
func (n matchesNode) String() string {
	return "matches(" + n.col.name + ", " + strconv.Quote(n.re.String()) + ")"
}

type inNode struct {
	col    column
	values []string
}

func (n inNode) eval(row []string) bool {
	c := cell(row, n.col.index)
	for _, v := range n.values {
		if v == c {
			return true
		}
	}
	return false
}

func (n inNode) String() string {
	quoted := make([]string, len(n.values))
	for i, v := range n.values {
		quoted[i] = strconv.Quote(v)
	}
	return "in(" + n.col.name + ", [" + strings.Join(quoted, ", ") + "])"
}

type nullNode struct {
	col    column
	negate bool
}

func (n nullNode) eval(row []string) bool { return types.IsNull(cell(row, n.col.index)) != n.negate }

func (n nullNode) String() string {
	if n.negate {
		return "is_not_null(" + n.col.name + ")"
	}
	return "is_null(" + n.col.name + ")"
}

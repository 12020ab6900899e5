// Package filter compiles free-text row predicates such as
// `age > 30 && contains(name, "x")` and evaluates them against rows.
//
// Splitting is first-match: the first top-level || (else &&) divides the
// text and both halves are compiled recursively, so chains nest to the right.
// Since || is searched before &&, && still binds tighter.
package filter

import (
	"regexp"
	"strings"

	"github.com/KaramelBytes/csvpeek-cli/internal/columns"
	"github.com/KaramelBytes/csvpeek-cli/internal/csverr"
	"github.com/KaramelBytes/csvpeek-cli/internal/types"
)

// Filter is a compiled predicate. It is immutable and safe for concurrent use.
type Filter struct {
	text string
	root node
}

// Compile parses text against header. Column references are resolved here;
// an unknown name yields a *csverr.ColumnNotFoundError and any syntax problem
// a *csverr.InvalidFilterError.
func Compile(text string, header columns.Header) (*Filter, error) {
	if strings.TrimSpace(text) == "" {
		return nil, csverr.Filterf("empty expression")
	}
	if msg := checkBalanced(text); msg != "" {
		return nil, csverr.Filterf("%s in %q", msg, text)
	}
	p := parser{header: header}
	root, err := p.expr(text)
	if err != nil {
		return nil, err
	}
	return &Filter{text: text, root: root}, nil
}

// Match reports whether row satisfies the predicate. Cells past the end of a
// short row read as empty.
func (f *Filter) Match(row []string) bool { return f.root.eval(row) }

// Text returns the expression as given to Compile.
func (f *Filter) Text() string { return f.text }

// String renders the parsed tree with explicit grouping.
func (f *Filter) String() string { return f.root.String() }

type parser struct {
	header columns.Header
}

func (p *parser) expr(s string) (node, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, csverr.Filterf("empty expression")
	}
	if i := findTopLevel(s, "||"); i >= 0 {
		return p.binary(s, i, func(l, r node) node { return orNode{l, r} })
	}
	if i := findTopLevel(s, "&&"); i >= 0 {
		return p.binary(s, i, func(l, r node) node { return andNode{l, r} })
	}
	if strings.HasPrefix(s, "!") && !strings.HasPrefix(s, "!=") {
		inner, err := p.expr(s[1:])
		if err != nil {
			return nil, err
		}
		return notNode{inner}, nil
	}
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		return p.expr(s[1 : len(s)-1])
	}
	if n, ok, err := p.function(s); ok || err != nil {
		return n, err
	}
	return p.comparison(s)
}

func (p *parser) binary(s string, i int, mk func(l, r node) node) (node, error) {
	left, err := p.expr(s[:i])
	if err != nil {
		return nil, err
	}
	right, err := p.expr(s[i+2:])
	if err != nil {
		return nil, err
	}
	return mk(left, right), nil
}

func (p *parser) column(name string) (column, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return column{}, csverr.Filterf("missing column name")
	}
	i, err := p.header.Resolve(name)
	if err != nil {
		return column{}, err
	}
	return column{name: name, index: i}, nil
}

// function reports ok=false when s is not a call to a known function.
func (p *parser) function(s string) (node, bool, error) {
	name, inner, found := strings.Cut(s, "(")
	if !found || !strings.HasSuffix(s, ")") {
		return nil, false, nil
	}
	inner = inner[:len(inner)-1]
	switch name {
	case "is_null", "is_not_null":
		col, err := p.column(inner)
		if err != nil {
			return nil, true, err
		}
		return nullNode{col: col, negate: name == "is_not_null"}, true, nil
	case "contains", "matches", "in":
	default:
		return nil, false, nil
	}

	colText, arg, err := funcArgs(name, inner)
	if err != nil {
		return nil, true, err
	}
	col, err := p.column(colText)
	if err != nil {
		return nil, true, err
	}
	switch name {
	case "contains":
		substr, _ := unquote(arg)
		return containsNode{col: col, substr: substr}, true, nil
	case "matches":
		pattern, _ := unquote(arg)
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, true, &csverr.InvalidFilterError{Msg: "invalid regex pattern " + strings.TrimSpace(arg), Err: err}
		}
		return matchesNode{col: col, re: re}, true, nil
	default:
		values, err := parseArray(arg)
		if err != nil {
			return nil, true, err
		}
		return inNode{col: col, values: values}, true, nil
	}
}

// funcArgs splits "col, value" at the first top-level comma.
func funcArgs(name, s string) (string, string, error) {
	parts := splitTopLevel(s, ',')
	if len(parts) < 2 {
		return "", "", csverr.Filterf("invalid arguments to %s(): expected (column, value)", name)
	}
	return parts[0], strings.TrimSpace(strings.Join(parts[1:], ",")), nil
}

func parseArray(s string) ([]string, error) {
	if len(s) < 2 || s[0] != '[' || s[len(s)-1] != ']' {
		return nil, csverr.Filterf("expected array like [\"a\", \"b\"], got %s", s)
	}
	var out []string
	for _, item := range splitTopLevel(s[1:len(s)-1], ',') {
		item, _ = unquote(strings.TrimSpace(item))
		if item != "" {
			out = append(out, item)
		}
	}
	return out, nil
}

func (p *parser) comparison(s string) (node, error) {
	for _, o := range operators {
		i := findOutsideQuotes(s, o.text)
		if i < 0 {
			continue
		}
		col, err := p.column(s[:i])
		if err != nil {
			return nil, err
		}
		return compareNode{col: col, op: o.op, lit: parseLiteral(strings.TrimSpace(s[i+len(o.text):]))}, nil
	}
	return nil, csverr.Filterf("cannot parse expression: %s", s)
}

func parseLiteral(s string) literal {
	if str, ok := unquote(s); ok {
		return literal{str: str}
	}
	if f, ok := types.ParseNumber(s); ok {
		return literal{num: f, numeric: true}
	}
	return literal{str: s}
}

package filter

import "strings"

// scanner walks expression text tracking quoted strings and bracket depth.
// Backslash escapes the next byte only inside a string.
type scanner struct {
	inString bool
	escape   bool
	depth    int
}

// step consumes one byte and reports whether it sits outside any string.
// Quote characters themselves report false.
func (sc *scanner) step(c byte) bool {
	if sc.inString {
		switch {
		case sc.escape:
			sc.escape = false
		case c == '\\':
			sc.escape = true
		case c == '"':
			sc.inString = false
		}
		return false
	}
	switch c {
	case '"':
		sc.inString = true
		return false
	case '(', '[':
		sc.depth++
	case ')', ']':
		sc.depth--
	}
	return true
}

// findTopLevel returns the byte offset of the first occurrence of op outside
// strings and at bracket depth zero, or -1.
func findTopLevel(s, op string) int {
	var sc scanner
	for i := 0; i < len(s); i++ {
		depth := sc.depth
		if sc.step(s[i]) && depth == 0 && sc.depth == 0 && strings.HasPrefix(s[i:], op) {
			return i
		}
	}
	return -1
}

// findOutsideQuotes returns the first occurrence of op outside strings,
// regardless of bracket depth, or -1.
func findOutsideQuotes(s, op string) int {
	var sc scanner
	for i := 0; i < len(s); i++ {
		if sc.step(s[i]) && strings.HasPrefix(s[i:], op) {
			return i
		}
	}
	return -1
}

// splitTopLevel splits s on sep outside strings and brackets.
func splitTopLevel(s string, sep byte) []string {
	var (
		sc    scanner
		parts []string
		start int
	)
	for i := 0; i < len(s); i++ {
		depth := sc.depth
		if sc.step(s[i]) && depth == 0 && s[i] == sep {
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	return append(parts, s[start:])
}

// checkBalanced reports the first structural problem in s, or "".
func checkBalanced(s string) string {
	var sc scanner
	for i := 0; i < len(s); i++ {
		sc.step(s[i])
		if sc.depth < 0 {
			return "unbalanced closing bracket"
		}
	}
	switch {
	case sc.inString:
		return "unterminated string literal"
	case sc.depth > 0:
		return "unbalanced opening bracket"
	}
	return ""
}

// unquote strips surrounding double quotes and unescapes \". Other
// backslashes are kept so regex escapes survive. ok is false when s is not
// quoted.
func unquote(s string) (string, bool) {
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return s, false
	}
	return strings.ReplaceAll(s[1:len(s)-1], `\"`, `"`), true
}

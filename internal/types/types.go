// Package types classifies individual text cells and defines the column type
// lattice shared by schema inference and statistics collection.
package types

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DataType is the inferred type of a cell or a whole column.
type DataType int

const (
	// Unknown is the identity of Promote: no non-null value seen yet.
	Unknown DataType = iota
	Integer
	Float
	Boolean
	String
)

func (t DataType) String() string {
	switch t {
	case Integer:
		return "integer"
	case Float:
		return "float"
	case Boolean:
		return "boolean"
	case String:
		return "string"
	default:
		return "unknown"
	}
}

// IsNumeric reports whether t is Integer or Float.
func (t DataType) IsNumeric() bool { return t == Integer || t == Float }

// MarshalText renders the lowercase name, used by both JSON and YAML encoders.
func (t DataType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// UnmarshalText accepts the lowercase names produced by MarshalText.
func (t *DataType) UnmarshalText(b []byte) error {
	switch strings.ToLower(string(b)) {
	case "integer":
		*t = Integer
	case "float":
		*t = Float
	case "boolean":
		*t = Boolean
	case "string":
		*t = String
	case "unknown", "":
		*t = Unknown
	default:
		return fmt.Errorf("unknown data type %q", string(b))
	}
	return nil
}

// Promote returns the least upper bound of a and b in the column lattice.
//
// Unknown is the identity, String is absorbing, Integer < Float, and Boolean
// mixed with anything numeric collapses to String. Promote is commutative and
// associative.
func Promote(a, b DataType) DataType {
	switch {
	case a == Unknown:
		return b
	case b == Unknown:
		return a
	case a == b:
		return a
	case a == String || b == String:
		return String
	case a.IsNumeric() && b.IsNumeric():
		return Float
	default:
		return String
	}
}

// Fold promotes every type in ts, starting from Unknown.
func Fold(ts ...DataType) DataType {
	acc := Unknown
	for _, t := range ts {
		acc = Promote(acc, t)
	}
	return acc
}

// Kind tags the variant held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindInteger
	KindFloat
	KindBoolean
	KindString
)

// Value is the classified form of one cell. Only the field matching Kind is meaningful.
type Value struct {
	Kind Kind
	Int  int64
	// Bits holds math.Float64bits of a float value.
	Bits uint64
	Bool bool
}

// Float returns the float value of a KindFloat or KindInteger value.
func (v Value) Float() float64 {
	switch v.Kind {
	case KindInteger:
		return float64(v.Int)
	case KindFloat:
		return math.Float64frombits(v.Bits)
	}
	return 0
}

// Compare orders two values of the same kind, returning -1, 0 or +1.
// Floats use the IEEE 754 total order on their bit patterns. Values of
// different kinds order by Kind.
func (v Value) Compare(o Value) int {
	if v.Kind != o.Kind {
		return cmpInt(int64(v.Kind), int64(o.Kind))
	}
	switch v.Kind {
	case KindInteger:
		return cmpInt(v.Int, o.Int)
	case KindFloat:
		return cmpInt(totalOrderKey(v.Bits), totalOrderKey(o.Bits))
	case KindBoolean:
		switch {
		case v.Bool == o.Bool:
			return 0
		case !v.Bool:
			return -1
		default:
			return 1
		}
	}
	return 0
}

func totalOrderKey(bits uint64) int64 {
	k := int64(bits)
	if k < 0 {
		k ^= math.MaxInt64
	}
	return k
}

func cmpInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// IsNull reports whether the cell is empty after trimming, or one of the
// null markers "null", "na" and "n/a" (case-insensitive).
func IsNull(cell string) bool {
	s := strings.TrimSpace(cell)
	if s == "" {
		return true
	}
	return strings.EqualFold(s, "null") || strings.EqualFold(s, "na") || strings.EqualFold(s, "n/a")
}

// Classify inspects one cell. It never fails: anything that is not null,
// boolean, integer or finite float is an opaque string. Null cells report the
// String type with a KindNull value; callers that count types check IsNull
// first.
func Classify(cell string) (DataType, Value) {
	s := strings.TrimSpace(cell)
	if IsNull(s) {
		return String, Value{Kind: KindNull}
	}
	if strings.EqualFold(s, "true") {
		return Boolean, Value{Kind: KindBoolean, Bool: true}
	}
	if strings.EqualFold(s, "false") {
		return Boolean, Value{Kind: KindBoolean}
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Integer, Value{Kind: KindInteger, Int: i}
	}
	if f, ok := parseFinite(s); ok {
		return Float, Value{Kind: KindFloat, Bits: math.Float64bits(f)}
	}
	return String, Value{Kind: KindString}
}

// ParseNumber parses the trimmed cell as a float the way filter comparisons do.
// Unlike Classify it accepts "inf" and "nan".
func ParseNumber(cell string) (float64, bool) {
	s := strings.TrimSpace(cell)
	if !isDecimalSyntax(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func parseFinite(s string) (float64, bool) {
	f, ok := ParseNumber(s)
	if !ok || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// strconv also accepts Go literal syntax (0x floats, digit underscores); only
// plain decimal text counts as a number here.
func isDecimalSyntax(s string) bool {
	if strings.ContainsRune(s, '_') {
		return false
	}
	s = strings.TrimLeft(s, "+-")
	return !(len(s) > 1 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X'))
}

package filter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/csvpeek-cli/internal/columns"
	"github.com/KaramelBytes/csvpeek-cli/internal/csverr"
)

var header = columns.Header{"name", "age", "status", "city", "score"}

func compile(t *testing.T, expr string) *Filter {
	t.Helper()
	f, err := Compile(expr, header)
	require.NoError(t, err, expr)
	return f
}

func TestPrecedence(t *testing.T) {
	f := compile(t, `age > 20 && age < 30 || status == "VIP"`)
	assert.Equal(t, `((age > 20 && age < 30) || status == "VIP")`, f.String())

	f = compile(t, `status == "x" || status == "y" || status == "z"`)
	assert.Equal(t, `(status == "x" || (status == "y" || status == "z"))`, f.String())

	f = compile(t, `!(age >= 18) && is_not_null(name)`)
	assert.Equal(t, `(!age >= 18 && is_not_null(name))`, f.String())
}

func TestMatch(t *testing.T) {
	rows := [][]string{
		{"Alice", "25", "active", "Oslo", "88.5"},
		{"Bob", "35", "VIP", "Bergen", "70"},
		{"carol", "n/a", "inactive", "", "91"},
		{"Dave", " 30 ", "active", "Oslo, NO", "x"},
	}
	tests := []struct {
		expr string
		want []bool
	}{
		{`age > 30`, []bool{false, true, false, false}},
		{`age == 30`, []bool{false, false, false, true}},
		{`age != 25`, []bool{false, true, false, true}},
		{`age >= 25 && age <= 30`, []bool{true, false, false, true}},
		{`status == "VIP"`, []bool{false, true, false, false}},
		{`status == VIP`, []bool{false, true, false, false}},
		{`status != "active"`, []bool{false, true, true, false}},
		{`name < "B"`, []bool{true, false, false, false}},
		{`contains(city, "Oslo")`, []bool{true, false, false, true}},
		{`contains(city, ", ")`, []bool{false, false, false, true}},
		{`matches(name, "^[A-D]")`, []bool{true, true, false, true}},
		{`matches(name, "ar")`, []bool{false, false, true, false}},
		{`in(status, ["VIP", "inactive"])`, []bool{false, true, true, false}},
		{`in(city, ["Oslo, NO"])`, []bool{false, false, false, true}},
		{`is_null(age)`, []bool{false, false, true, false}},
		{`is_null(city) || score > 90`, []bool{false, false, true, false}},
		{`!is_null(age) && !(status == "VIP")`, []bool{true, false, false, true}},
		{`(age < 30 || age > 33) && contains(name, "o")`, []bool{false, true, false, false}},
		{`score > 80`, []bool{true, false, true, false}},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			f := compile(t, tt.expr)
			for i, row := range rows {
				assert.Equal(t, tt.want[i], f.Match(row), "row %d", i)
			}
		})
	}
}

func TestNullDuality(t *testing.T) {
	isNull := compile(t, `is_null(city)`)
	notNull := compile(t, `is_not_null(city)`)
	for _, c := range []string{"", "  ", "NA", "n/a", "NULL", "none", "0", "Oslo"} {
		row := []string{"x", "1", "s", c, "1"}
		assert.Equal(t, isNull.Match(row), !notNull.Match(row), "cell %q", c)
	}
}

func TestRaggedRowReadsEmpty(t *testing.T) {
	f := compile(t, `is_null(score)`)
	assert.True(t, f.Match([]string{"a", "1"}))

	f = compile(t, `score > 0`)
	assert.False(t, f.Match([]string{"a"}))
}

func TestQuotedOperatorsIgnored(t *testing.T) {
	f := compile(t, `name == "a || b"`)
	assert.True(t, f.Match([]string{"a || b"}))

	f = compile(t, `name == "x>y"`)
	assert.Equal(t, `name == "x>y"`, f.String())
	assert.True(t, f.Match([]string{"x>y"}))

	f = compile(t, `name == "say \"hi\""`)
	assert.True(t, f.Match([]string{`say "hi"`}))
}

func TestStringComparisonUsesRawCell(t *testing.T) {
	f := compile(t, `status == "VIP"`)
	assert.False(t, f.Match([]string{"", "", " VIP"}))

	f = compile(t, `age == 30`)
	assert.True(t, f.Match([]string{"", " 30 "}))
}

func TestColumnNotFound(t *testing.T) {
	_, err := Compile(`nmae == "x"`, header)
	var cnf *csverr.ColumnNotFoundError
	require.True(t, errors.As(err, &cnf))
	assert.Equal(t, "nmae", cnf.Name)
	assert.Equal(t, "name", cnf.Suggestion)

	_, err = Compile(`contains(Status, "x")`, header)
	require.True(t, errors.As(err, &cnf))
	assert.Equal(t, "status", cnf.Suggestion)
}

func TestInvalidFilter(t *testing.T) {
	for _, expr := range []string{
		``,
		`   `,
		`age`,
		`age > 1 &&`,
		`contains(name)`,
		`matches(name, "[a-")`,
		`in(status, "VIP")`,
		`in(status, ["VIP"`,
		`(age > 1`,
		`name == "open`,
		`== 3`,
	} {
		t.Run(expr, func(t *testing.T) {
			_, err := Compile(expr, header)
			var inv *csverr.InvalidFilterError
			require.True(t, errors.As(err, &inv), "got %v", err)
		})
	}
}

func TestDuplicateColumnResolvesFirst(t *testing.T) {
	f, err := Compile(`id == 1`, columns.Header{"id", "id"})
	require.NoError(t, err)
	assert.True(t, f.Match([]string{"1", "2"}))
	assert.False(t, f.Match([]string{"2", "1"}))
}

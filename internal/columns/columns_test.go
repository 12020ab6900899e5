package columns

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/csvpeek-cli/internal/csverr"
)

var header = Header{"id", "name", "age", "city", "name"}

func TestIndexFirstMatch(t *testing.T) {
	assert.Equal(t, 1, header.Index("name"))
	assert.Equal(t, -1, header.Index("Name"))
}

func TestSelect(t *testing.T) {
	tests := []struct {
		sel string
		want []int
	}{
		{"", []int{0, 1, 2, 3, 4}},
		{"name", []int{1}},
		{"age, id", []int{2, 0}},
		{"0,2", []int{0, 2}},
		{"1..3", []int{1, 2}},
		{"1..=3", []int{1, 2, 3}},
		{"0..5", []int{0, 1, 2, 3, 4}},
		{"2..2", []int{}},
		{"city,1..=1,,", []int{3, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.sel, func(t *testing.T) {
			got, err := Select(tt.sel, header)
			require.NoError(t, err)
			if len(tt.want) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSelectErrors(t *testing.T) {
	_, err := Select("7", header)
	var oor *csverr.ColumnIndexOutOfRangeError
	require.True(t, errors.As(err, &oor))
	assert.Equal(t, 7, oor.Index)
	assert.Equal(t, 4, oor.Max)

	_, err = Select("0..6", header)
	require.True(t, errors.As(err, &oor))
	assert.Equal(t, 5, oor.Index)

	_, err = Select("0..=5", header)
	require.True(t, errors.As(err, &oor))

	_, err = Select("x..3", header)
	var inv *csverr.InvalidFilterError
	require.True(t, errors.As(err, &inv))
	assert.Contains(t, inv.Msg, "range start")

	_, err = Select("3..=1", header)
	require.True(t, errors.As(err, &inv))

	_, err = Select("nmae", header)
	var cnf *csverr.ColumnNotFoundError
	require.True(t, errors.As(err, &cnf))
	assert.Equal(t, "name", cnf.Suggestion)
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"age", "id"}, header.Names([]int{2, 0}))
}

package progress

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForFileSkipsSmallAndQuiet(t *testing.T) {
	p := filepath.Join(t.TempDir(), "small.csv")
	require.NoError(t, os.WriteFile(p, []byte("a\n1\n"), 0o644))

	var out bytes.Buffer
	assert.Nil(t, ForFile(p, &out, false))
	assert.Nil(t, ForFile(p, &out, true))
	assert.Nil(t, ForFile(filepath.Join(t.TempDir(), "missing"), &out, false))

	var nilBar *Bar
	assert.Nil(t, nilBar.Writer())
	nilBar.Finish()
}

func TestForFileLarge(t *testing.T) {
	p := filepath.Join(t.TempDir(), "big.csv")
	require.NoError(t, os.WriteFile(p, bytes.Repeat([]byte("x"), MinSize), 0o644))

	var out bytes.Buffer
	b := ForFile(p, &out, false)
	require.NotNil(t, b)
	w := b.Writer()
	require.NotNil(t, w)
	n, err := w.Write(make([]byte, 1024))
	require.NoError(t, err)
	assert.Equal(t, 1024, n)
	b.Finish()
}

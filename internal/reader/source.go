// Package reader opens delimited text files and XLSX worksheets as row streams.
package reader

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/KaramelBytes/csvpeek-cli/internal/columns"
	"github.com/KaramelBytes/csvpeek-cli/internal/csverr"
)

// Source yields a header once, then rows until io.EOF.
type Source interface {
	Header() columns.Header
	// Next returns the next row; rows may be shorter or longer than the header.
	Next() ([]string, error)
	// Encoding names the character set the input was decoded from.
	Encoding() string
	Close() error
}

// Options controls how a path is opened.
type Options struct {
	// Delimiter is a name (tab, comma, semicolon, pipe, space) or a single
	// character. Empty picks tab for .tsv files and comma otherwise.
	Delimiter string
	// NoHeader generates col0..colN-1 and keeps the first record as data.
	NoHeader bool
	// Encoding forces a character set; empty auto-detects.
	Encoding string
	// SheetName selects an XLSX worksheet by name (case-insensitive).
	SheetName string
	// SheetIndex selects an XLSX worksheet by 1-based position; 0 means 1.
	SheetIndex int
	// Progress, when set, receives a copy of every raw byte read from a
	// delimited file.
	Progress io.Writer
}

// Open picks a reader from the file extension.
func Open(path string, opt Options) (Source, error) {
	st, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &csverr.FileNotFoundError{Path: path}
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if st.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	if IsXLSX(path) {
		return openXLSX(path, opt)
	}
	return openCSV(path, opt)
}

// IsXLSX reports whether path names an OOXML workbook.
func IsXLSX(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".xlsx")
}

// ParseDelimiter resolves a delimiter name for path.
func ParseDelimiter(name, path string) (rune, error) {
	switch strings.ToLower(name) {
	case "":
		if strings.EqualFold(filepath.Ext(path), ".tsv") {
			return '\t', nil
		}
		return ',', nil
	case "tab", `\t`:
		return '\t', nil
	case "comma", ",":
		return ',', nil
	case "semicolon", ";":
		return ';', nil
	case "pipe", "|":
		return '|', nil
	case "space", " ":
		return ' ', nil
	}
	r := []rune(name)[0]
	if r == '"' || r == '\r' || r == '\n' || r == 0xFFFD {
		return 0, fmt.Errorf("invalid delimiter %s", strconv.Quote(name))
	}
	return r, nil
}

// generatedHeader names n columns col0..col{n-1}.
func generatedHeader(n int) columns.Header {
	h := make(columns.Header, n)
	for i := range h {
		h[i] = "col" + strconv.Itoa(i)
	}
	return h
}

func cleanHeader(rec []string) columns.Header {
	h := make(columns.Header, len(rec))
	copy(h, rec)
	if len(h) > 0 {
		h[0] = strings.TrimPrefix(h[0], "\ufeff")
	}
	return h
}

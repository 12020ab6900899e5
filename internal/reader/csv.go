package reader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/KaramelBytes/csvpeek-cli/internal/columns"
)

type csvSource struct {
	f        *os.File
	r        *csv.Reader
	header   columns.Header
	pending  []string
	encoding string
	path     string
}

func openCSV(path string, opt Options) (*csvSource, error) {
	delim, err := ParseDelimiter(opt.Delimiter, path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	var in io.Reader = f
	if opt.Progress != nil {
		in = io.TeeReader(f, opt.Progress)
	}
	text, enc, err := decode(in, opt.Encoding)
	if err != nil {
		f.Close()
		return nil, err
	}
	s, err := newCSVSource(text, delim, opt.NoHeader)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("read header of %s: %w", path, err)
	}
	s.f, s.encoding, s.path = f, enc, path
	return s, nil
}

// newCSVSource reads the header (or the first record with noHeader) from
// already decoded text.
func newCSVSource(text io.Reader, delim rune, noHeader bool) (*csvSource, error) {
	r := csv.NewReader(text)
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	s := &csvSource{r: r, encoding: "utf-8"}

	first, err := r.Read()
	switch {
	case errors.Is(err, io.EOF):
		s.header = columns.Header{}
		return s, nil
	case err != nil:
		return nil, err
	}
	if noHeader {
		s.header = generatedHeader(len(first))
		s.pending = first
		return s, nil
	}
	s.header = cleanHeader(first)
	return s, nil
}

func (s *csvSource) Header() columns.Header { return s.header }
func (s *csvSource) Encoding() string       { return s.encoding }

func (s *csvSource) Next() ([]string, error) {
	if s.pending != nil {
		row := s.pending
		s.pending = nil
		return row, nil
	}
	row, err := s.r.Read()
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	return row, err
}

func (s *csvSource) Close() error {
	if s.f == nil {
		return nil
	}
	return s.f.Close()
}

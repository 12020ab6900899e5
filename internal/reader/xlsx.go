package reader

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/csvpeek-cli/internal/columns"
)

type xlsxSource struct {
	zr      *zip.ReadCloser
	sheet   io.ReadCloser
	rows    *sheetRowReader
	header  columns.Header
	pending []string
}

func openXLSX(p string, opt Options) (*xlsxSource, error) {
	zr, err := zip.OpenReader(p)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	target, err := resolveSheet(&zr.Reader, filepath.Base(p), opt.SheetName, opt.SheetIndex)
	if err != nil {
		zr.Close()
		return nil, err
	}
	sheet, err := zr.Open(target)
	if err != nil {
		zr.Close()
		return nil, fmt.Errorf("open worksheet %s: %w", target, err)
	}
	shared := parseSharedStrings(readZipFile(&zr.Reader, "xl/sharedStrings.xml"))
	s := &xlsxSource{zr: zr, sheet: sheet, rows: newSheetRowReader(sheet, shared)}

	first, err := s.rows.Next()
	switch {
	case errors.Is(err, io.EOF):
		s.header = columns.Header{}
	case err != nil:
		s.Close()
		return nil, fmt.Errorf("read worksheet %s: %w", target, err)
	case opt.NoHeader:
		s.header = generatedHeader(len(first))
		s.pending = first
	default:
		s.header = cleanHeader(first)
	}
	return s, nil
}

func (s *xlsxSource) Header() columns.Header { return s.header }

// Encoding is fixed: OOXML parts are UTF-8 XML.
func (s *xlsxSource) Encoding() string { return "utf-8" }

func (s *xlsxSource) Next() ([]string, error) {
	if s.pending != nil {
		row := s.pending
		s.pending = nil
		return row, nil
	}
	return s.rows.Next()
}

func (s *xlsxSource) Close() error {
	s.sheet.Close()
	return s.zr.Close()
}

// resolveSheet picks the worksheet part: by name (case-insensitive) when
// given, else by sheetId, else by the conventional worksheets/sheetN.xml path.
func resolveSheet(zr *zip.Reader, book, name string, index int) (string, error) {
	sheets := parseWorkbook(readZipFile(zr, "xl/workbook.xml"))
	rels := parseRelationships(readZipFile(zr, "xl/_rels/workbook.xml.rels"))

	if name != "" {
		for _, s := range sheets {
			if strings.EqualFold(s.Name, name) {
				if rel, ok := rels[s.RID]; ok {
					return normalizeRelPath(rel), nil
				}
			}
		}
		available := make([]string, len(sheets))
		for i, s := range sheets {
			available[i] = s.Name
		}
		return "", fmt.Errorf("sheet '%s' not found in workbook '%s'; available sheets: %s",
			name, book, strings.Join(available, ", "))
	}

	if index <= 0 {
		index = 1
	}
	for _, s := range sheets {
		if s.SheetID == index {
			if rel, ok := rels[s.RID]; ok {
				return normalizeRelPath(rel), nil
			}
		}
	}
	target := fmt.Sprintf("xl/worksheets/sheet%d.xml", index)
	for _, f := range zr.File {
		if f.Name == target {
			return target, nil
		}
	}
	return "", fmt.Errorf("sheet %d not found in workbook '%s' (%d sheets)", index, book, len(sheets))
}

type wbSheet struct {
	Name    string
	SheetID int
	RID     string
}

// parseWorkbook lists sheet entries with their names and relationship ids.
func parseWorkbook(data []byte) []wbSheet {
	var sheets []wbSheet
	eachStart(data, "sheet", func(se xml.StartElement) {
		var s wbSheet
		for _, a := range se.Attr {
			switch a.Name.Local {
			case "name":
				s.Name = a.Value
			case "sheetId":
				s.SheetID = atoiSafe(a.Value)
			case "id": // r:id
				s.RID = a.Value
			}
		}
		sheets = append(sheets, s)
	})
	return sheets
}

// parseRelationships maps relationship ids to their targets.
func parseRelationships(data []byte) map[string]string {
	out := map[string]string{}
	eachStart(data, "Relationship", func(se xml.StartElement) {
		var id, target string
		for _, a := range se.Attr {
			switch a.Name.Local {
			case "Id":
				id = a.Value
			case "Target":
				target = a.Value
			}
		}
		if id != "" && target != "" {
			out[id] = target
		}
	})
	return out
}

// eachStart calls fn for every start element with the given local name.
// Malformed XML ends the walk quietly.
func eachStart(data []byte, local string, fn func(xml.StartElement)) {
	if len(data) == 0 {
		return
	}
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err != nil {
			return
		}
		if se, ok := tok.(xml.StartElement); ok && se.Name.Local == local {
			fn(se)
		}
	}
}

func readZipFile(zr *zip.Reader, name string) []byte {
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil
		}
		defer rc.Close()
		b, _ := io.ReadAll(rc)
		return b
	}
	return nil
}

// parseSharedStrings concatenates the text runs of each <si> entry.
func parseSharedStrings(data []byte) []string {
	if len(data) == 0 {
		return nil
	}
	dec := xml.NewDecoder(bytes.NewReader(data))
	var (
		out []string
		buf strings.Builder
		inT bool
	)
	for {
		tok, err := dec.Token()
		if err != nil {
			return out
		}
		switch se := tok.(type) {
		case xml.StartElement:
			switch se.Name.Local {
			case "si":
				buf.Reset()
			case "t":
				inT = true
			}
		case xml.EndElement:
			switch se.Name.Local {
			case "t":
				inT = false
			case "si":
				out = append(out, buf.String())
				buf.Reset()
			}
		case xml.CharData:
			if inT {
				buf.Write(se)
			}
		}
	}
}

// sheetRowReader streams <row> elements of one worksheet.
type sheetRowReader struct {
	dec    *xml.Decoder
	shared []string
	inRow  bool
	curRow []string
	maxCol int
}

func newSheetRowReader(r io.Reader, shared []string) *sheetRowReader {
	return &sheetRowReader{dec: xml.NewDecoder(r), shared: shared}
}

// Next returns the cells of the next row, placing each by its A1 reference
// so skipped cells read as empty.
func (r *sheetRowReader) Next() ([]string, error) {
	for {
		tok, err := r.dec.Token()
		if err != nil {
			return nil, err
		}
		switch se := tok.(type) {
		case xml.StartElement:
			if se.Name.Local == "row" {
				r.inRow = true
				r.curRow = []string{}
				r.maxCol = 0
			}
			if r.inRow && se.Name.Local == "c" {
				var ref, typ string
				for _, a := range se.Attr {
					switch a.Name.Local {
					case "r":
						ref = a.Value
					case "t":
						typ = a.Value
					}
				}
				col := len(r.curRow)
				if ref != "" {
					col = colIndexFromRef(ref)
				}
				val, err := r.readCellValue(typ)
				if err != nil {
					return nil, err
				}
				if col < 0 {
					continue
				}
				if col+1 > r.maxCol {
					r.maxCol = col + 1
				}
				if len(r.curRow) <= col {
					tmp := make([]string, col+1)
					copy(tmp, r.curRow)
					r.curRow = tmp
				}
				r.curRow[col] = val
			}
		case xml.EndElement:
			if se.Name.Local == "row" {
				r.inRow = false
				return r.curRow, nil
			}
		}
	}
}

// readCellValue consumes tokens up to </c>, capturing <v> or inline <is><t>.
func (r *sheetRowReader) readCellValue(typ string) (string, error) {
	var val strings.Builder
	for {
		tok, err := r.dec.Token()
		if err != nil {
			return "", err
		}
		switch se := tok.(type) {
		case xml.StartElement:
			if se.Name.Local == "v" || se.Name.Local == "t" {
				var sb strings.Builder
				for {
					tk, err := r.dec.Token()
					if err != nil {
						return "", err
					}
					if ed, ok := tk.(xml.EndElement); ok && (ed.Name.Local == "v" || ed.Name.Local == "t") {
						break
					}
					if ch, ok := tk.(xml.CharData); ok {
						sb.Write(ch)
					}
				}
				val.WriteString(sb.String())
			}
		case xml.EndElement:
			if se.Name.Local != "c" {
				continue
			}
			v := val.String()
			switch typ {
			case "s":
				idx := atoiSafe(v)
				if idx >= 0 && idx < len(r.shared) {
					return r.shared[idx], nil
				}
				return "", nil
			case "b":
				if v == "1" {
					return "true", nil
				}
				return "false", nil
			}
			return v, nil
		}
	}
}

// colIndexFromRef turns "C12" into 2.
func colIndexFromRef(ref string) int {
	idx := 0
	for i := 0; i < len(ref); i++ {
		c := ref[i]
		switch {
		case c >= 'A' && c <= 'Z':
			idx = idx*26 + int(c-'A'+1)
		case c >= 'a' && c <= 'z':
			idx = idx*26 + int(c-'a'+1)
		default:
			return idx - 1
		}
	}
	return idx - 1
}

func atoiSafe(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			break
		}
		n = n*10 + int(c-'0')
	}
	return n
}

// normalizeRelPath turns a relationship target into a zip entry name. Targets
// may be absolute ("/xl/worksheets/sheet1.xml") or relative to xl/.
func normalizeRelPath(rel string) string {
	rel = strings.TrimPrefix(rel, "/")
	if strings.HasPrefix(rel, "xl/") {
		return rel
	}
	return path.Join("xl", rel)
}

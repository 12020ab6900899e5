package reader

import (
	"bufio"
	"bytes"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/KaramelBytes/csvpeek-cli/internal/csverr"
)

// sniffSize is how much of the input auto-detection looks at.
const sniffSize = 64 << 10

// encodingAliases maps normalized spellings to WHATWG labels.
var encodingAliases = map[string]string{
	"utf8":        "utf-8",
	"utf16":       "utf-16le",
	"utf16le":     "utf-16le",
	"utf16be":     "utf-16be",
	"shiftjis":    "shift_jis",
	"sjis":        "shift_jis",
	"cp932":       "shift_jis",
	"windows31j":  "shift_jis",
	"eucjp":       "euc-jp",
	"iso2022jp":   "iso-2022-jp",
	"gbk":         "gbk",
	"gb2312":      "gbk",
	"cp936":       "gbk",
	"gb18030":     "gb18030",
	"big5":        "big5",
	"cp950":       "big5",
	"euckr":       "euc-kr",
	"cp949":       "euc-kr",
	"latin1":      "windows-1252",
	"iso88591":    "windows-1252",
	"cp1252":      "windows-1252",
	"windows1252": "windows-1252",
	"iso88592":    "iso-8859-2",
	"iso885915":   "iso-8859-15",
	"koi8r":       "koi8-r",
	"koi8u":       "koi8-u",
}

// SupportedEncodings lists common names accepted by --encoding.
var SupportedEncodings = []string{
	"utf-8", "utf-16le", "utf-16be", "shift_jis", "euc-jp", "iso-2022-jp",
	"gbk", "gb18030", "big5", "euc-kr", "latin1", "iso-8859-2", "iso-8859-15",
	"koi8-r", "koi8-u",
}

// LookupEncoding resolves an encoding name or alias.
func LookupEncoding(name string) (encoding.Encoding, string, error) {
	norm := strings.NewReplacer("-", "", "_", "").Replace(strings.ToLower(strings.TrimSpace(name)))
	label := name
	if l, ok := encodingAliases[norm]; ok {
		label = l
	}
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, "", &csverr.UnknownEncodingError{Name: name}
	}
	canon, err := htmlindex.Name(enc)
	if err != nil {
		canon = label
	}
	return enc, canon, nil
}

// decode wraps r so it yields UTF-8. With an empty name the charset is
// detected from a byte order mark, then UTF-8 validity of the first bytes,
// then HTML charset sniffing.
func decode(r io.Reader, name string) (io.Reader, string, error) {
	br := bufio.NewReaderSize(r, sniffSize)
	if name != "" {
		enc, canon, err := LookupEncoding(name)
		if err != nil {
			return nil, "", err
		}
		if canon == "utf-8" {
			return br, canon, nil
		}
		return transform.NewReader(br, unicode.BOMOverride(enc.NewDecoder())), canon, nil
	}

	head, _ := br.Peek(sniffSize)
	switch {
	case bytes.HasPrefix(head, []byte{0xEF, 0xBB, 0xBF}):
		_, _ = br.Discard(3)
		return br, "utf-8", nil
	case bytes.HasPrefix(head, []byte{0xFF, 0xFE}):
		_, _ = br.Discard(2)
		return transform.NewReader(br, unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()), "utf-16le", nil
	case bytes.HasPrefix(head, []byte{0xFE, 0xFF}):
		_, _ = br.Discard(2)
		return transform.NewReader(br, unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder()), "utf-16be", nil
	case validUTF8Prefix(head, len(head) == sniffSize):
		return br, "utf-8", nil
	}
	enc, canon, _ := charset.DetermineEncoding(head, "text/plain")
	return transform.NewReader(br, enc.NewDecoder()), canon, nil
}

// validUTF8Prefix ignores a rune cut off at the end of a truncated sample.
func validUTF8Prefix(b []byte, truncated bool) bool {
	if utf8.Valid(b) {
		return true
	}
	if !truncated {
		return false
	}
	for cut := 1; cut < utf8.UTFMax && cut < len(b); cut++ {
		if utf8.Valid(b[:len(b)-cut]) {
			return true
		}
	}
	return false
}

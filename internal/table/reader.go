package table

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// utf8BOM is stripped from the front of UTF-8 files before parsing.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// fallbackEncodings are tried, in order, when the raw bytes are not valid
// UTF-8. Windows-1252 is the common legacy export encoding; Latin-1 decodes
// any byte sequence and acts as the last resort.
var fallbackEncodings = []encoding.Encoding{
	charmap.Windows1252,
	charmap.ISO8859_1,
}

// ReadFile reads a CSV file into a Table, trying UTF-8 first and falling back
// to legacy single-byte encodings. The first record is the header row.
func ReadFile(path string) (*Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	tbl, err := Read(bytes.NewReader(decode(raw)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return tbl, nil
}

// Read parses CSV data from r into a Table. The input must already be UTF-8.
func Read(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("invalid CSV header: %w", err)
	}

	tbl := &Table{Columns: make([]Column, len(header))}
	for i, name := range header {
		tbl.Columns[i] = Column{Name: strings.TrimSpace(name)}
	}

	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("invalid CSV record: %w", err)
		}
		for i := range tbl.Columns {
			v := ""
			if i < len(record) {
				v = record[i]
			}
			tbl.Columns[i].Values = append(tbl.Columns[i].Values, v)
		}
	}

	return tbl, nil
}

// decode converts raw file bytes to UTF-8. Valid UTF-8 passes through with
// its BOM stripped; anything else goes through the fallback encodings.
func decode(raw []byte) []byte {
	raw = bytes.TrimPrefix(raw, utf8BOM)
	if utf8.Valid(raw) {
		return raw
	}
	for _, enc := range fallbackEncodings {
		decoded, _, err := transform.Bytes(enc.NewDecoder(), raw)
		if err == nil && utf8.Valid(decoded) {
			return decoded
		}
	}
	return raw
}

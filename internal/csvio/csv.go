// Package csvio parses and generates the user-facing CSV files of the
// import/export feature. It is a pure computation over in-memory text; file
// I/O stays with the caller.
package csvio

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"
)

var (
	// ErrEmptyFile marks a file with no records at all.
	ErrEmptyFile = errors.New("csv: file is empty")
	// ErrNoDataRows marks a file that contains a header but no data rows.
	// It is distinct from ErrEmptyFile because the two warrant different
	// user-facing messages.
	ErrNoDataRows = errors.New("csv: file contains only a header row")
)

// Row is one data line mapped by header name, values trimmed.
type Row map[string]string

// File is the parsed form of an import file.
type File struct {
	Headers []string
	Rows    []Row
}

// Parse tokenizes raw file text into header and field-mapped rows. It strips
// a leading byte-order-mark, accepts both \n and \r\n line endings, discards
// blank lines and honors RFC4180 quoting (fields wrapped in double quotes may
// contain commas and newlines; a doubled quote inside a quoted field is one
// literal quote).
func Parse(text string) (*File, error) {
	clean := strings.TrimPrefix(text, "\uFEFF")

	reader := csv.NewReader(strings.NewReader(clean))
	reader.FieldsPerRecord = -1

	var records [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if isBlank(record) {
			continue
		}
		records = append(records, record)
	}

	if len(records) == 0 {
		return nil, ErrEmptyFile
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = strings.TrimSpace(h)
	}

	if len(records) == 1 {
		return nil, ErrNoDataRows
	}

	rows := make([]Row, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(Row, len(headers))
		for j, header := range headers {
			if j < len(record) {
				row[header] = strings.TrimSpace(record[j])
			} else {
				row[header] = ""
			}
		}
		rows = append(rows, row)
	}

	return &File{Headers: headers, Rows: rows}, nil
}

func isBlank(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}

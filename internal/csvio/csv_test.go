package csvio

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantRows int
		check    func(t *testing.T, f *File)
	}{
		{
			name:     "simple file",
			text:     "A,B\n1,2\n3,4\n",
			wantRows: 2,
			check: func(t *testing.T, f *File) {
				if f.Rows[0]["A"] != "1" || f.Rows[1]["B"] != "4" {
					t.Errorf("unexpected rows: %v", f.Rows)
				}
			},
		},
		{
			name:     "strips byte order mark",
			text:     "\uFEFFA,B\nx,y\n",
			wantRows: 1,
			check: func(t *testing.T, f *File) {
				if f.Headers[0] != "A" {
					t.Errorf("BOM not stripped from first header: %q", f.Headers[0])
				}
			},
		},
		{
			name:     "crlf line endings and blank lines",
			text:     "A,B\r\n\r\n1,2\r\n   \r\n3,4\r\n",
			wantRows: 2,
		},
		{
			name:     "quoted field with comma and doubled quote",
			text:     "A,B\n\"hello, \"\"world\"\"\",x\n",
			wantRows: 1,
			check: func(t *testing.T, f *File) {
				if got := f.Rows[0]["A"]; got != `hello, "world"` {
					t.Errorf("quoted field = %q, want %q", got, `hello, "world"`)
				}
			},
		},
		{
			name:     "quoted field with embedded newline",
			text:     "A,B\n\"line one\nline two\",x\n",
			wantRows: 1,
			check: func(t *testing.T, f *File) {
				if got := f.Rows[0]["A"]; got != "line one\nline two" {
					t.Errorf("multiline field = %q", got)
				}
			},
		},
		{
			name:     "short record fills missing columns with empty strings",
			text:     "A,B,C\n1,2\n",
			wantRows: 1,
			check: func(t *testing.T, f *File) {
				if f.Rows[0]["C"] != "" {
					t.Errorf("missing column should be empty, got %q", f.Rows[0]["C"])
				}
			},
		},
		{
			name:     "values are trimmed",
			text:     "A,B\n  padded  ,x\n",
			wantRows: 1,
			check: func(t *testing.T, f *File) {
				if f.Rows[0]["A"] != "padded" {
					t.Errorf("value not trimmed: %q", f.Rows[0]["A"])
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Parse(tt.text)
			if err != nil {
				t.Fatalf("Parse() error: %v", err)
			}
			if len(f.Rows) != tt.wantRows {
				t.Fatalf("Parse() got %d rows, want %d", len(f.Rows), tt.wantRows)
			}
			if tt.check != nil {
				tt.check(t, f)
			}
		})
	}
}

func TestParseEmptyVersusHeaderOnly(t *testing.T) {
	if _, err := Parse(""); !errors.Is(err, ErrEmptyFile) {
		t.Errorf("empty text: got %v, want ErrEmptyFile", err)
	}
	if _, err := Parse("\n\n  \n"); !errors.Is(err, ErrEmptyFile) {
		t.Errorf("blank lines only: got %v, want ErrEmptyFile", err)
	}
	if _, err := Parse("A,B,C\n"); !errors.Is(err, ErrNoDataRows) {
		t.Errorf("header only: got %v, want ErrNoDataRows", err)
	}
}

func TestTemplateRoundTrip(t *testing.T) {
	f, err := Parse(Template())
	if err != nil {
		t.Fatalf("Parse(Template()) error: %v", err)
	}

	if len(f.Headers) != len(ImportHeaders) {
		t.Fatalf("template has %d headers, want %d", len(f.Headers), len(ImportHeaders))
	}
	for i, h := range ImportHeaders {
		if f.Headers[i] != h {
			t.Errorf("header[%d] = %q, want %q", i, f.Headers[i], h)
		}
	}

	if len(f.Rows) != 1 {
		t.Fatalf("template has %d example rows, want 1", len(f.Rows))
	}
	row := f.Rows[0]
	if row[ColProject] != "Pirxey Dashboard" {
		t.Errorf("example project = %q", row[ColProject])
	}
	if row[ColTags] != "spotkanie; planning" {
		t.Errorf("example tags = %q", row[ColTags])
	}
}

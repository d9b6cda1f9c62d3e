package importer

import (
	"fmt"
	"strings"
)

// previewLimit caps how much of an offending row is echoed in errors.
const previewLimit = 80

// HeaderMismatchError means the file's first row is not the expected
// 12-column header. The import aborts before any write.
type HeaderMismatchError struct {
	Got []string
}

func (e *HeaderMismatchError) Error() string {
	return fmt.Sprintf("csv header mismatch: got %s", preview(e.Got))
}

// MalformedRowError means a data row did not have exactly 12 fields.
type MalformedRowError struct {
	Line   int
	Fields int
	Row    string
}

func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("row %d has %d fields, want %d: %s", e.Line, e.Fields, columnCount, e.Row)
}

// UnparseableDateError means a row's date field did not match the export's
// date layout.
type UnparseableDateError struct {
	Line  int
	Value string
}

func (e *UnparseableDateError) Error() string {
	return fmt.Sprintf("row %d has unparseable date %q", e.Line, e.Value)
}

func preview(fields []string) string {
	s := strings.Join(fields, ",")
	if len(s) > previewLimit {
		s = s[:previewLimit] + "…"
	}
	return s
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package export

import (
	"net/url"
	"strings"
	"time"
)

const (
	// UTF-8 byte-order marker so spreadsheet tools auto-detect encoding.
	utf8BOM = "\uFEFF"

	delimiter = ","
)

// Serialize renders the table as BOM-prefixed, comma-delimited text with one
// line per row.
func Serialize(table Table) string {
	var sb strings.Builder
	sb.WriteString(utf8BOM)
	writeLine(&sb, table.Header)
	for _, row := range table.Rows {
		writeLine(&sb, row)
	}
	return sb.String()
}

func writeLine(sb *strings.Builder, fields []string) {
	for i, field := range fields {
		if i > 0 {
			sb.WriteString(delimiter)
		}
		sb.WriteString(EscapeField(field))
	}
	sb.WriteString("\n")
}

// EscapeField quotes a field only when it contains the delimiter, a quote,
// or a newline, doubling any embedded quotes. Plain fields pass through
// unchanged.
func EscapeField(field string) string {
	if !strings.ContainsAny(field, ",\"\n\r") {
		return field
	}
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

// BuildFilename assembles {surveyTitle}_{format}_{isoDate}.csv with the date
// taken in the export timezone.
func BuildFilename(surveyTitle, format string, now time.Time) string {
	return surveyTitle + "_" + format + "_" + now.In(exportZone).Format("2006-01-02") + ".csv"
}

// EncodeFilename percent-encodes a filename for use in a download response
// header.
func EncodeFilename(filename string) string {
	return url.PathEscape(filename)
}

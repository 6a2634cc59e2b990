package catalog

import (
	"strings"
	"time"
)

// MIMEType is the content type of an exported catalog file.
const MIMEType = "text/csv;charset=utf-8"

// ToCSV serializes the record set. The header row is the column union in
// first-seen order, unquoted; a data field is quoted only when it
// contains a comma, a double quote, or a line break, with internal quotes
// doubled. Absent values become empty fields, so the output re-parses to
// exactly the displayed strings.
func ToCSV(games []Game) string {
	cols := Columns(games)

	var b strings.Builder
	b.WriteString(strings.Join(cols, ","))
	for _, g := range games {
		b.WriteByte('\n')
		for i, key := range cols {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(escapeField(g.Value(key)))
		}
	}
	return b.String()
}

func escapeField(s string) string {
	if !strings.ContainsAny(s, ",\"\n\r") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// ExportFilename names the download after the export date.
func ExportFilename(now time.Time) string {
	return "games_data_" + now.Format("2006-01-02") + ".csv"
}

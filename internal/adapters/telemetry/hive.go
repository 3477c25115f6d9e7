package telemetry

import "strings"

// HiveFieldSeparator separates the fields of a Hive text row.
const HiveFieldSeparator = "\x01"

var hiveEscaper = strings.NewReplacer(
	`\`, `\\`,
	"\n", `\n`,
	"\r", `\r`,
	HiveFieldSeparator, `\001`,
)

// HiveRowFormatter builds a single row of a Hive text table.
type HiveRowFormatter struct {
	fields []string
}

// NewHiveRowFormatter returns an empty row formatter.
func NewHiveRowFormatter() *HiveRowFormatter {
	return &HiveRowFormatter{}
}

// AppendString adds a field to the row. Separators and line breaks inside s are escaped.
func (f *HiveRowFormatter) AppendString(s string) *HiveRowFormatter {
	f.fields = append(f.fields, hiveEscaper.Replace(s))
	return f
}

// Build returns the row terminated by a newline.
func (f *HiveRowFormatter) Build() string {
	return strings.Join(f.fields, HiveFieldSeparator) + "\n"
}

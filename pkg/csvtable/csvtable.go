package csvtable

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Record maps a header column name to its parsed value: float64 for numeric
// columns, string for everything else.
type Record map[string]any

// Warning describes a row or cell the parser accepted best-effort.
type Warning struct {
	Line   int    // 1-based line number in the source text
	Column string // offending column, empty for row-level warnings
	Reason string
}

func (w Warning) String() string {
	if w.Column != "" {
		return fmt.Sprintf("line %d, column %q: %s", w.Line, w.Column, w.Reason)
	}
	return fmt.Sprintf("line %d: %s", w.Line, w.Reason)
}

// Columns that hold dates, identifiers or categories. They are kept as strings
// no matter what their content looks like.
var stringColumns = map[string]struct{}{
	"date":       {},
	"service":    {},
	"mois":       {},
	"jour_nom":   {},
	"id":         {},
	"id_patient": {},
	"gravite":    {},
	"sexe":       {},
}

// Parse reads raw CSV text with a header line and comma-separated data lines
// into ordered records. Non allow-listed columns attempt a numeric parse and
// fall back to the raw string on failure; the fallback and any header/row
// column-count mismatch are reported as warnings rather than dropped silently.
// There is no quoting or embedded-comma support.
func Parse(raw string) ([]Record, []Warning) {
	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) == "" {
		return nil, nil
	}

	header := splitFields(lines[0])

	var (
		records  []Record
		warnings []Warning
	)
	for i, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lineNo := i + 2

		fields := splitFields(line)
		if len(fields) != len(header) {
			warnings = append(warnings, Warning{
				Line:   lineNo,
				Reason: fmt.Sprintf("expected %d columns, got %d", len(header), len(fields)),
			})
		}

		rec := make(Record, len(header))
		for j, col := range header {
			if j >= len(fields) {
				break
			}
			val := fields[j]
			if _, keep := stringColumns[col]; keep {
				rec[col] = val
				continue
			}
			num, err := strconv.ParseFloat(val, 64)
			if err != nil {
				warnings = append(warnings, Warning{
					Line:   lineNo,
					Column: col,
					Reason: fmt.Sprintf("value %q is not numeric, kept as string", val),
				})
				rec[col] = val
				continue
			}
			rec[col] = num
		}
		records = append(records, rec)
	}
	return records, warnings
}

func splitFields(line string) []string {
	parts := strings.Split(line, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// Float returns the column as float64, or 0 when missing or non-numeric.
func (r Record) Float(col string) float64 {
	if v, ok := r[col].(float64); ok {
		return v
	}
	return 0
}

// Int returns the column rounded to the nearest integer.
func (r Record) Int(col string) int {
	return int(math.Round(r.Float(col)))
}

// String returns the column as a string. Numeric values are formatted back.
func (r Record) String(col string) string {
	switch v := r[col].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

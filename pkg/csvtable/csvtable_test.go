package csvtable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_RecordPerDataLine(t *testing.T) {
	raw := "date,admissions,duree_moyenne\n" +
		"2024-01-01,120,4.5\n" +
		"2024-01-02,95,5.1\n" +
		"2024-01-03,110,4.8\n"

	records, warnings := Parse(raw)
	require.Len(t, records, 3)
	assert.Empty(t, warnings)

	for _, rec := range records {
		assert.Contains(t, rec, "date")
		assert.Contains(t, rec, "admissions")
		assert.Contains(t, rec, "duree_moyenne")
	}
	assert.Equal(t, "2024-01-02", records[1].String("date"))
	assert.Equal(t, 95.0, records[1].Float("admissions"))
}

func TestParse_StringColumnsNeverNumeric(t *testing.T) {
	raw := "date,service,mois,jour_nom,admissions\n" +
		"2024-01-01,42,7,12,120\n"

	records, warnings := Parse(raw)
	require.Len(t, records, 1)
	assert.Empty(t, warnings)

	rec := records[0]
	// Even numeric-looking content stays a string for allow-listed columns.
	assert.Equal(t, "42", rec["service"])
	assert.Equal(t, "7", rec["mois"])
	assert.Equal(t, "12", rec["jour_nom"])
	assert.Equal(t, 120.0, rec["admissions"])
}

func TestParse_NumericFallbackWarns(t *testing.T) {
	raw := "date,admissions\n2024-01-01,n/a\n"

	records, warnings := Parse(raw)
	require.Len(t, records, 1)
	require.Len(t, warnings, 1)

	assert.Equal(t, "n/a", records[0]["admissions"])
	assert.Equal(t, "admissions", warnings[0].Column)
	assert.Equal(t, 2, warnings[0].Line)
}

func TestParse_ColumnCountMismatch(t *testing.T) {
	raw := "date,admissions,cout_total\n2024-01-01,120\n"

	records, warnings := Parse(raw)
	require.Len(t, records, 1)
	require.Len(t, warnings, 1)

	assert.NotContains(t, records[0], "cout_total")
	assert.Equal(t, 120.0, records[0].Float("admissions"))
}

func TestParse_EmptyInput(t *testing.T) {
	records, warnings := Parse("")
	assert.Empty(t, records)
	assert.Empty(t, warnings)
}

func TestParse_TrailingNewlineAndCRLF(t *testing.T) {
	raw := "date,admissions\r\n2024-01-01,120\r\n\r\n"

	records, warnings := Parse(raw)
	require.Len(t, records, 1)
	assert.Empty(t, warnings)
	assert.Equal(t, 120, records[0].Int("admissions"))
}

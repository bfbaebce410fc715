package cli

import (
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderPromotionTable(t *testing.T) {
	out := RenderPromotionTable()

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "promotion_table", []byte(out))
}

func TestRenderPromotionTableShape(t *testing.T) {
	lines := strings.Split(strings.TrimRight(RenderPromotionTable(), "\n"), "\n")
	require.Len(t, lines, len(numericTypes)+1)

	// Every line is padded to the same width.
	for i := 1; i < len(lines); i++ {
		assert.Equal(t, len(lines[0]), len(lines[i]), "line %d", i)
	}

	// The diagonal is the identity.
	for _, d := range numericTypes {
		row := rowFor(t, lines, d.String())
		assert.Contains(t, row, d.String())
	}
}

func rowFor(t *testing.T, lines []string, label string) string {
	t.Helper()
	for _, line := range lines[1:] {
		if strings.HasPrefix(line, label+" ") {
			return line
		}
	}
	t.Fatalf("no row for %s", label)
	return ""
}

func TestPromotionTableRows(t *testing.T) {
	rows := promotionTableRows()
	require.Len(t, rows, len(numericTypes))

	for _, row := range rows {
		assert.Len(t, row.Joins, len(numericTypes))
		assert.Equal(t, row.Type, row.Joins[row.Type], "diagonal for %s", row.Type)
	}

	byType := make(map[string]tableRow, len(rows))
	for _, row := range rows {
		byType[row.Type] = row
	}
	assert.Equal(t, "int16", byType["int8"].Joins["uint8"])
	assert.Equal(t, "float64", byType["uint64"].Joins["int64"])
	assert.Equal(t, "complex128", byType["float64"].Joins["complex64"])
}

package render

import (
	"strings"
	"testing"

	"github.com/farxc/fastfood_minwage/internal/survey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCells(t *testing.T) {
	assert.Equal(t, "20.44 (0.51)", MeanSE(survey.Of(20.4394), survey.Of(0.5083), 2))
	assert.Equal(t, ".", MeanSE(survey.Missing, survey.Of(1), 2))
	assert.Equal(t, "4.6", MeanSE(survey.Of(4.6), survey.Missing, 1))
	assert.Equal(t, "-0.040", Number(survey.Of(-0.04), 3))
	assert.Equal(t, ".", Number(survey.Missing, 2))
	assert.Equal(t, "yes", YesNo(true))
	assert.Equal(t, "no", YesNo(false))
	assert.Equal(t, "<sup>a</sup>", Sup("a"))
}

func TestAddRowPadsToHeader(t *testing.T) {
	tbl := Table{Header: []string{"Variable", "NJ", "PA"}}
	tbl.AddRow("a")
	tbl.AddRow("b", "1", "2", "extra")
	tbl.AddSection("Wave 1")

	require.Len(t, tbl.Rows, 3)
	assert.Equal(t, []string{"a", "", ""}, tbl.Rows[0])
	assert.Equal(t, []string{"b", "1", "2"}, tbl.Rows[1])
	assert.Equal(t, "**Wave 1**", tbl.Rows[2][0])
}

func TestMarkdown(t *testing.T) {
	tbl := Table{
		Title:  "TABLE 0-EXAMPLE",
		Header: []string{"Variable", "NJ", "PA"},
		Notes:  []string{"Notes: Standard errors in parentheses.", Sup("a") + " Footnote."},
	}
	tbl.AddRow("a. FTE employment", MeanSE(survey.Of(20.44), survey.Of(0.51), 2), ".")

	var sb strings.Builder
	require.NoError(t, Markdown(&sb, tbl))
	out := sb.String()

	assert.True(t, strings.HasPrefix(out, "**TABLE 0-EXAMPLE**\n\n"))
	assert.Contains(t, out, "20.44 (0.51)")
	assert.Contains(t, out, "a. FTE employment")
	assert.Contains(t, out, "<sup>a</sup> Footnote.")

	var tableLines []string
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "|") {
			tableLines = append(tableLines, line)
		}
	}
	require.Len(t, tableLines, 3, out)
	assert.Contains(t, tableLines[0], "Variable")
	assert.Contains(t, tableLines[1], "---")
	for _, line := range tableLines {
		assert.True(t, strings.HasSuffix(strings.TrimSpace(line), "|"), line)
		assert.Equal(t, 4, strings.Count(line, "|"), line)
	}
	assert.Equal(t, out, String(tbl))
}

package htmlx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const doc = `<html><body>
<div class="paragraf" id="p1"><h3>§ 1-1. Virkeområde</h3><p>Loven gjelder i <b>hele</b> landet.</p></div>
<div class="paragraf annotated" id="p2"><h3>§ 1-2. Definisjoner</h3><p>Med avgift menes merverdiavgift.</p></div>
<script>var x = 1;</script>
<table><tr><th>Sats</th><th>Prosent</th></tr><tr><td>Alminnelig</td><td>25</td></tr></table>
</body></html>`

func TestFindAllAndText(t *testing.T) {
	root, err := Parse([]byte(doc))
	require.NoError(t, err)

	paragraphs := FindAll(root, ByClass("paragraf"))
	require.Len(t, paragraphs, 2)
	assert.Equal(t, "§ 1-1. Virkeområde Loven gjelder i hele landet.", Text(paragraphs[0]))

	second := Find(root, ByClass("annotated"))
	require.NotNil(t, second)
	assert.Equal(t, "p2", Attr(second, "id"))
	assert.True(t, ClassContains(second, "para"))

	// Script content never leaks into text.
	assert.NotContains(t, Text(root), "var x")
}

func TestTableRows(t *testing.T) {
	root, err := Parse([]byte(doc))
	require.NoError(t, err)

	table := Find(root, ByTag("table"))
	require.NotNil(t, table)

	rows := TableRows(table)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Sats", "Prosent"}, rows[0])
	assert.Equal(t, []string{"Alminnelig", "25"}, rows[1])
}

func TestHeadings(t *testing.T) {
	root, err := Parse([]byte(doc))
	require.NoError(t, err)

	headings := FindAll(root, IsHeading)
	assert.Len(t, headings, 2)
}

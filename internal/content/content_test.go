package content

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlainText(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			"paragraphs",
			"<p>Prvi odlomak.</p><p>Drugi odlomak.</p>",
			"Prvi odlomak. Drugi odlomak.",
		},
		{
			"inline markup kept",
			"<p>Grad <strong>Rijeka</strong> je <em>najveća</em> luka.</p>",
			"Grad Rijeka je najveća luka.",
		},
		{
			"script dropped",
			"<p>Vidljivo</p><script>alert('ne')</script><p>Također vidljivo</p>",
			"Vidljivo Također vidljivo",
		},
		{
			"style dropped",
			"<style>p{color:red}</style><p>Tekst</p>",
			"Tekst",
		},
		{
			"plain text passthrough",
			"samo tekst bez oznaka",
			"samo tekst bez oznaka",
		},
		{
			"empty",
			"",
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PlainText(tt.html))
		})
	}
}

func TestMarkdown(t *testing.T) {
	md := Markdown("<h2>Naslov</h2><p>Odlomak s <strong>naglaskom</strong>.</p>")
	assert.Contains(t, md, "## Naslov")
	assert.Contains(t, md, "**naglaskom**")
}

func TestSummarize(t *testing.T) {
	short := "Kratki tekst."
	assert.Equal(t, short, Summarize(short, 100))

	long := strings.Repeat("riječ ", 50)
	got := Summarize(long, 40)
	assert.LessOrEqual(t, len([]rune(got)), 41) // word cut + ellipsis
	assert.True(t, strings.HasSuffix(got, "…"))
}

package fetch

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeHTML(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "empty input",
			html: "",
			want: "",
		},
		{
			name: "whitespace only",
			html: "   \n\t ",
			want: "",
		},
		{
			name: "plain text passes through",
			html: "Desenvolvedor Go",
			want: "Desenvolvedor Go",
		},
		{
			name: "block elements become lines",
			html: "<h1>Desenvolvedor Go</h1><p>Empresa: Acme</p><div>Remoto</div>",
			want: "Desenvolvedor Go\nEmpresa: Acme\nRemoto",
		},
		{
			name: "br breaks lines",
			html: "<p>linha um<br>linha dois<br/>linha três</p>",
			want: "linha um\nlinha dois\nlinha três",
		},
		{
			name: "inline tags become word breaks",
			html: "<p>Go<span>lang</span> e <b>SQL</b></p>",
			want: "Go lang e SQL",
		},
		{
			name: "script and style content removed",
			html: "<html><head><style>body{color:red}</style><script>var x = 1;</script></head><body><p>Vaga</p><script>track()</script></body></html>",
			want: "Vaga",
		},
		{
			name: "whitespace runs collapse",
			html: "<p>  muitos     espaços \t aqui </p>",
			want: "muitos espaços aqui",
		},
		{
			name: "blank lines collapse",
			html: "<div><p>A</p>\n\n\n<p></p><div>  </div><p>B</p></div>",
			want: "A\nB",
		},
		{
			name: "list items",
			html: "<ul><li>Go</li><li>Docker</li></ul>",
			want: "Go\nDocker",
		},
		{
			name: "entities decoded",
			html: "<p>P&amp;D &ndash; São&nbsp;Paulo</p>",
			want: "P&D – São Paulo",
		},
		{
			name: "comments dropped",
			html: "<p>A<!-- hidden -->B</p>",
			want: "AB",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeHTML(tt.html))
		})
	}
}

func TestSanitizeHTML_Idempotent(t *testing.T) {
	html := "<article><h2>Requisitos</h2><ul><li>Go</li><li>PostgreSQL</li></ul></article>"
	first := SanitizeHTML(html)
	assert.Equal(t, first, SanitizeHTML(html))
	assert.Equal(t, first, SanitizeHTML(first))
}

func TestHasSufficientContent(t *testing.T) {
	assert.False(t, HasSufficientContent(""))
	assert.False(t, HasSufficientContent(strings.Repeat("a", MinContentLength-1)))
	assert.True(t, HasSufficientContent(strings.Repeat("a", MinContentLength)))
	assert.False(t, HasSufficientContent(strings.Repeat("ã", MinContentLength-1)+"   "))
}

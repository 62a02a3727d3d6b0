package parsing

import (
	"strings"
	"testing"

	"github.com/jonathan/resume-optimizer/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleJobText = `Desenvolvedor Full Stack Pleno
Empresa: Acme Tecnologia
Local: São Paulo - Trabalho híbrido

Sobre a vaga
Buscamos pessoa desenvolvedora para atuar com React e Node.js.

Requisitos
• 3 anos de experiência com JavaScript
- Conhecimento em PostgreSQL
* Vivência com Docker
Texto corrido dentro da seção

Benefícios
- Vale refeição
- Plano de saúde`

func TestExtractJobFromText(t *testing.T) {
	job := ExtractJobFromText(sampleJobText)

	assert.Equal(t, "Desenvolvedor Full Stack Pleno", job.Title)
	assert.Equal(t, "Acme Tecnologia", job.Company)
	assert.Equal(t, []string{
		"3 anos de experiência com JavaScript",
		"Conhecimento em PostgreSQL",
		"Vivência com Docker",
	}, job.Requirements)
	assert.Equal(t, []string{"JavaScript", "React", "Node.js", "Java", "SQL", "PostgreSQL", "Docker"}, job.Skills)
	assert.Equal(t, types.SeniorityUnknown, job.Seniority)
	assert.Equal(t, types.WorkModelUnknown, job.WorkModel)
	assert.Empty(t, job.URL)
	assert.True(t, strings.HasPrefix(sampleJobText, job.Description))
}

func TestExtractJobFromText_DescriptionBounded(t *testing.T) {
	text := "Vaga curta\n" + strings.Repeat("á", 800)
	job := ExtractJobFromText(text)
	assert.Equal(t, MaxDescriptionLength, len([]rune(job.Description)))
}

func TestExtractJobFromHTML(t *testing.T) {
	text := "Engenheiro de Dados Sênior\nEmpresa: Dados S.A.\nModelo: 100% remoto\nStack: Python, AWS e SQL"
	job := ExtractJobFromHTML(text, "https://jobs.example.com/123")

	assert.Equal(t, "Engenheiro de Dados Sênior", job.Title)
	assert.Equal(t, "Dados S.A.", job.Company)
	assert.Equal(t, types.SenioritySenior, job.Seniority)
	assert.Equal(t, types.WorkModelRemoto, job.WorkModel)
	assert.Equal(t, "https://jobs.example.com/123", job.URL)
	assert.Equal(t, []string{"Python", "SQL", "AWS"}, job.Skills)
	assert.Equal(t, "Dados S.A. • Engenheiro de Dados Sênior • Python, SQL, AWS", job.Description)
}

func TestExtractTitle(t *testing.T) {
	long := strings.Repeat("x", MaxTitleLength)

	tests := []struct {
		name string
		text string
		want string
	}{
		{"first line", "Analista de Sistemas\nmais texto", "Analista de Sistemas"},
		{"first line trimmed", "   Analista de Sistemas   \n", "Analista de Sistemas"},
		{"skips leading blank lines", "\n\n  \nDesigner UX\n", "Designer UX"},
		{"long first line falls back to vaga label", long + "\nVaga: Dev Go", "Dev Go"},
		{"cargo label", long + "\nCargo: Analista", "Analista"},
		{"posição label", long + "\nPOSIÇÃO: Tech Lead", "Tech Lead"},
		{"oportunidade label", long + "\nOportunidade: Estágio", "Estágio"},
		{"label needs a colon", long + "\nvagas abertas em breve", types.PlaceholderJobTitle},
		{"placeholder", long, types.PlaceholderJobTitle},
		{"empty", "", types.PlaceholderJobTitle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractTitle(tt.text))
		})
	}
}

func TestExtractTitle_FirstShortLineVerbatim(t *testing.T) {
	lines := []string{"Dev", "Pessoa Desenvolvedora Back-end (Go) - Remoto", strings.Repeat("a", MaxTitleLength-1)}
	for _, line := range lines {
		job := ExtractJobFromText(line + "\nEmpresa: X\nRequisitos\n- Go")
		assert.Equal(t, line, job.Title)
	}
}

func TestExtractCompany(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"empresa", "Dev\nEmpresa: Acme", "Acme"},
		{"companhia", "Dev\nCompanhia: Beta Ltda", "Beta Ltda"},
		{"organização", "Dev\nOrganização: ONG Gama", "ONG Gama"},
		{"cliente", "Dev\nCliente: Banco Delta", "Banco Delta"},
		{"first pattern wins", "Cliente: Banco\nEmpresa: Consultoria", "Consultoria"},
		{"value stays on its line", "Empresa:\nAcme", types.PlaceholderCompany},
		{"placeholder", "Dev\nSobre a empresa\nSomos legais", types.PlaceholderCompany},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractCompany(tt.text))
		})
	}
}

func TestExtractRequirements(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "bullets before any heading are ignored",
			text: "- item solto\nRequisitos:\n- Go",
			want: []string{"Go"},
		},
		{
			name: "closing heading ends the section",
			text: "Qualificações\n• SQL\nSalário\n• R$ 10.000",
			want: []string{"SQL"},
		},
		{
			name: "section reopens",
			text: "Requirements\n- A\nContato\n- x@y.com\nFormação\n- Ciência da Computação",
			want: []string{"A", "Ciência da Computação"},
		},
		{
			name: "closing keyword on a bullet ends the section",
			text: "Dev Backend\nRequisitos\n- Go avançado\n- Salário compatível com o mercado\n- Vale refeição\n",
			want: []string{"Go avançado"},
		},
		{
			name: "requirement keyword bullets inside the section are kept",
			text: "Requisitos\n- Experiência com Kubernetes\n- Formação em Computação\n- Inglês",
			want: []string{"Experiência com Kubernetes", "Formação em Computação", "Inglês"},
		},
		{
			name: "requirement keyword bullet opens the section",
			text: "- Experiência com Go\n- Docker",
			want: []string{"Docker"},
		},
		{
			name: "empty bullets skipped",
			text: "Requisitos\n-\n- Go",
			want: []string{"Go"},
		},
		{
			name: "no section",
			text: "Dev Go\nTrabalho remoto",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractRequirements(tt.text))
		})
	}
}

func TestExtractSkills(t *testing.T) {
	t.Run("canonical casing and vocabulary order", func(t *testing.T) {
		skills := ExtractSkills("experiência com DOCKER, kubernetes e typescript")
		assert.Equal(t, []string{"TypeScript", "Docker", "Kubernetes"}, skills)
	})

	t.Run("substring matches are kept", func(t *testing.T) {
		skills := ExtractSkills("javascript e postgresql")
		assert.Equal(t, []string{"JavaScript", "Java", "SQL", "PostgreSQL"}, skills)
	})

	t.Run("no skills", func(t *testing.T) {
		assert.Nil(t, ExtractSkills("vaga de atendimento"))
	})
}

func TestExtractors_Idempotent(t *testing.T) {
	first := ExtractJobFromText(sampleJobText)
	second := ExtractJobFromText(sampleJobText)
	require.Equal(t, first, second)

	a := ExtractJobFromHTML(sampleJobText, "https://x.test")
	b := ExtractJobFromHTML(sampleJobText, "https://x.test")
	assert.Equal(t, a, b)
}

func TestExtractJobFromText_DecomposedAccents(t *testing.T) {
	text := "Título longo " + strings.Repeat("x", MaxTitleLength) + "\nOrganizac\u0327a\u0303o: Instituto"
	assert.Equal(t, "Instituto", ExtractJobFromText(text).Company)
}

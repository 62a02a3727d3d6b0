package profile

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/jonathan/resume-optimizer/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResume = `Maria Oliveira Santos
maria.santos@email.com | (21) 3333-4444
Rua das Flores, 123 - Rio de Janeiro, RJ

Resumo
Desenvolvedora backend com foco em Go.

Experiência Profissional
Acme Ltda - Desenvolvedora Go (2020 - atual)
Construção de APIs REST e filas.

Formação Acadêmica
Bacharelado em Ciência da Computação - UFRJ

Habilidades
Go, Docker, Kubernetes
- PostgreSQL
• Git

Certificações
- AWS Certified Developer
- CKA

Projetos
- Plataforma de pagamentos em Go
- Bot
`

func TestExtract_FullResume(t *testing.T) {
	p := Extract(sampleResume)
	require.NotNil(t, p)

	require.NotNil(t, p.FullName)
	assert.Equal(t, "Maria Oliveira Santos", *p.FullName)
	require.NotNil(t, p.Email)
	assert.Equal(t, "maria.santos@email.com", *p.Email)
	require.NotNil(t, p.Phone)
	assert.Equal(t, "(21) 3333-4444", *p.Phone)
	require.NotNil(t, p.Address)
	assert.Equal(t, "Rua das Flores, 123 - Rio de Janeiro, RJ", *p.Address)

	require.NotNil(t, p.Experience)
	assert.Equal(t, "Acme Ltda - Desenvolvedora Go (2020 - atual)\nConstrução de APIs REST e filas.", *p.Experience)
	require.NotNil(t, p.Education)
	assert.Equal(t, "Bacharelado em Ciência da Computação - UFRJ", *p.Education)

	assert.Equal(t, []string{"Go", "Docker", "Kubernetes", "PostgreSQL", "Git"}, p.Skills)
	assert.Equal(t, []string{"AWS Certified Developer"}, p.Certifications)
	assert.Equal(t, []string{"Plataforma de pagamentos em Go"}, p.Projects)
}

func TestExtract_ContactOnly(t *testing.T) {
	p := Extract("João Silva\njoao@email.com\n(11) 98888-7777")
	require.NotNil(t, p)

	require.NotNil(t, p.FullName)
	assert.Equal(t, "João Silva", *p.FullName)
	require.NotNil(t, p.Email)
	assert.Equal(t, "joao@email.com", *p.Email)
	require.NotNil(t, p.Phone)
	assert.Equal(t, "(11) 98888-7777", *p.Phone)

	assert.Nil(t, p.Address)
	assert.Nil(t, p.Education)
	assert.Nil(t, p.Experience)
	assert.Nil(t, p.Skills)
	assert.Nil(t, p.Certifications)
	assert.Nil(t, p.Projects)
}

func TestExtract_PlaceholderText(t *testing.T) {
	tests := []string{
		"[PDF Content] curriculo.pdf\nJoão Silva",
		"[docx content] curriculo.docx",
		"Arquivo recebido. Em uma implementação real, o texto seria extraído.",
	}

	for _, text := range tests {
		t.Run(text, func(t *testing.T) {
			assert.Nil(t, Extract(text))
		})
	}
}

func TestExtract_EmptyText(t *testing.T) {
	p := Extract("")
	require.NotNil(t, p)
	assert.Equal(t, &types.ResumeProfile{}, p)
}

func TestExtract_InlineHeadings(t *testing.T) {
	p := Extract("Ana Lima\nHabilidades: Go, Python\nExperiência: 3 anos como dev")
	require.NotNil(t, p)

	assert.Equal(t, []string{"Go", "Python"}, p.Skills)
	require.NotNil(t, p.Experience)
	assert.Equal(t, "3 anos como dev", *p.Experience)
	assert.Nil(t, p.Education)
}

func TestExtract_LongSentenceIsNotHeading(t *testing.T) {
	p := Extract("Ana Lima\nExperiência com React e Node.js em produção")
	require.NotNil(t, p)
	assert.Nil(t, p.Experience)
}

func TestExtract_CityAddress(t *testing.T) {
	p := Extract("Ana Lima\nSão José dos Campos, SP")
	require.NotNil(t, p)
	require.NotNil(t, p.Address)
	assert.Equal(t, "São José dos Campos, SP", *p.Address)
}

func TestExtract_NameSkipsHeadings(t *testing.T) {
	p := Extract("Curriculum Vitae\nFormação Acadêmica\nEngenharia")
	require.NotNil(t, p)
	require.NotNil(t, p.FullName)
	assert.Equal(t, "Curriculum Vitae", *p.FullName)

	p = Extract("Formação Acadêmica\nengenharia civil")
	require.NotNil(t, p)
	assert.Nil(t, p.FullName)
}

func TestExtract_Bounds(t *testing.T) {
	skills := make([]string, 25)
	for i := range skills {
		skills[i] = fmt.Sprintf("Skill%02d", i)
	}
	certs := make([]string, 12)
	for i := range certs {
		certs[i] = fmt.Sprintf("- Certificado %02d", i)
	}

	text := strings.Join([]string{
		"Formação",
		strings.Repeat("a", 600),
		"Experiência",
		strings.Repeat("b", 1200),
		"Habilidades",
		strings.Join(skills, ", ") + ", X, " + strings.Repeat("z", 51),
		"Certificações",
		strings.Join(certs, "\n"),
	}, "\n")

	p := Extract(text)
	require.NotNil(t, p)

	require.NotNil(t, p.Education)
	assert.Equal(t, MaxEducationLength, utf8.RuneCountInString(*p.Education))
	require.NotNil(t, p.Experience)
	assert.Equal(t, MaxExperienceLength, utf8.RuneCountInString(*p.Experience))

	assert.Len(t, p.Skills, MaxSkills)
	assert.Equal(t, "Skill00", p.Skills[0])
	assert.NotContains(t, p.Skills, "X")

	assert.Len(t, p.Certifications, MaxCertifications)
	assert.Equal(t, "Certificado 00", p.Certifications[0])
}

func TestExtract_SkillLengthFilter(t *testing.T) {
	p := Extract("Skills\nC, Go, " + strings.Repeat("k", MaxSkillLength) + ", " + strings.Repeat("q", MaxSkillLength+1))
	require.NotNil(t, p)
	assert.Equal(t, []string{"Go", strings.Repeat("k", MaxSkillLength)}, p.Skills)
}

func TestExtract_NoEmptyValues(t *testing.T) {
	inputs := []string{
		"",
		"Habilidades\n,,, -\n",
		"Projetos\n- curto\nCertificações\n- abc",
		"Formação:\nExperiência:",
		sampleResume,
	}

	for _, text := range inputs {
		p := Extract(text)
		require.NotNil(t, p)
		for _, s := range []*string{p.FullName, p.Email, p.Phone, p.Address, p.Education, p.Experience} {
			if s != nil {
				assert.NotEmpty(t, *s)
			}
		}
		for _, list := range [][]string{p.Skills, p.Certifications, p.Projects} {
			if list != nil {
				assert.NotEmpty(t, list)
			}
		}
	}
}

func TestExtract_Idempotent(t *testing.T) {
	assert.Equal(t, Extract(sampleResume), Extract(sampleResume))
}

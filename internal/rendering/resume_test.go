package rendering

import (
	"strings"
	"testing"

	"github.com/jonathan/resume-optimizer/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func str(s string) *string { return &s }

const emptyProfileDocument = `Candidato

OBJETIVO PROFISSIONAL
Profissional experiente buscando oportunidade como Desenvolvedor Go na Acme, com foco em aplicar conhecimentos e habilidades para contribuir com os objetivos da empresa e crescer profissionalmente na área.

EXPERIÊNCIA PROFISSIONAL
Experiência relevante na área de desenvolvedor go, com conhecimento das principais práticas e ferramentas do mercado.

FORMAÇÃO ACADÊMICA
Formação adequada para a área de atuação.

HABILIDADES TÉCNICAS E COMPORTAMENTAIS
• Comunicação eficaz
• Trabalho em equipe
• Resolução de problemas
• Adaptabilidade
• Organização
`

func TestRenderOptimizedResume_NilProfile(t *testing.T) {
	doc, err := RenderOptimizedResume(nil, types.JobPosting{Title: "Desenvolvedor Go", Company: "Acme"}, types.CompatibilityAssessment{})
	require.NoError(t, err)
	assert.Equal(t, emptyProfileDocument, doc)
}

func TestRenderOptimizedResume_FullProfile(t *testing.T) {
	profile := &types.ResumeProfile{
		FullName:   str("Ana Lima"),
		Email:      str("ana@email.com"),
		Phone:      str("(11) 91234-5678"),
		Address:    str("Recife, PE"),
		Education:  str("Bacharelado em Sistemas de Informação"),
		Experience: str("Acme - Desenvolvedora Go (2020 - atual)"),
		Skills:     []string{"Go", "Docker"},
	}
	assessment := types.CompatibilityAssessment{
		Score:         80,
		Strengths:     []string{"Experiência comprovada em Go"},
		Improvements:  []string{"Incluir evidências de experiência com Kubernetes"},
		MatchedSkills: []string{"go", "PostgreSQL"},
	}

	doc, err := RenderOptimizedResume(profile, types.JobPosting{Title: "Engenheira de Software", Company: "Acme"}, assessment)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(doc, "Ana Lima\nEmail: ana@email.com\nTelefone: (11) 91234-5678\nEndereço: Recife, PE\n\nOBJETIVO PROFISSIONAL\n"))
	assert.Contains(t, doc, "\n\nPONTOS FORTES\n• Experiência comprovada em Go\n\nEXPERIÊNCIA PROFISSIONAL\nAcme - Desenvolvedora Go (2020 - atual)\n")
	assert.Contains(t, doc, "\n\nFORMAÇÃO ACADÊMICA\nBacharelado em Sistemas de Informação\n")
	assert.Contains(t, doc, "\n\nHABILIDADES TÉCNICAS E COMPORTAMENTAIS\n• Go\n• Docker\n• PostgreSQL\n")
	assert.True(t, strings.HasSuffix(doc, "\n\nÁREAS DE DESENVOLVIMENTO\n• Incluir evidências de experiência com Kubernetes\n"))
}

func TestRenderOptimizedResume_SectionOrder(t *testing.T) {
	assessment := types.CompatibilityAssessment{
		Strengths:    []string{"s"},
		Improvements: []string{"i"},
	}
	doc, err := RenderOptimizedResume(nil, types.JobPosting{}, assessment)
	require.NoError(t, err)

	headings := []string{
		"OBJETIVO PROFISSIONAL",
		"PONTOS FORTES",
		"EXPERIÊNCIA PROFISSIONAL",
		"FORMAÇÃO ACADÊMICA",
		"HABILIDADES TÉCNICAS E COMPORTAMENTAIS",
		"ÁREAS DE DESENVOLVIMENTO",
	}
	last := -1
	for _, h := range headings {
		idx := strings.Index(doc, h)
		require.Greater(t, idx, last, h)
		last = idx
	}
}

func TestBuildTemplateData_Objective(t *testing.T) {
	tests := []struct {
		name string
		job  types.JobPosting
		want string
	}{
		{"title and company", types.JobPosting{Title: "Analista", Company: "Acme"}, "oportunidade como Analista na Acme, com foco"},
		{"placeholder company", types.JobPosting{Title: "Analista", Company: types.PlaceholderCompany}, "oportunidade como Analista, com foco"},
		{"blank title", types.JobPosting{}, "oportunidade como " + types.PlaceholderJobTitle + ", com foco"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := BuildTemplateData(nil, tt.job, types.CompatibilityAssessment{})
			assert.Contains(t, data.Objective, tt.want)
		})
	}
}

func TestBuildTemplateData_BlankFieldsFallBack(t *testing.T) {
	profile := &types.ResumeProfile{FullName: str("  "), Education: str("")}
	data := BuildTemplateData(profile, types.JobPosting{Title: "QA"}, types.CompatibilityAssessment{Strengths: []string{" "}})

	assert.Equal(t, DefaultCandidateName, data.Name)
	assert.Equal(t, defaultEducation, data.Education)
	assert.Equal(t, DefaultSkills, data.Skills)
	assert.Nil(t, data.Strengths)
}

func TestOptimize(t *testing.T) {
	assessment := types.CompatibilityAssessment{Improvements: []string{"Adicionar projetos"}}
	opt, err := Optimize(nil, types.JobPosting{Title: "Dev"}, assessment)
	require.NoError(t, err)

	assert.Contains(t, opt.Content, "• Adicionar projetos")
	assert.Equal(t, []string{"Adicionar projetos"}, opt.Improvements)
}

package parsing

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/jonathan/resume-optimizer/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSummary(t *testing.T) {
	assert.Equal(t, "Acme • Dev Go • Go, Docker", DefaultSummary("Acme", "Dev Go", "Go, Docker"))
	assert.Equal(t, "Acme • Dev Go", DefaultSummary(" Acme ", "", "Dev Go"))
	assert.Equal(t, "", DefaultSummary())

	long := DefaultSummary(strings.Repeat("a", 600))
	assert.Equal(t, MaxDescriptionLength, utf8.RuneCountInString(long))
	assert.True(t, strings.HasSuffix(long, "..."))
}

func TestSummarizeDetails(t *testing.T) {
	d := &types.JobDetails{
		Title:    "Analista de Dados",
		Company:  types.CompanyInfo{Name: "Acme", WorkModel: types.WorkModelHibrido},
		Location: strPtr("Recife"),
	}
	assert.Equal(t, "Acme • Analista de Dados • hibrido Recife", SummarizeDetails(d))

	d.Title = types.PlaceholderJobTitle
	d.Location = nil
	assert.Equal(t, "Acme", SummarizeDetails(d))
}

func TestNewSource(t *testing.T) {
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.FixedZone("BRT", -3*3600))
	src := NewSource("https://jobs.example.com/vaga/42?ref=x", at)

	assert.Equal(t, "https://jobs.example.com/vaga/42?ref=x", src.URL)
	assert.Equal(t, "jobs.example.com", src.Domain)
	assert.Equal(t, time.UTC, src.CapturedAt.Location())
	assert.True(t, at.Equal(src.CapturedAt))

	assert.Empty(t, NewSource("::not a url", at).Domain)
}

func TestDetailsFromPosting(t *testing.T) {
	p := types.JobPosting{
		Title:        "Dev",
		Company:      "Acme",
		Requirements: []string{"3 anos de Go", "Inglês"},
		Skills:       []string{"Go"},
		Seniority:    types.SeniorityPleno,
		WorkModel:    types.WorkModelRemoto,
	}
	d := DetailsFromPosting(p)

	assert.Equal(t, "Dev", d.Title)
	assert.Equal(t, "Acme", d.Company.Name)
	assert.Equal(t, types.WorkModelRemoto, d.Company.WorkModel)
	assert.Equal(t, types.SeniorityPleno, d.Seniority)
	require.NotNil(t, d.Requirements.Experience)
	assert.Equal(t, "3 anos de Go; Inglês", *d.Requirements.Experience)
	assert.Equal(t, []string{"Go"}, d.Requirements.TechnicalSkills)

	assert.Nil(t, DetailsFromPosting(types.JobPosting{}).Requirements.Experience)
}

func TestBuildExtraction(t *testing.T) {
	text := "Desenvolvedor Go Sênior\nEmpresa: Acme\nTrabalho remoto\nRequisitos:\n- Go\n- Docker\nBenefícios:\n- VR"
	posting := ExtractJobFromHTML(text, "https://acme.com/jobs/1")
	ext := BuildExtraction(posting, NewSource(posting.URL, time.Now()), DefaultConfidenceWeights())

	assert.Equal(t, "Desenvolvedor Go Sênior", ext.Job.Title)
	assert.Equal(t, "Acme", ext.Job.Company.Name)
	assert.Equal(t, types.SenioritySenior, ext.Job.Seniority)
	assert.Equal(t, types.WorkModelRemoto, ext.Job.Company.WorkModel)
	assert.Equal(t, "acme.com", ext.Source.Domain)
	assert.Equal(t, posting.Description, ext.Summary)
	assert.Equal(t, DefaultLanguage, ext.Metadata.Language)
	assert.Greater(t, ext.Metadata.Confidence, 0.0)
	assert.LessOrEqual(t, ext.Metadata.Confidence, 1.0)
	assert.Contains(t, ext.Metadata.MissingFields, "area")
	assert.NotContains(t, ext.Metadata.MissingFields, "titulo")

	flat := ext.Posting()
	assert.Equal(t, posting.Title, flat.Title)
	assert.Equal(t, posting.Skills, flat.Skills)
	assert.Equal(t, []string{"Go; Docker"}, flat.Requirements)
}

func TestCompleteExtraction_FillsGaps(t *testing.T) {
	ext := &types.JobExtraction{
		Job: types.JobDetails{
			Seniority: "Sênior",
			Company:   types.CompanyInfo{WorkModel: "Home Office"},
		},
	}
	CompleteExtraction(ext, DefaultConfidenceWeights())

	assert.Equal(t, types.PlaceholderJobTitle, ext.Job.Title)
	assert.Equal(t, types.PlaceholderCompany, ext.Job.Company.Name)
	assert.Equal(t, types.SenioritySenior, ext.Job.Seniority)
	assert.Equal(t, types.WorkModelRemoto, ext.Job.Company.WorkModel)
	assert.Equal(t, "", ext.Summary)
	assert.Equal(t, DefaultLanguage, ext.Metadata.Language)
	// Placeholders do not count toward confidence.
	assert.Contains(t, ext.Metadata.MissingFields, "titulo")
	assert.Contains(t, ext.Metadata.MissingFields, "empresa.nome")
	assert.InDelta(t, 0.11, ext.Metadata.Confidence, 1e-9)
}

func TestCompleteExtraction_KeepsProducerMetadata(t *testing.T) {
	ext := &types.JobExtraction{
		Job:     types.JobDetails{Title: "Dev", Company: types.CompanyInfo{Name: "Acme"}},
		Summary: "  resumo pronto  ",
		Metadata: types.ExtractionMetadata{
			Language:      "en",
			Confidence:    0.87,
			MissingFields: []string{"beneficios"},
		},
	}
	CompleteExtraction(ext, DefaultConfidenceWeights())

	assert.Equal(t, "resumo pronto", ext.Summary)
	assert.Equal(t, "en", ext.Metadata.Language)
	assert.Equal(t, 0.87, ext.Metadata.Confidence)
	assert.Equal(t, []string{"beneficios"}, ext.Metadata.MissingFields)
}

func TestCompleteExtraction_ReplacesOutOfRangeConfidence(t *testing.T) {
	ext := &types.JobExtraction{
		Job:      types.JobDetails{Title: "Dev", Company: types.CompanyInfo{Name: "Acme"}},
		Metadata: types.ExtractionMetadata{Confidence: 7},
	}
	CompleteExtraction(ext, DefaultConfidenceWeights())

	assert.InDelta(t, 0.44, ext.Metadata.Confidence, 1e-9)
}

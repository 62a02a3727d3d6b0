// Package types provides type definitions for structured data used throughout the resume-optimizer system.
package types

import (
	"encoding/json"
	"time"
)

// Placeholders used when a job field could not be extracted.
const (
	PlaceholderJobTitle = "Vaga de Emprego"
	PlaceholderCompany  = "Empresa"
)

// Seniority is the seniority tier of a job posting. The zero value means unknown.
type Seniority string

// Seniority tiers
const (
	SeniorityUnknown      Seniority = ""
	SeniorityJunior       Seniority = "junior"
	SeniorityPleno        Seniority = "pleno"
	SenioritySenior       Seniority = "senior"
	SeniorityEspecialista Seniority = "especialista"
)

// MarshalJSON encodes the unknown tier as null.
func (s Seniority) MarshalJSON() ([]byte, error) {
	if s == SeniorityUnknown {
		return []byte("null"), nil
	}
	return json.Marshal(string(s))
}

// WorkModel is the work arrangement of a job posting. The zero value means unknown.
type WorkModel string

// Work models
const (
	WorkModelUnknown    WorkModel = ""
	WorkModelPresencial WorkModel = "presencial"
	WorkModelHibrido    WorkModel = "hibrido"
	WorkModelRemoto     WorkModel = "remoto"
)

// MarshalJSON encodes the unknown model as null.
func (m WorkModel) MarshalJSON() ([]byte, error) {
	if m == WorkModelUnknown {
		return []byte("null"), nil
	}
	return json.Marshal(string(m))
}

// JobPosting is the flat job record produced by extraction and consumed by scoring and rendering.
type JobPosting struct {
	Title        string    `json:"title"`
	Company      string    `json:"company"`
	Description  string    `json:"description"`
	Requirements []string  `json:"requirements"`
	Skills       []string  `json:"skills"`
	Seniority    Seniority `json:"seniority"`
	WorkModel    WorkModel `json:"work_model"`
	URL          string    `json:"url,omitempty"`
}

// CompanyInfo describes the hiring company inside JobDetails.
type CompanyInfo struct {
	Name         string    `json:"nome"`
	Description  *string   `json:"descricao_curta"`
	Workplace    *string   `json:"local_trabalho"`
	WorkModel    WorkModel `json:"modelo_trabalho"`
	TimeInMarket *string   `json:"tempo_de_mercado"`
	Recognitions []string  `json:"selo_cultural_reconhecimentos"`
}

// RequirementSet groups the requirements of a detailed job record.
type RequirementSet struct {
	Education        []string `json:"formacao"`
	Experience       *string  `json:"experiencia"`
	BehavioralSkills []string `json:"competencias_comportamentais"`
	TechnicalSkills  []string `json:"competencias_tecnicas"`
	NiceToHave       []string `json:"diferenciais"`
}

// JobDetails is the detailed job record extracted from a job page.
// JSON keys are the field names reported in ConfidenceReport.MissingFields.
type JobDetails struct {
	Title            string         `json:"titulo"`
	Seniority        Seniority      `json:"senioridade"`
	Area             *string        `json:"area"`
	Company          CompanyInfo    `json:"empresa"`
	Location         *string        `json:"localizacao"`
	ContractType     *string        `json:"tipo_contrato"`
	Workload         *string        `json:"carga_horaria"`
	SalaryRange      *string        `json:"salario_faixa"`
	Benefits         []string       `json:"beneficios"`
	Responsibilities []string       `json:"responsabilidades"`
	Requirements     RequirementSet `json:"requisitos"`
	SelectionSteps   []string       `json:"processo_seletivo_etapas"`
	PublishedAt      *string        `json:"data_publicacao"`
	ClosesAt         *string        `json:"data_encerramento"`
}

// Source records where a job page was captured from.
type Source struct {
	URL        string    `json:"url"`
	Domain     string    `json:"dominio"`
	CapturedAt time.Time `json:"capturado_em"`
}

// ExtractionMetadata carries quality information about an extraction.
type ExtractionMetadata struct {
	Language      string   `json:"lingua_detectada"`
	Confidence    float64  `json:"confianca_extracao"`
	MissingFields []string `json:"campos_ausentes"`
}

// JobExtraction is the full result of extracting a job page.
type JobExtraction struct {
	Source   Source             `json:"fonte"`
	Job      JobDetails         `json:"vaga"`
	Summary  string             `json:"resumo_curto"`
	Metadata ExtractionMetadata `json:"metadados"`
}

// Posting flattens the extraction into a JobPosting.
func (e *JobExtraction) Posting() JobPosting {
	var requirements []string
	requirements = append(requirements, e.Job.Requirements.Education...)
	if e.Job.Requirements.Experience != nil {
		requirements = append(requirements, *e.Job.Requirements.Experience)
	}
	requirements = append(requirements, e.Job.Requirements.BehavioralSkills...)

	return JobPosting{
		Title:        e.Job.Title,
		Company:      e.Job.Company.Name,
		Description:  e.Summary,
		Requirements: requirements,
		Skills:       append([]string(nil), e.Job.Requirements.TechnicalSkills...),
		Seniority:    e.Job.Seniority,
		WorkModel:    e.Job.Company.WorkModel,
		URL:          e.Source.URL,
	}
}

// ConfidenceReport is the output of the job confidence scorer.
type ConfidenceReport struct {
	Score         float64  `json:"score"`
	MissingFields []string `json:"missing_fields"`
}

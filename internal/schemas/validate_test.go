package schemas

import (
	"errors"
	"testing"

	embedded "github.com/jonathan/resume-optimizer/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_EmbeddedSchemas(t *testing.T) {
	tests := []struct {
		name      string
		schema    string
		json      string
		wantError bool
	}{
		{
			name:   "valid job posting",
			schema: embedded.JobPosting,
			json:   `{"title": "Dev Go", "company": "Acme", "requirements": ["3 anos"], "skills": ["Go"], "seniority": null, "work_model": "remoto"}`,
		},
		{
			name:      "job posting without skills",
			schema:    embedded.JobPosting,
			json:      `{"title": "Dev Go", "requirements": []}`,
			wantError: true,
		},
		{
			name:   "valid job extraction",
			schema: embedded.JobExtraction,
			json: `{"vaga": {"titulo": "Dev", "empresa": {"nome": "Acme", "modelo_trabalho": null},
				"requisitos": {"experiencia": "2 anos", "competencias_tecnicas": ["Go"]}},
				"metadados": {"confianca_extracao": 0.8, "campos_ausentes": []}}`,
		},
		{
			name:      "job extraction with array experience",
			schema:    embedded.JobExtraction,
			json:      `{"vaga": {"titulo": "Dev", "empresa": {"nome": "Acme"}, "requisitos": {"experiencia": ["2 anos"]}}}`,
			wantError: true,
		},
		{
			name:   "profile with nulls",
			schema: embedded.ResumeProfile,
			json:   `{"full_name": "Ana", "email": null, "skills": null, "projects": ["App"]}`,
		},
		{
			name:      "profile with numeric phone",
			schema:    embedded.ResumeProfile,
			json:      `{"phone": 11999999999}`,
			wantError: true,
		},
		{
			name:   "valid compatibility",
			schema: embedded.Compatibility,
			json:   `{"score": 72, "strengths": ["a"], "weaknesses": [], "improvements": ["b"]}`,
		},
		{
			name:      "compatibility with string score",
			schema:    embedded.Compatibility,
			json:      `{"score": "72", "strengths": [], "weaknesses": [], "improvements": []}`,
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.schema, tt.json)
			if !tt.wantError {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "expected ValidationError, got %T", err)
			assert.Equal(t, tt.schema, verr.Schema)
			assert.NotEmpty(t, verr.Errors)
		})
	}
}

func TestValidate_UnknownSchema(t *testing.T) {
	err := Validate("missing.schema.json", `{}`)
	require.Error(t, err)

	var loadErr *SchemaLoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Contains(t, err.Error(), "schema not found")
}

func TestValidate_MalformedDocument(t *testing.T) {
	err := Validate(embedded.Compatibility, `{ invalid json }`)
	require.Error(t, err)

	var loadErr *SchemaLoadError
	assert.True(t, errors.As(err, &loadErr))
}

func TestValidateJSONString_Valid(t *testing.T) {
	schemaContent := `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"required": ["name"],
		"properties": {
			"name": {"type": "string"}
		}
	}`

	assert.NoError(t, ValidateJSONString(schemaContent, `{"name": "test"}`))
}

func TestValidateJSONString_NestedField(t *testing.T) {
	schemaContent := `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"required": ["person"],
		"properties": {
			"person": {
				"type": "object",
				"required": ["name"],
				"properties": {
					"name": {"type": "string"}
				}
			}
		}
	}`

	err := ValidateJSONString(schemaContent, `{"person": {}}`)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	require.NotEmpty(t, validationErr.Errors)
	assert.Equal(t, "person", validationErr.Errors[0].Field)
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Schema: "compatibility.schema.json",
		Errors: []FieldError{
			{Field: "score", Message: "is required"},
			{Field: "strengths", Message: "must be an array"},
		},
	}

	msg := err.Error()
	assert.Contains(t, msg, "validation against compatibility.schema.json failed")
	assert.Contains(t, msg, "1. score: is required")
	assert.Contains(t, msg, "2. strengths: must be an array")
}

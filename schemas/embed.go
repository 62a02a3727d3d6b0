// Package schemas embeds the JSON Schemas that LLM output is validated against.
package schemas

import "embed"

// FS holds every *.schema.json file in this directory.
//
//go:embed *.schema.json
var FS embed.FS

// Schema file names.
const (
	JobPosting    = "job_posting.schema.json"
	JobExtraction = "job_extraction.schema.json"
	ResumeProfile = "resume_profile.schema.json"
	Compatibility = "compatibility.schema.json"
)

// Names lists every embedded schema.
var Names = []string{JobPosting, JobExtraction, ResumeProfile, Compatibility}

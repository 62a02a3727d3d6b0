package server

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/jonathan/resume-optimizer/internal/db"
	"github.com/jonathan/resume-optimizer/internal/pipeline"
	"github.com/jonathan/resume-optimizer/internal/server/middleware"
	"github.com/jonathan/resume-optimizer/internal/types"
)

// ListJobPostingsResponse represents the response for listing job postings
type ListJobPostingsResponse struct {
	Postings []db.JobPosting `json:"postings"`
	Count    int             `json:"count"`
}

// authUserID returns the authenticated user, writing a 401 when absent.
func authUserID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return uuid.Nil, false
	}
	return userID, true
}

// handleCreateJob extracts and stores a job posting from a link or pasted text.
func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	userID, ok := authUserID(w, r)
	if !ok {
		return
	}
	var req types.ParseJobRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := pipeline.ParseJob(r.Context(), s.strategy, s.runOptions(req.Text, req.URL, ""))
	if err != nil {
		errorFrom(w, r, err)
		return
	}

	posting := &db.JobPosting{
		UserID:      userID,
		URL:         req.URL,
		SourceText:  result.Page.Text,
		ContentHash: result.Page.Hash,
		Posting:     result.Job,
		Extraction:  result.Extraction,
	}
	if err := s.store.SaveJobPosting(r.Context(), posting); err != nil {
		errorFrom(w, r, err)
		return
	}
	jsonResponse(w, http.StatusCreated, posting)
}

// handleListJobs lists the caller's job postings, newest first
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	userID, ok := authUserID(w, r)
	if !ok {
		return
	}
	postings, err := s.store.ListJobPostings(r.Context(), userID)
	if err != nil {
		errorFrom(w, r, err)
		return
	}
	if postings == nil {
		postings = []db.JobPosting{}
	}
	jsonResponse(w, http.StatusOK, ListJobPostingsResponse{Postings: postings, Count: len(postings)})
}

// handleGetJob retrieves one of the caller's job postings
func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	userID, ok := authUserID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "job posting")
	if err != nil {
		errorFrom(w, r, err)
		return
	}

	posting, err := s.store.GetJobPosting(r.Context(), userID, id)
	if err != nil {
		errorFrom(w, r, err)
		return
	}
	if posting == nil {
		errorFrom(w, r, &ErrNotFound{Resource: "job posting", ID: id})
		return
	}
	jsonResponse(w, http.StatusOK, posting)
}

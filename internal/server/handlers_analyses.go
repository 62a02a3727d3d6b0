package server

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/jonathan/resume-optimizer/internal/db"
	"github.com/jonathan/resume-optimizer/internal/ranking"
	"github.com/jonathan/resume-optimizer/internal/strategy"
	"github.com/jonathan/resume-optimizer/internal/types"
)

// DownloadFileName is the attachment name of a downloaded optimized résumé.
const DownloadFileName = "curriculo-otimizado.txt"

// ListAnalysesResponse represents the response for listing analyses
type ListAnalysesResponse struct {
	Analyses []db.Analysis `json:"analyses"`
	Count    int           `json:"count"`
}

// ListOptimizedResumesResponse represents the response for listing optimized résumés
type ListOptimizedResumesResponse struct {
	OptimizedResumes []db.OptimizedResume `json:"optimized_resumes"`
	Count            int                  `json:"count"`
}

// loadResumeAndJob fetches a résumé and a job posting owned by userID.
func (s *Server) loadResumeAndJob(ctx context.Context, userID, resumeID, jobID uuid.UUID) (*db.Resume, *db.JobPosting, error) {
	resume, err := s.store.GetResume(ctx, userID, resumeID)
	if err != nil {
		return nil, nil, err
	}
	if resume == nil {
		return nil, nil, &ErrNotFound{Resource: "resume", ID: resumeID}
	}

	job, err := s.store.GetJobPosting(ctx, userID, jobID)
	if err != nil {
		return nil, nil, err
	}
	if job == nil {
		return nil, nil, &ErrNotFound{Resource: "job posting", ID: jobID}
	}
	return resume, job, nil
}

// handleCreateAnalysis scores a stored résumé against a stored job posting.
func (s *Server) handleCreateAnalysis(w http.ResponseWriter, r *http.Request) {
	userID, ok := authUserID(w, r)
	if !ok {
		return
	}
	var req types.CreateAnalysisRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	ctx := r.Context()
	resume, job, err := s.loadResumeAndJob(ctx, userID, req.ResumeID, req.JobID)
	if err != nil {
		errorFrom(w, r, err)
		return
	}

	assessment, err := s.strategy.AssessCompatibility(ctx, resume.Text, ranking.JobInputFrom(job.Posting))
	if err != nil {
		errorFrom(w, r, err)
		return
	}

	analysis := &db.Analysis{
		UserID:     userID,
		ResumeID:   resume.ID,
		JobID:      job.ID,
		Assessment: assessment,
	}
	if err := s.store.SaveAnalysis(ctx, analysis); err != nil {
		errorFrom(w, r, err)
		return
	}
	jsonResponse(w, http.StatusCreated, analysis)
}

// handleListAnalyses lists the caller's analyses, newest first
func (s *Server) handleListAnalyses(w http.ResponseWriter, r *http.Request) {
	userID, ok := authUserID(w, r)
	if !ok {
		return
	}
	analyses, err := s.store.ListAnalyses(r.Context(), userID)
	if err != nil {
		errorFrom(w, r, err)
		return
	}
	if analyses == nil {
		analyses = []db.Analysis{}
	}
	jsonResponse(w, http.StatusOK, ListAnalysesResponse{Analyses: analyses, Count: len(analyses)})
}

// handleGetAnalysis retrieves one of the caller's analyses
func (s *Server) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	userID, ok := authUserID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "analysis")
	if err != nil {
		errorFrom(w, r, err)
		return
	}

	analysis, err := s.store.GetAnalysis(r.Context(), userID, id)
	if err != nil {
		errorFrom(w, r, err)
		return
	}
	if analysis == nil {
		errorFrom(w, r, &ErrNotFound{Resource: "analysis", ID: id})
		return
	}
	jsonResponse(w, http.StatusOK, analysis)
}

// handleCreateOptimizedResume renders and stores an optimized résumé for an
// analysis. The résumé's own profile is used, else the caller's stored one.
func (s *Server) handleCreateOptimizedResume(w http.ResponseWriter, r *http.Request) {
	userID, ok := authUserID(w, r)
	if !ok {
		return
	}
	var req types.CreateOptimizedResumeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	ctx := r.Context()
	analysis, err := s.store.GetAnalysis(ctx, userID, req.AnalysisID)
	if err != nil {
		errorFrom(w, r, err)
		return
	}
	if analysis == nil {
		errorFrom(w, r, &ErrNotFound{Resource: "analysis", ID: req.AnalysisID})
		return
	}

	resume, job, err := s.loadResumeAndJob(ctx, userID, analysis.ResumeID, analysis.JobID)
	if err != nil {
		errorFrom(w, r, err)
		return
	}

	p := resume.Profile
	if p == nil {
		stored, err := s.store.GetUserProfile(ctx, userID)
		if err != nil {
			errorFrom(w, r, err)
			return
		}
		if stored != nil {
			p = &stored.Profile
		}
	}

	doc, err := s.strategy.OptimizeResume(ctx, strategy.OptimizeInput{
		ResumeText: resume.Text,
		Profile:    p,
		Job:        job.Posting,
		Assessment: analysis.Assessment,
	})
	if err != nil {
		errorFrom(w, r, err)
		return
	}

	optimized := &db.OptimizedResume{
		UserID:       userID,
		AnalysisID:   &analysis.ID,
		JobID:        &job.ID,
		Content:      doc.Content,
		Improvements: doc.Improvements,
	}
	if err := s.store.SaveOptimizedResume(ctx, optimized); err != nil {
		errorFrom(w, r, err)
		return
	}
	jsonResponse(w, http.StatusCreated, optimized)
}

// handleListOptimizedResumes lists the caller's optimized résumés, newest first
func (s *Server) handleListOptimizedResumes(w http.ResponseWriter, r *http.Request) {
	userID, ok := authUserID(w, r)
	if !ok {
		return
	}
	docs, err := s.store.ListOptimizedResumes(r.Context(), userID)
	if err != nil {
		errorFrom(w, r, err)
		return
	}
	if docs == nil {
		docs = []db.OptimizedResume{}
	}
	jsonResponse(w, http.StatusOK, ListOptimizedResumesResponse{OptimizedResumes: docs, Count: len(docs)})
}

func (s *Server) getOptimizedResume(w http.ResponseWriter, r *http.Request) (*db.OptimizedResume, bool) {
	userID, ok := authUserID(w, r)
	if !ok {
		return nil, false
	}
	id, err := pathID(r, "optimized resume")
	if err != nil {
		errorFrom(w, r, err)
		return nil, false
	}

	doc, err := s.store.GetOptimizedResume(r.Context(), userID, id)
	if err != nil {
		errorFrom(w, r, err)
		return nil, false
	}
	if doc == nil {
		errorFrom(w, r, &ErrNotFound{Resource: "optimized resume", ID: id})
		return nil, false
	}
	return doc, true
}

// handleGetOptimizedResume retrieves one of the caller's optimized résumés
func (s *Server) handleGetOptimizedResume(w http.ResponseWriter, r *http.Request) {
	if doc, ok := s.getOptimizedResume(w, r); ok {
		jsonResponse(w, http.StatusOK, doc)
	}
}

// handleDownloadOptimizedResume serves an optimized résumé as a text attachment
func (s *Server) handleDownloadOptimizedResume(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.getOptimizedResume(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+DownloadFileName+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(doc.Content)); err != nil {
		s.logger.Error("failed to write download", "id", doc.ID, "error", err)
	}
}

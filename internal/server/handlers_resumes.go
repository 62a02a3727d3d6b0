package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/google/uuid"
	"github.com/jonathan/resume-optimizer/internal/db"
	"github.com/jonathan/resume-optimizer/internal/ingestion"
	"github.com/jonathan/resume-optimizer/internal/profile"
	"github.com/jonathan/resume-optimizer/internal/types"
)

// resumeFormField is the multipart field carrying the résumé file.
const resumeFormField = "file"

// CreateResumeResponse is returned by POST /resumes.
type CreateResumeResponse struct {
	Resume         *db.Resume `json:"resume"`
	ProfileUpdated bool       `json:"profile_updated"`
}

// ListResumesResponse represents the response for listing résumés
type ListResumesResponse struct {
	Resumes []db.Resume `json:"resumes"`
	Count   int         `json:"count"`
}

// handleCreateResume stores an uploaded résumé, extracts its profile and
// refreshes the caller's stored profile when that profile is incomplete.
// The body is either a multipart upload or a CreateResumeRequest.
func (s *Server) handleCreateResume(w http.ResponseWriter, r *http.Request) {
	userID, ok := authUserID(w, r)
	if !ok {
		return
	}

	fileName, text, err := readResumeUpload(w, r)
	if err != nil {
		errorFrom(w, r, err)
		return
	}

	ctx := r.Context()
	extracted, err := s.strategy.ExtractProfile(ctx, text)
	if err != nil {
		errorFrom(w, r, err)
		return
	}

	resume := &db.Resume{UserID: userID, FileName: fileName, Text: text, Profile: extracted}
	if err := s.store.SaveResume(ctx, resume); err != nil {
		errorFrom(w, r, err)
		return
	}

	updated, err := s.refreshProfile(ctx, userID, extracted)
	if err != nil {
		errorFrom(w, r, err)
		return
	}
	jsonResponse(w, http.StatusCreated, CreateResumeResponse{Resume: resume, ProfileUpdated: updated})
}

// refreshProfile replaces an incomplete stored profile with the fresh
// extraction, keeping stored values the extraction lacks.
func (s *Server) refreshProfile(ctx context.Context, userID uuid.UUID, fresh *types.ResumeProfile) (bool, error) {
	if fresh == nil {
		return false, nil
	}
	stored, err := s.store.GetUserProfile(ctx, userID)
	if err != nil {
		return false, err
	}

	var existing *types.ResumeProfile
	if stored != nil {
		existing = &stored.Profile
	}
	if !profile.IsIncomplete(existing) {
		return false, nil
	}

	if _, err := s.store.SaveUserProfile(ctx, userID, profile.Merge(fresh, existing)); err != nil {
		return false, err
	}
	s.logger.Info("user profile refreshed from resume", "user_id", userID)
	return true, nil
}

// readResumeUpload returns the file name and text of an uploaded résumé.
func readResumeUpload(w http.ResponseWriter, r *http.Request) (string, string, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		var req types.CreateResumeRequest
		if err := decodeJSON(w, r, &req); err != nil {
			return "", "", err
		}
		if err := validateRequest(&req); err != nil {
			return "", "", err
		}
		return req.FileName, ingestion.CleanText(req.Text), nil
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	file, header, err := r.FormFile(resumeFormField)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return "", "", &ErrValidation{Field: resumeFormField, Message: fmt.Sprintf("upload exceeds %d bytes", maxErr.Limit)}
		}
		return "", "", &ErrValidation{Field: resumeFormField, Message: "missing résumé file"}
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(io.LimitReader(file, ingestion.MaxResumeBytes+1))
	if err != nil {
		return "", "", fmt.Errorf("failed to read upload: %w", err)
	}

	text, err := ingestion.ResumeText(header.Filename, data)
	if err != nil {
		if errors.Is(err, ingestion.ErrUnsupportedFile) {
			return "", "", err
		}
		return "", "", &ErrValidation{Field: resumeFormField, Message: err.Error()}
	}
	return header.Filename, text, nil
}

// handleListResumes lists the caller's résumés, newest first
func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	userID, ok := authUserID(w, r)
	if !ok {
		return
	}
	resumes, err := s.store.ListResumes(r.Context(), userID)
	if err != nil {
		errorFrom(w, r, err)
		return
	}
	if resumes == nil {
		resumes = []db.Resume{}
	}
	jsonResponse(w, http.StatusOK, ListResumesResponse{Resumes: resumes, Count: len(resumes)})
}

// handleGetResume retrieves one of the caller's résumés
func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	userID, ok := authUserID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "resume")
	if err != nil {
		errorFrom(w, r, err)
		return
	}

	resume, err := s.store.GetResume(r.Context(), userID, id)
	if err != nil {
		errorFrom(w, r, err)
		return
	}
	if resume == nil {
		errorFrom(w, r, &ErrNotFound{Resource: "resume", ID: id})
		return
	}
	jsonResponse(w, http.StatusOK, resume)
}

// handleGetProfile returns the caller's stored profile
func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := authUserID(w, r)
	if !ok {
		return
	}
	stored, err := s.store.GetUserProfile(r.Context(), userID)
	if err != nil {
		errorFrom(w, r, err)
		return
	}
	if stored == nil {
		errorFrom(w, r, &ErrNotFound{Resource: "profile", ID: userID})
		return
	}
	jsonResponse(w, http.StatusOK, stored)
}

// handleUpdateProfile replaces the caller's stored profile
func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := authUserID(w, r)
	if !ok {
		return
	}
	var p types.ResumeProfile
	if err := decodeJSON(w, r, &p); err != nil {
		errorFrom(w, r, err)
		return
	}

	stored, err := s.store.SaveUserProfile(r.Context(), userID, profile.Normalize(&p))
	if err != nil {
		errorFrom(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, stored)
}

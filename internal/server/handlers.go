package server

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/luillyfe/resume-insights/internal/logger"
	"github.com/luillyfe/resume-insights/internal/types"
)

// maxUploadBytes caps the accepted resume size.
const maxUploadBytes = 10 << 20

// ResumeResponse represents a resume session and its extracted profile
type ResumeResponse struct {
	ID        string           `json:"id"`
	Candidate *types.Candidate `json:"candidate"`
}

// MatchRequest represents the request body for /api/v1/resumes/{id}/match
type MatchRequest struct {
	JobPosition string `json:"job_position"`
	Company     string `json:"company"`
	PostingURL  string `json:"posting_url,omitempty"`
}

// MatchResponse represents the response for /api/v1/resumes/{id}/match
type MatchResponse struct {
	ID    string          `json:"id"`
	Match *types.JobSkill `json:"match"`
}

// handleUploadResume accepts a resume PDF, runs the full extraction and
// registers a session holding the candidate and its query engine
func (s *Server) handleUploadResume(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, header, err := r.FormFile("resume")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Multipart field 'resume' is required: "+err.Error())
		return
	}
	defer file.Close()

	if !strings.EqualFold(filepath.Ext(header.Filename), ".pdf") {
		s.errorResponse(w, http.StatusBadRequest, "Only PDF resumes are supported")
		return
	}

	// Extraction issues a burst of model calls; refuse beyond the
	// configured concurrency rather than queueing uploads.
	if !s.extractionSlots.TryAcquire(1) {
		s.errorResponse(w, http.StatusServiceUnavailable, "Server is at extraction capacity, try again shortly")
		return
	}
	defer s.extractionSlots.Release(1)

	tmpPath, err := saveUpload(file, header.Filename)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to store upload: "+err.Error())
		return
	}
	defer os.Remove(tmpPath)

	svc, err := s.newService(r.Context(), s.cfg, tmpPath, s.logger)
	if err != nil {
		s.logger.Error("building query engine", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "Failed to index resume: "+err.Error())
		return
	}

	candidate, err := svc.ExtractCandidateData(r.Context())
	if err != nil {
		_ = svc.Close()
		s.logger.Error("extracting candidate", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "Failed to extract candidate data: "+err.Error())
		return
	}

	sess := &session{
		ID:        uuid.NewString(),
		Candidate: candidate,
		service:   svc,
	}
	s.sessions.Put(sess)

	s.logger.Info("resume session created",
		zap.String("session_id", sess.ID),
		zap.String("file", logger.Truncate(header.Filename, 80)),
		zap.Int("skills", len(candidate.Skills)),
	)

	s.jsonResponse(w, http.StatusCreated, ResumeResponse{ID: sess.ID, Candidate: candidate})
}

// handleGetResume returns the cached candidate for a session
func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		s.errorResponse(w, http.StatusBadRequest, "Resume ID is required")
		return
	}

	sess, ok := s.sessions.Get(id)
	if !ok {
		s.errorResponse(w, http.StatusNotFound, "Resume session not found or expired")
		return
	}

	s.jsonResponse(w, http.StatusOK, ResumeResponse{ID: sess.ID, Candidate: sess.Candidate})
}

// handleDeleteResume ends a session early and releases its engine
func (s *Server) handleDeleteResume(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		s.errorResponse(w, http.StatusBadRequest, "Resume ID is required")
		return
	}

	if !s.sessions.Delete(id) {
		s.errorResponse(w, http.StatusNotFound, "Resume session not found or expired")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// handleMatchJob rates the session's extracted skills against a job,
// optionally enriched with a fetched posting
func (s *Server) handleMatchJob(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		s.errorResponse(w, http.StatusBadRequest, "Resume ID is required")
		return
	}

	var req MatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.JobPosition == "" || req.Company == "" {
		s.errorResponse(w, http.StatusBadRequest, "Both job_position and company are required")
		return
	}

	sess, ok := s.sessions.Get(id)
	if !ok {
		s.errorResponse(w, http.StatusNotFound, "Resume session not found or expired")
		return
	}

	skillNames := make([]string, 0, len(sess.Candidate.Skills))
	for name := range sess.Candidate.Skills {
		skillNames = append(skillNames, name)
	}
	sort.Strings(skillNames)
	if len(skillNames) == 0 {
		s.errorResponse(w, http.StatusBadRequest, "Resume session has no extracted skills to match")
		return
	}

	postingText := ""
	if req.PostingURL != "" {
		posting, err := s.fetcher.Fetch(r.Context(), req.PostingURL)
		if err != nil {
			s.logger.Error("fetching job posting", zap.String("url", req.PostingURL), zap.Error(err))
			s.errorResponse(w, http.StatusBadGateway, "Failed to fetch job posting: "+err.Error())
			return
		}
		postingText = posting.Text
	}

	match, err := sess.service.MatchJobToSkillsWithPosting(r.Context(), skillNames, req.JobPosition, req.Company, postingText)
	if err != nil {
		s.logger.Error("matching job to skills", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "Failed to match job to skills: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, MatchResponse{ID: sess.ID, Match: match})
}

// saveUpload copies the uploaded file to a temp path the PDF reader can open.
func saveUpload(file io.Reader, name string) (string, error) {
	tmp, err := os.CreateTemp("", "resume-*"+filepath.Ext(name))
	if err != nil {
		return "", err
	}
	defer tmp.Close()

	if _, err := io.Copy(tmp, file); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return tmp.Name(), nil
}

package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/veritium/veritium/internal/model"
	"github.com/veritium/veritium/internal/pipeline"
)

const defaultListLimit = 20

// Server exposes the assessment pipeline over HTTP
type Server struct {
	pipeline *pipeline.Pipeline
	logger   *zap.Logger
}

// NewServer creates an HTTP API server
func NewServer(p *pipeline.Pipeline, logger *zap.Logger) *Server {
	return &Server{
		pipeline: p,
		logger:   logger,
	}
}

// Router builds the chi routing tree
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Post("/documents", s.createDocument)
		r.Get("/documents", s.listDocuments)
		r.Get("/documents/{id}", s.getDocument)
		r.Get("/documents/{id}/assessments", s.listAssessments)
		r.Post("/assessments", s.createAssessment)
		r.Get("/assessments/{id}", s.getAssessment)
		r.Get("/assessments/{id}/explanation", s.getExplanation)
		r.Post("/assessments/{id}/feedback", s.submitFeedback)
		r.Get("/share/{shareID}", s.getSharedAssessment)
	})
	r.Get("/health", s.health)

	return r
}

type createDocumentRequest struct {
	Title    string   `json:"title"`
	Text     string   `json:"text"`
	URL      string   `json:"url"`
	Authors  []string `json:"authors"`
	Abstract string   `json:"abstract"`
	DOI      string   `json:"doi"`
}

// createDocument handles POST /api/documents. Either text or url must be
// provided; url wins when both are present.
func (s *Server) createDocument(w http.ResponseWriter, r *http.Request) {
	var req createDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	var doc *model.Document
	var err error
	switch {
	case req.URL != "":
		doc, err = s.pipeline.IngestURL(r.Context(), req.URL)
	case strings.TrimSpace(req.Text) != "":
		doc, err = s.pipeline.IngestText(r.Context(), req.Text, pipeline.DocumentMeta{
			Title:    req.Title,
			Authors:  req.Authors,
			Abstract: req.Abstract,
			DOI:      req.DOI,
		})
	default:
		writeError(w, http.StatusBadRequest, "either text or url is required")
		return
	}
	if err != nil {
		s.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, doc)
}

func (s *Server) getDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := s.pipeline.Store().GetDocument(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) listDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := s.pipeline.Store().ListDocuments(r.Context(), defaultListLimit)
	if err != nil {
		s.handleError(w, err)
		return
	}
	if docs == nil {
		docs = []*model.Document{}
	}
	writeJSON(w, http.StatusOK, docs)
}

func (s *Server) listAssessments(w http.ResponseWriter, r *http.Request) {
	documentID := chi.URLParam(r, "id")

	// 404 for unknown documents rather than an empty list
	if _, err := s.pipeline.Store().GetDocument(r.Context(), documentID); err != nil {
		s.handleError(w, err)
		return
	}

	assessments, err := s.pipeline.Store().ListAssessments(r.Context(), documentID)
	if err != nil {
		s.handleError(w, err)
		return
	}
	if assessments == nil {
		assessments = []*model.Assessment{}
	}
	writeJSON(w, http.StatusOK, assessments)
}

type createAssessmentRequest struct {
	DocumentID string `json:"document_id"`
	Claim      string `json:"claim"`
}

func (s *Server) createAssessment(w http.ResponseWriter, r *http.Request) {
	var req createAssessmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.DocumentID == "" {
		writeError(w, http.StatusBadRequest, "document_id is required")
		return
	}
	if strings.TrimSpace(req.Claim) == "" {
		writeError(w, http.StatusBadRequest, "claim is required")
		return
	}

	assessment, err := s.pipeline.Assess(r.Context(), req.DocumentID, req.Claim)
	if err != nil {
		s.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, assessment)
}

func (s *Server) getAssessment(w http.ResponseWriter, r *http.Request) {
	assessment, err := s.pipeline.Store().GetAssessment(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, assessment)
}

func (s *Server) getExplanation(w http.ResponseWriter, r *http.Request) {
	detailed, err := s.pipeline.ExplainAssessment(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detailed)
}

func (s *Server) getSharedAssessment(w http.ResponseWriter, r *http.Request) {
	assessment, err := s.pipeline.Store().GetAssessmentByShareID(r.Context(), chi.URLParam(r, "shareID"))
	if err != nil {
		s.handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, assessment)
}

type feedbackRequest struct {
	Score   int    `json:"score"`
	Comment string `json:"comment"`
}

func (s *Server) submitFeedback(w http.ResponseWriter, r *http.Request) {
	var req feedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	err := s.pipeline.Store().SubmitFeedback(r.Context(), chi.URLParam(r, "id"), req.Score, req.Comment)
	if err != nil {
		s.handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type errorResponse struct {
	Error string `json:"error"`
}

// handleError maps sentinel errors to HTTP statuses; anything unrecognized
// is a 500 with the detail kept out of the response.
func (s *Server) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrDocumentNotFound),
		errors.Is(err, model.ErrAssessmentNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, model.ErrInvalidFeedback):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		s.logger.Error("internal error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/jonathan/ats-scanner/internal/ingestion"
	"github.com/jonathan/ats-scanner/internal/keywords"
	"github.com/jonathan/ats-scanner/internal/skills"
	log "github.com/sirupsen/logrus"
)

// maxJSONBodyBytes bounds JSON request bodies.
const maxJSONBodyBytes = 4 << 20

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleTaxonomy returns the server's taxonomy in declaration order
func (s *Server) handleTaxonomy(w http.ResponseWriter, _ *http.Request) {
	t := s.extractor.Taxonomy()
	resp := TaxonomyResponse{Categories: make([]TaxonomyCategory, 0, len(t.CategoryNames()))}
	for _, c := range t.Categories() {
		resp.Categories = append(resp.Categories, TaxonomyCategory{
			Name:     c.Name,
			Weight:   t.Weight(c.Name),
			Keywords: c.Keywords,
		})
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleExtract scans one text
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req ExtractRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.failRequest(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.failRequest(w, r, err)
		return
	}

	extractor, err := s.extractorFor(req.Options)
	if err != nil {
		s.failRequest(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, extractor.Extract(req.Text))
}

// handleScan compares a document with a job description given inline or by URL
func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	var req ScanRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.failRequest(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.failRequest(w, r, err)
		return
	}

	extractor, err := s.extractorFor(req.Options)
	if err != nil {
		s.failRequest(w, r, err)
		return
	}

	job := req.JobDescription
	if req.JobURL != "" {
		job, _, err = ingestion.IngestFromURL(r.Context(), req.JobURL, ingestion.URLOptions{
			UseBrowser: s.useBrowser,
			Fetcher:    s.fetcher,
			Render:     s.render,
		})
		if err != nil {
			s.failRequest(w, r, err)
			return
		}
	}

	s.respondScan(w, r, extractor, req.Document, job, req.JobURL)
}

// handleScanUpload compares an uploaded resume file with a job description
// form field. The file is decoded by extension.
func (s *Server) handleScanUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		s.failRequest(w, r, &RequestError{Message: fmt.Sprintf("invalid multipart form: %v", err)})
		return
	}
	if r.MultipartForm != nil {
		defer func() { _ = r.MultipartForm.RemoveAll() }()
	}

	job := r.FormValue("job_description")
	if strings.TrimSpace(job) == "" {
		s.failRequest(w, r, &RequestError{Field: "job_description", Message: "is required"})
		return
	}

	file, header, err := r.FormFile("resume")
	if err != nil {
		s.failRequest(w, r, &RequestError{Field: "resume", Message: "file is required"})
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		s.failRequest(w, r, fmt.Errorf("failed to read upload: %w", err))
		return
	}

	text, format, err := ingestion.DecodeDocument(header.Filename, data)
	if err != nil {
		s.failRequest(w, r, err)
		return
	}
	requestLogger(r).WithFields(log.Fields{
		"file":   header.Filename,
		"format": format,
		"bytes":  len(data),
	}).Debug("decoded upload")

	s.respondScan(w, r, s.extractor, ingestion.CleanText(text), job, "")
}

func (s *Server) respondScan(w http.ResponseWriter, r *http.Request, extractor *keywords.Extractor, document, job, jobSource string) {
	comparison := extractor.Compare(document, job)
	targets, err := skills.BuildKeywordTargets(comparison, extractor.Taxonomy())
	if err != nil {
		s.failRequest(w, r, err)
		return
	}

	resp := ScanResponse{
		ScanID:    uuid.NewString(),
		JobSource: jobSource,
		Result:    comparison,
		Targets:   targets,
	}
	requestLogger(r).WithFields(log.Fields{
		"scan_id":          resp.ScanID,
		"match_percentage": comparison.MatchPercentage,
		"rating":           comparison.Rating,
	}).Info("scan completed")

	s.jsonResponse(w, http.StatusOK, resp)
}

// extractorFor returns the server's extractor, or a new one over the same
// taxonomy when the request carries its own options.
func (s *Server) extractorFor(opts *keywords.Options) (*keywords.Extractor, error) {
	if opts == nil {
		return s.extractor, nil
	}
	return keywords.NewExtractor(s.extractor.Taxonomy(), *opts)
}

// decodeJSON reads a size-limited JSON body into v, rejecting unknown fields
// and trailing data.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return &RequestError{Message: fmt.Sprintf("body exceeds %d bytes", maxErr.Limit)}
		}
		return &RequestError{Message: "invalid request body: " + err.Error()}
	}
	if dec.More() {
		return &RequestError{Message: "invalid request body: trailing data"}
	}
	return nil
}

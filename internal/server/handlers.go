package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/scholarform/applicant-parser/internal/acquire"
	"github.com/scholarform/applicant-parser/internal/quality"
)

// errorResponse is the generic error body.
type errorResponse struct {
	Error string `json:"error"`
}

// unusableTextResponse is the 422 body for documents no stage could read.
type unusableTextResponse struct {
	Error         string  `json:"error"`
	Message       string  `json:"message"`
	ParsingMethod string  `json:"parsingMethod"`
	OCRUsed       bool    `json:"ocrUsed"`
	OCRError      *string `json:"ocrError"`
}

type parseTextRequest struct {
	Text string `json:"text"`
}

type capabilitiesResponse struct {
	ServerName   string `json:"serverName"`
	Version      string `json:"version"`
	OCRAvailable bool   `json:"ocrAvailable"`
	Rasterizer   string `json:"rasterizer"`
	OCREngine    string `json:"ocrEngine"`
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCapabilities(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, capabilitiesResponse{
		ServerName:   s.cfg.ServerName,
		Version:      s.cfg.Version,
		OCRAvailable: s.ocrAvailable(),
		Rasterizer:   s.cfg.Pdftoppm,
		OCREngine:    s.cfg.Tesseract,
	})
}

// handleParse accepts a multipart document upload and runs the full
// acquisition + extraction pipeline over it.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	parseID := uuid.NewString()

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxFileSize)

	file, header, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "file_too_large"})
			return
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "file required"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.logger.Error("reading upload failed", "parse_id", parseID, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to parse"})
		return
	}

	doc := acquire.RawDocument{
		Data:      data,
		Filename:  header.Filename,
		MediaType: header.Header.Get("Content-Type"),
	}

	acquired, err := s.pipeline.FromDocument(r.Context(), doc)
	if err != nil {
		var unusable *acquire.UnusableTextError
		if errors.As(err, &unusable) {
			s.logger.Info("no usable text extracted",
				"parse_id", parseID, "filename", header.Filename,
				"method", unusable.Method, "ocr_attempted", unusable.OCRAttempted)
			writeJSON(w, http.StatusUnprocessableEntity, unusableTextResponse{
				Error: "no_text_extracted",
				Message: "Could not extract readable text from the uploaded file. " +
					"Please upload a searchable PDF (not a scanned image) or try a different file.",
				ParsingMethod: string(unusable.Method),
				OCRUsed:       unusable.OCRAttempted,
				OCRError:      optionalString(unusable.OCRError),
			})
			return
		}
		s.logger.Error("parse failed", "parse_id", parseID, "filename", header.Filename, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to parse"})
		return
	}

	result := s.engine.Extract(acquired.Content, string(acquired.Method))
	s.logger.Info("parsed document",
		"parse_id", parseID, "filename", header.Filename,
		"method", acquired.Method, "pages", acquired.Pages,
		"net_id", result.UWNetID)
	writeJSON(w, http.StatusOK, result)
}

// handleParseText runs the extraction heuristics over text the caller
// already extracted (e.g. a client-side PDF text layer reader).
func (s *Server) handleParseText(w http.ResponseWriter, r *http.Request) {
	var req parseTextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "text_required"})
		return
	}
	if len(strings.TrimSpace(req.Text)) < quality.MinPreExtractedLength {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "text_required"})
		return
	}

	acquired, err := s.pipeline.FromText(req.Text)
	if err != nil {
		var unusable *acquire.UnusableTextError
		if errors.As(err, &unusable) {
			writeJSON(w, http.StatusUnprocessableEntity, unusableTextResponse{
				Error:         "no_text_extracted",
				Message:       "The supplied text does not look like readable prose.",
				ParsingMethod: string(unusable.Method),
			})
			return
		}
		s.logger.Error("parse-text failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed"})
		return
	}

	result := s.engine.Extract(acquired.Content, string(acquired.Method))
	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

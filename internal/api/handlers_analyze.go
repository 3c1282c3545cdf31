package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/mharker/docrank/internal/parser"
	"github.com/mharker/docrank/internal/rank"
)

// handleAnalyze runs the persona-driven ranking synchronously over a
// multipart collection: one or more "files" parts plus "persona" and
// "job_to_be_done" form values.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes*10+10*1024*1024)

	if err := r.ParseMultipartForm(64 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	files := r.MultipartForm.File["files"]
	spec := rank.Spec{
		Persona:     r.FormValue("persona"),
		JobToBeDone: r.FormValue("job_to_be_done"),
	}
	for _, fh := range files {
		spec.Documents = append(spec.Documents, sanitizeFilename(fh.Filename))
	}
	if err := spec.Validate(); err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	tmpDir, err := os.MkdirTemp("", "docrank-analyze-*")
	if err != nil {
		jsonError(w, "failed to stage uploads", http.StatusInternalServerError)
		return
	}
	defer os.RemoveAll(tmpDir)

	for _, fh := range files {
		filename := sanitizeFilename(fh.Filename)
		if !parser.IsSupportedExtension(filename) {
			jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
			return
		}
		if err := s.stageUpload(fh, filepath.Join(tmpDir, filename)); err != nil {
			jsonError(w, fmt.Sprintf("failed to stage %s", filename), http.StatusInternalServerError)
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.ProcessTimeout)
	defer cancel()

	result, err := s.analyzer.AnalyzeCollection(ctx, tmpDir, spec)
	if err != nil {
		jsonError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

func (s *Server) stageUpload(fh *multipart.FileHeader, dst string) error {
	src, err := fh.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, io.LimitReader(src, s.cfg.MaxUploadBytes))
	return err
}

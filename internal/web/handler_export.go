package web

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type exportResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// handleExportAssets archives a workbook of the assets matching the list
// filters in the query string.
func (s *Server) handleExportAssets(w http.ResponseWriter, r *http.Request) {
	actor, _ := actorFromContext(r.Context())
	f, err := parseAssetFilter(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	key, err := s.exports.ArchiveAssetWorkbook(r.Context(), actor, f)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, exportResponse{Key: key, URL: "/exports/" + key})
}

func (s *Server) handleGetExport(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	rc, mimeType, err := s.exports.OpenArchive(r.Context(), key)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	defer closeWithLog(rc, "export file", s.logger)

	w.Header().Set("Content-Type", mimeType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", key))
	if _, err := io.Copy(w, rc); err != nil {
		s.logger.Warn("failed to stream export", "key", key, "error", err)
	}
}

func closeWithLog(c io.Closer, what string, logger *slog.Logger) {
	if err := c.Close(); err != nil {
		logger.Error("failed to close "+what, "error", err)
	}
}

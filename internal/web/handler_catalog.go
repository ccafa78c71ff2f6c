package web

import (
	"net/http"

	"github.com/vbonduro/assetreg/internal/domain"
)

type catalogRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleListCatalog(c domain.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := s.catalog.List(r.Context(), c)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		out := make([]catalogEntryResponse, 0, len(entries))
		for _, e := range entries {
			out = append(out, catalogEntryResponse{ID: e.ID, Name: e.Name, CreatedAt: e.CreatedAt})
		}
		writeData(w, http.StatusOK, out)
	}
}

func (s *Server) handleAddCatalog(c domain.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, _ := actorFromContext(r.Context())

		var req catalogRequest
		if err := decodeJSON(w, r, &req); err != nil {
			s.writeError(w, r, err)
			return
		}
		e, err := s.catalog.Add(r.Context(), actor, c, req.Name)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeData(w, http.StatusCreated, catalogEntryResponse{ID: e.ID, Name: e.Name, CreatedAt: e.CreatedAt})
	}
}

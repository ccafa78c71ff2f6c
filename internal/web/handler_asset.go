package web

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vbonduro/assetreg/internal/domain"
	"github.com/vbonduro/assetreg/internal/export"
)

const maxQRSize = 1024

func (s *Server) handleListAssets(w http.ResponseWriter, r *http.Request) {
	f, err := parseAssetFilter(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	assets, err := s.assets.ListAssets(r.Context(), f)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, newAssetResponses(assets))
}

func (s *Server) handleCreateAsset(w http.ResponseWriter, r *http.Request) {
	actor, _ := actorFromContext(r.Context())

	var req assetRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	in, err := req.toInput()
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	created, err := s.assets.CreateAsset(r.Context(), actor, in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Location", fmt.Sprintf("/assets/%d", created.Asset.ID))
	writeData(w, http.StatusCreated, createdAssetResponse{
		Asset:      newAssetResponse(created.Asset),
		FallbackID: created.FallbackID,
	})
}

func (s *Server) handleGetAsset(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	asOf, err := parseAsOf(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	v, err := s.assets.GetAsset(r.Context(), id, asOf)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, newAssetDetailResponse(v))
}

func (s *Server) handleUpdateAsset(w http.ResponseWriter, r *http.Request) {
	actor, _ := actorFromContext(r.Context())
	id, err := parseID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var req assetRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	in, err := req.toInput()
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	a, err := s.assets.UpdateAsset(r.Context(), actor, id, in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, newAssetResponse(a))
}

func (s *Server) handleDeleteAsset(w http.ResponseWriter, r *http.Request) {
	actor, _ := actorFromContext(r.Context())
	id, err := parseID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.assets.DeleteAsset(r.Context(), actor, id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAssetQR(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	size := export.DefaultQRSize
	if raw := r.URL.Query().Get("size"); raw != "" {
		size, err = strconv.Atoi(raw)
		if err != nil || size < 64 || size > maxQRSize {
			s.writeError(w, r, domain.NewValidationError("size", fmt.Sprintf("must be between 64 and %d", maxQRSize)))
			return
		}
	}

	v, err := s.assets.GetAsset(r.Context(), id, time.Time{})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	png, err := export.QRCode(v.Asset.ID, size)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	if _, err := w.Write(png); err != nil {
		s.logger.Warn("failed to write qr code", "id", id, "error", err)
	}
}

func (s *Server) handleAssetLabel(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	v, err := s.assets.GetAsset(r.Context(), id, time.Time{})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var buf bytes.Buffer
	if err := export.WriteLabel(&buf, v.Asset); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`inline; filename="asset_%d.pdf"`, id))
	if _, err := buf.WriteTo(w); err != nil {
		s.logger.Warn("failed to write label", "id", id, "error", err)
	}
}

func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	a, err := s.assets.ResolveTag(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, newAssetResponse(a))
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	asOf, err := parseAsOf(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if asOf.IsZero() {
		asOf = domain.Civil(s.now())
	}

	summary, err := s.assets.Dashboard(r.Context(), asOf)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, newDashboardResponse(asOf, summary))
}

// parseID extracts the {id} path variable and returns it as int64.
func parseID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		return 0, domain.NewValidationError("id", "must be a positive integer")
	}
	return id, nil
}

// parseAsOf reads the optional as_of query parameter. Absent means the zero
// time.
func parseAsOf(r *http.Request) (time.Time, error) {
	raw := r.URL.Query().Get("as_of")
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := domain.ParseDate(raw)
	if err != nil {
		return time.Time{}, domain.NewValidationError("as_of", "must be a date formatted YYYY-MM-DD")
	}
	return t, nil
}

func parseAssetFilter(r *http.Request) (domain.AssetFilter, error) {
	q := r.URL.Query()
	f := domain.AssetFilter{
		Category: q.Get("category"),
		Status:   q.Get("status"),
		Location: q.Get("location"),
		Query:    q.Get("q"),
	}
	if raw := q.Get("assigned"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return f, domain.NewValidationError("assigned", "must be a user id")
		}
		f.AssignedUserID = &id
	}
	return f, nil
}

package web

import (
	"net/http"
	"strconv"

	"github.com/vbonduro/assetreg/internal/domain"
	"github.com/vbonduro/assetreg/internal/service"
)

// userRequest creates a placeholder when Email is empty and a login account
// otherwise.
type userRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type accountRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	actor, _ := actorFromContext(r.Context())
	users, err := s.users.ListUsers(r.Context(), actor)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, newUserResponse(u))
	}
	writeData(w, http.StatusOK, out)
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	actor, _ := actorFromContext(r.Context())

	var req userRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	var (
		u   *domain.User
		err error
	)
	if req.Email == "" {
		u, err = s.users.CreatePlaceholder(r.Context(), actor, req.Name)
	} else {
		u, err = s.users.CreateAccount(r.Context(), actor, service.AccountInput{
			Name:     req.Name,
			Email:    req.Email,
			Password: req.Password,
			Role:     domain.Role(req.Role),
		})
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, newUserResponse(u))
}

func (s *Server) handleUpgradeUser(w http.ResponseWriter, r *http.Request) {
	actor, _ := actorFromContext(r.Context())
	id, err := parseID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var req accountRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	u, err := s.users.UpgradeToAccount(r.Context(), actor, id, service.AccountInput{
		Email:    req.Email,
		Password: req.Password,
		Role:     domain.Role(req.Role),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, newUserResponse(u))
}

func (s *Server) handleListLogs(w http.ResponseWriter, r *http.Request) {
	actor, _ := actorFromContext(r.Context())
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			s.writeError(w, r, domain.NewValidationError("limit", "must be a positive integer"))
			return
		}
		limit = n
	}

	entries, err := s.activity.Recent(r.Context(), actor, limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	out := make([]logEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, logEntryResponse{ID: e.ID, UserName: e.UserName, Action: e.Action, CreatedAt: e.CreatedAt})
	}
	writeData(w, http.StatusOK, out)
}

package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/jrsteele09/go-budget-console/internal/utils"
	"github.com/jrsteele09/go-budget-console/users"
	"github.com/rs/zerolog/log"
)

func (s *Server) ListUsersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := s.users.List()
		if err != nil {
			status, detail := statusFor(err)
			writeDetail(w, status, detail)
			return
		}
		profiles := make([]users.Profile, 0, len(list))
		for _, u := range list {
			profiles = append(profiles, u.Profile)
		}
		writeJSON(w, http.StatusOK, profiles)
	}
}

func (s *Server) CreateUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req users.CreateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeValidation(w, validationError{Loc: []string{"body"}, Msg: "invalid JSON body", Type: "json_invalid"})
			return
		}

		var missing []validationError
		if strings.TrimSpace(req.Username) == "" {
			missing = append(missing, fieldRequired("username"))
		}
		if req.Password == "" {
			missing = append(missing, fieldRequired("password"))
		}
		if len(missing) > 0 {
			writeValidation(w, missing...)
			return
		}

		role := users.RoleViewer
		if req.Role != "" {
			parsed, err := users.ParseRole(string(req.Role))
			if err != nil {
				writeValidation(w, validationError{Loc: []string{"body", "role"}, Msg: err.Error(), Type: "enum"})
				return
			}
			role = parsed
		}

		hash, err := users.HashPassword(req.Password)
		if err != nil {
			log.Err(err).Msg("Failed to hash password")
			writeDetail(w, http.StatusInternalServerError, "Internal Server Error")
			return
		}

		user := &users.User{
			Profile: users.Profile{
				Username:   strings.TrimSpace(req.Username),
				FullName:   req.FullName,
				Role:       role,
				Department: req.Department,
				IsActive:   true,
				CreatedAt:  nowStamp(),
			},
			PasswordHash: hash,
		}
		if err := s.users.Upsert(user); err != nil {
			status, detail := statusFor(err)
			writeDetail(w, status, detail)
			return
		}

		log.Info().Str("username", user.Username).Str("role", role.String()).Msg("User created")
		writeJSON(w, http.StatusOK, user.Profile)
	}
}

// UpdateUserHandler applies only the fields present in the request
func (s *Server) UpdateUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(r.PathValue("id"))
		if err != nil {
			writeValidation(w, validationError{Loc: []string{"path", "id"}, Msg: "id must be an integer", Type: "int_parsing"})
			return
		}

		var req users.UpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeValidation(w, validationError{Loc: []string{"body"}, Msg: "invalid JSON body", Type: "json_invalid"})
			return
		}

		existing, err := s.users.GetByID(id)
		if err != nil {
			status, detail := statusFor(err)
			writeDetail(w, status, detail)
			return
		}

		updated := *existing
		updated.Profile = *existing.Profile.Clone()
		if req.FullName != nil {
			updated.FullName = *req.FullName
		}
		if req.Role != nil {
			role, err := users.ParseRole(string(*req.Role))
			if err != nil {
				writeValidation(w, validationError{Loc: []string{"body", "role"}, Msg: err.Error(), Type: "enum"})
				return
			}
			updated.Role = role
		}
		if req.Department != nil {
			updated.Department = utils.Ptr(utils.Value(req.Department))
		}
		if req.IsActive != nil {
			updated.IsActive = *req.IsActive
		}

		if err := s.users.Upsert(&updated); err != nil {
			status, detail := statusFor(err)
			writeDetail(w, status, detail)
			return
		}
		writeJSON(w, http.StatusOK, updated.Profile)
	}
}

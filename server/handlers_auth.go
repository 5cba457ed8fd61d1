package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/jrsteele09/go-budget-console/internal/errors"
	"github.com/jrsteele09/go-budget-console/token"
	"github.com/jrsteele09/go-budget-console/users"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

const (
	contentTypeJSON = "application/json; charset=utf-8"

	detailInvalidLogin = "invalid username or password"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	oauth2.Token
	User users.Profile `json:"user"`
}

// validationError mirrors one entry of a 422 detail list
type validationError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "app": s.config.GetAppName()})
	}
}

// LoginHandler exchanges a username and password for a bearer token
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
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

		user, err := s.users.GetByUsername(req.Username)
		if err != nil || !users.CheckPasswordHash(req.Password, user.PasswordHash) {
			log.Info().Str("username", req.Username).Msg("Failed login")
			writeDetail(w, http.StatusUnauthorized, detailInvalidLogin)
			return
		}
		if !user.IsActive {
			writeDetail(w, http.StatusForbidden, detailUserDisabled)
			return
		}

		accessToken, err := s.tokens.Issue(&user.Profile)
		if err != nil {
			log.Err(err).Str("username", user.Username).Msg("Failed to issue token")
			writeDetail(w, http.StatusInternalServerError, "Internal Server Error")
			return
		}

		w.Header().Set("Cache-Control", "no-store")
		writeJSON(w, http.StatusOK, loginResponse{
			Token: oauth2.Token{
				AccessToken: accessToken,
				TokenType:   "bearer",
				ExpiresIn:   int64(s.tokens.Expiry().Seconds()),
				Expiry:      token.NowTimeFunc().Add(s.tokens.Expiry()),
			},
			User: user.Profile,
		})
	}
}

func (s *Server) MeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			writeDetail(w, http.StatusUnauthorized, detailNotAuthenticated)
			return
		}
		writeJSON(w, http.StatusOK, user.Profile)
	}
}

func fieldRequired(field string) validationError {
	return validationError{Loc: []string{"body", field}, Msg: "Field required: " + field, Type: "missing"}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeDetail writes the {"detail": "..."} error body the console expects
func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func writeValidation(w http.ResponseWriter, errs ...validationError) {
	writeJSON(w, http.StatusUnprocessableEntity, map[string][]validationError{"detail": errs})
}

// statusFor maps repository errors onto HTTP statuses
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, errors.ErrUserNotFound):
		return http.StatusNotFound, "User not found"
	case errors.Is(err, errors.ErrUserExists):
		return http.StatusBadRequest, "Username already exists"
	case errors.Is(err, errors.ErrInvalidRole):
		return http.StatusUnprocessableEntity, err.Error()
	default:
		return http.StatusInternalServerError, "Internal Server Error"
	}
}

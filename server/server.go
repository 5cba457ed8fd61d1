// Package server is a development backend implementing the authentication
// and user endpoints the console talks to, with FastAPI style error bodies.
package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/jrsteele09/go-budget-console/internal/config"
	"github.com/jrsteele09/go-budget-console/internal/ui"
	"github.com/jrsteele09/go-budget-console/token"
	"github.com/jrsteele09/go-budget-console/users"
	"github.com/rs/zerolog/log"
)

type Server struct {
	env    string // Environment (e.g., "DEV", "PROD")
	mux    *http.ServeMux
	routes []string
	config config.Config
	users  users.UserRepo
	tokens *token.Issuer
}

func New(config config.Config, userRepo users.UserRepo) (*Server, error) {
	s := &Server{
		env:    config.GetEnv(),
		mux:    http.NewServeMux(),
		config: config,
		users:  userRepo,
		tokens: token.NewIssuer(config),
	}

	if err := s.InitialiseSystem(); err != nil {
		return nil, fmt.Errorf("[Server New] Failed to initialise the system: %w", err)
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Issuer exposes the token issuer, mainly for tests minting their own tokens
func (s *Server) Issuer() *token.Issuer {
	return s.tokens
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) Routes() []string {
	return append([]string(nil), s.routes...)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	colour, ok := ui.MethodColors[method]
	if !ok {
		colour = ui.Gray
	}
	displayMethod := ui.Colour(true, colour, fmt.Sprintf(" %-7s", method))
	log.Info().Msgf("[%-19s] %s", displayMethod, path)
}

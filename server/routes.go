package server

import (
	"net/http"

	"github.com/jrsteele09/go-budget-console/metrics"
	"github.com/jrsteele09/go-budget-console/users"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) initRoutes() {
	s.RegisterRouteHandler("GET "+RouteHealth, ChainMiddleware(s.HealthHandler(), s.APIMiddleware()...))

	// Auth
	s.RegisterRouteHandler("POST "+RouteAuthLogin, ChainMiddleware(s.LoginHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteAuthMe, ChainMiddleware(s.MeHandler(), s.APIMiddleware(s.RequireAuth())...))

	// User management, admin only
	s.RegisterRouteHandler("GET "+RouteAuthUsers, ChainMiddleware(s.ListUsersHandler(), s.APIMiddleware(s.RequireAuth(), s.RequireRole(users.RoleAdmin))...))
	s.RegisterRouteHandler("POST "+RouteAuthUsers, ChainMiddleware(s.CreateUserHandler(), s.APIMiddleware(s.RequireAuth(), s.RequireRole(users.RoleAdmin))...))
	s.RegisterRouteHandler("PUT "+RouteAuthUser, ChainMiddleware(s.UpdateUserHandler(), s.APIMiddleware(s.RequireAuth(), s.RequireRole(users.RoleAdmin))...))

	s.RegisterRouteHandler("GET "+RouteDashboardSummary, ChainMiddleware(s.DashboardSummaryHandler(), s.APIMiddleware(s.RequireAuth())...))

	s.RegisterRouteHandler("OPTIONS "+RouteAPIPrefix+"/", ChainMiddleware(preflightHandler, s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteMetrics, promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))
	s.RegisterRouteHandler(RouteAPIPrefix+"/", ChainMiddleware(notFoundHandler, s.APIMiddleware()...))
}

func preflightHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func notFoundHandler(w http.ResponseWriter, _ *http.Request) {
	writeDetail(w, http.StatusNotFound, "Not Found")
}

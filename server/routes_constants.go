package server

// Route path constants
const (
	RouteAPIPrefix = "/api"

	// Auth
	RouteAuthLogin = RouteAPIPrefix + "/auth/login"
	RouteAuthMe    = RouteAPIPrefix + "/auth/me"
	RouteAuthUsers = RouteAPIPrefix + "/auth/users"
	RouteAuthUser  = RouteAuthUsers + "/{id}"

	// Dashboard
	RouteDashboardSummary = RouteAPIPrefix + "/dashboard/summary"

	RouteHealth  = RouteAPIPrefix + "/health"
	RouteMetrics = "/metrics"
)

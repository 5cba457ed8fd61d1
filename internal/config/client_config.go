package config

import (
	"path/filepath"
	"time"
)

const (
	RouteLogin     = "/login"
	RouteDashboard = "/dashboard"

	sessionFileName = "session.json"
)

type ClientConfig interface {
	GetRequestTimeout() time.Duration
	GetLoginRoute() string
	GetDefaultRoute() string
	GetSessionFile() string
}

type Client struct{}

var _ ClientConfig = Client{}

func (Client) GetRequestTimeout() time.Duration {
	return 30 * time.Second
}

func (Client) GetLoginRoute() string {
	return RouteLogin
}

func (Client) GetDefaultRoute() string {
	return RouteDashboard
}

// GetSessionFile is where the persisted token and user slots live between runs.
func (Client) GetSessionFile() string {
	return filepath.Join(EnvVars{}.GetDataFolder(), sessionFileName)
}

package config

import (
	"fmt"
	"os"
	"strings"
)

const (
	portEnvVar       = "PORT"
	appNameVar       = "APP_NAME"
	folderEnvVar     = "FOLDER"
	apiBaseURLEnvVar = "API_BASE_URL"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetPort() string {
	port := GetEnv(portEnvVar, "8001")
	if !strings.HasPrefix(port, ":") {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Budget Console")
}

func (EnvVars) GetDataFolder() string {
	return GetEnv(folderEnvVar, "./data")
}

// GetAPIBaseURL returns the prefix every endpoint path is resolved against
// (e.g. "https://budget.example.com/api").
func (EnvVars) GetAPIBaseURL() string {
	return strings.TrimRight(GetEnv(apiBaseURLEnvVar, "http://localhost:8001/api"), "/")
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}

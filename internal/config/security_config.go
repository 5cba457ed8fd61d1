package config

import "time"

type SecurityConfig interface {
	GetTokenSecret() string
	GetAccessTokenExpiry() time.Duration
	GetTokenIssuer() string
}

type Security struct{}

var _ SecurityConfig = Security{}

// GetTokenSecret is the HS256 key used by the development backend.
func (Security) GetTokenSecret() string {
	return GetEnv("TOKEN_SECRET", "budget-console-dev-secret-change-in-production")
}

func (Security) GetAccessTokenExpiry() time.Duration {
	return 480 * time.Minute
}

func (Security) GetTokenIssuer() string {
	return GetEnv("TOKEN_ISSUER", "budget-console")
}

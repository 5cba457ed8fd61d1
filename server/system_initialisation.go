package server

import (
	"fmt"
	"time"

	"github.com/jrsteele09/go-budget-console/internal/errors"
	"github.com/jrsteele09/go-budget-console/internal/utils"
	"github.com/jrsteele09/go-budget-console/users"
	"github.com/rs/zerolog/log"
)

// SeedUser is a development account created at startup
type SeedUser struct {
	Username   string
	Password   string
	FullName   string
	Role       users.RoleType
	Department string
}

// SeedUsers holds one account per role
var SeedUsers = []SeedUser{
	{Username: "admin", Password: "admin123", FullName: "System Administrator", Role: users.RoleAdmin},
	{Username: "leader", Password: "leader123", FullName: "Mine Leadership", Role: users.RoleLeader},
	{Username: "engineer", Password: "eng123", FullName: "Engineering Staff", Role: users.RoleDepartment, Department: "Engineering"},
	{Username: "viewer", Password: "view123", FullName: "General Staff", Role: users.RoleViewer},
}

// InitialiseSystem creates the seed accounts that are missing. Existing
// accounts are left untouched.
func (s *Server) InitialiseSystem() error {
	created := 0
	for _, seed := range SeedUsers {
		_, err := s.users.GetByUsername(seed.Username)
		if err == nil {
			continue
		}
		if !errors.Is(err, errors.ErrUserNotFound) {
			return fmt.Errorf("[Server InitialiseSystem] lookup %s: %w", seed.Username, err)
		}

		hash, err := users.HashPassword(seed.Password)
		if err != nil {
			return fmt.Errorf("[Server InitialiseSystem] hash password for %s: %w", seed.Username, err)
		}

		user := &users.User{
			Profile: users.Profile{
				Username:  seed.Username,
				FullName:  seed.FullName,
				Role:      seed.Role,
				IsActive:  true,
				CreatedAt: nowStamp(),
			},
			PasswordHash: hash,
		}
		if seed.Department != "" {
			user.Department = utils.Ptr(seed.Department)
		}
		if err := s.users.Upsert(user); err != nil {
			return fmt.Errorf("[Server InitialiseSystem] create %s: %w", seed.Username, err)
		}
		created++

		if s.env == "DEV" {
			log.Info().Str("username", seed.Username).Str("password", seed.Password).Str("role", seed.Role.String()).Msg("Seeded account")
		}
	}

	if created > 0 {
		log.Info().Int("accounts", created).Msg("System initialised")
	}
	return nil
}

func nowStamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

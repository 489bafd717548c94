package config

import (
	"fmt"
	"os"

	dom "taskmanager/internal/domain"

	"gopkg.in/yaml.v3"
)

type identitiesFile struct {
	Users []dom.User `yaml:"users"`
}

// Identities returns the users to provision: the contents of the identity
// file when one is configured, otherwise the seed user.
func (c IdentityConfig) Identities() ([]dom.User, error) {
	if c.File == "" {
		return []dom.User{{
			ID:       c.SeedID,
			Email:    c.SeedEmail,
			Password: c.SeedPassword,
			Name:     c.SeedName,
		}}, nil
	}
	data, err := os.ReadFile(c.File)
	if err != nil {
		return nil, fmt.Errorf("read identity file: %w", err)
	}
	return ParseIdentities(data)
}

// ParseIdentities decodes a YAML identity registry and checks that IDs and
// emails are unique.
func ParseIdentities(data []byte) ([]dom.User, error) {
	var f identitiesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse identity file: %w", err)
	}
	if len(f.Users) == 0 {
		return nil, fmt.Errorf("identity file defines no users")
	}
	ids := make(map[int64]bool, len(f.Users))
	emails := make(map[string]bool, len(f.Users))
	for i, u := range f.Users {
		if u.Email == "" || u.Password == "" {
			return nil, fmt.Errorf("user %d: email and password are required", i)
		}
		if ids[u.ID] {
			return nil, fmt.Errorf("user %d: duplicate id %d", i, u.ID)
		}
		if emails[u.Email] {
			return nil, fmt.Errorf("user %d: duplicate email %q", i, u.Email)
		}
		ids[u.ID] = true
		emails[u.Email] = true
	}
	return f.Users, nil
}

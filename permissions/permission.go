package permissions

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var permissionsData []byte

const anyMethod = "*"

// Permission lists the roles allowed on one route pattern. Skip marks a public endpoint.
type Permission struct {
	Permissions []string `json:"permissions"`
	Path        string   `json:"path"`
	Method      string   `json:"method"`
	Skip        bool     `json:"skip"`
}

type PermissionData struct {
	Endpoints []Permission `json:"endpoints"`
	Skip      bool         `json:"skip"`
}

// FindPermissions returns the entry for path and method. An exact method wins over "*".
func (r *PermissionData) FindPermissions(path, method string) Permission {
	idx := slices.IndexFunc(r.Endpoints, func(rp Permission) bool {
		return rp.Path == path && rp.Method == method
	})

	if idx == -1 {
		idx = slices.IndexFunc(r.Endpoints, func(rp Permission) bool {
			return rp.Path == path && rp.Method == anyMethod
		})
	}

	if idx == -1 {
		return Permission{}
	}

	return r.Endpoints[idx]
}

// Validate rejects entries that would leave a protected route open to every role.
func (r *PermissionData) Validate() error {
	for _, endpoint := range r.Endpoints {
		if endpoint.Path == "" || endpoint.Method == "" {
			return fmt.Errorf("permission entry without path or method: %+v", endpoint)
		}

		if !endpoint.Skip && len(endpoint.Permissions) == 0 {
			return fmt.Errorf("protected endpoint %s %s lists no roles", endpoint.Method, endpoint.Path)
		}
	}

	return nil
}

func Parse(raw []byte) (*PermissionData, error) {
	var permissions PermissionData

	if err := json.Unmarshal(raw, &permissions); err != nil {
		return nil, fmt.Errorf("failed to decode permissions: %w", err)
	}

	if err := permissions.Validate(); err != nil {
		return nil, err
	}

	return &permissions, nil
}

func Get() *PermissionData {
	permissions, err := Parse(permissionsData)
	if err != nil {
		log.Err(err).Msg("Failed to load embedded permissions")

		return nil
	}

	log.Info().Int("endpoints", len(permissions.Endpoints)).Msg("Successfully loaded embedded permissions")

	return permissions
}

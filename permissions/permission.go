package permissions

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var embedded []byte

// Permission is the access rule of one route pattern. Public routes need no
// token. Otherwise the caller's role must be listed in Roles, and an empty
// list admits any authenticated caller.
type Permission struct {
	Method string   `json:"method"`
	Path   string   `json:"path"`
	Roles  []string `json:"roles"`
	Public bool     `json:"public"`
}

func (p Permission) Allows(role string) bool {
	return len(p.Roles) == 0 || slices.Contains(p.Roles, role)
}

type PermissionData struct {
	Endpoints []Permission `json:"endpoints"`
	// Public disables authentication for every route.
	Public bool `json:"public"`

	index map[string]Permission
}

func routeKey(method, path string) string {
	return method + " " + path
}

// Parse decodes a rule set. Duplicate method and path pairs are rejected.
func Parse(raw []byte) (*PermissionData, error) {
	data := &PermissionData{}
	if err := json.Unmarshal(raw, data); err != nil {
		return nil, fmt.Errorf("failed to decode permissions: %w", err)
	}

	data.index = make(map[string]Permission, len(data.Endpoints))

	for _, endpoint := range data.Endpoints {
		key := routeKey(endpoint.Method, endpoint.Path)
		if _, dup := data.index[key]; dup {
			return nil, fmt.Errorf("duplicate permission for %s", key)
		}

		data.index[key] = endpoint
	}

	return data, nil
}

// FindPermissions looks up a chi route pattern. Unknown routes get the zero
// Permission, which requires a token but no particular role.
func (r *PermissionData) FindPermissions(path, method string) Permission {
	return r.index[routeKey(method, path)]
}

func Get() *PermissionData {
	data, err := Parse(embedded)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load embedded permissions")
	}

	log.Info().Int("endpoints", len(data.Endpoints)).Msg("permissions loaded")

	return data
}

// Package auth decides which roles may perform which gated operations.
package auth

import "github.com/refugee-innovation-hub/internal/models"

// Capability names a gated operation group.
type Capability string

const (
	StoriesWrite      Capability = "stories:write"
	SubmissionsReview Capability = "submissions:review"
	AnalyticsRead     Capability = "analytics:read"
	StatsRead         Capability = "stats:read"
)

// Policy maps each role to the capabilities it holds.
type Policy map[models.Role]map[Capability]bool

// DefaultPolicy grants every capability to every dashboard role.
// Each role gets its own map, so revoking a grant from one leaves the others alone.
func DefaultPolicy() Policy {
	return Policy{
		models.RoleAdmin:  allCapabilities(),
		models.RoleEditor: allCapabilities(),
	}
}

func allCapabilities() map[Capability]bool {
	return map[Capability]bool{
		StoriesWrite:      true,
		SubmissionsReview: true,
		AnalyticsRead:     true,
		StatsRead:         true,
	}
}

// Allows reports whether role holds capability. Unknown roles hold nothing.
func (p Policy) Allows(role models.Role, capability Capability) bool {
	return p[role][capability]
}

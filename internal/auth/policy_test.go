package auth

import (
	"testing"

	"github.com/refugee-innovation-hub/internal/models"
)

func TestDefaultPolicy(t *testing.T) {
	p := DefaultPolicy()
	caps := []Capability{StoriesWrite, SubmissionsReview, AnalyticsRead, StatsRead}

	for _, role := range []models.Role{models.RoleAdmin, models.RoleEditor} {
		for _, c := range caps {
			if !p.Allows(role, c) {
				t.Errorf("%s should hold %s", role, c)
			}
		}
	}

	if p.Allows("viewer", StoriesWrite) {
		t.Error("unknown role should hold no capability")
	}
}

func TestPolicy_Restricted(t *testing.T) {
	p := Policy{
		models.RoleAdmin:  {StoriesWrite: true, SubmissionsReview: true},
		models.RoleEditor: {StoriesWrite: true},
	}

	if p.Allows(models.RoleEditor, SubmissionsReview) {
		t.Error("editor should not review submissions")
	}
	if !p.Allows(models.RoleAdmin, SubmissionsReview) {
		t.Error("admin should review submissions")
	}
}

func TestDefaultPolicy_RevokingOneRoleLeavesOthers(t *testing.T) {
	p := DefaultPolicy()
	p[models.RoleEditor][StoriesWrite] = false

	if p.Allows(models.RoleEditor, StoriesWrite) {
		t.Error("editor should have lost stories:write")
	}
	if !p.Allows(models.RoleAdmin, StoriesWrite) {
		t.Error("revoking stories:write from editor also revoked it from admin")
	}
}

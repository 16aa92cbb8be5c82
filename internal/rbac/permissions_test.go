package rbac

import (
	"testing"

	"github.com/pirxey/timetrack-api/internal/models"
)

func TestCapabilitiesForRole_AdminIsFullUniverse(t *testing.T) {
	admin := CapabilitiesForRole(models.RoleAdmin)

	if len(admin) != len(allCapabilities) {
		t.Fatalf("ADMIN has %d capabilities, want the full universe of %d", len(admin), len(allCapabilities))
	}
	adminSet := make(map[Capability]bool, len(admin))
	for _, c := range admin {
		adminSet[c] = true
	}
	for _, c := range allCapabilities {
		if !adminSet[c] {
			t.Errorf("ADMIN is missing capability %q", c)
		}
	}
}

// The configured hierarchy is EMPLOYEE ⊂ MANAGER ⊂ ADMIN. This is a fixture
// check for this role table, not an assumption about future hierarchies.
func TestRoleHierarchy(t *testing.T) {
	employee := CapabilitiesForRole(models.RoleEmployee)
	manager := CapabilitiesForRole(models.RoleManager)

	for _, c := range employee {
		if !HasCapability(models.RoleManager, c) {
			t.Errorf("MANAGER is missing EMPLOYEE capability %q", c)
		}
	}
	for _, c := range manager {
		if !HasCapability(models.RoleAdmin, c) {
			t.Errorf("ADMIN is missing MANAGER capability %q", c)
		}
	}
	if len(employee) >= len(manager) {
		t.Errorf("EMPLOYEE set (%d) should be strictly smaller than MANAGER set (%d)", len(employee), len(manager))
	}
}

func TestHasCapability(t *testing.T) {
	tests := []struct {
		name       string
		role       models.Role
		capability Capability
		want       bool
	}{
		{"admin can write all entries", models.RoleAdmin, CapTimeEntriesAllWrite, true},
		{"manager can read assigned project entries", models.RoleManager, CapTimeEntriesAssignedProjectsRead, true},
		{"manager cannot write projects", models.RoleManager, CapProjectsWrite, false},
		{"employee can write own entries", models.RoleEmployee, CapTimeEntriesOwnWrite, true},
		{"employee cannot read clients", models.RoleEmployee, CapClientsRead, false},
		{"employee cannot read all entries", models.RoleEmployee, CapTimeEntriesAllRead, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasCapability(tt.role, tt.capability); got != tt.want {
				t.Errorf("HasCapability(%s, %s) = %v, want %v", tt.role, tt.capability, got, tt.want)
			}
		})
	}
}

func TestUnknownRoleFailsClosed(t *testing.T) {
	unknown := models.Role("CONTRACTOR")

	got := CapabilitiesForRole(unknown)
	want := CapabilitiesForRole(models.RoleEmployee)
	if len(got) != len(want) {
		t.Fatalf("unknown role resolved to %d capabilities, want the EMPLOYEE set of %d", len(got), len(want))
	}
	if HasCapability(unknown, CapTimeEntriesAllRead) {
		t.Error("unknown role must not gain privileged capabilities")
	}
	if !HasCapability(unknown, CapTimeEntriesOwnRead) {
		t.Error("unknown role should still hold the lowest-privilege capabilities")
	}
}

func TestHasAnyHasAll(t *testing.T) {
	caps := []Capability{CapProjectsWrite, CapProjectsRead}

	if !HasAny(models.RoleEmployee, caps) {
		t.Error("HasAny: employee holds projects:read, want true")
	}
	if HasAll(models.RoleEmployee, caps) {
		t.Error("HasAll: employee lacks projects:write, want false")
	}
	if !HasAll(models.RoleAdmin, caps) {
		t.Error("HasAll: admin holds everything, want true")
	}

	// Empty-list conventions are deliberate: no capability can satisfy
	// HasAny, and HasAll is vacuously true.
	if HasAny(models.RoleAdmin, nil) {
		t.Error("HasAny with empty list must be false")
	}
	if !HasAll(models.RoleEmployee, nil) {
		t.Error("HasAll with empty list must be true")
	}
}

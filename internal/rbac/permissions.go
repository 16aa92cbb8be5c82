package rbac

import (
	"golang.org/x/exp/slices"

	"github.com/pirxey/timetrack-api/internal/models"
)

// Capability is an opaque permission token gating one action or one
// data-visibility rule.
type Capability string

const (
	// Time entries
	CapTimeEntriesOwnRead              Capability = "time_entries:own:read"
	CapTimeEntriesOwnWrite             Capability = "time_entries:own:write"
	CapTimeEntriesAssignedProjectsRead Capability = "time_entries:assigned_projects:read"
	CapTimeEntriesAllRead              Capability = "time_entries:all:read"
	CapTimeEntriesAllWrite             Capability = "time_entries:all:write"

	// Projects
	CapProjectsRead          Capability = "projects:read"
	CapProjectsWrite         Capability = "projects:write"
	CapProjectsDelete        Capability = "projects:delete"
	CapProjectsManageMembers Capability = "projects:manage_members"

	// Clients
	CapClientsRead   Capability = "clients:read"
	CapClientsWrite  Capability = "clients:write"
	CapClientsDelete Capability = "clients:delete"

	// Tags
	CapTagsRead   Capability = "tags:read"
	CapTagsWrite  Capability = "tags:write"
	CapTagsDelete Capability = "tags:delete"

	// Categories
	CapCategoriesRead  Capability = "categories:read"
	CapCategoriesWrite Capability = "categories:write"

	// Team
	CapTeamRead       Capability = "team:read"
	CapTeamWrite      Capability = "team:write"
	CapTeamInvite     Capability = "team:invite"
	CapTeamChangeRole Capability = "team:change_role"

	// Reports
	CapReportsOwn              Capability = "reports:own"
	CapReportsAssignedProjects Capability = "reports:assigned_projects"
	CapReportsAll              Capability = "reports:all"

	// Settings
	CapSettingsOwn       Capability = "settings:own"
	CapSettingsWorkspace Capability = "settings:workspace"
)

// allCapabilities is the closed capability universe. ADMIN's set is derived
// from this slice so that a newly registered capability is granted to admins
// without touching the role table.
var allCapabilities = []Capability{
	CapTimeEntriesOwnRead,
	CapTimeEntriesOwnWrite,
	CapTimeEntriesAssignedProjectsRead,
	CapTimeEntriesAllRead,
	CapTimeEntriesAllWrite,
	CapProjectsRead,
	CapProjectsWrite,
	CapProjectsDelete,
	CapProjectsManageMembers,
	CapClientsRead,
	CapClientsWrite,
	CapClientsDelete,
	CapTagsRead,
	CapTagsWrite,
	CapTagsDelete,
	CapCategoriesRead,
	CapCategoriesWrite,
	CapTeamRead,
	CapTeamWrite,
	CapTeamInvite,
	CapTeamChangeRole,
	CapReportsOwn,
	CapReportsAssignedProjects,
	CapReportsAll,
	CapSettingsOwn,
	CapSettingsWorkspace,
}

var managerCapabilities = []Capability{
	CapTimeEntriesOwnRead,
	CapTimeEntriesOwnWrite,
	CapTimeEntriesAssignedProjectsRead,
	CapProjectsRead,
	CapProjectsManageMembers,
	CapClientsRead,
	CapTagsRead,
	CapCategoriesRead,
	CapTeamRead,
	CapReportsOwn,
	CapReportsAssignedProjects,
	CapSettingsOwn,
}

var employeeCapabilities = []Capability{
	CapTimeEntriesOwnRead,
	CapTimeEntriesOwnWrite,
	CapProjectsRead,
	CapTagsRead,
	CapCategoriesRead,
	CapReportsOwn,
	CapSettingsOwn,
}

// roleCapabilities is built once at startup and never mutated afterwards.
// It is deliberately unexported: callers go through the resolver functions,
// which keeps the ADMIN-gets-everything invariant enforceable in one place.
var roleCapabilities map[models.Role]map[Capability]struct{}

func init() {
	roleCapabilities = map[models.Role]map[Capability]struct{}{
		models.RoleAdmin:    toSet(allCapabilities),
		models.RoleManager:  toSet(managerCapabilities),
		models.RoleEmployee: toSet(employeeCapabilities),
	}
}

func toSet(caps []Capability) map[Capability]struct{} {
	set := make(map[Capability]struct{}, len(caps))
	for _, c := range caps {
		set[c] = struct{}{}
	}
	return set
}

// capsFor resolves a role's capability set. An unrecognized role fails
// closed: it is treated as the lowest-privilege role rather than erroring,
// since the calling UI must always render something.
func capsFor(role models.Role) map[Capability]struct{} {
	if set, ok := roleCapabilities[role]; ok {
		return set
	}
	return roleCapabilities[models.RoleEmployee]
}

// CapabilitiesForRole returns the role's capability tokens sorted for
// stable output. The returned slice is a copy; mutating it does not affect
// the resolver.
func CapabilitiesForRole(role models.Role) []Capability {
	set := capsFor(role)
	caps := make([]Capability, 0, len(set))
	for c := range set {
		caps = append(caps, c)
	}
	slices.Sort(caps)
	return caps
}

// HasCapability reports whether the role is granted the capability.
func HasCapability(role models.Role, capability Capability) bool {
	_, ok := capsFor(role)[capability]
	return ok
}

// HasAny reports whether the role holds at least one of the capabilities.
// An empty list yields false.
func HasAny(role models.Role, caps []Capability) bool {
	set := capsFor(role)
	for _, c := range caps {
		if _, ok := set[c]; ok {
			return true
		}
	}
	return false
}

// HasAll reports whether the role holds every capability in the list.
// An empty list yields true (vacuous truth).
func HasAll(role models.Role, caps []Capability) bool {
	set := capsFor(role)
	for _, c := range caps {
		if _, ok := set[c]; !ok {
			return false
		}
	}
	return true
}

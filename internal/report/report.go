// Package report filters and groups time entries for the reports screen and
// the export formats. All computation is in-memory over a fresh snapshot of
// the catalogs; nothing is mutated.
package report

import (
	"golang.org/x/exp/slices"

	"github.com/pirxey/timetrack-api/internal/models"
)

// Dimension selects how report rows are grouped.
type Dimension string

const (
	DimensionNone    Dimension = "none"
	DimensionMember  Dimension = "member"
	DimensionProject Dimension = "project"
	DimensionClient  Dimension = "client"
	DimensionTeam    Dimension = "team"
)

// ValidDimensions lists the accepted group_by values.
var ValidDimensions = map[Dimension]bool{
	DimensionNone:    true,
	DimensionMember:  true,
	DimensionProject: true,
	DimensionClient:  true,
	DimensionTeam:    true,
}

// Context is the read-only catalog snapshot used to resolve names for
// filtering, grouping and export.
type Context struct {
	projects map[string]*models.Project
	tags     map[string]*models.Tag
	teams    map[string]*models.Team
	users    map[string]*models.User
	clients  map[string]*models.Client
}

// NewContext indexes the catalogs by id.
func NewContext(projects []*models.Project, tags []*models.Tag, teams []*models.Team, users []*models.User, clients []*models.Client) *Context {
	ctx := &Context{
		projects: make(map[string]*models.Project, len(projects)),
		tags:     make(map[string]*models.Tag, len(tags)),
		teams:    make(map[string]*models.Team, len(teams)),
		users:    make(map[string]*models.User, len(users)),
		clients:  make(map[string]*models.Client, len(clients)),
	}
	for _, p := range projects {
		ctx.projects[p.ID] = p
	}
	for _, t := range tags {
		ctx.tags[t.ID] = t
	}
	for _, t := range teams {
		ctx.teams[t.ID] = t
	}
	for _, u := range users {
		ctx.users[u.ID] = u
	}
	for _, c := range clients {
		ctx.clients[c.ID] = c
	}
	return ctx
}

func (c *Context) Project(id string) *models.Project { return c.projects[id] }
func (c *Context) Tag(id string) *models.Tag         { return c.tags[id] }
func (c *Context) Team(id string) *models.Team       { return c.teams[id] }
func (c *Context) User(id string) *models.User       { return c.users[id] }
func (c *Context) Client(id string) *models.Client   { return c.clients[id] }

// Filter narrows entries before grouping. Zero values mean "no constraint";
// From and To are inclusive YYYY-MM-DD bounds.
type Filter struct {
	From      string
	To        string
	UserID    string
	ProjectID string
	ClientID  string
	TagID     string
	Billable  *bool
}

// Match reports whether the entry satisfies every set constraint.
func (f *Filter) Match(e *models.TimeEntry, ctx *Context) bool {
	if f.From != "" && e.Date < f.From {
		return false
	}
	if f.To != "" && e.Date > f.To {
		return false
	}
	if f.UserID != "" && e.UserID != f.UserID {
		return false
	}
	if f.ProjectID != "" && (e.ProjectID == nil || *e.ProjectID != f.ProjectID) {
		return false
	}
	if f.ClientID != "" {
		if e.ProjectID == nil {
			return false
		}
		project := ctx.Project(*e.ProjectID)
		if project == nil || project.ClientID == nil || *project.ClientID != f.ClientID {
			return false
		}
	}
	if f.TagID != "" && !slices.Contains(e.TagIDs, f.TagID) {
		return false
	}
	if f.Billable != nil && e.Billable != *f.Billable {
		return false
	}
	return true
}

// FilterEntries returns the entries satisfying the filter, in input order.
func FilterEntries(entries []*models.TimeEntry, f *Filter, ctx *Context) []*models.TimeEntry {
	if f == nil {
		return entries
	}
	out := make([]*models.TimeEntry, 0, len(entries))
	for _, e := range entries {
		if f.Match(e, ctx) {
			out = append(out, e)
		}
	}
	return out
}

// Group is one bucket of a grouped report.
type Group struct {
	Key          string              `json:"key"`
	Label        string              `json:"label"`
	Color        string              `json:"color,omitempty"`
	Entries      []*models.TimeEntry `json:"entries"`
	TotalMinutes int                 `json:"total_minutes"`
	EntryCount   int                 `json:"entry_count"`
}

// TotalMinutes sums entry durations.
func TotalMinutes(entries []*models.TimeEntry) int {
	total := 0
	for _, e := range entries {
		total += e.DurationMinutes
	}
	return total
}

// GroupEntries buckets entries along the dimension, sorted by descending
// total minutes. For the team dimension one entry lands in every team its
// author belongs to, so group totals may exceed the flat total.
func GroupEntries(entries []*models.TimeEntry, dim Dimension, ctx *Context) []Group {
	if dim == DimensionNone {
		return nil
	}

	groups := make(map[string]*Group)
	order := make([]string, 0)

	add := func(key, label, color string, e *models.TimeEntry) {
		g, ok := groups[key]
		if !ok {
			g = &Group{Key: key, Label: label, Color: color}
			groups[key] = g
			order = append(order, key)
		}
		g.Entries = append(g.Entries, e)
		g.TotalMinutes += e.DurationMinutes
		g.EntryCount++
	}

	for _, e := range entries {
		switch dim {
		case DimensionMember:
			label := "Unknown member"
			if u := ctx.User(e.UserID); u != nil {
				label = u.Name
			}
			add("member:"+e.UserID, label, "", e)

		case DimensionProject:
			if e.ProjectID == nil {
				add("project:none", "No project", "#6B7280", e)
				continue
			}
			label, color := "Unknown project", ""
			if p := ctx.Project(*e.ProjectID); p != nil {
				label, color = p.Name, p.Color
			}
			add("project:"+*e.ProjectID, label, color, e)

		case DimensionClient:
			clientID := ""
			if e.ProjectID != nil {
				if p := ctx.Project(*e.ProjectID); p != nil && p.ClientID != nil {
					clientID = *p.ClientID
				}
			}
			if clientID == "" {
				add("client:none", "No client", "", e)
				continue
			}
			label := "Unknown client"
			if c := ctx.Client(clientID); c != nil {
				label = c.Name
			}
			add("client:"+clientID, label, "", e)

		case DimensionTeam:
			user := ctx.User(e.UserID)
			if user == nil || len(user.TeamIDs) == 0 {
				add("team:none", "No team", "", e)
				continue
			}
			for _, teamID := range user.TeamIDs {
				label := "Unknown team"
				if t := ctx.Team(teamID); t != nil {
					label = t.Name
				}
				add("team:"+teamID, label, "", e)
			}
		}
	}

	out := make([]Group, 0, len(groups))
	for _, key := range order {
		out = append(out, *groups[key])
	}
	slices.SortStableFunc(out, func(a, b Group) int {
		return b.TotalMinutes - a.TotalMinutes
	})
	return out
}

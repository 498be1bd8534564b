package provisioning

import (
	"path"

	"github.com/alivecomputer/setup/internal/config"
	"github.com/alivecomputer/setup/internal/templates"
	"github.com/alivecomputer/setup/internal/util/naming"
)

// PlannedWalnut is a walnut together with where it lives in the World.
type PlannedWalnut struct {
	Walnut templates.Walnut

	// Path is relative to the World root, slash separated.
	Path string

	// Project is set for project walnuts.
	Project *config.Project
}

// Dirs returns the walnut's folders relative to its own directory.
// Person walnuts only get a session folder next to _core.
func (w PlannedWalnut) Dirs() []string {
	if w.Walnut.Kind == templates.KindPerson {
		return []string{naming.CoreDir, naming.SquirrelsDir}
	}
	return []string{naming.CoreDir, naming.SquirrelsDir, naming.WorkingDir, naming.ReferencesDir}
}

// PlanWalnuts lists the walnuts of cfg in creation order: Life first, then
// every project, then every person. Slugs are unique per domain folder.
func PlanWalnuts(cfg *config.Configuration) []PlannedWalnut {
	slugs := naming.NewSlugs()
	plan := make([]PlannedWalnut, 0, 1+len(cfg.Projects)+len(cfg.People))

	plan = append(plan, PlannedWalnut{
		Walnut: templates.LifeWalnut(cfg),
		Path:   naming.LifeDir,
	})

	for i := range cfg.Projects {
		p := &cfg.Projects[i]
		domain := naming.ProjectDomain(string(p.Type))
		slug := slugs.Claim(domain, p.Name)
		plan = append(plan, PlannedWalnut{
			Walnut:  templates.ProjectWalnut(cfg, *p, slug),
			Path:    path.Join(domain, slug),
			Project: p,
		})
	}

	people := naming.PeopleDomain()
	for _, person := range cfg.People {
		slug := slugs.Claim(people, person.Name)
		plan = append(plan, PlannedWalnut{
			Walnut: templates.PersonWalnut(person, slug),
			Path:   path.Join(people, slug),
		})
	}
	return plan
}

package naming

import (
	"fmt"
	"path"
	"strings"
)

// Domain folders at the top of a World.
const (
	ArchiveDir     = "01_Archive"
	LifeDir        = "02_Life"
	InputsDir      = "03_Inputs"
	VenturesDir    = "04_Ventures"
	ExperimentsDir = "05_Experiments"
)

// Folders inside a World and inside each walnut.
const (
	ConfigDir     = ".claude"
	RulesDir      = "rules"
	PeopleDir     = "people"
	CoreDir       = "_core"
	SquirrelsDir  = "_squirrels"
	WorkingDir    = "_working"
	ReferencesDir = "_references"
)

// ShortcutName is the home-relative name that always points at the World.
const ShortcutName = "world"

// fallbackSlug is used when a name contains no slug characters at all.
const fallbackSlug = "walnut"

// DomainDirs returns the World's domain folders in order.
func DomainDirs() []string {
	return []string{ArchiveDir, LifeDir, InputsDir, VenturesDir, ExperimentsDir}
}

// ProjectDomain returns the domain folder holding projects of the given type.
// Anything that is not a venture is an experiment.
func ProjectDomain(projectType string) string {
	if projectType == "venture" {
		return VenturesDir
	}
	return ExperimentsDir
}

// PeopleDomain returns the folder holding person walnuts, relative to the World.
func PeopleDomain() string {
	return path.Join(LifeDir, PeopleDir)
}

// Slug derives a filesystem-safe identifier from a name.
//
// The name is lowercased and every maximal run of characters outside
// [a-z0-9] becomes a single "-". One leading and one trailing "-" are
// dropped. Slug does not resolve collisions; see Slugs.
func Slug(name string) string {
	var b strings.Builder
	sep := false
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			sep = false
			continue
		}
		if !sep {
			b.WriteByte('-')
			sep = true
		}
	}
	s := b.String()
	s = strings.TrimPrefix(s, "-")
	s = strings.TrimSuffix(s, "-")
	return s
}

// Slugs hands out slugs that are unique within each domain folder.
//
// The first entity keeps the bare slug; later collisions get "-2", "-3"
// and so on, in the order they are claimed. Claiming the same entities in
// the same order always yields the same slugs.
type Slugs struct {
	used map[string]map[string]bool
}

// NewSlugs returns an empty slug registry.
func NewSlugs() *Slugs {
	return &Slugs{used: make(map[string]map[string]bool)}
}

// Claim returns a slug for name that is not yet taken inside domain.
func (s *Slugs) Claim(domain, name string) string {
	taken, ok := s.used[domain]
	if !ok {
		taken = make(map[string]bool)
		s.used[domain] = taken
	}

	base := Slug(name)
	if base == "" {
		base = fallbackSlug
	}

	slug := base
	for n := 2; taken[slug]; n++ {
		slug = fmt.Sprintf("%s-%d", base, n)
	}
	taken[slug] = true
	return slug
}

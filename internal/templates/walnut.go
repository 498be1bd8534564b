package templates

import (
	"fmt"
	"strings"
	"time"

	"github.com/alivecomputer/setup/internal/config"
)

// Kind is the type of a walnut.
type Kind string

const (
	KindLife       Kind = "life"
	KindVenture    Kind = "venture"
	KindExperiment Kind = "experiment"
	KindPerson     Kind = "person"
)

// Core document file names, in the order they are written.
const (
	KeyDoc      = "key.md"
	NowDoc      = "now.md"
	LogDoc      = "log.md"
	InsightsDoc = "insights.md"
	TasksDoc    = "tasks.md"
)

// Walnut is the entity a set of _core documents is rendered for.
type Walnut struct {
	Kind Kind
	Name string
	Slug string
	Goal string

	// Relationship is set for person walnuts.
	Relationship string

	// Codebase and Stack are optional project details.
	Codebase string
	Stack    string

	// Focus is the World's focus task. Every walnut that carries it names
	// it as next; only the focus project also opens it as a task.
	Focus string

	Tags []string
}

// LifeWalnut describes the single Life walnut of a World.
func LifeWalnut(cfg *config.Configuration) Walnut {
	goal := cfg.FirstLifeGoal()
	if goal == "" {
		goal = "Build the life that supports everything else"
	}

	return Walnut{
		Kind:  KindLife,
		Name:  cfg.Name,
		Slug:  "life",
		Goal:  goal,
		Focus: cfg.Focus.Task,
		Tags:  append([]string(nil), cfg.LifeAreas...),
	}
}

// ProjectWalnut describes the walnut of one project.
func ProjectWalnut(cfg *config.Configuration, p config.Project, slug string) Walnut {
	kind := KindExperiment
	if p.Type == config.ProjectVenture {
		kind = KindVenture
	}

	return Walnut{
		Kind:     kind,
		Name:     p.Name,
		Slug:     slug,
		Goal:     p.GoalOrName(),
		Codebase: p.Codebase,
		Stack:    p.Stack,
		Focus:    cfg.FocusTaskFor(p.Name),
	}
}

// PersonWalnut describes the walnut of one person.
func PersonWalnut(p config.Person, slug string) Walnut {
	var tags []string
	if p.Relationship != "" {
		tags = []string{strings.ToLower(p.Relationship)}
	}

	return Walnut{
		Kind:         KindPerson,
		Name:         p.Name,
		Slug:         slug,
		Goal:         p.Relationship,
		Relationship: p.Relationship,
		Tags:         tags,
	}
}

// listsFocus reports whether the focus task is also the walnut's open task.
// The Life walnut only points at it through next.
func (w Walnut) listsFocus() bool {
	return w.Focus != "" && w.Kind != KindLife
}

// Document is one rendered file.
type Document struct {
	Name    string
	Content string
}

// CoreDocs holds the five _core documents of a walnut.
type CoreDocs struct {
	Key      string
	Now      string
	Log      string
	Insights string
	Tasks    string
}

// Documents returns the documents in write order.
func (d CoreDocs) Documents() []Document {
	return []Document{
		{Name: KeyDoc, Content: d.Key},
		{Name: NowDoc, Content: d.Now},
		{Name: LogDoc, Content: d.Log},
		{Name: InsightsDoc, Content: d.Insights},
		{Name: TasksDoc, Content: d.Tasks},
	}
}

// Core renders the _core documents of a walnut.
func Core(cfg *config.Configuration, w Walnut, now time.Time) CoreDocs {
	return CoreDocs{
		Key:      Key(cfg, w, now),
		Now:      Now(w, now),
		Log:      Log(cfg, w, now),
		Insights: Insights(w, now),
		Tasks:    Tasks(w, now),
	}
}

// Key renders key.md: what the walnut is.
func Key(cfg *config.Configuration, w Walnut, now time.Time) string {
	var b strings.Builder

	b.WriteString("---\n")
	fmt.Fprintf(&b, "type: %s\n", w.Kind)
	fmt.Fprintf(&b, "goal: %s\n", scalar(w.Goal))
	fmt.Fprintf(&b, "created: %d\n", year(now))
	if w.Kind != KindPerson {
		b.WriteString("rhythm: weekly\n")
	}
	b.WriteString("people: []\n")
	tag := flowItem
	if w.Kind == KindLife {
		tag = quoted
	}
	fmt.Fprintf(&b, "tags: %s\n", flowList(w.Tags, tag))
	if w.Codebase != "" {
		fmt.Fprintf(&b, "codebase: %s\n", scalar(w.Codebase))
	}
	if w.Stack != "" {
		fmt.Fprintf(&b, "stack: %s\n", flowList(splitList(w.Stack), flowItem))
	}
	b.WriteString("---\n\n")

	switch w.Kind {
	case KindLife:
		fmt.Fprintf(&b, "%s's life. The foundation.\n", cfg.Name)
	case KindPerson:
		b.WriteString(sentence(w.Name, w.Relationship))
	default:
		if w.Goal == w.Name {
			b.WriteString(sentence(w.Name, ""))
		} else {
			b.WriteString(sentence(w.Name, w.Goal))
		}
	}
	return b.String()
}

// sentence joins a name and an optional detail as "Name. Detail.\n".
func sentence(name, detail string) string {
	s := strings.TrimSuffix(name, ".") + "."
	if detail != "" {
		s += " " + strings.TrimSuffix(detail, ".") + "."
	}
	return s + "\n"
}

// Now renders now.md: where the walnut is right now.
func Now(w Walnut, now time.Time) string {
	phase, next, open := "active", "set up your world", "Bring in context from existing tools"
	switch w.Kind {
	case KindVenture, KindExperiment:
		phase, next, open = "starting", "define first milestone", "Define first milestone"
	case KindPerson:
		next, open = "add context", "Add context about "+w.Name
	}
	if w.Focus != "" {
		next = w.Focus
	}
	if w.listsFocus() {
		open = w.Focus
	}

	var b strings.Builder
	b.WriteString("---\n")
	fmt.Fprintf(&b, "phase: %s\n", phase)
	if w.Kind != KindPerson {
		b.WriteString("health: active\n")
	}
	fmt.Fprintf(&b, "updated: %s\n", timestamp(now))
	fmt.Fprintf(&b, "next: %s\n", scalar(next))
	b.WriteString("squirrel: installer\n")
	b.WriteString("links: []\n")
	b.WriteString("---\n\n")
	b.WriteString("## Open\n\n")
	fmt.Fprintf(&b, "- [ ] %s\n", open)
	return b.String()
}

// Log renders log.md with the single creation entry.
func Log(cfg *config.Configuration, w Walnut, now time.Time) string {
	var summary, body string
	switch w.Kind {
	case KindLife:
		summary = "World created."
		body = "World created. Life walnut initialized."
		if goal := cfg.FirstLifeGoal(); goal != "" {
			body += "\nGoals: " + goal
		}
	case KindPerson:
		summary = "Person walnut created."
		body = fmt.Sprintf("Person walnut created. Relationship: %s.", w.Relationship)
	default:
		summary = "Walnut created during world setup."
		body = fmt.Sprintf("Walnut created. Goal: %s.", w.Goal)
		if w.Codebase != "" {
			body += "\nCodebase: " + w.Codebase
		}
		if w.Stack != "" {
			body += "\nStack: " + w.Stack
		}
	}

	var b strings.Builder
	b.WriteString("---\n")
	fmt.Fprintf(&b, "walnut: %s\n", scalar(w.Slug))
	fmt.Fprintf(&b, "created: %s\n", date(now))
	fmt.Fprintf(&b, "last-entry: %s\n", timestamp(now))
	b.WriteString("entry-count: 1\n")
	fmt.Fprintf(&b, "summary: %s\n", scalar(summary))
	b.WriteString("---\n\n")
	fmt.Fprintf(&b, "## %s — %s\n\n", timestamp(now), Signature)
	b.WriteString(body)
	fmt.Fprintf(&b, "\n\nsigned: %s\n", Signature)
	return b.String()
}

// Insights renders insights.md with a placeholder sentence.
func Insights(w Walnut, now time.Time) string {
	var placeholder string
	switch w.Kind {
	case KindLife:
		placeholder = "Insights surface here over time. Your squirrel adds patterns, observations, and\n" +
			"things worth remembering that don't fit in the log.\n"
	case KindPerson:
		placeholder = fmt.Sprintf("What you know about %s surfaces here over time.\n", w.Name)
	default:
		placeholder = "Insights surface here over time.\n"
	}
	return frontmatter(w, now) + placeholder
}

// Tasks renders tasks.md with one active task.
func Tasks(w Walnut, now time.Time) string {
	var task string
	if w.listsFocus() {
		task = w.Focus
	} else {
		switch w.Kind {
		case KindLife:
			task = "Set up your World"
		case KindPerson:
			task = "Add context about " + w.Name
		default:
			task = "Define first milestone"
		}
	}
	return frontmatter(w, now) + "## Active\n\n- [ ] " + task + "\n"
}

func frontmatter(w Walnut, now time.Time) string {
	return fmt.Sprintf("---\nwalnut: %s\ncreated: %s\n---\n\n", scalar(w.Slug), date(now))
}

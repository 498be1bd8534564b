package provisioning

import "strings"

// Category classifies one line of the Event Log.
type Category string

const (
	CategoryActive  Category = "active"
	CategorySuccess Category = "success"
	CategorySkip    Category = "skip"
	CategoryError   Category = "error"
	CategoryInfo    Category = "info"
	CategoryExplain Category = "explain"
	CategoryCommand Category = "command"
)

// Entry is one line of the Event Log.
type Entry struct {
	Text     string
	Category Category
}

// EventLog is the ordered timeline of a run. It is append-only.
type EventLog struct {
	entries []Entry
}

// Append adds a line at the end of the log.
func (l *EventLog) Append(text string, category Category) {
	l.entries = append(l.entries, Entry{Text: text, Category: category})
}

// Entries returns a copy of the log in program order.
func (l *EventLog) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of lines logged so far.
func (l *EventLog) Len() int {
	return len(l.entries)
}

// Fallbacks collects the commands a user has to run by hand, in the order
// they should be pasted. It is append-only.
type Fallbacks struct {
	commands []string
}

// Add appends a command.
func (f *Fallbacks) Add(command string) {
	f.commands = append(f.commands, command)
}

// Contains reports whether command was already queued.
func (f *Fallbacks) Contains(command string) bool {
	for _, c := range f.commands {
		if c == command {
			return true
		}
	}
	return false
}

// Commands returns a copy of the queued commands.
func (f *Fallbacks) Commands() []string {
	out := make([]string, len(f.commands))
	copy(out, f.commands)
	return out
}

// Joined returns every command on its own line, ready to copy in one go.
func (f *Fallbacks) Joined() string {
	return strings.Join(f.commands, "\n")
}

// Len returns the number of queued commands.
func (f *Fallbacks) Len() int {
	return len(f.commands)
}

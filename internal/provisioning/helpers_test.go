package provisioning

import (
	"fmt"
	"sync"
	"time"

	"github.com/alivecomputer/setup/internal/config"
	"github.com/alivecomputer/setup/internal/platform/fake"
)

var _ Bridge = (*fake.Bridge)(nil)

var fixedNow = time.Date(2026, time.March, 14, 9, 26, 53, 0, time.UTC)

// MockObserver is a test implementation of Observer that records events.
type MockObserver struct {
	mu       sync.Mutex
	events   []Event
	messages []string
	fields   map[string]string
}

func NewMockObserver() *MockObserver {
	return &MockObserver{fields: make(map[string]string)}
}

func (m *MockObserver) Printf(format string, v ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, fmt.Sprintf(format, v...))
}

func (m *MockObserver) Event(event Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
}

func (m *MockObserver) Progress(phase string, current, total int) {
	m.Event(Event{
		Type:    EventProgress,
		Phase:   phase,
		Message: "progress",
		Fields: map[string]string{
			"current": fmt.Sprint(current),
			"total":   fmt.Sprint(total),
		},
	})
}

func (m *MockObserver) WithFields(fields map[string]string) Observer {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, v := range fields {
		m.fields[k] = v
	}
	return m
}

// Events returns every recorded event, in order.
func (m *MockObserver) Events() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Event(nil), m.events...)
}

// EventsOfType returns the recorded events of one type, in order.
func (m *MockObserver) EventsOfType(t EventType) []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Event
	for _, e := range m.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// recorder counts metrics callbacks.
type recorder struct {
	steps    map[Outcome]int
	runs     int
	failed   bool
	commands int
}

func newRecorder() *recorder {
	return &recorder{steps: make(map[Outcome]int)}
}

func (r *recorder) StepFinished(_ string, outcome Outcome, _ time.Duration) {
	r.steps[outcome]++
}

func (r *recorder) RunFinished(hasFallbacks bool, fallbacks int, _ time.Duration) {
	r.runs++
	r.failed = hasFallbacks
	r.commands = fallbacks
}

func anaConfig() *config.Configuration {
	return &config.Configuration{
		Name: "Ana",
		Projects: []config.Project{
			{Name: "Moonbeam", Goal: "Ship MVP", Type: config.ProjectVenture},
		},
		Theme: config.DefaultTheme,
	}
}

func allTools(home string) *fake.Bridge {
	return fake.New(home, "brew", "node", "npm", "claude")
}

func texts(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Text)
	}
	return out
}

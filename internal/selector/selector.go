// Package selector implements the headless picker used when composing an
// invoice: a text input backed by a dropdown of the user's businesses or
// clients. The model carries the interaction contract (open/close, stale
// response handling, selection formatting); rendering belongs to the host.
package selector

import (
	"fmt"

	"github.com/invoza/webapp/internal/api"
)

// State is the widget's lifecycle: Closed → OpenLoading → OpenLoaded → Closed.
type State int

const (
	Closed State = iota
	OpenLoading
	OpenLoaded
)

// Usage is the plan footer: "current/limit used".
type Usage struct {
	Count int
	Limit int
}

// Model is one widget instance. It never mutates entities; it only reads
// and selects. Not safe for concurrent use: the hosting UI is single
// threaded and event driven.
type Model struct {
	kind  api.Kind
	state State
	gen   uint64

	items    []api.Entity
	usage    Usage
	value    string
	selected *api.Entity

	onChange func(string)
	onSelect func(api.Entity)
}

// New builds a closed widget for the given directory. The callbacks mirror
// the host form's bindings: onChange receives every value update (typed or
// selected), onSelect fires only on an actual selection. Either may be nil.
func New(kind api.Kind, onChange func(string), onSelect func(api.Entity)) *Model {
	return &Model{
		kind:     kind,
		usage:    Usage{Limit: kind.DefaultLimit()},
		onChange: onChange,
		onSelect: onSelect,
	}
}

// Focus opens the dropdown in its loading state and returns the generation
// token the eventual fetch response must present. Focusing while already
// open starts a fresh fetch; the newer generation wins.
func (m *Model) Focus() uint64 {
	m.gen++
	m.state = OpenLoading
	return m.gen
}

// Resolve applies a fetched listing. Responses from a superseded focus (or
// arriving after dismissal) are discarded, which is what prevents a slow
// first fetch from clobbering a fast second one.
func (m *Model) Resolve(gen uint64, items []api.Entity, usage Usage) bool {
	if gen != m.gen || m.state == Closed {
		return false
	}
	m.items = items
	m.usage = usage
	m.state = OpenLoaded
	return true
}

// Fail marks the in-flight fetch as failed, leaving an empty loaded list.
// Stale failures are discarded like stale successes.
func (m *Model) Fail(gen uint64) bool {
	if gen != m.gen || m.state == Closed {
		return false
	}
	m.items = nil
	m.state = OpenLoaded
	return true
}

// SetValue records raw typed text. Typing never filters the dropdown and
// never closes it; the value is simply reported upward.
func (m *Model) SetValue(text string) {
	m.value = text
	if m.onChange != nil {
		m.onChange(text)
	}
}

// Select picks an entity: the input takes the display label, the selection
// is emitted, and the dropdown closes.
func (m *Model) Select(e api.Entity) {
	m.value = Label(e)
	m.selected = &e
	m.state = Closed
	if m.onChange != nil {
		m.onChange(m.value)
	}
	if m.onSelect != nil {
		m.onSelect(e)
	}
}

// Dismiss closes the dropdown with no side effects. It covers both an
// outside pointer event and the Escape key.
func (m *Model) Dismiss() {
	m.state = Closed
}

func (m *Model) Kind() api.Kind       { return m.kind }
func (m *Model) State() State         { return m.state }
func (m *Model) Value() string        { return m.value }
func (m *Model) Items() []api.Entity  { return m.items }
func (m *Model) Usage() Usage         { return m.usage }
func (m *Model) Selected() *api.Entity { return m.selected }

// Label formats an entity for the input value: "<name> (<email>)" when an
// email is present, bare "<name>" otherwise.
func Label(e api.Entity) string {
	if e.Email != "" {
		return fmt.Sprintf("%s (%s)", e.Name, e.Email)
	}
	return e.Name
}

// FooterText renders the plan usage line shown under the list.
func (m *Model) FooterText() string {
	return fmt.Sprintf("%d/%d %s used", m.usage.Count, m.usage.Limit, m.kind.Plural())
}

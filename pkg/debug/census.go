package debug

import (
	"reflect"
	"sort"
	"sync"

	"github.com/go-drift/beacon/pkg/presenter"
)

// Member is the view of a presenter the census needs. *presenter.Base and
// anything embedding it satisfies it.
type Member interface {
	Phase() presenter.Phase
}

// PresenterSnapshot describes one tracked presenter binding.
type PresenterSnapshot struct {
	Type  string `json:"type" yaml:"type"`
	Phase string `json:"phase" yaml:"phase"`
}

// Census tracks live presenter bindings for diagnostic endpoints. Binding
// glue adds a presenter when it mounts and removes it when it unmounts;
// the runtime itself never consults the census.
type Census struct {
	mu      sync.Mutex
	members map[Member]struct{}
}

// NewCensus creates an empty census.
func NewCensus() *Census {
	return &Census{members: make(map[Member]struct{})}
}

// Add starts tracking a presenter. Adding the same presenter twice is a
// no-op.
func (c *Census) Add(m Member) {
	if m == nil {
		return
	}
	c.mu.Lock()
	c.members[m] = struct{}{}
	c.mu.Unlock()
}

// Remove stops tracking a presenter. Unknown members are ignored.
func (c *Census) Remove(m Member) {
	c.mu.Lock()
	delete(c.members, m)
	c.mu.Unlock()
}

// Len returns the number of tracked presenters.
func (c *Census) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.members)
}

// Snapshot describes every tracked presenter, sorted by type then phase.
func (c *Census) Snapshot() []PresenterSnapshot {
	c.mu.Lock()
	snaps := make([]PresenterSnapshot, 0, len(c.members))
	for m := range c.members {
		snaps = append(snaps, PresenterSnapshot{
			Type:  reflect.TypeOf(m).String(),
			Phase: m.Phase().String(),
		})
	}
	c.mu.Unlock()

	sort.Slice(snaps, func(i, j int) bool {
		if snaps[i].Type != snaps[j].Type {
			return snaps[i].Type < snaps[j].Type
		}
		return snaps[i].Phase < snaps[j].Phase
	})
	return snaps
}

// Package debug provides runtime introspection for the Beacon registry and
// presenter bindings: serializable snapshots and an optional HTTP debug
// server.
package debug

import (
	"encoding/json"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/go-drift/beacon/pkg/registry"
)

// EntrySnapshot describes one registry entry at capture time.
type EntrySnapshot struct {
	Type     string `json:"type" yaml:"type"`
	Name     string `json:"name,omitempty" yaml:"name,omitempty"`
	Built    bool   `json:"built" yaml:"built"`
	Instance string `json:"instance,omitempty" yaml:"instance,omitempty"`
}

// RegistrySnapshot is a point-in-time view of a registry's live entries.
type RegistrySnapshot struct {
	CapturedAt time.Time       `json:"capturedAt" yaml:"capturedAt"`
	Count      int             `json:"count" yaml:"count"`
	Built      int             `json:"built" yaml:"built"`
	Entries    []EntrySnapshot `json:"entries,omitempty" yaml:"entries,omitempty"`
}

// CaptureRegistry snapshots the live entries of reg. Entries are sorted by
// type then name so repeated captures diff cleanly.
func CaptureRegistry(reg *registry.Registry) RegistrySnapshot {
	return capture(reg.Entries())
}

// CaptureScope snapshots the entries registered in one scope, excluding its
// parent chain.
func CaptureScope(scope *registry.Scope) RegistrySnapshot {
	return capture(scope.Entries())
}

func capture(infos []registry.EntryInfo) RegistrySnapshot {
	snap := RegistrySnapshot{CapturedAt: time.Now(), Count: len(infos)}
	for _, info := range infos {
		if info.Built {
			snap.Built++
		}
		snap.Entries = append(snap.Entries, EntrySnapshot{
			Type:     info.Key.Type.String(),
			Name:     info.Key.Name,
			Built:    info.Built,
			Instance: info.InstanceType,
		})
	}
	sort.Slice(snap.Entries, func(i, j int) bool {
		if snap.Entries[i].Type != snap.Entries[j].Type {
			return snap.Entries[i].Type < snap.Entries[j].Type
		}
		return snap.Entries[i].Name < snap.Entries[j].Name
	})
	return snap
}

// JSON renders the snapshot as indented JSON.
func (s RegistrySnapshot) JSON() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// YAML renders the snapshot as YAML, the format used by beacon dump files.
func (s RegistrySnapshot) YAML() ([]byte, error) {
	return yaml.Marshal(s)
}

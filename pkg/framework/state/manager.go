package state

import (
	"fmt"
	"io"

	"github.com/Masterminds/semver/v3"

	"github.com/justyntemme/handysynth/pkg/framework/param"
)

// Manager snapshots a parameter registry to a tree and restores it.
type Manager struct {
	treeType string
	version  *semver.Version
	registry *param.Registry
}

// NewManager creates a state manager writing trees of the given type. The
// version is stamped into every blob and bounds what Load accepts.
func NewManager(registry *param.Registry, treeType, version string) (*Manager, error) {
	v, err := semver.NewVersion(version)
	if err != nil {
		return nil, fmt.Errorf("state: version %q: %w", version, err)
	}
	return &Manager{
		treeType: treeType,
		version:  v,
		registry: registry,
	}, nil
}

// Type returns the tree type tag the manager writes and accepts.
func (m *Manager) Type() string {
	return m.treeType
}

// Version returns the version stamped into saved blobs.
func (m *Manager) Version() *semver.Version {
	return m.version
}

// Snapshot captures every parameter in its plain range plus the soundfont
// path. An empty path is saved as no soundfont.
func (m *Manager) Snapshot(soundfontPath string) Tree {
	params := m.registry.All()
	tree := Tree{
		Type:   m.treeType,
		Params: make([]Property, 0, len(params)),
	}
	for _, p := range params {
		tree.Params = append(tree.Params, Property{ID: p.Key, Value: p.GetPlainValue()})
	}
	if soundfontPath != "" {
		tree.Soundfont = &Soundfont{Path: soundfontPath}
	}
	return tree
}

// Apply writes the tree's values into the registry without notifying
// listeners. Unknown ids are skipped. Parameters absent from the tree keep
// their current value.
func (m *Manager) Apply(tree Tree) {
	for _, prop := range tree.Params {
		if p := m.registry.GetByKey(prop.ID); p != nil {
			p.SetPlainValue(prop.Value)
		}
	}
}

// Save writes the current registry state as a blob.
func (m *Manager) Save(w io.Writer, soundfontPath string) error {
	return Encode(w, m.Snapshot(soundfontPath), m.version)
}

// Load reads a blob. It does not touch the registry; callers check
// Tree.Type against Type before calling Apply.
func (m *Manager) Load(r io.Reader) (Tree, error) {
	tree, _, err := Decode(r, m.version)
	return tree, err
}

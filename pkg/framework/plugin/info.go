// Package plugin holds the metadata a plugin reports to its host.
package plugin

import (
	"errors"
	"fmt"

	"github.com/Masterminds/semver/v3"
	"github.com/google/uuid"
)

// Categories understood by hosts.
const (
	CategoryInstrument = "Instrument|Synth|Sampler"
	CategoryFx         = "Fx"
)

// namespace scopes plugin UIDs so they cannot collide with other name-based
// UUIDs derived from the same string.
var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/justyntemme/handysynth"))

// Info contains plugin metadata
type Info struct {
	ID       string // Unique plugin identifier (e.g., "com.example.myplugin")
	Name     string // Display name
	Version  string // Semantic version (e.g., "1.0.0")
	Vendor   string // Company/developer name
	Category string
}

// UID derives the 16-byte class id from the string ID. The same ID always
// yields the same UID.
func (i Info) UID() [16]byte {
	return uuid.NewSHA1(namespace, []byte(i.ID))
}

// SemVer parses Version.
func (i Info) SemVer() (*semver.Version, error) {
	v, err := semver.StrictNewVersion(i.Version)
	if err != nil {
		return nil, fmt.Errorf("plugin %q: version %q: %w", i.ID, i.Version, err)
	}
	return v, nil
}

// Validate checks that the metadata can be registered with a host.
func (i Info) Validate() error {
	var errs []error
	if i.ID == "" {
		errs = append(errs, errors.New("plugin: empty ID"))
	}
	if i.Name == "" {
		errs = append(errs, fmt.Errorf("plugin %q: empty name", i.ID))
	}
	if _, err := i.SemVer(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

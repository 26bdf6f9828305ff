// Package importer defines the contract every external task source
// implements, and the registry the orchestrators look importers up in.
package importer

import (
	"context"

	"github.com/harrisonrobin/agenda/pkg/model"
)

// Importer authenticates with one external service, lists its selectable
// sources, and normalizes that source's records into Tasks.
type Importer interface {
	// Name is the human-readable origin stamped on produced tasks.
	Name() string

	// Authenticate establishes credentials. It is idempotent and reports
	// failure (missing credentials, failed handshake) as false rather than
	// an error. The other methods may only be called after a true result.
	Authenticate(ctx context.Context) bool

	// AvailableSources lists the selectable boards/calendars.
	AvailableSources(ctx context.Context) ([]model.Source, error)

	// Tasks fetches and fully normalizes every item in the given source.
	Tasks(ctx context.Context, sourceID string) ([]model.Task, error)
}

// Registry is a fixed mapping from a short origin key to one importer,
// built once per process. Lookup by unknown key is reported to the caller,
// never a panic.
type Registry struct {
	importers map[string]Importer
	keys      []string
}

func NewRegistry() *Registry {
	return &Registry{importers: make(map[string]Importer)}
}

// Register adds an importer under key. Keys keep registration order so the
// interactive flow visits importers deterministically.
func (r *Registry) Register(key string, imp Importer) {
	if _, exists := r.importers[key]; !exists {
		r.keys = append(r.keys, key)
	}
	r.importers[key] = imp
}

func (r *Registry) Get(key string) (Importer, bool) {
	imp, ok := r.importers[key]
	return imp, ok
}

// Keys returns the registered keys in registration order.
func (r *Registry) Keys() []string {
	keys := make([]string, len(r.keys))
	copy(keys, r.keys)
	return keys
}

// Package store holds the in-memory state shared by the web handlers: the
// task accumulator and the sources last listed per importer key.
package store

import (
	"sync"

	"github.com/harrisonrobin/agenda/pkg/model"
)

// Accumulator is an explicitly passed, lock-guarded handle; concurrent web
// requests append to the same collection without racing.
type Accumulator struct {
	mu      sync.RWMutex
	tasks   []model.Task
	sources map[string][]model.Source
}

func New() *Accumulator {
	return &Accumulator{sources: make(map[string][]model.Source)}
}

func (a *Accumulator) Add(tasks ...model.Task) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.tasks = append(a.tasks, tasks...)
}

// All returns a copy; callers sort and render without holding the lock.
func (a *Accumulator) All() []model.Task {
	a.mu.RLock()
	defer a.mu.RUnlock()
	tasks := make([]model.Task, len(a.tasks))
	copy(tasks, a.tasks)
	return tasks
}

func (a *Accumulator) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.tasks)
}

func (a *Accumulator) Clear() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.tasks = nil
}

// SetSources records the sources last listed for an importer key.
func (a *Accumulator) SetSources(key string, sources []model.Source) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sources[key] = sources
}

func (a *Accumulator) Sources(key string) []model.Source {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.sources[key]
}

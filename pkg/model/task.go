package model

import (
	"sort"
	"strings"
	"time"
)

// Task is the canonical record every importer normalizes into. A Task owns
// all of its fields; nothing is shared with the origin response after
// construction.
type Task struct {
	Title          string
	Status         string
	DueDate        time.Time // zero value means no due date
	Assignees      []string
	Labels         []string
	Source         string
	SourceID       string
	AdditionalData map[string]string
}

// Source identifies a selectable container (a board, a calendar) within an
// origin service. Listed fresh each time, never persisted.
type Source struct {
	ID   string
	Name string
}

// latest orders tasks without a due date after every dated task.
var latest = time.Date(9999, time.December, 31, 23, 59, 59, 0, time.UTC)

func (t Task) dueOrLatest() time.Time {
	if t.DueDate.IsZero() {
		return latest
	}
	return t.DueDate
}

// SortByDue returns the tasks sorted ascending by due date, undated tasks
// last. The sort is stable so ties keep their input order.
func SortByDue(tasks []Task) []Task {
	sorted := make([]Task, len(tasks))
	copy(sorted, tasks)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].dueOrLatest().Before(sorted[j].dueOrLatest())
	})
	return sorted
}

const dueLayout = "2006-01-02 15:04"

// DueDisplay formats the due date for both the terminal and web renderers.
func (t Task) DueDisplay() string {
	if t.DueDate.IsZero() {
		return "No due date"
	}
	return t.DueDate.Format(dueLayout)
}

// AssigneesDisplay joins assignees one per line.
func (t Task) AssigneesDisplay() string {
	if len(t.Assignees) == 0 {
		return "No assignees"
	}
	return strings.Join(t.Assignees, "\n")
}

// LabelsDisplay joins labels one per line.
func (t Task) LabelsDisplay() string {
	if len(t.Labels) == 0 {
		return "No labels"
	}
	return strings.Join(t.Labels, "\n")
}

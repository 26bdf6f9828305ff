package store

import (
	"testing"

	"github.com/harrisonrobin/agenda/pkg/model"
)

func TestAddAndAll(t *testing.T) {
	acc := New()
	acc.Add(model.Task{Title: "one"}, model.Task{Title: "two"})
	acc.Add(model.Task{Title: "three"})

	tasks := acc.All()
	if len(tasks) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(tasks))
	}
	if acc.Len() != 3 {
		t.Errorf("expected Len 3, got %d", acc.Len())
	}
}

func TestAllReturnsCopy(t *testing.T) {
	acc := New()
	acc.Add(model.Task{Title: "original"})

	tasks := acc.All()
	tasks[0].Title = "mutated"

	if acc.All()[0].Title != "original" {
		t.Error("mutating the returned slice leaked into the accumulator")
	}
}

func TestClear(t *testing.T) {
	acc := New()
	acc.Add(model.Task{Title: "one"})
	acc.Clear()

	if acc.Len() != 0 {
		t.Errorf("expected empty accumulator after Clear, got %d tasks", acc.Len())
	}
}

func TestSourcesPerKey(t *testing.T) {
	acc := New()
	acc.SetSources("trello", []model.Source{{ID: "b1", Name: "Board"}})

	sources := acc.Sources("trello")
	if len(sources) != 1 || sources[0].ID != "b1" {
		t.Errorf("unexpected sources: %v", sources)
	}
	if got := acc.Sources("gcal"); got != nil {
		t.Errorf("expected nil sources for unknown key, got %v", got)
	}
}

package gcal

import (
	"testing"
	"time"

	"google.golang.org/api/calendar/v3"
)

func TestNormalizeEventWithDateTime(t *testing.T) {
	event := &calendar.Event{
		Id:          "ev1",
		Summary:     "Design review",
		Description: "Quarterly review",
		Location:    "Room 4",
		Start:       &calendar.EventDateTime{DateTime: "2024-05-01T10:00:00Z"},
		Attendees: []*calendar.EventAttendee{
			{Email: "ada@example.com"},
			{Email: "grace@example.com"},
		},
	}

	task := normalizeEvent(event)

	if task.Title != "Design review" {
		t.Errorf("expected title 'Design review', got %q", task.Title)
	}
	if task.Status != "Scheduled" {
		t.Errorf("expected status Scheduled, got %q", task.Status)
	}
	want := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	if !task.DueDate.Equal(want) {
		t.Errorf("expected due %v, got %v", want, task.DueDate)
	}
	if len(task.Assignees) != 2 || task.Assignees[0] != "ada@example.com" {
		t.Errorf("unexpected assignees: %v", task.Assignees)
	}
	if len(task.Labels) != 0 {
		t.Errorf("expected no labels, got %v", task.Labels)
	}
	if task.Source != "Google Calendar" || task.SourceID != "ev1" {
		t.Errorf("unexpected source fields: %q %q", task.Source, task.SourceID)
	}
	if task.AdditionalData["description"] != "Quarterly review" || task.AdditionalData["location"] != "Room 4" {
		t.Errorf("unexpected additional data: %v", task.AdditionalData)
	}
}

func TestNormalizeEventAllDay(t *testing.T) {
	event := &calendar.Event{
		Id:      "ev2",
		Summary: "Offsite",
		Start:   &calendar.EventDateTime{Date: "2024-06-15"},
	}

	task := normalizeEvent(event)

	want := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	if !task.DueDate.Equal(want) {
		t.Errorf("expected due %v, got %v", want, task.DueDate)
	}
}

func TestNormalizeEventWithoutStart(t *testing.T) {
	task := normalizeEvent(&calendar.Event{Id: "ev3", Summary: "Floating"})

	if !task.DueDate.IsZero() {
		t.Errorf("expected no due date, got %v", task.DueDate)
	}
	if got := task.DueDisplay(); got != "No due date" {
		t.Errorf("expected \"No due date\", got %q", got)
	}
	if got := task.AssigneesDisplay(); got != "No assignees" {
		t.Errorf("expected \"No assignees\", got %q", got)
	}
}

// Package gcal imports upcoming Google Calendar events as canonical tasks.
package gcal

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"google.golang.org/api/calendar/v3"

	"github.com/harrisonrobin/agenda/pkg/auth"
	"github.com/harrisonrobin/agenda/pkg/model"
)

const (
	sourceName      = "Google Calendar"
	statusScheduled = "Scheduled"

	// maxEvents caps a fetch at the soonest future events; no pagination.
	maxEvents = 100
)

// Importer normalizes calendar events into tasks. Token persistence goes
// through the injected TokenStore so tests never touch the filesystem.
//
// Unlike the Trello importer, listing and fetch failures degrade to empty
// results with a logged warning instead of propagating; calendar access
// flakes on expired consent, and an empty import is the more useful outcome
// there.
type Importer struct {
	store auth.TokenStore
	svc   *calendar.Service
	now   func() time.Time
}

func NewImporter(store auth.TokenStore) *Importer {
	return &Importer{store: store, now: time.Now}
}

func (i *Importer) Name() string { return sourceName }

// Authenticate loads or refreshes the stored token, running the interactive
// consent flow when neither works. Idempotent: once a service exists it is
// reused.
func (i *Importer) Authenticate(ctx context.Context) bool {
	if i.svc != nil {
		return true
	}

	config, err := auth.LoadConfig(calendar.CalendarReadonlyScope)
	if err != nil {
		log.Warn("Google Calendar authentication failed", "err", err)
		return false
	}

	svc, err := auth.CalendarService(ctx, config, i.store)
	if err != nil {
		log.Warn("Google Calendar authentication failed", "err", err)
		return false
	}
	i.svc = svc
	return true
}

func (i *Importer) AvailableSources(ctx context.Context) ([]model.Source, error) {
	list, err := i.svc.CalendarList.List().Context(ctx).Do()
	if err != nil {
		log.Warn("error fetching calendars", "err", err)
		return nil, nil
	}

	sources := make([]model.Source, 0, len(list.Items))
	for _, cal := range list.Items {
		sources = append(sources, model.Source{ID: cal.Id, Name: cal.Summary})
	}
	return sources, nil
}

// Tasks fetches up to maxEvents of the soonest future events, ordered by
// start time, and normalizes each one.
func (i *Importer) Tasks(ctx context.Context, calendarID string) ([]model.Task, error) {
	events, err := i.svc.Events.List(calendarID).
		TimeMin(i.now().UTC().Format(time.RFC3339)).
		MaxResults(maxEvents).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).
		Do()
	if err != nil {
		log.Warn("error fetching events", "err", err)
		return nil, nil
	}

	tasks := make([]model.Task, 0, len(events.Items))
	for _, event := range events.Items {
		tasks = append(tasks, normalizeEvent(event))
	}
	return tasks, nil
}

func normalizeEvent(event *calendar.Event) model.Task {
	var due time.Time
	if event.Start != nil {
		switch {
		case event.Start.DateTime != "":
			if t, err := time.Parse(time.RFC3339, event.Start.DateTime); err == nil {
				due = t
			} else {
				log.Debug("unparseable event start", "event", event.Id, "start", event.Start.DateTime)
			}
		case event.Start.Date != "":
			// All-day events carry a date only.
			if t, err := time.Parse("2006-01-02", event.Start.Date); err == nil {
				due = t
			}
		}
	}

	assignees := make([]string, 0, len(event.Attendees))
	for _, attendee := range event.Attendees {
		assignees = append(assignees, attendee.Email)
	}

	return model.Task{
		Title:     event.Summary,
		Status:    statusScheduled,
		DueDate:   due,
		Assignees: assignees,
		Labels:    []string{},
		Source:    sourceName,
		SourceID:  event.Id,
		AdditionalData: map[string]string{
			"description": event.Description,
			"location":    event.Location,
		},
	}
}

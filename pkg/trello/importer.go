// Package trello imports cards from Trello boards as canonical tasks.
package trello

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/harrisonrobin/agenda/pkg/model"
)

const sourceName = "Trello"

// Importer normalizes Trello cards into tasks. Credentials come from the
// TRELLO_API_KEY and TRELLO_TOKEN environment variables.
//
// Transport failures while listing boards or fetching cards propagate to the
// caller; this is the loud half of the importer error policy, so a
// misconfigured key or token surfaces instead of producing a silently empty
// import.
type Importer struct {
	key    string
	token  string
	client *Client
}

func NewImporter(key, token string) *Importer {
	return &Importer{
		key:    key,
		token:  token,
		client: NewClient(key, token),
	}
}

func (i *Importer) Name() string { return sourceName }

// Authenticate verifies credentials by listing the member's boards. An empty
// board list still authenticates; only missing credentials or a failed call
// report false.
func (i *Importer) Authenticate(ctx context.Context) bool {
	if i.key == "" || i.token == "" {
		log.Warn("Trello credentials missing; set TRELLO_API_KEY and TRELLO_TOKEN")
		return false
	}
	if _, err := i.client.Boards(ctx); err != nil {
		log.Warn("Trello authentication failed", "err", err)
		return false
	}
	return true
}

func (i *Importer) AvailableSources(ctx context.Context) ([]model.Source, error) {
	boards, err := i.client.Boards(ctx)
	if err != nil {
		return nil, err
	}
	sources := make([]model.Source, 0, len(boards))
	for _, b := range boards {
		sources = append(sources, model.Source{ID: b.ID, Name: b.Name})
	}
	return sources, nil
}

// Tasks fetches every card on the board and normalizes it: list membership
// becomes the status, member names the assignees, label names the labels,
// and the card's ISO-8601 due timestamp the due date.
func (i *Importer) Tasks(ctx context.Context, boardID string) ([]model.Task, error) {
	cards, err := i.client.Cards(ctx, boardID)
	if err != nil {
		return nil, err
	}
	lists, err := i.client.Lists(ctx, boardID)
	if err != nil {
		return nil, err
	}

	listNames := make(map[string]string, len(lists))
	for _, l := range lists {
		listNames[l.ID] = l.Name
	}

	tasks := make([]model.Task, 0, len(cards))
	for _, card := range cards {
		tasks = append(tasks, normalizeCard(card, listNames))
	}
	return tasks, nil
}

func normalizeCard(card Card, listNames map[string]string) model.Task {
	var due time.Time
	if card.Due != "" {
		// Trello emits ISO-8601 with a trailing Z; RFC3339 covers it.
		if t, err := time.Parse(time.RFC3339, card.Due); err == nil {
			due = t
		} else {
			log.Debug("unparseable card due date", "card", card.ID, "due", card.Due)
		}
	}

	status, ok := listNames[card.IDList]
	if !ok {
		status = "Unknown"
	}

	assignees := make([]string, 0, len(card.Members))
	for _, m := range card.Members {
		assignees = append(assignees, m.FullName)
	}
	labels := make([]string, 0, len(card.Labels))
	for _, l := range card.Labels {
		labels = append(labels, l.Name)
	}

	return model.Task{
		Title:          card.Name,
		Status:         status,
		DueDate:        due,
		Assignees:      assignees,
		Labels:         labels,
		Source:         sourceName,
		SourceID:       card.ID,
		AdditionalData: map[string]string{"url": card.URL},
	}
}

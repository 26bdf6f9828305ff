package trello

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestImporter(t *testing.T, handler http.Handler) *Importer {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return &Importer{
		key:    "test-key",
		token:  "test-token",
		client: NewClient("test-key", "test-token").WithBaseURL(srv.URL),
	}
}

func TestAuthenticateMissingCredentials(t *testing.T) {
	imp := NewImporter("", "")
	assert.False(t, imp.Authenticate(context.Background()))
}

func TestAuthenticateWithEmptyBoardList(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/members/me/boards", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		assert.Equal(t, "test-token", r.URL.Query().Get("token"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	})
	imp := newTestImporter(t, mux)

	// An empty board list is not an auth failure.
	assert.True(t, imp.Authenticate(context.Background()))

	sources, err := imp.AvailableSources(context.Background())
	require.NoError(t, err)
	assert.Empty(t, sources)
}

func TestAuthenticateTransportFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/members/me/boards", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid token", http.StatusUnauthorized)
	})
	imp := newTestImporter(t, mux)
	assert.False(t, imp.Authenticate(context.Background()))
}

func TestAvailableSourcesPropagatesErrors(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/members/me/boards", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	})
	imp := newTestImporter(t, mux)

	_, err := imp.AvailableSources(context.Background())
	assert.Error(t, err)
}

func TestTasksNormalization(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/boards/b1/cards", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "true", r.URL.Query().Get("members"))
		assert.Equal(t, "fullName", r.URL.Query().Get("member_fields"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{
				"id": "c1",
				"name": "Ship release",
				"due": "2024-05-01T10:00:00Z",
				"idList": "l1",
				"url": "https://trello.com/c/c1",
				"members": [{"fullName": "Ada Lovelace"}, {"fullName": "Grace Hopper"}],
				"labels": [{"name": "urgent"}]
			},
			{
				"id": "c2",
				"name": "Orphan card",
				"due": null,
				"idList": "l-unknown",
				"url": "https://trello.com/c/c2",
				"members": [],
				"labels": []
			}
		]`))
	})
	mux.HandleFunc("/boards/b1/lists", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id": "l1", "name": "In Progress"}]`))
	})
	imp := newTestImporter(t, mux)

	tasks, err := imp.Tasks(context.Background(), "b1")
	require.NoError(t, err)
	require.Len(t, tasks, 2)

	ship := tasks[0]
	assert.Equal(t, "Ship release", ship.Title)
	assert.Equal(t, "In Progress", ship.Status)
	assert.Equal(t, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), ship.DueDate)
	assert.Equal(t, []string{"Ada Lovelace", "Grace Hopper"}, ship.Assignees)
	assert.Equal(t, []string{"urgent"}, ship.Labels)
	assert.Equal(t, "Trello", ship.Source)
	assert.Equal(t, "c1", ship.SourceID)
	assert.Equal(t, "https://trello.com/c/c1", ship.AdditionalData["url"])
	assert.Equal(t, "2024-05-01 10:00", ship.DueDisplay())

	orphan := tasks[1]
	assert.True(t, orphan.DueDate.IsZero())
	assert.Equal(t, "Unknown", orphan.Status)
	assert.Empty(t, orphan.Assignees)
	assert.Equal(t, "No assignees", orphan.AssigneesDisplay())
	assert.Equal(t, "No labels", orphan.LabelsDisplay())
}

func TestTasksPropagatesFetchErrors(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/boards/b1/cards", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "board not found", http.StatusNotFound)
	})
	imp := newTestImporter(t, mux)

	_, err := imp.Tasks(context.Background(), "b1")
	assert.Error(t, err)
}

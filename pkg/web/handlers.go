package web

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harrisonrobin/agenda/pkg/model"
	"github.com/harrisonrobin/agenda/pkg/summarize"
)

// Summarizer produces the LLM analysis of the accumulated tasks.
type Summarizer interface {
	Summarize(ctx context.Context, tasks []model.Task, prompt string) (string, error)
}

func (s *Server) handleIndex(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"importers":     s.registry.Keys(),
		"defaultPrompt": summarize.DefaultPrompt,
	})
}

// handleSources authenticates the importer and returns the source picker
// fragment. Unknown importer keys are a client error, answered before any
// authentication attempt.
func (s *Server) handleSources(c *gin.Context) {
	key := c.Param("importer")
	imp, ok := s.registry.Get(key)
	if !ok {
		c.String(http.StatusNotFound, "Importer not found")
		return
	}

	if !imp.Authenticate(c.Request.Context()) {
		c.HTML(http.StatusOK, "error.html", gin.H{
			"message": fmt.Sprintf("Failed to authenticate with %s", key),
		})
		return
	}

	sources, err := imp.AvailableSources(c.Request.Context())
	if err != nil {
		c.HTML(http.StatusOK, "error.html", gin.H{
			"message": fmt.Sprintf("Failed to list %s sources: %v", key, err),
		})
		return
	}
	s.acc.SetSources(key, sources)

	c.HTML(http.StatusOK, "source_list.html", gin.H{
		"importer": key,
		"sources":  sources,
	})
}

// handleImport fetches and normalizes one source's tasks into the shared
// accumulator, then returns the refreshed task table fragment.
func (s *Server) handleImport(c *gin.Context) {
	key := c.Param("importer")
	imp, ok := s.registry.Get(key)
	if !ok {
		c.String(http.StatusNotFound, "Importer not found")
		return
	}

	if !imp.Authenticate(c.Request.Context()) {
		c.HTML(http.StatusOK, "error.html", gin.H{
			"message": fmt.Sprintf("Failed to authenticate with %s", key),
		})
		return
	}

	tasks, err := imp.Tasks(c.Request.Context(), c.Param("sourceId"))
	if err != nil {
		c.HTML(http.StatusOK, "error.html", gin.H{
			"message": fmt.Sprintf("Failed to import from %s: %v", key, err),
		})
		return
	}
	s.acc.Add(tasks...)

	s.renderTaskTable(c)
}

func (s *Server) handleTasks(c *gin.Context) {
	s.renderTaskTable(c)
}

func (s *Server) handleClearTasks(c *gin.Context) {
	s.acc.Clear()
	s.renderTaskTable(c)
}

// handleSummarize sends the full accumulated collection to the language
// model. All failures, including the empty-accumulator short circuit, come
// back as the error fragment rather than a server fault.
func (s *Server) handleSummarize(c *gin.Context) {
	prompt := c.DefaultPostForm("prompt", summarize.DefaultPrompt)

	text, err := s.summarizer.Summarize(c.Request.Context(), s.acc.All(), prompt)
	if err != nil {
		c.HTML(http.StatusOK, "error.html", gin.H{"message": err.Error()})
		return
	}

	c.HTML(http.StatusOK, "summary.html", gin.H{"summary": text})
}

func (s *Server) renderTaskTable(c *gin.Context) {
	c.HTML(http.StatusOK, "task_table.html", gin.H{
		"tasks": model.SortByDue(s.acc.All()),
	})
}

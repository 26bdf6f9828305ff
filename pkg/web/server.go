// Package web serves the minimal browser UI: an index page plus the HTML
// fragments the page swaps in per region.
package web

import (
	"embed"
	"html/template"

	"github.com/gin-gonic/gin"

	"github.com/harrisonrobin/agenda/pkg/importer"
	"github.com/harrisonrobin/agenda/pkg/store"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Server wires the importer registry, the shared accumulator, and the
// summarizer into the gin router.
type Server struct {
	registry   *importer.Registry
	acc        *store.Accumulator
	summarizer Summarizer
	router     *gin.Engine
}

func NewServer(registry *importer.Registry, acc *store.Accumulator, summarizer Summarizer) *Server {
	router := gin.Default()
	router.SetHTMLTemplate(template.Must(template.ParseFS(templatesFS, "templates/*.html")))

	s := &Server{
		registry:   registry,
		acc:        acc,
		summarizer: summarizer,
		router:     router,
	}

	router.GET("/", s.handleIndex)
	router.GET("/sources/:importer", s.handleSources)
	router.POST("/import/:importer/:sourceId", s.handleImport)
	router.GET("/tasks", s.handleTasks)
	router.POST("/clear-tasks", s.handleClearTasks)
	router.POST("/summarize", s.handleSummarize)

	return s
}

// Run starts the web server.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

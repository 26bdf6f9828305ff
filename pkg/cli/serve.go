package cli

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/harrisonrobin/agenda/pkg/config"
	"github.com/harrisonrobin/agenda/pkg/store"
	"github.com/harrisonrobin/agenda/pkg/summarize"
	"github.com/harrisonrobin/agenda/pkg/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the web UI",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		reg, err := newRegistry()
		if err != nil {
			return err
		}

		summarizer := summarize.NewClient(os.Getenv("ANTHROPIC_API_KEY"), cfg.SummaryModel)
		server := web.NewServer(reg, store.New(), summarizer)

		log.Info("starting web server", "addr", cfg.Listen)
		return server.Run(cfg.Listen)
	},
}

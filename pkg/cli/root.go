// Package cli is the agenda command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/harrisonrobin/agenda/pkg/auth"
	"github.com/harrisonrobin/agenda/pkg/config"
	"github.com/harrisonrobin/agenda/pkg/gcal"
	"github.com/harrisonrobin/agenda/pkg/importer"
	"github.com/harrisonrobin/agenda/pkg/trello"
)

// Version is set at build time.
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "agenda",
	Short: "Aggregate tasks from Trello and Google Calendar",
	Long: `agenda pulls task-like items from Trello boards and Google Calendar,
normalizes them into one schema, and shows them as a table, a web UI,
or an LLM-produced summary.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.LoadEnv()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("agenda %s\n", Version)
	},
}

// newRegistry builds the fixed importer set, one instance per process.
func newRegistry() (*importer.Registry, error) {
	tokens, err := auth.NewFileTokenStore()
	if err != nil {
		return nil, fmt.Errorf("resolving token store: %w", err)
	}

	reg := importer.NewRegistry()
	reg.Register("trello", trello.NewImporter(os.Getenv("TRELLO_API_KEY"), os.Getenv("TRELLO_TOKEN")))
	reg.Register("gcal", gcal.NewImporter(tokens))
	return reg, nil
}

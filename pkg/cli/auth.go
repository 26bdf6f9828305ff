package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"google.golang.org/api/calendar/v3"

	"github.com/harrisonrobin/agenda/pkg/auth"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Run the Google Calendar consent flow",
	Long: `Removes any cached token and runs the OAuth2 consent flow again.
Expects the downloaded credentials.json under ~/.config/agenda/.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		tokens, err := auth.NewFileTokenStore()
		if err != nil {
			return err
		}

		if _, err := os.Stat(tokens.Path); err == nil {
			log.Info("removing existing token file", "path", tokens.Path)
			if err := os.Remove(tokens.Path); err != nil {
				return fmt.Errorf("could not delete token file %s: %w. Please delete it manually", tokens.Path, err)
			}
		} else if !os.IsNotExist(err) {
			log.Warn("could not check token file", "path", tokens.Path, "err", err)
		}

		config, err := auth.LoadConfig(calendar.CalendarReadonlyScope)
		if err != nil {
			return err
		}
		if _, err := auth.CalendarService(cmd.Context(), config, tokens); err != nil {
			return fmt.Errorf("authentication failed: %w", err)
		}

		log.Info("authentication successful", "token", tokens.Path)
		return nil
	},
}

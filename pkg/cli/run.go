package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/harrisonrobin/agenda/pkg/importer"
	"github.com/harrisonrobin/agenda/pkg/model"
	"github.com/harrisonrobin/agenda/pkg/render"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Interactively import tasks and print them as a table",
	Run: func(cmd *cobra.Command, args []string) {
		reg, err := newRegistry()
		if err != nil {
			log.Error("An unexpected error occurred", "err", err)
			return
		}

		m := &manager{registry: reg, in: os.Stdin, out: os.Stdout}
		if err := m.run(cmd.Context()); err != nil {
			// Catch-all: report once, never crash the run.
			log.Error("An unexpected error occurred", "err", err)
		}
	},
}

// manager drives the interactive selection flow: per importer, authenticate,
// list sources, prompt for one, fetch, accumulate.
type manager struct {
	registry *importer.Registry
	in       io.Reader
	out      io.Writer
}

func (m *manager) run(ctx context.Context) error {
	scanner := bufio.NewScanner(m.in)
	var all []model.Task

	for _, key := range m.registry.Keys() {
		imp, _ := m.registry.Get(key)
		fmt.Fprintf(m.out, "\nInitializing %s importer...\n", key)

		if !imp.Authenticate(ctx) {
			log.Warn("authentication failed, skipping importer", "importer", key)
			continue
		}

		sources, err := imp.AvailableSources(ctx)
		if err != nil {
			return fmt.Errorf("listing %s sources: %w", key, err)
		}
		if len(sources) == 0 {
			log.Warn("no sources found", "importer", key)
			continue
		}

		fmt.Fprintf(m.out, "\nAvailable %s sources:\n%s\n", key, render.SourceTable(sources))

		idx, ok := m.selectSource(scanner, key, len(sources))
		if !ok {
			continue
		}

		tasks, err := imp.Tasks(ctx, sources[idx].ID)
		if err != nil {
			return fmt.Errorf("importing from %s: %w", key, err)
		}
		all = append(all, tasks...)
	}

	if len(all) == 0 {
		fmt.Fprintln(m.out, "No tasks found from any source")
		return nil
	}
	fmt.Fprintln(m.out, render.TaskTable(all))
	return nil
}

// selectSource prompts for a 1-based source index, re-prompting until the
// input is numeric and in bounds. 0 skips the importer, as does running out
// of input. The returned index is 0-based.
func (m *manager) selectSource(scanner *bufio.Scanner, key string, n int) (int, bool) {
	for {
		fmt.Fprintf(m.out, "\nSelect %s source number (or 0 to skip): ", key)
		if !scanner.Scan() {
			return 0, false
		}

		selection, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
		if err != nil {
			fmt.Fprintln(m.out, "Please enter a valid number.")
			continue
		}
		if selection == 0 {
			return 0, false
		}
		if selection < 1 || selection > n {
			fmt.Fprintln(m.out, "Invalid selection. Please try again.")
			continue
		}
		return selection - 1, true
	}
}

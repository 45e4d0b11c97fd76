package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/civicgraph/civicgraph/internal/entity"
	"github.com/civicgraph/civicgraph/internal/store"
	"github.com/civicgraph/civicgraph/internal/ui"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the data file and re-render the board on changes",
	Long: `Renders the status board for --type and re-renders whenever another
process rewrites the data file. Interrupt to exit.`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringP("type", "t", "action", "entity type to board")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	kind := entity.KindAction
	if k, _ := cmd.Flags().GetString("type"); k != "" {
		kind = entity.Kind(k)
		if !kind.Valid() {
			return fmt.Errorf("unknown entity type %q", k)
		}
	}

	render := func() error {
		entities, err := a.repo.All()
		if err != nil {
			return err
		}
		fmt.Print("\033[H\033[2J")
		fmt.Print(ui.Board(kind, entities))
		return nil
	}
	if err := render(); err != nil {
		return err
	}

	w, err := store.NewWatcher(a.dataPath)
	if err != nil {
		return err
	}
	if err := w.Start(); err != nil {
		return err
	}
	defer w.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	for {
		select {
		case <-sig:
			return nil
		case _, ok := <-w.Changes:
			if !ok {
				return nil
			}
			if err := render(); err != nil {
				return err
			}
		}
	}
}

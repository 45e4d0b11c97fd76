package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/civicgraph/civicgraph/internal/ui"
)

var supportCmd = &cobra.Command{
	Use:   "support <idea-id> <supporter>",
	Short: "Record a supporter on an idea",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		e, err := a.repo.AddSupport(args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Print(ui.Entity(e))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(supportCmd)
}

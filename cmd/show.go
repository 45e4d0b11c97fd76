package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/civicgraph/civicgraph/internal/ui"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one entity",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		e, err := a.repo.Find(args[0])
		if err != nil {
			return err
		}
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(e)
		}
		fmt.Print(ui.Entity(e))
		if history, _ := cmd.Flags().GetBool("history"); history {
			for _, h := range e.History {
				fmt.Printf("  %s %s", h.Timestamp.Format("2006-01-02 15:04"), h.Action)
				if h.Field != "" {
					fmt.Printf(" %s: %q → %q", h.Field, h.OldValue, h.NewValue)
				}
				fmt.Println()
			}
		}
		return nil
	},
}

func init() {
	showCmd.Flags().Bool("json", false, "emit raw JSON")
	showCmd.Flags().Bool("history", false, "include the change history")
	rootCmd.AddCommand(showCmd)
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/civicgraph/civicgraph/internal/entity"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an entity",
	Long: `Deletes the entity permanently. Edges on other entities that point at
the deleted id are left in place and skipped by graph views.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		ok, err := a.repo.Remove(args[0])
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("entity %s: %w", args[0], entity.ErrNotFound)
		}
		fmt.Printf("deleted %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/civicgraph/civicgraph/internal/entity"
	"github.com/civicgraph/civicgraph/internal/ui"
)

var linkCmd = &cobra.Command{
	Use:   "link <source-id> <relation> <target-id>",
	Short: "Add a typed relation between two entities",
	Long: `Adds a typed edge from source to target. Each relation type declares
the entity types it connects:

  ` + relationTable(),
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		e, err := a.engine.Link(args[0], entity.RelationKind(args[1]), args[2])
		if err != nil {
			return err
		}
		fmt.Print(ui.Entity(e))
		return nil
	},
}

var unlinkCmd = &cobra.Command{
	Use:   "unlink <source-id> <relation> <target-id>",
	Short: "Remove a relation between two entities",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		e, err := a.engine.Unlink(args[0], entity.RelationKind(args[1]), args[2])
		if err != nil {
			return err
		}
		fmt.Print(ui.Entity(e))
		return nil
	},
}

func relationTable() string {
	var rows []string
	for _, kind := range entity.RelationKinds() {
		from, to, _ := kind.Endpoints()
		rows = append(rows, fmt.Sprintf("%-12s %s → %s", kind, from, to))
	}
	return strings.Join(rows, "\n  ")
}

func init() {
	rootCmd.AddCommand(linkCmd)
	rootCmd.AddCommand(unlinkCmd)
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/civicgraph/civicgraph/internal/entity"
	"github.com/civicgraph/civicgraph/internal/ui"
)

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update fields on an entity",
	Args:  cobra.ExactArgs(1),
	RunE:  runUpdate,
}

func init() {
	updateCmd.Flags().String("title", "", "new title")
	updateCmd.Flags().String("body", "", "new body")
	updateCmd.Flags().StringP("priority", "p", "", "new priority 0-4 or P<n>")
	updateCmd.Flags().StringP("status", "s", "", "new status")
	updateCmd.Flags().StringP("gov", "g", "", "government id or slug (empty clears)")
	updateCmd.Flags().StringP("assignee", "a", "", "new assignee (actions only)")
	updateCmd.Flags().String("due", "", "new due date (actions only)")
	rootCmd.AddCommand(updateCmd)
}

func runUpdate(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	var params entity.UpdateParams
	str := func(name string) *string {
		if !cmd.Flags().Changed(name) {
			return nil
		}
		v, _ := cmd.Flags().GetString(name)
		return &v
	}
	params.Title = str("title")
	params.Body = str("body")
	params.Priority = str("priority")
	params.Status = str("status")
	params.Gov = str("gov")
	params.Assignee = str("assignee")
	params.DueDate = str("due")

	if params.Title == nil && params.Body == nil && params.Priority == nil &&
		params.Status == nil && params.Gov == nil && params.Assignee == nil &&
		params.DueDate == nil {
		return fmt.Errorf("nothing to update; pass at least one field flag")
	}

	e, err := a.repo.Update(args[0], params)
	if err != nil {
		return err
	}
	fmt.Print(ui.Entity(e))
	return nil
}

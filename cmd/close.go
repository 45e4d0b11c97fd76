package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/civicgraph/civicgraph/internal/entity"
	"github.com/civicgraph/civicgraph/internal/ui"
)

var closeCmd = &cobra.Command{
	Use:   "close <id>",
	Short: "Close an entity with its kind's terminal status",
	Long: `Closes the entity: goals deprecate, problems resolve, ideas are
accepted (or rejected with --reject), actions complete (or cancel with
--cancel).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		reject, _ := cmd.Flags().GetBool("reject")
		cancel, _ := cmd.Flags().GetBool("cancel")
		e, err := a.repo.Close(args[0], entity.CloseOptions{Reject: reject, Cancel: cancel})
		if err != nil {
			return err
		}
		fmt.Print(ui.Entity(e))
		return nil
	},
}

func init() {
	closeCmd.Flags().Bool("reject", false, "reject an idea instead of accepting it")
	closeCmd.Flags().Bool("cancel", false, "cancel an action instead of completing it")
	rootCmd.AddCommand(closeCmd)
}

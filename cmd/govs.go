package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/civicgraph/civicgraph/internal/gov"
	"github.com/civicgraph/civicgraph/internal/ui"
)

var govsCmd = &cobra.Command{
	Use:   "govs",
	Short: "Manage the government registry",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		fmt.Print(ui.Governments(a.registry.All()))
		return nil
	},
}

var govsAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Register a government unit",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		unitType, _ := cmd.Flags().GetString("type")
		state, _ := cmd.Flags().GetString("state")
		u := a.registry.Add(args[0], unitType, state)
		if err := gov.Save(a.registryPath(), a.registry); err != nil {
			return err
		}
		fmt.Printf("registered %s (%s)\n", u.ID, u.Slug)
		return nil
	},
}

func init() {
	govsAddCmd.Flags().String("type", "city", "unit type (city, county, state, district)")
	govsAddCmd.Flags().String("state", "", "two-letter state code")
	govsCmd.AddCommand(govsAddCmd)
	rootCmd.AddCommand(govsCmd)
}

package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/civicgraph/civicgraph/internal/ui"
)

var relationsCmd = &cobra.Command{
	Use:   "relations <id>",
	Short: "Show an entity's outgoing and incoming relations",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		set, err := a.engine.Relations(args[0])
		if err != nil {
			return err
		}
		fmt.Print(ui.Relations(args[0], set))
		return nil
	},
}

var blockedCmd = &cobra.Command{
	Use:   "blocked <id>",
	Short: "Report whether an entity is blocked by open dependencies",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		status, err := a.engine.IsBlocked(args[0])
		if err != nil {
			return err
		}
		fmt.Print(ui.Blocked(args[0], status))
		return nil
	},
}

var graphCmd = &cobra.Command{
	Use:   "graph [root-id]",
	Short: "Project the dependency graph",
	Long: `Projects the dependency graph as nodes and edges. With a root id, only
entities reachable from the root through dependency-forming relations are
included; without one, the whole graph is projected.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		rootID := ""
		if len(args) == 1 {
			rootID = args[0]
		}
		g, err := a.engine.DependencyGraph(rootID)
		if err != nil {
			return err
		}
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(g)
		}
		fmt.Print(ui.Graph(g))
		return nil
	},
}

var depsCmd = &cobra.Command{
	Use:   "deps <id>",
	Short: "List an entity's transitive dependencies",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		ids, err := a.engine.TransitiveDependencies(args[0])
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			fmt.Printf("%s has no dependencies\n", args[0])
			return nil
		}
		for _, id := range ids {
			fmt.Println(id)
		}
		return nil
	},
}

func init() {
	graphCmd.Flags().Bool("json", false, "emit the projection as JSON")
	rootCmd.AddCommand(relationsCmd)
	rootCmd.AddCommand(blockedCmd)
	rootCmd.AddCommand(graphCmd)
	rootCmd.AddCommand(depsCmd)
}

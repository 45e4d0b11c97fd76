package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/civicgraph/civicgraph/internal/similarity"
	"github.com/civicgraph/civicgraph/internal/ui"
)

var classifyCmd = &cobra.Command{
	Use:   "classify <text>...",
	Short: "Classify free text into an entity type",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := similarity.Classify(strings.Join(args, " "))
		fmt.Print(ui.Classification(c))
		return nil
	},
}

var similarCmd = &cobra.Command{
	Use:   "similar <text>...",
	Short: "Find ideas similar to free text",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		pool, err := a.repo.All()
		if err != nil {
			return err
		}
		threshold, _ := cmd.Flags().GetFloat64("threshold")
		limit, _ := cmd.Flags().GetInt("limit")
		matches := similarity.SimilarIdeas(strings.Join(args, " "), pool, threshold, limit)
		fmt.Print(ui.Matches(matches))
		return nil
	},
}

var duplicatesCmd = &cobra.Command{
	Use:   "duplicates <idea-id>",
	Short: "Find likely duplicates of an idea",
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
		pool, err := a.repo.All()
		if err != nil {
			return err
		}
		threshold, _ := cmd.Flags().GetFloat64("threshold")
		dups := similarity.Duplicates(*e, pool, threshold)
		if len(dups) == 0 {
			fmt.Println("no duplicates found")
			return nil
		}
		for _, d := range dups {
			label := "similar"
			if d.IsDuplicate {
				label = "duplicate"
			}
			fmt.Printf("%.2f  %-9s %s %s\n", d.Score, label, d.Entity.ID, d.Entity.Title)
		}
		return nil
	},
}

var insightsCmd = &cobra.Command{
	Use:   "insights <id>",
	Short: "Suggest missing relations and possible duplicates",
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
		pool, err := a.repo.All()
		if err != nil {
			return err
		}
		fmt.Print(ui.Insights(similarity.Insights(*e, pool)))
		return nil
	},
}

func init() {
	similarCmd.Flags().Float64("threshold", 0.3, "minimum similarity score")
	similarCmd.Flags().Int("limit", 5, "maximum matches")
	duplicatesCmd.Flags().Float64("threshold", 0.5, "minimum similarity score")
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(similarCmd)
	rootCmd.AddCommand(duplicatesCmd)
	rootCmd.AddCommand(insightsCmd)
}

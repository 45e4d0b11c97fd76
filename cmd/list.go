package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/civicgraph/civicgraph/internal/entity"
	"github.com/civicgraph/civicgraph/internal/ui"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List entities with optional filters",
	Long: `Lists entities sorted by creation time, newest first.

  --type       Filter by entity type (goal, problem, idea, action)
  --status     Filter by status
  --gov        Filter by government id or slug
  --unfiled    Only entities with no government assignment
  --priority   Filter by exact priority 0-4
  --related-to Only entities carrying an edge to the given id
  --sort       Sort field: created_at, updated_at, priority, title, status
  --asc        Sort ascending instead of descending
  --board      Render a status board for --type instead of a flat list`,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringP("type", "t", "", "entity type filter")
	listCmd.Flags().StringP("status", "s", "", "status filter")
	listCmd.Flags().StringP("gov", "g", "", "government id or slug")
	listCmd.Flags().Bool("unfiled", false, "only unfiled entities")
	listCmd.Flags().Int("priority", -1, "priority filter 0-4")
	listCmd.Flags().String("related-to", "", "related-to target id")
	listCmd.Flags().String("sort", "", "sort field")
	listCmd.Flags().Bool("asc", false, "sort ascending")
	listCmd.Flags().Int("limit", 0, "maximum results")
	listCmd.Flags().Int("offset", 0, "results to skip")
	listCmd.Flags().Bool("board", false, "render a status board")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	kind, _ := cmd.Flags().GetString("type")
	status, _ := cmd.Flags().GetString("status")
	govRef, _ := cmd.Flags().GetString("gov")
	unfiled, _ := cmd.Flags().GetBool("unfiled")
	relatedTo, _ := cmd.Flags().GetString("related-to")
	sortBy, _ := cmd.Flags().GetString("sort")
	asc, _ := cmd.Flags().GetBool("asc")
	limit, _ := cmd.Flags().GetInt("limit")
	offset, _ := cmd.Flags().GetInt("offset")

	filter := entity.ListFilter{
		Kind:      entity.Kind(kind),
		Status:    status,
		Gov:       govRef,
		Unfiled:   unfiled,
		RelatedTo: relatedTo,
		SortBy:    sortBy,
		Ascending: asc,
		Limit:     limit,
		Offset:    offset,
	}
	if p, _ := cmd.Flags().GetInt("priority"); p >= 0 {
		filter.Priority = &p
	}

	entities, err := a.repo.List(filter)
	if err != nil {
		return err
	}

	if board, _ := cmd.Flags().GetBool("board"); board {
		boardKind := entity.Kind(kind)
		if boardKind == "" {
			boardKind = entity.KindAction
		}
		fmt.Print(ui.Board(boardKind, entities))
		return nil
	}
	fmt.Print(ui.List(entities))
	return nil
}

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/civicgraph/civicgraph/internal/entity"
	"github.com/civicgraph/civicgraph/internal/similarity"
	"github.com/civicgraph/civicgraph/internal/ui"
)

var createCmd = &cobra.Command{
	Use:   "create <type> <title>",
	Short: "Create a goal, problem, idea, or action",
	Long: `Creates a new entity of the given type.

  --body      Body text
  --priority  Priority 0-4 or P<n> form (default P2, 0 = most urgent)
  --status    Initial status (default: first of the type's enum)
  --gov       Government id or slug to file under
  --assignee  Assignee (actions only)
  --due       Due date (actions only)
  --address   Street address (problems only)
  --lat/--lng Coordinates (problems only)
  --classify  Ignore <type> and classify the title text instead`,
	Args: cobra.ExactArgs(2),
	RunE: runCreate,
}

func init() {
	createCmd.Flags().String("body", "", "body text")
	createCmd.Flags().StringP("priority", "p", "", "priority 0-4 or P<n>")
	createCmd.Flags().StringP("status", "s", "", "initial status")
	createCmd.Flags().StringP("gov", "g", "", "government id or slug")
	createCmd.Flags().StringP("assignee", "a", "", "assignee (actions only)")
	createCmd.Flags().String("due", "", "due date (actions only)")
	createCmd.Flags().String("address", "", "street address (problems only)")
	createCmd.Flags().Float64("lat", 0, "latitude (problems only)")
	createCmd.Flags().Float64("lng", 0, "longitude (problems only)")
	createCmd.Flags().Bool("classify", false, "pick the type by classifying the title")
	rootCmd.AddCommand(createCmd)
}

func runCreate(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	kind := entity.Kind(args[0])
	title := args[1]

	if classify, _ := cmd.Flags().GetBool("classify"); classify {
		c := similarity.Classify(title)
		kind = c.Kind
		fmt.Fprintf(os.Stderr, "classified as %s (confidence %.2f)\n", c.Kind, c.Confidence)
	}

	body, _ := cmd.Flags().GetString("body")
	priority, _ := cmd.Flags().GetString("priority")
	status, _ := cmd.Flags().GetString("status")
	govRef, _ := cmd.Flags().GetString("gov")
	assignee, _ := cmd.Flags().GetString("assignee")
	due, _ := cmd.Flags().GetString("due")

	params := entity.CreateParams{
		Kind:     kind,
		Title:    title,
		Body:     body,
		Priority: priority,
		Status:   status,
		Gov:      govRef,
		Assignee: assignee,
		DueDate:  due,
	}

	if address, _ := cmd.Flags().GetString("address"); address != "" || cmd.Flags().Changed("lat") {
		loc := &entity.Location{Address: address}
		if cmd.Flags().Changed("lat") {
			lat, _ := cmd.Flags().GetFloat64("lat")
			loc.Lat = &lat
		}
		if cmd.Flags().Changed("lng") {
			lng, _ := cmd.Flags().GetFloat64("lng")
			loc.Lng = &lng
		}
		params.Location = loc
	}

	e, err := a.repo.Create(params)
	if err != nil {
		return err
	}
	fmt.Print(ui.Entity(e))
	return nil
}

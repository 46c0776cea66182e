package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"attachsearch/internal/domain"
)

var showJSON bool

var showCmd = &cobra.Command{
	Use:   "show [full name]",
	Short: "Show a vehicle and its compatible vehicles",
	Long: `Shows the details of one vehicle, looked up by its exact full name
("<brand> <name>"), followed by the vehicles it can attach to and the
vehicles that can be attached to it. Matches are grouped by connector type
and then by vehicle type.`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	showCmd.Flags().BoolVar(&showJSON, "json", false, "output compatibility as JSON")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	name := args[0]
	svc, err := loadService(cmd)
	if err != nil {
		return err
	}

	v, ok := svc.Find(name)
	if !ok {
		cmd.Printf("Vehicle '%s' not found.\n", name)
		return fmt.Errorf("%w: %q", domain.ErrNotFound, name)
	}

	c := svc.Matches(v)
	if showJSON {
		return outputJSON(cmd, c)
	}

	cmd.Printf("Information for vehicle '%s':\n", v.FullName())
	outputVehicleInfo(cmd, v)

	cmd.Println()
	outputMatches(cmd, fmt.Sprintf("Vehicles that '%s' can attach to", v.FullName()), c.AttachableTo)
	cmd.Println()
	outputMatches(cmd, fmt.Sprintf("Vehicles that can be attached to '%s'", v.FullName()), c.AttachesFrom)
	return nil
}

func outputVehicleInfo(cmd *cobra.Command, v *domain.Vehicle) {
	cmd.Printf("Vehicle: %s\n", v.FullName())
	cmd.Printf("  Type: %s\n", v.Kind())
	cmd.Printf("  Store Category: %s\n", v.StoreCategory())
	if v.Source() != "" {
		cmd.Printf("  File Path: %s\n", v.Source())
	}
	for _, att := range v.AttacherTypes() {
		cmd.Printf("  Attachment Point: %s\n", att)
	}
	for _, in := range v.InputAttacherTypes() {
		cmd.Printf("  Input Attachment Point: %s\n", in)
	}
}

func outputMatches(cmd *cobra.Command, title string, r domain.MatchResult) {
	cmd.Println(headingStyle.Render(fmt.Sprintf("%s (%d):", title, r.Count())))
	if r.IsEmpty() {
		cmd.Println("  none")
		return
	}
	for _, g := range r.Groups {
		cmd.Printf("  [%s]\n", g.Connector)
		for _, k := range g.Kinds {
			cmd.Printf("    %s:\n", kindLabel(k.Kind))
			for _, m := range k.Vehicles {
				cmd.Printf("      %s\n", m.Summary())
			}
		}
	}
}

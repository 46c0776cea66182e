package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"attachsearch/internal/domain"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all vehicles grouped by type",
	Long: `Lists every loaded vehicle, grouped by vehicle type in the order the
types were first encountered.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output groups as JSON")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	svc, err := loadService(cmd)
	if err != nil {
		return err
	}
	groups := svc.GroupByKind()
	if listJSON {
		return outputJSON(cmd, groups)
	}
	return outputKindGroups(cmd, groups)
}

func outputKindGroups(cmd *cobra.Command, groups []domain.KindGroup) error {
	if len(groups) == 0 {
		cmd.Println("No vehicles loaded.")
		return nil
	}
	for _, g := range groups {
		cmd.Println(headingStyle.Render(fmt.Sprintf("%s (%d)", kindLabel(g.Kind), len(g.Vehicles))))
		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers("Name", "Store Category", "Attachments", "Input Attachments")
		for _, v := range g.Vehicles {
			t.Row(v.FullName(), v.StoreCategory(),
				strings.Join(v.AttacherTypes(), ", "),
				strings.Join(v.InputAttacherTypes(), ", "))
		}
		cmd.Println(t.Render())
		cmd.Println()
	}
	return nil
}

func outputJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

var headingStyle = lipgloss.NewStyle().Bold(true)

func kindLabel(kind string) string {
	if kind == "" {
		return "(no type)"
	}
	return kind
}

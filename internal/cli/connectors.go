package cli

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

var connectorsJSON bool

var connectorsCmd = &cobra.Command{
	Use:   "connectors",
	Short: "List connector types and how many vehicles use them",
	Args:  cobra.NoArgs,
	RunE:  runConnectors,
}

func init() {
	connectorsCmd.Flags().BoolVar(&connectorsJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(connectorsCmd)
}

func runConnectors(cmd *cobra.Command, _ []string) error {
	svc, err := loadService(cmd)
	if err != nil {
		return err
	}
	usage := svc.Connectors()
	if connectorsJSON {
		return outputJSON(cmd, usage)
	}
	if len(usage) == 0 {
		cmd.Println("No connector types found.")
		return nil
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Connector", "Attachers", "Input Attachers")
	for _, u := range usage {
		t.Row(u.Connector, strconv.Itoa(u.Attachers), strconv.Itoa(u.InputAttachers))
	}
	cmd.Println(t.Render())
	return nil
}

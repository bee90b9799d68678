package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show current area and turn status",
	Long: `Display the current area, whether combat is active, and whose turn it is.

Examples:
  tactica status
  tactica status --json`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	gc, err := GetGameContext()
	if err != nil {
		return err
	}

	formatter := NewOutputFormatter()

	if formatter.JSON {
		data := map[string]any{
			"slot":          gc.SlotID,
			"area_id":       gc.Area.ID,
			"combat_active": gc.Mgr.IsCombatActive(),
		}
		if current := gc.Mgr.Current(); current != nil {
			data["current_turn"] = current.ID
		}
		return formatter.PrintJSON(data)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Slot: %s\n", gc.SlotID))
	sb.WriteString(fmt.Sprintf("Area: %s (%dx%d)\n", gc.Area.ID, gc.Area.Width, gc.Area.Height))
	sb.WriteString(fmt.Sprintf("Combat active: %v\n", gc.Mgr.IsCombatActive()))
	if current := gc.Mgr.Current(); current != nil {
		sb.WriteString(fmt.Sprintf("Current turn: %s\n", current.ID))
	}
	return formatter.PrintText(sb.String())
}

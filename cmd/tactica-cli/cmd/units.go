package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var unitsCmd = &cobra.Command{
	Use:   "units",
	Short: "List every entity on the current area",
	Long: `List every entity on the current area with its side, position, and
action points.

Examples:
  tactica units
  tactica units --json`,
	RunE: runUnits,
}

func init() {
	rootCmd.AddCommand(unitsCmd)
}

func runUnits(cmd *cobra.Command, args []string) error {
	gc, err := GetGameContext()
	if err != nil {
		return err
	}

	formatter := NewOutputFormatter()

	if formatter.JSON {
		var units []map[string]any
		for _, ent := range gc.Mgr.Entities() {
			if ent == nil {
				continue
			}
			side := "hostile"
			if ent.PartyMember {
				side = "party"
			}
			units = append(units, map[string]any{
				"id": ent.ID, "side": side,
				"x": ent.X, "y": ent.Y,
				"ap": ent.ActionPoints, "max_ap": ent.MaxActionPoints,
			})
		}
		return formatter.PrintJSON(units)
	}

	var sb strings.Builder
	for _, ent := range gc.Mgr.Entities() {
		if ent == nil {
			continue
		}
		side := "hostile"
		if ent.PartyMember {
			side = "party"
		}
		sb.WriteString(fmt.Sprintf("  %s (%s) at %d,%d - AP %d/%d\n",
			ent.ID, side, ent.X, ent.Y, ent.ActionPoints, ent.MaxActionPoints))
	}
	if sb.Len() == 0 {
		return formatter.PrintText("No entities found")
	}
	return formatter.PrintText(sb.String())
}

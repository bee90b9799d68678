package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var endturnCmd = &cobra.Command{
	Use:   "endturn",
	Short: "Advance the turn queue",
	Long: `End the current entity's turn and rotate the initiative queue to the
next active entity.

Examples:
  tactica endturn
  tactica endturn --dryrun    Preview without saving`,
	RunE: runEndTurn,
}

func init() {
	rootCmd.AddCommand(endturnCmd)
}

func runEndTurn(cmd *cobra.Command, args []string) error {
	gc, err := GetGameContext()
	if err != nil {
		return err
	}

	previous := gc.Mgr.Current()
	gc.Mgr.Next()
	current := gc.Mgr.Current()

	if !isDryrun() {
		if err := SaveGameContext(gc); err != nil {
			return err
		}
	}

	formatter := NewOutputFormatter()
	if formatter.JSON {
		data := map[string]any{}
		if previous != nil {
			data["previous"] = previous.ID
		}
		if current != nil {
			data["current"] = current.ID
		}
		return formatter.PrintJSON(data)
	}

	if current == nil {
		return formatter.PrintText("Turn ended. Out of combat.")
	}
	return formatter.PrintText(fmt.Sprintf("Turn ended. Now acting: %s", current.ID))
}

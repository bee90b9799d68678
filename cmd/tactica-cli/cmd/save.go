package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Persist the in-memory state to the slot",
	Long: `Write the current area, turn queue, and party stash to the save slot
named by --slot, requiring --db to be set.

Examples:
  tactica save --slot campaign-1 --db postgres://localhost/tactica`,
	RunE: runSave,
}

func init() {
	rootCmd.AddCommand(saveCmd)
}

func runSave(cmd *cobra.Command, args []string) error {
	gc, err := GetGameContext()
	if err != nil {
		return err
	}
	if gc.Store == nil {
		return fmt.Errorf("no save store configured; pass --db postgres://...")
	}

	wasNew := gc.IsNewSlot
	if err := SaveGameContext(gc); err != nil {
		return err
	}

	formatter := NewOutputFormatter()
	if formatter.JSON {
		return formatter.PrintJSON(map[string]any{"slot": gc.SlotID, "version": gc.SlotVersion, "created": wasNew})
	}
	if wasNew {
		return formatter.PrintText(fmt.Sprintf("Created new slot %s", gc.SlotID))
	}
	return formatter.PrintText(fmt.Sprintf("Saved slot %s (version %d)", gc.SlotID, gc.SlotVersion))
}

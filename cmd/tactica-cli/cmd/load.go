package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Confirm the slot loads and report its version",
	Long: `Load the save slot named by --slot and report its version and entity
count, without mutating anything. Every other subcommand already loads
the slot fresh on each invocation; this one exists to check a slot is
readable without risking a write.

Examples:
  tactica load --slot campaign-1 --db postgres://localhost/tactica`,
	RunE: runLoad,
}

func init() {
	rootCmd.AddCommand(loadCmd)
}

func runLoad(cmd *cobra.Command, args []string) error {
	gc, err := GetGameContext()
	if err != nil {
		return err
	}
	if gc.Store == nil {
		return fmt.Errorf("no save store configured; pass --db postgres://...")
	}
	if gc.IsNewSlot {
		return fmt.Errorf("slot %s does not exist yet", gc.SlotID)
	}

	formatter := NewOutputFormatter()
	if formatter.JSON {
		return formatter.PrintJSON(map[string]any{
			"slot": gc.SlotID, "version": gc.SlotVersion, "entities": len(gc.Mgr.Entities()),
		})
	}
	return formatter.PrintText(fmt.Sprintf("Loaded slot %s (version %d, %d entities)",
		gc.SlotID, gc.SlotVersion, len(gc.Mgr.Entities())))
}

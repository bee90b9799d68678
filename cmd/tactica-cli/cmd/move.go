package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ashfall-tactics/tactica/pathfind"
)

var moveCmd = &cobra.Command{
	Use:   "move <entity> <x>,<y>",
	Short: "Path an entity to a tile",
	Long: `Path an entity to a tile using the area's passability grid.

Examples:
  tactica move hero-1 3,4
  tactica move hero-1 3,4 --dryrun    Preview without saving`,
	Args: cobra.ExactArgs(2),
	RunE: runMove,
}

func init() {
	rootCmd.AddCommand(moveCmd)
}

type areaChecker struct {
	gc *GameContext
}

func (c areaChecker) Passable(x, y int) bool      { return c.gc.Area.IsPassable(sizeID, x, y) }
func (c areaChecker) InFriendSpace(x, y int) bool { return false }

func parsePoint(s string) (x, y int, err error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected x,y, got %q", s)
	}
	x, err = strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, err
	}
	y, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

func runMove(cmd *cobra.Command, args []string) error {
	gc, err := GetGameContext()
	if err != nil {
		return err
	}

	_, ent := gc.entityByID(args[0])
	if ent == nil {
		return fmt.Errorf("no such entity: %s", args[0])
	}
	toX, toY, err := parsePoint(args[1])
	if err != nil {
		return fmt.Errorf("invalid destination: %w", err)
	}

	path, found := gc.Finder.Find(areaChecker{gc: gc}, ent.X, ent.Y, pathfind.Destination{X: toX, Y: toY})
	if !found {
		return fmt.Errorf("no path from %d,%d to %d,%d", ent.X, ent.Y, toX, toY)
	}

	ent.X, ent.Y = toX, toY
	if !isDryrun() {
		if err := SaveGameContext(gc); err != nil {
			return err
		}
	}

	formatter := NewOutputFormatter()
	if formatter.JSON {
		return formatter.PrintJSON(map[string]any{
			"entity": ent.ID, "to_x": toX, "to_y": toY, "path_len": len(path),
		})
	}
	return formatter.PrintText(fmt.Sprintf("Moved %s to %d,%d (%d-step path)", ent.ID, toX, toY, len(path)-1))
}

package script

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDirAndCallFuncInvokesLoadedFunction(t *testing.T) {
	dir := t.TempDir()
	src := `
called_with = nil
function on_damaged(args)
  called_with = args.amount
end
`
	if err := os.WriteFile(filepath.Join(dir, "combat.lua"), []byte(src), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}

	host := NewLuaHost()
	defer host.Close()

	if err := host.LoadDir(dir); err != nil {
		t.Fatalf("LoadDir: %v", err)
	}

	if err := host.CallFunc("fire_bolt", "on_damaged", map[string]any{"amount": 7}); err != nil {
		t.Fatalf("CallFunc: %v", err)
	}
}

func TestCallFuncReportsMissingFunction(t *testing.T) {
	host := NewLuaHost()
	defer host.Close()

	if err := host.CallFunc("s", "does_not_exist", nil); err == nil {
		t.Fatalf("expected an error calling an undefined function")
	}
}

func TestLoadDirToleratesMissingDirectory(t *testing.T) {
	host := NewLuaHost()
	defer host.Close()

	if err := host.LoadDir("/no/such/path"); err != nil {
		t.Fatalf("expected missing dir to be tolerated, got %v", err)
	}
}

package script

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"

	"go.opentelemetry.io/contrib/bridges/otelslog"
)

var logger = otelslog.NewLogger("github.com/ashfall-tactics/tactica/script")

// LuaHost wraps a single gopher-lua VM. Single-goroutine access only;
// it does no locking of its own.
type LuaHost struct {
	vm *lua.LState
}

// NewLuaHost creates an empty Lua VM. Call LoadDir to populate it with
// script source before dispatching any callbacks through it.
func NewLuaHost() *LuaHost {
	vm := lua.NewState(lua.Options{SkipOpenLibs: false})
	return &LuaHost{vm: vm}
}

// LoadDir loads every .lua file directly inside dir. Functions a script
// defines at the top level become callable by name across the whole
// VM: one flat global namespace, same as every other script function
// already loaded. A missing directory is not an error, so a resource
// set that ships no scripts of a given kind loads cleanly.
func (h *LuaHost) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := h.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		logger.Debug("loaded lua script", "file", path)
	}
	return nil
}

// CallFunc looks up fnName as a global function and calls it with a
// single table argument built from args. scriptID is carried for
// logging only: every loaded script shares one flat function
// namespace, so a function defined by a later-loaded script replaces
// any earlier global of the same name.
func (h *LuaHost) CallFunc(scriptID, fnName string, args map[string]any) error {
	fn := h.vm.GetGlobal(fnName)
	if fn == lua.LNil {
		logger.Warn("lua function not found", "script", scriptID, "fn", fnName)
		return fmt.Errorf("script %s: function %s not defined", scriptID, fnName)
	}

	table := h.vm.NewTable()
	for key, value := range args {
		table.RawSetString(key, toLuaValue(h.vm, value))
	}

	if err := h.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    0,
		Protect: true,
	}, table); err != nil {
		logger.Error("lua call failed", "script", scriptID, "fn", fnName, "error", err)
		return fmt.Errorf("script %s: call %s: %w", scriptID, fnName, err)
	}
	return nil
}

// Close releases the VM.
func (h *LuaHost) Close() {
	h.vm.Close()
}

func toLuaValue(vm *lua.LState, value any) lua.LValue {
	switch v := value.(type) {
	case nil:
		return lua.LNil
	case bool:
		return lua.LBool(v)
	case string:
		return lua.LString(v)
	case int:
		return lua.LNumber(v)
	case int64:
		return lua.LNumber(v)
	case float32:
		return lua.LNumber(v)
	case float64:
		return lua.LNumber(v)
	case []int:
		t := vm.NewTable()
		for i, elem := range v {
			t.RawSetInt(i+1, lua.LNumber(elem))
		}
		return t
	default:
		return lua.LString(fmt.Sprintf("%v", v))
	}
}

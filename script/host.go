// Package script defines the interface the targeter and callback
// substrate (see the target package) programs against, plus a
// gopher-lua-backed implementation of it. Nothing outside this package
// knows gopher-lua exists.
package script

// Host loads script source and invokes named functions by keyword
// argument table. target.CallbackData.Fire dispatches through this
// interface via target.Dispatcher, which Host satisfies structurally.
type Host interface {
	// LoadDir loads every script file in dir, making its top-level
	// functions callable by name.
	LoadDir(dir string) error

	// CallFunc invokes scriptID's fnName function with the given
	// keyword arguments, packed into a single table argument the way
	// every entry point in this system receives its call context.
	CallFunc(scriptID, fnName string, args map[string]any) error

	// Close releases the underlying VM.
	Close()
}

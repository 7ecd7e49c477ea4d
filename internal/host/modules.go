package host

import (
	"github.com/zelolang/zelo/internal/diagnostics"
	"github.com/zelolang/zelo/internal/zvalue"
)

// moduleRegistrations exposes require/include as ordinary callable host
// builtins (spec.md §4.7's cached-vs-uncached distinction), rather than as
// import-statement syntax — the `import` statement itself always resolves
// through Loader.Require regardless of its mode, per the Open Question
// decision in DESIGN.md.
func (ins *Installer) moduleRegistrations() []Registration {
	if ins.Loader == nil {
		return nil
	}
	return []Registration{
		{Name: "require", Arity: 1, Fn: ins.requireNative},
		{Name: "include", Arity: 1, Fn: ins.includeNative},
	}
}

func (ins *Installer) requireNative(args []zvalue.Value) (zvalue.Value, error) {
	path, ok := args[0].(zvalue.Str)
	if !ok {
		return nil, diagnostics.Typef(diagnostics.CodeTypeMismatch, 0, "require expects a string path, got %s", args[0].Kind())
	}
	env, err := ins.Loader.Require(path.Value)
	if err != nil {
		return nil, err
	}
	return env, nil
}

func (ins *Installer) includeNative(args []zvalue.Value) (zvalue.Value, error) {
	path, ok := args[0].(zvalue.Str)
	if !ok {
		return nil, diagnostics.Typef(diagnostics.CodeTypeMismatch, 0, "include expects a string path, got %s", args[0].Kind())
	}
	env, err := ins.Loader.Include(path.Value)
	if err != nil {
		return nil, err
	}
	return env, nil
}

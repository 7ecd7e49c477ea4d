package host

import (
	"bufio"
	"fmt"
	"strings"
	"sync"

	"github.com/zelolang/zelo/internal/diagnostics"
	"github.com/zelolang/zelo/internal/zvalue"
)

// ioRegistrations implements SPEC_FULL.md §4.9's reference `io` module
// body: print/println (wrapping the Installer's configured io.Writer) and
// readLine (wrapping its configured io.Reader).
func (ins *Installer) ioRegistrations() []Registration {
	var once sync.Once
	var reader *bufio.Reader
	getReader := func() *bufio.Reader {
		once.Do(func() { reader = bufio.NewReader(ins.In) })
		return reader
	}

	return []Registration{
		{Name: "print", Arity: Variadic, Fn: ins.printValues(false)},
		{Name: "println", Arity: Variadic, Fn: ins.printValues(true)},
		{Name: "readLine", Arity: 0, Fn: func(args []zvalue.Value) (zvalue.Value, error) {
			line, err := getReader().ReadString('\n')
			if err != nil && line == "" {
				return nil, diagnostics.Runtimef(diagnostics.CodeIOError, 0, "readLine: %v", err)
			}
			return zvalue.Str{Value: strings.TrimRight(line, "\r\n")}, nil
		}},
	}
}

// printValues renders each argument via its Inspect representation, except
// that a bare Str prints unquoted, matching spec.md §8 scenario 4's
// `print(e)` -> `oops` (not `"oops"`).
func (ins *Installer) printValues(newline bool) NativeFunc {
	return func(args []zvalue.Value) (zvalue.Value, error) {
		for i, arg := range args {
			if i > 0 {
				fmt.Fprint(ins.Out, " ")
			}
			if s, ok := arg.(zvalue.Str); ok {
				fmt.Fprint(ins.Out, s.Value)
			} else {
				fmt.Fprint(ins.Out, arg.Inspect())
			}
		}
		if newline {
			fmt.Fprint(ins.Out, "\n")
		}
		return zvalue.Null{}, nil
	}
}

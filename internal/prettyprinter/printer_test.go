package prettyprinter

import (
	"testing"

	"github.com/zelolang/zelo/internal/ast"
	"github.com/zelolang/zelo/internal/pipeline"
)

func parse(t *testing.T, src string) *ast.Program {
	t.Helper()
	res := pipeline.New().Run(src)
	if len(res.Errors) > 0 {
		t.Fatalf("unexpected parse errors for %q: %v", src, res.Errors)
	}
	if res.Program == nil {
		t.Fatalf("expected a program for %q", src)
	}
	return res.Program
}

// assertRoundTrips parses src, prints it, re-parses the output, and checks
// that printing the re-parsed program again yields byte-identical text to
// the first printing — the parser-idempotence property of spec.md §8.
func assertRoundTrips(t *testing.T, src string) {
	t.Helper()
	prog1 := parse(t, src)
	out1 := Print(prog1)

	prog2 := parse(t, out1)
	out2 := Print(prog2)

	if out1 != out2 {
		t.Fatalf("printer is not idempotent for %q:\n--- first ---\n%s\n--- second ---\n%s", src, out1, out2)
	}
}

func TestRoundTripVarDeclarations(t *testing.T) {
	assertRoundTrips(t, `loc x: int = 1; const y = "hi"; loc z: array[int] = [1, 2, 3];`)
}

func TestRoundTripArithmeticPrecedence(t *testing.T) {
	assertRoundTrips(t, `loc a = 1 + 2 * 3 - 4 / 2;`)
	assertRoundTrips(t, `loc a = (1 + 2) * 3;`)
	assertRoundTrips(t, `loc a = 1 - (2 - 3);`)
}

func TestRoundTripLogicalAndComparison(t *testing.T) {
	assertRoundTrips(t, `loc a = x < 3 && y >= 4 || !z;`)
}

func TestRoundTripTernaryAndAssignment(t *testing.T) {
	assertRoundTrips(t, `loc a = cond ? 1 : 2 ? 3 : 4;`)
	assertRoundTrips(t, `a = b = c + 1;`)
	assertRoundTrips(t, `a += 1;`)
}

func TestRoundTripIfElifElse(t *testing.T) {
	assertRoundTrips(t, `
if a then {
    print(1);
} elif b then {
    print(2);
} else {
    print(3);
}
`)
}

func TestRoundTripIfWithoutBraces(t *testing.T) {
	assertRoundTrips(t, `if a then return 1; else return 2;`)
}

func TestRoundTripWhileAndFor(t *testing.T) {
	assertRoundTrips(t, `while x < 10 { x = x + 1; }`)
	assertRoundTrips(t, `for (item in items) { print(item); }`)
}

func TestRoundTripFunctionAndClass(t *testing.T) {
	assertRoundTrips(t, `
func add(a: int, b: int): int {
    return a + b;
}

class Animal {
    func speak() {
        print(this.name);
    }
}

class Dog: Animal {
    func speak() {
        super.speak();
    }
}
`)
}

func TestRoundTripTryCatch(t *testing.T) {
	assertRoundTrips(t, `
try {
    throw "oops";
} catch (e: string) {
    print(e);
}
`)
}

func TestRoundTripNamespaceExportImport(t *testing.T) {
	assertRoundTrips(t, `
namespace shapes {
    export { area };
    func area(r: float): float {
        return r * r;
    }
}
import "lib/util";
import { area } from "shapes" as s;
`)
}

func TestRoundTripIndexMemberSlice(t *testing.T) {
	assertRoundTrips(t, `
loc a = items[0];
loc b = items[1:3];
loc c = items[:3:2];
loc d = obj.field.other;
loc e = new Dog(1, 2);
loc f = int(x);
`)
}

func TestRoundTripNestedCallsAndFunctionLiterals(t *testing.T) {
	assertRoundTrips(t, `
loc f = func(x: int): int {
    return x * x;
};
loc g = outer(inner(1, 2), 3);
`)
}

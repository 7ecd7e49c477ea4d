// Package zvalue implements the tagged Value union, Environment scope
// chains, and the Object/Function/Class representations of spec.md §3.
package zvalue

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/zelolang/zelo/internal/ast"
	"github.com/zelolang/zelo/internal/reclaimer"
)

// Kind tags a Value's variant.
type Kind string

const (
	NullKind     Kind = "null"
	IntKind      Kind = "int"
	FloatKind    Kind = "float"
	BoolKind     Kind = "bool"
	StringKind   Kind = "string"
	ArrayKind    Kind = "array"
	DictKind     Kind = "dict"
	ObjectKind   Kind = "object"
	FunctionKind Kind = "function"
	ClassKind    Kind = "class"
	EnvKind      Kind = "environment"
)

// Value is the tagged union described in spec.md §3. Every variant also
// implements reclaimer.Node so the evaluator can register composite
// allocations with the reclaimer and the reclaimer can trace through them;
// scalar variants return nil referents.
type Value interface {
	Kind() Kind
	// Inspect renders the canonical string form used by print, string
	// concatenation, and string casts (spec.md §4.5).
	Inspect() string
	reclaimer.Node
}

// Null is the `null` value. There is exactly one meaningful instance but
// it is not interned; equality is by Kind, not identity.
type Null struct{}

func (Null) Kind() Kind              { return NullKind }
func (Null) Inspect() string         { return "null" }
func (Null) Referents() []reclaimer.Node { return nil }

// Int is a machine-word signed integer.
type Int struct{ Value int64 }

func (i Int) Kind() Kind                  { return IntKind }
func (i Int) Inspect() string             { return strconv.FormatInt(i.Value, 10) }
func (i Int) Referents() []reclaimer.Node { return nil }

// Float is a double-precision float.
type Float struct{ Value float64 }

func (f Float) Kind() Kind      { return FloatKind }
func (f Float) Inspect() string {
	return strconv.FormatFloat(f.Value, 'g', -1, 64)
}
func (f Float) Referents() []reclaimer.Node { return nil }

// Bool is a boolean.
type Bool struct{ Value bool }

func (b Bool) Kind() Kind      { return BoolKind }
func (b Bool) Inspect() string {
	if b.Value {
		return "true"
	}
	return "false"
}
func (b Bool) Referents() []reclaimer.Node { return nil }

// Str is a byte-sequence string (spec.md §1: "no Unicode-aware casing or
// collation beyond byte-level string operations").
type Str struct{ Value string }

func (s Str) Kind() Kind                  { return StringKind }
func (s Str) Inspect() string             { return s.Value }
func (s Str) Referents() []reclaimer.Node { return nil }

// Truthy implements spec.md §4.4 truthiness: null and false are false,
// everything else is true.
func Truthy(v Value) bool {
	switch vv := v.(type) {
	case Null:
		return false
	case Bool:
		return vv.Value
	default:
		return true
	}
}

// Array is a shared, mutable, ordered sequence (spec.md §3 "shared
// reference semantics"). Always used behind a pointer so aliasing is
// observable.
type Array struct {
	Items []Value
}

func NewArray(gc *reclaimer.GC, items []Value) *Array {
	a := &Array{Items: items}
	gc.Register(a)
	return a
}

func (a *Array) Kind() Kind { return ArrayKind }
func (a *Array) Inspect() string {
	parts := make([]string, len(a.Items))
	for i, v := range a.Items {
		parts[i] = inspectElement(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
func (a *Array) Referents() []reclaimer.Node {
	refs := make([]reclaimer.Node, 0, len(a.Items))
	for _, v := range a.Items {
		if n, ok := v.(reclaimer.Node); ok {
			refs = append(refs, n)
		}
	}
	return refs
}

// Dict is a shared, mutable, string-keyed mapping. Insertion order is
// preserved in Order for deterministic iteration in this implementation,
// though spec.md explicitly leaves iteration order unspecified.
type Dict struct {
	Order []string
	Items map[string]Value
}

func NewDict(gc *reclaimer.GC) *Dict {
	d := &Dict{Items: make(map[string]Value)}
	gc.Register(d)
	return d
}

// Set inserts or overwrites key; later duplicate insertions in a literal
// win per spec.md §4.4 but do not move the key's position in Order.
func (d *Dict) Set(key string, v Value) {
	if _, exists := d.Items[key]; !exists {
		d.Order = append(d.Order, key)
	}
	d.Items[key] = v
}

func (d *Dict) Delete(key string) {
	if _, exists := d.Items[key]; !exists {
		return
	}
	delete(d.Items, key)
	for i, k := range d.Order {
		if k == key {
			d.Order = append(d.Order[:i], d.Order[i+1:]...)
			break
		}
	}
}

func (d *Dict) Kind() Kind { return DictKind }
func (d *Dict) Inspect() string {
	parts := make([]string, 0, len(d.Order))
	for _, k := range d.Order {
		parts = append(parts, fmt.Sprintf("%q: %s", k, inspectElement(d.Items[k])))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
func (d *Dict) Referents() []reclaimer.Node {
	refs := make([]reclaimer.Node, 0, len(d.Items))
	for _, v := range d.Items {
		if n, ok := v.(reclaimer.Node); ok {
			refs = append(refs, n)
		}
	}
	return refs
}

func inspectElement(v Value) string {
	if s, ok := v.(Str); ok {
		return fmt.Sprintf("%q", s.Value)
	}
	return v.Inspect()
}

// Class is a class descriptor: a name, optional superclass, and a method
// table. Per spec.md §3 the method map is immutable once the declaring
// class statement finishes evaluating.
type Class struct {
	Name       string
	Super      *Class
	Methods    map[string]*Function
}

func NewClass(gc *reclaimer.GC, name string, super *Class) *Class {
	c := &Class{Name: name, Super: super, Methods: make(map[string]*Function)}
	gc.Register(c)
	return c
}

func (c *Class) Kind() Kind      { return ClassKind }
func (c *Class) Inspect() string { return "<class " + c.Name + ">" }
func (c *Class) Referents() []reclaimer.Node {
	refs := make([]reclaimer.Node, 0, len(c.Methods)+1)
	for _, m := range c.Methods {
		refs = append(refs, m)
	}
	if c.Super != nil {
		refs = append(refs, c.Super)
	}
	return refs
}

// LookupMethod walks the superclass chain (spec.md §3 "Method lookup
// walks the superclass chain").
func (c *Class) LookupMethod(name string) (*Function, bool) {
	for cls := c; cls != nil; cls = cls.Super {
		if m, ok := cls.Methods[name]; ok {
			return m, true
		}
	}
	return nil, false
}

// Object is a class instance: a class reference plus a mutable field map.
type Object struct {
	Class  *Class
	Fields map[string]Value
}

func NewObject(gc *reclaimer.GC, class *Class) *Object {
	o := &Object{Class: class, Fields: make(map[string]Value)}
	gc.Register(o)
	return o
}

func (o *Object) Kind() Kind      { return ObjectKind }
func (o *Object) Inspect() string { return "<" + o.Class.Name + " instance>" }
func (o *Object) Referents() []reclaimer.Node {
	refs := make([]reclaimer.Node, 0, len(o.Fields)+1)
	for _, v := range o.Fields {
		if n, ok := v.(reclaimer.Node); ok {
			refs = append(refs, n)
		}
	}
	if o.Class != nil {
		refs = append(refs, o.Class)
	}
	return refs
}

// NativeFunc is the signature host functions registered through
// internal/host implement (SPEC_FULL.md §4.9).
type NativeFunc func(args []Value) (Value, error)

// Function is a closure: either an AST-backed declaration plus its
// captured environment, or a native call-site handle (spec.md §3).
type Function struct {
	Name          string
	Parameters    []*ast.Parameter
	ReturnType    ast.Type
	Body          *ast.BlockStatement
	Env           *Env // captured enclosing scope; nil for natives
	IsConstructor bool

	Native     NativeFunc
	NativeName string
	Variadic   bool // true if Native accepts any argument count

	// BoundTo is set when this Function is a transient method binding
	// (spec.md §4.6): its Env already defines `this`.
}

func NewFunction(gc *reclaimer.GC, fn *Function) *Function {
	gc.Register(fn)
	return fn
}

func (f *Function) Kind() Kind { return FunctionKind }
func (f *Function) Inspect() string {
	if f.Native != nil {
		return "<native function " + f.NativeName + ">"
	}
	return "<function " + f.Name + ">"
}
func (f *Function) Referents() []reclaimer.Node {
	if f.Env != nil {
		return []reclaimer.Node{f.Env}
	}
	return nil
}

// IsNative reports whether this function wraps a native call-site handle
// rather than an AST declaration.
func (f *Function) IsNative() bool { return f.Native != nil }

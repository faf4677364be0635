package lox

import "sort"

// Environment holds variable bindings as a stack of scope frames. Frame 0 is
// the global scope and lives as long as the Environment; every other frame
// belongs to a block that is currently executing. Lookups walk the frames
// from the innermost outward.
//
// An Environment is not safe for concurrent use. A REPL passes the same one to
// every run so globals persist between inputs.
type Environment struct {
	frames []scope
}

type scope struct {
	values map[string]Value
}

// scopeHandle identifies a frame by its index in the stack.
type scopeHandle int

// Binding is one name/value pair of the global scope.
type Binding struct {
	Name  string
	Value Value
}

func NewEnvironment() *Environment {
	return &Environment{frames: []scope{{values: make(map[string]Value)}}}
}

// Define binds name in the innermost scope, replacing any binding it already
// has there.
func (e *Environment) Define(name string, val Value) {
	e.frames[len(e.frames)-1].values[name] = val
}

func (e *Environment) Get(name string) (Value, bool) {
	for i := len(e.frames) - 1; i >= 0; i-- {
		if val, ok := e.frames[i].values[name]; ok {
			return val, true
		}
	}
	return Value{}, false
}

// Assign updates the nearest existing binding of name. It reports false, and
// binds nothing, when no scope defines name.
func (e *Environment) Assign(name string, val Value) bool {
	for i := len(e.frames) - 1; i >= 0; i-- {
		if _, ok := e.frames[i].values[name]; ok {
			e.frames[i].values[name] = val
			return true
		}
	}
	return false
}

// Depth is the number of live frames, the global scope included.
func (e *Environment) Depth() int {
	return len(e.frames)
}

// Globals returns the global bindings sorted by name.
func (e *Environment) Globals() []Binding {
	globals := e.frames[0].values
	out := make([]Binding, 0, len(globals))
	for name, val := range globals {
		out = append(out, Binding{Name: name, Value: val})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}

// Reset drops every binding and any block frames left behind.
func (e *Environment) Reset() {
	e.popTo(1)
	e.frames[0] = scope{values: make(map[string]Value)}
}

// push opens a block frame and returns the handle to pass to popTo.
func (e *Environment) push() scopeHandle {
	handle := scopeHandle(len(e.frames))
	e.frames = append(e.frames, scope{values: make(map[string]Value)})
	return handle
}

// popTo releases the frame identified by handle and everything above it.
// The global frame is never released.
func (e *Environment) popTo(handle scopeHandle) {
	if handle < 1 {
		handle = 1
	}
	for i := int(handle); i < len(e.frames); i++ {
		e.frames[i] = scope{}
	}
	if int(handle) < len(e.frames) {
		e.frames = e.frames[:handle]
	}
}

package reflection

import (
	"reflect"
	"sync"

	"golang.org/x/text/cases"
)

// Assembly is a named collection of types. Go has no runtime registry of
// loaded types, so packages describe themselves by building an Assembly and
// registering it in a Domain (or exporting it from a plugin).
type Assembly struct {
	name string

	mu    sync.RWMutex
	types []reflect.Type
}

// NewAssembly creates an assembly holding the types of samples. Pass a value
// or a nil pointer of each type; a pointer to a struct or interface registers
// the pointed-to type, so (*Repository)(nil) registers the interface itself.
func NewAssembly(name string, samples ...any) *Assembly {
	a := &Assembly{name: name}
	for _, s := range samples {
		if s == nil {
			continue
		}
		a.Add(normalizeSample(reflect.TypeOf(s)))
	}
	return a
}

// Name returns the assembly name.
func (a *Assembly) Name() string {
	return a.name
}

// Add registers types. Nil and already registered types are ignored.
func (a *Assembly) Add(types ...reflect.Type) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, t := range types {
		if t == nil || containsType(a.types, t) {
			continue
		}
		a.types = append(a.types, t)
	}
}

// Types returns the registered types in registration order.
func (a *Assembly) Types() []reflect.Type {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]reflect.Type, len(a.types))
	copy(out, a.types)
	return out
}

// Domain is a registry of assemblies, the process-wide view of what types are
// available for lookup.
type Domain struct {
	mu         sync.RWMutex
	assemblies []*Assembly
}

// NewDomain creates an empty domain.
func NewDomain() *Domain {
	return &Domain{}
}

var defaultDomain = NewDomain()

// DefaultDomain returns the process-wide domain used by Register,
// LoadedAssembly and the plugin loaders.
func DefaultDomain() *Domain {
	return defaultDomain
}

// Register adds assemblies to the domain. An assembly replaces a registered
// one with the same (case-insensitive) name.
func (d *Domain) Register(assemblies ...*Assembly) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, asm := range assemblies {
		if asm == nil {
			continue
		}
		if i := d.indexOf(asm.Name()); i >= 0 {
			d.assemblies[i] = asm
			continue
		}
		d.assemblies = append(d.assemblies, asm)
	}
}

// Assemblies returns the registered assemblies in registration order.
func (d *Domain) Assemblies() []*Assembly {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]*Assembly, len(d.assemblies))
	copy(out, d.assemblies)
	return out
}

// Lookup returns the assembly named name, compared with Unicode case folding,
// or nil when the name is empty or unknown.
func (d *Domain) Lookup(name string) *Assembly {
	if name == "" {
		return nil
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	if i := d.indexOf(name); i >= 0 {
		return d.assemblies[i]
	}
	return nil
}

func (d *Domain) indexOf(name string) int {
	fold := cases.Fold()
	want := fold.String(name)
	for i, asm := range d.assemblies {
		if fold.String(asm.Name()) == want {
			return i
		}
	}
	return -1
}

// Register adds assemblies to the default domain.
func Register(assemblies ...*Assembly) {
	defaultDomain.Register(assemblies...)
}

// LoadedAssembly looks up an assembly in the default domain.
func LoadedAssembly(name string) *Assembly {
	return defaultDomain.Lookup(name)
}

// LoadedAssemblies returns every assembly in the default domain.
func LoadedAssemblies() []*Assembly {
	return defaultDomain.Assemblies()
}

// Types returns the types of asm that are, embed or implement target.
func Types(asm *Assembly, target reflect.Type) []reflect.Type {
	if asm == nil || target == nil {
		return []reflect.Type{}
	}
	out := []reflect.Type{}
	for _, t := range asm.Types() {
		if ok, _ := IsTypeOf(t, target); ok {
			out = append(out, t)
		}
	}
	return out
}

// TypesNamed returns the types of asm matching the interface name as decided
// by IsOfInterface.
func TypesNamed(asm *Assembly, iface string) []reflect.Type {
	if asm == nil {
		return []reflect.Type{}
	}
	out := []reflect.Type{}
	for _, t := range asm.Types() {
		if IsOfInterface(t, iface) {
			out = append(out, t)
		}
	}
	return out
}

// ObjectsFrom instantiates every concrete type of asm usable as T. A type is
// used as a value when the value satisfies T, otherwise as a pointer.
func ObjectsFrom[T any](asm *Assembly) []T {
	out := []T{}
	if asm == nil {
		return out
	}
	for _, t := range asm.Types() {
		if t.Kind() == reflect.Interface {
			continue
		}
		ptr := reflect.New(t)
		if v, ok := ptr.Elem().Interface().(T); ok {
			out = append(out, v)
			continue
		}
		if v, ok := ptr.Interface().(T); ok {
			out = append(out, v)
		}
	}
	return out
}

func normalizeSample(t reflect.Type) reflect.Type {
	if t.Kind() == reflect.Pointer {
		switch t.Elem().Kind() {
		case reflect.Struct, reflect.Interface:
			return t.Elem()
		}
	}
	return t
}

func containsType(types []reflect.Type, t reflect.Type) bool {
	for _, existing := range types {
		if existing == t {
			return true
		}
	}
	return false
}

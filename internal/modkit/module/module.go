// Package module is the contract between modkit and the service modules, plus the
// lookups modules use to find each other's ports
package module

import (
	"reflect"
	"slices"
	"sync"

	phttp "minutes/internal/platform/net/http"
)

// Module is a unit of wiring: a name, the ports it offers and its routes, if any
type Module interface {
	Name() string
	Ports() any
	MountRoutes(r phttp.Router)
}

// PortsOf finds a T in m's ports: either the ports value itself or one of its exported fields
func PortsOf[T any](m Module) (T, bool) {
	var zero T
	p := m.Ports()
	if p == nil {
		return zero, false
	}
	if v, ok := p.(T); ok {
		return v, true
	}
	rv := reflect.ValueOf(p)
	if rv.Kind() != reflect.Struct {
		return zero, false
	}
	for i := range rv.NumField() {
		f := rv.Field(i)
		if !f.CanInterface() {
			continue
		}
		if v, ok := f.Interface().(T); ok {
			return v, true
		}
	}
	return zero, false
}

// MustPortsOf is PortsOf for bootstrap code, where a missing port is a wiring bug
func MustPortsOf[T any](m Module) T {
	v, ok := PortsOf[T](m)
	if !ok {
		panic("module: " + m.Name() + " has no " + reflect.TypeFor[T]().String() + " port")
	}
	return v
}

var (
	mu       sync.RWMutex
	registry = map[string]any{}
)

// Register records name's ports once the process is wired
func Register(name string, ports any) {
	mu.Lock()
	defer mu.Unlock()
	registry[name] = ports
}

// Names lists registered modules in order
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Reset empties the registry
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	clear(registry)
}

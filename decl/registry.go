package decl

import (
	"strings"
)

// Decorator names that drive declaration classification.
const (
	decoratorController = "Controller"
	decoratorModule     = "Module"
)

// ClassKind is the closed classification of a class declaration. Every class
// is classified exactly once when the registry is built; the pipeline never
// re-inspects decorator names afterwards.
type ClassKind int

const (
	// KindPlain marks declarations usable only as data shapes.
	KindPlain ClassKind = iota
	// KindService marks declarations exposing routes.
	KindService
	// KindServiceGroup marks declarations that enumerate member services.
	KindServiceGroup
)

// Service is a classified service declaration together with its source
// location and declared base path.
type Service struct {
	Class    *Class
	Path     string
	BasePath string
}

// Group is a classified service-group declaration.
type Group struct {
	Name     string
	Path     string
	Services []string
	Imports  []string
}

// Registry indexes a declaration graph by name and classifies every class
// once. It is read-only after construction.
type Registry struct {
	classes  map[string]*Class
	enums    map[string]*Enum
	kinds    map[string]ClassKind
	services []Service
	groups   []Group
}

// NewRegistry builds a registry from the parser's source units. Declaration
// order is preserved, so repeated builds over the same graph classify in the
// same order.
func NewRegistry(units []SourceUnit) *Registry {
	r := &Registry{
		classes: make(map[string]*Class),
		enums:   make(map[string]*Enum),
		kinds:   make(map[string]ClassKind),
	}

	for ui := range units {
		unit := &units[ui]
		for ci := range unit.Classes {
			class := &unit.Classes[ci]
			r.classes[class.Name] = class
			r.classify(class, unit.Path)
		}
		for ei := range unit.Enums {
			enum := &unit.Enums[ei]
			r.enums[enum.Name] = enum
		}
	}

	return r
}

func (r *Registry) classify(class *Class, path string) {
	for i := range class.Decorators {
		dec := &class.Decorators[i]
		switch dec.Name {
		case decoratorController:
			r.kinds[class.Name] = KindService
			base := ""
			if len(dec.Args) > 0 {
				base = strings.Trim(dec.Args[0], `"'`)
			}
			r.services = append(r.services, Service{Class: class, Path: path, BasePath: base})
			return
		case decoratorModule:
			r.kinds[class.Name] = KindServiceGroup
			r.groups = append(r.groups, Group{
				Name:     class.Name,
				Path:     path,
				Services: identifierList(dec.Args, "controllers"),
				Imports:  identifierList(dec.Args, "imports"),
			})
			return
		}
	}
	r.kinds[class.Name] = KindPlain
}

// Class looks up a class declaration by name.
func (r *Registry) Class(name string) (*Class, bool) {
	c, ok := r.classes[name]
	return c, ok
}

// Enum looks up an enum declaration by name.
func (r *Registry) Enum(name string) (*Enum, bool) {
	e, ok := r.enums[name]
	return e, ok
}

// Kind returns the classification of a declaration; unknown names are plain.
func (r *Registry) Kind(name string) ClassKind {
	return r.kinds[name]
}

// Services returns the classified service declarations in declaration order.
func (r *Registry) Services() []Service {
	return r.services
}

// Groups returns the classified group declarations in declaration order.
func (r *Registry) Groups() []Group {
	return r.groups
}

// identifierList extracts the identifiers of a "key: [A, B]" argument from a
// module decorator's raw argument text.
func identifierList(args []string, key string) []string {
	for _, arg := range args {
		k, rest, found := strings.Cut(arg, ":")
		if !found || strings.TrimSpace(k) != key {
			continue
		}
		rest = strings.Trim(strings.TrimSpace(rest), "[]")
		var names []string
		for _, part := range strings.Split(rest, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				names = append(names, part)
			}
		}
		return names
	}
	return nil
}

// Package catalog is the read-only design pattern data source.
//
// Patterns are reached through the Service interface, which answers two
// queries: All, in declaration order, and Get by identifier, which fails
// with a *NotFoundError when nothing matches. NewStatic serves an in-memory
// list, Builtin returns the bundled six patterns and LoadFile reads a YAML
// catalog. Delayed and Traced decorate any Service.
package catalog

import (
	"fmt"
	"strings"
)

// Category classifies a pattern.
type Category string

const (
	Creational Category = "creational"
	Structural Category = "structural"
	Behavioral Category = "behavioral"
)

// Categories returns every category in display order.
func Categories() []Category {
	return []Category{Creational, Structural, Behavioral}
}

// ParseCategory parses a category name, ignoring case and surrounding space.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("catalog: unknown category %q", s)
	}
	return c, nil
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case Creational, Structural, Behavioral:
		return true
	}
	return false
}

// String returns the category key.
func (c Category) String() string { return string(c) }

// Label returns the display name, e.g. "Creational".
func (c Category) Label() string {
	switch c {
	case Creational:
		return "Creational"
	case Structural:
		return "Structural"
	case Behavioral:
		return "Behavioral"
	}
	return string(c)
}

// Intent is the one-phrase purpose shown in the quick reference.
func (c Category) Intent() string {
	switch c {
	case Creational:
		return "Object creation"
	case Structural:
		return "Composition"
	default:
		return "Communication"
	}
}

// Scope is the quick reference scope.
func (c Category) Scope() string {
	if c == Creational {
		return "Class / Object"
	}
	return "Object"
}

// WhenToUse lists the situations the category addresses.
func (c Category) WhenToUse() []string {
	switch c {
	case Creational:
		return []string{
			"Need controlled instantiation",
			"Want to hide creation logic",
			"System should be independent of how objects are created",
		}
	case Structural:
		return []string{
			"Need to compose objects into larger structures",
			"Want flexible composition over rigid inheritance",
			"Adapting incompatible interfaces",
		}
	default:
		return []string{
			"Need loose coupling between interacting objects",
			"Want to vary behavior independently",
			"Multiple objects should react to state changes",
		}
	}
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Pattern is one catalog entry. Patterns are immutable values.
type Pattern struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Category    Category `json:"category" yaml:"category"`
	Description string   `json:"description" yaml:"description"`

	// Diagram is optional ASCII art.
	Diagram string `json:"diagram,omitempty" yaml:"diagram,omitempty"`
}

// HasDiagram reports whether the pattern carries a diagram.
func (p Pattern) HasDiagram() bool {
	return strings.TrimSpace(p.Diagram) != ""
}

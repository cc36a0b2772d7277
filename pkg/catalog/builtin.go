package catalog

import "strings"

// Builtin returns a service over the bundled patterns.
func Builtin() *Static {
	return NewStatic(BuiltinPatterns()...)
}

// BuiltinPatterns returns a fresh copy of the bundled patterns.
func BuiltinPatterns() []Pattern {
	out := make([]Pattern, len(builtin))
	copy(out, builtin)
	return out
}

// diagram trims the leading newline and trailing space of a raw literal.
func diagram(s string) string {
	return strings.TrimRight(strings.TrimPrefix(s, "\n"), " \n")
}

var builtin = []Pattern{
	{
		ID:          "singleton",
		Name:        "Singleton",
		Category:    Creational,
		Description: "Ensures a class has only one instance and provides a global point of access to it.",
		Diagram: diagram(`
    +-------------+
    |  Singleton  |
    +------+------+
           |
      .----+----.
      | instance |
      '----+----'
           |
    [only one ever]`),
	},
	{
		ID:          "factory",
		Name:        "Factory",
		Category:    Creational,
		Description: "Defines an interface for creating objects, letting subclasses decide which class to instantiate.",
		Diagram: diagram(`
      +----------+
      | Factory  |
      +----+-----+
           |
     .-----+------.
     |      |      |
    [A]    [B]    [C]
  product product product`),
	},
	{
		ID:          "observer",
		Name:        "Observer",
		Category:    Behavioral,
		Description: "Defines a one-to-many dependency so that when one object changes state, all dependents are notified.",
		Diagram: diagram(`
    +-----------+
    |  Subject  |---notify--->
    +-----+-----+
          |
    .-----+------.
    |      |      |
   [O1]  [O2]  [O3]
   sub   sub   sub`),
	},
	{
		ID:          "strategy",
		Name:        "Strategy",
		Category:    Behavioral,
		Description: "Defines a family of algorithms, encapsulates each one, and makes them interchangeable at runtime.",
		Diagram: diagram(`
    +----------+
    | Context  |
    +----+-----+
         |
    +----+-----+
    | Strategy |<----interface
    +----+-----+
    |    |     |
   [A]  [B]  [C]`),
	},
	{
		ID:          "decorator",
		Name:        "Decorator",
		Category:    Structural,
		Description: "Attaches additional responsibilities to an object dynamically, providing a flexible alternative to subclassing.",
		Diagram: diagram(`
    +------------+
    | Component  |
    +-----+------+
          |
    +-----+------+
    | Decorator  |--wraps-->
    +-----+------+
          |
    +-----+------+
    | ConcreteOp |
    +------------+`),
	},
	{
		ID:          "adapter",
		Name:        "Adapter",
		Category:    Structural,
		Description: "Converts the interface of a class into another interface clients expect, letting incompatible classes work together.",
		Diagram: diagram(`
  +---------+     +---------+
  | Client  |---->| Adapter |
  +---------+     +----+----+
                       |
                  +----+----+
                  | Adaptee |
                  +---------+
               (incompatible)`),
	},
}

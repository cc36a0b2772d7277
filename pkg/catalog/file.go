package catalog

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// File is the on-disk catalog layout.
//
//	patterns:
//	  - id: singleton
//	    name: Singleton
//	    category: creational
//	    description: Ensures a class has only one instance.
//	    diagram: |
//	      [only one ever]
type File struct {
	Patterns []Pattern `yaml:"patterns"`
}

// LoadFile reads and validates a YAML catalog.
func LoadFile(path string) (*Static, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes and validates a YAML catalog.
func Parse(data []byte) (*Static, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}
	for i := range f.Patterns {
		f.Patterns[i].Diagram = strings.TrimRight(f.Patterns[i].Diagram, " \n")
	}
	if err := Validate(f.Patterns); err != nil {
		return nil, err
	}
	return NewStatic(f.Patterns...), nil
}

// Validate checks that ids are present and unique, names are present and
// categories are known. All problems are reported together.
func Validate(patterns []Pattern) error {
	var errs []error
	seen := make(map[string]int, len(patterns))

	for i, p := range patterns {
		at := fmt.Sprintf("patterns[%d]", i)
		if p.ID == "" {
			errs = append(errs, fmt.Errorf("%s: id is required", at))
		} else if prev, dup := seen[p.ID]; dup {
			errs = append(errs, fmt.Errorf("%s: duplicate id %q (first at patterns[%d])", at, p.ID, prev))
		} else {
			seen[p.ID] = i
		}
		if strings.TrimSpace(p.Name) == "" {
			errs = append(errs, fmt.Errorf("%s: name is required", at))
		}
		if !p.Category.Valid() {
			errs = append(errs, fmt.Errorf("%s: unknown category %q", at, p.Category))
		}
	}

	if len(errs) > 0 {
		return &InvalidError{Errs: errs}
	}
	return nil
}

// InvalidError collects catalog validation failures.
type InvalidError struct {
	Errs []error
}

func (e *InvalidError) Error() string {
	msgs := make([]string, len(e.Errs))
	for i, err := range e.Errs {
		msgs[i] = err.Error()
	}
	return "invalid catalog: " + strings.Join(msgs, "; ")
}

// Unwrap exposes the individual failures to errors.Is and errors.As.
func (e *InvalidError) Unwrap() []error {
	return e.Errs
}

// ErrInvalid matches any *InvalidError with errors.Is.
var ErrInvalid = errors.New("invalid catalog")

// Is makes errors.Is(err, ErrInvalid) true.
func (e *InvalidError) Is(target error) bool {
	return target == ErrInvalid
}

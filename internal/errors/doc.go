// Package errors provides coded, actionable error messages for the
// patterns command line.
//
// Each error has a unique code (e.g., "P001") that maps to:
//   - A category
//   - A short message describing the error
//   - A detailed explanation
//
// # Usage
//
//	err := errors.New("P001").
//	    WithDetail(`No pattern matches "singelton"`).
//	    WithSuggestion(`Did you mean "singleton"?`)
//
//	fmt.Fprint(os.Stderr, err.Format())
//	// Output:
//	// ERROR P001: Pattern not found
//	//
//	//   No pattern matches "singelton"
//	//
//	//   Hint: Did you mean "singleton"?
package errors

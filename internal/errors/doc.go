// Package errors provides structured, actionable error messages for the
// draglist CLI and configuration loader.
//
// Each error has a unique code (e.g., "E101") that maps to a short message
// and a detailed explanation. Configuration errors can carry the file
// location and the surrounding lines.
//
// # Error Categories
//
//   - config: configuration files and values
//   - snapshot: order persistence backends
//   - server: HTTP listener failures
//   - cli: command-line usage
//
// # Usage
//
//	err := errors.New("E101").
//	    WithLocation("draglist.toml", 4, 9).
//	    WithSuggestion("Quote string values")
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR E101: Invalid configuration syntax
//	//
//	//   draglist.toml:4:9
//	//
//	//      2 │ [server]
//	//      3 │ host = "localhost"
//	//   →  4 │ port = eighty
//	//        │         ^
//	//      5 │
//	//
//	//   The configuration file could not be parsed.
//	//
//	//   Hint: Quote string values
package errors

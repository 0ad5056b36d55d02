// Package errors provides coded, actionable error messages for the folio
// CLI and configuration layer.
//
// Each error has a unique code (e.g., "E100") that maps to a category, a
// short message and a detailed explanation. Callers attach a suggestion,
// extra detail or a wrapped cause:
//
//	err := errors.New("E103").
//	    WithDetail(`"router.history" must be "path" or "hash"`).
//	    WithSuggestion(`Set "router": {"history": "path"} in folio.json`)
//
//	fmt.Print(err.Format())
//	// ERROR E103: Invalid history mode
//	//
//	//   "router.history" must be "path" or "hash"
//	//
//	//   Hint: Set "router": {"history": "path"} in folio.json
//
// # Error Codes
//
//   - E100-E199: configuration
//   - E200-E299: routing
//   - E300-E399: server
package errors

// Package errors provides coded, actionable errors for the tooltip tools.
//
// Library code under pkg/ reports plain sentinel errors. The CLI, the config
// loader, the replayer and the scaffolder wrap them in *Error values that
// carry a stable code, a category, an optional source location inside the
// offending file, and a hint.
//
// # Error Codes
//
//   - T001-T019: configuration (tooltip.json / tooltip.yaml)
//   - T020-T039: replay scripts
//   - T040-T059: scaffolding
//   - T060-T079: playground protocol
//   - T080-T099: CLI
//
// # Usage
//
//	err := errors.New("T003").
//	    WithLocation("tooltip.yaml", 4, 12).
//	    WithSuggestion(`Use one of "top", "bottom-start", "left-end", ...`)
//
//	fmt.Print(err.Format())
//	// ERROR T003: Unsupported placement
//	//
//	//   tooltip.yaml:4:12
//	//   ...
package errors

// Package scaffold generates tooltip component packages.
//
// A component is a small package that wraps tooltip.New with preset
// options, plus a test driving it with pkg/vtest:
//
//	res, err := scaffold.Generate(scaffold.Options{Name: "HelpHint"})
//	// components/help-hint/help-hint.go
//	// components/help-hint/options.go
//	// components/help-hint/help-hint_test.go
//
// The import path is resolved from the nearest go.mod.
package scaffold

// Package replay runs scripted pointer sessions against a tooltip
// controller on virtual time.
//
// A script is YAML:
//
//	name: leave and return
//	config:
//	  placement: top
//	  hoverDelay: 100ms
//	trigger:  {x: 462, y: 364, width: 100, height: 40}
//	floating: {width: 120, height: 32}
//	steps:
//	  - {at: 0s, event: trigger-enter}
//	  - {at: 10ms, event: trigger-leave}
//	  - {at: 60ms, event: floating-enter}
//	expect:
//	  - {at: 0s, kind: show}
//
// Run returns the timeline of notifications and positions. Every step is
// followed by a render pass, so a show requested by a step completes at
// the same virtual instant.
package replay

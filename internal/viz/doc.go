// Package viz provides the terminal replay for card searches.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: steps through a [session.Session] one search step at a time
//   - Card row rendering with the pivot highlighted
//   - Theme selection with 4 built-in color schemes
//
// # Key Bindings
//
//	n/Space/→ - Advance one step
//	b/←       - Step back
//	R         - Restart the current search
//	E         - Load the example deck
//	T         - Cycle color themes
//	Q         - Quit
package viz

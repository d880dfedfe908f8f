// Package viz draws a running simulation in the terminal.
//
// The package implements a live view using the Bubble Tea framework:
//
//   - [Model]: the live orbit view with trails, distances and a chart
//   - [Picker]: a preset menu shown before the live view
//   - [Canvas]: Braille-based pixel canvas with colored body markers
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	R     - Reset to initial conditions
//	Tab   - Cycle the body shown in the distance chart
//	+/-   - Change ticks per frame
//	?     - Show help overlay
//	Q     - Quit
package viz

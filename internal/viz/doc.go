// Package viz is the interactive terminal front end, built on Bubble Tea.
//
//   - [Model]: bars coloured by highlight, a status panel and key help,
//     driven by a playback.Scheduler
//   - [App]: algorithm menu and settings screen in front of a Model
//   - [Canvas]: Braille canvas for a compact view of large arrays
//   - Theme selection with 5 built-in color schemes
//
// # Key Bindings
//
//	Space - Play/Pause
//	S     - Step one operation
//	→     - Skip ten operations
//	R     - Reset
//	N     - New array
//	1-5   - Switch algorithm
//	+/-   - Speed
//	[ ]   - Fewer/more bars
//	T     - Cycle color themes
//	C     - Toggle Braille view
//	G     - Toggle GIF recording
//	?     - Show full help
//
// # Recording
//
// G starts capturing one image per applied operation; pressing it again
// writes sortviz-<algorithm>-<unix>.gif to the current directory.
package viz

// Package editor provides a Bubble Tea text editor component backed by the
// buffer package.
//
// The package is responsible for input handling, viewport behavior,
// cell-width aware rendering, and host integration hooks (clipboard, change
// events). Buffer marks are rendered as decorations: range marks paint their
// color as a background, bookmarks draw a colored caret and an optional
// floating label above the line.
package editor

// Package viz draws mazes on a braille character canvas.
//
// Each character cell holds a 2x4 block of pixels, so a W x H canvas is a
// (W*2) x (H*4) drawing surface:
//
//   - [Canvas]: braille pixel grid with per-character marks for colouring
//   - [Render]: walls of a [maze.Maze] plus walker heads and trails
//   - [Theme]: five built-in colour schemes; classic is the default
//
// Styles and helpers in styles.go build the side panel and key hints of the
// interactive view.
package viz

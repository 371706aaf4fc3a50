// Package maze is the reference generation engine: periodic tilings, the
// maze of cells that fit a surface, and a multi-walker depth-first
// generator. [Engine] implements playback.Engine.
package maze

package core

// Color is the semantic role of a screen cell.
// The platform layer maps each role to a concrete terminal style, so the
// game never deals with palettes.
type Color uint8

const (
	ColorDefault Color = iota
	ColorGrid
	ColorHead
	ColorBody
	ColorFood
	ColorHUD
	ColorAlert
)

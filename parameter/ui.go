package parameter

import "time"

// Layout & Margins
const (
	// TopMargin holds the HUD line
	TopMargin = 1

	// BottomMargin holds the key hint line
	BottomMargin = 1

	// LaneColumns is the screen width of one lane
	LaneColumns = 7

	// RowsPerUnit maps world Y units onto screen rows
	RowsPerUnit = 1.0

	// PlayerRowFraction places the player this far down the playfield
	PlayerRowFraction = 0.8
)

// HUD
const (
	AudioStr = "♫ "
	LifeStr  = "♥"

	HintText = "←/→ or drag: lane  space/hold: boost  p: pause  r: revive  n: new run  m: sound  q: quit"
)

// Glyphs
const (
	PlayerGlyph   = '▲'
	ObstacleGlyph = '█'
	ItemGlyph     = '◆'
	LaneLineGlyph = '┊'
	RoadEdgeGlyph = '│'
)

// Input
const (
	// KeyHoldTimeout releases a keyboard hold when the terminal stops repeating the key
	KeyHoldTimeout = 250 * time.Millisecond

	// MouseUnitsPerColumn converts drag distance in cells to swipe units
	MouseUnitsPerColumn = 10.0
	MouseUnitsPerRow    = 20.0
)

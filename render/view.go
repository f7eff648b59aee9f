package render

import (
	"math"

	"github.com/lixenwraith/lane-runner/parameter"
)

// View maps world coordinates onto a terminal of the given size
// The player row is fixed; the road scrolls underneath it
type View struct {
	Width, Height int
	LaneWidth     float64
}

// RoadLeft is the column of the left road edge
func (v View) RoadLeft() int {
	return (v.Width-parameter.LaneCount*parameter.LaneColumns)/2 - 1
}

// RoadRight is the column of the right road edge
func (v View) RoadRight() int {
	return v.RoadLeft() + 1 + parameter.LaneCount*parameter.LaneColumns
}

// LaneCenter returns the middle column of a lane index
func (v View) LaneCenter(lane int) int {
	return v.RoadLeft() + 1 + (lane-parameter.LaneMin)*parameter.LaneColumns + parameter.LaneColumns/2
}

// Column converts a world X offset to a screen column
func (v View) Column(x float64) int {
	if v.LaneWidth <= 0 {
		return v.LaneCenter(0)
	}
	return v.LaneCenter(0) + int(math.Round(x/v.LaneWidth*parameter.LaneColumns))
}

// PlayerRow is the screen row the player is drawn on
func (v View) PlayerRow() int {
	field := v.Height - parameter.TopMargin - parameter.BottomMargin
	return parameter.TopMargin + int(float64(field)*parameter.PlayerRowFraction)
}

// Row converts a world Y to a screen row relative to the player
func (v View) Row(y, playerY float64) int {
	return v.PlayerRow() - int(math.Round((y-playerY)*parameter.RowsPerUnit))
}

// InField reports whether row lies between the HUD and the hint line
func (v View) InField(row int) bool {
	return row >= parameter.TopMargin && row < v.Height-parameter.BottomMargin
}
